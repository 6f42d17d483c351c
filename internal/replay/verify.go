package replay

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/sbokena/internal/games/sokoban/core"
	"github.com/vovakirdan/sbokena/internal/games/sokoban/levels"
)

// LevelLookup resolves the current definition of a recorded level.
type LevelLookup func(pack, levelID string) (levels.Level, error)

// Verdict is the outcome of re-running one record.
type Verdict struct {
	Record Record
	// Result is the engine result of the last move played.
	Result core.StepResult
	// Played is the number of moves applied before stopping.
	Played int
	Err    error
}

// OK reports whether the solution still completes the level.
func (v Verdict) OK() bool {
	return v.Err == nil && v.Result == core.LevelComplete
}

func (v Verdict) String() string {
	switch {
	case v.Err != nil:
		return "error: " + v.Err.Error()
	case v.OK():
		return fmt.Sprintf("ok (%d moves)", v.Played)
	case v.Result.Rejected():
		return fmt.Sprintf("move %d rejected: %s", v.Played+1, v.Result)
	default:
		return fmt.Sprintf("level not complete after %d moves", v.Played)
	}
}

// Verify re-runs each record on a freshly loaded level.
func Verify(recs []Record, lookup LevelLookup) []Verdict {
	out := make([]Verdict, 0, len(recs))
	for _, rec := range recs {
		v := Verdict{Record: rec}
		lvl, err := lookup(rec.Pack, rec.LevelID)
		if err != nil {
			v.Err = err
			out = append(out, v)
			continue
		}
		v.Result, v.Played, v.Err = Play(lvl, rec.Solution)
		if v.Err == nil && rec.Moves != 0 && rec.Moves != len(rec.Solution) {
			v.Err = fmt.Errorf("recorded %d moves but solution has %d", rec.Moves, len(rec.Solution))
		}
		out = append(out, v)
	}
	return out
}

// ErrEmptySolution is returned by Play for a solution with no moves.
var ErrEmptySolution = errors.New("empty solution")

// Play applies solution to a new world built from lvl. It stops at the first
// rejected move and reports the last result with the number of moves applied.
func Play(lvl levels.Level, solution string) (core.StepResult, int, error) {
	dirs, err := core.ParseSolution(solution)
	if err != nil {
		return core.Ok, 0, err
	}
	if len(dirs) == 0 {
		return core.Ok, 0, ErrEmptySolution
	}
	w, err := lvl.NewWorld()
	if err != nil {
		return core.Ok, 0, err
	}
	res := core.Ok
	for i, d := range dirs {
		res = w.Step(d)
		if res.Rejected() {
			return res, i, nil
		}
	}
	return res, len(dirs), nil
}
