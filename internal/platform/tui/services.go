package tui

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/sbokena/internal/core"
	"github.com/vovakirdan/sbokena/internal/replay"
	"github.com/vovakirdan/sbokena/internal/storage"
)

// Services are the sinks a play session records completions into.
// Every field is optional.
type Services struct {
	Store  *storage.Store
	Replay *replay.Writer
	Logger *log.Logger
	Player string
}

// bestSetter is implemented by games that show best move counts.
type bestSetter interface {
	SetBest(best map[string]int)
}

// seedBest loads the pack's best move counts into the game.
func (s Services) seedBest(pack string, g any) {
	bs, ok := g.(bestSetter)
	if !ok || s.Store == nil {
		return
	}
	best, err := s.Store.BestMoves(pack)
	if err != nil {
		s.warn("could not load best moves", "pack", pack, "error", err)
		return
	}
	bs.SetBest(best)
}

// Record stores a completion in the records database and the replay log.
// Failures are logged; play continues regardless.
func (s Services) Record(pack string, c core.Completion) {
	if s.Store != nil {
		_, err := s.Store.SaveCompletion(storage.Completion{
			Pack:     pack,
			LevelID:  c.LevelID,
			Moves:    c.Moves,
			Solution: c.Solution,
			Player:   s.Player,
		})
		if err != nil {
			s.warn("could not save completion", "pack", pack, "level", c.LevelID, "error", err)
		}
	}

	if s.Replay != nil {
		err := s.Replay.Write(replay.Record{
			Pack:     pack,
			LevelID:  c.LevelID,
			Moves:    c.Moves,
			Solution: c.Solution,
			Player:   s.Player,
		})
		if err != nil {
			s.warn("could not write replay", "pack", pack, "level", c.LevelID, "error", err)
		}
	}
}

func (s Services) warn(msg string, keyvals ...any) {
	if s.Logger != nil {
		s.Logger.Warn(msg, keyvals...)
	}
}
