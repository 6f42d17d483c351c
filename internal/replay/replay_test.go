package replay

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/sbokena/internal/games/sokoban/core"
	"github.com/vovakirdan/sbokena/internal/games/sokoban/levels"
)

// corridor is #@$.# : one push right completes it.
func corridor() levels.Level {
	return levels.Level{
		ID: "corridor",
		Tiles: map[core.Position]core.Tile{
			core.P(0, 0): core.Floor{},
			core.P(1, 0): core.Floor{},
			core.P(2, 0): core.Goal{},
		},
		Objects: map[core.Position]core.Object{
			core.P(0, 0): core.Player{},
			core.P(1, 0): core.Box{},
		},
	}
}

func lookupCorridor(pack, id string) (levels.Level, error) {
	if pack == "test" && id == "corridor" {
		return corridor(), nil
	}
	return levels.Level{}, errors.New("no such level")
}

func TestWriterAppendsAcrossReopen(t *testing.T) {
	dir := t.TempDir()

	w := NewWriter(dir)
	if err := w.Write(Record{Pack: "test", LevelID: "a", Moves: 1, Solution: "R"}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if err := w.Write(Record{Pack: "other", LevelID: "b", Moves: 2, Solution: "UU"}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if err := w.Write(Record{Pack: "test", LevelID: "c", Moves: 3, Solution: "LLL"}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	recs, err := ReadFile(w.PathFor("test"))
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 records, got %d", len(recs))
	}
	if recs[0].LevelID != "a" || recs[1].LevelID != "c" {
		t.Errorf("unexpected order: %+v", recs)
	}
	if recs[0].Time.IsZero() {
		t.Error("Time should default to now")
	}

	other, err := ReadFile(filepath.Join(dir, "other"+Extension))
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if len(other) != 1 || other[0].Solution != "UU" {
		t.Errorf("unexpected records in other pack: %+v", other)
	}
}

func TestWriterCloseReportsFileErrors(t *testing.T) {
	w := NewWriter(t.TempDir())
	if err := w.Write(Record{Pack: "test", LevelID: "a", Moves: 1, Solution: "R"}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	// Close the file underneath the writer
	if err := w.f.Close(); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); !errors.Is(err, os.ErrClosed) {
		t.Errorf("Close = %v, expected os.ErrClosed", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close = %v, expected nil", err)
	}
}

func TestWriterRequiresPack(t *testing.T) {
	w := NewWriter(t.TempDir())
	defer w.Close()
	if err := w.Write(Record{LevelID: "x"}); err == nil {
		t.Error("expected error for record without pack")
	}
}

func TestPathForStaysInBaseDir(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir)
	got := w.PathFor("../escape/pack")
	if filepath.Dir(got) != dir {
		t.Errorf("PathFor escaped base dir: %s", got)
	}
}

func TestReadRejectsGarbage(t *testing.T) {
	if _, err := Read(bytes.NewReader([]byte("not zstd at all"))); err == nil {
		t.Error("expected error for uncompressed input")
	}
}

func TestReadMissingFile(t *testing.T) {
	if _, err := ReadFile(filepath.Join(t.TempDir(), "nope"+Extension)); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}

func TestPlay(t *testing.T) {
	tests := []struct {
		name     string
		solution string
		result   core.StepResult
		played   int
		wantErr  bool
	}{
		{"solves", "R", core.LevelComplete, 1, false},
		{"rejected", "LR", core.HitWall, 0, false},
		{"incomplete", "U", core.HitWall, 0, false},
		{"bad letter", "RX", core.Ok, 0, true},
		{"empty", "", core.Ok, 0, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res, played, err := Play(corridor(), tc.solution)
			if (err != nil) != tc.wantErr {
				t.Fatalf("Play error = %v, wantErr %v", err, tc.wantErr)
			}
			if res != tc.result {
				t.Errorf("expected %v, got %v", tc.result, res)
			}
			if played != tc.played {
				t.Errorf("expected %d moves played, got %d", tc.played, played)
			}
		})
	}
}

func TestVerify(t *testing.T) {
	recs := []Record{
		{Pack: "test", LevelID: "corridor", Moves: 1, Solution: "R"},
		{Pack: "test", LevelID: "corridor", Moves: 1, Solution: "L"},
		{Pack: "test", LevelID: "corridor", Moves: 5, Solution: "R"},
		{Pack: "test", LevelID: "gone", Moves: 1, Solution: "R"},
	}
	got := Verify(recs, lookupCorridor)
	if len(got) != len(recs) {
		t.Fatalf("expected %d verdicts, got %d", len(recs), len(got))
	}

	if !got[0].OK() {
		t.Errorf("valid solution failed: %s", got[0])
	}
	if got[1].OK() || got[1].Result != core.HitWall {
		t.Errorf("expected wall rejection, got %s", got[1])
	}
	if got[2].OK() || got[2].Err == nil {
		t.Errorf("move count mismatch should fail, got %s", got[2])
	}
	if got[3].OK() || got[3].Err == nil {
		t.Errorf("missing level should fail, got %s", got[3])
	}
}
