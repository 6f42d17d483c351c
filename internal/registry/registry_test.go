package registry

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/vovakirdan/sbokena/internal/core"
	"github.com/vovakirdan/sbokena/internal/games/sokoban/levels"
)

const easyLevel = `id: a
difficulty: easy
map: |
  #@$.#
`

const hardLevel = `id: b
difficulty: hard
map: |
  #@$.#
`

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"lv/a.yaml": {Data: []byte(easyLevel)},
		"lv/b.yaml": {Data: []byte(hardLevel)},
	}
}

// stubGame records what Create passed to the factory.
type stubGame struct {
	info PackInfo
	lvls []levels.Level
}

func (g *stubGame) ID() string                           { return g.info.ID }
func (g *stubGame) Title() string                        { return g.info.Title }
func (g *stubGame) Reset(core.RuntimeConfig)             {}
func (g *stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g *stubGame) Render(*core.Screen)                  {}
func (g *stubGame) State() core.GameState                { return core.GameState{} }

// withClean runs a test against an empty registry and restores it afterwards.
func withClean(t *testing.T) {
	t.Helper()
	mu.Lock()
	savedPacks, savedGame := packs, newGame
	packs = make(map[string]pack)
	newGame = nil
	mu.Unlock()
	t.Cleanup(func() {
		mu.Lock()
		packs, newGame = savedPacks, savedGame
		mu.Unlock()
	})
}

func TestRegisterAndList(t *testing.T) {
	withClean(t)

	Register(PackInfo{ID: "zeta", Builtin: true}, func() *levels.Loader { return levels.NewFSLoader(testFS(), "lv") })
	Register(PackInfo{ID: "alpha", Title: "Alpha"}, func() *levels.Loader { return levels.NewFSLoader(testFS(), "lv") })
	Register(PackInfo{ID: "beta", Builtin: true}, func() *levels.Loader { return levels.NewFSLoader(testFS(), "lv") })

	list := List()
	want := []string{"beta", "zeta", "alpha"}
	if len(list) != len(want) {
		t.Fatalf("expected %d packs, got %d", len(want), len(list))
	}
	for i, id := range want {
		if list[i].ID != id {
			t.Errorf("List()[%d] = %s, expected %s", i, list[i].ID, id)
		}
	}
	if list[0].Title != "beta" {
		t.Errorf("missing title should default to ID, got %q", list[0].Title)
	}
	if !Exists("alpha") || Exists("gamma") {
		t.Error("Exists() gave the wrong answer")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	withClean(t)

	Register(PackInfo{ID: "dup"}, nil)
	defer func() {
		if recover() == nil {
			t.Error("expected panic on duplicate registration")
		}
	}()
	Register(PackInfo{ID: "dup"}, nil)
}

func TestLevelsFilterByDifficulty(t *testing.T) {
	withClean(t)
	Register(PackInfo{ID: "p"}, func() *levels.Loader { return levels.NewFSLoader(testFS(), "lv") })

	all, err := Levels("p", levels.Hard)
	if err != nil {
		t.Fatalf("Levels failed: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("expected 2 levels, got %d", len(all))
	}

	easy, err := Levels("p", levels.Easy)
	if err != nil {
		t.Fatalf("Levels failed: %v", err)
	}
	if len(easy) != 1 || easy[0].ID != "a" {
		t.Errorf("expected only level a, got %v", easy)
	}

	if _, err := Levels("nope", levels.Hard); err == nil {
		t.Error("expected error for unknown pack")
	}

	lvl, err := Level("p", "b")
	if err != nil {
		t.Fatalf("Level failed: %v", err)
	}
	if lvl.Difficulty != levels.Hard {
		t.Errorf("expected hard level, got %v", lvl.Difficulty)
	}
}

func TestCreate(t *testing.T) {
	withClean(t)
	Register(PackInfo{ID: "p", Title: "Pack"}, func() *levels.Loader { return levels.NewFSLoader(testFS(), "lv") })
	Register(PackInfo{ID: "empty"}, func() *levels.Loader { return levels.NewFSLoader(fstest.MapFS{}, ".") })

	if _, err := Create("p", levels.Hard); err == nil {
		t.Error("expected error without an installed game")
	}

	SetGame(func(info PackInfo, lvls []levels.Level) Game {
		return &stubGame{info: info, lvls: lvls}
	})

	g, err := Create("p", levels.Easy)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	stub := g.(*stubGame)
	if stub.Title() != "Pack" || len(stub.lvls) != 1 {
		t.Errorf("unexpected game: %+v", stub)
	}

	if _, err := Create("empty", levels.Hard); err == nil {
		t.Error("expected error for pack without levels")
	}
}

func TestRegisterDir(t *testing.T) {
	withClean(t)
	Register(PackInfo{ID: "taken", Builtin: true}, nil)

	root := t.TempDir()
	for _, dir := range []string{"mine", "taken", ".hidden"} {
		if err := os.MkdirAll(filepath.Join(root, dir), 0o755); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.WriteFile(filepath.Join(root, "mine", "a.yaml"), []byte(easyLevel), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "stray.yaml"), []byte(easyLevel), 0o644); err != nil {
		t.Fatal(err)
	}

	added, err := RegisterDir(root, nil)
	if err != nil {
		t.Fatalf("RegisterDir failed: %v", err)
	}
	if len(added) != 1 || added[0] != "mine" {
		t.Fatalf("expected only mine, got %v", added)
	}

	lvls, err := Levels("mine", levels.Hard)
	if err != nil {
		t.Fatalf("Levels failed: %v", err)
	}
	if len(lvls) != 1 {
		t.Errorf("expected 1 level in mine, got %d", len(lvls))
	}

	none, err := RegisterDir(filepath.Join(root, "missing"), nil)
	if err != nil || none != nil {
		t.Errorf("missing dir should be ignored, got %v, %v", none, err)
	}
}
