package core_test

import (
	"maps"
	"testing"

	"github.com/vovakirdan/sbokena/internal/games/sokoban/core"
)

func TestStepWalkThenWall(t *testing.T) {
	w := mustWorld(t, row(1, 1, 3), map[core.Position]core.Object{
		core.P(2, 1): core.Player{},
	})

	if res := w.Step(core.Right); res != core.Ok {
		t.Fatalf("first step: expected Ok, got %v", res)
	}
	if p := playerAt(t, w); p != core.P(3, 1) {
		t.Errorf("expected player at (3,1), got %v", p)
	}

	expectRejected(t, w, core.Right, core.HitWall)
	if p := playerAt(t, w); p != core.P(3, 1) {
		t.Errorf("player moved into wall: %v", p)
	}
}

func TestStepWallOnEverySide(t *testing.T) {
	tiles := map[core.Position]core.Tile{core.P(0, 0): core.Floor{}}
	w := mustWorld(t, tiles, map[core.Position]core.Object{core.P(0, 0): core.Player{}})

	for _, d := range core.Directions {
		expectRejected(t, w, d, core.HitWall)
	}
}

func TestStepZeroGoalsNeverCompletes(t *testing.T) {
	w := mustWorld(t, row(0, 0, 3), map[core.Position]core.Object{core.P(0, 0): core.Player{}})

	for range 3 {
		if res := w.Step(core.Right); res != core.Ok {
			t.Fatalf("expected Ok, got %v", res)
		}
	}
}

func TestStepDirectionalFloor(t *testing.T) {
	tiles := row(1, 1, 3)
	tiles[core.P(2, 1)] = core.DirFloor{Dir: core.Right}
	tiles[core.P(2, 0)] = core.Floor{}
	tiles[core.P(2, 2)] = core.Floor{}

	t.Run("enter and leave along dir", func(t *testing.T) {
		w := mustWorld(t, tiles, map[core.Position]core.Object{core.P(1, 1): core.Player{}})
		if res := w.Step(core.Right); res != core.Ok {
			t.Fatalf("enter: expected Ok, got %v", res)
		}
		if res := w.Step(core.Right); res != core.Ok {
			t.Fatalf("leave: expected Ok, got %v", res)
		}
		if p := playerAt(t, w); p != core.P(3, 1) {
			t.Errorf("expected player at (3,1), got %v", p)
		}
	})

	t.Run("enter against dir", func(t *testing.T) {
		w := mustWorld(t, tiles, map[core.Position]core.Object{core.P(3, 1): core.Player{}})
		expectRejected(t, w, core.Left, core.InvalidDirection)
	})

	t.Run("enter across dir", func(t *testing.T) {
		w := mustWorld(t, tiles, map[core.Position]core.Object{core.P(2, 0): core.Player{}})
		expectRejected(t, w, core.Down, core.InvalidDirection)
	})

	t.Run("leave across dir", func(t *testing.T) {
		w := mustWorld(t, tiles, map[core.Position]core.Object{core.P(2, 1): core.Player{}})
		expectRejected(t, w, core.Up, core.InvalidDirection)
		expectRejected(t, w, core.Down, core.InvalidDirection)
		expectRejected(t, w, core.Left, core.InvalidDirection)
	})

	t.Run("box pushed across dir", func(t *testing.T) {
		tiles := row(1, 0, 3)
		tiles[core.P(2, 1)] = core.DirFloor{Dir: core.Up}
		tiles[core.P(9, 9)] = core.Goal{}
		w := mustWorld(t, tiles, map[core.Position]core.Object{
			core.P(0, 1): core.Player{},
			core.P(1, 1): core.Box{},
		})
		expectRejected(t, w, core.Right, core.InvalidDirection)
	})
}

func TestStepPushBox(t *testing.T) {
	tiles := row(1, 1, 4)
	tiles[core.P(4, 1)] = core.Goal{}
	w := mustWorld(t, tiles, map[core.Position]core.Object{
		core.P(1, 1): core.Player{},
		core.P(2, 1): core.Box{},
	})

	if res := w.Step(core.Right); res != core.Ok {
		t.Fatalf("expected Ok, got %v", res)
	}
	if obj, ok := w.ObjectAt(core.P(3, 1)); !ok || obj != (core.Box{}) {
		t.Errorf("expected box at (3,1), got %v", obj)
	}

	if res := w.Step(core.Right); res != core.LevelComplete {
		t.Fatalf("expected LevelComplete, got %v", res)
	}
	if p := playerAt(t, w); p != core.P(3, 1) {
		t.Errorf("expected player at (3,1), got %v", p)
	}

	expectRejected(t, w, core.Right, core.HitWall)
}

func TestStepDirBox(t *testing.T) {
	tiles := row(1, 1, 3)
	tiles[core.P(2, 2)] = core.Floor{}
	tiles[core.P(2, 0)] = core.Floor{}
	tiles[core.P(9, 9)] = core.Goal{}

	t.Run("pushed along dir", func(t *testing.T) {
		w := mustWorld(t, tiles, map[core.Position]core.Object{
			core.P(1, 1): core.Player{},
			core.P(2, 1): core.DirBox{Dir: core.Right},
		})
		if res := w.Step(core.Right); res != core.Ok {
			t.Fatalf("expected Ok, got %v", res)
		}
		if obj, _ := w.ObjectAt(core.P(3, 1)); obj != (core.DirBox{Dir: core.Right}) {
			t.Errorf("expected dir box at (3,1), got %v", obj)
		}
	})

	t.Run("pushed across dir", func(t *testing.T) {
		w := mustWorld(t, tiles, map[core.Position]core.Object{
			core.P(2, 2): core.Player{},
			core.P(2, 1): core.DirBox{Dir: core.Right},
		})
		expectRejected(t, w, core.Up, core.InvalidDirection)
	})
}

func TestStepChainedPushLimit(t *testing.T) {
	tiles := row(1, 0, 4)
	tiles[core.P(9, 8)] = core.Goal{}
	tiles[core.P(9, 9)] = core.Goal{}
	w := mustWorld(t, tiles, map[core.Position]core.Object{
		core.P(0, 1): core.Player{},
		core.P(1, 1): core.Box{},
		core.P(2, 1): core.Box{},
	})

	expectRejected(t, w, core.Right, core.PushTwoObjects)
	if p := playerAt(t, w); p != core.P(0, 1) {
		t.Errorf("player moved: %v", p)
	}
}

func TestStepDoorOpenedByBox(t *testing.T) {
	tiles := row(1, 0, 4)
	tiles[core.P(0, 1)] = core.Button{DoorID: 1}
	tiles[core.P(3, 1)] = core.Door{DoorID: 1}
	tiles[core.P(9, 9)] = core.Goal{}
	w := mustWorld(t, tiles, map[core.Position]core.Object{
		core.P(1, 1): core.Box{},
		core.P(2, 1): core.Player{},
	})

	if w.IsDoorOpen(1) {
		t.Fatal("door should start closed")
	}
	expectRejected(t, w, core.Right, core.SlamOnDoor)

	// Push the box onto the button.
	if res := w.Step(core.Left); res != core.Ok {
		t.Fatalf("expected Ok, got %v", res)
	}
	if !w.IsDoorOpen(1) {
		t.Fatal("door should be open with a box on the button")
	}

	for i, want := range []core.Position{core.P(2, 1), core.P(3, 1), core.P(4, 1)} {
		if res := w.Step(core.Right); res != core.Ok {
			t.Fatalf("step %d: expected Ok, got %v", i, res)
		}
		if p := playerAt(t, w); p != want {
			t.Errorf("step %d: expected player at %v, got %v", i, want, p)
		}
	}
}

func TestStepDoorOpenedByPlayer(t *testing.T) {
	tiles := row(1, 1, 3)
	tiles[core.P(1, 1)] = core.Button{DoorID: 7}
	tiles[core.P(2, 1)] = core.Door{DoorID: 7}
	w := mustWorld(t, tiles, map[core.Position]core.Object{core.P(1, 1): core.Player{}})

	if !w.IsDoorOpen(7) {
		t.Fatal("door should be open while the player stands on the button")
	}
	if res := w.Step(core.Right); res != core.Ok {
		t.Fatalf("expected Ok stepping off the button into the door, got %v", res)
	}
	if res := w.Step(core.Right); res != core.Ok {
		t.Fatalf("expected Ok leaving the door, got %v", res)
	}
	expectRejected(t, w, core.Left, core.SlamOnDoor)
}

func TestStepDoorAnyButtonOpens(t *testing.T) {
	tiles := row(1, 0, 3)
	tiles[core.P(0, 1)] = core.Button{DoorID: 2}
	tiles[core.P(3, 1)] = core.Button{DoorID: 2}
	tiles[core.P(1, 0)] = core.Door{DoorID: 2}
	w := mustWorld(t, tiles, map[core.Position]core.Object{core.P(0, 1): core.Player{}})

	if !w.IsDoorOpen(2) {
		t.Error("one pressed button out of two should open the door")
	}
	ds, ok := w.Door(2)
	if !ok {
		t.Fatal("door group 2 missing")
	}
	if len(ds.Buttons) != 2 || ds.Door != core.P(1, 0) {
		t.Errorf("unexpected door group %+v", ds)
	}
}

func TestStepBoxIntoClosedDoor(t *testing.T) {
	tiles := row(1, 0, 3)
	tiles[core.P(2, 1)] = core.Door{DoorID: 1}
	tiles[core.P(3, 1)] = core.Button{DoorID: 1}
	tiles[core.P(9, 9)] = core.Goal{}
	w := mustWorld(t, tiles, map[core.Position]core.Object{
		core.P(0, 1): core.Player{},
		core.P(1, 1): core.Box{},
	})

	expectRejected(t, w, core.Right, core.SlamOnDoor)
}

func TestStepPortal(t *testing.T) {
	tiles := map[core.Position]core.Tile{
		core.P(0, 0): core.Floor{},
		core.P(1, 0): core.Portal{PortalID: 1, InDir: core.Right},
		core.P(1, 1): core.Floor{},
		core.P(5, 5): core.Portal{PortalID: 1, InDir: core.Left},
		core.P(6, 5): core.Floor{},
	}

	t.Run("teleports beyond twin", func(t *testing.T) {
		w := mustWorld(t, tiles, map[core.Position]core.Object{core.P(0, 0): core.Player{}})
		if res := w.Step(core.Right); res != core.Ok {
			t.Fatalf("expected Ok, got %v", res)
		}
		if p := playerAt(t, w); p != core.P(6, 5) {
			t.Errorf("expected player at (6,5), got %v", p)
		}
	})

	t.Run("wrong entry direction", func(t *testing.T) {
		w := mustWorld(t, tiles, map[core.Position]core.Object{core.P(1, 1): core.Player{}})
		expectRejected(t, w, core.Up, core.InvalidDirection)
	})

	t.Run("exit into wall", func(t *testing.T) {
		walled := make(map[core.Position]core.Tile)
		for p, tile := range tiles {
			walled[p] = tile
		}
		delete(walled, core.P(6, 5))
		w := mustWorld(t, walled, map[core.Position]core.Object{core.P(0, 0): core.Player{}})
		expectRejected(t, w, core.Right, core.HitWall)
	})

	t.Run("exit onto directional floor", func(t *testing.T) {
		// A portal hop lands on the exit cell regardless of its direction.
		arrowed := maps.Clone(tiles)
		arrowed[core.P(6, 5)] = core.DirFloor{Dir: core.Up}
		w := mustWorld(t, arrowed, map[core.Position]core.Object{core.P(0, 0): core.Player{}})
		if res := w.Step(core.Right); res != core.Ok {
			t.Fatalf("expected Ok, got %v", res)
		}
		if p := playerAt(t, w); p != core.P(6, 5) {
			t.Errorf("expected player at (6,5), got %v", p)
		}
	})

	t.Run("exit into portal entered the wrong way", func(t *testing.T) {
		chained := maps.Clone(tiles)
		chained[core.P(6, 5)] = core.Portal{PortalID: 2, InDir: core.Up}
		chained[core.P(9, 9)] = core.Portal{PortalID: 2, InDir: core.Down}
		chained[core.P(9, 10)] = core.Floor{}
		w := mustWorld(t, chained, map[core.Position]core.Object{core.P(0, 0): core.Player{}})
		expectRejected(t, w, core.Right, core.InvalidDirection)
	})
}

func TestStepPortalChainsIntoSecondPair(t *testing.T) {
	tiles := map[core.Position]core.Tile{
		core.P(0, 0): core.Floor{},
		core.P(1, 0): core.Portal{PortalID: 1, InDir: core.Right},
		core.P(5, 5): core.Portal{PortalID: 1, InDir: core.Left},
		// The exit of pair 1 lands on pair 2, moving right.
		core.P(6, 5): core.Portal{PortalID: 2, InDir: core.Right},
		core.P(9, 9): core.Portal{PortalID: 2, InDir: core.Down},
		core.P(9, 8): core.Floor{},
	}
	w := mustWorld(t, tiles, map[core.Position]core.Object{core.P(0, 0): core.Player{}})

	if res := w.Step(core.Right); res != core.Ok {
		t.Fatalf("expected Ok, got %v", res)
	}
	if p := playerAt(t, w); p != core.P(9, 8) {
		t.Errorf("expected player at (9,8), got %v", p)
	}
}

func TestStepPortalSelfLoop(t *testing.T) {
	tiles := map[core.Position]core.Tile{
		core.P(0, 1): core.Portal{PortalID: 1, InDir: core.Left},
		core.P(1, 1): core.Floor{},
		core.P(2, 1): core.Portal{PortalID: 1, InDir: core.Right},
	}
	w := mustWorld(t, tiles, map[core.Position]core.Object{core.P(1, 1): core.Player{}})

	expectRejected(t, w, core.Right, core.PushYourself)
	expectRejected(t, w, core.Left, core.PushYourself)
}

func TestStepPortalCarriesBox(t *testing.T) {
	tiles := map[core.Position]core.Tile{
		core.P(0, 0): core.Floor{},
		core.P(1, 0): core.Floor{},
		core.P(2, 0): core.Portal{PortalID: 3, InDir: core.Right},
		core.P(5, 5): core.Portal{PortalID: 3, InDir: core.Up},
		core.P(5, 6): core.Goal{},
	}
	w := mustWorld(t, tiles, map[core.Position]core.Object{
		core.P(0, 0): core.Player{},
		core.P(1, 0): core.Box{},
	})

	if res := w.Step(core.Right); res != core.LevelComplete {
		t.Fatalf("expected LevelComplete, got %v", res)
	}
	if p := playerAt(t, w); p != core.P(1, 0) {
		t.Errorf("expected player at (1,0), got %v", p)
	}
	if obj, _ := w.ObjectAt(core.P(5, 6)); obj != (core.Box{}) {
		t.Errorf("expected box at (5,6), got %v", obj)
	}
}

func TestStepPortalExitPushesBox(t *testing.T) {
	tiles := map[core.Position]core.Tile{
		core.P(0, 0): core.Floor{},
		core.P(1, 0): core.Portal{PortalID: 1, InDir: core.Right},
		core.P(5, 5): core.Portal{PortalID: 1, InDir: core.Left},
		core.P(6, 5): core.Floor{},
		core.P(7, 5): core.Goal{},
	}
	w := mustWorld(t, tiles, map[core.Position]core.Object{
		core.P(0, 0): core.Player{},
		core.P(6, 5): core.Box{},
	})

	if res := w.Step(core.Right); res != core.LevelComplete {
		t.Fatalf("expected LevelComplete, got %v", res)
	}
	if p := playerAt(t, w); p != core.P(6, 5) {
		t.Errorf("expected player at (6,5), got %v", p)
	}
}

func TestStepCompletionReentry(t *testing.T) {
	tiles := make(map[core.Position]core.Tile)
	for y := range 3 {
		for p, tile := range row(y, 0, 5) {
			tiles[p] = tile
		}
	}
	tiles[core.P(3, 1)] = core.Goal{}
	w := mustWorld(t, tiles, map[core.Position]core.Object{
		core.P(1, 1): core.Player{},
		core.P(2, 1): core.Box{},
	})

	steps := []struct {
		dir  core.Direction
		want core.StepResult
	}{
		{core.Right, core.LevelComplete},
		{core.Right, core.Ok}, // box off the goal
		{core.Up, core.Ok},
		{core.Right, core.Ok},
		{core.Right, core.Ok},
		{core.Down, core.Ok},
		{core.Left, core.LevelComplete}, // box back on
		{core.Up, core.LevelComplete},   // still covered
	}
	for i, s := range steps {
		if res := w.Step(s.dir); res != s.want {
			t.Fatalf("step %d (%v): expected %v, got %v", i, s.dir, s.want, res)
		}
	}
}

func TestStepSolutionString(t *testing.T) {
	tiles := row(1, 1, 4)
	tiles[core.P(4, 1)] = core.Goal{}
	w := mustWorld(t, tiles, map[core.Position]core.Object{
		core.P(1, 1): core.Player{},
		core.P(2, 1): core.Box{},
	})

	moves, err := core.ParseSolution("RR")
	if err != nil {
		t.Fatalf("ParseSolution failed: %v", err)
	}
	var last core.StepResult
	for _, d := range moves {
		last = w.Step(d)
	}
	if last != core.LevelComplete {
		t.Errorf("expected LevelComplete, got %v", last)
	}
}

func TestStepResultRejected(t *testing.T) {
	tests := []struct {
		res  core.StepResult
		want bool
	}{
		{core.Ok, false},
		{core.LevelComplete, false},
		{core.HitWall, true},
		{core.SlamOnDoor, true},
		{core.InvalidDirection, true},
		{core.PushTwoObjects, true},
		{core.PushYourself, true},
	}
	for _, tt := range tests {
		if got := tt.res.Rejected(); got != tt.want {
			t.Errorf("%v.Rejected() = %v, want %v", tt.res, got, tt.want)
		}
	}
}
