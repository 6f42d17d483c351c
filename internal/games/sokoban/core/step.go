package core

// StepResult is the outcome of a single Step. Every value other than Ok and
// LevelComplete is a rejection, and a rejected step leaves the world unchanged.
type StepResult int

const (
	Ok StepResult = iota
	LevelComplete
	HitWall
	SlamOnDoor
	InvalidDirection
	PushTwoObjects
	PushYourself
)

// String returns a human-readable name for the result.
func (r StepResult) String() string {
	switch r {
	case Ok:
		return "Ok"
	case LevelComplete:
		return "LevelComplete"
	case HitWall:
		return "HitWall"
	case SlamOnDoor:
		return "SlamOnDoor"
	case InvalidDirection:
		return "InvalidDirection"
	case PushTwoObjects:
		return "PushTwoObjects"
	case PushYourself:
		return "PushYourself"
	default:
		return "Unknown"
	}
}

// Rejected reports whether the step was refused.
func (r StepResult) Rejected() bool {
	return r != Ok && r != LevelComplete
}

// Step moves the player one cell in dir, pushing boxes and passing through
// portals as needed. The move is all-or-nothing.
func (w *World) Step(dir Direction) StepResult {
	from, ok := w.PlayerPosition()
	if !ok {
		return HitWall
	}

	p := newPlan(w)
	if res := p.move(dir, from, from.Move(dir), true); res != Ok {
		return res
	}
	p.commit()

	if w.IsComplete() {
		return LevelComplete
	}
	return Ok
}

// relocation is one planned object move.
type relocation struct {
	from Position
	to   Position
}

// plan accumulates relocations for one step without touching the world.
// Lookups go through an overlay so that later checks in a chain observe the
// relocations already planned further down it.
type plan struct {
	w       *World
	moves   []relocation
	vacated map[Position]bool
	arrived map[Position]Object
}

func newPlan(w *World) *plan {
	return &plan{
		w:       w,
		vacated: make(map[Position]bool),
		arrived: make(map[Position]Object),
	}
}

// occupant returns the object at pos as it would be after the planned moves.
func (p *plan) occupant(pos Position) (Object, bool) {
	if obj, ok := p.arrived[pos]; ok {
		return obj, true
	}
	if p.vacated[pos] {
		return nil, false
	}
	obj, ok := p.w.objects[pos]
	return obj, ok
}

// doorOpen is IsDoorOpen evaluated against the planned placement.
func (p *plan) doorOpen(id uint32) bool {
	ds, ok := p.w.doors[id]
	if !ok {
		return false
	}
	for _, b := range ds.Buttons {
		if _, occupied := p.occupant(b); occupied {
			return true
		}
	}
	return false
}

func (p *plan) relocate(from, to Position) {
	obj, _ := p.occupant(from)
	if _, ok := p.arrived[from]; ok {
		delete(p.arrived, from)
	} else {
		p.vacated[from] = true
	}
	p.arrived[to] = obj
	p.moves = append(p.moves, relocation{from: from, to: to})
}

// commit applies the planned relocations in order. Relocations are recorded
// tail-first, so every destination is free when its move is applied.
func (p *plan) commit() {
	for _, m := range p.moves {
		obj := p.w.objects[m.from]
		delete(p.w.objects, m.from)
		p.w.objects[m.to] = obj
	}
}

// move plans moving the object at from into to. direct is false when the hop
// comes out of a portal, which exempts it from the exit and directional
// floor checks.
func (p *plan) move(dir Direction, from, to Position, direct bool) StepResult {
	mover, _ := p.occupant(from)

	if direct && !tileAllows(p.w.tiles[from], dir) {
		return InvalidDirection
	}

	target, ok := p.w.tiles[to]
	if !ok {
		return HitWall
	}

	if occupant, ok := p.occupant(to); ok {
		if !IsPlayer(mover) {
			return PushTwoObjects
		}
		if IsPlayer(occupant) {
			return PushYourself
		}
		if !objectAllowsPush(occupant, dir) {
			return InvalidDirection
		}
		if res := p.move(dir, to, to.Move(dir), true); res != Ok {
			return res
		}
	}

	switch t := target.(type) {
	case Floor, Goal, Button:
	case DirFloor:
		if direct && !tileAllows(t, dir) {
			return InvalidDirection
		}
	case Door:
		if !p.doorOpen(t.DoorID) {
			return SlamOnDoor
		}
	case Portal:
		if dir != t.InDir {
			return InvalidDirection
		}
		// The mover has not been relocated yet, so a route that leads back
		// to its own cell finds it there and is refused as PushYourself.
		exit, exitDir := p.w.portalExit(to, t.PortalID)
		return p.move(exitDir, from, exit, false)
	}

	p.relocate(from, to)
	return Ok
}
