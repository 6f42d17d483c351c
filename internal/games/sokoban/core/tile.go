package core

// Tile is the immutable ground at a position. The set of tile variants is
// closed: Floor, Button, Door, Portal, DirFloor and Goal. Any position absent
// from a world's tile map is a wall.
type Tile interface {
	tile()
}

// Floor is plain passable ground.
type Floor struct{}

// Button opens the door sharing its DoorID while anything stands on it.
type Button struct {
	DoorID uint32
}

// Door is passable only while one of its buttons is pressed.
type Door struct {
	DoorID uint32
}

// Portal teleports whatever enters it (moving exactly InDir) to its twin.
// The exit direction of the twin is the reverse of the twin's InDir.
type Portal struct {
	PortalID uint32
	InDir    Direction
}

// DirFloor may only be entered or left moving in Dir.
type DirFloor struct {
	Dir Direction
}

// Goal marks a box destination.
type Goal struct{}

func (Floor) tile()    {}
func (Button) tile()   {}
func (Door) tile()     {}
func (Portal) tile()   {}
func (DirFloor) tile() {}
func (Goal) tile()     {}

// tileAllows reports whether movement in dir is permitted on t.
// Only directional floors and portals restrict direction.
func tileAllows(t Tile, dir Direction) bool {
	switch t := t.(type) {
	case DirFloor:
		return t.Dir == dir
	case Portal:
		return t.InDir == dir
	default:
		return true
	}
}
