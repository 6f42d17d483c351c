package core

// Object is a movable thing standing on a tile. The variant set is closed:
// Player, Box and DirBox.
type Object interface {
	object()
}

// Player is the object driven by input. A valid world holds exactly one.
type Player struct{}

// Box can be pushed in any direction.
type Box struct{}

// DirBox can only be pushed in Dir.
type DirBox struct {
	Dir Direction
}

func (Player) object() {}
func (Box) object()    {}
func (DirBox) object() {}

// IsPlayer reports whether o is the player.
func IsPlayer(o Object) bool {
	_, ok := o.(Player)
	return ok
}

// objectAllowsPush reports whether o may be pushed in dir.
func objectAllowsPush(o Object, dir Direction) bool {
	switch o := o.(type) {
	case DirBox:
		return o.Dir == dir
	default:
		return true
	}
}
