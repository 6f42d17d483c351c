package core

import "fmt"

// Position is a cell on the level grid.
// X increases to the right, Y increases downward (screen coordinates).
type Position struct {
	X int
	Y int
}

// P is a convenience constructor for Position.
func P(x, y int) Position {
	return Position{X: x, Y: y}
}

// String returns a string representation of the position.
func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Move returns the adjacent position in the given direction.
func (p Position) Move(d Direction) Position {
	dx, dy := d.Delta()
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// Less orders positions lexicographically by X, then Y.
func (p Position) Less(other Position) bool {
	if p.X != other.X {
		return p.X < other.X
	}
	return p.Y < other.Y
}

// Compare returns -1, 0 or +1 following Less.
func (p Position) Compare(other Position) int {
	switch {
	case p.Less(other):
		return -1
	case other.Less(p):
		return 1
	default:
		return 0
	}
}
