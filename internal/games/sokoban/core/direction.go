// Package core provides the world model and step engine for the sokoban puzzle.
// This package is UI-agnostic and deterministic.
package core

import "fmt"

// Direction is one of the four cardinal directions.
type Direction uint8

const (
	Up Direction = iota
	Down
	Left
	Right
)

// Directions lists all cardinal directions in a stable order.
var Directions = [...]Direction{Up, Down, Left, Right}

// String returns the string representation of a direction.
func (d Direction) String() string {
	switch d {
	case Up:
		return "Up"
	case Down:
		return "Down"
	case Left:
		return "Left"
	case Right:
		return "Right"
	default:
		return "Unknown"
	}
}

// Reverse returns the opposite direction.
func (d Direction) Reverse() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	case Right:
		return Left
	default:
		return d
	}
}

// Delta returns the (dx, dy) offset for one step in this direction.
// Up decreases Y, Down increases Y (screen coordinates).
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case Up:
		return 0, -1
	case Down:
		return 0, 1
	case Left:
		return -1, 0
	case Right:
		return 1, 0
	default:
		return 0, 0
	}
}

// Letter returns the single-letter code used in solution strings.
func (d Direction) Letter() byte {
	switch d {
	case Up:
		return 'U'
	case Down:
		return 'D'
	case Left:
		return 'L'
	default:
		return 'R'
	}
}

// Arrow returns an arrow glyph pointing in this direction.
func (d Direction) Arrow() rune {
	switch d {
	case Up:
		return '^'
	case Down:
		return 'v'
	case Left:
		return '<'
	default:
		return '>'
	}
}

// ParseDirection parses a direction name ("up", "Up", "U").
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "up", "Up", "UP", "u", "U":
		return Up, nil
	case "down", "Down", "DOWN", "d", "D":
		return Down, nil
	case "left", "Left", "LEFT", "l", "L":
		return Left, nil
	case "right", "Right", "RIGHT", "r", "R":
		return Right, nil
	}
	return 0, fmt.Errorf("unknown direction %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Direction) UnmarshalText(text []byte) error {
	parsed, err := ParseDirection(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// ParseSolution decodes a solution string of U/D/L/R letters.
func ParseSolution(s string) ([]Direction, error) {
	dirs := make([]Direction, 0, len(s))
	for i := 0; i < len(s); i++ {
		d, err := ParseDirection(s[i : i+1])
		if err != nil {
			return nil, fmt.Errorf("move %d: %w", i+1, err)
		}
		dirs = append(dirs, d)
	}
	return dirs, nil
}

// FormatSolution encodes moves as a string of U/D/L/R letters.
func FormatSolution(dirs []Direction) string {
	b := make([]byte, len(dirs))
	for i, d := range dirs {
		b[i] = d.Letter()
	}
	return string(b)
}
