package formats

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/sbokena/internal/games/sokoban/core"
)

// Map legend:
//
//	# or space  wall
//	-           floor
//	.           goal
//	@ / +       player on floor / on goal
//	$ / *       box on floor / on goal
//	^ v < >     directional floor
//
// Doors, buttons, portals and directional boxes have no map glyph; they are
// listed explicitly and override the map.
func expandMap(lvl *Level, text string) error {
	rows := strings.Split(strings.TrimRight(text, "\n"), "\n")
	for y, line := range rows {
		for x, ch := range []rune(line) {
			pos := core.P(x, y)
			switch ch {
			case '#', ' ':
			case '-':
				lvl.Tiles[pos] = core.Floor{}
			case '.':
				lvl.Tiles[pos] = core.Goal{}
			case '@':
				lvl.Tiles[pos] = core.Floor{}
				lvl.Objects[pos] = core.Player{}
			case '+':
				lvl.Tiles[pos] = core.Goal{}
				lvl.Objects[pos] = core.Player{}
			case '$':
				lvl.Tiles[pos] = core.Floor{}
				lvl.Objects[pos] = core.Box{}
			case '*':
				lvl.Tiles[pos] = core.Goal{}
				lvl.Objects[pos] = core.Box{}
			case '^':
				lvl.Tiles[pos] = core.DirFloor{Dir: core.Up}
			case 'v':
				lvl.Tiles[pos] = core.DirFloor{Dir: core.Down}
			case '<':
				lvl.Tiles[pos] = core.DirFloor{Dir: core.Left}
			case '>':
				lvl.Tiles[pos] = core.DirFloor{Dir: core.Right}
			default:
				return fmt.Errorf("map row %d col %d: unknown glyph %q", y, x, ch)
			}
		}
	}
	return nil
}
