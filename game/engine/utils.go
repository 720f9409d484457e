package engine

import "strings"

// Render draws the board as text, top row first so that north points up.
// Obstacles are '#', empty cells '.', and the knight, when given, is drawn
// with the arrow for its direction.
func Render(board *Board, knight *Placement) string {
	if board == nil {
		return ""
	}

	var sb strings.Builder
	for y := board.Height() - 1; y >= 0; y-- {
		for x := 0; x < board.Width(); x++ {
			c := Coordinates{X: x, Y: y}
			switch {
			case knight != nil && knight.Coordinates == c:
				sb.WriteRune(directionGlyph(knight.Direction))
			case board.HasObstacle(c):
				sb.WriteByte('#')
			default:
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func directionGlyph(d Direction) rune {
	switch d {
	case North:
		return '^'
	case East:
		return '>'
	case South:
		return 'v'
	case West:
		return '<'
	}
	return '?'
}

// Distance returns the Manhattan distance between two cells
func Distance(from, to Coordinates) int {
	dx := from.X - to.X
	if dx < 0 {
		dx = -dx
	}
	dy := from.Y - to.Y
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}
