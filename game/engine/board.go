package engine

import "sort"

// Board is the bounded grid the knight moves on. It is never modified after
// construction.
type Board struct {
	width     int
	height    int
	obstacles map[Coordinates]struct{}
}

// NewBoard creates a board of the given size. Obstacle coordinates are taken
// as given and are not checked against the bounds.
func NewBoard(width, height int, obstacles []Coordinates) *Board {
	set := make(map[Coordinates]struct{}, len(obstacles))
	for _, o := range obstacles {
		set[o] = struct{}{}
	}
	return &Board{
		width:     width,
		height:    height,
		obstacles: set,
	}
}

// Width returns the number of columns
func (b *Board) Width() int {
	return b.width
}

// Height returns the number of rows
func (b *Board) Height() int {
	return b.height
}

// IsWithinBounds reports whether c lies in [0,width-1]x[0,height-1]
func (b *Board) IsWithinBounds(c Coordinates) bool {
	return c.X >= 0 && c.X < b.width && c.Y >= 0 && c.Y < b.height
}

// HasObstacle reports whether c is an obstacle cell
func (b *Board) HasObstacle(c Coordinates) bool {
	_, ok := b.obstacles[c]
	return ok
}

// Obstacles returns the obstacle cells ordered by row, then column
func (b *Board) Obstacles() []Coordinates {
	result := make([]Coordinates, 0, len(b.obstacles))
	for c := range b.obstacles {
		result = append(result, c)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Y != result[j].Y {
			return result[i].Y < result[j].Y
		}
		return result[i].X < result[j].X
	})
	return result
}
