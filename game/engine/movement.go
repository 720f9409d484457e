package engine

import "errors"

// ErrOutOfBoard is returned by Move when a step would leave the board
var ErrOutOfBoard = errors.New("out of the board")

// Knight is the mutable state of the agent during a single run
type Knight struct {
	position Coordinates
	facing   Direction
}

// MoveResult describes how a Move call played out. It exists for
// diagnostics; a blocked move is still a successful move.
type MoveResult struct {
	Requested int          `json:"requested"`
	Taken     int          `json:"taken"`
	Blocked   bool         `json:"blocked,omitempty"`
	BlockedAt *Coordinates `json:"blocked_at,omitempty"`
	// Rejected is the cell whose step left the board, set only with ErrOutOfBoard
	Rejected *Coordinates `json:"rejected,omitempty"`
}

// NewKnight places a knight at position facing the given direction
func NewKnight(position Coordinates, facing Direction) *Knight {
	return &Knight{position: position, facing: facing}
}

// Position returns the current coordinates
func (k *Knight) Position() Coordinates {
	return k.position
}

// Facing returns the current direction
func (k *Knight) Facing() Direction {
	return k.facing
}

// Placement returns the current coordinates and direction
func (k *Knight) Placement() Placement {
	return Placement{Coordinates: k.position, Direction: k.facing}
}

// Rotate replaces the facing direction. Rotation is absolute, not relative.
func (k *Knight) Rotate(d Direction) {
	k.facing = d
}

// Move advances up to steps cells in the facing direction.
//
// Each candidate cell is checked for bounds first: leaving the board stops the
// move with ErrOutOfBoard and the knight stays on the last cell it reached.
// A candidate holding an obstacle ends the move early without error. A
// non-positive step count does nothing.
func (k *Knight) Move(steps int, board *Board) (MoveResult, error) {
	result := MoveResult{Requested: steps}

	for i := 0; i < steps; i++ {
		next := k.position.Translate(k.facing)

		if !board.IsWithinBounds(next) {
			result.Rejected = &next
			return result, ErrOutOfBoard
		}

		if board.HasObstacle(next) {
			result.Blocked = true
			result.BlockedAt = &next
			return result, nil
		}

		k.position = next
		result.Taken++
	}

	return result, nil
}
