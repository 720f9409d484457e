package engine

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownDirection = errors.New("unknown direction")
	ErrUnknownStatus    = errors.New("unknown status")
)

// Coordinates represents an x,y cell on the board
type Coordinates struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Translate returns the neighbouring cell one unit step towards d
func (c Coordinates) Translate(d Direction) Coordinates {
	dx, dy := d.Vector()
	return Coordinates{X: c.X + dx, Y: c.Y + dy}
}

func (c Coordinates) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Direction is one of the four compass directions the knight can face
type Direction int

const (
	North Direction = iota
	East
	South
	West
)

// Directions lists every direction in declaration order
var Directions = []Direction{North, East, South, West}

// directionNames is the single source of truth for direction tokens, used by
// both the instruction grammar and the output document.
var directionNames = map[Direction]string{
	North: "NORTH",
	East:  "EAST",
	South: "SOUTH",
	West:  "WEST",
}

var directionVectors = map[Direction][2]int{
	North: {0, 1},
	East:  {1, 0},
	South: {0, -1},
	West:  {-1, 0},
}

// Vector returns the unit step for the direction. North increases y.
func (d Direction) Vector() (dx, dy int) {
	v := directionVectors[d]
	return v[0], v[1]
}

// Valid reports whether d is one of the four compass values
func (d Direction) Valid() bool {
	_, ok := directionNames[d]
	return ok
}

func (d Direction) String() string {
	if name, ok := directionNames[d]; ok {
		return name
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// ParseDirection maps a case-sensitive token such as "NORTH" to a Direction
func ParseDirection(token string) (Direction, error) {
	for d, name := range directionNames {
		if name == token {
			return d, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownDirection, token)
}

// MarshalText encodes the direction by name so documents and traces read
// "NORTH" rather than 0
func (d Direction) MarshalText() ([]byte, error) {
	name, ok := directionNames[d]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownDirection, int(d))
	}
	return []byte(name), nil
}

func (d *Direction) UnmarshalText(text []byte) error {
	parsed, err := ParseDirection(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Placement is a position together with the direction the knight faces
type Placement struct {
	Coordinates Coordinates `json:"position"`
	Direction   Direction   `json:"direction"`
}

func (p Placement) String() string {
	return fmt.Sprintf("%s %s", p.Coordinates, p.Direction)
}

// Status is the terminal classification of a run
type Status int

const (
	StatusSuccess Status = iota
	StatusInvalidStartPosition
	StatusOutOfTheBoard
	StatusGenericError
)

var statusNames = map[Status]string{
	StatusSuccess:              "SUCCESS",
	StatusInvalidStartPosition: "INVALID_START_POSITION",
	StatusOutOfTheBoard:        "OUT_OF_THE_BOARD",
	StatusGenericError:         "GENERIC_ERROR",
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// ParseStatus maps an output status name back to a Status
func ParseStatus(name string) (Status, error) {
	for s, n := range statusNames {
		if n == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownStatus, name)
}

// Outcome is the result of a run: a final placement on success, otherwise
// only the failure status.
type Outcome struct {
	Status    Status
	Placement *Placement
}

// Succeeded builds a successful outcome carrying the final placement
func Succeeded(p Placement) Outcome {
	return Outcome{Status: StatusSuccess, Placement: &p}
}

// Failed builds a failure outcome. Passing StatusSuccess is a programming
// error and is reported as a generic failure.
func Failed(status Status) Outcome {
	if status == StatusSuccess {
		status = StatusGenericError
	}
	return Outcome{Status: status}
}

// IsSuccess reports whether the run completed without a fatal failure
func (o Outcome) IsSuccess() bool {
	return o.Status == StatusSuccess && o.Placement != nil
}
