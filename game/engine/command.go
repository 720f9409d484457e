package engine

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrMalformedStart is returned when the first instruction is not a valid START
var ErrMalformedStart = errors.New("malformed start instruction")

const (
	startKeyword  = "START"
	rotateKeyword = "ROTATE"
	moveKeyword   = "MOVE"
)

// CommandKind identifies the instructions accepted after START
type CommandKind int

const (
	CommandRotate CommandKind = iota + 1
	CommandMove
)

func (k CommandKind) String() string {
	switch k {
	case CommandRotate:
		return "rotate"
	case CommandMove:
		return "move"
	default:
		return "unknown"
	}
}

// Command is a parsed ROTATE or MOVE instruction
type Command struct {
	Kind      CommandKind
	Direction Direction // ROTATE only
	Steps     int       // MOVE only
}

func (c Command) String() string {
	if c.Kind == CommandRotate {
		return rotateKeyword + " " + c.Direction.String()
	}
	return moveKeyword + " " + strconv.Itoa(c.Steps)
}

// ParseStart parses "START <x>,<y>,<DIRECTION>". Keywords and direction tokens
// are case-sensitive and no surrounding whitespace is tolerated.
func ParseStart(instruction string) (Placement, error) {
	rest, ok := strings.CutPrefix(instruction, startKeyword+" ")
	if !ok {
		return Placement{}, fmt.Errorf("%w: missing %s prefix in %q", ErrMalformedStart, startKeyword, instruction)
	}

	fields := strings.Split(rest, ",")
	if len(fields) != 3 {
		return Placement{}, fmt.Errorf("%w: expected x,y,DIRECTION, got %q", ErrMalformedStart, rest)
	}

	x, err := strconv.Atoi(fields[0])
	if err != nil {
		return Placement{}, fmt.Errorf("%w: x coordinate: %v", ErrMalformedStart, err)
	}
	y, err := strconv.Atoi(fields[1])
	if err != nil {
		return Placement{}, fmt.Errorf("%w: y coordinate: %v", ErrMalformedStart, err)
	}
	dir, err := ParseDirection(fields[2])
	if err != nil {
		return Placement{}, fmt.Errorf("%w: %v", ErrMalformedStart, err)
	}

	return Placement{Coordinates: Coordinates{X: x, Y: y}, Direction: dir}, nil
}

// ParseCommand parses a ROTATE or MOVE instruction. The boolean is false for
// anything else, including a well-formed keyword with an invalid argument such
// as "MOVE -1" or "ROTATE UP"; the interpreter skips those.
func ParseCommand(instruction string) (Command, bool) {
	fields := strings.Split(instruction, " ")
	if len(fields) != 2 {
		return Command{}, false
	}

	switch fields[0] {
	case rotateKeyword:
		dir, err := ParseDirection(fields[1])
		if err != nil {
			return Command{}, false
		}
		return Command{Kind: CommandRotate, Direction: dir}, true
	case moveKeyword:
		steps, err := strconv.Atoi(fields[1])
		if err != nil || steps < 0 {
			return Command{}, false
		}
		return Command{Kind: CommandMove, Steps: steps}, true
	}

	return Command{}, false
}
