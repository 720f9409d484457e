package engine

import (
	"errors"

	"github.com/felixgeelhaar/statekit"
	"go.uber.org/zap"
)

// Step records what a single instruction did during a run
type Step struct {
	Index       int         `json:"index"`
	Instruction string      `json:"instruction"`
	Kind        string      `json:"kind"`
	Ignored     bool        `json:"ignored,omitempty"`
	Before      *Placement  `json:"before,omitempty"`
	After       *Placement  `json:"after,omitempty"`
	Move        *MoveResult `json:"move,omitempty"`
	State       string      `json:"state"`
}

// Option configures an Interpreter
type Option func(*Interpreter)

// WithLogger sets the logger used for per-instruction debug output
func WithLogger(logger *zap.Logger) Option {
	return func(i *Interpreter) {
		if logger != nil {
			i.logger = logger
		}
	}
}

// WithStepObserver registers a callback invoked after every consumed instruction
func WithStepObserver(fn func(Step)) Option {
	return func(i *Interpreter) {
		i.observer = fn
	}
}

// Interpreter executes instruction lists against a board. A single
// Interpreter may be reused; every Run starts from a fresh knight.
type Interpreter struct {
	board    *Board
	logger   *zap.Logger
	observer func(Step)
}

// NewInterpreter creates an interpreter bound to board
func NewInterpreter(board *Board, opts ...Option) *Interpreter {
	i := &Interpreter{
		board:  board,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// run is the per-call execution state
type run struct {
	*Interpreter
	machine *statekit.Interpreter[*runContext]
	knight  *Knight
}

// Run executes instructions and returns the terminal outcome. The first
// instruction must be START; later instructions that are not ROTATE or MOVE
// are skipped.
func (i *Interpreter) Run(instructions []string) Outcome {
	if i.board == nil {
		i.logger.Debug("no board supplied")
		return Failed(StatusGenericError)
	}

	config, err := newRunMachine()
	if err != nil {
		i.logger.Error("failed to build run statechart", zap.Error(err))
		return Failed(StatusGenericError)
	}

	r := &run{Interpreter: i, machine: statekit.NewInterpreter(config)}
	r.machine.Start()
	defer r.machine.Stop()

	if len(instructions) == 0 {
		r.logger.Debug("empty instruction list")
		r.send(eventMalformed)
		return r.outcome()
	}

	if !r.start(instructions[0]) {
		return r.outcome()
	}

	for idx, instruction := range instructions[1:] {
		if !r.apply(idx+1, instruction) {
			return r.outcome()
		}
	}

	r.send(eventExhausted)
	return r.outcome()
}

// start consumes the START instruction and reports whether the run continues
func (r *run) start(instruction string) bool {
	step := Step{Index: 0, Instruction: instruction, Kind: "start"}

	placement, err := ParseStart(instruction)
	switch {
	case err != nil:
		r.logger.Debug("malformed start", zap.String("instruction", instruction), zap.Error(err))
		r.send(eventMalformed)
	case !r.board.IsWithinBounds(placement.Coordinates) || r.board.HasObstacle(placement.Coordinates):
		r.logger.Debug("invalid start position", zap.Stringer("placement", placement))
		r.send(eventStartRejected)
	default:
		r.knight = NewKnight(placement.Coordinates, placement.Direction)
		step.After = &placement
		r.send(eventStartAccepted)
	}

	r.observe(step)
	return r.knight != nil
}

// apply executes one post-START instruction and reports whether the run continues
func (r *run) apply(idx int, instruction string) bool {
	before := r.knight.Placement()
	step := Step{Index: idx, Instruction: instruction, Before: &before}

	cmd, ok := ParseCommand(instruction)
	if !ok {
		step.Kind = "ignored"
		step.Ignored = true
		step.After = &before
		r.logger.Debug("ignoring instruction", zap.Int("index", idx), zap.String("instruction", instruction))
		r.observe(step)
		return true
	}

	step.Kind = cmd.Kind.String()
	continueRun := true

	switch cmd.Kind {
	case CommandRotate:
		r.knight.Rotate(cmd.Direction)
	case CommandMove:
		result, err := r.knight.Move(cmd.Steps, r.board)
		step.Move = &result
		if errors.Is(err, ErrOutOfBoard) {
			r.send(eventOutOfBoard)
			continueRun = false
		}
	}

	after := r.knight.Placement()
	step.After = &after
	r.logger.Debug("applied instruction",
		zap.Int("index", idx),
		zap.String("instruction", instruction),
		zap.Stringer("placement", after),
	)
	r.observe(step)
	return continueRun
}

func (r *run) send(event statekit.EventType) {
	r.machine.Send(statekit.Event{Type: event})
	r.logger.Debug("run transition",
		zap.String("event", string(event)),
		zap.String("state", string(r.machine.State().Value)),
	)
}

func (r *run) observe(step Step) {
	step.State = string(r.machine.State().Value)
	if r.observer != nil {
		r.observer(step)
	}
}

// outcome maps the current final state to an Outcome
func (r *run) outcome() Outcome {
	state := r.machine.State().Value
	status, ok := stateStatus[state]
	if !ok || !r.machine.Done() {
		r.logger.Error("run ended outside a final state", zap.String("state", string(state)))
		return Failed(StatusGenericError)
	}
	if status == StatusSuccess {
		return Succeeded(r.knight.Placement())
	}
	return Failed(status)
}
