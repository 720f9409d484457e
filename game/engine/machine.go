package engine

import (
	"github.com/felixgeelhaar/statekit"
)

// Run lifecycle states. The four outcome states are final.
const (
	stateAwaitingStart      statekit.StateID = "awaiting_start"
	stateRunning            statekit.StateID = "running"
	stateSucceeded          statekit.StateID = "succeeded"
	stateFailedGeneric      statekit.StateID = "failed_generic"
	stateFailedInvalidStart statekit.StateID = "failed_invalid_start"
	stateFailedOutOfBoard   statekit.StateID = "failed_out_of_board"
)

const (
	eventStartAccepted statekit.EventType = "START_ACCEPTED"
	eventStartRejected statekit.EventType = "START_REJECTED"
	eventMalformed     statekit.EventType = "MALFORMED"
	eventOutOfBoard    statekit.EventType = "OUT_OF_BOARD"
	eventExhausted     statekit.EventType = "EXHAUSTED"
)

// runContext is the statechart context. Knight state lives on the
// Interpreter; the chart only tracks where the run is in its lifecycle.
type runContext struct{}

// stateStatus maps each final state to the outcome status it produces
var stateStatus = map[statekit.StateID]Status{
	stateSucceeded:          StatusSuccess,
	stateFailedGeneric:      StatusGenericError,
	stateFailedInvalidStart: StatusInvalidStartPosition,
	stateFailedOutOfBoard:   StatusOutOfTheBoard,
}

// newRunMachine builds the statechart for a single run
func newRunMachine() (*statekit.MachineConfig[*runContext], error) {
	return statekit.NewMachine[*runContext]("knight-run").
		WithInitial(stateAwaitingStart).
		WithContext(&runContext{}).
		State(stateAwaitingStart).
			On(eventStartAccepted).Target(stateRunning).
			On(eventStartRejected).Target(stateFailedInvalidStart).
			On(eventMalformed).Target(stateFailedGeneric).
			Done().
		State(stateRunning).
			On(eventOutOfBoard).Target(stateFailedOutOfBoard).
			On(eventExhausted).Target(stateSucceeded).
			Done().
		State(stateSucceeded).
			Final().
			Done().
		State(stateFailedGeneric).
			Final().
			Done().
		State(stateFailedInvalidStart).
			Final().
			Done().
		State(stateFailedOutOfBoard).
			Final().
			Done().
		Build()
}
