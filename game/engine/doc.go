// Package engine provides the core simulation logic for the knight board.
//
// The engine package implements:
//   - Grid-based movement with boundary and obstacle detection
//   - Absolute rotation between the four compass directions
//   - Parsing of START, ROTATE and MOVE instructions
//   - The command interpreter state machine and its terminal outcome
//
// Core Types:
//
// Board is the immutable grid (width, height and obstacle set). Knight holds
// the mutable position and facing direction for one run. Interpreter drives a
// Knight across a Board following an instruction list and yields an Outcome.
//
// Usage:
//
//	board := engine.NewBoard(8, 8, []engine.Coordinates{{X: 2, Y: 2}})
//	outcome := engine.NewInterpreter(board).Run([]string{
//		"START 1,1,NORTH",
//		"MOVE 1",
//		"ROTATE EAST",
//		"MOVE 2",
//	})
//	fmt.Println(outcome.Status, outcome.Placement)
//
// Movement Rules:
//
// A MOVE is applied one unit step at a time. A step that would leave the
// board fails the run with OUT_OF_THE_BOARD and is not applied; steps taken
// before it are kept. A step into an obstacle silently ends the current MOVE
// and the run continues. Instructions that are neither ROTATE nor MOVE shaped
// are ignored once the run has started.
//
// Concurrency:
//
// A Board is read-only and may be shared by any number of concurrent runs.
// Each Run builds its own Knight and statechart, so an Interpreter may serve
// concurrent runs as long as its step observer tolerates concurrent calls.
package engine
