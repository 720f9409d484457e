// Command validate checks board and commands JSON documents before they are
// served to the knight. It checks:
//   - JSON structure and required fields
//   - Board dimensions are positive
//   - Obstacles lie inside the board and are not repeated
//   - The first instruction is a well-formed START on a free cell
//   - Every later instruction is a ROTATE or MOVE (others are reported as ignored)
//   - Reachability: how many free cells the knight could reach from START
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/wricardo/knight-board/game/engine"
	"github.com/wricardo/knight-board/game/report"
	"github.com/wricardo/knight-board/game/source"
)

const (
	infoPrefix    = "✓ "
	warningPrefix = "⚠ "
)

// ValidationResult captures the outcome of validating a single file.
// Messages holds errors when Valid is false; informational lines carry the
// "✓ " prefix and warnings the "⚠ " prefix.
type ValidationResult struct {
	File     string
	Valid    bool
	Messages []string
}

func (r *ValidationResult) fail(format string, args ...interface{}) {
	r.Valid = false
	r.Messages = append(r.Messages, fmt.Sprintf(format, args...))
}

func (r *ValidationResult) info(format string, args ...interface{}) {
	r.Messages = append(r.Messages, infoPrefix+fmt.Sprintf(format, args...))
}

func (r *ValidationResult) warn(format string, args ...interface{}) {
	r.Messages = append(r.Messages, warningPrefix+fmt.Sprintf(format, args...))
}

// validateBoard loads and validates a board document. The returned board is
// nil when the document cannot be used.
func validateBoard(filePath string) (ValidationResult, *engine.Board) {
	result := ValidationResult{
		File:     filepath.Base(filePath),
		Valid:    true,
		Messages: []string{},
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.fail("Failed to read file: %v", err)
		return result, nil
	}

	board, err := source.DecodeBoard(data)
	if err != nil {
		result.fail("%v", err)
		return result, nil
	}

	// Decoding collapses duplicates, so count them from the raw document
	var doc source.BoardDocument
	_ = json.Unmarshal(data, &doc)

	seen := make(map[engine.Coordinates]bool)
	for _, obstacle := range doc.Obstacles {
		if !board.IsWithinBounds(obstacle) {
			result.fail("Obstacle %s is outside the %dx%d board", obstacle, board.Width(), board.Height())
		}
		if seen[obstacle] {
			result.warn("Obstacle %s is listed more than once", obstacle)
		}
		seen[obstacle] = true
	}

	if !result.Valid {
		return result, nil
	}

	result.info("Board: %dx%d", board.Width(), board.Height())
	result.info("Obstacles: %d", len(board.Obstacles()))
	return result, board
}

// validateCommands loads and validates a commands document against board.
// A nil board limits the checks to the instruction grammar.
func validateCommands(filePath string, board *engine.Board) ValidationResult {
	result := ValidationResult{
		File:     filepath.Base(filePath),
		Valid:    true,
		Messages: []string{},
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.fail("Failed to read file: %v", err)
		return result
	}

	commands, err := source.DecodeCommands(data)
	if err != nil {
		result.fail("%v", err)
		return result
	}

	if len(commands) == 0 {
		result.fail("Instruction list is empty")
		return result
	}

	start, err := engine.ParseStart(commands[0])
	if err != nil {
		result.fail("First instruction %q is not a valid START: %v", commands[0], err)
		return result
	}

	if board != nil {
		switch {
		case !board.IsWithinBounds(start.Coordinates):
			result.fail("START %s is outside the %dx%d board", start.Coordinates, board.Width(), board.Height())
		case board.HasObstacle(start.Coordinates):
			result.fail("START %s is on an obstacle", start.Coordinates)
		}
	}

	rotates, moves, ignored := 0, 0, 0
	for i, instruction := range commands[1:] {
		cmd, ok := engine.ParseCommand(instruction)
		if !ok {
			ignored++
			result.warn("Instruction %d %q is not ROTATE or MOVE and will be ignored", i+2, instruction)
			continue
		}
		switch cmd.Kind {
		case engine.CommandRotate:
			rotates++
		case engine.CommandMove:
			moves++
		}
	}

	if !result.Valid {
		return result
	}

	result.info("Start: %s", start)
	result.info("Instructions: %d (%d rotate, %d move, %d ignored)", len(commands), rotates, moves, ignored)

	if board != nil {
		reachable := reachableCells(board, start.Coordinates)
		free := board.Width()*board.Height() - len(board.Obstacles())
		result.info("Reachability: %d/%d free cells reachable from START", reachable, free)

		doc := report.FromOutcome(engine.NewInterpreter(board).Run(commands))
		if doc.Succeeded() {
			result.info("Outcome: %s at (%d,%d) facing %s", doc.Status, doc.Position.X, doc.Position.Y, doc.Position.Direction)
		} else {
			result.warn("Outcome: %s", doc.Status)
		}
	}

	return result
}

// reachableCells counts the free cells connected to from by 4-directional
// steps, using a flood fill
func reachableCells(board *engine.Board, from engine.Coordinates) int {
	visited := map[engine.Coordinates]bool{}
	queue := []engine.Coordinates{from}

	isPassable := func(c engine.Coordinates) bool {
		return board.IsWithinBounds(c) && !board.HasObstacle(c)
	}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if visited[current] || !isPassable(current) {
			continue
		}
		visited[current] = true

		for _, dir := range engine.Directions {
			next := current.Translate(dir)
			if !visited[next] && isPassable(next) {
				queue = append(queue, next)
			}
		}
	}

	return len(visited)
}

func printResult(result ValidationResult) bool {
	fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.File)

	if result.Valid {
		fmt.Println("✅ VALID")
		for _, msg := range result.Messages {
			fmt.Println("  " + msg)
		}
		return true
	}

	fmt.Println("❌ INVALID")
	for _, msg := range result.Messages {
		if !strings.HasPrefix(msg, infoPrefix) {
			fmt.Println("  ❌ " + msg)
		}
	}
	return false
}

var errInvalidDocuments = errors.New("some documents have errors")

func run(ctx context.Context, cmd *cli.Command) error {
	boardPath := cmd.String("board")
	commandsPath := cmd.String("commands")
	if boardPath == "" && commandsPath == "" {
		return fmt.Errorf("at least one of --board or --commands is required")
	}

	allValid := true
	var board *engine.Board
	if boardPath != "" {
		var result ValidationResult
		result, board = validateBoard(boardPath)
		allValid = printResult(result) && allValid
	}
	if commandsPath != "" {
		allValid = printResult(validateCommands(commandsPath, board)) && allValid
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if !allValid {
		fmt.Println("❌ Some documents have errors")
		return errInvalidDocuments
	}
	fmt.Println("✅ All documents are valid!")
	return nil
}

// main validates the given board and commands documents, printing a concise
// report and exiting with non-zero status if any are invalid.
func main() {
	cmd := &cli.Command{
		Name:  "validate",
		Usage: "check knight board and commands documents",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "board", Aliases: []string{"b"}, Usage: "board document path"},
			&cli.StringFlag{Name: "commands", Aliases: []string{"c"}, Usage: "commands document path"},
		},
		Action: run,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		if !errors.Is(err, errInvalidDocuments) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
