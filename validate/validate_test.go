package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/wricardo/knight-board/game/engine"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

func hasMessage(result ValidationResult, fragment string) bool {
	for _, msg := range result.Messages {
		if strings.Contains(msg, fragment) {
			return true
		}
	}
	return false
}

func TestValidateBoard_Valid(t *testing.T) {
	path := writeFile(t, "board.json", `{"width":5,"height":4,"obstacles":[{"x":1,"y":1},{"x":3,"y":2}]}`)

	result, board := validateBoard(path)
	if !result.Valid {
		t.Fatalf("Expected valid board, got: %v", result.Messages)
	}
	if board == nil {
		t.Fatal("Expected a board for a valid document")
	}
	if result.File != "board.json" {
		t.Errorf("Expected file name board.json, got %s", result.File)
	}
	for _, want := range []string{"✓ Board: 5x4", "✓ Obstacles: 2"} {
		if !hasMessage(result, want) {
			t.Errorf("Expected %q in %v", want, result.Messages)
		}
	}
}

func TestValidateBoard_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		fragment string
	}{
		{"invalid JSON", `{"width": 5, invalid}`, "invalid document"},
		{"missing height", `{"width":5}`, "width and height are required"},
		{"zero width", `{"width":0,"height":3}`, "dimensions must be positive"},
		{"obstacle outside", `{"width":3,"height":3,"obstacles":[{"x":3,"y":0}]}`, "Obstacle (3,0) is outside the 3x3 board"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, board := validateBoard(writeFile(t, "board.json", tt.content))
			if result.Valid {
				t.Fatal("Expected invalid board")
			}
			if board != nil {
				t.Error("Expected no board for an invalid document")
			}
			if !hasMessage(result, tt.fragment) {
				t.Errorf("Expected %q in %v", tt.fragment, result.Messages)
			}
		})
	}
}

func TestValidateBoard_DuplicateObstacle(t *testing.T) {
	path := writeFile(t, "board.json", `{"width":3,"height":3,"obstacles":[{"x":1,"y":1},{"x":1,"y":1}]}`)

	result, _ := validateBoard(path)
	if !result.Valid {
		t.Fatalf("Duplicates are a warning, not an error: %v", result.Messages)
	}
	if !hasMessage(result, "⚠ Obstacle (1,1) is listed more than once") {
		t.Errorf("Expected duplicate warning in %v", result.Messages)
	}
	if !hasMessage(result, "✓ Obstacles: 1") {
		t.Errorf("Expected one distinct obstacle in %v", result.Messages)
	}
}

func TestValidateBoard_MissingFile(t *testing.T) {
	result, _ := validateBoard(filepath.Join(t.TempDir(), "missing.json"))
	if result.Valid || !hasMessage(result, "Failed to read file") {
		t.Errorf("Expected read failure, got %v", result.Messages)
	}
}

func TestValidateCommands(t *testing.T) {
	board := engine.NewBoard(5, 5, []engine.Coordinates{{X: 2, Y: 2}})

	tests := []struct {
		name      string
		content   string
		valid     bool
		fragments []string
	}{
		{
			name:    "valid",
			content: `{"commands":["START 0,0,NORTH","MOVE 3","ROTATE EAST","MOVE 4"]}`,
			valid:   true,
			fragments: []string{
				"✓ Start: (0,0) NORTH",
				"✓ Instructions: 4 (1 rotate, 2 move, 0 ignored)",
				"✓ Outcome: SUCCESS at (4,3) facing EAST",
			},
		},
		{
			name:      "ignored instructions",
			content:   `{"commands":["START 0,0,NORTH","JUMP","MOVE -1"]}`,
			valid:     true,
			fragments: []string{`⚠ Instruction 2 "JUMP"`, `⚠ Instruction 3 "MOVE -1"`, "2 ignored"},
		},
		{
			name:      "outcome warning",
			content:   `{"commands":["START 0,0,SOUTH","MOVE 1"]}`,
			valid:     true,
			fragments: []string{"⚠ Outcome: OUT_OF_THE_BOARD"},
		},
		{
			name:      "empty",
			content:   `{"commands":[]}`,
			fragments: []string{"Instruction list is empty"},
		},
		{
			name:      "missing start",
			content:   `{"commands":["MOVE 1"]}`,
			fragments: []string{`First instruction "MOVE 1" is not a valid START`},
		},
		{
			name:      "start outside",
			content:   `{"commands":["START 5,0,NORTH"]}`,
			fragments: []string{"START (5,0) is outside the 5x5 board"},
		},
		{
			name:      "start on obstacle",
			content:   `{"commands":["START 2,2,WEST"]}`,
			fragments: []string{"START (2,2) is on an obstacle"},
		},
		{
			name:      "invalid JSON",
			content:   `{"commands": [}`,
			fragments: []string{"invalid document"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := validateCommands(writeFile(t, "commands.json", tt.content), board)
			if result.Valid != tt.valid {
				t.Fatalf("Valid = %v, want %v (%v)", result.Valid, tt.valid, result.Messages)
			}
			for _, fragment := range tt.fragments {
				if !hasMessage(result, fragment) {
					t.Errorf("Expected %q in %v", fragment, result.Messages)
				}
			}
		})
	}
}

func TestValidateCommands_WithoutBoard(t *testing.T) {
	result := validateCommands(writeFile(t, "commands.json", `{"commands":["START 40,40,NORTH","MOVE 2"]}`), nil)
	if !result.Valid {
		t.Fatalf("Expected grammar-only validation to pass, got %v", result.Messages)
	}
	if hasMessage(result, "Reachability") || hasMessage(result, "Outcome") {
		t.Errorf("Board checks should be skipped without a board: %v", result.Messages)
	}
}

func TestReachableCells(t *testing.T) {
	// A wall down column 2 splits the 5x3 board into 6 and 6 free cells
	wall := []engine.Coordinates{{X: 2, Y: 0}, {X: 2, Y: 1}, {X: 2, Y: 2}}
	board := engine.NewBoard(5, 3, wall)

	if got := reachableCells(board, engine.Coordinates{X: 0, Y: 0}); got != 6 {
		t.Errorf("reachable from west side = %d, want 6", got)
	}
	if got := reachableCells(board, engine.Coordinates{X: 4, Y: 2}); got != 6 {
		t.Errorf("reachable from east side = %d, want 6", got)
	}

	open := engine.NewBoard(4, 4, nil)
	if got := reachableCells(open, engine.Coordinates{X: 1, Y: 1}); got != 16 {
		t.Errorf("reachable on open board = %d, want 16", got)
	}
}
