package mcp

import (
	"fmt"
	"strings"

	"github.com/wricardo/knight-board/game/engine"
	"github.com/wricardo/knight-board/game/report"
	"github.com/wricardo/knight-board/game/runs"
)

func formatResult(doc report.Document) string {
	if doc.Position == nil {
		return doc.Status
	}
	return fmt.Sprintf("%s at (%d,%d) facing %s", doc.Status, doc.Position.X, doc.Position.Y, doc.Position.Direction)
}

// formatRun returns the short form shown after a run is created
func formatRun(run *runs.Run) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Run %s\n", run.ID)
	fmt.Fprintf(&sb, "Result: %s\n", formatResult(run.Result))
	if run.BoardURL != "" || run.CommandsURL != "" {
		fmt.Fprintf(&sb, "Sources: board=%s commands=%s\n", run.BoardURL, run.CommandsURL)
	}
	fmt.Fprintf(&sb, "Instructions: %d", len(run.Commands))

	ignored := 0
	blocked := 0
	for _, step := range run.Steps {
		if step.Ignored {
			ignored++
		}
		if step.Move != nil && step.Move.Blocked {
			blocked++
		}
	}
	if ignored > 0 {
		fmt.Fprintf(&sb, " (%d ignored)", ignored)
	}
	if blocked > 0 {
		fmt.Fprintf(&sb, "\nMoves cut short by obstacles: %d", blocked)
	}
	sb.WriteString("\n\nUse get_run for the full trace.")
	return sb.String()
}

// formatRunDetail adds the step trace and a drawing of the final board
func formatRunDetail(run *runs.Run) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Run %s (created %s)\n", run.ID, run.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&sb, "Result: %s\n", formatResult(run.Result))

	if len(run.Steps) > 0 {
		sb.WriteString("\nSteps:\n")
		for _, step := range run.Steps {
			sb.WriteString(formatStepLine(step))
			sb.WriteByte('\n')
		}
	}

	if drawing := drawBoard(run); drawing != "" {
		sb.WriteString("\nBoard (^ > v < knight, # obstacle):\n")
		sb.WriteString(drawing)
	}

	return strings.TrimRight(sb.String(), "\n")
}

func formatStepLine(step engine.Step) string {
	line := fmt.Sprintf("  %2d. %-20q", step.Index, step.Instruction)
	switch {
	case step.Ignored:
		return line + " ignored"
	case step.After == nil:
		return line + " -> " + step.State
	}

	line += " -> " + step.After.String()
	if step.Move != nil {
		line += fmt.Sprintf(" (%d/%d steps", step.Move.Taken, step.Move.Requested)
		if step.Move.Blocked && step.Move.BlockedAt != nil {
			line += ", blocked by obstacle at " + step.Move.BlockedAt.String()
		}
		if step.Move.Rejected != nil {
			line += ", next cell " + step.Move.Rejected.String() + " is off the board"
		}
		line += ")"
	}
	return line
}

// drawBoard renders the board with the knight's last known placement. Boards
// too large to be useful as text are skipped.
func drawBoard(run *runs.Run) string {
	if run.Board == nil {
		return ""
	}
	board, err := run.Board.Board()
	if err != nil || board.Width() > 60 || board.Height() > 60 {
		return ""
	}

	var knight *engine.Placement
	for i := len(run.Steps) - 1; i >= 0; i-- {
		if run.Steps[i].After != nil {
			knight = run.Steps[i].After
			break
		}
	}
	return engine.Render(board, knight)
}

func formatRunList(list []runs.Summary) string {
	if len(list) == 0 {
		return "No runs recorded"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d run(s):\n", len(list))
	for _, s := range list {
		fmt.Fprintf(&sb, "- %s  %s  %-22s %d instruction(s)\n",
			s.ID, s.CreatedAt.Format("2006-01-02 15:04:05"), s.Status, s.Commands)
	}
	return strings.TrimRight(sb.String(), "\n")
}
