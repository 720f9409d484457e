// Command analyze prints a human-readable breakdown of a knight run: the board
// as ASCII, a per-instruction trace, and a summary with the final result
// document. Documents are read from URLs or local files, like the server does.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/wricardo/knight-board/game/config"
	"github.com/wricardo/knight-board/game/engine"
	"github.com/wricardo/knight-board/game/report"
	"github.com/wricardo/knight-board/game/source"
)

// Analysis aggregates the numbers printed in the summary
type Analysis struct {
	Instructions int
	Ignored      int
	Blocked      int
	StepsTaken   int
	Displacement int
	Result       report.Document
}

func main() {
	cmd := &cli.Command{
		Name:  "analyze",
		Usage: "render a board and trace a command list over it",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "board", Aliases: []string{"b"}, Usage: "board document URL or path", Sources: cli.EnvVars("BOARD_API")},
			&cli.StringFlag{Name: "commands", Aliases: []string{"c"}, Usage: "commands document URL or path", Sources: cli.EnvVars("COMMANDS_API")},
			&cli.BoolFlag{Name: "frames", Usage: "draw the board after every instruction"},
			&cli.DurationFlag{Name: "timeout", Value: config.DefaultFetchTimeout, Usage: "per-request fetch timeout"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			fetcher := source.NewFetcher(config.FetchConfig{
				Timeout:    cmd.Duration("timeout"),
				RetryDelay: config.DefaultRetryDelay,
			})
			docs, err := fetcher.FetchAll(ctx, cmd.String("board"), cmd.String("commands"))
			if err != nil {
				return err
			}
			analyze(os.Stdout, docs.Board, docs.Commands, cmd.Bool("frames"))
			return nil
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// analyze runs commands over board and writes the report to w
func analyze(w io.Writer, board *engine.Board, commands []string, frames bool) Analysis {
	fmt.Fprintf(w, "=== Board %dx%d, %d obstacle(s) ===\n", board.Width(), board.Height(), len(board.Obstacles()))

	var start *engine.Placement
	if len(commands) > 0 {
		if p, err := engine.ParseStart(commands[0]); err == nil {
			start = &p
		}
	}
	if start != nil && board.IsWithinBounds(start.Coordinates) {
		fmt.Fprint(w, engine.Render(board, start))
	} else {
		fmt.Fprint(w, engine.Render(board, nil))
	}

	analysis := Analysis{Instructions: len(commands)}
	var last *engine.Placement

	fmt.Fprintf(w, "\n=== Trace ===\n")
	began := time.Now()
	outcome := engine.NewInterpreter(board, engine.WithStepObserver(func(step engine.Step) {
		fmt.Fprintf(w, "%3d  %-24s %s\n", step.Index, step.Instruction, describe(step))

		if step.Ignored {
			analysis.Ignored++
		}
		if step.Move != nil {
			analysis.StepsTaken += step.Move.Taken
			if step.Move.Blocked {
				analysis.Blocked++
			}
		}
		if step.After != nil {
			last = step.After
			if frames {
				fmt.Fprint(w, indent(engine.Render(board, step.After), "     "))
			}
		}
	})).Run(commands)
	elapsed := time.Since(began)

	analysis.Result = report.FromOutcome(outcome)
	if start != nil && last != nil {
		analysis.Displacement = engine.Distance(start.Coordinates, last.Coordinates)
	}

	fmt.Fprintf(w, "\n=== Summary ===\n")
	fmt.Fprintf(w, "Instructions: %d (%d ignored)\n", analysis.Instructions, analysis.Ignored)
	fmt.Fprintf(w, "Cells walked: %d\n", analysis.StepsTaken)
	fmt.Fprintf(w, "Moves cut short by obstacles: %d\n", analysis.Blocked)
	fmt.Fprintf(w, "Distance from start: %d\n", analysis.Displacement)
	fmt.Fprintf(w, "Interpreted in: %s\n", elapsed.Round(time.Microsecond))

	if analysis.Result.Succeeded() && !frames && last != nil {
		fmt.Fprintf(w, "\n=== Final position ===\n")
		fmt.Fprint(w, engine.Render(board, last))
	}

	doc, _ := json.Marshal(analysis.Result)
	fmt.Fprintf(w, "\nResult: %s\n", doc)
	return analysis
}

func describe(step engine.Step) string {
	switch {
	case step.Ignored:
		return "ignored"
	case step.After == nil:
		return "-> " + step.State
	}

	text := "-> " + step.After.String()
	if step.Move == nil {
		return text
	}
	if step.Move.Rejected != nil {
		return fmt.Sprintf("%s, %s is off the board", text, step.Move.Rejected)
	}
	if step.Move.Blocked {
		return fmt.Sprintf("%s, blocked at %s after %d/%d", text, step.Move.BlockedAt, step.Move.Taken, step.Move.Requested)
	}
	return text
}

func indent(text, prefix string) string {
	lines := strings.SplitAfter(text, "\n")
	var sb strings.Builder
	for _, line := range lines {
		if line == "" {
			continue
		}
		sb.WriteString(prefix)
		sb.WriteString(line)
	}
	return sb.String()
}
