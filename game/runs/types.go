package runs

import (
	"time"

	"github.com/wricardo/knight-board/game/engine"
	"github.com/wricardo/knight-board/game/report"
	"github.com/wricardo/knight-board/game/source"
)

// Run is a completed simulation together with its inputs
type Run struct {
	ID          string                `json:"id"`
	CreatedAt   time.Time             `json:"created_at"`
	BoardURL    string                `json:"board_url,omitempty"`
	CommandsURL string                `json:"commands_url,omitempty"`
	Board       *source.BoardDocument `json:"board,omitempty"`
	Commands    []string              `json:"commands"`
	Result      report.Document       `json:"result"`
	Steps       []engine.Step         `json:"steps,omitempty"`
}

// Summary is the short form used in listings
type Summary struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Status    string    `json:"status"`
	Commands  int       `json:"commands"`
}

// Summary returns the listing form of the run
func (r *Run) Summary() Summary {
	return Summary{
		ID:        r.ID,
		CreatedAt: r.CreatedAt,
		Status:    r.Result.Status,
		Commands:  len(r.Commands),
	}
}
