package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/wricardo/knight-board/game/runs"
	"github.com/wricardo/knight-board/game/source"
	"github.com/wricardo/knight-board/metrics"
)

// KnightService defines all run operations
type KnightService interface {
	// Runs
	Simulate(ctx context.Context, req SimulateRequest) (*runs.Run, error)
	RunSources(ctx context.Context, boardURL, commandsURL string) (*runs.Run, error)

	// Registry
	GetRun(ctx context.Context, id string) (*runs.Run, error)
	ListRuns(ctx context.Context, limit int) ([]*runs.Run, error)
	DeleteRun(ctx context.Context, id string) error
}

// DocumentFetcher retrieves both input documents of a run
type DocumentFetcher interface {
	FetchAll(ctx context.Context, boardAddress, commandsAddress string) (*source.Documents, error)
}

// RunStore stores completed runs
type RunStore interface {
	Add(run *runs.Run) (*runs.Run, error)
	Get(id string) (*runs.Run, error)
	List(limit int) []*runs.Run
	Delete(id string) error
}

// Publisher receives every completed run
type Publisher interface {
	PublishRun(run *runs.Run)
}

// SimulateRequest carries inline documents
type SimulateRequest struct {
	Board    source.BoardDocument `json:"board"`
	Commands []string             `json:"commands"`
}

// Defaults are the source addresses used when a caller supplies none
type Defaults struct {
	BoardAPI    string
	CommandsAPI string
}

// Dependencies groups the collaborators of the service. Fetcher and Registry
// are required; the rest are optional.
type Dependencies struct {
	Fetcher   DocumentFetcher
	Registry  RunStore
	Publisher Publisher
	Metrics   *metrics.Metrics
	Logger    *zap.Logger
}
