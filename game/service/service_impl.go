package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wricardo/knight-board/game/engine"
	"github.com/wricardo/knight-board/game/report"
	"github.com/wricardo/knight-board/game/runs"
	"github.com/wricardo/knight-board/game/source"
)

// ErrMissingSource is logged when neither the caller nor the defaults name a document
var ErrMissingSource = errors.New("no source address configured")

// knightServiceImpl implements the KnightService interface
type knightServiceImpl struct {
	deps     Dependencies
	defaults Defaults
	logger   *zap.Logger
}

// NewKnightService creates a new service instance
func NewKnightService(deps Dependencies, defaults Defaults) KnightService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &knightServiceImpl{
		deps:     deps,
		defaults: defaults,
		logger:   logger,
	}
}

// Simulate runs inline documents
func (s *knightServiceImpl) Simulate(ctx context.Context, req SimulateRequest) (*runs.Run, error) {
	run := s.newRun()
	board := req.Board
	run.Board = &board
	run.Commands = req.Commands

	logger := s.logger.With(zap.String("run_id", run.ID))

	b, err := req.Board.Board()
	if err != nil {
		logger.Warn("rejected board document", zap.Error(err))
		return s.finish(run, nil, logger)
	}

	return s.finish(run, b, logger)
}

// RunSources fetches both documents, then runs them. Empty addresses fall
// back to the configured defaults.
func (s *knightServiceImpl) RunSources(ctx context.Context, boardURL, commandsURL string) (*runs.Run, error) {
	if boardURL == "" {
		boardURL = s.defaults.BoardAPI
	}
	if commandsURL == "" {
		commandsURL = s.defaults.CommandsAPI
	}

	run := s.newRun()
	run.BoardURL = boardURL
	run.CommandsURL = commandsURL

	logger := s.logger.With(zap.String("run_id", run.ID))

	if boardURL == "" || commandsURL == "" {
		logger.Warn("cannot run without sources",
			zap.String("board_url", boardURL),
			zap.String("commands_url", commandsURL),
			zap.Error(ErrMissingSource),
		)
		return s.finish(run, nil, logger)
	}

	docs, err := s.deps.Fetcher.FetchAll(ctx, boardURL, commandsURL)
	if err != nil {
		logger.Warn("failed to obtain documents", zap.Error(err))
		return s.finish(run, nil, logger)
	}

	boardDoc := source.NewBoardDocument(docs.Board)
	run.Board = &boardDoc
	run.Commands = docs.Commands

	return s.finish(run, docs.Board, logger)
}

func (s *knightServiceImpl) newRun() *runs.Run {
	return &runs.Run{ID: uuid.NewString()}
}

// finish interprets the run's commands on board (nil means the documents
// could not be obtained), then records and publishes the run.
func (s *knightServiceImpl) finish(run *runs.Run, board *engine.Board, logger *zap.Logger) (*runs.Run, error) {
	if run.Commands == nil {
		run.Commands = []string{}
	}

	steps := make([]engine.Step, 0, len(run.Commands))
	interp := engine.NewInterpreter(board,
		engine.WithLogger(logger),
		engine.WithStepObserver(func(step engine.Step) {
			steps = append(steps, step)
			s.deps.Metrics.RecordCommand(step.Kind, step.Move != nil && step.Move.Blocked)
		}),
	)

	outcome := interp.Run(run.Commands)
	run.Result = report.FromOutcome(outcome)
	run.Steps = steps

	s.deps.Metrics.RecordRun(run.Result.Status)

	stored, err := s.deps.Registry.Add(run)
	if err != nil {
		return nil, fmt.Errorf("failed to record run: %w", err)
	}

	logger.Info("run completed",
		zap.String("status", run.Result.Status),
		zap.Int("instructions", len(run.Commands)),
	)

	if s.deps.Publisher != nil {
		s.deps.Publisher.PublishRun(stored)
	}
	return stored, nil
}

// GetRun returns a recorded run
func (s *knightServiceImpl) GetRun(ctx context.Context, id string) (*runs.Run, error) {
	run, err := s.deps.Registry.Get(id)
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", id, err)
	}
	return run, nil
}

// ListRuns returns recorded runs, newest first
func (s *knightServiceImpl) ListRuns(ctx context.Context, limit int) ([]*runs.Run, error) {
	return s.deps.Registry.List(limit), nil
}

// DeleteRun removes a recorded run
func (s *knightServiceImpl) DeleteRun(ctx context.Context, id string) error {
	if err := s.deps.Registry.Delete(id); err != nil {
		return fmt.Errorf("run %s: %w", id, err)
	}
	return nil
}
