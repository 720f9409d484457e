package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/felixgeelhaar/fortify/retry"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/wricardo/knight-board/game/config"
	"github.com/wricardo/knight-board/game/engine"
	"github.com/wricardo/knight-board/metrics"
)

var (
	ErrMissingAddress   = errors.New("source address is empty")
	ErrMalformedAddress = errors.New("malformed source address")
	ErrUnexpectedStatus = errors.New("unexpected HTTP status")
	ErrClientRejected   = errors.New("request rejected by server")
	ErrEmptyBody        = errors.New("empty response body")
)

const maxDocumentSize = 10 * 1024 * 1024

// Document names used for logs and metrics
const (
	DocumentBoard    = "board"
	DocumentCommands = "commands"
)

// Fetcher retrieves source documents
type Fetcher struct {
	client  *http.Client
	retrier retry.Retry[[]byte]
	logger  *zap.Logger
	metrics *metrics.Metrics
}

// Option configures a Fetcher
type Option func(*Fetcher)

// WithLogger sets the fetch logger
func WithLogger(logger *zap.Logger) Option {
	return func(f *Fetcher) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// WithMetrics records fetch latency and failures
func WithMetrics(m *metrics.Metrics) Option {
	return func(f *Fetcher) {
		f.metrics = m
	}
}

// WithHTTPClient replaces the HTTP client. Its timeout is left untouched.
func WithHTTPClient(client *http.Client) Option {
	return func(f *Fetcher) {
		if client != nil {
			f.client = client
		}
	}
}

// NewFetcher creates a fetcher from fetch configuration
func NewFetcher(cfg config.FetchConfig, opts ...Option) *Fetcher {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = config.DefaultFetchTimeout
	}
	delay := cfg.RetryDelay
	if delay <= 0 {
		delay = config.DefaultRetryDelay
	}
	attempts := cfg.Retries + 1
	if attempts < 1 {
		attempts = 1
	}

	f := &Fetcher{
		client: &http.Client{Timeout: timeout},
		retrier: retry.New[[]byte](retry.Config{
			MaxAttempts:   attempts,
			InitialDelay:  delay,
			BackoffPolicy: retry.BackoffExponential,
			Multiplier:    2.0,
			// Retrying cannot fix a bad address, a 4xx or an empty document
			NonRetryableErrors: []error{ErrMalformedAddress, ErrClientRejected, ErrEmptyBody},
		}),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch returns the raw body at address
func (f *Fetcher) Fetch(ctx context.Context, address string) ([]byte, error) {
	if strings.TrimSpace(address) == "" {
		return nil, ErrMissingAddress
	}

	u, err := url.Parse(address)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedAddress, err)
	}

	switch u.Scheme {
	case "http", "https":
		if u.Host == "" {
			return nil, fmt.Errorf("%w: %q has no host", ErrMalformedAddress, address)
		}
		return f.retrier.Do(ctx, func(ctx context.Context) ([]byte, error) {
			return f.fetchHTTP(ctx, u.String())
		})
	case "file":
		return readFile(u.Path)
	case "":
		return readFile(address)
	default:
		return nil, fmt.Errorf("%w: unsupported scheme %q", ErrMalformedAddress, u.Scheme)
	}
}

func (f *Fetcher) fetchHTTP(ctx context.Context, address string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, address, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedAddress, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		if resp.StatusCode >= 400 && resp.StatusCode < 500 {
			return nil, fmt.Errorf("%w: %w: %d", ErrUnexpectedStatus, ErrClientRejected, resp.StatusCode)
		}
		return nil, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	return checkBody(body)
}

func readFile(path string) ([]byte, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: empty file path", ErrMalformedAddress)
	}
	body, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return checkBody(body)
}

func checkBody(body []byte) ([]byte, error) {
	if len(strings.TrimSpace(string(body))) == 0 {
		return nil, ErrEmptyBody
	}
	return body, nil
}

// FetchBoard fetches and decodes the board document
func (f *Fetcher) FetchBoard(ctx context.Context, address string) (*engine.Board, error) {
	data, err := f.observe(ctx, DocumentBoard, address)
	if err != nil {
		return nil, err
	}
	return DecodeBoard(data)
}

// FetchCommands fetches and decodes the instruction document
func (f *Fetcher) FetchCommands(ctx context.Context, address string) ([]string, error) {
	data, err := f.observe(ctx, DocumentCommands, address)
	if err != nil {
		return nil, err
	}
	return DecodeCommands(data)
}

func (f *Fetcher) observe(ctx context.Context, document, address string) ([]byte, error) {
	start := time.Now()
	data, err := f.Fetch(ctx, address)
	elapsed := time.Since(start)

	f.metrics.RecordFetch(document, elapsed, err)
	if err != nil {
		f.logger.Warn("fetch failed",
			zap.String("document", document),
			zap.String("address", address),
			zap.Duration("elapsed", elapsed),
			zap.Error(err),
		)
		return nil, fmt.Errorf("fetch %s: %w", document, err)
	}
	f.logger.Debug("fetched document",
		zap.String("document", document),
		zap.String("address", address),
		zap.Int("bytes", len(data)),
		zap.Duration("elapsed", elapsed),
	)
	return data, nil
}

// Documents holds both decoded inputs of a run
type Documents struct {
	Board    *engine.Board
	Commands []string
}

// FetchAll fetches both documents concurrently. The first failure cancels
// the other request.
func (f *Fetcher) FetchAll(ctx context.Context, boardAddress, commandsAddress string) (*Documents, error) {
	var docs Documents
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		board, err := f.FetchBoard(gctx, boardAddress)
		if err != nil {
			return err
		}
		docs.Board = board
		return nil
	})
	g.Go(func() error {
		commands, err := f.FetchCommands(gctx, commandsAddress)
		if err != nil {
			return err
		}
		docs.Commands = commands
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &docs, nil
}
