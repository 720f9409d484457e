// Command knight runs a knight over a bounded board with obstacles.
//
// It supports three modes:
//  1. "run" (default) – fetches the board and command documents once, prints the
//     result document and exits
//  2. "serve" – runs the HTTP server exposing the REST API, WebSocket stream of
//     completed runs, Prometheus metrics, and an /mcp HTTP endpoint
//  3. "mcp" – runs an MCP stdio server and spins up an internal HTTP API if none
//     is available
//
// Configuration comes from an optional YAML file, the environment (BOARD_API,
// COMMANDS_API, KNIGHT_*), and flags, in increasing order of precedence.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/wricardo/knight-board/game/config"
	"github.com/wricardo/knight-board/game/report"
	"github.com/wricardo/knight-board/game/runs"
	"github.com/wricardo/knight-board/game/service"
	"github.com/wricardo/knight-board/game/source"
	"github.com/wricardo/knight-board/logging"
	"github.com/wricardo/knight-board/metrics"
)

// Version information
const (
	Version = "1.0.0"
	AppName = "Knight Board"
)

// errUnsuccessfulRun is returned by the run command under --strict-exit when
// the result is not SUCCESS
var errUnsuccessfulRun = errors.New("run did not succeed")

func main() {
	// Load .env file if it exists (ignore error if not found)
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Warning: Error loading .env file: %v\n", err)
	}

	err := newApp(os.Stdout, os.Stderr).Run(context.Background(), os.Args)
	switch {
	case err == nil:
	case errors.Is(err, errUnsuccessfulRun):
		os.Exit(1)
	default:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// app carries the output streams shared by every command
type app struct {
	out    io.Writer
	errOut io.Writer
}

// newApp builds the command tree. Result documents go to out on success and
// to errOut otherwise; logs always go to errOut.
func newApp(out, errOut io.Writer) *cli.Command {
	a := &app{out: out, errOut: errOut}

	return &cli.Command{
		Name:      "knight",
		Usage:     "move a knight across a board following START/ROTATE/MOVE instructions",
		Version:   Version,
		Writer:    out,
		ErrWriter: errOut,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to a YAML configuration file",
				Sources: cli.EnvVars("KNIGHT_CONFIG"),
			},
			&cli.StringFlag{Name: "board-api", Usage: "board document URL or file path (default $BOARD_API)"},
			&cli.StringFlag{Name: "commands-api", Usage: "commands document URL or file path (default $COMMANDS_API)"},
			&cli.DurationFlag{Name: "fetch-timeout", Usage: "per-request timeout for document fetches"},
			&cli.IntFlag{Name: "fetch-retries", Usage: "extra attempts for failed document fetches"},
			&cli.StringFlag{Name: "log-level", Usage: "debug, info, warn or error"},
			&cli.StringFlag{Name: "log-format", Usage: "console or json"},
			&cli.BoolFlag{Name: "strict-exit", Usage: "exit with status 1 when the run does not succeed"},
		},
		Action: a.runAction,
		Commands: []*cli.Command{
			{
				Name:   "run",
				Usage:  "fetch the documents once and print the result (default)",
				Action: a.runAction,
			},
			{
				Name:  "serve",
				Usage: "run the HTTP server with REST API, WebSocket, metrics and MCP endpoint",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "host", Usage: "HTTP server host"},
					&cli.IntFlag{Name: "port", Aliases: []string{"p"}, Usage: "HTTP server port"},
					&cli.BoolFlag{Name: "ngrok", Usage: "enable ngrok tunnel (or NGROK_ENABLED)"},
					&cli.StringFlag{Name: "ngrok-auth", Usage: "ngrok auth token (or NGROK_AUTHTOKEN)"},
					&cli.StringFlag{Name: "ngrok-domain", Usage: "custom ngrok domain (or NGROK_DOMAIN)"},
				},
				Action: a.serveAction,
			},
			{
				Name:  "mcp",
				Usage: "run an MCP stdio server backed by the REST API",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "host", Usage: "host of an already running API server"},
					&cli.IntFlag{Name: "port", Aliases: []string{"p"}, Usage: "port of an already running API server"},
				},
				Action: a.mcpAction,
			},
		},
	}
}

// flagKeys maps flags onto the config keys they override
var flagKeys = map[string]string{
	"board-api":     "board_api",
	"commands-api":  "commands_api",
	"fetch-timeout": "fetch.timeout",
	"fetch-retries": "fetch.retries",
	"log-level":     "log.level",
	"log-format":    "log.format",
	"host":          "server.host",
	"port":          "server.port",
	"ngrok":         "ngrok.enabled",
	"ngrok-auth":    "ngrok.authtoken",
	"ngrok-domain":  "ngrok.domain",
}

// overrides collects the flags the user actually set
func overrides(cmd *cli.Command) map[string]interface{} {
	result := make(map[string]interface{})
	for _, flag := range cmd.Flags {
		for _, name := range flag.Names() {
			key, ok := flagKeys[name]
			if !ok || !cmd.IsSet(name) {
				continue
			}
			result[key] = cmd.Value(name)
		}
	}
	if cmd.Root() != cmd {
		for key, value := range overrides(cmd.Root()) {
			if _, ok := result[key]; !ok {
				result[key] = value
			}
		}
	}
	return result
}

// runtime holds the components shared by all modes
type runtime struct {
	cfg      *config.Config
	logger   *zap.Logger
	metrics  *metrics.Metrics
	registry *runs.Registry
	fetcher  *source.Fetcher
}

func (a *app) setup(cmd *cli.Command) (*runtime, error) {
	cfg, err := config.Load(cmd.String("config"), overrides(cmd))
	if err != nil {
		return nil, err
	}

	logger, err := logging.NewWithWriter(cfg.Log, a.errOut)
	if err != nil {
		return nil, err
	}

	m := metrics.New()
	return &runtime{
		cfg:      cfg,
		logger:   logger,
		metrics:  m,
		registry: runs.NewRegistry(),
		fetcher:  source.NewFetcher(cfg.Fetch, source.WithLogger(logger), source.WithMetrics(m)),
	}, nil
}

// knightService wires the service. publisher may be nil.
func (rt *runtime) knightService(publisher service.Publisher) service.KnightService {
	return service.NewKnightService(service.Dependencies{
		Fetcher:   rt.fetcher,
		Registry:  rt.registry,
		Publisher: publisher,
		Metrics:   rt.metrics,
		Logger:    rt.logger,
	}, service.Defaults{
		BoardAPI:    rt.cfg.BoardAPI,
		CommandsAPI: rt.cfg.CommandsAPI,
	})
}

// runAction performs a single run from the configured sources
func (a *app) runAction(ctx context.Context, cmd *cli.Command) error {
	rt, err := a.setup(cmd)
	if err != nil {
		return err
	}
	defer logging.Sync(rt.logger)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	run, err := rt.knightService(nil).RunSources(ctx, "", "")
	if err != nil {
		return err
	}

	if err := report.Write(a.out, a.errOut, run.Result); err != nil {
		return err
	}

	if cmd.Bool("strict-exit") && !run.Result.Succeeded() {
		return errUnsuccessfulRun
	}
	return nil
}
