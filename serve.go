package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"golang.ngrok.com/ngrok"
	ngrokConfig "golang.ngrok.com/ngrok/config"

	"github.com/wricardo/knight-board/api"
	"github.com/wricardo/knight-board/game/config"
	"github.com/wricardo/knight-board/game/runs"
	"github.com/wricardo/knight-board/logging"
	"github.com/wricardo/knight-board/transport/mcp"
	"github.com/wricardo/knight-board/transport/websocket"
)

// serveAction starts the HTTP server with REST API, WebSocket hub, metrics and
// an /mcp proxy endpoint. If ngrok is enabled it also provisions a public tunnel.
func (a *app) serveAction(ctx context.Context, cmd *cli.Command) error {
	rt, err := a.setup(cmd)
	if err != nil {
		return err
	}
	defer logging.Sync(rt.logger)
	logger := rt.logger

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	hub := websocket.NewHub(logger.Named("websocket"))
	go hub.Run(ctx)

	apiServer := api.NewServer(rt.knightService(hub), hub)

	addr := rt.cfg.Server.Addr()
	mcpClient := mcp.NewClient(fmt.Sprintf("http://%s", addr))

	mainRouter := http.NewServeMux()
	mainRouter.Handle("/", apiServer)
	mainRouter.Handle("/mcp", mcpClient)

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      mainRouter,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	var wg sync.WaitGroup
	serveErr := make(chan error, 1)

	wg.Add(1)
	go func() {
		defer wg.Done()

		logger.Info("HTTP server listening",
			zap.String("addr", addr),
			zap.String("api", fmt.Sprintf("http://%s/api", addr)),
			zap.String("websocket", fmt.Sprintf("ws://%s/ws?status=<status>", addr)),
			zap.String("mcp", fmt.Sprintf("http://%s/mcp", addr)),
		)

		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- fmt.Errorf("HTTP server failed: %w", err)
			cancel()
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		cleanupRoutine(ctx, rt.registry, rt.cfg.Runs, logger)
	}()

	if rt.cfg.Ngrok.Enabled {
		wg.Add(1)
		go func() {
			defer wg.Done()
			runNgrok(ctx, rt.cfg.Ngrok, mainRouter, logger.Named("ngrok"))
		}()
	}

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Warn("HTTP server shutdown error", zap.Error(err))
	}

	wg.Wait()
	logger.Info("server stopped")

	select {
	case err := <-serveErr:
		return err
	default:
		return nil
	}
}

// runNgrok serves handler through an ngrok tunnel until ctx is cancelled
func runNgrok(ctx context.Context, cfg config.NgrokConfig, handler http.Handler, logger *zap.Logger) {
	if cfg.AuthToken == "" {
		logger.Warn("ngrok enabled but no auth token provided (use --ngrok-auth, NGROK_AUTHTOKEN, or NGROK_AUTH_TOKEN)")
		return
	}

	var tunnel ngrokConfig.Tunnel
	if cfg.Domain != "" {
		tunnel = ngrokConfig.HTTPEndpoint(ngrokConfig.WithDomain(cfg.Domain))
		logger.Info("using custom ngrok domain", zap.String("domain", cfg.Domain))
	} else {
		tunnel = ngrokConfig.HTTPEndpoint()
	}

	tun, err := ngrok.Listen(ctx, tunnel, ngrok.WithAuthtoken(cfg.AuthToken))
	if err != nil {
		logger.Error("failed to start ngrok tunnel", zap.Error(err))
		return
	}

	go func() {
		<-ctx.Done()
		if err := tun.Close(); err != nil {
			logger.Warn("failed to close ngrok tunnel", zap.Error(err))
		}
	}()

	url := tun.URL()
	logger.Info("ngrok tunnel established",
		zap.String("url", url),
		zap.String("api", url+"/api"),
		zap.String("mcp", url+"/mcp"),
	)

	if err := http.Serve(tun, handler); err != nil && !errors.Is(err, http.ErrServerClosed) && ctx.Err() == nil {
		logger.Warn("ngrok server error", zap.Error(err))
	}
	logger.Info("ngrok tunnel closed")
}

// cleanupRoutine periodically removes runs older than the configured TTL
func cleanupRoutine(ctx context.Context, registry *runs.Registry, cfg config.RunsConfig, logger *zap.Logger) {
	ticker := time.NewTicker(cfg.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := registry.CleanupExpired(cfg.TTL); removed > 0 {
				logger.Info("cleaned up expired runs", zap.Int("removed", removed))
			}
		}
	}
}

// mcpAction runs an MCP stdio server. It reuses an API server already
// listening on the configured address; if there is none it starts an internal
// one bound to a random loopback port. stdout belongs to the MCP protocol, so
// all logging goes to stderr.
func (a *app) mcpAction(ctx context.Context, cmd *cli.Command) error {
	rt, err := a.setup(cmd)
	if err != nil {
		return err
	}
	defer logging.Sync(rt.logger)
	logger := rt.logger

	externalURL := fmt.Sprintf("http://%s", rt.cfg.Server.Addr())
	baseURL := externalURL

	if apiAvailable(ctx, externalURL) {
		logger.Info("using external API server for MCP", zap.String("url", externalURL))
	} else {
		listener, err := net.Listen("tcp", "127.0.0.1:0")
		if err != nil {
			return fmt.Errorf("failed to get available port: %w", err)
		}

		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		hub := websocket.NewHub(logger.Named("websocket"))
		go hub.Run(ctx)

		httpServer := &http.Server{Handler: api.NewServer(rt.knightService(hub), hub)}
		go func() {
			if err := httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("internal HTTP server error", zap.Error(err))
			}
		}()
		defer httpServer.Close()

		baseURL = fmt.Sprintf("http://%s", listener.Addr().String())
		logger.Info("started internal HTTP server for MCP stdio", zap.String("url", baseURL))
	}

	mcpClient := mcp.NewClient(baseURL)
	logger.Info("MCP stdio server ready", zap.String("api", baseURL))

	if err := server.ServeStdio(mcpClient.GetMCPServer()); err != nil {
		return fmt.Errorf("MCP stdio server error: %w", err)
	}
	return nil
}

// apiAvailable probes the REST API index
func apiAvailable(ctx context.Context, baseURL string) bool {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"/api", nil)
	if err != nil {
		return false
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode < 500
}
