// Command path-of-faith starts the Path of Faith game server.
//
// It supports two modes:
//  1. "server" (default) runs the HTTP server exposing the REST API, WebSocket
//     updates and an /mcp HTTP endpoint
//  2. "stdio-mcp" runs an MCP stdio server backed by an external API if one
//     answers, otherwise by an internal HTTP API on a loopback port
//
// Every flag can also be set through the environment or a .env file.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"golang.ngrok.com/ngrok"
	ngrokConfig "golang.ngrok.com/ngrok/config"

	"github.com/wricardo/path-of-faith/api"
	"github.com/wricardo/path-of-faith/game/config"
	"github.com/wricardo/path-of-faith/game/dice"
	"github.com/wricardo/path-of-faith/game/service"
	"github.com/wricardo/path-of-faith/game/session"
	"github.com/wricardo/path-of-faith/observability"
	"github.com/wricardo/path-of-faith/transport/mcp"
	"github.com/wricardo/path-of-faith/transport/websocket"
)

// Version information
const (
	Version = "1.0.0"
	AppName = "Path of Faith Server"
)

// settings holds the resolved command-line configuration.
type settings struct {
	Host        string
	Port        int
	ContentDir  string
	DefaultPack string
	LogLevel    string
	LogFormat   string
	SessionTTL  time.Duration
	Seed        uint64
	APIURL      string
	Ngrok       bool
	NgrokAuth   string
	NgrokDomain string
}

func (s settings) addr() string {
	return net.JoinHostPort(s.Host, fmt.Sprint(s.Port))
}

func settingsFrom(cmd *cli.Command) settings {
	return settings{
		Host:        cmd.String("host"),
		Port:        cmd.Int("port"),
		ContentDir:  cmd.String("content-dir"),
		DefaultPack: cmd.String("default-pack"),
		LogLevel:    cmd.String("log-level"),
		LogFormat:   cmd.String("log-format"),
		SessionTTL:  cmd.Duration("session-ttl"),
		Seed:        cmd.Uint64("seed"),
		APIURL:      cmd.String("api-url"),
		Ngrok:       cmd.Bool("ngrok"),
		NgrokAuth:   cmd.String("ngrok-auth"),
		NgrokDomain: cmd.String("ngrok-domain"),
	}
}

// newCommand builds the CLI. Modes are subcommands; the root runs the server.
func newCommand() *cli.Command {
	serve := func(ctx context.Context, cmd *cli.Command) error {
		s := settingsFrom(cmd)
		logger, err := observability.NewLogger(observability.LoggingConfig{Level: s.LogLevel, Format: s.LogFormat})
		if err != nil {
			return err
		}
		defer logger.Sync()
		return runHTTPServer(ctx, s, logger)
	}

	stdio := func(ctx context.Context, cmd *cli.Command) error {
		s := settingsFrom(cmd)
		logger, err := observability.NewLogger(observability.LoggingConfig{Level: s.LogLevel, Format: s.LogFormat, Stderr: true})
		if err != nil {
			return err
		}
		defer logger.Sync()
		return runStdioMCP(ctx, s, logger)
	}

	return &cli.Command{
		Name:    "path-of-faith",
		Usage:   AppName,
		Version: Version,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "host", Value: "localhost", Usage: "HTTP server host", Sources: cli.EnvVars("HOST")},
			&cli.IntFlag{Name: "port", Value: 8080, Usage: "HTTP server port", Sources: cli.EnvVars("PORT")},
			&cli.StringFlag{Name: "content-dir", Usage: "Directory of YAML content packs (built-in packs only when empty)", Sources: cli.EnvVars("CONTENT_DIR")},
			&cli.StringFlag{Name: "default-pack", Value: config.DefaultConfigID, Usage: "Content pack used when a session names none", Sources: cli.EnvVars("DEFAULT_PACK")},
			&cli.StringFlag{Name: "log-level", Value: "info", Usage: "Log level: debug, info, warn, error", Sources: cli.EnvVars("LOG_LEVEL")},
			&cli.StringFlag{Name: "log-format", Value: observability.FormatConsole, Usage: "Log format: json or console", Sources: cli.EnvVars("LOG_FORMAT")},
			&cli.DurationFlag{Name: "session-ttl", Value: 24 * time.Hour, Usage: "Remove sessions idle for longer than this", Sources: cli.EnvVars("SESSION_TTL")},
			&cli.Uint64Flag{Name: "seed", Usage: "Seed the dice for reproducible games (0 uses crypto randomness)", Sources: cli.EnvVars("DICE_SEED")},
			&cli.StringFlag{Name: "api-url", Value: "http://localhost:8080", Usage: "External API probed by stdio-mcp before starting its own", Sources: cli.EnvVars("API_URL")},
			&cli.BoolFlag{Name: "ngrok", Usage: "Enable ngrok tunnel", Sources: cli.EnvVars("NGROK_ENABLED")},
			&cli.StringFlag{Name: "ngrok-auth", Usage: "Ngrok auth token", Sources: cli.EnvVars("NGROK_AUTHTOKEN", "NGROK_AUTH_TOKEN")},
			&cli.StringFlag{Name: "ngrok-domain", Usage: "Custom ngrok domain (optional)", Sources: cli.EnvVars("NGROK_DOMAIN")},
		},
		Commands: []*cli.Command{
			{
				Name:    "server",
				Aliases: []string{"http"},
				Usage:   "Run HTTP server with API, WebSocket, and MCP endpoint (default)",
				Action:  serve,
			},
			{
				Name:    "stdio-mcp",
				Aliases: []string{"mcp-stdio", "mcp"},
				Usage:   "Run MCP stdio server",
				Action:  stdio,
			},
		},
		Action: serve,
	}
}

// main loads .env, then runs the selected mode until it exits or a signal
// arrives.
func main() {
	envErr := godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if envErr != nil && !errors.Is(envErr, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Warning: error loading .env file: %v\n", envErr)
	}

	if err := newCommand().Run(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", AppName, err)
		os.Exit(1)
	}
}

// app is the wired game backend shared by both modes.
type app struct {
	service  service.GameService
	sessions *session.Manager
	configs  *config.Manager
}

// initializeServices wires the dice, session and config managers and the game
// service.
func initializeServices(s settings, logger *zap.Logger) (*app, error) {
	configManager, err := config.NewManager(s.ContentDir, logger.Named("config"))
	if err != nil {
		return nil, fmt.Errorf("failed to create config manager: %w", err)
	}
	if s.DefaultPack != "" {
		if err := configManager.SetDefault(s.DefaultPack); err != nil {
			return nil, fmt.Errorf("default pack: %w", err)
		}
	}

	src := dice.NewCryptoSource()
	if s.Seed != 0 {
		src = dice.NewSeededSource(s.Seed)
		logger.Info("dice seeded", zap.Uint64("seed", s.Seed))
	}
	roller := dice.NewRoller(src, logger.Named("dice"))

	sessionManager := session.NewManager(roller, logger.Named("session"))

	return &app{
		service:  service.NewGameService(sessionManager, configManager, logger.Named("service")),
		sessions: sessionManager,
		configs:  configManager,
	}, nil
}

// sessionCleanupRoutine periodically removes sessions that have not been
// accessed within ttl, until ctx is done.
func sessionCleanupRoutine(ctx context.Context, manager *session.Manager, ttl, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			manager.CleanupExpiredSessions(ttl)
		}
	}
}

// reloadContent drops cached content packs each time a signal arrives, so
// edited YAML files are picked up by the next session that loads them.
func reloadContent(ctx context.Context, configs *config.Manager, signals <-chan os.Signal, logger *zap.Logger) {
	for {
		select {
		case <-ctx.Done():
			return
		case sig := <-signals:
			configs.RefreshCache()
			logger.Info("content packs reloaded", zap.Stringer("signal", sig))
		}
	}
}

// cleanupInterval checks often enough that a session outlives ttl by at
// most an hour.
func cleanupInterval(ttl time.Duration) time.Duration {
	return min(max(ttl/4, time.Minute), time.Hour)
}

// mcpHandler serves single JSON-RPC MCP messages over HTTP POST.
func mcpHandler(mcpServer *server.MCPServer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "Failed to read request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		response := mcpServer.HandleMessage(r.Context(), body)

		w.Header().Set("Content-Type", "application/json")
		responseData, err := json.Marshal(response)
		if err != nil {
			http.Error(w, "Failed to marshal response", http.StatusInternalServerError)
			return
		}
		w.Write(responseData)
	}
}

// newRouter mounts the REST API at the root and the MCP endpoint at /mcp.
func newRouter(apiServer http.Handler, mcpClient *mcp.Client) *http.ServeMux {
	mainRouter := http.NewServeMux()
	mainRouter.Handle("/", apiServer)
	mainRouter.HandleFunc("/mcp", mcpHandler(mcpClient.GetMCPServer()))
	return mainRouter
}

// runHTTPServer starts the HTTP server with REST API, WebSocket hub and /mcp
// endpoint, plus an ngrok tunnel when enabled. It returns after ctx is done and
// the servers have shut down.
func runHTTPServer(ctx context.Context, s settings, logger *zap.Logger) error {
	a, err := initializeServices(s, logger)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	hub := websocket.NewHub(logger.Named("ws"))
	go hub.Run(ctx)
	go sessionCleanupRoutine(ctx, a.sessions, s.SessionTTL, cleanupInterval(s.SessionTTL))

	hangup := make(chan os.Signal, 1)
	signal.Notify(hangup, syscall.SIGHUP)
	defer signal.Stop(hangup)
	go reloadContent(ctx, a.configs, hangup, logger.Named("config"))

	addr := s.addr()
	apiServer := api.NewServer(a.service, hub, logger.Named("api"))
	mcpClient := mcp.NewClient("http://" + addr)
	mainRouter := newRouter(apiServer, mcpClient)

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      mainRouter,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	var wg sync.WaitGroup
	errCh := make(chan error, 1)

	wg.Add(1)
	go func() {
		defer wg.Done()

		logger.Info("HTTP server listening",
			zap.String("addr", addr),
			zap.String("api", "http://"+addr+"/api"),
			zap.String("websocket", "ws://"+addr+"/ws?session=<session_id>"),
			zap.String("mcp", "http://"+addr+"/mcp"),
		)

		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("HTTP server failed: %w", err)
			cancel()
		}
	}()

	if s.Ngrok {
		wg.Add(1)
		go func() {
			defer wg.Done()
			runNgrok(ctx, s, mainRouter, logger.Named("ngrok"))
		}()
	}

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", zap.Error(err))
	}

	wg.Wait()
	logger.Info("server stopped")

	select {
	case err := <-errCh:
		return err
	default:
		return nil
	}
}

// runNgrok serves handler through an ngrok tunnel until ctx is done.
func runNgrok(ctx context.Context, s settings, handler http.Handler, logger *zap.Logger) {
	if s.NgrokAuth == "" {
		logger.Warn("ngrok enabled but no auth token provided (use --ngrok-auth, NGROK_AUTHTOKEN, or NGROK_AUTH_TOKEN)")
		return
	}

	var tunnel ngrokConfig.Tunnel
	if s.NgrokDomain != "" {
		tunnel = ngrokConfig.HTTPEndpoint(ngrokConfig.WithDomain(s.NgrokDomain))
	} else {
		tunnel = ngrokConfig.HTTPEndpoint()
	}

	tun, err := ngrok.Listen(ctx, tunnel, ngrok.WithAuthtoken(s.NgrokAuth))
	if err != nil {
		logger.Error("failed to start ngrok tunnel", zap.Error(err))
		return
	}

	ngrokURL := tun.URL()
	logger.Info("ngrok tunnel established",
		zap.String("url", ngrokURL),
		zap.String("api", ngrokURL+"/api"),
		zap.String("mcp", ngrokURL+"/mcp"),
	)

	go func() {
		<-ctx.Done()
		if err := tun.Close(); err != nil {
			logger.Warn("failed to close ngrok tunnel", zap.Error(err))
		}
	}()

	if err := http.Serve(tun, handler); err != nil && !errors.Is(err, http.ErrServerClosed) && ctx.Err() == nil {
		logger.Error("ngrok server error", zap.Error(err))
	}
	logger.Info("ngrok tunnel closed")
}

// probeAPI reports whether a Path of Faith API answers at baseURL.
func probeAPI(ctx context.Context, baseURL string) bool {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"/api/health", nil)
	if err != nil {
		return false
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// startInternalAPI serves the REST API on a random loopback port and returns
// its base URL. The server stops when ctx is done.
func startInternalAPI(ctx context.Context, s settings, logger *zap.Logger) (string, error) {
	a, err := initializeServices(s, logger)
	if err != nil {
		return "", err
	}

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return "", fmt.Errorf("failed to get available port: %w", err)
	}

	go sessionCleanupRoutine(ctx, a.sessions, s.SessionTTL, cleanupInterval(s.SessionTTL))

	httpServer := &http.Server{Handler: api.NewServer(a.service, nil, logger.Named("api"))}
	go func() {
		if err := httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("internal HTTP server error", zap.Error(err))
		}
	}()
	go func() {
		<-ctx.Done()
		httpServer.Close()
	}()

	baseURL := "http://" + listener.Addr().String()
	logger.Info("internal HTTP server started", zap.String("url", baseURL))
	return baseURL, nil
}

// runStdioMCP runs an MCP stdio server against the external API when it
// answers, otherwise against an internal one.
func runStdioMCP(ctx context.Context, s settings, logger *zap.Logger) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	baseURL := s.APIURL
	if baseURL != "" && probeAPI(ctx, baseURL) {
		logger.Info("using external API server", zap.String("url", baseURL))
	} else {
		var err error
		if baseURL, err = startInternalAPI(ctx, s, logger); err != nil {
			return err
		}
	}

	mcpClient := mcp.NewClient(baseURL)
	logger.Info("MCP stdio server ready", zap.String("api", baseURL))

	if err := server.ServeStdio(mcpClient.GetMCPServer()); err != nil {
		return fmt.Errorf("MCP stdio server error: %w", err)
	}
	return nil
}
