// Command hordelink starts the co-op session relay server.
//
// The default command runs the HTTP server exposing the WebSocket relay,
// the read-only REST API, and an /mcp HTTP endpoint; the "mcp" subcommand
// runs an MCP stdio server proxying to a running relay. Flags override
// environment configuration (loaded from .env when present) for host/port,
// logging, and optional ngrok tunneling for external access during
// development.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/urfave/cli/v3"
	"golang.ngrok.com/ngrok"
	ngrokConfig "golang.ngrok.com/ngrok/config"

	"github.com/coopwave/hordelink/api"
	"github.com/coopwave/hordelink/game/config"
	"github.com/coopwave/hordelink/game/service"
	"github.com/coopwave/hordelink/game/session"
	"github.com/coopwave/hordelink/logging"
	"github.com/coopwave/hordelink/transport/mcp"
	"github.com/coopwave/hordelink/transport/websocket"
)

const (
	Version = "1.0.0"
	AppName = "Hordelink Co-op Server"
)

func main() {
	// Load .env if present; missing file is fine.
	_ = godotenv.Load()

	cfg := config.FromEnv()

	cmd := &cli.Command{
		Name:    "hordelink",
		Usage:   "session relay server for co-op bullet-hell games",
		Version: Version,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "host", Value: cfg.Host, Usage: "HTTP server host"},
			&cli.IntFlag{Name: "port", Value: cfg.Port, Usage: "HTTP server port"},
			&cli.StringFlag{Name: "log-file", Value: cfg.LogFile, Usage: "log file path"},
			&cli.BoolFlag{Name: "debug", Value: cfg.Debug, Usage: "enable debug logging"},
			&cli.BoolFlag{Name: "ngrok", Value: cfg.NgrokEnabled, Usage: "enable ngrok tunnel"},
			&cli.StringFlag{Name: "ngrok-auth", Value: cfg.NgrokAuthToken, Usage: "ngrok auth token (or NGROK_AUTHTOKEN env var)"},
			&cli.StringFlag{Name: "ngrok-domain", Value: cfg.NgrokDomain, Usage: "custom ngrok domain (optional)"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg.Host = cmd.String("host")
			cfg.Port = int(cmd.Int("port"))
			cfg.LogFile = cmd.String("log-file")
			cfg.Debug = cmd.Bool("debug")
			cfg.NgrokEnabled = cmd.Bool("ngrok")
			cfg.NgrokAuthToken = cmd.String("ngrok-auth")
			cfg.NgrokDomain = cmd.String("ngrok-domain")
			return runServer(cfg)
		},
		Commands: []*cli.Command{
			{
				Name:  "mcp",
				Usage: "run an MCP stdio server proxying to a running relay",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "api-url", Value: "http://localhost:8080", Usage: "base URL of the relay's HTTP API"},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					client := mcp.NewClient(cmd.String("api-url"))
					return mcpserver.ServeStdio(client.GetMCPServer())
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// runServer wires the registry, hub, and HTTP surfaces, then serves until
// interrupted.
func runServer(cfg *config.Config) error {
	if err := logging.Init(cfg.LogFile, cfg.Debug); err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer logging.Sync()

	logging.Log.Infof("starting %s v%s", AppName, Version)

	// The hub must exist before the registry (it is the registry's
	// Broadcaster), and the registry is the hub's event handler.
	hub := websocket.NewHub()
	registry := session.NewRegistry(hub, session.NewIDSource())
	hub.SetHandler(registry)

	roomService := service.NewRoomService(registry)
	apiServer := api.NewServer(roomService, hub)

	addr := cfg.Addr()
	baseURL := fmt.Sprintf("http://%s", addr)
	mcpClient := mcp.NewClient(baseURL)

	mainRouter := http.NewServeMux()
	mainRouter.Handle("/", apiServer)
	mainRouter.HandleFunc("/mcp", func(w http.ResponseWriter, r *http.Request) {
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

		response := mcpClient.GetMCPServer().HandleMessage(r.Context(), body)

		w.Header().Set("Content-Type", "application/json")
		responseData, err := json.Marshal(response)
		if err != nil {
			http.Error(w, "Failed to marshal response", http.StatusInternalServerError)
			return
		}
		_, _ = w.Write(responseData)
	})

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mainRouter,
		// No read/write timeouts: WebSocket connections are long-lived.
		ReadHeaderTimeout: 15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()

		logging.Log.Infof("HTTP server listening on %s", addr)
		logging.Log.Infof("WebSocket: ws://%s/ws", addr)
		logging.Log.Infof("REST API: %s/api", baseURL)
		logging.Log.Infof("MCP endpoint: %s/mcp", baseURL)

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Log.Fatalf("HTTP server failed: %v", err)
		}
	}()

	if cfg.NgrokEnabled {
		wg.Add(1)
		go func() {
			defer wg.Done()
			runNgrokTunnel(ctx, cfg, mainRouter)
		}()
	}

	sig := <-stop
	logging.Log.Infof("received signal: %v, shutting down", sig)
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logging.Log.Errorf("HTTP server shutdown: %v", err)
	}

	wg.Wait()
	logging.Log.Info("server stopped")
	return nil
}

// runNgrokTunnel serves the same router through a public ngrok endpoint.
func runNgrokTunnel(ctx context.Context, cfg *config.Config, handler http.Handler) {
	if cfg.NgrokAuthToken == "" {
		logging.Log.Warn("ngrok enabled but no auth token provided (use --ngrok-auth or NGROK_AUTHTOKEN)")
		return
	}

	logging.Log.Info("starting ngrok tunnel...")

	var tunnel ngrokConfig.Tunnel
	if cfg.NgrokDomain != "" {
		tunnel = ngrokConfig.HTTPEndpoint(ngrokConfig.WithDomain(cfg.NgrokDomain))
		logging.Log.Infof("using custom ngrok domain: %s", cfg.NgrokDomain)
	} else {
		tunnel = ngrokConfig.HTTPEndpoint()
	}

	tun, err := ngrok.Listen(ctx, tunnel, ngrok.WithAuthtoken(cfg.NgrokAuthToken))
	if err != nil {
		logging.Log.Errorf("failed to start ngrok tunnel: %v", err)
		return
	}
	defer func() {
		if err := tun.Close(); err != nil {
			logging.Log.Errorf("failed to close ngrok tunnel: %v", err)
		}
	}()

	logging.Log.Infof("ngrok tunnel established: %s", tun.URL())

	if err := http.Serve(tun, handler); err != nil && err != http.ErrServerClosed {
		logging.Log.Errorf("ngrok server error: %v", err)
	}
	logging.Log.Info("ngrok tunnel closed")
}
