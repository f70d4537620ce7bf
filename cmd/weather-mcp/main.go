package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/weather-mcp-server/internal/adapter/httpadapter"
	"github.com/couchcryptid/weather-mcp-server/internal/adapter/nws"
	"github.com/couchcryptid/weather-mcp-server/internal/adapter/toolserver"
	"github.com/couchcryptid/weather-mcp-server/internal/config"
	"github.com/couchcryptid/weather-mcp-server/internal/observability"
	"github.com/couchcryptid/weather-mcp-server/internal/weather"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	client := nws.NewClient(cfg.NWSBaseURL, cfg.NWSUserAgent, cfg.NWSTimeout, metrics, logger)
	svc := weather.NewService(client, logger, metrics)
	srv := toolserver.New(toolserver.Info{
		Name:     cfg.ServerName,
		Version:  cfg.ServerVersion,
		Endpoint: cfg.NWSBaseURL,
	}, svc, logger, metrics)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Health and metrics sidecar, only when an address is configured.
	sidecarDone := make(chan struct{})
	if cfg.HTTPAddr != "" {
		sidecar := httpadapter.NewServer(cfg.HTTPAddr, srv, logger)
		go func() {
			defer close(sidecarDone)
			if err := sidecar.Run(ctx, cfg.ShutdownTimeout); err != nil {
				logger.Error("http server error", "error", err)
			}
		}()
	} else {
		close(sidecarDone)
	}

	fmt.Fprint(os.Stderr, srv.Banner())

	if err := srv.Serve(ctx, os.Stdin, os.Stdout); err != nil {
		logger.Error("tool server error", "error", err)
	}

	// Input closed or signal received; release the sidecar either way.
	stop()
	<-sidecarDone
	logger.Info("shutdown complete")
}
