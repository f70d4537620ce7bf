// Command weather-cli runs a single weather tool lookup against the NWS API
// and prints the result, without the stdio protocol. Useful for checking the
// provider and the rendered output by hand.
//
// Usage:
//
//	go run ./cmd/weather-cli -alerts CA
//	go run ./cmd/weather-cli -lat 39.7456 -lon -97.0892
//
// Configuration comes from the same environment variables as the server
// (NWS_BASE_URL, NWS_USER_AGENT, NWS_TIMEOUT, LOG_LEVEL, LOG_FORMAT).
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/weather-mcp-server/internal/adapter/nws"
	"github.com/couchcryptid/weather-mcp-server/internal/config"
	"github.com/couchcryptid/weather-mcp-server/internal/observability"
	"github.com/couchcryptid/weather-mcp-server/internal/weather"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run() error {
	state := flag.String("alerts", "", "two-letter state code to list active alerts for")
	lat := flag.Float64("lat", 0, "latitude for a forecast lookup")
	lon := flag.Float64("lon", 0, "longitude for a forecast lookup")
	flag.Parse()

	forecast := isFlagSet("lat") || isFlagSet("lon")
	if *state == "" && !forecast {
		flag.Usage()
		return errors.New("one of -alerts or -lat/-lon is required")
	}
	if forecast && !(isFlagSet("lat") && isFlagSet("lon")) {
		return errors.New("-lat and -lon must be given together")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	client := nws.NewClient(cfg.NWSBaseURL, cfg.NWSUserAgent, cfg.NWSTimeout, metrics, logger)
	svc := weather.NewService(client, logger, metrics)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if *state != "" {
		fmt.Println(svc.GetAlerts(ctx, *state))
	}
	if forecast {
		out, err := svc.GetForecast(ctx, *lat, *lon)
		if err != nil {
			return err
		}
		fmt.Println(out)
	}
	return nil
}

func isFlagSet(name string) bool {
	set := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}
