package toolserver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync/atomic"

	"github.com/couchcryptid/weather-mcp-server/internal/observability"
	"github.com/couchcryptid/weather-mcp-server/internal/weather"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// WeatherService answers the two weather tools.
type WeatherService interface {
	GetAlerts(ctx context.Context, state string) string
	GetForecast(ctx context.Context, lat, lon float64) (string, error)
}

// Info identifies the server to clients and in the startup banner.
type Info struct {
	Name     string
	Version  string
	Endpoint string // upstream weather API
}

// Server exposes the weather tools over the MCP stdio transport.
type Server struct {
	mcp     *server.MCPServer
	info    Info
	svc     WeatherService
	logger  *slog.Logger
	metrics *observability.Metrics
	ready   atomic.Bool
}

// New creates a Server with get_alerts and get_forecast registered.
func New(info Info, svc WeatherService, logger *slog.Logger, metrics *observability.Metrics) *Server {
	s := &Server{
		mcp: server.NewMCPServer(info.Name, info.Version,
			server.WithToolCapabilities(false),
			server.WithRecovery(),
		),
		info:    info,
		svc:     svc,
		logger:  logger,
		metrics: metrics,
	}

	s.mcp.AddTool(mcp.NewTool(weather.ToolGetAlerts,
		mcp.WithDescription("Get weather alerts for a state"),
		mcp.WithString("state",
			mcp.Required(),
			mcp.Description("Two-letter state code (e.g. CA, NY)"),
		),
	), s.handleGetAlerts)

	s.mcp.AddTool(mcp.NewTool(weather.ToolGetForecast,
		mcp.WithDescription("Get weather forecast for a location"),
		mcp.WithNumber("latitude",
			mcp.Required(),
			mcp.Description("Latitude of the location"),
		),
		mcp.WithNumber("longitude",
			mcp.Required(),
			mcp.Description("Longitude of the location"),
		),
	), s.handleGetForecast)

	return s
}

// Serve runs the stdio transport until ctx is cancelled or in is exhausted.
func (s *Server) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	stdio := server.NewStdioServer(s.mcp)
	stdio.SetErrorLogger(slog.NewLogLogger(s.logger.Handler(), slog.LevelError))

	s.logger.Info("tool server starting", "name", s.info.Name, "version", s.info.Version, "transport", "stdio")
	s.ready.Store(true)
	s.metrics.ServerRunning.Set(1)
	defer func() {
		s.ready.Store(false)
		s.metrics.ServerRunning.Set(0)
	}()

	err := stdio.Listen(ctx, in, out)
	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
		s.logger.Info("tool server stopped")
		return nil
	}
	return fmt.Errorf("stdio transport: %w", err)
}

// CheckReadiness returns nil while the stdio transport is serving.
func (s *Server) CheckReadiness(_ context.Context) error {
	if !s.ready.Load() {
		return errors.New("tool server is not serving")
	}
	return nil
}

// Banner renders the diagnostic block printed to stderr at startup.
func (s *Server) Banner() string {
	divider := strings.Repeat("=", 60)

	var b strings.Builder
	fmt.Fprintf(&b, "\n%s\n", divider)
	b.WriteString("🌦️  MCP WEATHER SERVER RUNNING  🌦️\n")
	fmt.Fprintf(&b, "%s\n", divider)
	fmt.Fprintf(&b, "Server Name: %s\n", s.info.Name)
	fmt.Fprintf(&b, "Server Version: %s\n", s.info.Version)
	b.WriteString("Transport: stdio\n")
	fmt.Fprintf(&b, "API Endpoint: %s\n", s.info.Endpoint)
	b.WriteString("\nAvailable Tools:\n")
	fmt.Fprintf(&b, "  - %s: Get weather alerts for a state\n", weather.ToolGetAlerts)
	fmt.Fprintf(&b, "  - %s: Get weather forecast for a location\n", weather.ToolGetForecast)
	b.WriteString("\nServer is ready to process requests!\n")
	fmt.Fprintf(&b, "%s\n", divider)
	return b.String()
}

func (s *Server) handleGetAlerts(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	state, err := req.RequireString("state")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	s.logger.Debug("tool called", "tool", weather.ToolGetAlerts, "state", state)

	return mcp.NewToolResultText(s.svc.GetAlerts(ctx, state)), nil
}

func (s *Server) handleGetForecast(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	lat, err := req.RequireFloat("latitude")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	lon, err := req.RequireFloat("longitude")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	s.logger.Debug("tool called", "tool", weather.ToolGetForecast, "lat", lat, "lon", lon)

	text, err := s.svc.GetForecast(ctx, lat, lon)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("forecast lookup failed: %v", err)), nil
	}
	return mcp.NewToolResultText(text), nil
}
