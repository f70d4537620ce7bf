package weather

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/couchcryptid/weather-mcp-server/internal/domain"
	"github.com/couchcryptid/weather-mcp-server/internal/observability"
)

// Messages returned to tool callers. Failures are reported as plain text.
const (
	MsgInvalidState                = "Error: Please provide a valid two-letter state code"
	MsgAlertsUnavailable           = "Unable to fetch alerts data for this state."
	MsgForecastUnavailable         = "Unable to fetch forecast data for this location."
	MsgDetailedForecastUnavailable = "Unable to fetch detailed forecast."
)

// Tool names, also used as metric labels.
const (
	ToolGetAlerts   = "get_alerts"
	ToolGetForecast = "get_forecast"
)

// Call outcomes recorded in metrics.
const (
	outcomeOK          = "ok"
	outcomeInvalid     = "invalid"
	outcomeEmpty       = "empty"
	outcomeUnavailable = "unavailable"
	outcomeMalformed   = "malformed"
)

// Provider is the weather data source behind the tools.
type Provider interface {
	ActiveAlerts(ctx context.Context, area string) ([]domain.Alert, error)
	ForecastURL(ctx context.Context, lat, lon float64) (string, error)
	ForecastPeriods(ctx context.Context, forecastURL string) ([]domain.RawPeriod, error)
}

// Service implements the alert and forecast lookups.
type Service struct {
	provider Provider
	logger   *slog.Logger
	metrics  *observability.Metrics
}

// NewService creates a Service backed by provider.
func NewService(provider Provider, logger *slog.Logger, metrics *observability.Metrics) *Service {
	return &Service{
		provider: provider,
		logger:   logger,
		metrics:  metrics,
	}
}

// GetAlerts returns the rendered active alerts for a two-letter state code.
func (s *Service) GetAlerts(ctx context.Context, state string) string {
	if utf8.RuneCountInString(state) != 2 {
		s.record(ToolGetAlerts, outcomeInvalid)
		return MsgInvalidState
	}
	state = strings.ToUpper(state)

	alerts, err := s.provider.ActiveAlerts(ctx, state)
	if err != nil {
		s.logger.Warn("alerts lookup failed", "state", state, "error", err)
		s.record(ToolGetAlerts, outcomeUnavailable)
		return MsgAlertsUnavailable
	}

	if len(alerts) == 0 {
		s.record(ToolGetAlerts, outcomeEmpty)
		return "No active weather alerts for " + state + "."
	}

	s.record(ToolGetAlerts, outcomeOK)
	return domain.RenderAlerts(alerts)
}

// GetForecast returns the next few forecast periods for a coordinate pair.
// Provider failures are reported in the returned text; a non-nil error means
// the provider answered with a payload missing fields the lookup needs.
func (s *Service) GetForecast(ctx context.Context, lat, lon float64) (string, error) {
	forecastURL, err := s.provider.ForecastURL(ctx, lat, lon)
	if err != nil {
		return s.forecastFailure(err, MsgForecastUnavailable, "lat", lat, "lon", lon)
	}

	periods, err := s.provider.ForecastPeriods(ctx, forecastURL)
	if err != nil {
		return s.forecastFailure(err, MsgDetailedForecastUnavailable, "forecast_url", forecastURL)
	}

	out, err := domain.RenderForecast(periods)
	if err != nil {
		return s.forecastFailure(err, "", "forecast_url", forecastURL)
	}

	s.record(ToolGetForecast, outcomeOK)
	return out, nil
}

func (s *Service) forecastFailure(err error, msg string, attrs ...any) (string, error) {
	if errors.Is(err, domain.ErrMalformedPayload) {
		s.logger.Error("forecast payload malformed", append(attrs, "error", err)...)
		s.record(ToolGetForecast, outcomeMalformed)
		return "", err
	}
	s.logger.Warn("forecast lookup failed", append(attrs, "error", err)...)
	s.record(ToolGetForecast, outcomeUnavailable)
	return msg, nil
}

func (s *Service) record(tool, outcome string) {
	s.metrics.ToolCalls.WithLabelValues(tool, outcome).Inc()
}
