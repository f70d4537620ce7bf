package nws

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/couchcryptid/weather-mcp-server/internal/domain"
	"github.com/couchcryptid/weather-mcp-server/internal/observability"
	"github.com/jonboulle/clockwork"
)

// ErrFetch marks any failure to obtain a usable response from the NWS API:
// transport errors, timeouts, non-2xx statuses and undecodable or empty bodies.
var ErrFetch = errors.New("nws fetch failed")

const (
	acceptGeoJSON = "application/geo+json"

	// Upper bound on a response body; forecasts are a few tens of KB.
	maxBodyBytes = 8 << 20
)

// Client talks to the National Weather Service API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	clock      clockwork.Clock
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates an NWS API client. Each request is bounded by timeout and
// uses its own connection.
func NewClient(baseURL, userAgent string, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				Proxy:             http.ProxyFromEnvironment,
				DisableKeepAlives: true,
			},
		},
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: userAgent,
		clock:     clockwork.NewRealClock(),
		metrics:   metrics,
		logger:    logger,
	}
}

// ActiveAlerts returns the active alerts for a two-letter area code.
// The code is used as given; callers normalize it.
func (c *Client) ActiveAlerts(ctx context.Context, area string) ([]domain.Alert, error) {
	u := fmt.Sprintf("%s/alerts/active/area/%s", c.baseURL, url.PathEscape(area))

	var resp alertsResponse
	if err := c.FetchJSON(ctx, "alerts", u, &resp); err != nil {
		return nil, err
	}

	alerts := make([]domain.Alert, 0, len(resp.Features))
	for _, f := range resp.Features {
		alerts = append(alerts, domain.NewAlert(f.Properties))
	}
	return alerts, nil
}

// ForecastURL resolves the gridpoint forecast URL serving a coordinate pair.
func (c *Client) ForecastURL(ctx context.Context, lat, lon float64) (string, error) {
	u := fmt.Sprintf("%s/points/%s,%s", c.baseURL, formatCoordinate(lat), formatCoordinate(lon))

	var resp pointsResponse
	if err := c.FetchJSON(ctx, "points", u, &resp); err != nil {
		return "", err
	}
	if resp.Properties == nil || resp.Properties.Forecast == nil {
		return "", fmt.Errorf("%w: points response has no properties.forecast", domain.ErrMalformedPayload)
	}
	return *resp.Properties.Forecast, nil
}

// ForecastPeriods fetches a forecast URL and returns its periods undecorated.
func (c *Client) ForecastPeriods(ctx context.Context, forecastURL string) ([]domain.RawPeriod, error) {
	var resp forecastResponse
	if err := c.FetchJSON(ctx, "forecast", forecastURL, &resp); err != nil {
		return nil, err
	}
	if resp.Properties == nil || resp.Properties.Periods == nil {
		return nil, fmt.Errorf("%w: forecast response has no properties.periods", domain.ErrMalformedPayload)
	}
	return *resp.Properties.Periods, nil
}

// FetchJSON issues one GET for rawURL and decodes the JSON body into v.
// Every failure wraps ErrFetch; resource labels the request in metrics.
func (c *Client) FetchJSON(ctx context.Context, resource, rawURL string, v any) error {
	start := c.clock.Now()
	err := c.doRequest(ctx, rawURL, v)
	c.metrics.UpstreamDuration.WithLabelValues(resource).Observe(c.clock.Since(start).Seconds())

	if err != nil {
		c.metrics.UpstreamRequests.WithLabelValues(resource, "error").Inc()
		c.logger.Debug("nws request failed", "resource", resource, "url", rawURL, "error", err)
		return fmt.Errorf("%w: %s: %w", ErrFetch, resource, err)
	}
	c.metrics.UpstreamRequests.WithLabelValues(resource, "success").Inc()
	return nil
}

func (c *Client) doRequest(ctx context.Context, rawURL string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", acceptGeoJSON)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("nws API error: status %d: %s", resp.StatusCode, body)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}
	if isEmptyJSON(body) {
		return errors.New("empty response body")
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// isEmptyJSON reports whether body carries no data: nothing, null, or {}.
func isEmptyJSON(body []byte) bool {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return true
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &obj); err == nil && len(obj) == 0 {
		return true
	}
	return false
}

// formatCoordinate renders a coordinate in its shortest form, always keeping
// a decimal point (40 -> "40.0").
func formatCoordinate(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// NWS API response types.

type alertsResponse struct {
	Features []domain.AlertFeature `json:"features"`
}

type pointsResponse struct {
	Properties *struct {
		Forecast *string `json:"forecast"`
	} `json:"properties"`
}

type forecastResponse struct {
	Properties *struct {
		Periods *[]domain.RawPeriod `json:"periods"`
	} `json:"properties"`
}
