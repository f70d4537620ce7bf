package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const defaultBaseURL = "https://api.weather.gov"

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "WeatherServer", cfg.ServerName)
	assert.Equal(t, "1.0.0", cfg.ServerVersion)
	assert.Equal(t, defaultBaseURL, cfg.NWSBaseURL)
	assert.Equal(t, "weather-app/1.0", cfg.NWSUserAgent)
	assert.Equal(t, 30*time.Second, cfg.NWSTimeout)
	assert.Empty(t, cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("SERVER_NAME", "StormServer")
	t.Setenv("SERVER_VERSION", "2.1.0")
	t.Setenv("NWS_BASE_URL", "http://localhost:9999")
	t.Setenv("NWS_USER_AGENT", "(storm-tools, ops@example.com)")
	t.Setenv("NWS_TIMEOUT", "5s")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "StormServer", cfg.ServerName)
	assert.Equal(t, "2.1.0", cfg.ServerVersion)
	assert.Equal(t, "http://localhost:9999", cfg.NWSBaseURL)
	assert.Equal(t, "(storm-tools, ops@example.com)", cfg.NWSUserAgent)
	assert.Equal(t, 5*time.Second, cfg.NWSTimeout)
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
}

func TestLoad_InvalidShutdownTimeout(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT", "not-a-duration")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SHUTDOWN_TIMEOUT")
}

func TestLoad_InvalidNWSTimeout(t *testing.T) {
	t.Setenv("NWS_TIMEOUT", "bad")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NWS_TIMEOUT")
}

func TestLoad_NegativeNWSTimeout(t *testing.T) {
	t.Setenv("NWS_TIMEOUT", "-1s")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NWS_TIMEOUT")
}

func TestLoad_RelativeBaseURL(t *testing.T) {
	t.Setenv("NWS_BASE_URL", "api.weather.gov")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NWS_BASE_URL")
}

func TestLoad_NonHTTPBaseURL(t *testing.T) {
	t.Setenv("NWS_BASE_URL", "ftp://api.weather.gov")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NWS_BASE_URL")
}
