package config

import (
	"errors"
	"net/url"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	ServerName    string
	ServerVersion string

	// National Weather Service API configuration.
	NWSBaseURL   string
	NWSUserAgent string
	NWSTimeout   time.Duration

	// HTTPAddr is the listen address of the health/metrics sidecar.
	// Empty disables it.
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	nwsTimeout, err := time.ParseDuration(sharedcfg.EnvOrDefault("NWS_TIMEOUT", "30s"))
	if err != nil || nwsTimeout <= 0 {
		return nil, errors.New("invalid NWS_TIMEOUT")
	}

	cfg := &Config{
		ServerName:      sharedcfg.EnvOrDefault("SERVER_NAME", "WeatherServer"),
		ServerVersion:   sharedcfg.EnvOrDefault("SERVER_VERSION", "1.0.0"),
		NWSBaseURL:      sharedcfg.EnvOrDefault("NWS_BASE_URL", "https://api.weather.gov"),
		NWSUserAgent:    sharedcfg.EnvOrDefault("NWS_USER_AGENT", "weather-app/1.0"),
		NWSTimeout:      nwsTimeout,
		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ""),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,
	}

	u, err := url.Parse(cfg.NWSBaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, errors.New("NWS_BASE_URL must be an absolute http(s) URL")
	}
	if cfg.NWSUserAgent == "" {
		return nil, errors.New("NWS_USER_AGENT is required")
	}
	if cfg.ServerName == "" {
		return nil, errors.New("SERVER_NAME is required")
	}

	return cfg, nil
}
