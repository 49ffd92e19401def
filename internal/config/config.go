package config

import (
	"fmt"
	"log/slog"
	"net/url"

	"github.com/joho/godotenv"
	"go-simpler.org/env"
)

type Config struct {
	AppEnv    string `env:"APP_ENV" default:"development"`
	Port      string `env:"PORT" default:"8080"`
	AppURL    string `env:"APP_URL" default:"http://localhost:8080"`
	LogLevel  string `env:"LOG_LEVEL" default:"info"`
	LogFormat string `env:"LOG_FORMAT" default:"text"`

	MaxWebSocketConnections int `env:"MAX_WEBSOCKET_CONNECTIONS" default:"10000"`
	MaxConnectionsPerIP     int `env:"MAX_CONNECTIONS_PER_IP" default:"32"`

	BroadcastRatePerSecond float64 `env:"BROADCAST_RATE_PER_SECOND" default:"50"`
	BroadcastRateBurst     int     `env:"BROADCAST_RATE_BURST" default:"100"`
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	var cfg Config
	if err := env.Load(&cfg, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func validate(cfg *Config) error {
	if cfg.MaxWebSocketConnections <= 0 {
		return fmt.Errorf("MAX_WEBSOCKET_CONNECTIONS must be positive, got %d", cfg.MaxWebSocketConnections)
	}
	if cfg.MaxConnectionsPerIP <= 0 {
		return fmt.Errorf("MAX_CONNECTIONS_PER_IP must be positive, got %d", cfg.MaxConnectionsPerIP)
	}
	if cfg.BroadcastRatePerSecond <= 0 {
		return fmt.Errorf("BROADCAST_RATE_PER_SECOND must be positive, got %v", cfg.BroadcastRatePerSecond)
	}
	if cfg.BroadcastRateBurst <= 0 {
		return fmt.Errorf("BROADCAST_RATE_BURST must be positive, got %d", cfg.BroadcastRateBurst)
	}

	if _, err := url.Parse(cfg.AppURL); err != nil {
		return fmt.Errorf("APP_URL must be a valid URL: %w", err)
	}

	return nil
}

// IsDevelopment reports whether the app runs in development mode.
// Development relaxes the WebSocket origin check to allow localhost.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}
