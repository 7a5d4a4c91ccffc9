package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// ServerConfig holds the SSH server settings. Every field can be set from
// the environment; command-line flags override it.
type ServerConfig struct {
	// Address is the host:port to listen on.
	Address string `env:"COOKIES_SSH_ADDR" envDefault:":23234"`
	// HostKeyPath is the host key file; empty means ~/.cookies/host_key.
	HostKeyPath string `env:"COOKIES_HOST_KEY"`
	// DBPath is the scores database.
	DBPath string `env:"COOKIES_DB" envDefault:"~/.cookies/scores.db"`
	// IdleTimeout closes connections without input for this long.
	IdleTimeout time.Duration `env:"COOKIES_IDLE_TIMEOUT" envDefault:"30m"`
	// TickRate is the per-session simulation rate.
	TickRate int `env:"COOKIES_TICK_RATE" envDefault:"30"`
}

// LoadServerConfig reads the server settings from the environment.
func LoadServerConfig() (ServerConfig, error) {
	var cfg ServerConfig
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("config: parse env: %w", err)
	}
	if cfg.TickRate <= 0 {
		return cfg, fmt.Errorf("config: tick rate %d must be positive", cfg.TickRate)
	}
	return cfg, nil
}
