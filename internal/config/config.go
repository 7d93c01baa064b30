package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultPort           = "8080"
	defaultAppEnv         = "dev"
	defaultSessionIdleTTL = 2 * time.Hour
	defaultMaxSessions    = 10000
)

// Config holds application configuration sourced from environment variables.
type Config struct {
	SessionSecret  string
	Port           string
	AppEnv         string
	LogMode        string
	SessionIdleTTL time.Duration
	MaxSessions    int

	problems []string
}

// Load reads environment variables and returns a populated Config.
func Load() Config {
	// Best-effort: load local dev environment variables.
	// We don't fail if the file is missing; production should use real env injection.
	_, _ = loadDotEnv(".env")

	return fromEnv()
}

func fromEnv() Config {
	cfg := Config{
		SessionSecret: os.Getenv("SESSION_SECRET"),
		Port:          strings.TrimSpace(os.Getenv("PORT")),
		AppEnv:        strings.ToLower(strings.TrimSpace(os.Getenv("APP_ENV"))),
		LogMode:       strings.ToLower(strings.TrimSpace(os.Getenv("LOG_MODE"))),
	}

	if cfg.Port == "" {
		cfg.Port = defaultPort
	}
	if cfg.AppEnv == "" {
		cfg.AppEnv = defaultAppEnv
	}
	if cfg.LogMode == "" {
		cfg.LogMode = "dev"
		if !cfg.IsDev() {
			cfg.LogMode = "prod"
		}
	}

	cfg.SessionIdleTTL = cfg.envDuration("SESSION_IDLE_TTL", defaultSessionIdleTTL)
	cfg.MaxSessions = cfg.envInt("SESSION_MAX", defaultMaxSessions)

	return cfg
}

// IsDev reports whether the app runs in a development environment.
func (c Config) IsDev() bool {
	return c.AppEnv == "dev" || c.AppEnv == "development" || c.AppEnv == "local"
}

// SweepInterval is how often idle sessions are looked for.
func (c Config) SweepInterval() time.Duration {
	interval := c.SessionIdleTTL / 4
	if interval > time.Minute {
		interval = time.Minute
	}
	if interval < time.Second {
		interval = time.Second
	}
	return interval
}

// Warnings lists configuration problems worth logging at startup.
func (c Config) Warnings() []string {
	out := append([]string(nil), c.problems...)
	if c.SessionSecret == "" {
		out = append(out, "SESSION_SECRET is not set")
	}
	return out
}

func (c *Config) envDuration(name string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d < 0 {
		c.problems = append(c.problems, fmt.Sprintf("%s=%q is not a valid duration, using %s", name, v, def))
		return def
	}
	return d
}

func (c *Config) envInt(name string, def int) int {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil || i < 0 {
		c.problems = append(c.problems, fmt.Sprintf("%s=%q is not a valid count, using %d", name, v, def))
		return def
	}
	return i
}
