package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

const (
	PolicyLastWriteWins      = "last-write-wins"
	PolicyRejectWhilePending = "reject-while-pending"
)

type Config struct {
	Port             string        `env:"PORT" envDefault:"8080"`
	AppEnv           string        `env:"APP_ENV" envDefault:"production"`
	LogLevel         string        `env:"LOG_LEVEL" envDefault:"info"`
	FixturesPath     string        `env:"FIXTURES_PATH"`
	ViewerID         string        `env:"VIEWER_ID" envDefault:"current-user"`
	FilterDelay      time.Duration `env:"SIMULATED_FILTER_DELAY" envDefault:"500ms"`
	SaveDelay        time.Duration `env:"SIMULATED_SAVE_DELAY" envDefault:"1s"`
	FailureRate      float64       `env:"SIMULATED_FAILURE_RATE" envDefault:"0"`
	PendingPolicy    string        `env:"PENDING_POLICY" envDefault:"last-write-wins"`
	EnableMetrics    bool          `env:"ENABLE_METRICS" envDefault:"true"`
	CORSAllowOrigins string        `env:"CORS_ALLOW_ORIGINS" envDefault:"*"`
}

// LoadConfig reads the optional env files (".env" when none are given) and
// parses the environment into a Config.
func LoadConfig(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil {
		log.Println("No .env file found")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env config: %w", err)
	}

	cfg.AppEnv = normalizeEnv(cfg.AppEnv)
	cfg.PendingPolicy = strings.ToLower(strings.TrimSpace(cfg.PendingPolicy))
	cfg.ViewerID = strings.TrimSpace(cfg.ViewerID)
	cfg.FixturesPath = strings.TrimSpace(cfg.FixturesPath)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.ViewerID == "" {
		return fmt.Errorf("VIEWER_ID must not be empty")
	}
	if c.FailureRate < 0 || c.FailureRate > 1 {
		return fmt.Errorf("SIMULATED_FAILURE_RATE must be between 0 and 1, got %v", c.FailureRate)
	}
	if c.FilterDelay < 0 || c.SaveDelay < 0 {
		return fmt.Errorf("simulated delays must not be negative")
	}
	switch c.PendingPolicy {
	case PolicyLastWriteWins, PolicyRejectWhilePending:
	default:
		return fmt.Errorf("PENDING_POLICY must be one of: %s, %s", PolicyLastWriteWins, PolicyRejectWhilePending)
	}
	return nil
}

func normalizeEnv(value string) string {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "dev", "develop", "development", "local":
		return "development"
	case "prod", "production":
		return "production"
	case "stage", "staging":
		return "staging"
	case "test", "testing":
		return "test"
	default:
		return strings.ToLower(strings.TrimSpace(value))
	}
}

func (c *Config) IsDevelopment() bool {
	return c != nil && c.AppEnv == "development"
}
