package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config application configuration
type Config struct {
	// DataFile persisted customers/products state
	DataFile string `envconfig:"CRM_DATA_FILE" default:"crm_data.json"`
	// ActivityDBPath sqlite activity journal; empty keeps the journal in memory
	ActivityDBPath string `envconfig:"CRM_ACTIVITY_DB_PATH" default:"data/activity.db"`
	// ActivityLimit default number of entries shown by history
	ActivityLimit int `envconfig:"CRM_ACTIVITY_LIMIT" default:"50"`
	// ExportDir where exports with a bare file name are written
	ExportDir string `envconfig:"CRM_EXPORT_DIR" default:"."`

	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"console"`
}

// Load reads .env (if present) and the environment.
func Load() (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values envconfig cannot.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.DataFile) == "" {
		return fmt.Errorf("CRM_DATA_FILE must not be empty")
	}
	if c.ActivityLimit < 0 {
		return fmt.Errorf("CRM_ACTIVITY_LIMIT must not be negative, got %d", c.ActivityLimit)
	}
	switch strings.ToLower(c.LogFormat) {
	case "console", "json":
	default:
		return fmt.Errorf("LOG_FORMAT must be console or json, got %q", c.LogFormat)
	}
	return nil
}
