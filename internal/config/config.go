// Package config collects process configuration: environment variables
// for deployment wiring and an optional YAML tuning file for the
// decision-policy knobs.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config is the deployment surface. Storage selection is by presence:
// a postgres DSN wins over a sqlite path, and with neither set the
// journal stays in memory.
type Config struct {
	Addr          string `env:"RUNEMIND_ADDR" envDefault:":8080"`
	DBDSN         string `env:"RUNEMIND_DB_DSN"`
	SQLitePath    string `env:"RUNEMIND_SQLITE_PATH"`
	StateDir      string `env:"RUNEMIND_STATE_DIR" envDefault:"./data"`
	KnowledgeFile string `env:"RUNEMIND_KNOWLEDGE_FILE"`
	TuningFile    string `env:"RUNEMIND_TUNING_FILE"`

	// Seed fixes the engine's random source for reproducible runs;
	// zero means time-seeded.
	Seed int64 `env:"RUNEMIND_SEED"`
}

// FromEnv parses the environment into a Config.
func FromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}
