package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Addr           string        `env:"FRACMATCH_ADDR" envDefault:":8080"`
	LogLevel       string        `env:"FRACMATCH_LOG_LEVEL" envDefault:"info"`
	LogDevelopment bool          `env:"FRACMATCH_LOG_DEV" envDefault:"false"`
	DatabaseURL    string        `env:"FRACMATCH_DATABASE_URL"`
	SuccessDelay   time.Duration `env:"FRACMATCH_SUCCESS_DELAY" envDefault:"2s"`
	FeedbackDelay  time.Duration `env:"FRACMATCH_FEEDBACK_DELAY" envDefault:"3s"`
	// SessionIdleTimeout stops sessions nobody is connected to; zero disables it.
	SessionIdleTimeout time.Duration `env:"FRACMATCH_SESSION_IDLE_TIMEOUT" envDefault:"10m"`
	// Seed fixes every game's random source; zero draws a fresh seed per game.
	Seed           int64    `env:"FRACMATCH_SEED" envDefault:"0"`
	AllowedOrigins []string `env:"FRACMATCH_ALLOWED_ORIGINS" envSeparator:","`
}

// Load reads the given dotenv files (".env" when none are named) and then the
// process environment. Missing dotenv files are not an error, and variables
// already set in the environment win over the files.
func Load(files ...string) (Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load dotenv: %w", err)
	}

	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if cfg.SuccessDelay < 0 || cfg.FeedbackDelay < 0 || cfg.SessionIdleTimeout < 0 {
		return Config{}, fmt.Errorf("delays must not be negative")
	}
	return cfg, nil
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
