package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

// Config holds application configuration sourced from environment variables.
type Config struct {
	Env           string `envconfig:"APP_ENV" default:"dev"`
	Port          string `envconfig:"PORT" default:"8080"`
	DBPath        string `envconfig:"DB_PATH" default:"./deals.db"`
	MigrationsDir string `envconfig:"MIGRATIONS_DIR" default:"migrations"`
	LogLevel      string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat     string `envconfig:"LOG_FORMAT" default:"json"`
	SeedPresets   bool   `envconfig:"SEED_PRESETS" default:"true"`
}

// Load reads .env (if present) and the process environment.
func Load() (Config, error) {
	return LoadFrom(".env")
}

// LoadFrom is Load with an explicit dotenv path. Variables already set in the
// environment win over the file; a missing file is not an error.
func LoadFrom(dotenvPath string) (Config, error) {
	if err := godotenv.Load(dotenvPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load %s: %w", dotenvPath, err)
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}
	if !strings.EqualFold(cfg.Env, AppEnvDev) && !strings.EqualFold(cfg.Env, AppEnvProd) {
		return Config{}, fmt.Errorf("APP_ENV must be %q or %q, got %q", AppEnvDev, AppEnvProd, cfg.Env)
	}
	return cfg, nil
}

func (c Config) IsDev() bool {
	return strings.EqualFold(c.Env, AppEnvDev)
}
