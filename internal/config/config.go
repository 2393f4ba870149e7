// Package config reads the runtime configuration from environment
// variables, optionally seeded from a .env file. CLI flags override
// whatever is loaded here.
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"classeur/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Paths   PathConfig
	Diff    DiffConfig
	Extract ExtractConfig
}

// PathConfig holds file system locations shared by the commands.
type PathConfig struct {
	BaselineFile string // reference workbook new rows are diffed against
	SourceDir    string // directory scanned for candidate workbooks
	OutputDir    string // where generated workbooks land
	WorkDir      string // scratch space for archive extraction
}

// DiffConfig holds row-diffing defaults.
type DiffConfig struct {
	KeyColumns   []string // identity key column names
	MarkerColumn string   // group-boundary column written by group output
}

// ExtractConfig holds archive-extraction settings.
type ExtractConfig struct {
	Parallelism int // concurrent zip extractions
}

// Load reads configuration from the environment. A .env file in the
// working directory is honored when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Paths: PathConfig{
			BaselineFile: getEnvOrDefault("CLASSEUR_BASELINE", "Ventes1.xlsx"),
			SourceDir:    getEnvOrDefault("CLASSEUR_SOURCE_DIR", "."),
			OutputDir:    getEnvOrDefault("CLASSEUR_OUTPUT_DIR", "output"),
			WorkDir:      getEnvOrDefault("CLASSEUR_WORK_DIR", "work"),
		},
		Diff: DiffConfig{
			KeyColumns:   splitList(getEnvOrDefault("CLASSEUR_KEY_COLUMNS", "")),
			MarkerColumn: getEnvOrDefault("CLASSEUR_MARKER_COLUMN", "groupe"),
		},
		Extract: ExtractConfig{
			Parallelism: getEnvIntOrDefault("CLASSEUR_EXTRACT_PARALLELISM", 4),
		},
	}

	if err := validate(cfg); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.Paths.BaselineFile == "" {
		return errors.ConfigInvalid("baseline file is required")
	}
	if cfg.Extract.Parallelism < 1 {
		return errors.ConfigInvalid("extract parallelism must be >= 1")
	}
	return nil
}

func splitList(value string) []string {
	if value == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
