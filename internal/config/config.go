// Package config loads CLI defaults from the environment and an optional
// .env file.
package config

import (
	"errors"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Shades       int
	Matcher      string
	OutputDir    string
	PreviewScale int
	PadLightmap  bool
	Verbose      bool
}

// Load reads .env from the working directory, if present, then the
// PALGEN_* environment variables. Real environment variables win over
// .env entries.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Shades:       getEnvInt("PALGEN_SHADES", 32),
		Matcher:      getEnv("PALGEN_MATCHER", "brute"),
		OutputDir:    getEnv("PALGEN_OUTPUT_DIR", "."),
		PreviewScale: getEnvInt("PALGEN_PREVIEW_SCALE", 24),
		PadLightmap:  getEnvBool("PALGEN_PAD_LIGHTMAP", false),
		Verbose:      getEnvBool("PALGEN_VERBOSE", false),
	}

	if cfg.Shades <= 0 {
		return Config{}, errors.New("shades must be > 0")
	}
	if cfg.PreviewScale <= 0 {
		return Config{}, errors.New("preview scale must be > 0")
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
