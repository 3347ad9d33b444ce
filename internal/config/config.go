// Package config assembles runtime configuration from an optional .env
// file and environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/hosgoru/vugraph-archive/internal/vugraph"
)

// BackendInternal selects the in-process double-dummy solver. Any other
// accepted DD_SOLVER_BACKEND value is the URL of an external service.
const BackendInternal = "internal"

// Config carries everything the commands need to run.
type Config struct {
	BaseURL   string
	RateLimit time.Duration
	StorePath string

	// SolverBackend is either BackendInternal or the http(s) URL of an
	// external double-dummy service.
	SolverBackend string
}

// Load reads an optional .env file from the working directory and applies
// the environment on top of the defaults.
func Load() (Config, error) {
	// A missing .env is fine; explicit environment always wins because
	// godotenv never overwrites existing variables.
	_ = godotenv.Load()

	cfg := Config{
		BaseURL:       vugraph.DefaultBaseURL,
		RateLimit:     vugraph.DefaultRateLimit,
		StorePath:     "hands_database.json",
		SolverBackend: BackendInternal,
	}

	if v := os.Getenv("VUGRAPH_BASE_URL"); v != "" {
		cfg.BaseURL = strings.TrimRight(v, "/")
	}
	if v := os.Getenv("RATE_LIMIT_MS"); v != "" {
		ms, err := strconv.Atoi(v)
		if err != nil || ms < 0 {
			return Config{}, fmt.Errorf("invalid RATE_LIMIT_MS %q", v)
		}
		cfg.RateLimit = time.Duration(ms) * time.Millisecond
	}
	if v := os.Getenv("STORE_PATH"); v != "" {
		cfg.StorePath = v
	}
	if v := os.Getenv("DD_SOLVER_BACKEND"); v != "" {
		if v != BackendInternal && !strings.HasPrefix(v, "http://") && !strings.HasPrefix(v, "https://") {
			return Config{}, fmt.Errorf("invalid DD_SOLVER_BACKEND %q", v)
		}
		cfg.SolverBackend = v
	}
	return cfg, nil
}

// SolverURL returns the external solver URL, or empty for the in-process
// backend.
func (c Config) SolverURL() string {
	if c.SolverBackend == BackendInternal {
		return ""
	}
	return c.SolverBackend
}
