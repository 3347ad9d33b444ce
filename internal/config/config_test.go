package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"VUGRAPH_BASE_URL", "RATE_LIMIT_MS", "STORE_PATH", "DD_SOLVER_BACKEND"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.BaseURL != "https://clubs.vugraph.com/hosgoru" {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.RateLimit != 200*time.Millisecond {
		t.Errorf("RateLimit = %v", cfg.RateLimit)
	}
	if cfg.StorePath != "hands_database.json" {
		t.Errorf("StorePath = %q", cfg.StorePath)
	}
	if cfg.SolverBackend != BackendInternal {
		t.Errorf("SolverBackend = %q", cfg.SolverBackend)
	}
	if cfg.SolverURL() != "" {
		t.Errorf("SolverURL = %q, want empty for internal backend", cfg.SolverURL())
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("VUGRAPH_BASE_URL", "http://localhost:8080/hosgoru/")
	t.Setenv("RATE_LIMIT_MS", "50")
	t.Setenv("STORE_PATH", "/tmp/test_hands.json")
	t.Setenv("DD_SOLVER_BACKEND", "http://solver.local/dd")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.BaseURL != "http://localhost:8080/hosgoru" {
		t.Errorf("BaseURL = %q, want trailing slash trimmed", cfg.BaseURL)
	}
	if cfg.RateLimit != 50*time.Millisecond {
		t.Errorf("RateLimit = %v", cfg.RateLimit)
	}
	if cfg.StorePath != "/tmp/test_hands.json" {
		t.Errorf("StorePath = %q", cfg.StorePath)
	}
	if cfg.SolverURL() != "http://solver.local/dd" {
		t.Errorf("SolverURL = %q", cfg.SolverURL())
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("RATE_LIMIT_MS", "fast")
	if _, err := Load(); err == nil {
		t.Error("expected error for non-numeric RATE_LIMIT_MS")
	}

	t.Setenv("RATE_LIMIT_MS", "200")
	t.Setenv("DD_SOLVER_BACKEND", "carbon")
	if _, err := Load(); err == nil {
		t.Error("expected error for unknown solver backend")
	}
}
