package config

import (
	"testing"
	"time"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() returned error: %v", err)
	}

	if cfg.Port != "9999" {
		t.Fatalf("expected default port 9999, got %s", cfg.Port)
	}
	if cfg.DatabasePath != "tenders.db" {
		t.Fatalf("expected default database path tenders.db, got %s", cfg.DatabasePath)
	}
	if cfg.Evaluation.MedianDeviationThreshold != 0.5 {
		t.Fatalf("expected default median threshold 0.5, got %v", cfg.Evaluation.MedianDeviationThreshold)
	}
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "8080")
	t.Setenv("EVAL_MEDIAN_DEVIATION_THRESHOLD", "0.3")
	t.Setenv("DB_CONN_MAX_LIFETIME", "2m")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() returned error: %v", err)
	}

	if cfg.Port != "8080" {
		t.Fatalf("expected port 8080, got %s", cfg.Port)
	}
	if cfg.Evaluation.MedianDeviationThreshold != 0.3 {
		t.Fatalf("expected threshold 0.3, got %v", cfg.Evaluation.MedianDeviationThreshold)
	}
	if cfg.ConnMaxLifetime != 2*time.Minute {
		t.Fatalf("expected lifetime 2m, got %v", cfg.ConnMaxLifetime)
	}
}

func TestValidate_RejectsBadValues(t *testing.T) {
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() returned error: %v", err)
	}

	cfg.Port = "70000"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error for port out of range")
	}

	cfg, _ = LoadConfig()
	cfg.Evaluation.DominantWinnerShare = 1.5
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error for share > 1")
	}

	cfg, _ = LoadConfig()
	cfg.MaxIdleConns = 100
	cfg.MaxOpenConns = 10
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error for idle > open")
	}
}

func TestLoadConfig_InvalidEnvFailsValidation(t *testing.T) {
	t.Setenv("SERVER_PORT", "not-a-port")

	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected error for non-numeric port")
	}
}
