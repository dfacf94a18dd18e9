package config

import (
	"strings"
	"testing"
	"time"
)

type envTestConfig struct {
	Addr string        `env:"STOREFRONT_TEST_ADDR" envDefault:"localhost:3000"`
	TTL  time.Duration `env:"STOREFRONT_TEST_TTL" envDefault:"1h"`
}

func TestParseEnvDefaults(t *testing.T) {
	var cfg envTestConfig

	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.Addr != "localhost:3000" {
		t.Fatalf("Addr = %q, want %q", cfg.Addr, "localhost:3000")
	}
	if cfg.TTL != time.Hour {
		t.Fatalf("TTL = %v, want %v", cfg.TTL, time.Hour)
	}
}

func TestParseEnvError(t *testing.T) {
	var cfg envTestConfig
	t.Setenv("STOREFRONT_TEST_TTL", "soon")

	err := ParseEnv(&cfg)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}

func TestParseEnvFromUsesExplicitVariables(t *testing.T) {
	t.Parallel()

	var cfg envTestConfig
	if err := ParseEnvFrom(&cfg, map[string]string{"STOREFRONT_TEST_ADDR": ":9000"}); err != nil {
		t.Fatalf("parse env from: %v", err)
	}
	if cfg.Addr != ":9000" {
		t.Fatalf("Addr = %q, want %q", cfg.Addr, ":9000")
	}
	if cfg.TTL != time.Hour {
		t.Fatalf("TTL = %v, want default %v", cfg.TTL, time.Hour)
	}
}

func TestParseEnvFromNilUsesDefaults(t *testing.T) {
	t.Parallel()

	var cfg envTestConfig
	if err := ParseEnvFrom(&cfg, nil); err != nil {
		t.Fatalf("parse env from: %v", err)
	}
	if cfg.Addr != "localhost:3000" {
		t.Fatalf("Addr = %q, want default", cfg.Addr)
	}
}
