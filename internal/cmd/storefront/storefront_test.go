package storefront

import (
	"context"
	"flag"
	"strings"
	"testing"
	"time"
)

func TestParseConfigDefaults(t *testing.T) {
	t.Parallel()

	fs := flag.NewFlagSet("storefront", flag.ContinueOnError)
	cfg, err := ParseConfigFrom(fs, nil, nil)
	if err != nil {
		t.Fatalf("ParseConfigFrom() error = %v", err)
	}
	if cfg.HTTPAddr != "localhost:8080" {
		t.Fatalf("HTTPAddr = %q, want %q", cfg.HTTPAddr, "localhost:8080")
	}
	if cfg.DBPath != "data/storefront.db" {
		t.Fatalf("DBPath = %q, want %q", cfg.DBPath, "data/storefront.db")
	}
	if cfg.SessionTTL != 14*24*time.Hour {
		t.Fatalf("SessionTTL = %v, want %v", cfg.SessionTTL, 14*24*time.Hour)
	}
	if cfg.Currency != "USD" {
		t.Fatalf("Currency = %q, want %q", cfg.Currency, "USD")
	}
}

func TestParseConfigEnvAndFlags(t *testing.T) {
	t.Parallel()

	fs := flag.NewFlagSet("storefront", flag.ContinueOnError)
	cfg, err := ParseConfigFrom(fs, []string{"-http-addr", "127.0.0.1:9000"}, map[string]string{
		"STOREFRONT_HTTP_ADDR":             "0.0.0.0:80",
		"STOREFRONT_PUBLIC_DIR":            "/srv/public",
		"STOREFRONT_SESSION_TTL":           "1h",
		"STOREFRONT_TRUST_FORWARDED_PROTO": "true",
	})
	if err != nil {
		t.Fatalf("ParseConfigFrom() error = %v", err)
	}
	if cfg.HTTPAddr != "127.0.0.1:9000" {
		t.Fatalf("HTTPAddr = %q, want flag override", cfg.HTTPAddr)
	}
	if cfg.PublicDir != "/srv/public" {
		t.Fatalf("PublicDir = %q, want %q", cfg.PublicDir, "/srv/public")
	}
	if cfg.SessionTTL != time.Hour || !cfg.TrustForwardedProto {
		t.Fatalf("cfg = %+v", cfg)
	}
}

func TestParseConfigRejectsBadDuration(t *testing.T) {
	t.Parallel()

	fs := flag.NewFlagSet("storefront", flag.ContinueOnError)
	if _, err := ParseConfigFrom(fs, nil, map[string]string{"STOREFRONT_SESSION_TTL": "soon"}); err == nil {
		t.Fatal("expected error for invalid duration")
	}
}

func TestRunRequiresSessionSecret(t *testing.T) {
	t.Parallel()

	err := Run(context.Background(), Config{DBPath: "x.db", PublicDir: "public", SessionSecret: "short"})
	if err == nil || !strings.Contains(err.Error(), "STOREFRONT_SESSION_SECRET") {
		t.Fatalf("Run() error = %v, want session secret error", err)
	}
}
