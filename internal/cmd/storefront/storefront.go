// Package storefront parses storefront service flags and launches the
// service.
package storefront

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	entrypoint "github.com/louisbranch/storefront/internal/platform/cmd"
	"github.com/louisbranch/storefront/internal/platform/config"
	"github.com/louisbranch/storefront/internal/platform/logging"
	"github.com/louisbranch/storefront/internal/services/catalog/gallery"
	"github.com/louisbranch/storefront/internal/services/catalog/storage/sqlite"
	server "github.com/louisbranch/storefront/internal/services/storefront"
	"go.uber.org/zap"
)

// Config holds storefront command configuration.
type Config struct {
	HTTPAddr            string        `env:"STOREFRONT_HTTP_ADDR" envDefault:"localhost:8080"`
	DBPath              string        `env:"STOREFRONT_DB_PATH" envDefault:"data/storefront.db"`
	PublicDir           string        `env:"STOREFRONT_PUBLIC_DIR" envDefault:"public"`
	SessionSecret       string        `env:"STOREFRONT_SESSION_SECRET"`
	SessionTTL          time.Duration `env:"STOREFRONT_SESSION_TTL" envDefault:"336h"`
	Currency            string        `env:"STOREFRONT_CURRENCY" envDefault:"USD"`
	LogLevel            string        `env:"STOREFRONT_LOG_LEVEL" envDefault:"info"`
	TrustForwardedProto bool          `env:"STOREFRONT_TRUST_FORWARDED_PROTO"`
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	return bindFlags(cfg, fs, args)
}

// ParseConfigFrom is ParseConfig with an explicit environment.
func ParseConfigFrom(fs *flag.FlagSet, args []string, vars map[string]string) (Config, error) {
	var cfg Config
	if err := config.ParseEnvFrom(&cfg, vars); err != nil {
		return Config{}, err
	}
	return bindFlags(cfg, fs, args)
}

func bindFlags(cfg Config, fs *flag.FlagSet, args []string) (Config, error) {
	if fs == nil {
		return Config{}, errors.New("flag parser is required")
	}
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "SQLite database path")
	fs.StringVar(&cfg.PublicDir, "public-dir", cfg.PublicDir, "Directory holding uploaded product images")
	fs.StringVar(&cfg.Currency, "currency", cfg.Currency, "ISO 4217 currency for prices")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	fs.BoolVar(&cfg.TrustForwardedProto, "trust-forwarded-proto", cfg.TrustForwardedProto, "Honor X-Forwarded-Proto from a proxy")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports configuration that cannot start a server.
func (c Config) Validate() error {
	if len(strings.TrimSpace(c.SessionSecret)) < 32 {
		return errors.New("STOREFRONT_SESSION_SECRET must be at least 32 bytes")
	}
	if strings.TrimSpace(c.DBPath) == "" {
		return errors.New("database path is required")
	}
	if strings.TrimSpace(c.PublicDir) == "" {
		return errors.New("public directory is required")
	}
	return nil
}

// Run opens the store and serves the storefront until ctx is done.
func Run(ctx context.Context, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()
	logger = logger.With(zap.String("service", entrypoint.ServiceStorefront))

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
		return fmt.Errorf("create database dir: %w", err)
	}
	if err := os.MkdirAll(filepath.Join(cfg.PublicDir, gallery.ImagesDir), 0o755); err != nil {
		return fmt.Errorf("create images dir: %w", err)
	}
	store, err := sqlite.Open(ctx, cfg.DBPath)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Warn("close store", zap.Error(err))
		}
	}()

	return entrypoint.RunWithTelemetryAndOptions(ctx, entrypoint.ServiceStorefront, entrypoint.RunOptions{Logger: logger}, func(ctx context.Context) error {
		srv, err := server.NewServer(ctx, server.Config{
			HTTPAddr:            cfg.HTTPAddr,
			Store:               store,
			PublicDir:           cfg.PublicDir,
			SessionSecret:       []byte(cfg.SessionSecret),
			SessionTTL:          cfg.SessionTTL,
			Currency:            cfg.Currency,
			TrustForwardedProto: cfg.TrustForwardedProto,
			Logger:              logger,
		})
		if err != nil {
			return err
		}
		defer srv.Close()
		return srv.ListenAndServe(ctx)
	})
}
