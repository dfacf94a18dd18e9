// Package storectl implements the storefront maintenance CLI.
package storectl

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	entrypoint "github.com/louisbranch/storefront/internal/platform/cmd"
	"github.com/louisbranch/storefront/internal/platform/config"
	"github.com/louisbranch/storefront/internal/services/catalog/storage/sqlite"
	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	DBPath string `env:"STOREFRONT_DB_PATH" envDefault:"data/storefront.db"`
}

// Execute runs the storectl command named by args with tracing configured.
func Execute(ctx context.Context, args []string) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceStorectl, func(ctx context.Context) error {
		cmd := NewRootCommand()
		cmd.SetArgs(args)
		return cmd.ExecuteContext(ctx)
	})
}

// NewRootCommand creates the storectl root command. Defaults come from the
// process environment.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}
	if err := config.ParseEnv(opts); err != nil {
		opts.DBPath = "data/storefront.db"
	}
	return newRootCommand(opts)
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "storectl",
		Short:         "Storefront maintenance commands",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&opts.DBPath, "db", opts.DBPath, "SQLite database path")

	cmd.AddCommand(newMigrateCommand(opts))
	cmd.AddCommand(newSeedCommand(opts))
	cmd.AddCommand(newUserCommand(opts))
	cmd.AddCommand(newSessionsCommand(opts))
	return cmd
}

func openStore(ctx context.Context, opts *RootOptions) (*sqlite.Store, error) {
	if strings.TrimSpace(opts.DBPath) == "" {
		return nil, errors.New("--db is required")
	}
	if err := ensureDir(opts.DBPath); err != nil {
		return nil, err
	}
	return sqlite.Open(ctx, opts.DBPath)
}

func ensureDir(dbPath string) error {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return fmt.Errorf("create database dir: %w", err)
	}
	return nil
}
