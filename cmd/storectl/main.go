// Package main runs storefront maintenance commands.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/louisbranch/storefront/internal/cmd/storectl"
	"github.com/louisbranch/storefront/internal/platform/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := storectl.Execute(ctx, os.Args[1:]); err != nil {
		config.Exitf("Error: %v", err)
	}
}
