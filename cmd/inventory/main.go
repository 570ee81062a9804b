// Package main runs the inventory command line tool.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/abgdnv/inventory/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		os.Exit(1)
	}
}

// run executes the command named by the process arguments. Errors are already reported by cli.Execute.
func run(ctx context.Context) error {
	return cli.Execute(ctx, cli.Options{}, os.Args[1:])
}
