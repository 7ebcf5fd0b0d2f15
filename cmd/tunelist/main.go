// Command tunelist browses music lists built from a directory or an MPD queue.
//
// Build:
//
//	go build -o build/tunelist ./cmd/tunelist
//
// Run:
//
//	./build/tunelist ls --library ~/Music
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/tejashwikalptaru/tunelist/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.NewRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
