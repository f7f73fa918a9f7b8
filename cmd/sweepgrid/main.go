package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/vk/sweepgrid/internal/cli"
)

// main is the entrypoint for the sweepgrid application.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	code := cli.Execute(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
