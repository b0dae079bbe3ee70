package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	_ "golang.org/x/crypto/x509roots/fallback" // Embed CA certs for scratch container

	"github.com/ericfisherdev/chorekit/internal/adapter/driving/cli"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Cancel in-flight API calls and downloads on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := cli.NewApp()
	defer func() {
		if closeErr := app.Close(); closeErr != nil {
			slog.Error("error closing database", "error", closeErr)
		}
	}()

	return cli.NewRootCommand(app).ExecuteContext(ctx)
}
