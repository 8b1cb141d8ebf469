package main

import (
	"context"
	"errors"
	"os"
	"os/signal"

	"github.com/desertthunder/musicadm/internal/services"
	"github.com/desertthunder/musicadm/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)
	runner := NewRunner(RunnerOpts{Logger: logger})

	app := newApp(runner)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := app.Run(ctx, os.Args); err != nil {
		// API failures were already printed by the console notifier.
		if _, ok := services.AsAPIError(err); ok {
			stop()
			os.Exit(1)
		}
		if errors.Is(err, shared.ErrNotImplemented) {
			logger.Warn("not implemented")
			os.Exit(0)
		}
		logger.Fatalf("application error: %v", err)
	}
}

func newApp(r *Runner) *cli.Command {
	return &cli.Command{
		Name:     "musicadm",
		Usage:    "Administer users, songs and favorites of a music catalog API",
		Version:  "0.1.0",
		Flags:    globalFlags(),
		Before:   r.Before,
		After:    r.After,
		Commands: r.register(),
	}
}
