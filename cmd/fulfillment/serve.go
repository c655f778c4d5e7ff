package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/YevheniiGera/dialogflow-fulfillment/internal/config"
	"github.com/YevheniiGera/dialogflow-fulfillment/internal/server"
)

func newServeCmd(stderr io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the webhook HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, stderr)
		},
	}
}

func runServe(ctx context.Context, stderr io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger, err := newLogger(stderr, cfg.LogLevel)
	if err != nil {
		return err
	}

	srv := server.New(cfg, sampleHandlers(), logger)
	errc := make(chan error, 1)
	go func() {
		errc <- srv.Listen()
	}()

	select {
	case err := <-errc:
		return fmt.Errorf("failed to listen: %w", err)
	case <-ctx.Done():
		logger.Info("shutting down")
		return srv.Shutdown()
	}
}
