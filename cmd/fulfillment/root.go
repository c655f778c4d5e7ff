package main

import (
	"fmt"
	"io"
	"time"

	charmLog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:   "fulfillment",
		Short: "Dialogflow fulfillment webhook",
		Long: `fulfillment serves Dialogflow ES webhook requests with the bundled
sample handlers, or replays a saved request to show the response it produces.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.CompletionOptions.DisableDefaultCmd = true
	root.SetOut(stdout)
	root.SetErr(stderr)

	root.AddCommand(newServeCmd(stderr), newReplayCmd(stdout, stderr))
	return root
}

func newLogger(w io.Writer, level string) (*charmLog.Logger, error) {
	lvl, err := charmLog.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parse logging level %q: %w", level, err)
	}
	return charmLog.NewWithOptions(w, charmLog.Options{
		Level:           lvl,
		Prefix:          "fulfillment",
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Formatter:       charmLog.TextFormatter,
	}), nil
}
