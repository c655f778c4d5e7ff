package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/YevheniiGera/dialogflow-fulfillment/internal/config"
	"github.com/YevheniiGera/dialogflow-fulfillment/internal/voice"
	"github.com/YevheniiGera/dialogflow-fulfillment/pkg/fulfillment"
)

func newReplayCmd(stdout, stderr io.Writer) *cobra.Command {
	var asTwiML bool
	cmd := &cobra.Command{
		Use:   "replay FILE",
		Short: "Run the sample handlers against a saved webhook request",
		Long:  "Reads a WebhookRequest JSON document (\"-\" for stdin) and prints the WebhookResponse.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(args[0], asTwiML, cmd.InOrStdin(), stdout, stderr)
		},
	}
	cmd.Flags().BoolVar(&asTwiML, "twiml", false, "print the queued messages as TwiML instead of JSON")
	return cmd
}

func runReplay(path string, asTwiML bool, stdin io.Reader, stdout, stderr io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger, err := newLogger(stderr, cfg.LogLevel)
	if err != nil {
		return err
	}

	in := stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("open request: %w", err)
		}
		defer f.Close()
		in = f
	}

	agent, err := fulfillment.DecodeRequest(in)
	if err != nil {
		return err
	}
	logger.Debug("replaying request", "intent", agent.Intent, "session", agent.Session)
	if err := agent.HandleRequest(sampleHandlers()); err != nil {
		return fmt.Errorf("handle request: %w", err)
	}

	if asTwiML {
		xml, err := voice.Render(agent.Messages(), voice.Options{
			Language: cfg.Voice.Language,
			Voice:    cfg.Voice.Name,
			Fallback: cfg.Voice.Fallback,
		})
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(stdout, xml)
		return err
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(agent.Response())
}
