package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/wsecho/internal/config"
	"github.com/vovakirdan/wsecho/internal/greeter"
	applog "github.com/vovakirdan/wsecho/internal/log"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}

type options struct {
	configPath string
	url        string
	text       string
	timeout    time.Duration
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	var opts options

	root := &cobra.Command{
		Use:          "wsecho-client",
		Short:        "Send one greeting to the echo server and print the reply",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, _, err := config.Load(nil, opts.configPath)
			if err != nil {
				return err
			}
			cfg.UpdateFrom(config.Config{
				Client: config.ClientConfig{URL: opts.url, Greeting: opts.text, Timeout: opts.timeout},
			})
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid config: %w", err)
			}

			logger := applog.New(cfg.Log.Level, cfg.Log.Format, errOut)

			reply, err := greeter.New(cfg.Client, logger).Greet(cmd.Context(), cfg.Client.Greeting)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(out, reply)
			return err
		},
	}

	root.Flags().StringVar(&opts.configPath, "config", "", "path to YAML config file")
	root.Flags().StringVar(&opts.url, "url", "", "server URL (default "+config.DefaultClientURL+")")
	root.Flags().StringVar(&opts.text, "text", "", "message to send (default "+fmt.Sprintf("%q", config.DefaultGreeting)+")")
	root.Flags().DurationVar(&opts.timeout, "timeout", 0, "bound on the whole exchange, 0 waits forever")

	root.SetErr(errOut)
	root.SetContext(context.Background())
	return root
}
