package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/wsecho/internal/app"
	"github.com/vovakirdan/wsecho/internal/config"
	applog "github.com/vovakirdan/wsecho/internal/log"
)

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}

type options struct {
	configPath string
	addr       string
	logLevel   string
}

func newRootCmd(out io.Writer) *cobra.Command {
	var opts options

	root := &cobra.Command{
		Use:          "wsecho-server",
		Short:        "WebSocket server that echoes text messages with a prefix",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}

			logger := applog.New(cfg.Log.Level, cfg.Log.Format, out)
			gin.SetMode(gin.ReleaseMode)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := app.New(cfg.Server, logger).Run(ctx); err != nil {
				logger.Error().Err(err).Msg("server exited with error")
				return err
			}
			logger.Info().Msg("server stopped")
			return nil
		},
	}

	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to YAML config file")
	root.PersistentFlags().StringVar(&opts.addr, "addr", "", "listen address (default "+config.DefaultServerAddr+")")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error")

	root.AddCommand(&cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			data, err := config.Marshal(cfg)
			if err != nil {
				return fmt.Errorf("marshal config: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	})

	root.SetContext(context.Background())
	return root
}

func loadConfig(opts options) (config.Config, error) {
	cfg, _, err := config.Load(nil, opts.configPath)
	if err != nil {
		return cfg, err
	}
	cfg.UpdateFrom(config.Config{
		Server: config.ServerConfig{Addr: opts.addr},
		Log:    config.LogConfig{Level: opts.logLevel},
	})
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
