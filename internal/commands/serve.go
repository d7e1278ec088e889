package commands

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/revolut2camt/internal/api"
	"github.com/cleared-dev/revolut2camt/internal/config"
	"github.com/cleared-dev/revolut2camt/internal/importer"
	"github.com/cleared-dev/revolut2camt/internal/logger"
)

const shutdownTimeout = 5 * time.Second

func newServeCommand() *cobra.Command {
	var configPath, addr string
	var workers int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the converter over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), configPath, addr, workers)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", config.FileName, "config file")
	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().IntVar(&workers, "workers", 1, "entries built concurrently per request")

	return cmd
}

func runServe(ctx context.Context, configPath, addr string, workers int) error {
	log := logger.FromContext(ctx)

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config %s: %w", configPath, err)
	}

	app := api.NewApp(&api.Handler{
		Config:   cfg,
		Registry: importer.DefaultRegistry(),
		Log:      log,
		Workers:  workers,
	})

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Str("iban", cfg.Account.IBAN).Msg("listening")
		errc <- app.Listen(addr)
	}()

	select {
	case err := <-errc:
		return fmt.Errorf("serving: %w", err)
	case <-ctx.Done():
		log.Info().Msg("shutting down")
		return app.ShutdownWithTimeout(shutdownTimeout)
	}
}
