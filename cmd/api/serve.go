package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"hellodemo/internal/app"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API until SIGINT or SIGTERM",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, log := loadConfig()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application, err := app.Bootstrap(ctx, cfg, log)
	if err != nil {
		log.WithError(err).Error("startup_failed")
		return logged(err)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout())
		defer cancel()
		if err := application.Close(closeCtx); err != nil {
			log.WithError(err).Warn("close_failed")
		}
	}()

	if err := application.Run(ctx); err != nil {
		log.WithError(err).Error("server_failed")
		return logged(err)
	}
	log.Info("server_stopped")
	return nil
}
