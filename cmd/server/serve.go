package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/eternalApril/respwire/internal/config"
	"github.com/eternalApril/respwire/internal/logger"
	"github.com/eternalApril/respwire/internal/server"
)

var configPath string

func init() {
	serveCmd.Flags().StringVarP(&configPath, "config", "c", ".", "directory containing config.yaml")
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Accept RESP connections and echo every decoded value back",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}

		log, err := logger.New(cfg.Log.Level, cfg.Log.Format)
		if err != nil {
			return err
		}
		defer log.Sync() //nolint:errcheck

		log.Info("respwire starting",
			zap.String("host", cfg.Server.Host),
			zap.String("port", cfg.Server.Port),
			zap.Int("read_buffer", cfg.Server.ReadBuffer),
			zap.Int("max_depth", cfg.Codec.MaxDepth),
		)

		srv := server.New(cfg, server.Echo, log.Named("server"))
		if err := srv.Listen(); err != nil {
			log.Error("listener error", zap.Error(err))
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		served := make(chan error, 1)
		go func() { served <- srv.Serve() }()

		select {
		case <-ctx.Done():
		case err := <-served:
			return err
		}

		stop()
		log.Info("Shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Warn("Shutdown finished with errors", zap.Error(err))
		}

		log.Info("respwire stopped")
		return <-served
	},
}
