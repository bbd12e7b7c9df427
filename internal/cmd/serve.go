package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/polishai/polish/internal/history"
	"github.com/polishai/polish/internal/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the enhancement HTTP API",
	Long: `Serve exposes the enhancement pipeline over HTTP. POST /v1/enhance accepts
{"text", "type", "tone", "audience", "instructions"} and returns the enhanced
result as JSON; GET /healthz reports liveness.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default from config, :8080)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}

	enhancer, logger, err := buildEnhancer(cfg)
	if err != nil {
		return err
	}
	defer logger.Sync()

	var store *history.Store
	if !cfg.History.Disabled {
		store, err = history.Open(cfg.History.Path)
		if err != nil {
			logger.Warn("history unavailable", zap.Error(err))
			store = nil
		} else {
			defer store.Close()
		}
	}

	srv := server.New(server.Config{
		Addr:          cfg.Server.Addr,
		RatePerSecond: cfg.Server.RatePerSecond,
		Burst:         cfg.Server.Burst,
	}, enhancer, store, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
