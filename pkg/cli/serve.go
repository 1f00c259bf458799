package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/herbal/pkg/cli/config"
	controller "github.com/m-mizutani/herbal/pkg/controller/http"
	"github.com/m-mizutani/herbal/pkg/domain/interfaces"
	"github.com/m-mizutani/herbal/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var (
		serverCfg   config.Server
		detectorCfg config.Detector
		displayCfg  config.Display
	)

	flags := append(serverCfg.Flags(), detectorCfg.Flags()...)
	flags = append(flags, displayCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start the upload page",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			logger.Info("Starting herbal server",
				slog.String("addr", serverCfg.Addr),
				slog.String("backend_url", detectorCfg.URL),
			)

			client, err := detectorCfg.Configure()
			if err != nil {
				return err
			}
			display, err := displayCfg.Configure()
			if err != nil {
				return err
			}

			factory := func(view interfaces.View) interfaces.PresenterUseCase {
				return usecase.NewPresenter(client, view, usecase.WithDisplay(display))
			}

			// Create HTTP server with options
			server, err := controller.NewServer(
				ctx,
				factory,
				controller.WithAddr(serverCfg.Addr),
				controller.WithSessionTTL(serverCfg.SessionTTL),
				controller.WithMaxUploadSize(serverCfg.MaxUploadSize),
			)
			if err != nil {
				return goerr.Wrap(err, "failed to create HTTP server")
			}

			// Start server in goroutine
			go func() {
				logger.Info("HTTP server starting", slog.String("addr", serverCfg.Addr))
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Error("HTTP server error", slog.Any("error", err))
				}
			}()

			// Wait for interrupt signal
			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

			select {
			case <-ctx.Done():
				logger.Info("Context cancelled, shutting down...")
			case sig := <-sigChan:
				logger.Info("Signal received, shutting down...", slog.Any("signal", sig))
			}

			// Graceful shutdown
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				return goerr.Wrap(err, "failed to shutdown server gracefully")
			}

			logger.Info("Server shutdown complete")
			return nil
		},
	}
}
