package cli

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/herbal/pkg/cli/config"
	"github.com/m-mizutani/herbal/pkg/domain/types"
	"github.com/m-mizutani/herbal/pkg/utils/errutil"
	"github.com/urfave/cli/v3"
)

// Run runs the CLI application
func Run(ctx context.Context, args []string) error {
	var (
		loggerCfg config.Logger
		sentryCfg config.Sentry
		logger    *slog.Logger
		flush     = func() {}
	)

	defer func() { flush() }()

	// .env must be applied before flags read their env sources
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Default().Warn("Failed to load .env", slog.Any("error", err))
	}

	app := &cli.Command{
		Name:    "herbal",
		Usage:   "Identify herbal plants from photos via a detection backend",
		Version: types.Version,
		Flags:   append(loggerCfg.Flags(), sentryCfg.Flags()...),
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			var err error
			logger, err = loggerCfg.Configure()
			if err != nil {
				return nil, err
			}

			slog.SetDefault(logger)
			ctx = ctxlog.With(ctx, logger)

			f, err := sentryCfg.Configure()
			if err != nil {
				return nil, err
			}
			flush = f
			return ctx, nil
		},
		Commands: []*cli.Command{
			cmdServe(),
			cmdDetect(),
			cmdPlants(),
		},
	}

	if err := app.Run(ctx, args); err != nil {
		if logger == nil {
			logger = slog.Default()
		}
		errutil.Handle(ctxlog.With(ctx, logger), err)
		return err
	}

	return nil
}
