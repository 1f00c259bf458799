package cli

import (
	"context"
	"os"
	"path/filepath"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/herbal/pkg/cli/config"
	"github.com/m-mizutani/herbal/pkg/controller/term"
	"github.com/m-mizutani/herbal/pkg/domain/model"
	"github.com/m-mizutani/herbal/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdDetect() *cli.Command {
	var (
		detectorCfg config.Detector
		displayCfg  config.Display
		noColor     bool
	)

	flags := append(detectorCfg.Flags(), displayCfg.Flags()...)
	flags = append(flags, &cli.BoolFlag{
		Name:        "no-color",
		Usage:       "Disable colored output",
		Destination: &noColor,
	})

	return &cli.Command{
		Name:      "detect",
		Aliases:   []string{"d"},
		Usage:     "Identify the plant in an image file",
		ArgsUsage: "<image>",
		Flags:     flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			if c.Args().Len() != 1 {
				return goerr.New("exactly one image file is required", goerr.V("args", c.Args().Slice()))
			}
			path := c.Args().First()

			client, err := detectorCfg.Configure()
			if err != nil {
				return err
			}
			display, err := displayCfg.Configure()
			if err != nil {
				return err
			}

			var opts []term.Option
			if noColor {
				opts = append(opts, term.WithoutColor())
			}
			view := term.New(c.Root().Writer, opts...)
			presenter := usecase.NewPresenter(client, view, usecase.WithDisplay(display))

			data, err := os.ReadFile(filepath.Clean(path))
			if err != nil {
				return goerr.Wrap(err, "failed to read image file", goerr.V("path", path))
			}

			if err := presenter.SelectFile(ctx, model.NewSelectedFile(filepath.Base(path), "", data)); err != nil {
				return err
			}

			switch outcome := presenter.Detect(ctx); outcome {
			case model.OutcomeResult:
				return nil
			default:
				return goerr.New("plant detection did not succeed", goerr.V("path", path), goerr.V("outcome", outcome))
			}
		},
	}
}
