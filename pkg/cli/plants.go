package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/herbal/pkg/cli/config"
	"github.com/m-mizutani/herbal/pkg/controller/term"
	"github.com/urfave/cli/v3"
)

func cmdPlants() *cli.Command {
	var detectorCfg config.Detector

	return &cli.Command{
		Name:  "plants",
		Usage: "List the plants the backend has identified so far",
		Flags: detectorCfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			client, err := detectorCfg.Configure()
			if err != nil {
				return err
			}

			catalog, err := client.ListPlants(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to list plants", goerr.V("backend_url", detectorCfg.URL))
			}

			term.New(c.Root().Writer).PrintCatalog(catalog)
			return nil
		},
	}
}
