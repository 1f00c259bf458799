package config

import (
	"os"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/herbal/pkg/domain/model"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"
)

// Display holds the path of the optional display configuration file
type Display struct {
	Path string
}

// displayFile is the TOML layout. Missing keys keep the defaults.
type displayFile struct {
	BenefitsPlaceholder *string  `toml:"benefits_placeholder"`
	CautionsPlaceholder *string  `toml:"cautions_placeholder"`
	LoadingMessages     []string `toml:"loading_messages"`
	LoadingInterval     *string  `toml:"loading_interval"`
}

// Flags returns CLI flags for display configuration
func (c *Display) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "display-config",
			Usage:       "TOML file overriding placeholders and loading messages",
			Destination: &c.Path,
			Sources:     cli.EnvVars("HERBAL_DISPLAY_CONFIG"),
		},
	}
}

// Configure returns the default display merged with the file, if any
func (c *Display) Configure() (*model.Display, error) {
	display := model.DefaultDisplay()
	if c.Path == "" {
		return display, nil
	}

	raw, err := os.ReadFile(c.Path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read display config", goerr.V("path", c.Path))
	}

	var file displayFile
	if err := toml.Unmarshal(raw, &file); err != nil {
		return nil, goerr.Wrap(err, "failed to parse display config", goerr.V("path", c.Path))
	}

	if file.BenefitsPlaceholder != nil {
		display.BenefitsPlaceholder = *file.BenefitsPlaceholder
	}
	if file.CautionsPlaceholder != nil {
		display.CautionsPlaceholder = *file.CautionsPlaceholder
	}
	if file.LoadingMessages != nil {
		display.LoadingMessages = file.LoadingMessages
	}
	if file.LoadingInterval != nil {
		interval, err := time.ParseDuration(*file.LoadingInterval)
		if err != nil {
			return nil, goerr.Wrap(err, "invalid loading_interval", goerr.V("path", c.Path), goerr.V("value", *file.LoadingInterval))
		}
		display.LoadingInterval = interval
	}

	return display, nil
}
