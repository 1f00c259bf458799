package config

import (
	"github.com/m-mizutani/herbal/pkg/domain/interfaces"
	"github.com/m-mizutani/herbal/pkg/infra/detector"
	"github.com/urfave/cli/v3"
)

// Detector holds the detection backend configuration
type Detector struct {
	URL string
}

// Flags returns CLI flags for the detection backend
func (c *Detector) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "backend-url",
			Usage:       "Base URL of the plant detection backend",
			Value:       "http://localhost:8000",
			Destination: &c.URL,
			Sources:     cli.EnvVars("HERBAL_BACKEND_URL"),
		},
	}
}

// Configure creates the detection backend client
func (c *Detector) Configure() (interfaces.DetectorClient, error) {
	return detector.NewClient(c.URL)
}
