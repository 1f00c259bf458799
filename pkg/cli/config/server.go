package config

import (
	"time"

	"github.com/urfave/cli/v3"
)

// Server holds server configuration
type Server struct {
	Addr          string
	SessionTTL    time.Duration
	MaxUploadSize int64
}

// Flags returns CLI flags for server configuration
func (c *Server) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "Server address",
			Value:       "localhost:8080",
			Destination: &c.Addr,
			Sources:     cli.EnvVars("HERBAL_ADDR"),
		},
		&cli.DurationFlag{
			Name:        "session-ttl",
			Usage:       "Idle time after which an upload session is dropped",
			Value:       30 * time.Minute,
			Destination: &c.SessionTTL,
			Sources:     cli.EnvVars("HERBAL_SESSION_TTL"),
		},
		&cli.Int64Flag{
			Name:        "max-upload-size",
			Usage:       "Maximum size of an uploaded image in bytes",
			Value:       10 << 20,
			Destination: &c.MaxUploadSize,
			Sources:     cli.EnvVars("HERBAL_MAX_UPLOAD_SIZE"),
		},
	}
}
