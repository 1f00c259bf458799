package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/herbal/pkg/cli/config"
	"github.com/m-mizutani/herbal/pkg/domain/model"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "display.toml")
	gt.NoError(t, os.WriteFile(path, []byte(body), 0600))
	return path
}

func TestDisplay_Configure(t *testing.T) {
	t.Run("defaults without file", func(t *testing.T) {
		display, err := (&config.Display{}).Configure()
		gt.NoError(t, err)
		gt.Value(t, display).Equal(model.DefaultDisplay())
	})

	t.Run("file overrides given keys only", func(t *testing.T) {
		path := writeFile(t, `
cautions_placeholder = "Ask a herbalist first"
loading_messages = ["Looking closely...", "Nearly done..."]
loading_interval = "500ms"
`)
		display, err := (&config.Display{Path: path}).Configure()
		gt.NoError(t, err)

		gt.Value(t, display.BenefitsPlaceholder).Equal(model.DefaultDisplay().BenefitsPlaceholder)
		gt.Value(t, display.CautionsPlaceholder).Equal("Ask a herbalist first")
		gt.Value(t, display.LoadingMessages).Equal([]string{"Looking closely...", "Nearly done..."})
		gt.Value(t, display.LoadingInterval).Equal(500 * time.Millisecond)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := (&config.Display{Path: filepath.Join(t.TempDir(), "nope.toml")}).Configure()
		gt.Error(t, err)
	})

	t.Run("broken TOML", func(t *testing.T) {
		_, err := (&config.Display{Path: writeFile(t, `loading_messages = [`)}).Configure()
		gt.Error(t, err)
	})

	t.Run("bad interval", func(t *testing.T) {
		_, err := (&config.Display{Path: writeFile(t, `loading_interval = "soon"`)}).Configure()
		gt.Error(t, err)
	})
}

func TestSentry_ConfigureWithoutDSN(t *testing.T) {
	flush, err := (&config.Sentry{}).Configure()
	gt.NoError(t, err)
	flush()
}

func TestDetector_Configure(t *testing.T) {
	client, err := (&config.Detector{URL: "http://localhost:8000"}).Configure()
	gt.NoError(t, err)
	gt.Value(t, client).NotNil()

	_, err = (&config.Detector{URL: "localhost:8000"}).Configure()
	gt.Error(t, err)
}
