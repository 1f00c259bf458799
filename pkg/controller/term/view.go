package term

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
	"github.com/m-mizutani/herbal/pkg/domain/model"
)

// View renders presenter updates as plain lines on a terminal
type View struct {
	mu sync.Mutex
	w  io.Writer

	detectEnabled bool
	errorShown    bool

	alert   *color.Color
	title   *color.Color
	badge   *color.Color
	faint   *color.Color
	failure *color.Color
}

// Option is a functional option for View
type Option func(*View)

// WithoutColor disables ANSI colors regardless of the terminal
func WithoutColor() Option {
	return func(v *View) {
		for _, c := range []*color.Color{v.alert, v.title, v.badge, v.faint, v.failure} {
			c.DisableColor()
		}
	}
}

// New creates a terminal view writing to w
func New(w io.Writer, opts ...Option) *View {
	v := &View{
		w:       w,
		alert:   color.New(color.FgRed, color.Bold),
		title:   color.New(color.FgGreen, color.Bold),
		badge:   color.New(color.FgCyan),
		faint:   color.New(color.Faint),
		failure: color.New(color.FgRed),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// ErrorShown reports whether the last detect ended in the error region
func (v *View) ErrorShown() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.errorShown
}

// DetectEnabled reports the state of the detect action
func (v *View) DetectEnabled() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.detectEnabled
}

func (v *View) Alert(_ context.Context, message string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.alert.Fprintf(v.w, "! %s\n", message)
}

func (v *View) SetDetectEnabled(_ context.Context, enabled bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.detectEnabled = enabled
}

func (v *View) ShowPreview(_ context.Context, preview *model.Preview) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.errorShown = false
	v.faint.Fprintf(v.w, "Selected %s\n", preview.Name)
}

func (v *View) ShowLoading(_ context.Context, message string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.errorShown = false
	v.faint.Fprintln(v.w, message)
}

func (v *View) UpdateLoadingMessage(_ context.Context, message string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.faint.Fprintln(v.w, message)
}

// HideLoading has nothing to erase on a line-oriented terminal
func (v *View) HideLoading(_ context.Context) {}

func (v *View) ShowResults(_ context.Context, result *model.Result) {
	v.mu.Lock()
	defer v.mu.Unlock()

	fmt.Fprintln(v.w)
	v.title.Fprint(v.w, result.PlantName)
	fmt.Fprint(v.w, " ")
	v.badge.Fprintf(v.w, "[%s]\n", result.ConfidenceBadge)
	fmt.Fprintln(v.w, result.ScientificName)

	fmt.Fprintln(v.w, "\nBenefits:")
	for _, b := range result.Benefits {
		fmt.Fprintf(v.w, "  ✅ %s\n", b)
	}
	fmt.Fprintln(v.w, "Cautions:")
	for _, c := range result.Cautions {
		fmt.Fprintf(v.w, "  ⚠️ %s\n", c)
	}
}

func (v *View) ShowError(_ context.Context, message string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.errorShown = true
	v.failure.Fprintf(v.w, "❌ %s\n", message)
}

func (v *View) Clear(_ context.Context) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.errorShown = false
}

// PrintCatalog writes the plant catalog returned by the backend
func (v *View) PrintCatalog(catalog *model.PlantCatalog) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.title.Fprintf(v.w, "%d plants detected so far\n", catalog.TotalPlantsDetected)
	for i, p := range catalog.Plants {
		fmt.Fprintf(v.w, "  %d. %s\n", i+1, p)
	}
	if len(catalog.Models) > 0 {
		v.faint.Fprintln(v.w, "models:")
		for _, m := range catalog.Models {
			v.faint.Fprintf(v.w, "  - %s\n", m)
		}
	}
}
