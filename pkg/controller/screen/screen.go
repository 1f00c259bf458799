package screen

import (
	"context"
	"sync"

	"github.com/m-mizutani/herbal/pkg/domain/model"
)

// View records display updates into a model.Screen. It backs the web page
// and headless callers that inspect the regions instead of drawing them.
type View struct {
	mu     sync.Mutex
	screen model.Screen
}

// New returns a view with every region hidden and detect disabled
func New() *View {
	return &View{}
}

// Snapshot returns a copy of the current screen
func (v *View) Snapshot() model.Screen {
	v.mu.Lock()
	defer v.mu.Unlock()

	s := v.screen
	if s.Result != nil {
		r := *s.Result
		r.Benefits = append([]string(nil), r.Benefits...)
		r.Cautions = append([]string(nil), r.Cautions...)
		s.Result = &r
	}
	return s
}

// TakeAlert returns the pending alert and clears it
func (v *View) TakeAlert() string {
	v.mu.Lock()
	defer v.mu.Unlock()

	alert := v.screen.Alert
	v.screen.Alert = ""
	return alert
}

func (v *View) update(f func(s *model.Screen)) {
	v.mu.Lock()
	defer v.mu.Unlock()
	f(&v.screen)
}

func (v *View) Alert(_ context.Context, message string) {
	v.update(func(s *model.Screen) {
		s.Alert = message
	})
}

func (v *View) SetDetectEnabled(_ context.Context, enabled bool) {
	v.update(func(s *model.Screen) {
		s.DetectEnabled = enabled
	})
}

func (v *View) ShowPreview(_ context.Context, preview *model.Preview) {
	v.update(func(s *model.Screen) {
		s.Preview = preview
		s.PreviewVisible = true
		s.ResultsVisible = false
		s.ErrorVisible = false
	})
}

func (v *View) ShowLoading(_ context.Context, message string) {
	v.update(func(s *model.Screen) {
		s.LoadingMessage = message
		s.LoadingVisible = true
		s.PreviewVisible = false
		s.ResultsVisible = false
		s.ErrorVisible = false
	})
}

func (v *View) UpdateLoadingMessage(_ context.Context, message string) {
	v.update(func(s *model.Screen) {
		if s.LoadingVisible {
			s.LoadingMessage = message
		}
	})
}

func (v *View) HideLoading(_ context.Context) {
	v.update(func(s *model.Screen) {
		s.LoadingVisible = false
	})
}

func (v *View) ShowResults(_ context.Context, result *model.Result) {
	v.update(func(s *model.Screen) {
		s.Result = result
		s.ResultsVisible = true
		s.Focus = model.RegionResults
	})
}

func (v *View) ShowError(_ context.Context, message string) {
	v.update(func(s *model.Screen) {
		s.ErrorMessage = message
		s.ErrorVisible = true
		s.ResultsVisible = false
		s.Focus = model.RegionError
	})
}

func (v *View) Clear(_ context.Context) {
	v.update(func(s *model.Screen) {
		s.PreviewVisible = false
		s.LoadingVisible = false
		s.ResultsVisible = false
		s.ErrorVisible = false
		s.Preview = nil
		s.Result = nil
		s.ErrorMessage = ""
		s.LoadingMessage = ""
		s.Focus = model.RegionTop
	})
}
