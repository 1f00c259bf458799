package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/herbal/pkg/domain/interfaces"
	"github.com/m-mizutani/herbal/pkg/domain/model"
	"github.com/m-mizutani/herbal/pkg/utils/errutil"
)

// ErrInvalidFileType is returned by SelectFile for non-image files
var ErrInvalidFileType = errors.New("invalid file type")

type presenter struct {
	client  interfaces.DetectorClient
	view    interfaces.View
	display *model.Display

	mu       sync.Mutex
	selected *model.SelectedFile
	// generation changes on every selection and reset; a detect whose
	// generation is outdated when it returns is stale.
	generation uint64
	inFlight   map[uint64]struct{}
}

// PresenterOption is a functional option for the presenter
type PresenterOption func(*presenter)

// WithDisplay overrides placeholders and loading messages
func WithDisplay(display *model.Display) PresenterOption {
	return func(p *presenter) {
		p.display = display
	}
}

// NewPresenter creates the upload & result presenter
func NewPresenter(client interfaces.DetectorClient, view interfaces.View, opts ...PresenterOption) interfaces.PresenterUseCase {
	p := &presenter{
		client:   client,
		view:     view,
		display:  model.DefaultDisplay(),
		inFlight: make(map[uint64]struct{}),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// SelectFile stores file, enables detect and renders a local preview
func (p *presenter) SelectFile(ctx context.Context, file *model.SelectedFile) error {
	logger := ctxlog.From(ctx)

	if !file.IsImage() {
		var mediaType string
		if file != nil {
			mediaType = file.MediaType
		}
		logger.Warn("Rejected non-image file", "media_type", mediaType)
		p.view.Alert(ctx, model.InvalidFileMessage)
		return goerr.Wrap(ErrInvalidFileType, "file is not an image", goerr.V("media_type", mediaType))
	}

	logger.Info("File selected",
		"name", file.Name,
		"media_type", file.MediaType,
		"size_bytes", len(file.Data),
	)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.selected = file
	p.generation++
	p.view.SetDetectEnabled(ctx, true)
	p.view.ShowPreview(ctx, model.NewPreview(file))
	return nil
}

// Detect submits the selected file once and renders the result or error
func (p *presenter) Detect(ctx context.Context) model.Outcome {
	logger := ctxlog.From(ctx)

	p.mu.Lock()
	file, gen := p.selected, p.generation
	if _, running := p.inFlight[gen]; file == nil || running {
		p.mu.Unlock()
		return model.OutcomeSkipped
	}
	p.inFlight[gen] = struct{}{}
	p.view.ShowLoading(ctx, p.display.FirstLoadingMessage())
	p.view.SetDetectEnabled(ctx, false)
	p.mu.Unlock()

	stopRotation := p.rotateLoadingMessages(ctx, gen)
	start := time.Now()
	detection, err := p.client.Detect(ctx, file)
	stopRotation()
	duration := time.Since(start)

	outcome := p.finishDetect(ctx, gen, detection, err)
	switch outcome {
	case model.OutcomeStale:
		logger.Info("Discarding response for replaced selection",
			"name", file.Name,
			"duration_ms", duration.Milliseconds(),
		)
	case model.OutcomeError:
		errutil.Handle(ctx, goerr.Wrap(err, "plant detection failed", goerr.V("name", file.Name)))
	case model.OutcomeResult:
		logger.Info("Plant detected",
			"plant", detection.DetectedPlant,
			"confidence", detection.Confidence,
			"duration_ms", duration.Milliseconds(),
		)
	}
	return outcome
}

// finishDetect paints the response of the detect started at gen. It holds
// p.mu for both the generation check and the paint.
func (p *presenter) finishDetect(ctx context.Context, gen uint64, detection *model.Detection, err error) model.Outcome {
	p.mu.Lock()
	defer p.mu.Unlock()

	delete(p.inFlight, gen)

	if gen != p.generation {
		if len(p.inFlight) == 0 {
			p.view.HideLoading(ctx)
		}
		if _, running := p.inFlight[p.generation]; p.selected != nil && !running {
			p.view.SetDetectEnabled(ctx, true)
		}
		return model.OutcomeStale
	}

	outcome := model.OutcomeResult
	if err != nil {
		p.view.ShowError(ctx, userMessage(err))
		outcome = model.OutcomeError
	} else {
		p.view.ShowResults(ctx, model.NewResult(detection, p.display))
	}

	p.view.HideLoading(ctx)
	p.view.SetDetectEnabled(ctx, true)
	return outcome
}

// Reset drops the selection and hides every region
func (p *presenter) Reset(ctx context.Context) {
	ctxlog.From(ctx).Debug("Presenter reset")

	p.mu.Lock()
	defer p.mu.Unlock()
	p.selected = nil
	p.generation++
	p.view.SetDetectEnabled(ctx, false)
	p.view.Clear(ctx)
}

// Selected returns the currently selected file
func (p *presenter) Selected() *model.SelectedFile {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.selected
}

// rotateLoadingMessages cycles the loading text until the returned stop
// function is called or the selection of gen is replaced. stop waits for the
// rotation goroutine to exit.
func (p *presenter) rotateLoadingMessages(ctx context.Context, gen uint64) func() {
	messages := p.display.LoadingMessages
	interval := p.display.LoadingInterval
	if len(messages) < 2 || interval <= 0 {
		return func() {}
	}

	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		idx := 0
		for {
			select {
			case <-done:
				return
			case <-ctx.Done():
				return
			case <-ticker.C:
				idx = (idx + 1) % len(messages)
				if !p.updateLoadingMessage(ctx, gen, messages[idx]) {
					return
				}
			}
		}
	}()

	return func() {
		close(done)
		wg.Wait()
	}
}

func (p *presenter) updateLoadingMessage(ctx context.Context, gen uint64, message string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if gen != p.generation {
		return false
	}
	p.view.UpdateLoadingMessage(ctx, message)
	return true
}

// userMessage converts a detect failure into the text shown to the user
func userMessage(err error) string {
	var backendErr *model.BackendError
	if errors.As(err, &backendErr) && backendErr.Message != "" {
		return backendErr.Message
	}
	return model.GenericDetectFailure
}
