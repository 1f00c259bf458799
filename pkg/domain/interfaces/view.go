package interfaces

import (
	"context"

	"github.com/m-mizutani/herbal/pkg/domain/model"
)

// View receives display updates from the presenter. Implementations must be
// safe for concurrent use because a detect may complete while other events
// are being handled. Methods must not call back into the presenter.
type View interface {
	// Alert shows a blocking notice without touching any region
	Alert(ctx context.Context, message string)

	// SetDetectEnabled toggles the detect action
	SetDetectEnabled(ctx context.Context, enabled bool)

	// ShowPreview shows the preview region and hides results and error
	ShowPreview(ctx context.Context, preview *model.Preview)

	// ShowLoading shows the loading region and hides the other three
	ShowLoading(ctx context.Context, message string)

	// UpdateLoadingMessage replaces the text of the loading region
	UpdateLoadingMessage(ctx context.Context, message string)

	// HideLoading hides the loading region
	HideLoading(ctx context.Context)

	// ShowResults fills and shows the results region and brings it into view
	ShowResults(ctx context.Context, result *model.Result)

	// ShowError fills and shows the error region, hides results and brings
	// the error into view
	ShowError(ctx context.Context, message string)

	// Clear hides all four regions and scrolls to the top
	Clear(ctx context.Context)
}
