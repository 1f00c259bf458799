package interfaces

import (
	"context"

	"github.com/m-mizutani/herbal/pkg/domain/model"
)

// PresenterUseCase handles the view events of the upload form
type PresenterUseCase interface {
	// SelectFile stores the file and renders its preview
	SelectFile(ctx context.Context, file *model.SelectedFile) error

	// Detect submits the selected file and renders the outcome
	Detect(ctx context.Context) model.Outcome

	// Reset drops the selection and hides every region
	Reset(ctx context.Context)

	// Selected returns the currently selected file, or nil
	Selected() *model.SelectedFile
}
