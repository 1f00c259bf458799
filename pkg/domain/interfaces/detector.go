package interfaces

import (
	"context"

	"github.com/m-mizutani/herbal/pkg/domain/model"
)

// DetectorClient talks to the plant detection backend
type DetectorClient interface {
	// Detect uploads the file and returns the identified plant
	Detect(ctx context.Context, file *model.SelectedFile) (*model.Detection, error)

	// ListPlants returns the plants the backend has identified so far
	ListPlants(ctx context.Context) (*model.PlantCatalog, error)
}
