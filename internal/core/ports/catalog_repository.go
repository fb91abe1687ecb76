package ports

import (
	"context"

	"github.com/agriscan/platform/internal/core/domain"
)

// CatalogRepository exposes the read-only plant and disease catalog.
type CatalogRepository interface {
	Plants(ctx context.Context) ([]*domain.PlantType, error)
	PlantByID(ctx context.Context, id string) (*domain.PlantType, error)
	// Diseases lists diseases, optionally filtered to one plant type.
	Diseases(ctx context.Context, plantTypeID string) ([]*domain.Disease, error)
	DiseaseByID(ctx context.Context, id string) (*domain.Disease, error)
}
