package ports

import (
	"context"

	"github.com/agriscan/platform/internal/core/domain"
)

// ListFarmersInput carries the parameters for the farmer directory listing.
type ListFarmersInput struct {
	State string
	City  string
	Page  int
	Limit int
}

// ListFarmersResult is returned by List.
type ListFarmersResult struct {
	Items      []*domain.User
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// FarmerService serves the inspector-facing farmer directory.
type FarmerService interface {
	List(ctx context.Context, input ListFarmersInput) (*ListFarmersResult, error)
}
