package ports

import (
	"context"
	"time"

	"github.com/agriscan/platform/internal/core/domain"
)

// ListFarmersFilter carries the query parameters for the farmers listing.
type ListFarmersFilter struct {
	State string // optional: filter by state
	City  string // optional: filter by city
	Page  int    // 1-based
	Limit int    // max rows per page (capped by the service)
}

// UserRepository defines persistence operations for platform accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByPhone(ctx context.Context, phone string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// Update persists the mutable profile fields and returns the stored record.
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
	// TouchLastActive records account activity without touching other fields.
	TouchLastActive(ctx context.Context, id string, at time.Time) error
	// ListFarmers returns a page of farmer accounts and the total count.
	ListFarmers(ctx context.Context, filter ListFarmersFilter) ([]*domain.User, int64, error)
}
