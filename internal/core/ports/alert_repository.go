package ports

import (
	"context"

	"github.com/agriscan/platform/internal/core/domain"
)

// ListAlertsFilter carries the query parameters for listing alerts.
type ListAlertsFilter struct {
	Severity string // optional: filter by severity
	Page     int    // 1-based
	Limit    int    // max rows per page
}

// AlertRepository defines persistence operations for alerts.
type AlertRepository interface {
	Create(ctx context.Context, a *domain.Alert) (*domain.Alert, error)
	FindByID(ctx context.Context, id string) (*domain.Alert, error)
	// Update persists the full alert record and returns the stored version.
	Update(ctx context.Context, a *domain.Alert) (*domain.Alert, error)
	Delete(ctx context.Context, id string) error
	// List returns a page of alerts, newest first, and the total count.
	List(ctx context.Context, filter ListAlertsFilter) ([]*domain.Alert, int64, error)
}
