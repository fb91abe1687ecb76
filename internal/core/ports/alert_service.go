package ports

import (
	"context"
	"time"

	"github.com/agriscan/platform/internal/core/domain"
)

// CreateAlertInput carries all fields for a new regional advisory.
type CreateAlertInput struct {
	Title       string
	Description string
	Severity    string
	TargetState string
	TargetCity  string
	CreatedBy   string
	ExpiresAt   time.Time
}

// UpdateAlertInput carries the editable alert fields. Nil means unchanged.
type UpdateAlertInput struct {
	Title       *string
	Description *string
	Severity    *string
	ExpiresAt   *time.Time
}

// ListAlertsInput carries the parameters for the alert listing.
type ListAlertsInput struct {
	Severity string
	Page     int
	Limit    int
}

// ListAlertsResult is returned by List.
type ListAlertsResult struct {
	Items      []*domain.Alert
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// AlertService defines use-case operations for regional advisories.
type AlertService interface {
	Create(ctx context.Context, input CreateAlertInput) (*domain.Alert, error)
	Update(ctx context.Context, id string, input UpdateAlertInput) (*domain.Alert, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, input ListAlertsInput) (*ListAlertsResult, error)
}
