package ports

import (
	"context"
	"time"

	"github.com/agriscan/platform/internal/core/domain"
)

// ListReportsFilter carries all query parameters for listing reports.
// FarmerID is enforced by the service layer for farmer-role callers.
type ListReportsFilter struct {
	FarmerID    string    // empty = no filter (inspector); non-empty = scoped to farmer
	Status      string    // optional: filter by review status
	PlantTypeID string    // optional: filter by plant type
	State       string    // optional: filter by state
	City        string    // optional: filter by city
	DateFrom    time.Time // optional: created_at >= DateFrom
	DateTo      time.Time // optional: created_at <= DateTo
	Page        int       // 1-based
	Limit       int       // max rows per page (capped at 100 by service)
}

// ReportRepository defines persistence operations for reports.
type ReportRepository interface {
	Create(ctx context.Context, r *domain.Report) (*domain.Report, error)
	// FindByID retrieves a report by id. When farmerID is non-empty, the query
	// is additionally scoped to that farmer's own reports.
	FindByID(ctx context.Context, id string, farmerID string) (*domain.Report, error)
	// List returns a page of reports matching filter and the total count.
	List(ctx context.Context, filter ListReportsFilter) ([]*domain.Report, int64, error)
	// UpdateReview atomically applies a review decision and returns the
	// updated report.
	UpdateReview(ctx context.Context, id string, status domain.ReportStatus, notes, reviewedBy string, at time.Time) (*domain.Report, error)
	// UpdateSeverity sets the assessed severity on a report.
	UpdateSeverity(ctx context.Context, id string, severity domain.Severity) error
}
