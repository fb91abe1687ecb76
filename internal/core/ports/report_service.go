package ports

import (
	"context"
	"time"

	"github.com/agriscan/platform/internal/core/domain"
)

// CoordinatesInput holds geographic coordinates.
type CoordinatesInput struct {
	Lat float64
	Lng float64
}

// DetectionInput holds one model finding reported with a submission.
type DetectionInput struct {
	DiseaseID  string
	Label      string
	Confidence float64
}

// SubmitReportInput carries all data needed to create a new report.
// FarmerID and FarmerName come from the authenticated caller, never the payload.
type SubmitReportInput struct {
	FarmerID    string
	FarmerName  string
	PlantTypeID string
	ImagePath   string
	Detections  []DetectionInput
	Location    CoordinatesInput
	City        string
	State       string
}

// GetReportInput carries the parameters needed to retrieve a single report.
// Role and UserID enforce access control: farmers only see their own reports.
type GetReportInput struct {
	ID     string
	Role   string
	UserID string
}

// ListReportsInput carries all parameters for the list endpoint.
type ListReportsInput struct {
	Role        string
	UserID      string
	Status      string
	PlantTypeID string
	State       string
	City        string
	DateFrom    time.Time
	DateTo      time.Time
	Page        int
	Limit       int
}

// ListReportsResult is returned by List.
type ListReportsResult struct {
	Items      []*domain.Report
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// ReviewReportInput carries an inspector's review decision.
type ReviewReportInput struct {
	ID         string
	ReviewerID string
	Status     string
	Notes      string
}

// ReportService defines use-case operations for plant-health reports.
type ReportService interface {
	Submit(ctx context.Context, input SubmitReportInput) (*domain.Report, error)
	Get(ctx context.Context, input GetReportInput) (*domain.Report, error)
	List(ctx context.Context, input ListReportsInput) (*ListReportsResult, error)
	Review(ctx context.Context, input ReviewReportInput) (*domain.Report, error)
}
