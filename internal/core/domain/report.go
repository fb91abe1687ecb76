package domain

import (
	"errors"
	"time"
)

// ReportStatus represents the review state of a plant-health report.
type ReportStatus string

const (
	ReportPending  ReportStatus = "pending"
	ReportVerified ReportStatus = "verified"
	ReportRejected ReportStatus = "rejected"
)

// Severity is the assessed impact level of a report's detections.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// validReviewTransitions defines the allowed review state machine.
// Verified and rejected are terminal: re-reviewing requires a new submission.
var validReviewTransitions = map[ReportStatus][]ReportStatus{
	ReportPending: {ReportVerified, ReportRejected},
}

var ErrReportNotFound = errors.New("report not found")
var ErrDuplicateReport = errors.New("duplicate report submission")
var ErrInvalidTransition = errors.New("invalid report status transition")
var ErrForbidden = errors.New("access forbidden")

// CanTransitionTo reports whether a review transition from s to next is valid.
func (s ReportStatus) CanTransitionTo(next ReportStatus) bool {
	for _, allowed := range validReviewTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Coordinates represents a geographic point captured with the report.
type Coordinates struct {
	Lat float64 `json:"lat" bson:"lat"`
	Lng float64 `json:"lng" bson:"lng"`
}

// Detection is a single model finding on the submitted image.
type Detection struct {
	DiseaseID  string  `json:"diseaseId" bson:"disease_id"`
	Label      string  `json:"label" bson:"label"`
	Confidence float64 `json:"confidence" bson:"confidence"`
}

// Report is the core aggregate: one field submission with its image,
// detections, location, and review trail.
type Report struct {
	ID          string       `json:"id" bson:"_id,omitempty"`
	Reference   string       `json:"reference" bson:"reference"`
	FarmerID    string       `json:"farmerId" bson:"farmer_id"`
	FarmerName  string       `json:"farmerName" bson:"farmer_name"`
	PlantTypeID string       `json:"plantTypeId" bson:"plant_type_id"`
	ImagePath   string       `json:"imagePath,omitempty" bson:"image_path,omitempty"`
	Detections  []Detection  `json:"detections" bson:"detections"`
	Location    Coordinates  `json:"location" bson:"location"`
	City        string       `json:"city" bson:"city"`
	State       string       `json:"state" bson:"state"`
	Severity    Severity     `json:"severity,omitempty" bson:"severity,omitempty"`
	Status      ReportStatus `json:"status" bson:"status"`
	ReviewNotes string       `json:"reviewNotes,omitempty" bson:"review_notes,omitempty"`
	ReviewedBy  string       `json:"reviewedBy,omitempty" bson:"reviewed_by,omitempty"`
	ReviewedAt  time.Time    `json:"reviewedAt,omitempty" bson:"reviewed_at,omitempty"`
	CreatedAt   time.Time    `json:"createdAt" bson:"created_at"`
}
