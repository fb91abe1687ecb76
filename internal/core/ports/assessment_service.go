package ports

import "context"

// AssessmentInput is the DTO handed to the assessment workers when a report
// is submitted.
type AssessmentInput struct {
	ReportID   string
	Detections []DetectionInput
}

// AssessmentService derives and persists a severity for a submitted report.
type AssessmentService interface {
	Process(ctx context.Context, input AssessmentInput) error
}
