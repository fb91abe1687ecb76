package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/agriscan/platform/internal/core/domain"
	"github.com/agriscan/platform/internal/core/ports"
)

// Confidence thresholds for the severity bands. A report's severity is driven
// by its strongest detection.
const (
	highConfidence   = 0.75
	mediumConfidence = 0.40
)

type assessmentService struct {
	repo ports.ReportRepository
	log  zerolog.Logger
}

// NewAssessmentService returns an AssessmentService implementation.
func NewAssessmentService(repo ports.ReportRepository, log zerolog.Logger) ports.AssessmentService {
	return &assessmentService{repo: repo, log: log}
}

// Process derives a severity from the report's detections and persists it.
func (s *assessmentService) Process(ctx context.Context, in ports.AssessmentInput) error {
	severity := AssessSeverity(in.Detections)

	if err := s.repo.UpdateSeverity(ctx, in.ReportID, severity); err != nil {
		return fmt.Errorf("assess report: %w", err)
	}

	s.log.Info().
		Str("report_id", in.ReportID).
		Str("severity", string(severity)).
		Int("detections", len(in.Detections)).
		Msg("report assessed")

	return nil
}

// AssessSeverity maps detection confidences to a severity band. A report with
// no detections is healthy as far as the model can tell, hence low.
func AssessSeverity(detections []ports.DetectionInput) domain.Severity {
	var max float64
	for _, d := range detections {
		if d.Confidence > max {
			max = d.Confidence
		}
	}

	switch {
	case max >= highConfidence:
		return domain.SeverityHigh
	case max >= mediumConfidence:
		return domain.SeverityMedium
	default:
		return domain.SeverityLow
	}
}
