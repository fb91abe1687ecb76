package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/agriscan/platform/internal/core/domain"
	"github.com/agriscan/platform/internal/core/ports"
)

const maxPageSize = 100

// DedupChecker abstracts the duplicate-submission guard (Redis).
type DedupChecker interface {
	IsDuplicate(ctx context.Context, farmerID, plantTypeID string, loc ports.CoordinatesInput) (bool, error)
	Mark(ctx context.Context, farmerID, plantTypeID string, loc ports.CoordinatesInput) error
}

// AssessmentQueue abstracts the async severity-assessment dispatcher.
type AssessmentQueue interface {
	Enqueue(input ports.AssessmentInput)
}

type ReportService struct {
	repo   ports.ReportRepository
	dedup  DedupChecker
	queue  AssessmentQueue
	logger zerolog.Logger
}

func NewReportService(repo ports.ReportRepository, dedup DedupChecker, queue AssessmentQueue, logger zerolog.Logger) *ReportService {
	return &ReportService{repo: repo, dedup: dedup, queue: queue, logger: logger}
}

// Submit creates a new report and enqueues it for severity assessment.
// Re-submissions for the same plant type from the same GPS cell inside the
// dedup window are rejected.
func (s *ReportService) Submit(ctx context.Context, input ports.SubmitReportInput) (*domain.Report, error) {
	isDup, err := s.dedup.IsDuplicate(ctx, input.FarmerID, input.PlantTypeID, input.Location)
	if err != nil {
		s.logger.Warn().Err(err).Str("farmer_id", input.FarmerID).Msg("dedup check failed, accepting submission")
	} else if isDup {
		return nil, domain.ErrDuplicateReport
	}

	detections := make([]domain.Detection, 0, len(input.Detections))
	for _, d := range input.Detections {
		detections = append(detections, domain.Detection{
			DiseaseID:  d.DiseaseID,
			Label:      d.Label,
			Confidence: d.Confidence,
		})
	}

	report := &domain.Report{
		Reference:   generateReference(),
		FarmerID:    input.FarmerID,
		FarmerName:  input.FarmerName,
		PlantTypeID: input.PlantTypeID,
		ImagePath:   input.ImagePath,
		Detections:  detections,
		Location:    domain.Coordinates{Lat: input.Location.Lat, Lng: input.Location.Lng},
		City:        input.City,
		State:       input.State,
		Status:      domain.ReportPending,
		CreatedAt:   time.Now().UTC(),
	}

	created, err := s.repo.Create(ctx, report)
	if err != nil {
		s.logger.Error().Err(err).Str("farmer_id", input.FarmerID).Msg("failed to create report")
		return nil, err
	}

	if markErr := s.dedup.Mark(ctx, input.FarmerID, input.PlantTypeID, input.Location); markErr != nil {
		s.logger.Warn().Err(markErr).Str("report_id", created.ID).Msg("failed to set dedup key")
	}

	s.queue.Enqueue(ports.AssessmentInput{ReportID: created.ID, Detections: input.Detections})

	s.logger.Info().
		Str("report_id", created.ID).
		Str("reference", created.Reference).
		Str("farmer_id", input.FarmerID).
		Str("plant_type_id", input.PlantTypeID).
		Msg("report submitted")

	return created, nil
}

// Get retrieves a single report. Farmer-role callers only see their own.
func (s *ReportService) Get(ctx context.Context, input ports.GetReportInput) (*domain.Report, error) {
	farmerScope := ""
	if input.Role == domain.RoleFarmer {
		farmerScope = input.UserID
	}
	return s.repo.FindByID(ctx, input.ID, farmerScope)
}

// List returns a page of reports. Farmer-role callers are scoped to their own
// submissions; inspectors see everything matching the filter.
func (s *ReportService) List(ctx context.Context, input ports.ListReportsInput) (*ports.ListReportsResult, error) {
	page, limit := normalizePage(input.Page, input.Limit)

	filter := ports.ListReportsFilter{
		Status:      input.Status,
		PlantTypeID: input.PlantTypeID,
		State:       input.State,
		City:        input.City,
		DateFrom:    input.DateFrom,
		DateTo:      input.DateTo,
		Page:        page,
		Limit:       limit,
	}
	if input.Role == domain.RoleFarmer {
		filter.FarmerID = input.UserID
	}

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &ports.ListReportsResult{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages(total, limit),
	}, nil
}

// Review applies an inspector decision, enforcing the review state machine.
func (s *ReportService) Review(ctx context.Context, input ports.ReviewReportInput) (*domain.Report, error) {
	next := domain.ReportStatus(input.Status)

	report, err := s.repo.FindByID(ctx, input.ID, "")
	if err != nil {
		return nil, err
	}

	if !report.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("review report: %w (from %s to %s)", domain.ErrInvalidTransition, report.Status, next)
	}

	updated, err := s.repo.UpdateReview(ctx, input.ID, next, input.Notes, input.ReviewerID, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("report_id", input.ID).
		Str("status", input.Status).
		Str("reviewer_id", input.ReviewerID).
		Msg("report reviewed")

	return updated, nil
}

// generateReference returns a unique report reference in the format REP-XXXXXXXX.
func generateReference() string {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		// fallback: use current nanoseconds
		return fmt.Sprintf("REP-%08X", time.Now().UnixNano()&0xFFFFFFFF)
	}
	return fmt.Sprintf("REP-%08X", b)
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return page, limit
}

func totalPages(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	pages := int(total) / limit
	if int(total)%limit != 0 {
		pages++
	}
	return pages
}
