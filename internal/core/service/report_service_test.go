package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/agriscan/platform/internal/core/domain"
	"github.com/agriscan/platform/internal/core/ports"
)

type stubReportRepo struct {
	reports map[string]*domain.Report
	nextID  int
}

func newStubReportRepo() *stubReportRepo {
	return &stubReportRepo{reports: make(map[string]*domain.Report)}
}

func cloneReport(r *domain.Report) *domain.Report {
	if r == nil {
		return nil
	}
	clone := *r
	return &clone
}

func (r *stubReportRepo) Create(_ context.Context, report *domain.Report) (*domain.Report, error) {
	copy := cloneReport(report)
	r.nextID++
	copy.ID = fmt.Sprintf("r%d", r.nextID)
	r.reports[copy.ID] = cloneReport(copy)
	return cloneReport(copy), nil
}

func (r *stubReportRepo) FindByID(_ context.Context, id, farmerID string) (*domain.Report, error) {
	report, ok := r.reports[id]
	if !ok {
		return nil, domain.ErrReportNotFound
	}
	if farmerID != "" && report.FarmerID != farmerID {
		return nil, domain.ErrReportNotFound
	}
	return cloneReport(report), nil
}

func (r *stubReportRepo) List(_ context.Context, filter ports.ListReportsFilter) ([]*domain.Report, int64, error) {
	var out []*domain.Report
	for _, report := range r.reports {
		if filter.FarmerID != "" && report.FarmerID != filter.FarmerID {
			continue
		}
		if filter.Status != "" && string(report.Status) != filter.Status {
			continue
		}
		out = append(out, cloneReport(report))
	}
	return out, int64(len(out)), nil
}

func (r *stubReportRepo) UpdateReview(_ context.Context, id string, status domain.ReportStatus, notes, reviewedBy string, at time.Time) (*domain.Report, error) {
	report, ok := r.reports[id]
	if !ok {
		return nil, domain.ErrReportNotFound
	}
	report.Status = status
	report.ReviewNotes = notes
	report.ReviewedBy = reviewedBy
	report.ReviewedAt = at
	return cloneReport(report), nil
}

func (r *stubReportRepo) UpdateSeverity(_ context.Context, id string, severity domain.Severity) error {
	report, ok := r.reports[id]
	if !ok {
		return domain.ErrReportNotFound
	}
	report.Severity = severity
	return nil
}

type stubDedup struct {
	duplicate bool
	marked    []string
}

func (d *stubDedup) IsDuplicate(_ context.Context, farmerID, plantTypeID string, _ ports.CoordinatesInput) (bool, error) {
	return d.duplicate, nil
}

func (d *stubDedup) Mark(_ context.Context, farmerID, plantTypeID string, _ ports.CoordinatesInput) error {
	d.marked = append(d.marked, farmerID+":"+plantTypeID)
	return nil
}

type stubQueue struct {
	enqueued []ports.AssessmentInput
}

func (q *stubQueue) Enqueue(input ports.AssessmentInput) {
	q.enqueued = append(q.enqueued, input)
}

func submitInput() ports.SubmitReportInput {
	return ports.SubmitReportInput{
		FarmerID:    "f1",
		FarmerName:  "Ama Mensah",
		PlantTypeID: "cassava",
		Detections: []ports.DetectionInput{
			{DiseaseID: "d1", Label: "mosaic", Confidence: 0.82},
		},
		Location: ports.CoordinatesInput{Lat: 9.4034, Lng: -0.8424},
		City:     "Tamale",
		State:    "Northern",
	}
}

func TestReportService_Submit_Success(t *testing.T) {
	repo := newStubReportRepo()
	dedup := &stubDedup{}
	queue := &stubQueue{}
	svc := NewReportService(repo, dedup, queue, zerolog.Nop())

	report, err := svc.Submit(context.Background(), submitInput())
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if report.Status != domain.ReportPending {
		t.Fatalf("expected pending status, got %s", report.Status)
	}
	if ok, _ := regexp.MatchString(`^REP-[0-9A-F]{8}$`, report.Reference); !ok {
		t.Fatalf("unexpected reference format: %s", report.Reference)
	}
	if len(queue.enqueued) != 1 || queue.enqueued[0].ReportID != report.ID {
		t.Fatalf("expected assessment enqueued for %s, got %+v", report.ID, queue.enqueued)
	}
	if len(dedup.marked) != 1 {
		t.Fatalf("expected dedup key marked")
	}
}

func TestReportService_Submit_Duplicate(t *testing.T) {
	repo := newStubReportRepo()
	queue := &stubQueue{}
	svc := NewReportService(repo, &stubDedup{duplicate: true}, queue, zerolog.Nop())

	if _, err := svc.Submit(context.Background(), submitInput()); !errors.Is(err, domain.ErrDuplicateReport) {
		t.Fatalf("expected ErrDuplicateReport, got %v", err)
	}
	if len(repo.reports) != 0 {
		t.Fatalf("duplicate submission must not be stored")
	}
	if len(queue.enqueued) != 0 {
		t.Fatalf("duplicate submission must not be assessed")
	}
}

func TestReportService_Get_FarmerScoped(t *testing.T) {
	repo := newStubReportRepo()
	svc := NewReportService(repo, &stubDedup{}, &stubQueue{}, zerolog.Nop())

	created, err := svc.Submit(context.Background(), submitInput())
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	// The owner sees it.
	if _, err := svc.Get(context.Background(), ports.GetReportInput{ID: created.ID, Role: domain.RoleFarmer, UserID: "f1"}); err != nil {
		t.Fatalf("owner read failed: %v", err)
	}

	// Another farmer does not.
	if _, err := svc.Get(context.Background(), ports.GetReportInput{ID: created.ID, Role: domain.RoleFarmer, UserID: "f2"}); !errors.Is(err, domain.ErrReportNotFound) {
		t.Fatalf("expected not found for foreign farmer, got %v", err)
	}

	// Inspectors see everything.
	if _, err := svc.Get(context.Background(), ports.GetReportInput{ID: created.ID, Role: domain.RoleInspector, UserID: "i1"}); err != nil {
		t.Fatalf("inspector read failed: %v", err)
	}
}

func TestReportService_Review_Transitions(t *testing.T) {
	repo := newStubReportRepo()
	svc := NewReportService(repo, &stubDedup{}, &stubQueue{}, zerolog.Nop())

	created, err := svc.Submit(context.Background(), submitInput())
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	reviewed, err := svc.Review(context.Background(), ports.ReviewReportInput{
		ID:         created.ID,
		ReviewerID: "i1",
		Status:     "verified",
		Notes:      "confirmed in the field",
	})
	if err != nil {
		t.Fatalf("review failed: %v", err)
	}
	if reviewed.Status != domain.ReportVerified || reviewed.ReviewedBy != "i1" {
		t.Fatalf("unexpected review result: %+v", reviewed)
	}

	// Verified is terminal.
	_, err = svc.Review(context.Background(), ports.ReviewReportInput{
		ID:         created.ID,
		ReviewerID: "i1",
		Status:     "rejected",
	})
	if !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestNormalizePage(t *testing.T) {
	cases := []struct {
		page, limit         int
		wantPage, wantLimit int
	}{
		{0, 0, 1, 20},
		{-3, -1, 1, 20},
		{2, 50, 2, 50},
		{1, 500, 1, 100},
	}
	for _, tc := range cases {
		page, limit := normalizePage(tc.page, tc.limit)
		if page != tc.wantPage || limit != tc.wantLimit {
			t.Fatalf("normalizePage(%d,%d) = %d,%d; want %d,%d",
				tc.page, tc.limit, page, limit, tc.wantPage, tc.wantLimit)
		}
	}
}
