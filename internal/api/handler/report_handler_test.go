package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/agriscan/platform/internal/core/domain"
	"github.com/agriscan/platform/internal/core/ports"
)

type stubReportService struct {
	submitFn func(ctx context.Context, input ports.SubmitReportInput) (*domain.Report, error)
	getFn    func(ctx context.Context, input ports.GetReportInput) (*domain.Report, error)
	listFn   func(ctx context.Context, input ports.ListReportsInput) (*ports.ListReportsResult, error)
	reviewFn func(ctx context.Context, input ports.ReviewReportInput) (*domain.Report, error)
}

func (s *stubReportService) Submit(ctx context.Context, input ports.SubmitReportInput) (*domain.Report, error) {
	return s.submitFn(ctx, input)
}

func (s *stubReportService) Get(ctx context.Context, input ports.GetReportInput) (*domain.Report, error) {
	return s.getFn(ctx, input)
}

func (s *stubReportService) List(ctx context.Context, input ports.ListReportsInput) (*ports.ListReportsResult, error) {
	return s.listFn(ctx, input)
}

func (s *stubReportService) Review(ctx context.Context, input ports.ReviewReportInput) (*domain.Report, error) {
	return s.reviewFn(ctx, input)
}

type stubImages struct {
	saved string
}

func (s *stubImages) Save(r io.Reader, originalName string) (string, error) {
	_, _ = io.Copy(io.Discard, r)
	s.saved = originalName
	return "images/stored-" + originalName, nil
}

func TestReportHandler_Submit_Multipart(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()

	var gotInput ports.SubmitReportInput
	reports := &stubReportService{
		submitFn: func(ctx context.Context, input ports.SubmitReportInput) (*domain.Report, error) {
			gotInput = input
			return &domain.Report{ID: "r1", Reference: "REP-0A1B2C3D", Status: domain.ReportPending}, nil
		},
	}
	auth := &stubAuthService{
		profileFn: func(ctx context.Context, userID string) (*domain.User, error) {
			return &domain.User{ID: userID, FullName: "Ama Mensah"}, nil
		},
	}
	images := &stubImages{}
	h := NewReportHandler(reports, auth, images)

	var body strings.Builder
	mw := multipart.NewWriter(&body)
	_ = mw.WriteField("plantTypeId", "cassava")
	_ = mw.WriteField("gpsLat", "9.4034")
	_ = mw.WriteField("gpsLng", "-0.8424")
	_ = mw.WriteField("state", "Northern")
	_ = mw.WriteField("detections", `[{"diseaseId":"d1","label":"mosaic","confidence":0.82}]`)
	part, _ := mw.CreateFormFile("image", "leaf.jpg")
	_, _ = part.Write([]byte("jpegdata"))
	_ = mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/reports", strings.NewReader(body.String()))
	req.Header.Set(echo.HeaderContentType, mw.FormDataContentType())
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("uid", "f1")
	c.Set("role", "farmer")

	if err := h.Submit(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if gotInput.FarmerID != "f1" || gotInput.FarmerName != "Ama Mensah" {
		t.Fatalf("caller identity not applied: %+v", gotInput)
	}
	if gotInput.ImagePath != "images/stored-leaf.jpg" {
		t.Fatalf("image not stored: %+v", gotInput)
	}
	if len(gotInput.Detections) != 1 || gotInput.Detections[0].Confidence != 0.82 {
		t.Fatalf("detections not parsed: %+v", gotInput.Detections)
	}
}

func TestReportHandler_Submit_BadDetectionsJSON(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	h := NewReportHandler(&stubReportService{}, &stubAuthService{}, &stubImages{})

	var body strings.Builder
	mw := multipart.NewWriter(&body)
	_ = mw.WriteField("plantTypeId", "cassava")
	_ = mw.WriteField("gpsLat", "9.4")
	_ = mw.WriteField("gpsLng", "-0.8")
	_ = mw.WriteField("state", "Northern")
	_ = mw.WriteField("detections", "not-json")
	_ = mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/reports", strings.NewReader(body.String()))
	req.Header.Set(echo.HeaderContentType, mw.FormDataContentType())
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("uid", "f1")
	c.Set("role", "farmer")

	err := h.Submit(c)
	var fields FieldErrors
	if !errors.As(err, &fields) {
		t.Fatalf("expected FieldErrors, got %v", err)
	}
	if _, ok := fields["detections"]; !ok {
		t.Fatalf("expected detections failure, got %+v", fields)
	}
}

func TestReportHandler_List_PassesIdentity(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()

	reports := &stubReportService{
		listFn: func(ctx context.Context, input ports.ListReportsInput) (*ports.ListReportsResult, error) {
			if input.Role != "farmer" || input.UserID != "f1" {
				t.Fatalf("identity not passed: %+v", input)
			}
			if input.Status != "pending" || input.Page != 2 {
				t.Fatalf("query not bound: %+v", input)
			}
			return &ports.ListReportsResult{
				Items: []*domain.Report{{ID: "r1", Reference: "REP-00000001"}},
				Total: 21, Page: 2, Limit: 20, TotalPages: 2,
			}, nil
		},
	}
	h := NewReportHandler(reports, &stubAuthService{}, &stubImages{})

	req := httptest.NewRequest(http.MethodGet, "/reports?status=pending&page=2", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("uid", "f1")
	c.Set("role", "farmer")

	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	data := resp["data"].(map[string]any)
	pagination := data["pagination"].(map[string]any)
	if pagination["totalPages"] != float64(2) {
		t.Fatalf("unexpected pagination: %+v", pagination)
	}
}

func TestReportHandler_Review_InvalidStatus(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	h := NewReportHandler(&stubReportService{}, &stubAuthService{}, &stubImages{})

	req := httptest.NewRequest(http.MethodPut, "/reports/r1/status", strings.NewReader(`{"status":"approved"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("r1")
	c.Set("uid", "i1")
	c.Set("role", "inspector")

	err := h.Review(c)
	var fields FieldErrors
	if !errors.As(err, &fields) {
		t.Fatalf("expected FieldErrors for bad status, got %v", err)
	}
}

func TestReportHandler_Review_Success(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()

	reports := &stubReportService{
		reviewFn: func(ctx context.Context, input ports.ReviewReportInput) (*domain.Report, error) {
			if input.ID != "r1" || input.ReviewerID != "i1" || input.Status != "verified" {
				t.Fatalf("unexpected input: %+v", input)
			}
			return &domain.Report{ID: "r1", Status: domain.ReportVerified, ReviewedBy: "i1"}, nil
		},
	}
	h := NewReportHandler(reports, &stubAuthService{}, &stubImages{})

	req := httptest.NewRequest(http.MethodPut, "/reports/r1/status", strings.NewReader(`{"status":"verified","reviewNotes":"ok"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("r1")
	c.Set("uid", "i1")
	c.Set("role", "inspector")

	if err := h.Review(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
