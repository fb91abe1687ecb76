package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"

	"github.com/agriscan/platform/internal/core/domain"
)

// Pagination mirrors the server's list metadata.
type Pagination struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
}

// ReportPage is one page of the reports listing.
type ReportPage struct {
	Items      []*domain.Report `json:"items"`
	Pagination Pagination       `json:"pagination"`
}

// ListReportsOptions are the optional filters for ListReports. Zero values
// are omitted from the query.
type ListReportsOptions struct {
	Page        int
	Limit       int
	Status      string
	PlantTypeID string
	State       string
	City        string
	StartDate   string
	EndDate     string
}

// SubmitReportInput carries a new field report. Image is optional.
type SubmitReportInput struct {
	PlantTypeID string
	GPSLat      float64
	GPSLng      float64
	City        string
	State       string
	Detections  []domain.Detection
	Image       io.Reader
	ImageName   string
}

func (o ListReportsOptions) query() url.Values {
	q := url.Values{}
	if o.Page > 0 {
		q.Set("page", strconv.Itoa(o.Page))
	}
	if o.Limit > 0 {
		q.Set("limit", strconv.Itoa(o.Limit))
	}
	if o.Status != "" {
		q.Set("status", o.Status)
	}
	if o.PlantTypeID != "" {
		q.Set("plantTypeId", o.PlantTypeID)
	}
	if o.State != "" {
		q.Set("state", o.State)
	}
	if o.City != "" {
		q.Set("city", o.City)
	}
	if o.StartDate != "" {
		q.Set("startDate", o.StartDate)
	}
	if o.EndDate != "" {
		q.Set("endDate", o.EndDate)
	}
	return q
}

// ListReports fetches one page of reports visible to the operator.
func (c *Client) ListReports(ctx context.Context, opts ListReportsOptions) (*ReportPage, error) {
	var page ReportPage
	if err := c.getJSON(ctx, "/reports", opts.query(), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetReport fetches a single report by id.
func (c *Client) GetReport(ctx context.Context, id string) (*domain.Report, error) {
	var report domain.Report
	if err := c.getJSON(ctx, "/reports/"+url.PathEscape(id), nil, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

// SubmitReport uploads a new report as a multipart form.
func (c *Client) SubmitReport(ctx context.Context, input SubmitReportInput) (*domain.Report, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	_ = mw.WriteField("plantTypeId", input.PlantTypeID)
	_ = mw.WriteField("gpsLat", strconv.FormatFloat(input.GPSLat, 'f', -1, 64))
	_ = mw.WriteField("gpsLng", strconv.FormatFloat(input.GPSLng, 'f', -1, 64))
	if input.City != "" {
		_ = mw.WriteField("city", input.City)
	}
	_ = mw.WriteField("state", input.State)

	if len(input.Detections) > 0 {
		detections, err := json.Marshal(input.Detections)
		if err != nil {
			return nil, fmt.Errorf("encode detections: %w", err)
		}
		_ = mw.WriteField("detections", string(detections))
	}

	if input.Image != nil {
		part, err := mw.CreateFormFile("image", input.ImageName)
		if err != nil {
			return nil, fmt.Errorf("attach image: %w", err)
		}
		if _, err := io.Copy(part, input.Image); err != nil {
			return nil, fmt.Errorf("attach image: %w", err)
		}
	}

	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("finalize form: %w", err)
	}

	var report domain.Report
	if _, err := c.do(ctx, http.MethodPost, "/reports", nil, &body, mw.FormDataContentType(), &report); err != nil {
		return nil, err
	}
	return &report, nil
}

// ReviewReport applies a verify or reject decision to a pending report.
func (c *Client) ReviewReport(ctx context.Context, id, status, notes string) (*domain.Report, error) {
	payload := map[string]string{"status": status, "reviewNotes": notes}

	var report domain.Report
	if _, err := c.sendJSON(ctx, http.MethodPut, "/reports/"+url.PathEscape(id)+"/status", payload, &report); err != nil {
		return nil, err
	}
	return &report, nil
}
