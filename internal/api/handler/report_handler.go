package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/agriscan/platform/internal/api/metrics"
	"github.com/agriscan/platform/internal/core/domain"
	"github.com/agriscan/platform/internal/core/ports"
)

// ImageSaver persists an uploaded report image and returns its stored path.
type ImageSaver interface {
	Save(r io.Reader, originalName string) (string, error)
}

// ReportHandler handles HTTP requests for plant-health reports.
type ReportHandler struct {
	service ports.ReportService
	auth    ports.AuthService
	images  ImageSaver
}

func NewReportHandler(service ports.ReportService, auth ports.AuthService, images ImageSaver) *ReportHandler {
	return &ReportHandler{service: service, auth: auth, images: images}
}

// Submit handles POST /reports, a multipart form with the report fields and an
// optional image.
//
// @Summary      Submit a plant-health report
// @Tags         reports
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        plantTypeId  formData  string  true   "Plant type id"
// @Param        gpsLat       formData  number  true   "Latitude"
// @Param        gpsLng       formData  number  true   "Longitude"
// @Param        city         formData  string  false  "City"
// @Param        state        formData  string  true   "State"
// @Param        detections   formData  string  false  "JSON array of detections"
// @Param        image        formData  file    false  "Plant image"
// @Success      201  {object}  envelope
// @Failure      409  {object}  map[string]any
// @Failure      422  {object}  map[string]any
// @Router       /reports [post]
func (h *ReportHandler) Submit(c echo.Context) error {
	uid, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req submitReportRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	var detections []ports.DetectionInput
	if req.Detections != "" {
		var parsed []detectionRequest
		if err := json.Unmarshal([]byte(req.Detections), &parsed); err != nil {
			return FieldErrors{"detections": "must be a JSON array of detections"}
		}
		for _, d := range parsed {
			detections = append(detections, ports.DetectionInput{
				DiseaseID:  d.DiseaseID,
				Label:      d.Label,
				Confidence: d.Confidence,
			})
		}
	}

	imagePath := ""
	if file, err := c.FormFile("image"); err == nil {
		src, err := file.Open()
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "unreadable image")
		}
		defer src.Close()
		if imagePath, err = h.images.Save(src, file.Filename); err != nil {
			return err
		}
	}

	// The farmer's display name is denormalized onto the report so listings
	// don't need a join.
	farmer, err := h.auth.Profile(c.Request().Context(), uid)
	if err != nil {
		return err
	}

	report, err := h.service.Submit(c.Request().Context(), ports.SubmitReportInput{
		FarmerID:    uid,
		FarmerName:  farmer.FullName,
		PlantTypeID: req.PlantTypeID,
		ImagePath:   imagePath,
		Detections:  detections,
		Location:    ports.CoordinatesInput{Lat: req.GPSLat, Lng: req.GPSLng},
		City:        req.City,
		State:       req.State,
	})
	if err != nil {
		if err == domain.ErrDuplicateReport {
			metrics.ReportsDuplicateTotal.Inc()
		}
		return err
	}

	metrics.ReportsSubmittedTotal.WithLabelValues(req.PlantTypeID).Inc()
	return respond(c, http.StatusCreated, report)
}

// List handles GET /reports with pagination and filters. Farmers only see
// their own submissions.
//
// @Summary      List reports
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        page         query  int     false  "Page (1-based)"
// @Param        limit        query  int     false  "Page size"
// @Param        status       query  string  false  "Review status"
// @Param        plantTypeId  query  string  false  "Plant type id"
// @Param        state        query  string  false  "State"
// @Param        city         query  string  false  "City"
// @Param        startDate    query  string  false  "RFC 3339 lower bound"
// @Param        endDate      query  string  false  "RFC 3339 upper bound"
// @Success      200  {object}  envelope
// @Router       /reports [get]
func (h *ReportHandler) List(c echo.Context) error {
	uid, role, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var q listReportsQuery
	if err := c.Bind(&q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query")
	}

	dateFrom, err := parseDate(q.StartDate)
	if err != nil {
		return FieldErrors{"startDate": "must be an RFC 3339 timestamp or YYYY-MM-DD date"}
	}
	dateTo, err := parseDate(q.EndDate)
	if err != nil {
		return FieldErrors{"endDate": "must be an RFC 3339 timestamp or YYYY-MM-DD date"}
	}

	result, err := h.service.List(c.Request().Context(), ports.ListReportsInput{
		Role:        role,
		UserID:      uid,
		Status:      q.Status,
		PlantTypeID: q.PlantTypeID,
		State:       q.State,
		City:        q.City,
		DateFrom:    dateFrom,
		DateTo:      dateTo,
		Page:        q.Page,
		Limit:       q.Limit,
	})
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, listReportsResponse{
		Items: result.Items,
		Pagination: paginationResponse{
			Total:      result.Total,
			Page:       result.Page,
			Limit:      result.Limit,
			TotalPages: result.TotalPages,
		},
	})
}

// Get handles GET /reports/:id.
//
// @Summary      Get a report by id
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Report id"
// @Success      200  {object}  envelope
// @Failure      404  {object}  map[string]any
// @Router       /reports/{id} [get]
func (h *ReportHandler) Get(c echo.Context) error {
	uid, role, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	report, err := h.service.Get(c.Request().Context(), ports.GetReportInput{
		ID:     c.Param("id"),
		Role:   role,
		UserID: uid,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, report)
}

// Review handles PUT /reports/:id/status, the inspector review decision.
//
// @Summary      Apply a review decision
// @Tags         reports
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "Report id"
// @Param        body  body      reviewReportRequest  true  "Decision"
// @Success      200   {object}  envelope
// @Failure      404   {object}  map[string]any
// @Failure      422   {object}  map[string]any
// @Router       /reports/{id}/status [put]
func (h *ReportHandler) Review(c echo.Context) error {
	uid, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req reviewReportRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	report, err := h.service.Review(c.Request().Context(), ports.ReviewReportInput{
		ID:         c.Param("id"),
		ReviewerID: uid,
		Status:     req.Status,
		Notes:      req.ReviewNotes,
	})
	if err != nil {
		return err
	}

	metrics.ReportsReviewedTotal.WithLabelValues(req.Status).Inc()
	return respond(c, http.StatusOK, report)
}

// parseDate accepts RFC 3339 timestamps or bare dates; empty means unset.
func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
