package handler

import "github.com/agriscan/platform/internal/core/domain"

type submitReportRequest struct {
	PlantTypeID string  `form:"plantTypeId" validate:"required"`
	GPSLat      float64 `form:"gpsLat" validate:"required,gte=-90,lte=90"`
	GPSLng      float64 `form:"gpsLng" validate:"required,gte=-180,lte=180"`
	City        string  `form:"city"`
	State       string  `form:"state" validate:"required"`
	Detections  string  `form:"detections"`
}

type detectionRequest struct {
	DiseaseID  string  `json:"diseaseId"`
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

type listReportsQuery struct {
	Page        int    `query:"page"`
	Limit       int    `query:"limit"`
	Status      string `query:"status"`
	PlantTypeID string `query:"plantTypeId"`
	State       string `query:"state"`
	City        string `query:"city"`
	StartDate   string `query:"startDate"`
	EndDate     string `query:"endDate"`
}

type reviewReportRequest struct {
	Status      string `json:"status" validate:"required,oneof=verified rejected"`
	ReviewNotes string `json:"reviewNotes"`
}

type paginationResponse struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
}

type listReportsResponse struct {
	Items      []*domain.Report   `json:"items"`
	Pagination paginationResponse `json:"pagination"`
}
