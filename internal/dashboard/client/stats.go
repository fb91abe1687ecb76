package client

import (
	"context"
	"net/url"
	"strconv"

	"github.com/agriscan/platform/internal/core/domain"
)

// OverviewStats is the dashboard-home aggregate.
type OverviewStats struct {
	TotalReports          int64            `json:"totalReports"`
	PendingReports        int64            `json:"pendingReports"`
	ReportsThisWeek       int64            `json:"reportsThisWeek"`
	TotalFarmers          int64            `json:"totalFarmers"`
	SeverityDistribution  map[string]int64 `json:"severityDistribution"`
	PlantTypeDistribution map[string]int64 `json:"plantTypeDistribution"`
}

// StateCount is one row of the geographical breakdown.
type StateCount struct {
	State        string `json:"state"`
	Reports      int64  `json:"reports"`
	HighSeverity int64  `json:"highSeverity"`
}

// FarmerPage is one page of the farmer directory.
type FarmerPage struct {
	Items      []*domain.User `json:"items"`
	Pagination Pagination     `json:"pagination"`
}

// Overview fetches the dashboard aggregates. Period is 7d, 30d or 90d;
// empty means all time.
func (c *Client) Overview(ctx context.Context, period, state string) (*OverviewStats, error) {
	q := url.Values{}
	if period != "" {
		q.Set("period", period)
	}
	if state != "" {
		q.Set("state", state)
	}

	var stats OverviewStats
	if err := c.getJSON(ctx, "/stats/overview", q, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// Geographical fetches the per-state breakdown for the map view.
func (c *Client) Geographical(ctx context.Context, period, plantTypeID, diseaseID string) ([]StateCount, error) {
	q := url.Values{}
	if period != "" {
		q.Set("period", period)
	}
	if plantTypeID != "" {
		q.Set("plantTypeId", plantTypeID)
	}
	if diseaseID != "" {
		q.Set("diseaseId", diseaseID)
	}

	var rows []StateCount
	if err := c.getJSON(ctx, "/stats/geographical", q, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// Farmers fetches one page of the farmer directory. Inspector only.
func (c *Client) Farmers(ctx context.Context, state, city string, page, limit int) (*FarmerPage, error) {
	q := url.Values{}
	if state != "" {
		q.Set("state", state)
	}
	if city != "" {
		q.Set("city", city)
	}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}

	var result FarmerPage
	if err := c.getJSON(ctx, "/farmers", q, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
