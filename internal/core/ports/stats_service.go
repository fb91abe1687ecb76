package ports

import (
	"context"
	"time"
)

// OverviewStats is the dashboard-home aggregate.
type OverviewStats struct {
	TotalReports          int64
	PendingReports        int64
	ReportsThisWeek       int64
	TotalFarmers          int64
	SeverityDistribution  map[string]int64
	PlantTypeDistribution map[string]int64
}

// StateCount is one row of the geographical breakdown.
type StateCount struct {
	State        string
	Reports      int64
	HighSeverity int64
}

// OverviewInput carries the overview query parameters. Period is one of
// "7d", "30d", "90d"; empty means all time.
type OverviewInput struct {
	Period string
	State  string
}

// GeoInput carries the geographical breakdown parameters.
type GeoInput struct {
	Period      string
	PlantTypeID string
	DiseaseID   string
}

// StatsService serves the dashboard aggregates.
type StatsService interface {
	Overview(ctx context.Context, input OverviewInput) (*OverviewStats, error)
	Geographical(ctx context.Context, input GeoInput) ([]StateCount, error)
}

// StatsFilter is the resolved repository-level query: Since is the zero time
// when no period bound applies.
type StatsFilter struct {
	Since       time.Time
	State       string
	PlantTypeID string
	DiseaseID   string
}

// StatsRepository computes aggregates over the report and user collections.
type StatsRepository interface {
	Overview(ctx context.Context, filter StatsFilter) (*OverviewStats, error)
	ByState(ctx context.Context, filter StatsFilter) ([]StateCount, error)
}
