package service

import (
	"context"
	"time"

	"github.com/agriscan/platform/internal/core/ports"
)

type StatsService struct {
	repo ports.StatsRepository
}

func NewStatsService(repo ports.StatsRepository) *StatsService {
	return &StatsService{repo: repo}
}

func (s *StatsService) Overview(ctx context.Context, input ports.OverviewInput) (*ports.OverviewStats, error) {
	return s.repo.Overview(ctx, ports.StatsFilter{
		Since: periodStart(input.Period, time.Now().UTC()),
		State: input.State,
	})
}

func (s *StatsService) Geographical(ctx context.Context, input ports.GeoInput) ([]ports.StateCount, error) {
	return s.repo.ByState(ctx, ports.StatsFilter{
		Since:       periodStart(input.Period, time.Now().UTC()),
		PlantTypeID: input.PlantTypeID,
		DiseaseID:   input.DiseaseID,
	})
}

// periodStart resolves a period token to its lower time bound. Unknown or
// empty periods mean all time (zero value).
func periodStart(period string, now time.Time) time.Time {
	switch period {
	case "7d":
		return now.AddDate(0, 0, -7)
	case "30d":
		return now.AddDate(0, 0, -30)
	case "90d":
		return now.AddDate(0, 0, -90)
	default:
		return time.Time{}
	}
}
