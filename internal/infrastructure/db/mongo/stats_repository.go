package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/agriscan/platform/internal/core/domain"
	"github.com/agriscan/platform/internal/core/ports"
)

// StatsRepository computes dashboard aggregates with Mongo pipelines over the
// reports and users collections.
type StatsRepository struct {
	reports *mongo.Collection
	users   *mongo.Collection
}

func NewStatsRepository(db *mongo.Database) *StatsRepository {
	return &StatsRepository{
		reports: db.Collection(reportsCollection),
		users:   db.Collection(usersCollection),
	}
}

func (r *StatsRepository) Overview(ctx context.Context, filter ports.StatsFilter) (*ports.OverviewStats, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	match := bson.M{}
	if !filter.Since.IsZero() {
		match["created_at"] = bson.M{"$gte": filter.Since}
	}
	if filter.State != "" {
		match["state"] = filter.State
	}

	stats := &ports.OverviewStats{
		SeverityDistribution:  make(map[string]int64),
		PlantTypeDistribution: make(map[string]int64),
	}

	var err error
	if stats.TotalReports, err = r.reports.CountDocuments(ctx, match); err != nil {
		return nil, fmt.Errorf("count reports: %w", err)
	}

	pendingMatch := cloneMatch(match)
	pendingMatch["status"] = domain.ReportPending
	if stats.PendingReports, err = r.reports.CountDocuments(ctx, pendingMatch); err != nil {
		return nil, fmt.Errorf("count pending: %w", err)
	}

	weekMatch := cloneMatch(match)
	weekMatch["created_at"] = bson.M{"$gte": time.Now().UTC().AddDate(0, 0, -7)}
	if stats.ReportsThisWeek, err = r.reports.CountDocuments(ctx, weekMatch); err != nil {
		return nil, fmt.Errorf("count week: %w", err)
	}

	if stats.TotalFarmers, err = r.users.CountDocuments(ctx, bson.M{"role": domain.RoleFarmer}); err != nil {
		return nil, fmt.Errorf("count farmers: %w", err)
	}

	if stats.SeverityDistribution, err = r.groupCount(ctx, match, "$severity"); err != nil {
		return nil, err
	}
	if stats.PlantTypeDistribution, err = r.groupCount(ctx, match, "$plant_type_id"); err != nil {
		return nil, err
	}

	return stats, nil
}

// groupCount runs a match+group pipeline and returns key→count, skipping
// documents where the grouped field is unset.
func (r *StatsRepository) groupCount(ctx context.Context, match bson.M, field string) (map[string]int64, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: match}},
		bson.D{{Key: "$group", Value: bson.M{"_id": field, "count": bson.M{"$sum": 1}}}},
	}

	cur, err := r.reports.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate %s: %w", field, err)
	}
	defer cur.Close(ctx)

	out := make(map[string]int64)
	for cur.Next(ctx) {
		var row struct {
			ID    string `bson:"_id"`
			Count int64  `bson:"count"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, fmt.Errorf("decode %s row: %w", field, err)
		}
		if row.ID != "" {
			out[row.ID] = row.Count
		}
	}
	return out, cur.Err()
}

func (r *StatsRepository) ByState(ctx context.Context, filter ports.StatsFilter) ([]ports.StateCount, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	match := bson.M{}
	if !filter.Since.IsZero() {
		match["created_at"] = bson.M{"$gte": filter.Since}
	}
	if filter.PlantTypeID != "" {
		match["plant_type_id"] = filter.PlantTypeID
	}
	if filter.DiseaseID != "" {
		match["detections.disease_id"] = filter.DiseaseID
	}

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: match}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":   "$state",
			"count": bson.M{"$sum": 1},
			"high": bson.M{"$sum": bson.M{
				"$cond": bson.A{bson.M{"$eq": bson.A{"$severity", domain.SeverityHigh}}, 1, 0},
			}},
		}}},
		bson.D{{Key: "$sort", Value: bson.M{"count": -1}}},
	}

	cur, err := r.reports.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate by state: %w", err)
	}
	defer cur.Close(ctx)

	var rows []ports.StateCount
	for cur.Next(ctx) {
		var row struct {
			ID    string `bson:"_id"`
			Count int64  `bson:"count"`
			High  int64  `bson:"high"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, fmt.Errorf("decode state row: %w", err)
		}
		rows = append(rows, ports.StateCount{State: row.ID, Reports: row.Count, HighSeverity: row.High})
	}
	return rows, cur.Err()
}

func cloneMatch(m bson.M) bson.M {
	out := make(bson.M, len(m)+1)
	for k, v := range m {
		out[k] = v
	}
	return out
}
