package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/agriscan/platform/internal/core/domain"
	"github.com/agriscan/platform/internal/core/ports"
)

const reportsCollection = "reports"

type ReportRepository struct {
	coll *mongo.Collection
}

func NewReportRepository(db *mongo.Database) *ReportRepository {
	return &ReportRepository{coll: db.Collection(reportsCollection)}
}

// mongoReport mirrors domain.Report with an ObjectID primary key. Detections
// and location reuse the domain types' bson tags directly.
type mongoReport struct {
	ID          primitive.ObjectID  `bson:"_id,omitempty"`
	Reference   string              `bson:"reference"`
	FarmerID    string              `bson:"farmer_id"`
	FarmerName  string              `bson:"farmer_name"`
	PlantTypeID string              `bson:"plant_type_id"`
	ImagePath   string              `bson:"image_path,omitempty"`
	Detections  []domain.Detection  `bson:"detections"`
	Location    domain.Coordinates  `bson:"location"`
	City        string              `bson:"city"`
	State       string              `bson:"state"`
	Severity    domain.Severity     `bson:"severity,omitempty"`
	Status      domain.ReportStatus `bson:"status"`
	ReviewNotes string              `bson:"review_notes,omitempty"`
	ReviewedBy  string              `bson:"reviewed_by,omitempty"`
	ReviewedAt  time.Time           `bson:"reviewed_at,omitempty"`
	CreatedAt   time.Time           `bson:"created_at"`
}

func toMongoReport(r *domain.Report) mongoReport {
	return mongoReport{
		Reference:   r.Reference,
		FarmerID:    r.FarmerID,
		FarmerName:  r.FarmerName,
		PlantTypeID: r.PlantTypeID,
		ImagePath:   r.ImagePath,
		Detections:  r.Detections,
		Location:    r.Location,
		City:        r.City,
		State:       r.State,
		Severity:    r.Severity,
		Status:      r.Status,
		ReviewNotes: r.ReviewNotes,
		ReviewedBy:  r.ReviewedBy,
		ReviewedAt:  r.ReviewedAt,
		CreatedAt:   r.CreatedAt,
	}
}

func (mr mongoReport) toDomain() *domain.Report {
	return &domain.Report{
		ID:          mr.ID.Hex(),
		Reference:   mr.Reference,
		FarmerID:    mr.FarmerID,
		FarmerName:  mr.FarmerName,
		PlantTypeID: mr.PlantTypeID,
		ImagePath:   mr.ImagePath,
		Detections:  mr.Detections,
		Location:    mr.Location,
		City:        mr.City,
		State:       mr.State,
		Severity:    mr.Severity,
		Status:      mr.Status,
		ReviewNotes: mr.ReviewNotes,
		ReviewedBy:  mr.ReviewedBy,
		ReviewedAt:  mr.ReviewedAt,
		CreatedAt:   mr.CreatedAt,
	}
}

func (r *ReportRepository) Create(ctx context.Context, report *domain.Report) (*domain.Report, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.InsertOne(ctx, toMongoReport(report))
	if err != nil {
		return nil, fmt.Errorf("insert report: %w", err)
	}

	created := *report
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

// FindByID retrieves a report by id. When farmerID is non-empty, the query is
// additionally scoped to that farmer (access control for farmer callers).
func (r *ReportRepository) FindByID(ctx context.Context, id string, farmerID string) (*domain.Report, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrReportNotFound
	}

	filter := bson.M{"_id": oid}
	if farmerID != "" {
		filter["farmer_id"] = farmerID
	}

	var mr mongoReport
	if err := r.coll.FindOne(ctx, filter).Decode(&mr); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrReportNotFound
		}
		return nil, err
	}
	return mr.toDomain(), nil
}

func (r *ReportRepository) List(ctx context.Context, filter ports.ListReportsFilter) ([]*domain.Report, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.FarmerID != "" {
		query["farmer_id"] = filter.FarmerID
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.PlantTypeID != "" {
		query["plant_type_id"] = filter.PlantTypeID
	}
	if filter.State != "" {
		query["state"] = filter.State
	}
	if filter.City != "" {
		query["city"] = filter.City
	}
	if created := dateRange(filter.DateFrom, filter.DateTo); len(created) > 0 {
		query["created_at"] = created
	}

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count reports: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((filter.Page - 1) * filter.Limit)).
		SetLimit(int64(filter.Limit))

	cur, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list reports: %w", err)
	}
	defer cur.Close(ctx)

	var reports []*domain.Report
	for cur.Next(ctx) {
		var mr mongoReport
		if err := cur.Decode(&mr); err != nil {
			return nil, 0, fmt.Errorf("decode report: %w", err)
		}
		reports = append(reports, mr.toDomain())
	}
	return reports, total, cur.Err()
}

// UpdateReview atomically applies the review decision and returns the new
// document state.
func (r *ReportRepository) UpdateReview(ctx context.Context, id string, status domain.ReportStatus, notes, reviewedBy string, at time.Time) (*domain.Report, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrReportNotFound
	}

	update := bson.M{"$set": bson.M{
		"status":       status,
		"review_notes": notes,
		"reviewed_by":  reviewedBy,
		"reviewed_at":  at,
	}}

	var mr mongoReport
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&mr); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrReportNotFound
		}
		return nil, fmt.Errorf("update review: %w", err)
	}
	return mr.toDomain(), nil
}

func (r *ReportRepository) UpdateSeverity(ctx context.Context, id string, severity domain.Severity) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrReportNotFound
	}

	res, err := r.coll.UpdateByID(ctx, oid, bson.M{"$set": bson.M{"severity": severity}})
	if err != nil {
		return fmt.Errorf("update severity: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrReportNotFound
	}
	return nil
}

// EnsureIndexes creates necessary indexes on the reports collection.
func (r *ReportRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "farmer_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "state", Value: 1}}},
		{Keys: bson.D{{Key: "plant_type_id", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

// dateRange builds a created_at range clause; empty when both bounds are zero.
func dateRange(from, to time.Time) bson.M {
	rangeQuery := bson.M{}
	if !from.IsZero() {
		rangeQuery["$gte"] = from
	}
	if !to.IsZero() {
		rangeQuery["$lte"] = to
	}
	return rangeQuery
}
