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

const alertsCollection = "alerts"

type AlertRepository struct {
	coll *mongo.Collection
}

func NewAlertRepository(db *mongo.Database) *AlertRepository {
	return &AlertRepository{coll: db.Collection(alertsCollection)}
}

type mongoAlert struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty"`
	Title       string               `bson:"title"`
	Description string               `bson:"description"`
	Severity    domain.AlertSeverity `bson:"severity"`
	TargetState string               `bson:"target_state"`
	TargetCity  string               `bson:"target_city,omitempty"`
	CreatedBy   string               `bson:"created_by"`
	CreatedAt   time.Time            `bson:"created_at"`
	ExpiresAt   time.Time            `bson:"expires_at"`
}

func (ma mongoAlert) toDomain() *domain.Alert {
	return &domain.Alert{
		ID:          ma.ID.Hex(),
		Title:       ma.Title,
		Description: ma.Description,
		Severity:    ma.Severity,
		TargetState: ma.TargetState,
		TargetCity:  ma.TargetCity,
		CreatedBy:   ma.CreatedBy,
		CreatedAt:   ma.CreatedAt,
		ExpiresAt:   ma.ExpiresAt,
	}
}

func (r *AlertRepository) Create(ctx context.Context, a *domain.Alert) (*domain.Alert, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoAlert{
		Title:       a.Title,
		Description: a.Description,
		Severity:    a.Severity,
		TargetState: a.TargetState,
		TargetCity:  a.TargetCity,
		CreatedBy:   a.CreatedBy,
		CreatedAt:   a.CreatedAt,
		ExpiresAt:   a.ExpiresAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert alert: %w", err)
	}

	created := *a
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *AlertRepository) FindByID(ctx context.Context, id string) (*domain.Alert, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrAlertNotFound
	}

	var ma mongoAlert
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&ma); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAlertNotFound
		}
		return nil, err
	}
	return ma.toDomain(), nil
}

func (r *AlertRepository) Update(ctx context.Context, a *domain.Alert) (*domain.Alert, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(a.ID)
	if err != nil {
		return nil, domain.ErrAlertNotFound
	}

	update := bson.M{"$set": bson.M{
		"title":       a.Title,
		"description": a.Description,
		"severity":    a.Severity,
		"expires_at":  a.ExpiresAt,
	}}

	var ma mongoAlert
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&ma); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAlertNotFound
		}
		return nil, fmt.Errorf("update alert: %w", err)
	}
	return ma.toDomain(), nil
}

func (r *AlertRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrAlertNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete alert: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrAlertNotFound
	}
	return nil
}

func (r *AlertRepository) List(ctx context.Context, filter ports.ListAlertsFilter) ([]*domain.Alert, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.Severity != "" {
		query["severity"] = filter.Severity
	}

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count alerts: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((filter.Page - 1) * filter.Limit)).
		SetLimit(int64(filter.Limit))

	cur, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list alerts: %w", err)
	}
	defer cur.Close(ctx)

	var alerts []*domain.Alert
	for cur.Next(ctx) {
		var ma mongoAlert
		if err := cur.Decode(&ma); err != nil {
			return nil, 0, fmt.Errorf("decode alert: %w", err)
		}
		alerts = append(alerts, ma.toDomain())
	}
	return alerts, total, cur.Err()
}

// EnsureIndexes creates necessary indexes on the alerts collection.
func (r *AlertRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "severity", Value: 1}}},
		{Keys: bson.D{{Key: "target_state", Value: 1}}},
		{Keys: bson.D{{Key: "expires_at", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
