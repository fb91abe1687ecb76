package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/agriscan/platform/internal/core/domain"
)

const (
	plantsCollection   = "plant_types"
	diseasesCollection = "diseases"
)

// CatalogRepository serves the read-only plant and disease catalog.
type CatalogRepository struct {
	plants   *mongo.Collection
	diseases *mongo.Collection
}

func NewCatalogRepository(db *mongo.Database) *CatalogRepository {
	return &CatalogRepository{
		plants:   db.Collection(plantsCollection),
		diseases: db.Collection(diseasesCollection),
	}
}

type mongoPlant struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	Name           string             `bson:"name"`
	ScientificName string             `bson:"scientific_name,omitempty"`
	Description    string             `bson:"description,omitempty"`
}

type mongoDisease struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	PlantTypeID string             `bson:"plant_type_id"`
	Name        string             `bson:"name"`
	Description string             `bson:"description,omitempty"`
	Treatment   string             `bson:"treatment,omitempty"`
}

func (r *CatalogRepository) Plants(ctx context.Context) ([]*domain.PlantType, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.plants.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list plants: %w", err)
	}
	defer cur.Close(ctx)

	var plants []*domain.PlantType
	for cur.Next(ctx) {
		var mp mongoPlant
		if err := cur.Decode(&mp); err != nil {
			return nil, fmt.Errorf("decode plant: %w", err)
		}
		plants = append(plants, &domain.PlantType{
			ID:             mp.ID.Hex(),
			Name:           mp.Name,
			ScientificName: mp.ScientificName,
			Description:    mp.Description,
		})
	}
	return plants, cur.Err()
}

func (r *CatalogRepository) PlantByID(ctx context.Context, id string) (*domain.PlantType, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrPlantNotFound
	}

	var mp mongoPlant
	if err := r.plants.FindOne(ctx, bson.M{"_id": oid}).Decode(&mp); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPlantNotFound
		}
		return nil, err
	}
	return &domain.PlantType{
		ID:             mp.ID.Hex(),
		Name:           mp.Name,
		ScientificName: mp.ScientificName,
		Description:    mp.Description,
	}, nil
}

func (r *CatalogRepository) Diseases(ctx context.Context, plantTypeID string) ([]*domain.Disease, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if plantTypeID != "" {
		query["plant_type_id"] = plantTypeID
	}

	cur, err := r.diseases.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list diseases: %w", err)
	}
	defer cur.Close(ctx)

	var diseases []*domain.Disease
	for cur.Next(ctx) {
		var md mongoDisease
		if err := cur.Decode(&md); err != nil {
			return nil, fmt.Errorf("decode disease: %w", err)
		}
		diseases = append(diseases, &domain.Disease{
			ID:          md.ID.Hex(),
			PlantTypeID: md.PlantTypeID,
			Name:        md.Name,
			Description: md.Description,
			Treatment:   md.Treatment,
		})
	}
	return diseases, cur.Err()
}

func (r *CatalogRepository) DiseaseByID(ctx context.Context, id string) (*domain.Disease, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrDiseaseNotFound
	}

	var md mongoDisease
	if err := r.diseases.FindOne(ctx, bson.M{"_id": oid}).Decode(&md); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrDiseaseNotFound
		}
		return nil, err
	}
	return &domain.Disease{
		ID:          md.ID.Hex(),
		PlantTypeID: md.PlantTypeID,
		Name:        md.Name,
		Description: md.Description,
		Treatment:   md.Treatment,
	}, nil
}
