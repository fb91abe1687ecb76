package domain

import "errors"

var ErrPlantNotFound = errors.New("plant type not found")
var ErrDiseaseNotFound = errors.New("disease not found")

// PlantType is a catalog entry for a crop the detection model supports.
type PlantType struct {
	ID             string `json:"id" bson:"_id,omitempty"`
	Name           string `json:"name" bson:"name"`
	ScientificName string `json:"scientificName,omitempty" bson:"scientific_name,omitempty"`
	Description    string `json:"description,omitempty" bson:"description,omitempty"`
}

// Disease is a catalog entry for a condition the model can detect on a plant
// type, including the recommended treatment shown to farmers.
type Disease struct {
	ID          string `json:"id" bson:"_id,omitempty"`
	PlantTypeID string `json:"plantTypeId" bson:"plant_type_id"`
	Name        string `json:"name" bson:"name"`
	Description string `json:"description,omitempty" bson:"description,omitempty"`
	Treatment   string `json:"treatment,omitempty" bson:"treatment,omitempty"`
}
