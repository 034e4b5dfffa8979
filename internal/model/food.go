package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Food units.
const (
	UnitPiece = "piece"
	UnitGram  = "gram"
)

// Food is a cached nutrition lookup. Nutrient values are per 100 g.
type Food struct {
	ID             primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Key            string             `json:"-" bson:"key"`
	Name           string             `json:"name" bson:"name"`
	Unit           string             `json:"unit" bson:"unit"`
	PieceAvgWeight *float64           `json:"piece_avg_weight" bson:"piece_avg_weight"`
	AvgGram        *float64           `json:"avg_gram" bson:"avg_gram"`
	Calories       float64            `json:"cal" bson:"cal"`
	Protein        float64            `json:"protein" bson:"protein"`
	Fat            float64            `json:"fat" bson:"fat"`
	Carbohydrates  float64            `json:"carbohydrates" bson:"carbohydrates"`
	CreatedAt      time.Time          `json:"createdAt" bson:"createdAt"`
}
