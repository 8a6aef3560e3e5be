package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TreatmentRecord captures a single product application on one parcel.
type TreatmentRecord struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ParcelName    string             `bson:"parcel_name" json:"parcel_name"`
	ProductName   string             `bson:"product_name" json:"product_name"`
	QuantityUsed  float64            `bson:"quantity_used" json:"quantity_used"`
	EstimatedCost float64            `bson:"estimated_cost" json:"estimated_cost"`
	TreatmentDate time.Time          `bson:"treatment_date" json:"treatment_date"`
}
