package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// ParcelRecord describes a cultivated parcel. SurfaceHectares must be
// strictly positive; the inventory service rejects anything else at creation.
type ParcelRecord struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name            string             `bson:"name" json:"name"`
	SurfaceHectares float64            `bson:"surface_hectares" json:"surface_hectares"`
}
