package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// SupplierRecord holds supplier contact details used for search and order routing.
type SupplierRecord struct {
	ID    primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name  string             `bson:"name" json:"name"`
	Phone string             `bson:"phone" json:"phone"`
	Email string             `bson:"email" json:"email"`
}
