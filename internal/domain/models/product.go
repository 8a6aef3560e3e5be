package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// ProductRecord describes an inventory item. Stock and average price are
// maintained by the inventory service as purchases and treatments come in.
type ProductRecord struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name             string             `bson:"name" json:"name"`
	ProductType      string             `bson:"product_type" json:"product_type"`
	ActiveIngredient string             `bson:"active_ingredient" json:"active_ingredient"`
	CurrentStock     float64            `bson:"current_stock" json:"current_stock"`
	ReferenceUnit    string             `bson:"reference_unit" json:"reference_unit"`
	AveragePrice     float64            `bson:"average_price" json:"average_price"`
	ReorderThreshold float64            `bson:"reorder_threshold" json:"reorder_threshold"`
}
