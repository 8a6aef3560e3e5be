package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order lifecycle statuses.
const (
	OrderStatusDraft = "draft"
	OrderStatusSent  = "sent"
)

// OrderLine is one product line inside a generated purchase order.
type OrderLine struct {
	ProductID   primitive.ObjectID `bson:"product_id" json:"product_id"`
	ProductName string             `bson:"product_name" json:"product_name"`
	Quantity    float64            `bson:"quantity" json:"quantity"`
	UnitPrice   float64            `bson:"unit_price" json:"unit_price"`
	LineTotal   float64            `bson:"line_total" json:"line_total"`
}

// OrderRecord is a draft purchase order generated from low-stock products,
// one order per supplier.
type OrderRecord struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Reference    string             `bson:"reference" json:"reference"`
	SupplierName string             `bson:"supplier_name" json:"supplier_name"`
	Status       string             `bson:"status" json:"status"`
	Lines        []OrderLine        `bson:"lines" json:"lines"`
	TotalAmount  float64            `bson:"total_amount" json:"total_amount"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
}
