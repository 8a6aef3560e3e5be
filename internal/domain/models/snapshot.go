package models

import "time"

// MonthlySnapshot is the aggregated month summary persisted by the scheduler.
type MonthlySnapshot struct {
	Year        int       `bson:"year" json:"year"`
	Month       int       `bson:"month" json:"month"`
	TotalAmount float64   `bson:"total_amount" json:"total_amount"`
	OrderCount  int       `bson:"order_count" json:"order_count"`
	TopProduct  string    `bson:"top_product" json:"top_product"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
}
