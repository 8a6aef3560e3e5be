package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PurchaseRecord captures one supplier purchase line as stored remotely.
// TotalAmountInclTax is the source of truth for spend aggregation; the
// analytics layer only ever sums it, it never recomputes quantity x price.
type PurchaseRecord struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OrderDate          time.Time          `bson:"order_date" json:"order_date"`
	ProductName        string             `bson:"product_name" json:"product_name"`
	ProductType        string             `bson:"product_type" json:"product_type"`
	ActiveIngredient   string             `bson:"active_ingredient" json:"active_ingredient"`
	SupplierName       string             `bson:"supplier_name" json:"supplier_name"`
	QuantityReceived   float64            `bson:"quantity_received" json:"quantity_received"`
	UnitOfPurchase     string             `bson:"unit_of_purchase" json:"unit_of_purchase"`
	UnitPriceExclTax   float64            `bson:"unit_price_excl_tax" json:"unit_price_excl_tax"`
	TaxRatePercent     float64            `bson:"tax_rate_percent" json:"tax_rate_percent"`
	UnitPriceInclTax   float64            `bson:"unit_price_incl_tax" json:"unit_price_incl_tax"`
	TotalAmountInclTax float64            `bson:"total_amount_incl_tax" json:"total_amount_incl_tax"`
	CreatedAt          time.Time          `bson:"created_at" json:"created_at"`
}
