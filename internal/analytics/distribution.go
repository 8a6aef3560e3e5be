package analytics

import (
	"sort"

	"github.com/Diaealaoui/agrimanager-sub000/internal/domain/models"
)

// CategoryShare is one product-type slice of the spend distribution. Share
// is the group's fraction of the grand total, nil when the grand total is 0.
type CategoryShare struct {
	ProductType string   `json:"product_type"`
	TotalAmount float64  `json:"total_amount"`
	Share       *float64 `json:"share,omitempty"`
}

// BuildCategoryDistribution groups purchases by product type and sums their
// amounts, sorted by descending amount with first-appearance tie order.
func BuildCategoryDistribution(records []models.PurchaseRecord) []CategoryShare {
	totals := make(map[string]*CategoryShare)
	order := make([]string, 0)
	var grandTotal float64

	for _, r := range records {
		slice, seen := totals[r.ProductType]
		if !seen {
			slice = &CategoryShare{ProductType: r.ProductType}
			totals[r.ProductType] = slice
			order = append(order, r.ProductType)
		}
		slice.TotalAmount += r.TotalAmountInclTax
		grandTotal += r.TotalAmountInclTax
	}

	distribution := make([]CategoryShare, 0, len(order))
	for _, key := range order {
		slice := *totals[key]
		if grandTotal > 0 {
			share := slice.TotalAmount / grandTotal
			slice.Share = &share
		}
		distribution = append(distribution, slice)
	}

	sort.SliceStable(distribution, func(i, j int) bool {
		return distribution[i].TotalAmount > distribution[j].TotalAmount
	})
	return distribution
}
