package analytics

import (
	"sort"

	"github.com/Diaealaoui/agrimanager-sub000/internal/domain/models"
)

// RankedGroup is one entry of a top-N ranking.
type RankedGroup struct {
	Key         string  `json:"key"`
	TotalAmount float64 `json:"total_amount"`
	RecordCount int     `json:"record_count"`
}

// Key selectors for the ranking dimensions exposed on the dashboard.
var (
	ByProduct    = func(r models.PurchaseRecord) string { return r.ProductName }
	BySupplier   = func(r models.PurchaseRecord) string { return r.SupplierName }
	ByIngredient = func(r models.PurchaseRecord) string { return r.ActiveIngredient }
)

// RankTop groups purchases by the selector's output (exact string match;
// callers normalize beforehand if they need to), sums TotalAmountInclTax per
// group and returns at most n groups sorted by descending amount. Amount
// ties keep the group that appeared first in the input ahead.
func RankTop(records []models.PurchaseRecord, keyOf func(models.PurchaseRecord) string, n int) []RankedGroup {
	if n <= 0 {
		return []RankedGroup{}
	}

	totals := make(map[string]*RankedGroup)
	order := make([]string, 0)

	for _, r := range records {
		key := keyOf(r)
		group, seen := totals[key]
		if !seen {
			group = &RankedGroup{Key: key}
			totals[key] = group
			order = append(order, key)
		}
		group.TotalAmount += r.TotalAmountInclTax
		group.RecordCount++
	}

	ranked := make([]RankedGroup, 0, len(order))
	for _, key := range order {
		ranked = append(ranked, *totals[key])
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].TotalAmount > ranked[j].TotalAmount
	})

	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
