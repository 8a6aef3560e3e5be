package analytics

import "github.com/Diaealaoui/agrimanager-sub000/internal/domain/models"

// ParcelCost is the per-parcel treatment cost rollup. SurfaceHectares and
// CostPerHectare are nil when the parcel is unknown or its surface is not
// strictly positive; callers must branch on presence before rendering.
type ParcelCost struct {
	ParcelName      string   `json:"parcel_name"`
	TotalCost       float64  `json:"total_cost"`
	TreatmentCount  int      `json:"treatment_count"`
	SurfaceHectares *float64 `json:"surface_hectares,omitempty"`
	CostPerHectare  *float64 `json:"cost_per_hectare,omitempty"`
}

// RollupByParcel groups treatments by parcel name in first-appearance order,
// sums estimated costs and joins parcel surfaces by name. Treatments whose
// parcel has no matching ParcelRecord are still reported, with surface and
// cost-per-hectare left undefined instead of being dropped.
func RollupByParcel(treatments []models.TreatmentRecord, parcels []models.ParcelRecord) []ParcelCost {
	surfaces := make(map[string]float64, len(parcels))
	for _, p := range parcels {
		surfaces[p.Name] = p.SurfaceHectares
	}

	costs := make(map[string]*ParcelCost)
	order := make([]string, 0)

	for _, t := range treatments {
		entry, seen := costs[t.ParcelName]
		if !seen {
			entry = &ParcelCost{ParcelName: t.ParcelName}
			costs[t.ParcelName] = entry
			order = append(order, t.ParcelName)
		}
		entry.TotalCost += t.EstimatedCost
		entry.TreatmentCount++
	}

	rollup := make([]ParcelCost, 0, len(order))
	for _, name := range order {
		entry := *costs[name]
		if surface, ok := surfaces[name]; ok && surface > 0 {
			s := surface
			perHectare := entry.TotalCost / surface
			entry.SurfaceHectares = &s
			entry.CostPerHectare = &perHectare
		}
		rollup = append(rollup, entry)
	}
	return rollup
}
