package analytics

import (
	"github.com/Diaealaoui/agrimanager-sub000/internal/domain/models"
)

const dayKeyLayout = "2006-01-02"

// MixBatch groups the treatments sprayed on one parcel during one calendar
// day, which in practice corresponds to a single tank mix.
type MixBatch struct {
	ParcelName       string   `json:"parcel_name"`
	Date             string   `json:"date"`
	Products         []string `json:"products"`
	TotalCost        float64  `json:"total_cost"`
	ApplicationCount int      `json:"application_count"`
}

// GroupMixBatches clusters treatments by (parcel, calendar day) in
// first-appearance order. Treatments with a zero date cannot be assigned to
// a day and are excluded. Product names are deduplicated per batch.
func GroupMixBatches(treatments []models.TreatmentRecord) []MixBatch {
	batches := make(map[string]*MixBatch)
	order := make([]string, 0)

	for _, t := range treatments {
		if t.TreatmentDate.IsZero() {
			continue
		}
		day := t.TreatmentDate.Format(dayKeyLayout)
		key := t.ParcelName + "|" + day

		batch, seen := batches[key]
		if !seen {
			batch = &MixBatch{ParcelName: t.ParcelName, Date: day}
			batches[key] = batch
			order = append(order, key)
		}

		if !containsString(batch.Products, t.ProductName) {
			batch.Products = append(batch.Products, t.ProductName)
		}
		batch.TotalCost += t.EstimatedCost
		batch.ApplicationCount++
	}

	grouped := make([]MixBatch, 0, len(order))
	for _, key := range order {
		grouped = append(grouped, *batches[key])
	}
	return grouped
}

func containsString(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
