package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Diaealaoui/agrimanager-sub000/internal/domain/models"
)

func applied(parcel, product string, date time.Time, cost float64) models.TreatmentRecord {
	return models.TreatmentRecord{
		ParcelName:    parcel,
		ProductName:   product,
		TreatmentDate: date,
		EstimatedCost: cost,
	}
}

func TestGroupMixBatchesByParcelAndDay(t *testing.T) {
	d1 := time.Date(2024, 7, 10, 8, 30, 0, 0, time.UTC)
	d1Later := time.Date(2024, 7, 10, 17, 0, 0, 0, time.UTC)
	d2 := time.Date(2024, 7, 11, 8, 30, 0, 0, time.UTC)

	treatments := []models.TreatmentRecord{
		applied("Nord", "Cuivrol", d1, 40),
		applied("Nord", "Soufre", d1Later, 25),
		applied("Nord", "Cuivrol", d2, 40),
		applied("Sud", "Cuivrol", d1, 15),
	}

	batches := GroupMixBatches(treatments)

	require.Len(t, batches, 3)

	assert.Equal(t, "Nord", batches[0].ParcelName)
	assert.Equal(t, "2024-07-10", batches[0].Date)
	assert.Equal(t, []string{"Cuivrol", "Soufre"}, batches[0].Products)
	assert.Equal(t, 65.0, batches[0].TotalCost)
	assert.Equal(t, 2, batches[0].ApplicationCount)

	assert.Equal(t, "2024-07-11", batches[1].Date)
	assert.Equal(t, "Sud", batches[2].ParcelName)
}

func TestGroupMixBatchesDeduplicatesProducts(t *testing.T) {
	d := time.Date(2024, 7, 10, 0, 0, 0, 0, time.UTC)
	treatments := []models.TreatmentRecord{
		applied("Nord", "Cuivrol", d, 10),
		applied("Nord", "Cuivrol", d, 10),
	}

	batches := GroupMixBatches(treatments)

	require.Len(t, batches, 1)
	assert.Equal(t, []string{"Cuivrol"}, batches[0].Products)
	assert.Equal(t, 2, batches[0].ApplicationCount)
}

func TestGroupMixBatchesSkipsZeroDates(t *testing.T) {
	treatments := []models.TreatmentRecord{
		applied("Nord", "Cuivrol", time.Time{}, 10),
	}

	assert.Empty(t, GroupMixBatches(treatments))
}
