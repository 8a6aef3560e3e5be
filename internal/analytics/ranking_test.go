package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Diaealaoui/agrimanager-sub000/internal/domain/models"
)

func supplierPurchase(supplier string, amount float64) models.PurchaseRecord {
	return models.PurchaseRecord{
		OrderDate:          time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		SupplierName:       supplier,
		TotalAmountInclTax: amount,
	}
}

func TestRankTopSortsDescendingAndTruncates(t *testing.T) {
	records := []models.PurchaseRecord{
		supplierPurchase("Agrivert", 50),
		supplierPurchase("Phytosem", 120),
		supplierPurchase("Agrivert", 30),
		supplierPurchase("Coopagri", 200),
	}

	ranked := RankTop(records, BySupplier, 2)

	require.Len(t, ranked, 2)
	assert.Equal(t, "Coopagri", ranked[0].Key)
	assert.Equal(t, 200.0, ranked[0].TotalAmount)
	assert.Equal(t, 1, ranked[0].RecordCount)
	assert.Equal(t, "Phytosem", ranked[1].Key)
	assert.Equal(t, 120.0, ranked[1].TotalAmount)
}

func TestRankTopTiesKeepFirstAppearanceOrder(t *testing.T) {
	records := []models.PurchaseRecord{
		supplierPurchase("Beta", 100),
		supplierPurchase("Alpha", 100),
	}

	ranked := RankTop(records, BySupplier, 5)

	require.Len(t, ranked, 2)
	assert.Equal(t, "Beta", ranked[0].Key)
	assert.Equal(t, "Alpha", ranked[1].Key)
}

func TestRankTopOutputNeverExceedsN(t *testing.T) {
	records := []models.PurchaseRecord{
		supplierPurchase("A", 1),
		supplierPurchase("B", 2),
	}

	assert.Len(t, RankTop(records, BySupplier, 10), 2)
	assert.Empty(t, RankTop(records, BySupplier, 0))
	assert.Empty(t, RankTop(nil, BySupplier, 3))
}

func TestRankTopGroupsMissingKeyAsEmptyString(t *testing.T) {
	records := []models.PurchaseRecord{
		supplierPurchase("", 10),
		supplierPurchase("", 20),
	}

	ranked := RankTop(records, BySupplier, 3)

	require.Len(t, ranked, 1)
	assert.Equal(t, "", ranked[0].Key)
	assert.Equal(t, 30.0, ranked[0].TotalAmount)
	assert.Equal(t, 2, ranked[0].RecordCount)
}

func TestRankTopDimensionSelectors(t *testing.T) {
	record := models.PurchaseRecord{
		ProductName:      "Cuivrol",
		SupplierName:     "Agrivert",
		ActiveIngredient: "Cuivre",
	}

	assert.Equal(t, "Cuivrol", ByProduct(record))
	assert.Equal(t, "Agrivert", BySupplier(record))
	assert.Equal(t, "Cuivre", ByIngredient(record))
}
