package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Diaealaoui/agrimanager-sub000/internal/domain/models"
)

func typedPurchase(productType string, amount float64) models.PurchaseRecord {
	return models.PurchaseRecord{ProductType: productType, TotalAmountInclTax: amount}
}

func TestBuildCategoryDistributionShares(t *testing.T) {
	records := []models.PurchaseRecord{
		typedPurchase("Fongicide", 60),
		typedPurchase("Herbicide", 30),
		typedPurchase("Fongicide", 10),
	}

	distribution := BuildCategoryDistribution(records)

	require.Len(t, distribution, 2)
	assert.Equal(t, "Fongicide", distribution[0].ProductType)
	assert.Equal(t, 70.0, distribution[0].TotalAmount)
	require.NotNil(t, distribution[0].Share)
	assert.InDelta(t, 0.7, *distribution[0].Share, 1e-9)
	require.NotNil(t, distribution[1].Share)
	assert.InDelta(t, 0.3, *distribution[1].Share, 1e-9)
}

func TestBuildCategoryDistributionZeroGrandTotal(t *testing.T) {
	records := []models.PurchaseRecord{
		typedPurchase("Fongicide", 0),
		typedPurchase("Herbicide", 0),
	}

	distribution := BuildCategoryDistribution(records)

	require.Len(t, distribution, 2)
	for _, slice := range distribution {
		assert.Nil(t, slice.Share)
	}
}

func TestBuildCategoryDistributionEmptyInput(t *testing.T) {
	assert.Empty(t, BuildCategoryDistribution(nil))
}

func TestBuildCategoryDistributionMissingTypeGroupsUnderEmpty(t *testing.T) {
	records := []models.PurchaseRecord{
		typedPurchase("", 5),
		typedPurchase("", 15),
	}

	distribution := BuildCategoryDistribution(records)

	require.Len(t, distribution, 1)
	assert.Equal(t, "", distribution[0].ProductType)
	assert.Equal(t, 20.0, distribution[0].TotalAmount)
}
