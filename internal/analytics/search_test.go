package analytics

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCorpora() SearchCorpora {
	return SearchCorpora{
		Products: []SearchEntry{
			{ID: "p1", DisplayName: "Matière Active", DetailText: "Fongicide", Amount: 12.5, MatchFields: []string{"Fongicide", "Cuivre"}},
			{ID: "p2", DisplayName: "Autre", DetailText: "Herbicide", Amount: 8},
		},
		Suppliers: []SearchEntry{
			{ID: "s1", DisplayName: "Coopérative Matières", Amount: 3000},
		},
		Ingredients: []SearchEntry{
			{ID: "i1", DisplayName: "Matière brute", Amount: 450},
		},
	}
}

func TestSearchBlankQueryReturnsEmpty(t *testing.T) {
	corpora := testCorpora()

	assert.Empty(t, Search("", corpora))
	assert.Empty(t, Search("   ", corpora))
	assert.Empty(t, Search("\t\n", corpora))
}

func TestSearchIsAccentAndCaseInsensitive(t *testing.T) {
	results := Search("matiere", testCorpora())

	require.Len(t, results, 3)
	for _, r := range results {
		assert.NotEqual(t, "Autre", r.DisplayName)
	}
	assert.Equal(t, "Matière Active", results[0].DisplayName)
}

func TestSearchCategoryOrderIsStable(t *testing.T) {
	results := Search("MATIÈRE", testCorpora())

	require.Len(t, results, 3)
	assert.Equal(t, EntityProduct, results[0].EntityType)
	assert.Equal(t, EntitySupplier, results[1].EntityType)
	assert.Equal(t, EntityIngredient, results[2].EntityType)
}

func TestSearchMatchesSecondaryFields(t *testing.T) {
	results := Search("cuivre", testCorpora())

	require.Len(t, results, 1)
	assert.Equal(t, "p1", results[0].ID)
	assert.Equal(t, 12.5, results[0].Amount)
}

func TestSearchNoSubstringNoMatch(t *testing.T) {
	results := Search("azote", testCorpora())

	assert.Empty(t, results)
}

func TestSearchCapsResultsAtTen(t *testing.T) {
	corpora := SearchCorpora{}
	for i := 0; i < 8; i++ {
		corpora.Products = append(corpora.Products, SearchEntry{
			ID:          fmt.Sprintf("p%d", i),
			DisplayName: fmt.Sprintf("Bouillie %d", i),
		})
	}
	for i := 0; i < 8; i++ {
		corpora.Suppliers = append(corpora.Suppliers, SearchEntry{
			ID:          fmt.Sprintf("s%d", i),
			DisplayName: fmt.Sprintf("Bouillie et fils %d", i),
		})
	}

	results := Search("bouillie", corpora)

	require.Len(t, results, 10)
	// All products fit, the supplier tail is cut.
	assert.Equal(t, EntityProduct, results[7].EntityType)
	assert.Equal(t, EntitySupplier, results[8].EntityType)
	assert.Equal(t, "s1", results[9].ID)
}

func TestSearchPreservesCorpusOrderWithinCategory(t *testing.T) {
	corpora := SearchCorpora{
		Products: []SearchEntry{
			{ID: "zz", DisplayName: "Soufre mouillable"},
			{ID: "aa", DisplayName: "Soufre poudre"},
		},
	}

	results := Search("soufre", corpora)

	require.Len(t, results, 2)
	assert.Equal(t, "zz", results[0].ID)
	assert.Equal(t, "aa", results[1].ID)
}
