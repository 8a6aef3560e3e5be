package analytics

import "strings"

// searchResultCap bounds the merged result list across all entity types.
const searchResultCap = 10

// Entity type tags carried on search results.
const (
	EntityProduct    = "product"
	EntitySupplier   = "supplier"
	EntityIngredient = "ingredient"
)

// SearchEntry is one candidate of a search corpus. MatchFields lists the raw
// field values the query is checked against; DisplayName is matched too.
type SearchEntry struct {
	ID          string
	DisplayName string
	DetailText  string
	Amount      float64
	MatchFields []string
}

// SearchCorpora holds the three in-memory collections the matcher runs over.
type SearchCorpora struct {
	Products    []SearchEntry
	Suppliers   []SearchEntry
	Ingredients []SearchEntry
}

// SearchResult is a tagged match returned to the presentation layer.
type SearchResult struct {
	EntityType  string  `json:"entity_type"`
	ID          string  `json:"id"`
	DisplayName string  `json:"display_name"`
	DetailText  string  `json:"detail_text"`
	Amount      float64 `json:"amount"`
}

// Search matches the free-text query against all three corpora using
// case-insensitive, diacritic-insensitive substring containment. Results
// keep a stable category order (products, suppliers, ingredients) and the
// original corpus order within a category, capped at 10 overall. A blank or
// whitespace-only query yields an empty list, never "match everything".
func Search(query string, corpora SearchCorpora) []SearchResult {
	needle := Normalize(query)
	if needle == "" {
		return []SearchResult{}
	}

	results := make([]SearchResult, 0, searchResultCap)
	results = appendMatches(results, EntityProduct, corpora.Products, needle)
	results = appendMatches(results, EntitySupplier, corpora.Suppliers, needle)
	results = appendMatches(results, EntityIngredient, corpora.Ingredients, needle)
	return results
}

func appendMatches(results []SearchResult, entityType string, corpus []SearchEntry, needle string) []SearchResult {
	for _, entry := range corpus {
		if len(results) >= searchResultCap {
			break
		}
		if !entryMatches(entry, needle) {
			continue
		}
		results = append(results, SearchResult{
			EntityType:  entityType,
			ID:          entry.ID,
			DisplayName: entry.DisplayName,
			DetailText:  entry.DetailText,
			Amount:      entry.Amount,
		})
	}
	return results
}

func entryMatches(entry SearchEntry, needle string) bool {
	if strings.Contains(Normalize(entry.DisplayName), needle) {
		return true
	}
	for _, field := range entry.MatchFields {
		if strings.Contains(Normalize(field), needle) {
			return true
		}
	}
	return false
}
