package carbon

import (
	"sort"

	"Receipt-Carbon-Backend/domain"
	"Receipt-Carbon-Backend/entities"
)

// GroupByDay buckets entries under their EntryDate key. The key was computed
// once at entry creation, so buckets stay stable regardless of the timezone
// in effect when the history is read. Order of entries within a bucket
// follows the order of the input slice; no entry is dropped or duplicated.
func GroupByDay(entries []*entities.CarbonEntry) map[string][]*entities.CarbonEntry {
	grouped := make(map[string][]*entities.CarbonEntry, len(entries))
	for _, entry := range entries {
		grouped[entry.EntryDate] = append(grouped[entry.EntryDate], entry)
	}
	return grouped
}

// DayKeys returns the bucket keys in ascending calendar order. EntryDate is
// YYYY-MM-DD, so lexicographic order is chronological order.
func DayKeys(grouped map[string][]*entities.CarbonEntry) []string {
	keys := make([]string, 0, len(grouped))
	for key := range grouped {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// SumTotals adds up TotalCarbon across entries.
func SumTotals(entries []*entities.CarbonEntry) float64 {
	var total float64
	for _, entry := range entries {
		total += entry.TotalCarbon
	}
	return total
}

// CategoryTotals sums the per-item carbon contribution within each category
// across all entries. A category with no items contributes zero. The three
// category sums are independent of TotalCarbon, which the scoring service
// computes on its own.
func CategoryTotals(entries []*entities.CarbonEntry) domain.CategoryTotals {
	var totals domain.CategoryTotals
	for _, entry := range entries {
		for _, item := range entry.FoodItems {
			totals.Food += item.Carbon
		}
		for _, item := range entry.ShoppingItems {
			totals.Shopping += item.Carbon
		}
		for _, item := range entry.TravelItems {
			totals.Travel += item.Carbon
		}
	}
	return totals
}
