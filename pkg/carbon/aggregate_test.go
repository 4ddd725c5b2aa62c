package carbon

import (
	"math"
	"testing"
	"time"

	"Receipt-Carbon-Backend/entities"

	"github.com/google/uuid"
)

func makeEntry(day string, total float64) *entities.CarbonEntry {
	uploaded, _ := time.Parse("2006-01-02", day)
	return &entities.CarbonEntry{
		ID:          uuid.New(),
		UploadedAt:  uploaded,
		EntryDate:   day,
		TotalCarbon: total,
	}
}

func TestGroupByDay(t *testing.T) {
	first := makeEntry("2025-03-01", 4.5)
	second := makeEntry("2025-03-01", 2.0)
	third := makeEntry("2025-03-03", 9.1)

	grouped := GroupByDay([]*entities.CarbonEntry{first, second, third})

	if len(grouped) != 2 {
		t.Fatalf("expected 2 day buckets, got %d", len(grouped))
	}
	if len(grouped["2025-03-01"]) != 2 {
		t.Fatalf("expected 2 entries on 2025-03-01, got %d", len(grouped["2025-03-01"]))
	}
	// Insertion order within a day follows upload order.
	if grouped["2025-03-01"][0] != first || grouped["2025-03-01"][1] != second {
		t.Error("within-day order does not follow input order")
	}

	keys := DayKeys(grouped)
	if len(keys) != 2 || keys[0] != "2025-03-01" || keys[1] != "2025-03-03" {
		t.Errorf("DayKeys = %v, want chronological order", keys)
	}
}

// Grouping must not drop or duplicate entries: the bucket totals sum to the
// flat total.
func TestGroupByDayPreservesTotals(t *testing.T) {
	entries := []*entities.CarbonEntry{
		makeEntry("2025-03-01", 4.5),
		makeEntry("2025-03-01", 2.0),
		makeEntry("2025-03-02", 0),
		makeEntry("2025-03-03", 9.1),
		makeEntry("2025-03-03", 1.4),
	}

	grouped := GroupByDay(entries)

	var groupedTotal float64
	var groupedCount int
	for _, bucket := range grouped {
		groupedTotal += SumTotals(bucket)
		groupedCount += len(bucket)
	}

	if groupedCount != len(entries) {
		t.Errorf("grouped entry count = %d, want %d", groupedCount, len(entries))
	}
	if flat := SumTotals(entries); math.Abs(groupedTotal-flat) > 1e-9 {
		t.Errorf("grouped total = %v, flat total = %v", groupedTotal, flat)
	}
}

func TestGroupByDayEmpty(t *testing.T) {
	if grouped := GroupByDay(nil); len(grouped) != 0 {
		t.Errorf("expected empty grouping, got %v", grouped)
	}
}

func TestCategoryTotals(t *testing.T) {
	withItems := makeEntry("2025-03-01", 20)
	withItems.FoodItems = []*entities.FoodEntryItem{
		{Name: "rice", Quantity: 1, Carbon: 4.5},
		{Name: "milk", Quantity: 2, Carbon: 6.4},
	}
	withItems.ShoppingItems = []*entities.ShoppingEntryItem{
		{Name: "t-shirt", Carbon: 2.1},
	}
	withItems.TravelItems = []*entities.TravelEntryItem{
		{Vehicle: "bus", DistanceKM: 12, Carbon: 1.3},
	}
	bare := makeEntry("2025-03-02", 3)

	totals := CategoryTotals([]*entities.CarbonEntry{withItems, bare})

	if math.Abs(totals.Food-10.9) > 1e-9 {
		t.Errorf("food total = %v, want 10.9", totals.Food)
	}
	if math.Abs(totals.Shopping-2.1) > 1e-9 {
		t.Errorf("shopping total = %v, want 2.1", totals.Shopping)
	}
	if math.Abs(totals.Travel-1.3) > 1e-9 {
		t.Errorf("travel total = %v, want 1.3", totals.Travel)
	}

	// Category sums are independent of TotalCarbon; both merely have to be
	// non-negative.
	if totals.Food < 0 || totals.Shopping < 0 || totals.Travel < 0 {
		t.Error("category totals must be non-negative")
	}
	if SumTotals([]*entities.CarbonEntry{withItems, bare}) < 0 {
		t.Error("entry totals must be non-negative")
	}
}

func TestCategoryTotalsNoItems(t *testing.T) {
	totals := CategoryTotals([]*entities.CarbonEntry{makeEntry("2025-03-01", 5)})
	if totals.Food != 0 || totals.Shopping != 0 || totals.Travel != 0 {
		t.Errorf("expected zero totals for itemless entries, got %+v", totals)
	}
}
