package carbon

import (
	"testing"

	"Receipt-Carbon-Backend/domain"
)

func TestParseExtractedItems(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    []domain.ExtractedItem
		wantErr bool
	}{
		{
			name: "plain json array",
			raw:  `[{"name": "Pongal", "quantity": 2}, {"name": "Vada", "quantity": 3}]`,
			want: []domain.ExtractedItem{{Name: "Pongal", Quantity: 2}, {Name: "Vada", Quantity: 3}},
		},
		{
			name: "json fenced in markdown",
			raw:  "```json\n[{\"name\": \"Milk\", \"quantity\": 1}]\n```",
			want: []domain.ExtractedItem{{Name: "Milk", Quantity: 1}},
		},
		{
			name: "bare fence",
			raw:  "```\n[{\"name\": \"Bread\", \"quantity\": 2}]\n```",
			want: []domain.ExtractedItem{{Name: "Bread", Quantity: 2}},
		},
		{
			name: "array wrapped in prose",
			raw:  "Here are the items:\n[{\"name\": \"Rice\", \"quantity\": 1}]\nHope that helps!",
			want: []domain.ExtractedItem{{Name: "Rice", Quantity: 1}},
		},
		{
			name: "zero quantity repaired to one",
			raw:  `[{"name": "Ghee", "quantity": 0}]`,
			want: []domain.ExtractedItem{{Name: "Ghee", Quantity: 1}},
		},
		{
			name: "blank names dropped",
			raw:  `[{"name": "  ", "quantity": 2}, {"name": "Apple", "quantity": 4}]`,
			want: []domain.ExtractedItem{{Name: "Apple", Quantity: 4}},
		},
		{
			name: "empty array",
			raw:  `[]`,
			want: []domain.ExtractedItem{},
		},
		{
			name:    "free prose with no array",
			raw:     "I could not find any food items on this receipt.",
			wantErr: true,
		},
		{
			name:    "malformed json",
			raw:     `[{"name": "Milk", "quantity": }]`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseExtractedItems(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected parse error, got %+v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %d items, want %d: %+v", len(got), len(tt.want), got)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("item %d = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestSummarizeItems(t *testing.T) {
	items := []domain.ExtractedItem{
		{Name: "Pongal", Quantity: 2},
		{Name: "Filter Coffee", Quantity: 1.5},
	}
	want := "Pongal - 2\nFilter Coffee - 1.5"
	if got := summarizeItems(items); got != want {
		t.Errorf("summarizeItems = %q, want %q", got, want)
	}

	if got := summarizeItems(nil); got != "" {
		t.Errorf("summarizeItems(nil) = %q, want empty", got)
	}
}
