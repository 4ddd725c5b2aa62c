package entities

import (
	"time"

	"github.com/google/uuid"
)

// CarbonEntry is one processed receipt upload. Entries are never mutated
// after creation, only appended to the owning user's history.
type CarbonEntry struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID uuid.UUID `json:"user_id"`

	UploadedAt time.Time `json:"uploaded_at"`
	// EntryDate is the calendar-day grouping key (YYYY-MM-DD), computed once
	// at creation time from UploadedAt so historical groupings stay stable.
	EntryDate   string  `json:"entry_date"`
	TotalCarbon float64 `json:"total_carbon"`

	FoodItems     []*FoodEntryItem     `gorm:"foreignKey:CarbonEntryID" json:"food,omitempty"`
	ShoppingItems []*ShoppingEntryItem `gorm:"foreignKey:CarbonEntryID" json:"shopping,omitempty"`
	TravelItems   []*TravelEntryItem   `gorm:"foreignKey:CarbonEntryID" json:"travel,omitempty"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
	Timestamp
}

type FoodEntryItem struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	CarbonEntryID uuid.UUID `json:"carbon_entry_id"`
	Name          string    `json:"name"`
	Quantity      float64   `json:"quantity"`
	Unit          string    `gorm:"default:kg" json:"unit"`
	Carbon        float64   `json:"carbon"`
}

type ShoppingEntryItem struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	CarbonEntryID uuid.UUID `json:"carbon_entry_id"`
	Name          string    `json:"name"`
	Carbon        float64   `json:"carbon"`
}

type TravelEntryItem struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	CarbonEntryID uuid.UUID `json:"carbon_entry_id"`
	Vehicle       string    `json:"vehicle"`
	DistanceKM    float64   `json:"distance_km"`
	Carbon        float64   `json:"carbon"`
}
