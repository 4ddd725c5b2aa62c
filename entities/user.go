package entities

import (
	"github.com/google/uuid"
)

type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Name     string    `json:"name"`
	Email    string    `gorm:"uniqueIndex" json:"email"`
	Password string    `json:"-"`

	// Append-only; history queries re-sort by UploadedAt.
	CarbonEntries []*CarbonEntry `gorm:"foreignKey:UserID" json:"carbon_entries,omitempty"`
	Timestamp
}
