package entities

import (
	"github.com/google/uuid"
)

// ReceiptImage records a stored receipt object. It is shared infrastructure,
// not owned by any user: the ObjectKey is a content digest, so identical
// uploads resolve to the same row regardless of uploader or filename.
type ReceiptImage struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	ObjectKey string    `gorm:"uniqueIndex" json:"object_key"`
	ImageURL  string    `json:"image_url"`
	// FileStem is the sanitized upload filename, kept for display only.
	FileStem string `json:"file_stem,omitempty"`

	Timestamp
}
