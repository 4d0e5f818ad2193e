package entity

import (
	"time"

	"github.com/google/uuid"
)

// Extraction is one journal row: the outcome of handling a single upload
// notification.
type Extraction struct {
	ID uuid.UUID `json:"id"`

	Bucket      string  `json:"bucket"`
	ObjectKey   string  `json:"object_key"`
	MetadataKey *string `json:"metadata_key,omitempty"`

	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
	Status      Status `json:"status"` // processed, failed

	Detail *string `json:"detail,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
