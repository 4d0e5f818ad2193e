package dto

import "github.com/google/uuid"

// ExtractionCompleted is the payload of the completion event staged in the
// outbox for every successful extraction.
type ExtractionCompleted struct {
	ExtractionID uuid.UUID `json:"extraction_id"`
	Bucket       string    `json:"bucket"`
	ObjectKey    string    `json:"object_key"`
	MetadataKey  string    `json:"metadata_key"`
	Size         int64     `json:"size"`
	ContentType  string    `json:"content_type"`
}
