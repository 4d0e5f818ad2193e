package dto

import (
	"encoding/json"
	"fmt"

	"github.com/avmetrik/Metadata-Extractor/pkg/types/errs"
)

type (
	// UploadEvent is the bucket-notification envelope emitted by
	// S3-compatible storage services.
	UploadEvent struct {
		Records []UploadRecord `json:"Records"`
	}

	UploadRecord struct {
		EventName   string `json:"eventName,omitempty"`
		EventSource string `json:"eventSource,omitempty"`
		S3          S3Data `json:"s3"`
	}

	S3Data struct {
		Bucket S3Bucket `json:"bucket"`
		Object S3Object `json:"object"`
	}

	S3Bucket struct {
		Name string `json:"name"`
	}

	S3Object struct {
		Key  string `json:"key"`
		Size int64  `json:"size"`
	}
)

// UploadNotice is the single record the extractor consumes.
type UploadNotice struct {
	Bucket string
	Key    string
	Size   int64
}

// ParseUploadEvent decodes a notification envelope and returns its first
// record. Events carry at most one upload per delivery here; extra records
// are ignored on purpose.
func ParseUploadEvent(data []byte) (UploadNotice, error) {
	var event UploadEvent

	err := json.Unmarshal(data, &event)
	if err != nil {
		return UploadNotice{}, fmt.Errorf("dto - ParseUploadEvent - json.Unmarshal: %w", err)
	}

	if len(event.Records) == 0 {
		return UploadNotice{}, fmt.Errorf("dto - ParseUploadEvent: %w", errs.ErrNoRecords)
	}

	record := event.Records[0]

	notice := UploadNotice{
		Bucket: record.S3.Bucket.Name,
		Key:    record.S3.Object.Key,
		Size:   record.S3.Object.Size,
	}

	if notice.Bucket == "" || notice.Key == "" || notice.Size < 0 {
		return UploadNotice{}, fmt.Errorf("dto - ParseUploadEvent: %w", errs.ErrBadRecord)
	}

	return notice, nil
}
