package extract

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/avmetrik/Metadata-Extractor/internal/dto"
	"github.com/avmetrik/Metadata-Extractor/internal/entity"
	"github.com/google/uuid"
)

var imageExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".bmp", ".webp"}

func buildMetadata(notice dto.UploadNotice, head dto.ObjectHead) entity.UploadMetadata {
	contentType := head.ContentType
	if contentType == "" {
		contentType = "unknown"
	}

	return entity.UploadMetadata{
		FileName:         notice.Key,
		BucketName:       notice.Bucket,
		FileSize:         notice.Size,
		FileSizeReadable: formatBytes(notice.Size),
		ContentType:      contentType,
		LastModified:     head.LastModified.UTC().Format(time.RFC3339),
		ETag:             head.ETag,
		UploadTime:       time.Now().UTC().Format(time.RFC3339),
		ProcessedBy:      entity.ProcessedBy,
	}
}

func formatBytes(size int64) string {
	s := float64(size)

	for _, unit := range []string{"B", "KB", "MB", "GB", "TB"} {
		if s < 1024.0 {
			return fmt.Sprintf("%.2f %s", s, unit)
		}
		s /= 1024.0
	}

	return fmt.Sprintf("%.2f PB", s)
}

func isImage(key string) bool {
	lower := strings.ToLower(key)

	for _, ext := range imageExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}

	return false
}

// trimExt drops the extension of the last path element. A leading-dot
// basename like ".env" has no extension.
func trimExt(key string) string {
	ext := filepath.Ext(key)
	if ext == "" || ext == filepath.Base(key) {
		return key
	}

	return strings.TrimSuffix(key, ext)
}

func metadataKey(key string) string {
	return "metadata/" + trimExt(key) + "_metadata.json"
}

func thumbnailKey(key string) string {
	return "thumbnails/" + trimExt(key) + "_thumb.jpg"
}

func createOutboxEvent(extraction *entity.Extraction) (*entity.OutboxEvent, error) {
	payload := dto.ExtractionCompleted{
		ExtractionID: extraction.ID,
		Bucket:       extraction.Bucket,
		ObjectKey:    extraction.ObjectKey,
		MetadataKey:  *extraction.MetadataKey,
		Size:         extraction.Size,
		ContentType:  extraction.ContentType,
	}

	b, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("createOutboxEvent - json.Marshal: %w", err)
	}

	return &entity.OutboxEvent{
		ID:          uuid.New(),
		AggregateID: extraction.ID,
		Payload:     b,
		Status:      entity.Pending,
		CreatedAt:   time.Now(),
		RetryCount:  0,
	}, nil
}
