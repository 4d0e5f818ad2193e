package repo

import (
	"context"
	"io"

	"github.com/avmetrik/Metadata-Extractor/internal/dto"
	"github.com/avmetrik/Metadata-Extractor/internal/entity"
	"github.com/google/uuid"
)

type (
	// ObjectRepo is the object-storage surface of the extractor. The bucket
	// comes from the upload notification, so every call takes it explicitly.
	ObjectRepo interface {
		Head(ctx context.Context, bucket, key string) (dto.ObjectHead, error)
		Download(ctx context.Context, bucket, key string) (io.ReadCloser, error)
		DownloadToFile(ctx context.Context, bucket, key, path string) (int64, error)
		UploadBytes(ctx context.Context, bucket, key string, data []byte, contentType string) error
		Delete(ctx context.Context, bucket, key string) error
	}

	JournalRepo interface {
		Create(ctx context.Context, extraction *entity.Extraction) error
		GetByID(ctx context.Context, id uuid.UUID) (*entity.Extraction, error)
		ListRecent(ctx context.Context, limit int) ([]*entity.Extraction, error)
		Delete(ctx context.Context, id uuid.UUID) error
	}

	OutboxRepo interface {
		Create(ctx context.Context, event *entity.OutboxEvent) error
		GetPendingEvents(ctx context.Context, limit, maxRetries int) ([]*entity.OutboxEvent, error)
		MarkAsProcessingBatch(ctx context.Context, IDs uuid.UUIDs) error
		MarkAsProcessedBatch(ctx context.Context, IDs uuid.UUIDs) error
		IncrementRetryCountBatch(ctx context.Context, IDs uuid.UUIDs) error
		MarkMaxRetriesAsFailed(ctx context.Context, maxRetries int) error
		DeleteOldProcessedAndFailed(ctx context.Context) (int64, error)
	}

	Transactor interface {
		WithinTransaction(ctx context.Context, f func(ctx context.Context) error) error
	}
)
