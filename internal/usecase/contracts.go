package usecase

import (
	"context"
	"io"

	"github.com/avmetrik/Metadata-Extractor/internal/dto"
	"github.com/avmetrik/Metadata-Extractor/internal/entity"
	"github.com/google/uuid"
)

type (
	ExtractUseCase interface {
		// Extract handles one upload notification end to end and always
		// returns the outcome document, never an error.
		Extract(ctx context.Context, event []byte) dto.Result

		GetExtraction(ctx context.Context, id uuid.UUID) (*entity.Extraction, error)
		ListExtractions(ctx context.Context, limit int) ([]*entity.Extraction, error)
		DeleteExtraction(ctx context.Context, id uuid.UUID) error
		DownloadMetadata(ctx context.Context, bucket, key string) (io.ReadCloser, error)

		GetPendingEvents(ctx context.Context, limit, maxRetries int) ([]*entity.OutboxEvent, error)
		MarkAsProcessingBatch(ctx context.Context, events []*entity.OutboxEvent) error
		MarkAsProcessedBatch(ctx context.Context, events []*entity.OutboxEvent) error
		IncrementRetryCountBatch(ctx context.Context, events []*entity.OutboxEvent) error
		MarkMaxRetriesAsFailed(ctx context.Context, maxRetries int) error
		CleanupOutbox(ctx context.Context) error
	}

	ImageProbeUseCase interface {
		Probe(ctx context.Context, path string) (dto.ProbeResult, error)
		Thumbnail(ctx context.Context, path string) ([]byte, error)
	}
)
