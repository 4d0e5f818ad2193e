package extract

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/avmetrik/Metadata-Extractor/internal/dto"
	"github.com/avmetrik/Metadata-Extractor/internal/entity"
	"github.com/avmetrik/Metadata-Extractor/internal/repo"
	"github.com/avmetrik/Metadata-Extractor/internal/usecase"
	"github.com/avmetrik/Metadata-Extractor/pkg/logger"
	"github.com/google/uuid"
)

const _metadataContentType = "application/json"

type ExtractUseCase struct {
	objects    repo.ObjectRepo
	journal    repo.JournalRepo
	outboxRepo repo.OutboxRepo
	transactor repo.Transactor
	probe      usecase.ImageProbeUseCase

	scratchDir string
	thumbnails bool

	logger logger.Interface
}

func New(
	objects repo.ObjectRepo,
	journal repo.JournalRepo,
	outboxRepo repo.OutboxRepo,
	transactor repo.Transactor,
	probe usecase.ImageProbeUseCase,
	scratchDir string,
	thumbnails bool,
	l logger.Interface,
) *ExtractUseCase {
	return &ExtractUseCase{
		objects:    objects,
		journal:    journal,
		outboxRepo: outboxRepo,
		transactor: transactor,
		probe:      probe,
		scratchDir: scratchDir,
		thumbnails: thumbnails,
		logger:     l,
	}
}

// Extract handles one upload notification: head lookup, optional image
// probe, artifact write. Head and artifact failures are fatal and yield a
// 500 document; probe failures degrade into the imageError field. The
// journal row, completion event and thumbnail are best-effort extras and
// never change the outcome.
func (uc *ExtractUseCase) Extract(ctx context.Context, event []byte) dto.Result {
	// 1. parse the notification
	notice, err := dto.ParseUploadEvent(event)
	if err != nil {
		uc.logger.Error(err, "ExtractUseCase - Extract - dto.ParseUploadEvent")

		return dto.NewErrorResult(err)
	}

	uc.logger.Info("processing file: %s from bucket: %s", notice.Key, notice.Bucket)

	// 2. head object
	head, err := uc.objects.Head(ctx, notice.Bucket, notice.Key)
	if err != nil {
		uc.logger.Error(err, "ExtractUseCase - Extract - uc.objects.Head")
		uc.journalFailure(ctx, notice, "", err)

		return dto.NewErrorResult(err)
	}

	// 3. build the record
	metadata := buildMetadata(notice, head)

	// 4. image probe, degraded on failure
	var thumb []byte
	if isImage(notice.Key) {
		thumb = uc.probeImage(ctx, notice, &metadata)
	}

	// 5. render and store the artifact
	doc, err := metadata.Document()
	if err != nil {
		uc.logger.Error(err, "ExtractUseCase - Extract - metadata.Document")
		uc.journalFailure(ctx, notice, metadata.ContentType, err)

		return dto.NewErrorResult(err)
	}

	artifactKey := metadataKey(notice.Key)

	err = uc.objects.UploadBytes(ctx, notice.Bucket, artifactKey, doc, _metadataContentType)
	if err != nil {
		uc.logger.Error(err, "ExtractUseCase - Extract - uc.objects.UploadBytes")
		uc.journalFailure(ctx, notice, metadata.ContentType, err)

		return dto.NewErrorResult(err)
	}

	uc.logger.Info("metadata saved to: %s", artifactKey)

	// 6. journal row + completion event, then the optional thumbnail
	uc.journalSuccess(ctx, notice, metadata, artifactKey)

	if thumb != nil {
		uc.storeThumbnail(ctx, notice, thumb)
	}

	return dto.NewSuccessResult(metadata)
}

// probeImage downloads the object to a scratch file and fills in the image
// fields of metadata. Any failure is recorded as imageError. When
// thumbnails are enabled and the probe succeeded, the rendered thumbnail
// bytes are returned for storing after the artifact write.
func (uc *ExtractUseCase) probeImage(ctx context.Context, notice dto.UploadNotice, metadata *entity.UploadMetadata) []byte {
	f, err := os.CreateTemp(uc.scratchDir, "upload-*")
	if err != nil {
		uc.logger.Warn("could not extract image dimensions: %v", err)
		metadata.ImageError = err.Error()

		return nil
	}

	scratch := f.Name()
	f.Close()
	defer os.Remove(scratch)

	_, err = uc.objects.DownloadToFile(ctx, notice.Bucket, notice.Key, scratch)
	if err != nil {
		uc.logger.Warn("could not extract image dimensions: %v", err)
		metadata.ImageError = err.Error()

		return nil
	}

	probe, err := uc.probe.Probe(ctx, scratch)
	if err != nil {
		uc.logger.Warn("could not extract image dimensions: %v", err)
		metadata.ImageError = err.Error()

		return nil
	}

	metadata.ImageWidth = &probe.Width
	metadata.ImageHeight = &probe.Height
	metadata.ImageFormat = probe.Format
	metadata.ImageMode = probe.Mode

	if !uc.thumbnails {
		return nil
	}

	thumb, err := uc.probe.Thumbnail(ctx, scratch)
	if err != nil {
		uc.logger.Error(err, "ExtractUseCase - probeImage - uc.probe.Thumbnail")

		return nil
	}

	return thumb
}

func (uc *ExtractUseCase) storeThumbnail(ctx context.Context, notice dto.UploadNotice, thumb []byte) {
	key := thumbnailKey(notice.Key)

	err := uc.objects.UploadBytes(ctx, notice.Bucket, key, thumb, "image/jpeg")
	if err != nil {
		uc.logger.Error(err, "ExtractUseCase - storeThumbnail - uc.objects.UploadBytes")

		return
	}

	uc.logger.Info("thumbnail saved to: %s", key)
}

// journalSuccess records the extraction and stages its completion event in
// one transaction. Failures are logged only.
func (uc *ExtractUseCase) journalSuccess(ctx context.Context, notice dto.UploadNotice, metadata entity.UploadMetadata, artifactKey string) {
	extraction := &entity.Extraction{
		ID:          uuid.New(),
		Bucket:      notice.Bucket,
		ObjectKey:   notice.Key,
		MetadataKey: &artifactKey,
		ContentType: metadata.ContentType,
		Size:        notice.Size,
		Status:      entity.Processed,
		CreatedAt:   time.Now(),
	}

	if metadata.ImageError != "" {
		detail := metadata.ImageError
		extraction.Detail = &detail
	}

	err := uc.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := uc.journal.Create(ctx, extraction); err != nil {
			return fmt.Errorf("ExtractUseCase - journalSuccess - uc.journal.Create: %w", err)
		}

		event, err := createOutboxEvent(extraction)
		if err != nil {
			return fmt.Errorf("ExtractUseCase - journalSuccess - createOutboxEvent: %w", err)
		}
		if err := uc.outboxRepo.Create(ctx, event); err != nil {
			return fmt.Errorf("ExtractUseCase - journalSuccess - uc.outboxRepo.Create: %w", err)
		}

		return nil
	})
	if err != nil {
		uc.logger.Error(err, "ExtractUseCase - journalSuccess - uc.transactor.WithinTransaction")
	}
}

// journalFailure records a failed extraction. No completion event is
// staged. Failures are logged only.
func (uc *ExtractUseCase) journalFailure(ctx context.Context, notice dto.UploadNotice, contentType string, cause error) {
	detail := cause.Error()

	extraction := &entity.Extraction{
		ID:          uuid.New(),
		Bucket:      notice.Bucket,
		ObjectKey:   notice.Key,
		ContentType: contentType,
		Size:        notice.Size,
		Status:      entity.Failed,
		Detail:      &detail,
		CreatedAt:   time.Now(),
	}

	err := uc.journal.Create(ctx, extraction)
	if err != nil {
		uc.logger.Error(err, "ExtractUseCase - journalFailure - uc.journal.Create")
	}
}

func (uc *ExtractUseCase) GetExtraction(ctx context.Context, id uuid.UUID) (*entity.Extraction, error) {
	extraction, err := uc.journal.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("ExtractUseCase - GetExtraction - uc.journal.GetByID: %w", err)
	}

	return extraction, nil
}

func (uc *ExtractUseCase) ListExtractions(ctx context.Context, limit int) ([]*entity.Extraction, error) {
	extractions, err := uc.journal.ListRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("ExtractUseCase - ListExtractions - uc.journal.ListRecent: %w", err)
	}

	return extractions, nil
}

func (uc *ExtractUseCase) DeleteExtraction(ctx context.Context, id uuid.UUID) error {
	// 1. fetch the row for its artifact key
	extraction, err := uc.journal.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("ExtractUseCase - DeleteExtraction - uc.journal.GetByID: %w", err)
	}

	// 2. delete the row first
	err = uc.journal.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("ExtractUseCase - DeleteExtraction - uc.journal.Delete: %w", err)
	}

	// 3. drop the artifact, best-effort
	if extraction.MetadataKey != nil {
		err = uc.objects.Delete(ctx, extraction.Bucket, *extraction.MetadataKey)
		if err != nil {
			uc.logger.Warn("failed to delete key=%s, error=%v", *extraction.MetadataKey, err)
		}
	}

	return nil
}

func (uc *ExtractUseCase) DownloadMetadata(ctx context.Context, bucket, key string) (io.ReadCloser, error) {
	body, err := uc.objects.Download(ctx, bucket, metadataKey(key))
	if err != nil {
		return nil, fmt.Errorf("ExtractUseCase - DownloadMetadata - uc.objects.Download: %w", err)
	}

	return body, nil
}

func (uc *ExtractUseCase) GetPendingEvents(ctx context.Context, limit, maxRetries int) ([]*entity.OutboxEvent, error) {
	events, err := uc.outboxRepo.GetPendingEvents(ctx, limit, maxRetries)
	if err != nil {
		return nil, fmt.Errorf("ExtractUseCase - GetPendingEvents - uc.outboxRepo.GetPendingEvents: %w", err)
	}

	return events, nil
}

func (uc *ExtractUseCase) MarkAsProcessingBatch(ctx context.Context, events []*entity.OutboxEvent) error {
	var IDs uuid.UUIDs

	for _, event := range events {
		IDs = append(IDs, event.ID)
	}

	err := uc.outboxRepo.MarkAsProcessingBatch(ctx, IDs)
	if err != nil {
		return fmt.Errorf("ExtractUseCase - MarkAsProcessingBatch - uc.outboxRepo.MarkAsProcessingBatch: %w", err)
	}

	return nil
}

func (uc *ExtractUseCase) MarkAsProcessedBatch(ctx context.Context, events []*entity.OutboxEvent) error {
	var IDs uuid.UUIDs

	for _, event := range events {
		IDs = append(IDs, event.ID)
	}

	err := uc.outboxRepo.MarkAsProcessedBatch(ctx, IDs)
	if err != nil {
		return fmt.Errorf("ExtractUseCase - MarkAsProcessedBatch - uc.outboxRepo.MarkAsProcessedBatch: %w", err)
	}

	return nil
}

func (uc *ExtractUseCase) IncrementRetryCountBatch(ctx context.Context, events []*entity.OutboxEvent) error {
	var IDs uuid.UUIDs

	for _, event := range events {
		IDs = append(IDs, event.ID)
	}

	err := uc.outboxRepo.IncrementRetryCountBatch(ctx, IDs)
	if err != nil {
		return fmt.Errorf("ExtractUseCase - IncrementRetryCountBatch - uc.outboxRepo.IncrementRetryCountBatch: %w", err)
	}

	return nil
}

func (uc *ExtractUseCase) MarkMaxRetriesAsFailed(ctx context.Context, maxRetries int) error {
	err := uc.outboxRepo.MarkMaxRetriesAsFailed(ctx, maxRetries)
	if err != nil {
		return fmt.Errorf("ExtractUseCase - MarkMaxRetriesAsFailed - uc.outboxRepo.MarkMaxRetriesAsFailed: %w", err)
	}

	return nil
}

func (uc *ExtractUseCase) CleanupOutbox(ctx context.Context) error {
	count, err := uc.outboxRepo.DeleteOldProcessedAndFailed(ctx)
	if err != nil {
		return fmt.Errorf("ExtractUseCase - CleanupOutbox - uc.outboxRepo.DeleteOldProcessedAndFailed: %w", err)
	}

	if count > 0 {
		uc.logger.Info("deleted old events, count = %d", count)
	}

	return nil
}
