package persistent

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/avmetrik/Metadata-Extractor/internal/entity"
	"github.com/avmetrik/Metadata-Extractor/pkg/postgres"
	"github.com/avmetrik/Metadata-Extractor/pkg/types/errs"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const (
	// Table
	extractionsTable = "extractions"

	// Columns
	idColumn          = "id"
	bucketColumn      = "bucket"
	objectKeyColumn   = "object_key"
	metadataKeyColumn = "metadata_key"
	contentTypeColumn = "content_type"
	sizeColumn        = "size"
	statusColumn      = "status"
	detailColumn      = "detail"
	createdAtColumn   = "created_at"
)

type JournalRepo struct {
	*postgres.Postgres
}

func NewJournalRepo(pg *postgres.Postgres) *JournalRepo {
	return &JournalRepo{pg}
}

func (r *JournalRepo) Create(ctx context.Context, extraction *entity.Extraction) error {
	sql, args, err := r.Builder.
		Insert(extractionsTable).
		Columns(
			idColumn,
			bucketColumn,
			objectKeyColumn,
			metadataKeyColumn,
			contentTypeColumn,
			sizeColumn,
			statusColumn,
			detailColumn,
			createdAtColumn,
		).
		Values(
			extraction.ID,
			extraction.Bucket,
			extraction.ObjectKey,
			extraction.MetadataKey,
			extraction.ContentType,
			extraction.Size,
			extraction.Status,
			extraction.Detail,
			extraction.CreatedAt,
		).ToSql()
	if err != nil {
		return fmt.Errorf("JournalRepo - Create - r.Builder.ToSql: %w", err)
	}

	// Pool / Tx
	executor := r.GetExecutor(ctx)

	_, err = executor.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("JournalRepo - Create - executor.Exec: %w", err)
	}

	return nil
}

func (r *JournalRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Extraction, error) {
	sql, args, err := r.Builder.
		Select(
			idColumn,
			bucketColumn,
			objectKeyColumn,
			metadataKeyColumn,
			contentTypeColumn,
			sizeColumn,
			statusColumn,
			detailColumn,
			createdAtColumn,
		).
		From(extractionsTable).
		Where(squirrel.Eq{idColumn: id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("JournalRepo - GetByID - r.Builder.ToSql: %w", err)
	}

	executor := r.GetExecutor(ctx)

	var extraction entity.Extraction
	err = executor.QueryRow(ctx, sql, args...).Scan(
		&extraction.ID,
		&extraction.Bucket,
		&extraction.ObjectKey,
		&extraction.MetadataKey,
		&extraction.ContentType,
		&extraction.Size,
		&extraction.Status,
		&extraction.Detail,
		&extraction.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("JournalRepo - GetByID: %w", errs.ErrRecordNotFound)
		}
		return nil, fmt.Errorf("JournalRepo - GetByID - executor.QueryRow: %w", err)
	}

	return &extraction, nil
}

func (r *JournalRepo) ListRecent(ctx context.Context, limit int) ([]*entity.Extraction, error) {
	sql, args, err := r.Builder.
		Select(
			idColumn,
			bucketColumn,
			objectKeyColumn,
			metadataKeyColumn,
			contentTypeColumn,
			sizeColumn,
			statusColumn,
			detailColumn,
			createdAtColumn,
		).
		From(extractionsTable).
		OrderBy(createdAtColumn + " DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("JournalRepo - ListRecent - r.Builder.ToSql: %w", err)
	}

	executor := r.GetExecutor(ctx)

	rows, err := executor.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("JournalRepo - ListRecent - executor.Query: %w", err)
	}
	defer rows.Close()

	extractions := make([]*entity.Extraction, 0, limit)
	for rows.Next() {
		var extraction entity.Extraction
		err = rows.Scan(
			&extraction.ID,
			&extraction.Bucket,
			&extraction.ObjectKey,
			&extraction.MetadataKey,
			&extraction.ContentType,
			&extraction.Size,
			&extraction.Status,
			&extraction.Detail,
			&extraction.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("JournalRepo - ListRecent - rows.Scan: %w", err)
		}
		extractions = append(extractions, &extraction)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("JournalRepo - ListRecent - rows.Err: %w", err)
	}

	return extractions, nil
}

func (r *JournalRepo) Delete(ctx context.Context, id uuid.UUID) error {
	sql, args, err := r.Builder.
		Delete(extractionsTable).
		Where(squirrel.Eq{idColumn: id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("JournalRepo - Delete - r.Builder.ToSql: %w", err)
	}

	executor := r.GetExecutor(ctx)

	tag, err := executor.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("JournalRepo - Delete - executor.Exec: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("JournalRepo - Delete: %w", errs.ErrRecordNotFound)
	}

	return nil
}
