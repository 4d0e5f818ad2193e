package infrastructure

import (
	"context"

	"github.com/avmetrik/Metadata-Extractor/internal/dto"
	"github.com/avmetrik/Metadata-Extractor/internal/entity"
)

type (
	EventsSender interface {
		SendEvents(ctx context.Context, events []*entity.OutboxEvent) error
		Close() error
	}

	ImageInspector interface {
		Probe(ctx context.Context, path string) (dto.ProbeResult, error)
		Thumbnail(ctx context.Context, path string) ([]byte, error)
	}
)
