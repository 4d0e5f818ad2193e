package imageprobe

import (
	"context"
	"fmt"

	"github.com/avmetrik/Metadata-Extractor/internal/dto"
	"github.com/avmetrik/Metadata-Extractor/internal/infrastructure"
)

type ImageProbeUseCase struct {
	inspector infrastructure.ImageInspector
}

func New(inspector infrastructure.ImageInspector) *ImageProbeUseCase {
	return &ImageProbeUseCase{inspector}
}

func (uc *ImageProbeUseCase) Probe(ctx context.Context, path string) (dto.ProbeResult, error) {
	probe, err := uc.inspector.Probe(ctx, path)
	if err != nil {
		return dto.ProbeResult{}, fmt.Errorf("ImageProbeUseCase - Probe: %w", err)
	}

	return probe, nil
}

func (uc *ImageProbeUseCase) Thumbnail(ctx context.Context, path string) ([]byte, error) {
	thumb, err := uc.inspector.Thumbnail(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("ImageProbeUseCase - Thumbnail: %w", err)
	}

	return thumb, nil
}
