package v1

import (
	"github.com/avmetrik/Metadata-Extractor/internal/usecase"
	"github.com/avmetrik/Metadata-Extractor/pkg/logger"
)

type V1 struct {
	ext    usecase.ExtractUseCase
	logger logger.Interface
}
