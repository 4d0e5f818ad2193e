package v1

import (
	"github.com/avmetrik/Metadata-Extractor/internal/usecase"
	"github.com/avmetrik/Metadata-Extractor/pkg/logger"
	"github.com/gofiber/fiber/v2"
)

func NewExtractionRoutes(apiV1Group fiber.Router, ext usecase.ExtractUseCase, l logger.Interface) {
	r := &V1{ext: ext, logger: l}

	{
		// Trigger
		apiV1Group.Post("/events", r.handleUploadEvent)

		// Journal
		apiV1Group.Get("/extractions", r.listExtractions)
		apiV1Group.Get("/extractions/:id", r.getExtraction)
		apiV1Group.Delete("/extractions/:id", r.deleteExtraction)

		// Artifacts
		apiV1Group.Get("/metadata", r.getMetadata)
	}
}
