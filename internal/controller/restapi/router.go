package restapi

import (
	"github.com/avmetrik/Metadata-Extractor/config"
	v1 "github.com/avmetrik/Metadata-Extractor/internal/controller/restapi/v1"
	"github.com/avmetrik/Metadata-Extractor/internal/metrics"
	"github.com/avmetrik/Metadata-Extractor/internal/usecase"
	"github.com/avmetrik/Metadata-Extractor/pkg/logger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
)

// @title Upload Metadata Extractor
// @version 1.0.0
// @host localhost:8080
// @BasePath /v1
func NewRouter(app *fiber.App, cfg *config.Config, ext usecase.ExtractUseCase, l logger.Interface, db, store Pinger) {
	// Swagger
	if cfg.Swagger.Enabled {
		app.Get("/swagger/*", swagger.HandlerDefault)
	}

	// Metrics
	if cfg.Metrics.Enabled {
		app.Use(metrics.Middleware())
		metrics.Register(app, "/metrics")
	}

	// Probes
	newHealthRoutes(app, db, store)

	// Routers
	apiV1Group := app.Group("/v1")
	{
		v1.NewExtractionRoutes(apiV1Group, ext, l)
	}
}
