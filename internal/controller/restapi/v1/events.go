package v1

import (
	"time"

	"github.com/avmetrik/Metadata-Extractor/internal/metrics"
	"github.com/gofiber/fiber/v2"
)

// @Summary  	Handle upload notification
// @Description Accepts a bucket-notification envelope and runs the metadata extraction for its first record
// @Tags 		events
// @Accept 		json
// @Produce 	json
// @Param 		event body dto.UploadEvent true "Bucket notification"
// @Success 	200 {string} string "message + metadata"
// @Failure 	500 {string} string "message + error"
// @Router 		/v1/events [post]
func (r *V1) handleUploadEvent(ctx *fiber.Ctx) error {
	started := time.Now()

	result := r.ext.Extract(ctx.UserContext(), ctx.Body())

	metrics.ObserveExtraction(result.StatusCode, time.Since(started))

	ctx.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	return ctx.Status(result.StatusCode).SendString(result.Body)
}
