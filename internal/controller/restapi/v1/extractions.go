package v1

import (
	"errors"
	"net/http"

	"github.com/avmetrik/Metadata-Extractor/internal/controller/restapi/v1/response"
	"github.com/avmetrik/Metadata-Extractor/pkg/types/errs"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	_defaultListLimit = 20
	_maxListLimit     = 100
)

// @Summary 	List recent extractions
// @Description Returns journal rows, newest first
// @Tags 		extractions
// @Produce 	json
// @Param 		limit query int false "Max rows (default 20, max 100)"
// @Success 	200 {object} response.ExtractionList
// @Failure 	500 {object} response.Error "Internal"
// @Router 		/v1/extractions [get]
func (r *V1) listExtractions(ctx *fiber.Ctx) error {
	limit := ctx.QueryInt("limit", _defaultListLimit)
	if limit < 1 {
		limit = _defaultListLimit
	}
	if limit > _maxListLimit {
		limit = _maxListLimit
	}

	extractions, err := r.ext.ListExtractions(ctx.UserContext(), limit)
	if err != nil {
		r.logger.Error(err, "restapi - v1 - listExtractions")

		return errorResponse(ctx, http.StatusInternalServerError, "storage problems")
	}

	return ctx.JSON(response.ExtractionList{
		Extractions: extractions,
		Count:       len(extractions),
	})
}

// @Summary 	Get extraction
// @Description Returns one journal row by ID
// @Tags 		extractions
// @Produce 	json
// @Param 		id path string true "Extraction ID(uuid)"
// @Success 	200 {object} entity.Extraction
// @Failure 	400 {object} response.Error "Invalid ID"
// @Failure 	404 {object} response.Error "Extraction not found"
// @Failure 	500 {object} response.Error "Internal"
// @Router 		/v1/extractions/{id} [get]
func (r *V1) getExtraction(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "invalid id")
	}

	extraction, err := r.ext.GetExtraction(ctx.UserContext(), id)
	if err != nil {
		if errors.Is(err, errs.ErrRecordNotFound) {
			return errorResponse(ctx, http.StatusNotFound, "extraction not found")
		}
		r.logger.Error(err, "restapi - v1 - getExtraction")

		return errorResponse(ctx, http.StatusInternalServerError, "storage problems")
	}

	return ctx.JSON(extraction)
}

// @Summary 	Delete extraction
// @Description Deletes the journal row and its metadata artifact
// @Tags 		extractions
// @Param		id 	path	 string true "Extraction ID(uuid)"
// @Success		204 "Deleted"
// @Failure 	400 {object} response.Error "Invalid ID"
// @Failure 	404 {object} response.Error "Extraction not found"
// @Failure 	500 {object} response.Error "Internal"
// @Router 		/v1/extractions/{id} [delete]
func (r *V1) deleteExtraction(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "invalid id")
	}

	err = r.ext.DeleteExtraction(ctx.UserContext(), id)
	if err != nil {
		if errors.Is(err, errs.ErrRecordNotFound) {
			return errorResponse(ctx, http.StatusNotFound, "extraction not found")
		}
		r.logger.Error(err, "restapi - v1 - deleteExtraction")

		return errorResponse(ctx, http.StatusInternalServerError, "storage problems")
	}

	return ctx.SendStatus(http.StatusNoContent)
}

// @Summary 	Get metadata artifact
// @Description Streams the stored metadata document for an uploaded object
// @Tags 		extractions
// @Produce 	json
// @Param 		bucket query string true "Bucket name"
// @Param 		key	   query string true "Original object key"
// @Success 	200 {string} string "metadata document"
// @Failure 	400 {object} response.Error "Missing parameters"
// @Failure 	404 {object} response.Error "Artifact not found"
// @Failure 	500 {object} response.Error "Internal"
// @Router 		/v1/metadata [get]
func (r *V1) getMetadata(ctx *fiber.Ctx) error {
	bucket := ctx.Query("bucket")
	key := ctx.Query("key")

	if bucket == "" || key == "" {
		return errorResponse(ctx, http.StatusBadRequest, "bucket and key are required")
	}

	body, err := r.ext.DownloadMetadata(ctx.UserContext(), bucket, key)
	if err != nil {
		if errors.Is(err, errs.ErrRecordNotFound) {
			return errorResponse(ctx, http.StatusNotFound, "metadata not found")
		}
		r.logger.Error(err, "restapi - v1 - getMetadata")

		return errorResponse(ctx, http.StatusInternalServerError, "storage problems")
	}

	ctx.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	return ctx.SendStream(body)
}
