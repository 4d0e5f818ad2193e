package dto

import (
	"encoding/json"
	"net/http"

	"github.com/avmetrik/Metadata-Extractor/internal/entity"
)

const (
	_successMessage = "File processed successfully"
	_errorMessage   = "Error processing file"
)

// Result is the outcome document of one extraction: a status code plus a
// JSON-encoded body. The webhook returns it verbatim; the Kafka controller
// logs the body on failure.
type Result struct {
	StatusCode int    `json:"statusCode"`
	Body       string `json:"body"`
}

type successBody struct {
	Message  string                `json:"message"`
	Metadata entity.UploadMetadata `json:"metadata"`
}

type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func NewSuccessResult(metadata entity.UploadMetadata) Result {
	body, _ := json.Marshal(successBody{
		Message:  _successMessage,
		Metadata: metadata,
	})

	return Result{
		StatusCode: http.StatusOK,
		Body:       string(body),
	}
}

func NewErrorResult(err error) Result {
	body, _ := json.Marshal(errorBody{
		Message: _errorMessage,
		Error:   err.Error(),
	})

	return Result{
		StatusCode: http.StatusInternalServerError,
		Body:       string(body),
	}
}
