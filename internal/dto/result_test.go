package dto

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/avmetrik/Metadata-Extractor/internal/entity"
)

func TestNewSuccessResult(t *testing.T) {
	metadata := entity.UploadMetadata{
		FileName:    "docs/report.pdf",
		BucketName:  "uploads",
		FileSize:    2048,
		ProcessedBy: entity.ProcessedBy,
	}

	result := NewSuccessResult(metadata)

	if result.StatusCode != 200 {
		t.Fatalf("unexpected status code: %d", result.StatusCode)
	}

	var body struct {
		Message  string                `json:"message"`
		Metadata entity.UploadMetadata `json:"metadata"`
	}
	if err := json.Unmarshal([]byte(result.Body), &body); err != nil {
		t.Fatalf("body does not decode: %v", err)
	}
	if body.Message != "File processed successfully" {
		t.Fatalf("unexpected message: %s", body.Message)
	}
	if body.Metadata.FileName != metadata.FileName {
		t.Fatalf("metadata not embedded: %+v", body.Metadata)
	}
}

func TestNewErrorResult(t *testing.T) {
	result := NewErrorResult(errors.New("head lookup failed"))

	if result.StatusCode != 500 {
		t.Fatalf("unexpected status code: %d", result.StatusCode)
	}

	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal([]byte(result.Body), &body); err != nil {
		t.Fatalf("body does not decode: %v", err)
	}
	if body.Message != "Error processing file" {
		t.Fatalf("unexpected message: %s", body.Message)
	}
	if body.Error != "head lookup failed" {
		t.Fatalf("unexpected error: %s", body.Error)
	}
}

func TestResultDocumentShape(t *testing.T) {
	raw, err := json.Marshal(NewErrorResult(errors.New("boom")))
	if err != nil {
		t.Fatalf("marshal result: %v", err)
	}

	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("unmarshal result: %v", err)
	}

	if _, ok := doc["statusCode"]; !ok {
		t.Fatalf("missing statusCode field: %s", raw)
	}
	if _, ok := doc["body"].(string); !ok {
		t.Fatalf("body must be a JSON-encoded string: %s", raw)
	}
}
