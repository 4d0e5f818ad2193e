package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/avmetrik/Metadata-Extractor/internal/dto"
	"github.com/avmetrik/Metadata-Extractor/internal/entity"
	"github.com/avmetrik/Metadata-Extractor/pkg/types/errs"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleUploadEvent(t *testing.T) {
	fake := &fakeExtractUseCase{
		result: dto.Result{StatusCode: 200, Body: `{"message":"File processed successfully"}`},
	}
	app := newTestApp(fake)

	event := []byte(`{"Records":[{"s3":{"bucket":{"name":"uploads"},"object":{"key":"a.txt","size":1}}}]}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/events", bytes.NewReader(event))

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentType), fiber.MIMEApplicationJSON)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, fake.result.Body, string(body))
	assert.Equal(t, event, fake.gotEvent)
}

func TestHandleUploadEventFailure(t *testing.T) {
	fake := &fakeExtractUseCase{
		result: dto.Result{StatusCode: 500, Body: `{"message":"Error processing file","error":"head lookup failed"}`},
	}
	app := newTestApp(fake)

	req := httptest.NewRequest(http.MethodPost, "/v1/events", strings.NewReader(`{"Records":[]}`))

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, fake.result.Body, string(body))
}

func TestListExtractions(t *testing.T) {
	fake := &fakeExtractUseCase{
		extractions: []*entity.Extraction{
			{ID: uuid.New(), Bucket: "uploads", ObjectKey: "a.txt"},
			{ID: uuid.New(), Bucket: "uploads", ObjectKey: "b.txt"},
		},
	}
	app := newTestApp(fake)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/v1/extractions?limit=5", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 5, fake.gotLimit)

	var list struct {
		Extractions []*entity.Extraction `json:"extractions"`
		Count       int                  `json:"count"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	assert.Equal(t, 2, list.Count)
	assert.Len(t, list.Extractions, 2)
}

func TestListExtractionsLimitClamped(t *testing.T) {
	fake := &fakeExtractUseCase{}
	app := newTestApp(fake)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/v1/extractions?limit=1000", nil))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, 100, fake.gotLimit)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/v1/extractions?limit=-1", nil))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, 20, fake.gotLimit)
}

func TestGetExtraction(t *testing.T) {
	row := &entity.Extraction{ID: uuid.New(), Bucket: "uploads", ObjectKey: "a.txt"}
	fake := &fakeExtractUseCase{row: row}
	app := newTestApp(fake)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/v1/extractions/"+row.ID.String(), nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var got entity.Extraction
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, row.ID, got.ID)
}

func TestGetExtractionInvalidID(t *testing.T) {
	app := newTestApp(&fakeExtractUseCase{})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/v1/extractions/not-a-uuid", nil))
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetExtractionNotFound(t *testing.T) {
	fake := &fakeExtractUseCase{getErr: fmt.Errorf("journal: %w", errs.ErrRecordNotFound)}
	app := newTestApp(fake)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/v1/extractions/"+uuid.NewString(), nil))
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDeleteExtraction(t *testing.T) {
	fake := &fakeExtractUseCase{}
	app := newTestApp(fake)

	id := uuid.New()
	resp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/v1/extractions/"+id.String(), nil))
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, id, fake.deletedID)
}

func TestDeleteExtractionNotFound(t *testing.T) {
	fake := &fakeExtractUseCase{deleteErr: fmt.Errorf("journal: %w", errs.ErrRecordNotFound)}
	app := newTestApp(fake)

	resp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/v1/extractions/"+uuid.NewString(), nil))
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGetMetadata(t *testing.T) {
	fake := &fakeExtractUseCase{downloadBody: `{"fileName":"docs/report.pdf"}`}
	app := newTestApp(fake)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/v1/metadata?bucket=uploads&key=docs%2Freport.pdf", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentType), fiber.MIMEApplicationJSON)
	assert.Equal(t, "uploads", fake.gotBucket)
	assert.Equal(t, "docs/report.pdf", fake.gotKey)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, fake.downloadBody, string(body))
}

func TestGetMetadataMissingParams(t *testing.T) {
	app := newTestApp(&fakeExtractUseCase{})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/v1/metadata?bucket=uploads", nil))
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetMetadataNotFound(t *testing.T) {
	fake := &fakeExtractUseCase{downloadErr: fmt.Errorf("storage: %w", errs.ErrRecordNotFound)}
	app := newTestApp(fake)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/v1/metadata?bucket=uploads&key=a.txt", nil))
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// --- helpers & fakes ---

func newTestApp(fake *fakeExtractUseCase) *fiber.App {
	app := fiber.New()
	NewExtractionRoutes(app.Group("/v1"), fake, nopLogger{})

	return app
}

type fakeExtractUseCase struct {
	result   dto.Result
	gotEvent []byte

	extractions []*entity.Extraction
	gotLimit    int
	listErr     error

	row    *entity.Extraction
	getErr error

	deletedID uuid.UUID
	deleteErr error

	downloadBody string
	downloadErr  error
	gotBucket    string
	gotKey       string
}

func (f *fakeExtractUseCase) Extract(ctx context.Context, event []byte) dto.Result {
	// the request buffer is reused once the handler returns
	f.gotEvent = append([]byte(nil), event...)

	return f.result
}

func (f *fakeExtractUseCase) GetExtraction(ctx context.Context, id uuid.UUID) (*entity.Extraction, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}

	return f.row, nil
}

func (f *fakeExtractUseCase) ListExtractions(ctx context.Context, limit int) ([]*entity.Extraction, error) {
	f.gotLimit = limit

	return f.extractions, f.listErr
}

func (f *fakeExtractUseCase) DeleteExtraction(ctx context.Context, id uuid.UUID) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deletedID = id

	return nil
}

func (f *fakeExtractUseCase) DownloadMetadata(ctx context.Context, bucket, key string) (io.ReadCloser, error) {
	if f.downloadErr != nil {
		return nil, f.downloadErr
	}
	f.gotBucket = bucket
	f.gotKey = key

	return io.NopCloser(strings.NewReader(f.downloadBody)), nil
}

func (f *fakeExtractUseCase) GetPendingEvents(ctx context.Context, limit, maxRetries int) ([]*entity.OutboxEvent, error) {
	return nil, nil
}

func (f *fakeExtractUseCase) MarkAsProcessingBatch(ctx context.Context, events []*entity.OutboxEvent) error {
	return nil
}

func (f *fakeExtractUseCase) MarkAsProcessedBatch(ctx context.Context, events []*entity.OutboxEvent) error {
	return nil
}

func (f *fakeExtractUseCase) IncrementRetryCountBatch(ctx context.Context, events []*entity.OutboxEvent) error {
	return nil
}

func (f *fakeExtractUseCase) MarkMaxRetriesAsFailed(ctx context.Context, maxRetries int) error {
	return nil
}

func (f *fakeExtractUseCase) CleanupOutbox(ctx context.Context) error {
	return nil
}

type nopLogger struct{}

func (nopLogger) Debug(message interface{}, args ...interface{}) {}
func (nopLogger) Info(message string, args ...interface{})       {}
func (nopLogger) Warn(message string, args ...interface{})       {}
func (nopLogger) Error(message interface{}, args ...interface{}) {}
func (nopLogger) Fatal(message interface{}, args ...interface{}) {}
