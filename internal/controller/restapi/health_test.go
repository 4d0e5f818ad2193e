package restapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePinger struct {
	err error
}

func (f fakePinger) Ping(ctx context.Context) error {
	return f.err
}

func TestHealthz(t *testing.T) {
	app := fiber.New()
	newHealthRoutes(app, fakePinger{}, fakePinger{})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", decodeStatus(t, resp))
}

func TestReadyz(t *testing.T) {
	app := fiber.New()
	newHealthRoutes(app, fakePinger{}, fakePinger{})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/readyz", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ready", decodeStatus(t, resp))
}

func TestReadyzPostgresDown(t *testing.T) {
	app := fiber.New()
	newHealthRoutes(app, fakePinger{err: errors.New("dial refused")}, fakePinger{})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/readyz", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, "postgres unavailable", decodeStatus(t, resp))
}

func TestReadyzStoreDown(t *testing.T) {
	app := fiber.New()
	newHealthRoutes(app, fakePinger{}, fakePinger{err: errors.New("dial refused")})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/readyz", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, "object storage unavailable", decodeStatus(t, resp))
}

func decodeStatus(t *testing.T, resp *http.Response) string {
	t.Helper()

	var body struct {
		Status string `json:"status"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

	return body.Status
}
