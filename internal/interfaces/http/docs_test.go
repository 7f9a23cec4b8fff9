package http_test

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/pandastore/facturacion/internal/interfaces/http"
)

const swaggerFile = "../../../docs/swagger.json"

func TestDocs_SirveSwaggerUI(t *testing.T) {
	app := fiber.New()

	require.True(t, apphttp.Docs(app, swaggerFile, "PandaStore Facturación API"))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/docs", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
}

func TestDocs_NoInterceptaLaAPI(t *testing.T) {
	s := newTestServer(t)
	require.True(t, apphttp.Docs(s.app, swaggerFile, "test"))

	resp := s.do(t, http.MethodGet, "/api/catalog", nil, false)

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestDocs_SinArchivo(t *testing.T) {
	app := fiber.New()

	assert.False(t, apphttp.Docs(app, filepath.Join(t.TempDir(), "swagger.json"), "x"))
	assert.False(t, apphttp.Docs(app, "", "x"))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/docs", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
