package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/treejer/ranger/backend/internal/handler"
)

func TestGetHealth_returns200WithOKStatus(t *testing.T) {
	rec := serve(handler.Services{}, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body handler.HealthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "ok", body.Status)
}

func TestGetOpenAPI_servesEmbeddedDocument(t *testing.T) {
	rec := serve(handler.Services{}, httptest.NewRequest(http.MethodGet, "/openapi.yaml", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/yaml", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "openapi:")
}

func TestUnknownRoute_404JSON(t *testing.T) {
	rec := serve(handler.Services{}, httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", errorCode(t, rec))
}

func TestUnregisteredService_routesAbsent(t *testing.T) {
	// With no tree service the tree routes are not mounted at all.
	rec := serve(handler.Services{}, httptest.NewRequest(http.MethodGet, "/trees", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler_protectWrapsAPIRoutesOnly(t *testing.T) {
	deny := func(http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		})
	}
	h := handler.NewServer(handler.Services{Export: &mockExportServicer{}}).Handler(deny)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/export", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMethodNotAllowed_405JSON(t *testing.T) {
	svc := handler.Services{Export: &mockExportServicer{}}
	rec := serve(svc, httptest.NewRequest(http.MethodPut, "/export", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "method_not_allowed", errorCode(t, rec))
}
