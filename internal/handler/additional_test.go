package handler_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/treejer/ranger/backend/internal/domain"
	"github.com/treejer/ranger/backend/internal/handler"
)

func TestImportAdditionalData_204(t *testing.T) {
	const file = `{"formData":[],"metadata":[]}`
	var got []byte
	svc := &mockAdditionalDataServicer{
		importData: func(_ context.Context, raw []byte) error {
			got = raw
			return nil
		},
	}

	rec := serve(handler.Services{Additional: svc},
		httptest.NewRequest(http.MethodPost, "/additional-data/import", strings.NewReader(file)))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.JSONEq(t, file, string(got))
}

func TestImportAdditionalData_422_BadFile(t *testing.T) {
	svc := &mockAdditionalDataServicer{
		importData: func(_ context.Context, _ []byte) error {
			return fmt.Errorf("service.AdditionalDataService.Import: %w: incorrect JSON file format", domain.ErrValidation)
		},
	}

	rec := serve(handler.Services{Additional: svc},
		httptest.NewRequest(http.MethodPost, "/additional-data/import", strings.NewReader(`{}`)))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	var body handler.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "incorrect JSON file format", body.Error.Message)
}

func TestImportAdditionalData_413(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/additional-data/import", strings.NewReader(strings.Repeat(" ", 64)))
	rec := httptest.NewRecorder()
	req.Body = http.MaxBytesReader(rec, req.Body, 8)

	handler.NewServer(handler.Services{Additional: &mockAdditionalDataServicer{}}).Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Equal(t, "payload_too_large", errorCode(t, rec))
}

func TestListAdditionalForms_passesFilter(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  domain.FormFilter
	}{
		{"no filter", "", domain.FormFilter{}},
		{
			"all params",
			"?treeType=multiple&registrationType=on-site&isSampleTree=true",
			domain.FormFilter{TreeType: "multiple", RegistrationType: "on-site", IsSampleTree: true},
		},
		{"tree type only", "?treeType=all", domain.FormFilter{TreeType: "all"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var got domain.FormFilter
			svc := &mockAdditionalDataServicer{
				forms: func(_ context.Context, f domain.FormFilter) ([]domain.Form, error) {
					got = f
					return []domain.Form{{ID: "f1", Title: "Soil", Elements: []domain.Element{}}}, nil
				},
			}

			rec := serve(handler.Services{Additional: svc},
				httptest.NewRequest(http.MethodGet, "/additional-data/forms"+tc.query, nil))

			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tc.want, got)

			var forms []domain.Form
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&forms))
			require.Len(t, forms, 1)
			assert.Equal(t, "Soil", forms[0].Title)
		})
	}
}

func TestListAdditionalForms_400_BadBool(t *testing.T) {
	rec := serve(handler.Services{Additional: &mockAdditionalDataServicer{}},
		httptest.NewRequest(http.MethodGet, "/additional-data/forms?isSampleTree=sometimes", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetAdditionalMetadata_200(t *testing.T) {
	svc := &mockAdditionalDataServicer{
		metadata: func(_ context.Context) (domain.Metadata, error) {
			return domain.Metadata{
				domain.AccessPublic:  {"project": "Cape Greening"},
				domain.AccessPrivate: {},
				domain.AccessApp:     {"appVersion": "1.4.0"},
			}, nil
		},
	}

	rec := serve(handler.Services{Additional: svc},
		httptest.NewRequest(http.MethodGet, "/additional-data/metadata", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t,
		`{"public":{"project":"Cape Greening"},"private":{},"app":{"appVersion":"1.4.0"}}`,
		rec.Body.String())
}
