package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/treejer/ranger/backend/internal/domain"
	"github.com/treejer/ranger/backend/internal/handler"
)

// Each mock is a test double for one handler servicer.
// Set only the method fields your test needs.

type mockTreeServicer struct {
	create            func(ctx context.Context, spec domain.TreeSpec) (domain.TreeSpec, error)
	getByID           func(ctx context.Context, id uuid.UUID) (domain.TreeSpec, error)
	listPaged         func(ctx context.Context, p domain.PaginationParams) ([]domain.TreeSpec, int64, error)
	delete            func(ctx context.Context, id uuid.UUID) error
	canUpdateLocation func(ctx context.Context, id uuid.UUID, isNursery bool) (bool, error)
}

func (m *mockTreeServicer) Create(ctx context.Context, s domain.TreeSpec) (domain.TreeSpec, error) {
	return m.create(ctx, s)
}
func (m *mockTreeServicer) GetByID(ctx context.Context, id uuid.UUID) (domain.TreeSpec, error) {
	return m.getByID(ctx, id)
}
func (m *mockTreeServicer) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.TreeSpec, int64, error) {
	return m.listPaged(ctx, p)
}
func (m *mockTreeServicer) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}
func (m *mockTreeServicer) CanUpdateLocation(ctx context.Context, id uuid.UUID, isNursery bool) (bool, error) {
	return m.canUpdateLocation(ctx, id, isNursery)
}

type mockSubmissionServicer struct {
	submitNew      func(ctx context.Context, hash string, j domain.Journey) (domain.Submission, error)
	submitUpdate   func(ctx context.Context, treeID uuid.UUID, hash string, j domain.Journey) (domain.Submission, error)
	submitAssigned func(ctx context.Context, treeID uuid.UUID, hash string, j domain.Journey) (domain.Submission, error)
	listByTree     func(ctx context.Context, treeID uuid.UUID) ([]domain.Submission, error)
}

func (m *mockSubmissionServicer) SubmitNew(ctx context.Context, hash string, j domain.Journey) (domain.Submission, error) {
	return m.submitNew(ctx, hash, j)
}
func (m *mockSubmissionServicer) SubmitUpdate(ctx context.Context, treeID uuid.UUID, hash string, j domain.Journey) (domain.Submission, error) {
	return m.submitUpdate(ctx, treeID, hash, j)
}
func (m *mockSubmissionServicer) SubmitAssigned(ctx context.Context, treeID uuid.UUID, hash string, j domain.Journey) (domain.Submission, error) {
	return m.submitAssigned(ctx, treeID, hash, j)
}
func (m *mockSubmissionServicer) ListByTree(ctx context.Context, treeID uuid.UUID) ([]domain.Submission, error) {
	return m.listByTree(ctx, treeID)
}

type mockOfflineMapServicer struct {
	create   func(ctx context.Context, m domain.OfflineMap) (domain.OfflineMap, error)
	list     func(ctx context.Context) ([]domain.OfflineMap, error)
	delete   func(ctx context.Context, name string) error
	areaName func(ctx context.Context, c domain.Coordinate) (string, error)
}

func (m *mockOfflineMapServicer) Create(ctx context.Context, om domain.OfflineMap) (domain.OfflineMap, error) {
	return m.create(ctx, om)
}
func (m *mockOfflineMapServicer) List(ctx context.Context) ([]domain.OfflineMap, error) {
	return m.list(ctx)
}
func (m *mockOfflineMapServicer) Delete(ctx context.Context, name string) error {
	return m.delete(ctx, name)
}
func (m *mockOfflineMapServicer) AreaName(ctx context.Context, c domain.Coordinate) (string, error) {
	return m.areaName(ctx, c)
}

type mockAdditionalDataServicer struct {
	importData func(ctx context.Context, raw []byte) error
	forms      func(ctx context.Context, f domain.FormFilter) ([]domain.Form, error)
	metadata   func(ctx context.Context) (domain.Metadata, error)
}

func (m *mockAdditionalDataServicer) Import(ctx context.Context, raw []byte) error {
	return m.importData(ctx, raw)
}
func (m *mockAdditionalDataServicer) Forms(ctx context.Context, f domain.FormFilter) ([]domain.Form, error) {
	return m.forms(ctx, f)
}
func (m *mockAdditionalDataServicer) Metadata(ctx context.Context) (domain.Metadata, error) {
	return m.metadata(ctx)
}

type mockExportServicer struct {
	export func(ctx context.Context) ([]domain.ExportRow, error)
}

func (m *mockExportServicer) Export(ctx context.Context) ([]domain.ExportRow, error) {
	return m.export(ctx)
}

// compile-time checks: every mock must satisfy its handler interface.
var (
	_ handler.TreeServicer           = (*mockTreeServicer)(nil)
	_ handler.SubmissionServicer     = (*mockSubmissionServicer)(nil)
	_ handler.OfflineMapServicer     = (*mockOfflineMapServicer)(nil)
	_ handler.AdditionalDataServicer = (*mockAdditionalDataServicer)(nil)
	_ handler.ExportServicer         = (*mockExportServicer)(nil)
)

// ---- helpers ---------------------------------------------------------------

// serve runs one request through the router built from svc, the same way
// main.go mounts it in production.
func serve(svc handler.Services, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	handler.NewServer(svc).Handler().ServeHTTP(rec, req)
	return rec
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func jsonRequest(t *testing.T, method, target string, v any) *http.Request {
	t.Helper()
	req := httptest.NewRequest(method, target, jsonBody(t, v))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// errorCode decodes an error envelope and returns its code.
func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body handler.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body.Error.Code
}

func strPtr(s string) *string { return &s }
