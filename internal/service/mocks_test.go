package service_test

import (
	"context"

	"github.com/google/uuid"

	"github.com/treejer/ranger/backend/internal/domain"
	"github.com/treejer/ranger/backend/internal/repo"
	"github.com/treejer/ranger/backend/internal/service"
)

// Hand-written test doubles: each method is a function field, set only the
// ones a test needs.

type mockTreeRepo struct {
	create    func(ctx context.Context, spec domain.TreeSpec) (domain.TreeSpec, error)
	getByID   func(ctx context.Context, id uuid.UUID) (domain.TreeSpec, error)
	listPaged func(ctx context.Context, p domain.PaginationParams) ([]domain.TreeSpec, int64, error)
	list      func(ctx context.Context) ([]domain.TreeSpec, error)
	delete    func(ctx context.Context, id uuid.UUID) error
}

func (m *mockTreeRepo) Create(ctx context.Context, spec domain.TreeSpec) (domain.TreeSpec, error) {
	return m.create(ctx, spec)
}
func (m *mockTreeRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.TreeSpec, error) {
	return m.getByID(ctx, id)
}
func (m *mockTreeRepo) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.TreeSpec, int64, error) {
	return m.listPaged(ctx, p)
}
func (m *mockTreeRepo) List(ctx context.Context) ([]domain.TreeSpec, error) {
	return m.list(ctx)
}
func (m *mockTreeRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

type mockSubmissionRepo struct {
	createForNewTree func(ctx context.Context, sub domain.Submission) (domain.Submission, error)
	createForTree    func(ctx context.Context, sub domain.Submission) (domain.Submission, error)
	listByTree       func(ctx context.Context, treeID uuid.UUID) ([]domain.Submission, error)
}

func (m *mockSubmissionRepo) CreateForNewTree(ctx context.Context, sub domain.Submission) (domain.Submission, error) {
	return m.createForNewTree(ctx, sub)
}
func (m *mockSubmissionRepo) CreateForTree(ctx context.Context, sub domain.Submission) (domain.Submission, error) {
	return m.createForTree(ctx, sub)
}
func (m *mockSubmissionRepo) ListByTree(ctx context.Context, treeID uuid.UUID) ([]domain.Submission, error) {
	return m.listByTree(ctx, treeID)
}

type mockOfflineMapRepo struct {
	create func(ctx context.Context, m domain.OfflineMap) (domain.OfflineMap, error)
	list   func(ctx context.Context) ([]domain.OfflineMap, error)
	delete func(ctx context.Context, name string) error
}

func (m *mockOfflineMapRepo) Create(ctx context.Context, om domain.OfflineMap) (domain.OfflineMap, error) {
	return m.create(ctx, om)
}
func (m *mockOfflineMapRepo) List(ctx context.Context) ([]domain.OfflineMap, error) {
	return m.list(ctx)
}
func (m *mockOfflineMapRepo) Delete(ctx context.Context, name string) error {
	return m.delete(ctx, name)
}

type mockAdditionalDataRepo struct {
	replaceAll   func(ctx context.Context, forms []domain.Form, details []domain.Detail) error
	listForms    func(ctx context.Context) ([]domain.Form, error)
	listMetadata func(ctx context.Context) ([]domain.Detail, error)
}

func (m *mockAdditionalDataRepo) ReplaceAll(ctx context.Context, forms []domain.Form, details []domain.Detail) error {
	return m.replaceAll(ctx, forms, details)
}
func (m *mockAdditionalDataRepo) ListForms(ctx context.Context) ([]domain.Form, error) {
	return m.listForms(ctx)
}
func (m *mockAdditionalDataRepo) ListMetadata(ctx context.Context) ([]domain.Detail, error) {
	return m.listMetadata(ctx)
}

type mockAreaNamer struct {
	areaName func(ctx context.Context, c domain.Coordinate) (string, error)
}

func (m *mockAreaNamer) AreaName(ctx context.Context, c domain.Coordinate) (string, error) {
	return m.areaName(ctx, c)
}

// compile-time checks
var (
	_ repo.TreeRepo           = (*mockTreeRepo)(nil)
	_ repo.SubmissionRepo     = (*mockSubmissionRepo)(nil)
	_ repo.OfflineMapRepo     = (*mockOfflineMapRepo)(nil)
	_ repo.AdditionalDataRepo = (*mockAdditionalDataRepo)(nil)
	_ service.AreaNamer       = (*mockAreaNamer)(nil)
)

func strPtr(s string) *string { return &s }
