package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/treejer/ranger/backend/internal/domain"
	"github.com/treejer/ranger/backend/internal/service"
)

func echoTreeRepo() *mockTreeRepo {
	return &mockTreeRepo{
		create: func(_ context.Context, spec domain.TreeSpec) (domain.TreeSpec, error) {
			spec.ID = uuid.New()
			return spec, nil
		},
	}
}

func TestTreeService_Create_Valid(t *testing.T) {
	svc := service.NewTreeService(echoTreeRepo())

	got, err := svc.Create(context.Background(), domain.TreeSpec{Name: "Oak", Latitude: "35.7", Longitude: "-51.4", Nursery: "false"})

	require.NoError(t, err)
	assert.Equal(t, "Oak", got.Name)
	assert.NotEqual(t, uuid.Nil, got.ID)
}

func TestTreeService_Create_Invalid(t *testing.T) {
	tests := []struct {
		name string
		spec domain.TreeSpec
	}{
		{"latitude not a number", domain.TreeSpec{Latitude: "north"}},
		{"longitude not a number", domain.TreeSpec{Longitude: "51,4"}},
		{"nursery not a boolean", domain.TreeSpec{Nursery: "yes"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := service.NewTreeService(&mockTreeRepo{})

			_, err := svc.Create(context.Background(), tc.spec)

			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestTreeService_GetByID_WrapsRepoError(t *testing.T) {
	svc := service.NewTreeService(&mockTreeRepo{
		getByID: func(context.Context, uuid.UUID) (domain.TreeSpec, error) { return domain.TreeSpec{}, domain.ErrNotFound },
	})

	_, err := svc.GetByID(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Contains(t, err.Error(), "service.TreeService.GetByID")
}

func TestTreeService_ListPaged_NeverNil(t *testing.T) {
	svc := service.NewTreeService(&mockTreeRepo{
		listPaged: func(context.Context, domain.PaginationParams) ([]domain.TreeSpec, int64, error) { return nil, 0, nil },
	})

	got, total, err := svc.ListPaged(context.Background(), domain.NewPaginationParams(nil, nil))

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Zero(t, total)
}

func TestTreeService_Delete(t *testing.T) {
	id := uuid.New()
	var deleted uuid.UUID
	svc := service.NewTreeService(&mockTreeRepo{
		delete: func(_ context.Context, got uuid.UUID) error { deleted = got; return nil },
	})

	require.NoError(t, svc.Delete(context.Background(), id))
	assert.Equal(t, id, deleted)
}

func TestTreeService_CanUpdateLocation(t *testing.T) {
	tests := []struct {
		name      string
		locations *string
		isNursery bool
		want      bool
	}{
		{"nursery with empty history", strPtr("[]"), true, true},
		{"nursery with history", strPtr(`[{"latitude":"1","longitude":"2"}]`), true, false},
		{"no history recorded", nil, true, false},
		{"not a nursery flow", strPtr("[]"), false, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := service.NewTreeService(&mockTreeRepo{
				getByID: func(_ context.Context, id uuid.UUID) (domain.TreeSpec, error) {
					return domain.TreeSpec{ID: id, Locations: tc.locations}, nil
				},
			})

			got, err := svc.CanUpdateLocation(context.Background(), uuid.New(), tc.isNursery)

			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestTreeService_CanUpdateLocation_RepoError(t *testing.T) {
	boom := errors.New("connection refused")
	svc := service.NewTreeService(&mockTreeRepo{
		getByID: func(context.Context, uuid.UUID) (domain.TreeSpec, error) { return domain.TreeSpec{}, boom },
	})

	_, err := svc.CanUpdateLocation(context.Background(), uuid.New(), true)

	assert.ErrorIs(t, err, boom)
}
