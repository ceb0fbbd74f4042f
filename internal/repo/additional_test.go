package repo_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/treejer/ranger/backend/internal/domain"
	"github.com/treejer/ranger/backend/internal/repo"
	"github.com/treejer/ranger/backend/testutil"
)

func TestAdditionalDataRepo_ReplaceAll(t *testing.T) {
	r := repo.NewAdditionalDataRepo(testutil.NewTx(t))
	ctx := context.Background()

	first := []domain.Form{{ID: "old", Title: "Old"}}
	require.NoError(t, r.ReplaceAll(ctx, first, []domain.Detail{{Key: "k", Value: "v", AccessType: "public"}}))

	forms := []domain.Form{
		{ID: "b", Title: "Second", Order: 2},
		{ID: "a", Title: "First", Order: 1, Elements: []domain.Element{{
			ID: "el", Key: "soil", Type: domain.ElementInput,
			TreeType: []string{"single"}, RegistrationType: []string{"on-site"}, AccessType: "public",
			TypeProps: &domain.ElementTypeProps{ParentID: "el", InputType: "number"},
		}}},
	}
	details := []domain.Detail{
		{Key: "owner", Value: "Ana", AccessType: "public"},
		{Key: "owner", Value: "Bea", AccessType: "public"},
		{Key: "appVersion", Value: "1.0.8", AccessType: "app"},
	}
	require.NoError(t, r.ReplaceAll(ctx, forms, details))

	gotForms, err := r.ListForms(ctx)
	require.NoError(t, err)
	require.Len(t, gotForms, 2)
	assert.Equal(t, "a", gotForms[0].ID)
	require.Len(t, gotForms[0].Elements, 1)
	require.NotNil(t, gotForms[0].Elements[0].TypeProps)
	assert.Equal(t, "number", gotForms[0].Elements[0].TypeProps.InputType)
	assert.Empty(t, gotForms[1].Elements)

	gotDetails, err := r.ListMetadata(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.Detail{
		{Key: "appVersion", Value: "1.0.8", AccessType: "app"},
		{Key: "owner", Value: "Bea", AccessType: "public"},
	}, gotDetails)
}

func TestAdditionalDataRepo_ReplaceAll_RollsBackOnError(t *testing.T) {
	r := repo.NewAdditionalDataRepo(testutil.NewTx(t))
	ctx := context.Background()

	require.NoError(t, r.ReplaceAll(ctx, []domain.Form{{ID: "keep"}}, nil))

	err := r.ReplaceAll(ctx, []domain.Form{{ID: "dup"}, {ID: "dup"}}, nil)
	assert.ErrorIs(t, err, domain.ErrValidation)

	got, err := r.ListForms(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "keep", got[0].ID)
}
