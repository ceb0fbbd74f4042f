package service_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/treejer/ranger/backend/internal/domain"
	"github.com/treejer/ranger/backend/internal/service"
	"github.com/treejer/ranger/backend/internal/treedoc"
)

const gateway = "https://ipfs.treejer.com/ipfs"

func fixedAssembler() *treedoc.Assembler {
	return treedoc.New(treedoc.WithClock(func() time.Time { return time.Unix(1700000000, 0) }))
}

// recordingSubmissionRepo stores what it is asked to persist and echoes it
// back with generated ids.
func recordingSubmissionRepo(got *domain.Submission) *mockSubmissionRepo {
	echo := func(_ context.Context, sub domain.Submission) (domain.Submission, error) {
		sub.ID = uuid.New()
		if sub.TreeID == uuid.Nil {
			sub.TreeID = uuid.New()
		}
		*got = sub
		return sub, nil
	}
	return &mockSubmissionRepo{createForNewTree: echo, createForTree: echo}
}

func treeRepoWith(spec domain.TreeSpec) *mockTreeRepo {
	return &mockTreeRepo{
		getByID: func(_ context.Context, id uuid.UUID) (domain.TreeSpec, error) {
			spec.ID = id
			return spec, nil
		},
	}
}

func TestSubmissionService_SubmitNew(t *testing.T) {
	var stored domain.Submission
	svc := service.NewSubmissionService(&mockTreeRepo{}, recordingSubmissionRepo(&stored), fixedAssembler(), gateway)
	isSingle := false

	got, err := svc.SubmitNew(context.Background(), "QmPhoto", domain.Journey{
		Location: &domain.Coordinate{Latitude: 35.700001, Longitude: 51.400002},
		IsSingle: &isSingle,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.SubmissionNew, stored.Kind)
	assert.Equal(t, "QmPhoto", stored.PhotoHash)
	assert.Equal(t, domain.Location{Latitude: "35700001", Longitude: "51400002"}, got.Document.Location)
	assert.Equal(t, "true", got.Document.Nursery)
	require.Len(t, got.Document.Updates, 1)
	assert.JSONEq(t, `{"image":"`+gateway+`/QmPhoto","image_hash":"QmPhoto","created_at":"1700000000"}`,
		string(got.Document.Updates[0]))
}

func TestSubmissionService_SubmitNew_OutOfRangeLocation(t *testing.T) {
	subs := &mockSubmissionRepo{
		createForNewTree: func(context.Context, domain.Submission) (domain.Submission, error) {
			t.Fatal("nothing should be persisted")
			return domain.Submission{}, nil
		},
	}
	svc := service.NewSubmissionService(&mockTreeRepo{}, subs, fixedAssembler(), gateway)

	_, err := svc.SubmitNew(context.Background(), "QmPhoto", domain.Journey{
		Location: &domain.Coordinate{Latitude: 1e13, Longitude: 51.4},
	})

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestSubmissionService_LogsAgent(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	var stored domain.Submission
	svc := service.NewSubmissionService(&mockTreeRepo{}, recordingSubmissionRepo(&stored), fixedAssembler(), gateway)
	ctx := domain.WithAgent(context.Background(), "ranger-42")

	_, err := svc.SubmitNew(ctx, "QmPhoto", domain.Journey{Location: &domain.Coordinate{Latitude: 1, Longitude: 1}})

	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"msg":"submission recorded"`)
	assert.Contains(t, buf.String(), `"agent":"ranger-42"`)
}

func TestSubmissionService_SubmitNew_Validation(t *testing.T) {
	svc := service.NewSubmissionService(&mockTreeRepo{}, &mockSubmissionRepo{}, fixedAssembler(), gateway)

	_, err := svc.SubmitNew(context.Background(), "  ", domain.Journey{Location: &domain.Coordinate{Latitude: 1, Longitude: 1}})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.SubmitNew(context.Background(), "QmPhoto", domain.Journey{})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestSubmissionService_SubmitUpdate_UsesStoredTree(t *testing.T) {
	var stored domain.Submission
	trees := treeRepoWith(domain.TreeSpec{
		Name:      "Nursery Oak",
		Nursery:   "true",
		Latitude:  "35.7",
		Longitude: "51.4",
		Locations: strPtr("[]"),
		Updates:   strPtr(`[{"image":"u1","image_hash":"h1","created_at":"100"}]`),
	})
	svc := service.NewSubmissionService(trees, recordingSubmissionRepo(&stored), fixedAssembler(), gateway)
	treeID := uuid.New()

	j := domain.Journey{
		Location: &domain.Coordinate{Latitude: 35.700001, Longitude: 51.400002},
		// A stale client copy must not override the stored spec.
		Tree: &domain.TreeSpec{Nursery: "false"},
	}
	got, err := svc.SubmitUpdate(context.Background(), treeID, "QmPhoto", j)

	require.NoError(t, err)
	assert.Equal(t, treeID, stored.TreeID)
	assert.Equal(t, domain.SubmissionUpdate, stored.Kind)
	assert.Equal(t, domain.Location{Latitude: "35700001", Longitude: "51400002"}, got.Document.Location)
	assert.JSONEq(t, `[{"latitude":"35.7","longitude":"51.4"}]`, string(got.Document.Locations))
	assert.Len(t, got.Document.Updates, 2)
	assert.Equal(t, "Nursery Oak", got.Document.Name)
}

func TestSubmissionService_SubmitUpdate_MalformedHistory(t *testing.T) {
	trees := treeRepoWith(domain.TreeSpec{Updates: strPtr(`{broken`)})
	subs := &mockSubmissionRepo{
		createForTree: func(context.Context, domain.Submission) (domain.Submission, error) {
			t.Fatal("nothing should be persisted")
			return domain.Submission{}, nil
		},
	}
	svc := service.NewSubmissionService(trees, subs, fixedAssembler(), gateway)

	_, err := svc.SubmitUpdate(context.Background(), uuid.New(), "QmPhoto", domain.Journey{})

	assert.ErrorIs(t, err, domain.ErrMalformedHistory)
}

func TestSubmissionService_SubmitUpdate_TreeNotFound(t *testing.T) {
	trees := &mockTreeRepo{
		getByID: func(context.Context, uuid.UUID) (domain.TreeSpec, error) { return domain.TreeSpec{}, domain.ErrNotFound },
	}
	svc := service.NewSubmissionService(trees, &mockSubmissionRepo{}, fixedAssembler(), gateway)

	_, err := svc.SubmitUpdate(context.Background(), uuid.New(), "QmPhoto", domain.Journey{})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSubmissionService_SubmitAssigned(t *testing.T) {
	var stored domain.Submission
	trees := treeRepoWith(domain.TreeSpec{Name: "Maple", Latitude: "1", Longitude: "2"})
	svc := service.NewSubmissionService(trees, recordingSubmissionRepo(&stored), fixedAssembler(), gateway)

	got, err := svc.SubmitAssigned(context.Background(), uuid.New(), "QmPhoto", domain.Journey{
		Location: &domain.Coordinate{Latitude: -12.3456785, Longitude: 0.0000025},
	})

	require.NoError(t, err)
	assert.Equal(t, domain.SubmissionAssigned, stored.Kind)
	assert.Equal(t, domain.Location{Latitude: "-12345678", Longitude: "2"}, got.Document.Location)

	_, err = svc.SubmitAssigned(context.Background(), uuid.New(), "QmPhoto", domain.Journey{})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestSubmissionService_ListByTree(t *testing.T) {
	trees := treeRepoWith(domain.TreeSpec{})
	subs := &mockSubmissionRepo{
		listByTree: func(context.Context, uuid.UUID) ([]domain.Submission, error) { return nil, nil },
	}
	svc := service.NewSubmissionService(trees, subs, fixedAssembler(), gateway)

	got, err := svc.ListByTree(context.Background(), uuid.New())

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
