// Package handler implements the HTTP API of the Ranger backend on a chi
// router. Handlers are methods on Server, split into resource files
// (tree.go, submission.go, ...) that share its dependencies.
package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/treejer/ranger/backend/internal/domain"
)

// TreeServicer defines the tree operations the handlers depend on.
// Interfaces live here, in the consumer package, so handler tests can inject
// mocks without a database.
type TreeServicer interface {
	Create(ctx context.Context, spec domain.TreeSpec) (domain.TreeSpec, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.TreeSpec, error)
	ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.TreeSpec, int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
	CanUpdateLocation(ctx context.Context, id uuid.UUID, isNursery bool) (bool, error)
}

// SubmissionServicer defines the submission operations.
type SubmissionServicer interface {
	SubmitNew(ctx context.Context, hash string, j domain.Journey) (domain.Submission, error)
	SubmitUpdate(ctx context.Context, treeID uuid.UUID, hash string, j domain.Journey) (domain.Submission, error)
	SubmitAssigned(ctx context.Context, treeID uuid.UUID, hash string, j domain.Journey) (domain.Submission, error)
	ListByTree(ctx context.Context, treeID uuid.UUID) ([]domain.Submission, error)
}

// OfflineMapServicer defines the offline map and geocoding operations.
type OfflineMapServicer interface {
	Create(ctx context.Context, m domain.OfflineMap) (domain.OfflineMap, error)
	List(ctx context.Context) ([]domain.OfflineMap, error)
	Delete(ctx context.Context, name string) error
	AreaName(ctx context.Context, c domain.Coordinate) (string, error)
}

// AdditionalDataServicer defines the additional-data operations.
type AdditionalDataServicer interface {
	Import(ctx context.Context, raw []byte) error
	Forms(ctx context.Context, f domain.FormFilter) ([]domain.Form, error)
	Metadata(ctx context.Context) (domain.Metadata, error)
}

// ExportServicer defines the export operation.
type ExportServicer interface {
	Export(ctx context.Context) ([]domain.ExportRow, error)
}

// Services groups the dependencies of a Server. A nil service leaves its
// routes unregistered.
type Services struct {
	Trees       TreeServicer
	Submissions SubmissionServicer
	OfflineMaps OfflineMapServicer
	Additional  AdditionalDataServicer
	Export      ExportServicer
}

// Server holds the dependencies shared by every handler.
type Server struct {
	svc      Services
	validate *validator.Validate
}

// NewServer constructs the Server with all its dependencies.
func NewServer(svc Services) *Server {
	return &Server{svc: svc, validate: newValidator()}
}

// Handler returns the API router. Health and API-description routes are
// always public; protect (typically bearer auth) wraps every other route.
func (s *Server) Handler(protect ...func(http.Handler) http.Handler) http.Handler {
	r := chi.NewRouter()
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, domain.ErrNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeErrorBody(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
	})

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)

	r.Group(func(r chi.Router) {
		r.Use(protect...)

		if s.svc.Trees != nil {
			r.Post("/trees", s.CreateTree)
			r.Get("/trees", s.ListTrees)
			r.Get("/trees/{treeId}", s.GetTree)
			r.Delete("/trees/{treeId}", s.DeleteTree)
			r.Get("/trees/{treeId}/location-policy", s.GetLocationPolicy)
		}
		if s.svc.Submissions != nil {
			r.Post("/submissions", s.CreateNewTreeSubmission)
			r.Post("/trees/{treeId}/submissions", s.CreateTreeSubmission)
			r.Get("/trees/{treeId}/submissions", s.ListTreeSubmissions)
		}
		if s.svc.OfflineMaps != nil {
			r.Get("/offline-maps", s.ListOfflineMaps)
			r.Post("/offline-maps", s.CreateOfflineMap)
			r.Delete("/offline-maps/{name}", s.DeleteOfflineMap)
			r.Get("/geocode/area-name", s.GetAreaName)
		}
		if s.svc.Additional != nil {
			r.Post("/additional-data/import", s.ImportAdditionalData)
			r.Get("/additional-data/forms", s.ListAdditionalForms)
			r.Get("/additional-data/metadata", s.GetAdditionalMetadata)
		}
		if s.svc.Export != nil {
			r.Get("/export", s.GetExport)
		}
	})
	return r
}
