package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/treejer/ranger/backend/internal/domain"
)

// ImportAdditionalData handles POST /additional-data/import. The body is an
// additional-data file; stored forms and metadata are replaced by it.
func (s *Server) ImportAdditionalData(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, r, err)
			return
		}
		badRequest(w, "could not read request body")
		return
	}
	if err := s.svc.Additional.Import(r.Context(), raw); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListAdditionalForms handles GET /additional-data/forms.
// ?treeType=, ?registrationType= and ?isSampleTree= narrow the elements.
func (s *Server) ListAdditionalForms(w http.ResponseWriter, r *http.Request) {
	var (
		treeType, registrationType *string
		isSample                   *bool
	)
	if !queryParam(w, r, "treeType", false, &treeType) ||
		!queryParam(w, r, "registrationType", false, &registrationType) ||
		!queryParam(w, r, "isSampleTree", false, &isSample) {
		return
	}

	filter := domain.FormFilter{IsSampleTree: isSample != nil && *isSample}
	if treeType != nil {
		filter.TreeType = *treeType
	}
	if registrationType != nil {
		filter.RegistrationType = *registrationType
	}

	forms, err := s.svc.Additional.Forms(r.Context(), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, forms)
}

// GetAdditionalMetadata handles GET /additional-data/metadata.
func (s *Server) GetAdditionalMetadata(w http.ResponseWriter, r *http.Request) {
	md, err := s.svc.Additional.Metadata(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, md)
}
