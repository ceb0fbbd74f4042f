package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/treejer/ranger/backend/internal/domain"
)

// NewTreeSubmissionRequest is the body of POST /submissions.
type NewTreeSubmissionRequest struct {
	PhotoHash string          `json:"photoHash" validate:"required"`
	Journey   *domain.Journey `json:"journey" validate:"required"`
}

// TreeSubmissionRequest is the body of POST /trees/{treeId}/submissions.
type TreeSubmissionRequest struct {
	Kind      string          `json:"kind" validate:"required,oneof=update assigned"`
	PhotoHash string          `json:"photoHash" validate:"required"`
	Journey   *domain.Journey `json:"journey" validate:"required"`
}

// SubmissionResponse is a recorded submission with its assembled document.
type SubmissionResponse struct {
	ID        uuid.UUID       `json:"id"`
	TreeID    uuid.UUID       `json:"treeId"`
	Kind      string          `json:"kind"`
	PhotoHash string          `json:"photoHash"`
	Document  domain.Document `json:"document"`
	CreatedAt time.Time       `json:"createdAt"`
}

// CreateNewTreeSubmission handles POST /submissions.
func (s *Server) CreateNewTreeSubmission(w http.ResponseWriter, r *http.Request) {
	var req NewTreeSubmissionRequest
	if err := s.decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	sub, err := s.svc.Submissions.SubmitNew(r.Context(), req.PhotoHash, *req.Journey)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, submissionToResponse(sub))
}

// CreateTreeSubmission handles POST /trees/{treeId}/submissions.
func (s *Server) CreateTreeSubmission(w http.ResponseWriter, r *http.Request) {
	treeID, ok := pathUUID(w, r, "treeId")
	if !ok {
		return
	}
	var req TreeSubmissionRequest
	if err := s.decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	submit := s.svc.Submissions.SubmitUpdate
	if domain.SubmissionKind(req.Kind) == domain.SubmissionAssigned {
		submit = s.svc.Submissions.SubmitAssigned
	}
	sub, err := submit(r.Context(), treeID, req.PhotoHash, *req.Journey)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, submissionToResponse(sub))
}

// ListTreeSubmissions handles GET /trees/{treeId}/submissions.
func (s *Server) ListTreeSubmissions(w http.ResponseWriter, r *http.Request) {
	treeID, ok := pathUUID(w, r, "treeId")
	if !ok {
		return
	}
	params, ok := pagination(w, r)
	if !ok {
		return
	}

	subs, err := s.svc.Submissions.ListByTree(r.Context(), treeID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	data := make([]SubmissionResponse, len(subs))
	for i, sub := range subs {
		data[i] = submissionToResponse(sub)
	}
	writeJSON(w, http.StatusOK, pageOf(data, params))
}

func submissionToResponse(s domain.Submission) SubmissionResponse {
	return SubmissionResponse{
		ID:        s.ID,
		TreeID:    s.TreeID,
		Kind:      string(s.Kind),
		PhotoHash: s.PhotoHash,
		Document:  s.Document,
		CreatedAt: s.CreatedAt,
	}
}
