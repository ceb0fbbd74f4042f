package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/treejer/ranger/backend/internal/domain"
)

// TreeRequest is the body of POST /trees.
type TreeRequest struct {
	Name          string  `json:"name" validate:"max=200"`
	Description   string  `json:"description"`
	ExternalURL   string  `json:"externalUrl" validate:"omitempty,url"`
	ImageHash     string  `json:"imageHash"`
	SymbolFS      string  `json:"symbolFs"`
	SymbolHash    string  `json:"symbolHash"`
	AnimationURL  string  `json:"animationUrl" validate:"omitempty,url"`
	Diameter      string  `json:"diameter"`
	ImageFS       string  `json:"imageFs"`
	ImageIPFSHash string  `json:"image_ipfs_hash"`
	Nursery       string  `json:"nursery" validate:"omitempty,oneof=true false"`
	Latitude      string  `json:"latitude"`
	Longitude     string  `json:"longitude"`
	Attributes    *string `json:"attributes"`
	Updates       *string `json:"updates"`
	Locations     *string `json:"locations"`
}

// TreeResponse is a stored tree spec.
type TreeResponse struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name,omitempty"`
	Description   string    `json:"description,omitempty"`
	ExternalURL   string    `json:"externalUrl,omitempty"`
	ImageHash     string    `json:"imageHash,omitempty"`
	SymbolFS      string    `json:"symbolFs,omitempty"`
	SymbolHash    string    `json:"symbolHash,omitempty"`
	AnimationURL  string    `json:"animationUrl,omitempty"`
	Diameter      string    `json:"diameter,omitempty"`
	ImageFS       string    `json:"imageFs,omitempty"`
	ImageIPFSHash string    `json:"image_ipfs_hash,omitempty"`
	Nursery       string    `json:"nursery,omitempty"`
	Latitude      string    `json:"latitude,omitempty"`
	Longitude     string    `json:"longitude,omitempty"`
	Attributes    *string   `json:"attributes,omitempty"`
	Updates       *string   `json:"updates,omitempty"`
	Locations     *string   `json:"locations,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// LocationPolicyResponse is the body of GET /trees/{treeId}/location-policy.
type LocationPolicyResponse struct {
	CanUpdate bool `json:"canUpdate"`
}

// CreateTree handles POST /trees.
func (s *Server) CreateTree(w http.ResponseWriter, r *http.Request) {
	var req TreeRequest
	if err := s.decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	created, err := s.svc.Trees.Create(r.Context(), requestToTree(req))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, treeToResponse(created))
}

// ListTrees handles GET /trees.
// Supports ?page= and ?limit= (defaults: page=1, limit=20, max=100).
func (s *Server) ListTrees(w http.ResponseWriter, r *http.Request) {
	params, ok := pagination(w, r)
	if !ok {
		return
	}
	trees, total, err := s.svc.Trees.ListPaged(r.Context(), params)
	if err != nil {
		writeError(w, r, err)
		return
	}

	data := make([]TreeResponse, len(trees))
	for i, t := range trees {
		data[i] = treeToResponse(t)
	}
	writeJSON(w, http.StatusOK, ListResponse[TreeResponse]{
		Data:       data,
		Pagination: Pagination{Page: params.Page, Limit: params.Limit, Total: total},
	})
}

// GetTree handles GET /trees/{treeId}.
func (s *Server) GetTree(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "treeId")
	if !ok {
		return
	}
	tree, err := s.svc.Trees.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, treeToResponse(tree))
}

// DeleteTree handles DELETE /trees/{treeId}.
func (s *Server) DeleteTree(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "treeId")
	if !ok {
		return
	}
	if err := s.svc.Trees.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetLocationPolicy handles GET /trees/{treeId}/location-policy?nursery=.
func (s *Server) GetLocationPolicy(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "treeId")
	if !ok {
		return
	}
	var nursery *bool
	if !queryParam(w, r, "nursery", false, &nursery) {
		return
	}

	can, err := s.svc.Trees.CanUpdateLocation(r.Context(), id, nursery != nil && *nursery)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, LocationPolicyResponse{CanUpdate: can})
}

func requestToTree(req TreeRequest) domain.TreeSpec {
	return domain.TreeSpec{
		Name:          req.Name,
		Description:   req.Description,
		ExternalURL:   req.ExternalURL,
		ImageHash:     req.ImageHash,
		Symbol:        req.SymbolFS,
		SymbolHash:    req.SymbolHash,
		AnimationURL:  req.AnimationURL,
		Diameter:      req.Diameter,
		ImageFS:       req.ImageFS,
		ImageIPFSHash: req.ImageIPFSHash,
		Nursery:       req.Nursery,
		Latitude:      req.Latitude,
		Longitude:     req.Longitude,
		Attributes:    req.Attributes,
		Updates:       req.Updates,
		Locations:     req.Locations,
	}
}

func treeToResponse(t domain.TreeSpec) TreeResponse {
	return TreeResponse{
		ID:            t.ID,
		Name:          t.Name,
		Description:   t.Description,
		ExternalURL:   t.ExternalURL,
		ImageHash:     t.ImageHash,
		SymbolFS:      t.Symbol,
		SymbolHash:    t.SymbolHash,
		AnimationURL:  t.AnimationURL,
		Diameter:      t.Diameter,
		ImageFS:       t.ImageFS,
		ImageIPFSHash: t.ImageIPFSHash,
		Nursery:       t.Nursery,
		Latitude:      t.Latitude,
		Longitude:     t.Longitude,
		Attributes:    t.Attributes,
		Updates:       t.Updates,
		Locations:     t.Locations,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
}
