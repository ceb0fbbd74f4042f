package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/treejer/ranger/backend/internal/domain"
)

// OfflineMapRequest is the body of POST /offline-maps.
type OfflineMapRequest struct {
	Name     string `json:"name" validate:"required,max=200"`
	Size     string `json:"size"`
	AreaName string `json:"areaName"`
}

// OfflineMapResponse is a stored offline map record.
type OfflineMapResponse struct {
	Name      string    `json:"name"`
	Size      string    `json:"size"`
	AreaName  string    `json:"areaName"`
	CreatedAt time.Time `json:"createdAt"`
}

// AreaNameResponse is the body of GET /geocode/area-name.
type AreaNameResponse struct {
	AreaName string `json:"areaName"`
}

// ListOfflineMaps handles GET /offline-maps.
func (s *Server) ListOfflineMaps(w http.ResponseWriter, r *http.Request) {
	params, ok := pagination(w, r)
	if !ok {
		return
	}
	maps, err := s.svc.OfflineMaps.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	data := make([]OfflineMapResponse, len(maps))
	for i, m := range maps {
		data[i] = offlineMapToResponse(m)
	}
	writeJSON(w, http.StatusOK, pageOf(data, params))
}

// CreateOfflineMap handles POST /offline-maps.
func (s *Server) CreateOfflineMap(w http.ResponseWriter, r *http.Request) {
	var req OfflineMapRequest
	if err := s.decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	created, err := s.svc.OfflineMaps.Create(r.Context(), domain.OfflineMap{
		Name:     req.Name,
		Size:     req.Size,
		AreaName: req.AreaName,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, offlineMapToResponse(created))
}

// DeleteOfflineMap handles DELETE /offline-maps/{name}.
func (s *Server) DeleteOfflineMap(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.OfflineMaps.Delete(r.Context(), chi.URLParam(r, "name")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetAreaName handles GET /geocode/area-name?lat=&lon=.
func (s *Server) GetAreaName(w http.ResponseWriter, r *http.Request) {
	var lat, lon float64
	if !queryParam(w, r, "lat", true, &lat) || !queryParam(w, r, "lon", true, &lon) {
		return
	}
	name, err := s.svc.OfflineMaps.AreaName(r.Context(), domain.Coordinate{Latitude: lat, Longitude: lon})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, AreaNameResponse{AreaName: name})
}

func offlineMapToResponse(m domain.OfflineMap) OfflineMapResponse {
	return OfflineMapResponse{Name: m.Name, Size: m.Size, AreaName: m.AreaName, CreatedAt: m.CreatedAt}
}
