package handler

import (
	"bytes"
	"encoding/csv"
	"net/http"
	"strconv"
)

// csvHeaders is the first row of every CSV export.
var csvHeaders = []string{
	"tree_id", "name", "nursery", "latitude", "longitude",
	"update_count", "last_update_at", "previous_locations",
}

// ExportRow is one row of the JSON export.
type ExportRow struct {
	TreeID            string `json:"treeId"`
	Name              string `json:"name"`
	Nursery           bool   `json:"nursery"`
	Latitude          string `json:"latitude"`
	Longitude         string `json:"longitude"`
	UpdateCount       int    `json:"updateCount"`
	LastUpdateAt      string `json:"lastUpdateAt,omitempty"`
	PreviousLocations int    `json:"previousLocations"`
}

// GetExport handles GET /export. ?format=csv returns CSV; the default is JSON.
func (s *Server) GetExport(w http.ResponseWriter, r *http.Request) {
	var format *string
	if !queryParam(w, r, "format", false, &format) {
		return
	}
	wantCSV := false
	if format != nil {
		switch *format {
		case "csv":
			wantCSV = true
		case "json":
		default:
			badRequest(w, `format must be "csv" or "json"`)
			return
		}
	}

	rows, err := s.svc.Export.Export(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	if !wantCSV {
		out := make([]ExportRow, 0, len(rows))
		for _, row := range rows {
			out = append(out, ExportRow(row))
		}
		writeJSON(w, http.StatusOK, out)
		return
	}

	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)
	_ = cw.Write(csvHeaders) // bytes.Buffer writes never fail
	for _, row := range rows {
		_ = cw.Write([]string{
			row.TreeID,
			row.Name,
			strconv.FormatBool(row.Nursery),
			row.Latitude,
			row.Longitude,
			strconv.Itoa(row.UpdateCount),
			row.LastUpdateAt,
			strconv.Itoa(row.PreviousLocations),
		})
	}
	cw.Flush()

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="trees.csv"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
