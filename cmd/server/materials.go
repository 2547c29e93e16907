package main

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/Simplici0/baogia/internal/catalog"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	maxXLSXBody     = 10 << 20
)

type importResponse struct {
	Status string `json:"status"`
	Items  int    `json:"items"`
}

func (s *server) handleMaterialsGet(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.catalog.Holder().Snapshot())
}

func (s *server) handleMaterialsReplace(w http.ResponseWriter, r *http.Request) {
	var c catalog.Catalog
	if err := decodeJSON(w, r, &c); err != nil {
		writeError(w, http.StatusBadRequest, "invalid catalog json")
		return
	}
	if !s.saveCatalog(w, r, c) {
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{Status: "ok"})
}

func (s *server) handleMaterialsExport(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="catalog.xlsx"`)
	if err := catalog.WriteXLSX(w, s.catalog.Holder().Snapshot()); err != nil {
		s.log.Error("export catalog", zap.Error(err))
		http.Error(w, "failed to export catalog", http.StatusInternalServerError)
	}
}

func (s *server) handleMaterialsImport(w http.ResponseWriter, r *http.Request) {
	c, err := catalog.ReadXLSX(http.MaxBytesReader(w, r.Body, maxXLSXBody))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !s.saveCatalog(w, r, c) {
		return
	}
	writeJSON(w, http.StatusOK, importResponse{Status: "ok", Items: c.Len()})
}

// saveCatalog replaces the stored catalog and writes the error response on
// failure.
func (s *server) saveCatalog(w http.ResponseWriter, r *http.Request, c catalog.Catalog) bool {
	return s.recordSave(w, s.catalog.Save(r.Context(), c))
}

// recordSave counts a save attempt and writes the error response for a failed
// one. It reports whether the save succeeded.
func (s *server) recordSave(w http.ResponseWriter, err error) bool {
	switch {
	case err == nil:
		s.metrics.CatalogSaves.WithLabelValues("ok").Inc()
		return true
	case errors.Is(err, catalog.ErrInvalidPrice):
		s.metrics.CatalogSaves.WithLabelValues("invalid").Inc()
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		s.metrics.CatalogSaves.WithLabelValues("error").Inc()
		s.log.Error("save catalog", zap.Error(err))
		writeError(w, http.StatusInternalServerError, catalog.SaveFailedMessage)
	}
	return false
}
