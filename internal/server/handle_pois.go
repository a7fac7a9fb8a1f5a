package server

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/locusmaps/scoutmap/internal/poi"
)

func handlePOIs(catalog *poi.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		source := r.URL.Query().Get("source")
		if source == "" {
			writeError(w, http.StatusBadRequest, "source query parameter required")
			return
		}

		pois, err := catalog.Source(source)
		if err != nil {
			if errors.Is(err, poi.ErrNoSource) {
				writeError(w, http.StatusNotFound, "unknown source")
				return
			}
			writeError(w, http.StatusInternalServerError, "loading source failed")
			return
		}
		writeJSON(w, http.StatusOK, pois)
	}
}

func handleLayer(catalog *poi.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		layer, err := catalog.LayerByName(chi.URLParam(r, "name"))
		if err != nil {
			if errors.Is(err, poi.ErrNoSource) {
				writeError(w, http.StatusNotFound, "unknown layer")
				return
			}
			writeError(w, http.StatusInternalServerError, "loading layer failed")
			return
		}
		writeJSON(w, http.StatusOK, layer)
	}
}
