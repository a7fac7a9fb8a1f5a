package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/locusmaps/scoutmap/internal/scout"
)

func handleListShapes() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		shapes, err := workspaceStore(r).ListShapes(r.Context())
		if err != nil {
			writeStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, shapes)
	}
}

func handleCreateShape(broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var shape scout.Shape
		if err := readJSON(r, &shape); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if shape.Kind == "" {
			writeError(w, http.StatusBadRequest, "kind is required")
			return
		}

		saved, err := workspaceStore(r).CreateShape(r.Context(), shape)
		if err != nil {
			writeStoreError(w, err)
			return
		}

		broker.Publish(workspaceSlug(r), ChangeEvent{Entity: "shapes", Action: "created", ID: saved.ID})
		writeJSON(w, http.StatusCreated, saved)
	}
}

func handleDeleteShape(broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if err := workspaceStore(r).DeleteShape(r.Context(), id); err != nil {
			writeStoreError(w, err)
			return
		}
		broker.Publish(workspaceSlug(r), ChangeEvent{Entity: "shapes", Action: "deleted", ID: id})
		w.WriteHeader(http.StatusOK)
	}
}
