package server

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

type CreateCategoryRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

func handleListCategories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cats, err := workspaceStore(r).ListCategories(r.Context())
		if err != nil {
			writeStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, cats)
	}
}

func handleCreateCategory(broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateCategoryRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if strings.TrimSpace(req.Name) == "" {
			writeError(w, http.StatusBadRequest, "name is required")
			return
		}

		cat, err := workspaceStore(r).CreateCategory(r.Context(), req.Name, req.Color)
		if err != nil {
			writeStoreError(w, err)
			return
		}

		broker.Publish(workspaceSlug(r), ChangeEvent{Entity: "categories", Action: "created", ID: cat.ID})
		writeJSON(w, http.StatusCreated, cat)
	}
}

func handleDeleteCategory(broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if err := workspaceStore(r).DeleteCategory(r.Context(), id); err != nil {
			writeStoreError(w, err)
			return
		}
		broker.Publish(workspaceSlug(r), ChangeEvent{Entity: "categories", Action: "deleted", ID: id})
		w.WriteHeader(http.StatusOK)
	}
}
