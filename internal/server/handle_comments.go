package server

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

type AddCommentRequest struct {
	Content    string `json:"content"`
	AuthorName string `json:"authorName"`
}

func handleListComments() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		comments, err := workspaceStore(r).ListComments(r.Context(), chi.URLParam(r, "entityID"))
		if err != nil {
			writeStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, comments)
	}
}

func handleAddComment(broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AddCommentRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if strings.TrimSpace(req.Content) == "" {
			writeError(w, http.StatusBadRequest, "content is required")
			return
		}

		entityID := chi.URLParam(r, "entityID")
		comment, err := workspaceStore(r).AddComment(r.Context(), entityID, req.Content, req.AuthorName)
		if err != nil {
			writeStoreError(w, err)
			return
		}

		broker.Publish(workspaceSlug(r), ChangeEvent{Entity: "comments", Action: "created", ID: entityID})
		writeJSON(w, http.StatusCreated, comment)
	}
}

func handleDeleteComment(broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entityID := chi.URLParam(r, "entityID")
		if err := workspaceStore(r).DeleteComment(r.Context(), entityID, chi.URLParam(r, "commentID")); err != nil {
			writeStoreError(w, err)
			return
		}
		broker.Publish(workspaceSlug(r), ChangeEvent{Entity: "comments", Action: "deleted", ID: entityID})
		w.WriteHeader(http.StatusOK)
	}
}
