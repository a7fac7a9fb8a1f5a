package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/locusmaps/scoutmap/internal/scout"
)

func handleListEntityAttachments() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		atts, err := workspaceStore(r).ListEntityAttachments(r.Context(), chi.URLParam(r, "entityID"))
		if err != nil {
			writeStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, atts)
	}
}

func handleAddEntityAttachment(broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var att scout.Attachment
		if err := readJSON(r, &att); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		entityID := chi.URLParam(r, "entityID")
		saved, err := workspaceStore(r).AddEntityAttachment(r.Context(), entityID, att)
		if err != nil {
			writeStoreError(w, err)
			return
		}

		broker.Publish(workspaceSlug(r), ChangeEvent{Entity: "attachments", Action: "created", ID: entityID})
		writeJSON(w, http.StatusCreated, saved)
	}
}

func handleRemoveEntityAttachment(broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entityID := chi.URLParam(r, "entityID")
		if err := workspaceStore(r).RemoveEntityAttachment(r.Context(), entityID, chi.URLParam(r, "attID")); err != nil {
			writeStoreError(w, err)
			return
		}
		broker.Publish(workspaceSlug(r), ChangeEvent{Entity: "attachments", Action: "deleted", ID: entityID})
		w.WriteHeader(http.StatusOK)
	}
}
