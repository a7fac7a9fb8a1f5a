package server

import "net/http"

type SetHiddenRequest struct {
	PlaceIDs []string `json:"placeIds"`
}

type ToggleHiddenRequest struct {
	PlaceID string `json:"placeId"`
}

type ToggleHiddenResponse struct {
	PlaceID string `json:"placeId"`
	Hidden  bool   `json:"hidden"`
}

func handleListHidden() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ids, err := workspaceStore(r).HiddenPOIs(r.Context())
		if err != nil {
			writeStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, ids)
	}
}

func handleSetHidden(broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SetHiddenRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		if err := workspaceStore(r).SetHidden(r.Context(), req.PlaceIDs); err != nil {
			writeStoreError(w, err)
			return
		}

		broker.Publish(workspaceSlug(r), ChangeEvent{Entity: "hidden", Action: "updated"})
		w.WriteHeader(http.StatusOK)
	}
}

func handleToggleHidden(broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ToggleHiddenRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.PlaceID == "" {
			writeError(w, http.StatusBadRequest, "placeId is required")
			return
		}

		hidden, err := workspaceStore(r).ToggleHidden(r.Context(), req.PlaceID)
		if err != nil {
			writeStoreError(w, err)
			return
		}

		broker.Publish(workspaceSlug(r), ChangeEvent{Entity: "hidden", Action: "updated", ID: req.PlaceID})
		writeJSON(w, http.StatusOK, ToggleHiddenResponse{PlaceID: req.PlaceID, Hidden: hidden})
	}
}
