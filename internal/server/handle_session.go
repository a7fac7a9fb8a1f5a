package server

import "net/http"

type SessionResponse struct {
	SessionID string `json:"sessionId"`
	Workspace string `json:"workspace"`
}

func handleSession() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := workspaceStore(r).SessionID(r.Context())
		if err != nil {
			writeStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, SessionResponse{SessionID: id, Workspace: workspaceSlug(r)})
	}
}
