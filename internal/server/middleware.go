package server

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type ctxKey int

const (
	ctxKeyStore ctxKey = iota
	ctxKeyWorkspace
)

// workspaceMiddleware resolves the {ws} URL segment to a workspace
// store and puts it on the request context.
func workspaceMiddleware(workspaces *Registry) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			slug := chi.URLParam(r, "ws")
			if slug == "" {
				writeError(w, http.StatusNotFound, "workspace not found")
				return
			}

			store, err := workspaces.Get(r.Context(), slug)
			if err != nil {
				writeError(w, http.StatusNotFound, "workspace not found")
				return
			}

			ctx := context.WithValue(r.Context(), ctxKeyStore, Store(store))
			ctx = context.WithValue(ctx, ctxKeyWorkspace, slug)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func workspaceStore(r *http.Request) Store {
	return r.Context().Value(ctxKeyStore).(Store)
}

func workspaceSlug(r *http.Request) string {
	return r.Context().Value(ctxKeyWorkspace).(string)
}
