package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

func handleHealth(logger *slog.Logger, workspaces *Registry) http.HandlerFunc {
	type result struct {
		Status string `json:"status"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		checks := map[string]result{
			"workspaces": {Status: "ok"},
		}
		status := http.StatusOK

		if err := workspaces.Ping(ctx); err != nil {
			logger.Error("health check failed", "name", "workspaces", "error", err)
			checks["workspaces"] = result{Status: "error"}
			status = http.StatusServiceUnavailable
		}

		writeJSON(w, status, checks)
	}
}
