package server

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/locusmaps/scoutmap/internal/report"
)

func handleExportTrip(logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		trip, err := workspaceStore(r).GetTrip(r.Context(), id)
		if err != nil {
			writeStoreError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="trip-%s.xlsx"`, trip.ID))
		if err := report.Write(w, trip); err != nil {
			// Headers are already out; all we can do is log.
			logger.Error("writing trip report", "trip", id, "error", err)
		}
	}
}
