package server

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/locusmaps/scoutmap/internal/geocode"
)

func handleReverseGeocode(logger *slog.Logger, geocoder *geocode.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lat, errLat := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
		lng, errLng := strconv.ParseFloat(r.URL.Query().Get("lng"), 64)
		if errLat != nil || errLng != nil {
			writeError(w, http.StatusBadRequest, "lat and lng query parameters required")
			return
		}

		result, err := geocoder.Reverse(r.Context(), lat, lng)
		if err != nil {
			logger.Error("reverse geocode failed", "lat", lat, "lng", lng, "error", err)
			writeError(w, http.StatusBadGateway, "geocoding unavailable")
			return
		}
		writeJSON(w, http.StatusOK, result)
	}
}
