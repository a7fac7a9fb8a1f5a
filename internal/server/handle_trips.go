package server

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/locusmaps/scoutmap/internal/scout"
)

type CreateTripRequest struct {
	CityID string `json:"cityId"`
}

type RejectTripRequest struct {
	Reviewer string `json:"reviewer"`
	Notes    string `json:"notes"`
}

type ApproveTripRequest struct {
	Reviewer string `json:"reviewer"`
}

type SetPropertyRequest struct {
	Property *scout.LinkedItem `json:"property"`
}

type ChecklistItemRequest struct {
	Question string `json:"question"`
}

type ChecklistUpdateRequest struct {
	IsChecked bool   `json:"isChecked"`
	Notes     string `json:"notes"`
}

func handleListTrips() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		trips, err := workspaceStore(r).ListTrips(r.Context())
		if err != nil {
			writeStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, trips)
	}
}

func handleCreateTrip(broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateTripRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if strings.TrimSpace(req.CityID) == "" {
			writeError(w, http.StatusBadRequest, "cityId is required")
			return
		}

		trip, err := workspaceStore(r).CreateTrip(r.Context(), req.CityID)
		if err != nil {
			writeStoreError(w, err)
			return
		}

		broker.Publish(workspaceSlug(r), ChangeEvent{Entity: "trips", Action: "created", ID: trip.ID})
		writeJSON(w, http.StatusCreated, trip)
	}
}

func handleGetTrip() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		trip, err := workspaceStore(r).GetTrip(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, trip)
	}
}

func handleUpdateTrip(broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var lease scout.LeaseBrief
		if err := readJSON(r, &lease); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		id := chi.URLParam(r, "id")
		trip, err := workspaceStore(r).UpdateTripBrief(r.Context(), id, lease)
		if err != nil {
			writeStoreError(w, err)
			return
		}

		broker.Publish(workspaceSlug(r), ChangeEvent{Entity: "trips", Action: "updated", ID: id})
		writeJSON(w, http.StatusOK, trip)
	}
}

func handleDeleteTrip(broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if err := workspaceStore(r).DeleteTrip(r.Context(), id); err != nil {
			writeStoreError(w, err)
			return
		}
		broker.Publish(workspaceSlug(r), ChangeEvent{Entity: "trips", Action: "deleted", ID: id})
		w.WriteHeader(http.StatusOK)
	}
}

func handleSubmitTrip(broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		trip, err := workspaceStore(r).SubmitTrip(r.Context(), id)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		broker.Publish(workspaceSlug(r), ChangeEvent{Entity: "trips", Action: "updated", ID: id})
		writeJSON(w, http.StatusOK, trip)
	}
}

func handleApproveTrip(broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ApproveTripRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		id := chi.URLParam(r, "id")
		trip, err := workspaceStore(r).ApproveTrip(r.Context(), id, req.Reviewer)
		if err != nil {
			writeStoreError(w, err)
			return
		}

		broker.Publish(workspaceSlug(r), ChangeEvent{Entity: "trips", Action: "updated", ID: id})
		writeJSON(w, http.StatusOK, trip)
	}
}

func handleRejectTrip(broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RejectTripRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if strings.TrimSpace(req.Notes) == "" {
			writeError(w, http.StatusBadRequest, "rejection notes are required")
			return
		}

		id := chi.URLParam(r, "id")
		trip, err := workspaceStore(r).RejectTrip(r.Context(), id, req.Reviewer, req.Notes)
		if err != nil {
			writeStoreError(w, err)
			return
		}

		broker.Publish(workspaceSlug(r), ChangeEvent{Entity: "trips", Action: "updated", ID: id})
		writeJSON(w, http.StatusOK, trip)
	}
}

func handleSetTripProperty(broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SetPropertyRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		id := chi.URLParam(r, "id")
		trip, err := workspaceStore(r).SetTripProperty(r.Context(), id, req.Property)
		if err != nil {
			writeStoreError(w, err)
			return
		}

		broker.Publish(workspaceSlug(r), ChangeEvent{Entity: "trips", Action: "updated", ID: id})
		writeJSON(w, http.StatusOK, trip)
	}
}

func handleAddRelatedPlace(broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var place scout.LinkedItem
		if err := readJSON(r, &place); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if place.ID == "" {
			writeError(w, http.StatusBadRequest, "id is required")
			return
		}

		id := chi.URLParam(r, "id")
		trip, err := workspaceStore(r).AddRelatedPlace(r.Context(), id, place)
		if err != nil {
			writeStoreError(w, err)
			return
		}

		broker.Publish(workspaceSlug(r), ChangeEvent{Entity: "trips", Action: "updated", ID: id})
		writeJSON(w, http.StatusOK, trip)
	}
}

func handleRemoveRelatedPlace(broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		trip, err := workspaceStore(r).RemoveRelatedPlace(r.Context(), id, chi.URLParam(r, "placeID"))
		if err != nil {
			writeStoreError(w, err)
			return
		}
		broker.Publish(workspaceSlug(r), ChangeEvent{Entity: "trips", Action: "updated", ID: id})
		writeJSON(w, http.StatusOK, trip)
	}
}

func handleAddChecklistItem(broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ChecklistItemRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if strings.TrimSpace(req.Question) == "" {
			writeError(w, http.StatusBadRequest, "question is required")
			return
		}

		id := chi.URLParam(r, "id")
		trip, err := workspaceStore(r).AddChecklistItem(r.Context(), id, req.Question)
		if err != nil {
			writeStoreError(w, err)
			return
		}

		broker.Publish(workspaceSlug(r), ChangeEvent{Entity: "trips", Action: "updated", ID: id})
		writeJSON(w, http.StatusOK, trip)
	}
}

func handleUpdateChecklistItem(broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ChecklistUpdateRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		id := chi.URLParam(r, "id")
		trip, err := workspaceStore(r).UpdateChecklistItem(r.Context(), id, chi.URLParam(r, "itemID"), req.IsChecked, req.Notes)
		if err != nil {
			writeStoreError(w, err)
			return
		}

		broker.Publish(workspaceSlug(r), ChangeEvent{Entity: "trips", Action: "updated", ID: id})
		writeJSON(w, http.StatusOK, trip)
	}
}

func handleDeleteChecklistItem(broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		trip, err := workspaceStore(r).DeleteChecklistItem(r.Context(), id, chi.URLParam(r, "itemID"))
		if err != nil {
			writeStoreError(w, err)
			return
		}
		broker.Publish(workspaceSlug(r), ChangeEvent{Entity: "trips", Action: "updated", ID: id})
		writeJSON(w, http.StatusOK, trip)
	}
}

func handleAddTripAttachment(broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var att scout.Attachment
		if err := readJSON(r, &att); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		id := chi.URLParam(r, "id")
		trip, err := workspaceStore(r).AddTripAttachment(r.Context(), id, att)
		if err != nil {
			writeStoreError(w, err)
			return
		}

		broker.Publish(workspaceSlug(r), ChangeEvent{Entity: "trips", Action: "updated", ID: id})
		writeJSON(w, http.StatusOK, trip)
	}
}

func handleRemoveTripAttachment(broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		trip, err := workspaceStore(r).RemoveTripAttachment(r.Context(), id, chi.URLParam(r, "attID"))
		if err != nil {
			writeStoreError(w, err)
			return
		}
		broker.Publish(workspaceSlug(r), ChangeEvent{Entity: "trips", Action: "updated", ID: id})
		writeJSON(w, http.StatusOK, trip)
	}
}
