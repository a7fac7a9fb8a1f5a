package server

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/locusmaps/scoutmap/internal/scout"
)

type CreateListRequest struct {
	Name string `json:"name"`
}

type UpdateListRequest struct {
	Name      *string          `json:"name,omitempty"`
	VisitPlan *scout.VisitPlan `json:"visitPlan,omitempty"`
}

type ToggleRequest struct {
	Place scout.ListItem `json:"place"`
}

type ToggleResponse struct {
	WasAdded bool               `json:"wasAdded"`
	List     scout.LocationList `json:"list"`
}

func handleListLists() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lists, err := workspaceStore(r).ListLists(r.Context())
		if err != nil {
			writeStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, lists)
	}
}

func handleCreateList(broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateListRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if strings.TrimSpace(req.Name) == "" {
			writeError(w, http.StatusBadRequest, "name is required")
			return
		}

		list, err := workspaceStore(r).CreateList(r.Context(), req.Name)
		if err != nil {
			writeStoreError(w, err)
			return
		}

		broker.Publish(workspaceSlug(r), ChangeEvent{Entity: "lists", Action: "created", ID: list.ID})
		writeJSON(w, http.StatusCreated, list)
	}
}

func handleGetList() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := workspaceStore(r).GetList(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, list)
	}
}

func handleUpdateList(broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req UpdateListRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		store := workspaceStore(r)
		id := chi.URLParam(r, "id")

		if req.Name != nil {
			if _, err := store.RenameList(r.Context(), id, *req.Name); err != nil {
				writeStoreError(w, err)
				return
			}
		}
		if req.VisitPlan != nil {
			if _, err := store.SetVisitPlan(r.Context(), id, req.VisitPlan); err != nil {
				writeStoreError(w, err)
				return
			}
		}

		list, err := store.GetList(r.Context(), id)
		if err != nil {
			writeStoreError(w, err)
			return
		}

		broker.Publish(workspaceSlug(r), ChangeEvent{Entity: "lists", Action: "updated", ID: id})
		writeJSON(w, http.StatusOK, list)
	}
}

func handleDeleteList(broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if err := workspaceStore(r).DeleteList(r.Context(), id); err != nil {
			writeStoreError(w, err)
			return
		}
		broker.Publish(workspaceSlug(r), ChangeEvent{Entity: "lists", Action: "deleted", ID: id})
		w.WriteHeader(http.StatusOK)
	}
}

func handleToggleInList(broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ToggleRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.Place.PlaceID == "" {
			writeError(w, http.StatusBadRequest, "place.placeId is required")
			return
		}

		store := workspaceStore(r)
		id := chi.URLParam(r, "id")

		wasAdded, err := store.ToggleInList(r.Context(), id, req.Place)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		list, err := store.GetList(r.Context(), id)
		if err != nil {
			writeStoreError(w, err)
			return
		}

		broker.Publish(workspaceSlug(r), ChangeEvent{Entity: "lists", Action: "updated", ID: id})
		writeJSON(w, http.StatusOK, ToggleResponse{WasAdded: wasAdded, List: list})
	}
}

func handleAddDrawnArea(broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var area scout.DrawnAreaItem
		if err := readJSON(r, &area); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if area.AreaID == "" {
			writeError(w, http.StatusBadRequest, "areaId is required")
			return
		}

		id := chi.URLParam(r, "id")
		list, err := workspaceStore(r).AddDrawnArea(r.Context(), id, area)
		if err != nil {
			writeStoreError(w, err)
			return
		}

		broker.Publish(workspaceSlug(r), ChangeEvent{Entity: "lists", Action: "updated", ID: id})
		writeJSON(w, http.StatusOK, list)
	}
}

func handleRemoveDrawnArea(broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		list, err := workspaceStore(r).RemoveDrawnArea(r.Context(), id, chi.URLParam(r, "areaID"))
		if err != nil {
			writeStoreError(w, err)
			return
		}
		broker.Publish(workspaceSlug(r), ChangeEvent{Entity: "lists", Action: "updated", ID: id})
		writeJSON(w, http.StatusOK, list)
	}
}
