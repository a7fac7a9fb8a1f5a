package server

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/swaggest/swgui/v5emb"

	"github.com/locusmaps/scoutmap/internal/geocode"
	"github.com/locusmaps/scoutmap/internal/poi"
)

func addRoutes(r chi.Router, logger *slog.Logger, workspaces *Registry, catalog *poi.Catalog, geocoder *geocode.Client, spaDir string) {
	broker := NewBroker()

	r.Get("/openapi.json", handleOpenAPI())
	r.Mount("/docs", v5emb.New("Scoutmap API", "/openapi.json", "/docs"))
	r.Get("/healthz", handleHealth(logger, workspaces))

	// Shared read-only data: POI sources, demographic layers, geocoding.
	r.Get("/api/pois", handlePOIs(catalog))
	r.Get("/api/layers/{name}", handleLayer(catalog))
	r.Get("/api/geocode/reverse", handleReverseGeocode(logger, geocoder))

	// Workspace entities. {ws} is resolved by workspaceMiddleware.
	r.Route("/api/{ws}", func(r chi.Router) {
		r.Use(workspaceMiddleware(workspaces))

		r.Get("/session", handleSession())
		r.Get("/events", handleEvents(broker))

		r.Get("/lists", handleListLists())
		r.Post("/lists", handleCreateList(broker))
		r.Get("/lists/{id}", handleGetList())
		r.Put("/lists/{id}", handleUpdateList(broker))
		r.Delete("/lists/{id}", handleDeleteList(broker))
		r.Post("/lists/{id}/toggle", handleToggleInList(broker))
		r.Post("/lists/{id}/areas", handleAddDrawnArea(broker))
		r.Delete("/lists/{id}/areas/{areaID}", handleRemoveDrawnArea(broker))

		r.Get("/trips", handleListTrips())
		r.Post("/trips", handleCreateTrip(broker))
		r.Get("/trips/{id}", handleGetTrip())
		r.Put("/trips/{id}", handleUpdateTrip(broker))
		r.Delete("/trips/{id}", handleDeleteTrip(broker))
		r.Post("/trips/{id}/submit", handleSubmitTrip(broker))
		r.Post("/trips/{id}/approve", handleApproveTrip(broker))
		r.Post("/trips/{id}/reject", handleRejectTrip(broker))
		r.Put("/trips/{id}/property", handleSetTripProperty(broker))
		r.Post("/trips/{id}/places", handleAddRelatedPlace(broker))
		r.Delete("/trips/{id}/places/{placeID}", handleRemoveRelatedPlace(broker))
		r.Post("/trips/{id}/checklist", handleAddChecklistItem(broker))
		r.Put("/trips/{id}/checklist/{itemID}", handleUpdateChecklistItem(broker))
		r.Delete("/trips/{id}/checklist/{itemID}", handleDeleteChecklistItem(broker))
		r.Post("/trips/{id}/attachments", handleAddTripAttachment(broker))
		r.Delete("/trips/{id}/attachments/{attID}", handleRemoveTripAttachment(broker))
		r.Get("/trips/{id}/export", handleExportTrip(logger))

		r.Get("/attachments/{entityID}", handleListEntityAttachments())
		r.Post("/attachments/{entityID}", handleAddEntityAttachment(broker))
		r.Delete("/attachments/{entityID}/{attID}", handleRemoveEntityAttachment(broker))

		r.Get("/comments/{entityID}", handleListComments())
		r.Post("/comments/{entityID}", handleAddComment(broker))
		r.Delete("/comments/{entityID}/{commentID}", handleDeleteComment(broker))

		r.Get("/hidden", handleListHidden())
		r.Put("/hidden", handleSetHidden(broker))
		r.Post("/hidden/toggle", handleToggleHidden(broker))

		r.Get("/categories", handleListCategories())
		r.Post("/categories", handleCreateCategory(broker))
		r.Delete("/categories/{id}", handleDeleteCategory(broker))

		r.Get("/shapes", handleListShapes())
		r.Post("/shapes", handleCreateShape(broker))
		r.Delete("/shapes/{id}", handleDeleteShape(broker))
	})

	if h := newSPAHandler(spaDir, logger); h != nil {
		r.NotFound(h)
	}
}
