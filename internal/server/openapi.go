package server

import (
	"encoding/json"
	"net/http"

	openapi "github.com/swaggest/openapi-go"
	"github.com/swaggest/openapi-go/openapi3"

	"github.com/locusmaps/scoutmap/internal/geocode"
	"github.com/locusmaps/scoutmap/internal/poi"
	"github.com/locusmaps/scoutmap/internal/scout"
)

// ErrorResponse is returned for all error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

func newOpenAPISpec() *openapi3.Spec {
	r := openapi3.NewReflector()
	r.Spec.Info.Title = "Scoutmap API"
	r.Spec.Info.Version = "0.1.0"
	r.Spec.Info.WithDescription("Backend API for the Scoutmap location-scouting dashboard.")

	// GET /healthz
	getHealthz, _ := r.NewOperationContext(http.MethodGet, "/healthz")
	getHealthz.SetSummary("Health check")
	getHealthz.SetDescription("Returns the health status of open workspace databases.")
	getHealthz.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK))
	getHealthz.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusServiceUnavailable))
	_ = r.AddOperation(getHealthz)

	// GET /api/pois
	getPOIs, _ := r.NewOperationContext(http.MethodGet, "/api/pois")
	getPOIs.SetSummary("List POIs from a source")
	getPOIs.SetDescription("Normalizes the named CSV or GeoJSON source into uniform points. Pass source as query parameter.")
	getPOIs.AddRespStructure([]poi.POI{}, openapi.WithHTTPStatus(http.StatusOK))
	getPOIs.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(getPOIs)

	// GET /api/layers/{name}
	getLayer, _ := r.NewOperationContext(http.MethodGet, "/api/layers/{name}")
	getLayer.SetSummary("Get demographic layer")
	getLayer.SetDescription("Returns the named demographic overlay with its value range.")
	getLayer.AddRespStructure(poi.Layer{}, openapi.WithHTTPStatus(http.StatusOK))
	getLayer.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(getLayer)

	// GET /api/geocode/reverse
	getReverse, _ := r.NewOperationContext(http.MethodGet, "/api/geocode/reverse")
	getReverse.SetSummary("Reverse geocode")
	getReverse.SetDescription("Looks up the address at a coordinate. Pass lat and lng as query parameters.")
	getReverse.AddRespStructure(geocode.Result{}, openapi.WithHTTPStatus(http.StatusOK))
	getReverse.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadGateway))
	_ = r.AddOperation(getReverse)

	// GET /api/{ws}/session
	getSession, _ := r.NewOperationContext(http.MethodGet, "/api/{ws}/session")
	getSession.SetSummary("Workspace session")
	getSession.SetDescription("Returns the workspace's session id, created on first access.")
	getSession.AddRespStructure(SessionResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(getSession)

	// GET /api/{ws}/events
	getEvents, _ := r.NewOperationContext(http.MethodGet, "/api/{ws}/events")
	getEvents.SetSummary("SSE change stream")
	getEvents.SetDescription("Server-Sent Events stream of entity change notifications for the workspace.")
	getEvents.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK),
		openapi.WithContentType("text/event-stream"))
	_ = r.AddOperation(getEvents)

	// GET /api/{ws}/lists
	listLists, _ := r.NewOperationContext(http.MethodGet, "/api/{ws}/lists")
	listLists.SetSummary("List location lists")
	listLists.AddRespStructure([]scout.LocationList{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(listLists)

	// POST /api/{ws}/lists
	createList, _ := r.NewOperationContext(http.MethodPost, "/api/{ws}/lists")
	createList.SetSummary("Create location list")
	createList.AddReqStructure(CreateListRequest{})
	createList.AddRespStructure(scout.LocationList{}, openapi.WithHTTPStatus(http.StatusCreated))
	createList.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	_ = r.AddOperation(createList)

	// GET /api/{ws}/lists/{id}
	getList, _ := r.NewOperationContext(http.MethodGet, "/api/{ws}/lists/{id}")
	getList.SetSummary("Get location list")
	getList.AddRespStructure(scout.LocationList{}, openapi.WithHTTPStatus(http.StatusOK))
	getList.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(getList)

	// PUT /api/{ws}/lists/{id}
	updateList, _ := r.NewOperationContext(http.MethodPut, "/api/{ws}/lists/{id}")
	updateList.SetSummary("Update location list")
	updateList.SetDescription("Renames the list and/or replaces its visit plan.")
	updateList.AddReqStructure(UpdateListRequest{})
	updateList.AddRespStructure(scout.LocationList{}, openapi.WithHTTPStatus(http.StatusOK))
	updateList.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(updateList)

	// DELETE /api/{ws}/lists/{id}
	deleteList, _ := r.NewOperationContext(http.MethodDelete, "/api/{ws}/lists/{id}")
	deleteList.SetSummary("Delete location list")
	deleteList.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK))
	deleteList.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(deleteList)

	// POST /api/{ws}/lists/{id}/toggle
	toggle, _ := r.NewOperationContext(http.MethodPost, "/api/{ws}/lists/{id}/toggle")
	toggle.SetSummary("Toggle place in list")
	toggle.SetDescription("Adds the place if absent, removes it if present. Toggling twice restores the list.")
	toggle.AddReqStructure(ToggleRequest{})
	toggle.AddRespStructure(ToggleResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	toggle.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(toggle)

	// GET /api/{ws}/trips
	listTrips, _ := r.NewOperationContext(http.MethodGet, "/api/{ws}/trips")
	listTrips.SetSummary("List scouting trips")
	listTrips.AddRespStructure([]scout.ScoutingTrip{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(listTrips)

	// POST /api/{ws}/trips
	createTrip, _ := r.NewOperationContext(http.MethodPost, "/api/{ws}/trips")
	createTrip.SetSummary("Create scouting trip")
	createTrip.SetDescription("Creates a draft trip seeded with the default checklist.")
	createTrip.AddReqStructure(CreateTripRequest{})
	createTrip.AddRespStructure(scout.ScoutingTrip{}, openapi.WithHTTPStatus(http.StatusCreated))
	createTrip.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	_ = r.AddOperation(createTrip)

	// GET /api/{ws}/trips/{id}
	getTrip, _ := r.NewOperationContext(http.MethodGet, "/api/{ws}/trips/{id}")
	getTrip.SetSummary("Get scouting trip")
	getTrip.AddRespStructure(scout.ScoutingTrip{}, openapi.WithHTTPStatus(http.StatusOK))
	getTrip.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(getTrip)

	// POST /api/{ws}/trips/{id}/submit
	submitTrip, _ := r.NewOperationContext(http.MethodPost, "/api/{ws}/trips/{id}/submit")
	submitTrip.SetSummary("Submit trip for review")
	submitTrip.SetDescription("Moves a draft trip to submitted. Submitting again is a no-op.")
	submitTrip.AddRespStructure(scout.ScoutingTrip{}, openapi.WithHTTPStatus(http.StatusOK))
	submitTrip.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	_ = r.AddOperation(submitTrip)

	// POST /api/{ws}/trips/{id}/approve
	approveTrip, _ := r.NewOperationContext(http.MethodPost, "/api/{ws}/trips/{id}/approve")
	approveTrip.SetSummary("Approve trip")
	approveTrip.SetDescription("Approves a submitted trip. Approved and rejected are terminal.")
	approveTrip.AddReqStructure(ApproveTripRequest{})
	approveTrip.AddRespStructure(scout.ScoutingTrip{}, openapi.WithHTTPStatus(http.StatusOK))
	approveTrip.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	_ = r.AddOperation(approveTrip)

	// POST /api/{ws}/trips/{id}/reject
	rejectTrip, _ := r.NewOperationContext(http.MethodPost, "/api/{ws}/trips/{id}/reject")
	rejectTrip.SetSummary("Reject trip")
	rejectTrip.SetDescription("Rejects a submitted trip. Rejection notes are required.")
	rejectTrip.AddReqStructure(RejectTripRequest{})
	rejectTrip.AddRespStructure(scout.ScoutingTrip{}, openapi.WithHTTPStatus(http.StatusOK))
	rejectTrip.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	rejectTrip.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	_ = r.AddOperation(rejectTrip)

	// GET /api/{ws}/trips/{id}/export
	exportTrip, _ := r.NewOperationContext(http.MethodGet, "/api/{ws}/trips/{id}/export")
	exportTrip.SetSummary("Export trip report")
	exportTrip.SetDescription("Downloads the trip as a spreadsheet workbook.")
	exportTrip.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK),
		openapi.WithContentType("application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"))
	exportTrip.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(exportTrip)

	// GET /api/{ws}/attachments/{entityID}
	listAtts, _ := r.NewOperationContext(http.MethodGet, "/api/{ws}/attachments/{entityID}")
	listAtts.SetSummary("List entity attachments")
	listAtts.AddRespStructure([]scout.Attachment{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(listAtts)

	// POST /api/{ws}/attachments/{entityID}
	addAtt, _ := r.NewOperationContext(http.MethodPost, "/api/{ws}/attachments/{entityID}")
	addAtt.SetSummary("Add entity attachment")
	addAtt.SetDescription("Attaches a file to a POI or area. Limits: 5MB per file, 15MB per entity.")
	addAtt.AddReqStructure(scout.Attachment{})
	addAtt.AddRespStructure(scout.Attachment{}, openapi.WithHTTPStatus(http.StatusCreated))
	addAtt.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusRequestEntityTooLarge))
	addAtt.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnprocessableEntity))
	_ = r.AddOperation(addAtt)

	// GET /api/{ws}/comments/{entityID}
	listComments, _ := r.NewOperationContext(http.MethodGet, "/api/{ws}/comments/{entityID}")
	listComments.SetSummary("List entity comments")
	listComments.AddRespStructure([]scout.PoiComment{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(listComments)

	// POST /api/{ws}/comments/{entityID}
	addComment, _ := r.NewOperationContext(http.MethodPost, "/api/{ws}/comments/{entityID}")
	addComment.SetSummary("Add comment")
	addComment.AddReqStructure(AddCommentRequest{})
	addComment.AddRespStructure(scout.PoiComment{}, openapi.WithHTTPStatus(http.StatusCreated))
	addComment.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	_ = r.AddOperation(addComment)

	// GET /api/{ws}/hidden
	listHidden, _ := r.NewOperationContext(http.MethodGet, "/api/{ws}/hidden")
	listHidden.SetSummary("List hidden POIs")
	listHidden.AddRespStructure([]string{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(listHidden)

	// POST /api/{ws}/hidden/toggle
	toggleHidden, _ := r.NewOperationContext(http.MethodPost, "/api/{ws}/hidden/toggle")
	toggleHidden.SetSummary("Toggle POI visibility")
	toggleHidden.AddReqStructure(ToggleHiddenRequest{})
	toggleHidden.AddRespStructure(ToggleHiddenResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(toggleHidden)

	// GET /api/{ws}/categories
	listCats, _ := r.NewOperationContext(http.MethodGet, "/api/{ws}/categories")
	listCats.SetSummary("List point categories")
	listCats.AddRespStructure([]scout.PointCategory{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(listCats)

	// POST /api/{ws}/categories
	createCat, _ := r.NewOperationContext(http.MethodPost, "/api/{ws}/categories")
	createCat.SetSummary("Create point category")
	createCat.AddReqStructure(CreateCategoryRequest{})
	createCat.AddRespStructure(scout.PointCategory{}, openapi.WithHTTPStatus(http.StatusCreated))
	createCat.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	_ = r.AddOperation(createCat)

	// DELETE /api/{ws}/categories/{id}
	deleteCat, _ := r.NewOperationContext(http.MethodDelete, "/api/{ws}/categories/{id}")
	deleteCat.SetSummary("Delete point category")
	deleteCat.SetDescription("Blocked for system categories and categories still referenced by shapes.")
	deleteCat.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK))
	deleteCat.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	deleteCat.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(deleteCat)

	// GET /api/{ws}/shapes
	listShapes, _ := r.NewOperationContext(http.MethodGet, "/api/{ws}/shapes")
	listShapes.SetSummary("List drawn shapes")
	listShapes.AddRespStructure([]scout.Shape{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(listShapes)

	// POST /api/{ws}/shapes
	createShape, _ := r.NewOperationContext(http.MethodPost, "/api/{ws}/shapes")
	createShape.SetSummary("Create drawn shape")
	createShape.SetDescription("The shape's category must exist.")
	createShape.AddReqStructure(scout.Shape{})
	createShape.AddRespStructure(scout.Shape{}, openapi.WithHTTPStatus(http.StatusCreated))
	createShape.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	_ = r.AddOperation(createShape)

	return r.Spec
}

func handleOpenAPI() http.HandlerFunc {
	spec := newOpenAPISpec()
	data, _ := json.MarshalIndent(spec, "", "  ")

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}
