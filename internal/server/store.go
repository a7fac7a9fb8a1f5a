package server

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"errors"
	"log/slog"
	"time"

	"github.com/locusmaps/scoutmap/internal/scout"
)

var (
	ErrNotFound = errors.New("not found")
	// ErrConflict marks an operation blocked by current state: deleting
	// a referenced category, reviewing a draft trip, and the like.
	ErrConflict = errors.New("conflict")
)

// Store is the CRUD surface over one workspace's persisted entities.
// Every mutation rewrites the owning blob whole; reads always return
// freshly built collections, never aliases of stored state.
type Store interface {
	// Location lists.
	ListLists(ctx context.Context) ([]scout.LocationList, error)
	CreateList(ctx context.Context, name string) (scout.LocationList, error)
	GetList(ctx context.Context, id string) (scout.LocationList, error)
	RenameList(ctx context.Context, id, name string) (scout.LocationList, error)
	SetVisitPlan(ctx context.Context, id string, plan *scout.VisitPlan) (scout.LocationList, error)
	DeleteList(ctx context.Context, id string) error
	ToggleInList(ctx context.Context, listID string, place scout.ListItem) (wasAdded bool, err error)
	AddDrawnArea(ctx context.Context, listID string, area scout.DrawnAreaItem) (scout.LocationList, error)
	RemoveDrawnArea(ctx context.Context, listID, areaID string) (scout.LocationList, error)

	// Scouting trips.
	ListTrips(ctx context.Context) ([]scout.ScoutingTrip, error)
	CreateTrip(ctx context.Context, cityID string) (scout.ScoutingTrip, error)
	GetTrip(ctx context.Context, id string) (scout.ScoutingTrip, error)
	UpdateTripBrief(ctx context.Context, id string, lease scout.LeaseBrief) (scout.ScoutingTrip, error)
	DeleteTrip(ctx context.Context, id string) error
	SubmitTrip(ctx context.Context, id string) (scout.ScoutingTrip, error)
	ApproveTrip(ctx context.Context, id, reviewer string) (scout.ScoutingTrip, error)
	RejectTrip(ctx context.Context, id, reviewer, notes string) (scout.ScoutingTrip, error)
	SetTripProperty(ctx context.Context, id string, property *scout.LinkedItem) (scout.ScoutingTrip, error)
	AddRelatedPlace(ctx context.Context, id string, place scout.LinkedItem) (scout.ScoutingTrip, error)
	RemoveRelatedPlace(ctx context.Context, id, placeID string) (scout.ScoutingTrip, error)
	AddChecklistItem(ctx context.Context, tripID, question string) (scout.ScoutingTrip, error)
	UpdateChecklistItem(ctx context.Context, tripID, itemID string, isChecked bool, notes string) (scout.ScoutingTrip, error)
	DeleteChecklistItem(ctx context.Context, tripID, itemID string) (scout.ScoutingTrip, error)
	AddTripAttachment(ctx context.Context, tripID string, att scout.Attachment) (scout.ScoutingTrip, error)
	RemoveTripAttachment(ctx context.Context, tripID, attID string) (scout.ScoutingTrip, error)

	// POI attachments (keyed by owning entity id).
	ListEntityAttachments(ctx context.Context, entityID string) ([]scout.Attachment, error)
	AddEntityAttachment(ctx context.Context, entityID string, att scout.Attachment) (scout.Attachment, error)
	RemoveEntityAttachment(ctx context.Context, entityID, attID string) error

	// POI comments.
	ListComments(ctx context.Context, entityID string) ([]scout.PoiComment, error)
	AddComment(ctx context.Context, entityID, content, authorName string) (scout.PoiComment, error)
	DeleteComment(ctx context.Context, entityID, commentID string) error

	// Hidden-POI set.
	HiddenPOIs(ctx context.Context) ([]string, error)
	ToggleHidden(ctx context.Context, placeID string) (nowHidden bool, err error)
	SetHidden(ctx context.Context, placeIDs []string) error

	// Point categories.
	ListCategories(ctx context.Context) ([]scout.PointCategory, error)
	CreateCategory(ctx context.Context, name, color string) (scout.PointCategory, error)
	DeleteCategory(ctx context.Context, id string) error

	// Drawn shapes.
	ListShapes(ctx context.Context) ([]scout.Shape, error)
	CreateShape(ctx context.Context, shape scout.Shape) (scout.Shape, error)
	DeleteShape(ctx context.Context, id string) error

	// Session id for this workspace, created on first access.
	SessionID(ctx context.Context) (string, error)
}

// WorkspaceStore implements Store over a single workspace database using
// one versioned JSON blob per entity type.
type WorkspaceStore struct {
	db     *sql.DB
	logger *slog.Logger
}

func NewWorkspaceStore(ctx context.Context, db *sql.DB, logger *slog.Logger) (*WorkspaceStore, error) {
	s := &WorkspaceStore{db: db, logger: logger}
	if err := s.initSchema(ctx); err != nil {
		return nil, err
	}
	if err := s.seedDefaults(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func newID() string {
	b := make([]byte, 16)
	rand.Read(b)
	return hex.EncodeToString(b)
}

func nowUTC() string {
	return time.Now().UTC().Format("2006-01-02T15:04:05.000Z")
}

// Ensure WorkspaceStore implements Store at compile time.
var _ Store = (*WorkspaceStore)(nil)
