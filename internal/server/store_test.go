package server

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/locusmaps/scoutmap/internal/database"
	"github.com/locusmaps/scoutmap/internal/scout"
)

func setupStore(t *testing.T) *WorkspaceStore {
	t.Helper()
	ctx := context.Background()

	db, err := database.Open(ctx, ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	store, err := NewWorkspaceStore(ctx, db, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("init store: %v", err)
	}
	return store
}

func testPlace(placeID string) scout.ListItem {
	return scout.ListItem{
		PlaceID: placeID,
		Name:    "Cafe Central",
		Type:    "cafe",
		Lat:     40.4168,
		Lng:     -3.7038,
	}
}

func TestToggleAddsThenRemoves(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	list, err := store.CreateList(ctx, "Cafes to visit")
	if err != nil {
		t.Fatalf("create list: %v", err)
	}

	place := testPlace("cafe-40.4168--3.7038")

	wasAdded, err := store.ToggleInList(ctx, list.ID, place)
	if err != nil {
		t.Fatalf("first toggle: %v", err)
	}
	if !wasAdded {
		t.Error("expected first toggle to add")
	}

	got, _ := store.GetList(ctx, list.ID)
	if len(got.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(got.Items))
	}
	if got.Items[0].AddedAt == "" {
		t.Error("expected addedAt to be stamped")
	}

	wasAdded, err = store.ToggleInList(ctx, list.ID, place)
	if err != nil {
		t.Fatalf("second toggle: %v", err)
	}
	if wasAdded {
		t.Error("expected second toggle to remove")
	}

	got, _ = store.GetList(ctx, list.ID)
	if len(got.Items) != 0 {
		t.Errorf("expected empty list after toggle pair, got %d items", len(got.Items))
	}
}

func TestToggleNeverDuplicates(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	list, _ := store.CreateList(ctx, "Dedup")
	place := testPlace("cafe-40.4168--3.7038")

	store.ToggleInList(ctx, list.ID, place)
	store.ToggleInList(ctx, list.ID, place)
	store.ToggleInList(ctx, list.ID, place)

	got, _ := store.GetList(ctx, list.ID)
	if len(got.Items) != 1 {
		t.Errorf("expected exactly 1 entry after odd toggle count, got %d", len(got.Items))
	}
}

func TestAddDrawnAreaIsIdempotent(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	list, _ := store.CreateList(ctx, "Zones")
	area := scout.DrawnAreaItem{AreaID: "area-1", Name: "Search zone", Kind: "polygon"}

	got, err := store.AddDrawnArea(ctx, list.ID, area)
	if err != nil {
		t.Fatalf("first add: %v", err)
	}
	if len(got.DrawnAreas) != 1 {
		t.Fatalf("expected 1 area, got %d", len(got.DrawnAreas))
	}
	if got.DrawnAreas[0].AddedAt == "" {
		t.Error("expected addedAt to be stamped")
	}
	stamped := got.DrawnAreas[0].AddedAt

	// Re-adding the same areaId changes nothing, including the stamp.
	got, err = store.AddDrawnArea(ctx, list.ID, area)
	if err != nil {
		t.Fatalf("second add: %v", err)
	}
	if len(got.DrawnAreas) != 1 {
		t.Errorf("expected 1 area after double add, got %d", len(got.DrawnAreas))
	}
	if got.DrawnAreas[0].AddedAt != stamped {
		t.Errorf("expected addedAt %q to survive re-add, got %q", stamped, got.DrawnAreas[0].AddedAt)
	}
}

func TestRemoveDrawnAreaTwice(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	list, _ := store.CreateList(ctx, "Zones")
	store.AddDrawnArea(ctx, list.ID, scout.DrawnAreaItem{AreaID: "area-1", Name: "Zone", Kind: "circle"})

	got, err := store.RemoveDrawnArea(ctx, list.ID, "area-1")
	if err != nil {
		t.Fatalf("first remove: %v", err)
	}
	if len(got.DrawnAreas) != 0 {
		t.Fatalf("expected no areas, got %d", len(got.DrawnAreas))
	}

	// Removing an absent area is a no-op, not an error.
	got, err = store.RemoveDrawnArea(ctx, list.ID, "area-1")
	if err != nil {
		t.Errorf("expected second remove to be a no-op, got %v", err)
	}
	if len(got.DrawnAreas) != 0 {
		t.Errorf("expected no areas, got %d", len(got.DrawnAreas))
	}

	// The list itself must still exist for the call to succeed.
	if _, err := store.RemoveDrawnArea(ctx, "nope", "area-1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown list, got %v", err)
	}
}

func TestCreateListRejectsBlankName(t *testing.T) {
	store := setupStore(t)

	_, err := store.CreateList(context.Background(), "   ")
	if !errors.Is(err, ErrConflict) {
		t.Errorf("expected ErrConflict for blank name, got %v", err)
	}
}

func TestCorruptBlobDegradesToEmpty(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	store.CreateList(ctx, "Doomed")

	// Overwrite the stored blob with garbage.
	_, err := store.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO blobs (key, data) VALUES (?, jsonb(?))`,
		keyLists, `"not an object"`,
	)
	if err != nil {
		t.Fatalf("corrupting blob: %v", err)
	}

	lists, err := store.ListLists(ctx)
	if err != nil {
		t.Fatalf("expected corruption to be swallowed, got %v", err)
	}
	if len(lists) != 0 {
		t.Errorf("expected empty collection, got %d lists", len(lists))
	}

	// The store remains writable.
	if _, err := store.CreateList(ctx, "Fresh start"); err != nil {
		t.Fatalf("create after corruption: %v", err)
	}
}

func TestTripLifecycle(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	trip, err := store.CreateTrip(ctx, "madrid")
	if err != nil {
		t.Fatalf("create trip: %v", err)
	}
	if trip.Status != scout.StatusDraft {
		t.Errorf("expected draft, got %s", trip.Status)
	}
	if len(trip.Checklist) != len(scout.DefaultChecklistQuestions) {
		t.Errorf("expected %d seeded checklist items, got %d",
			len(scout.DefaultChecklistQuestions), len(trip.Checklist))
	}

	// Approval requires submission first.
	if _, err := store.ApproveTrip(ctx, trip.ID, "ana"); !errors.Is(err, ErrConflict) {
		t.Errorf("expected ErrConflict approving a draft, got %v", err)
	}

	trip, err = store.SubmitTrip(ctx, trip.ID)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if trip.Status != scout.StatusSubmitted || trip.SubmittedAt == "" {
		t.Errorf("expected submitted with timestamp, got %+v", trip)
	}

	// Re-submitting is allowed and keeps the status.
	trip, err = store.SubmitTrip(ctx, trip.ID)
	if err != nil {
		t.Fatalf("re-submit: %v", err)
	}
	if trip.Status != scout.StatusSubmitted {
		t.Errorf("expected submitted after re-submit, got %s", trip.Status)
	}

	trip, err = store.ApproveTrip(ctx, trip.ID, "ana")
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if trip.Status != scout.StatusApproved || trip.ReviewedBy != "ana" {
		t.Errorf("expected approved by ana, got %+v", trip)
	}

	// Approved is terminal.
	if _, err := store.SubmitTrip(ctx, trip.ID); !errors.Is(err, ErrConflict) {
		t.Errorf("expected ErrConflict submitting an approved trip, got %v", err)
	}
	if _, err := store.RejectTrip(ctx, trip.ID, "ana", "late"); !errors.Is(err, ErrConflict) {
		t.Errorf("expected ErrConflict rejecting an approved trip, got %v", err)
	}
}

func TestRejectRequiresNotes(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	trip, _ := store.CreateTrip(ctx, "madrid")
	store.SubmitTrip(ctx, trip.ID)

	if _, err := store.RejectTrip(ctx, trip.ID, "ana", "  "); !errors.Is(err, ErrConflict) {
		t.Errorf("expected ErrConflict for blank notes, got %v", err)
	}

	rejected, err := store.RejectTrip(ctx, trip.ID, "ana", "asking rent too high")
	if err != nil {
		t.Fatalf("reject: %v", err)
	}
	if rejected.Status != scout.StatusRejected || rejected.RejectionNotes == "" {
		t.Errorf("expected rejected with notes, got %+v", rejected)
	}
}

func TestPropertyAndRelatedPlacesAreDisjoint(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	trip, _ := store.CreateTrip(ctx, "madrid")

	place := scout.LinkedItem{ID: "property-40.4200--3.7100", Name: "Corner unit", Kind: "poi"}
	if _, err := store.AddRelatedPlace(ctx, trip.ID, place); err != nil {
		t.Fatalf("add related place: %v", err)
	}

	// The same id cannot become the property.
	if _, err := store.SetTripProperty(ctx, trip.ID, &place); !errors.Is(err, ErrConflict) {
		t.Errorf("expected ErrConflict, got %v", err)
	}

	other := scout.LinkedItem{ID: "property-40.4300--3.7200", Name: "High street unit", Kind: "poi"}
	got, err := store.SetTripProperty(ctx, trip.ID, &other)
	if err != nil {
		t.Fatalf("set property: %v", err)
	}
	if got.Property == nil || got.Property.ID != other.ID {
		t.Errorf("expected property %s, got %+v", other.ID, got.Property)
	}

	// Adding the property id as a related place is a silent no-op.
	got, err = store.AddRelatedPlace(ctx, trip.ID, other)
	if err != nil {
		t.Fatalf("re-add property as place: %v", err)
	}
	if len(got.RelatedPlaces) != 1 {
		t.Errorf("expected 1 related place, got %d", len(got.RelatedPlaces))
	}
}

func TestDefaultChecklistItemsAreNotDeletable(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	trip, _ := store.CreateTrip(ctx, "madrid")
	defaultID := trip.Checklist[0].ID

	if _, err := store.DeleteChecklistItem(ctx, trip.ID, defaultID); !errors.Is(err, ErrConflict) {
		t.Errorf("expected ErrConflict deleting a default item, got %v", err)
	}

	trip, err := store.AddChecklistItem(ctx, trip.ID, "Is there street parking?")
	if err != nil {
		t.Fatalf("add item: %v", err)
	}
	customID := trip.Checklist[len(trip.Checklist)-1].ID

	trip, err = store.DeleteChecklistItem(ctx, trip.ID, customID)
	if err != nil {
		t.Fatalf("delete custom item: %v", err)
	}
	for _, it := range trip.Checklist {
		if it.ID == customID {
			t.Error("expected custom item to be gone")
		}
	}
}

func TestOversizedAttachmentLeavesTripUntouched(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	trip, _ := store.CreateTrip(ctx, "madrid")

	big := scout.Attachment{
		Name: "floorplan.png",
		Type: "image/png",
		Data: "aGVsbG8=",
		Size: scout.MaxAttachmentSize + 1,
	}
	_, err := store.AddTripAttachment(ctx, trip.ID, big)

	var attErr *scout.AttachmentError
	if !errors.As(err, &attErr) || attErr.Code != "too_large" {
		t.Fatalf("expected too_large, got %v", err)
	}

	got, _ := store.GetTrip(ctx, trip.ID)
	if len(got.Attachments) != 0 {
		t.Errorf("expected no attachments after rejection, got %d", len(got.Attachments))
	}
}

func TestEntityAttachmentTotalCap(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	att := scout.Attachment{
		Name: "site.jpg",
		Type: "image/jpeg",
		Data: "aGVsbG8=",
		Size: 4 << 20,
	}
	for i := 0; i < 3; i++ {
		if _, err := store.AddEntityAttachment(ctx, "cafe-40.4168--3.7038", att); err != nil {
			t.Fatalf("attachment %d: %v", i, err)
		}
	}

	// A fourth 4MB file would cross the 15MB entity cap.
	_, err := store.AddEntityAttachment(ctx, "cafe-40.4168--3.7038", att)
	var attErr *scout.AttachmentError
	if !errors.As(err, &attErr) || attErr.Code != "total_exceeded" {
		t.Fatalf("expected total_exceeded, got %v", err)
	}

	atts, _ := store.ListEntityAttachments(ctx, "cafe-40.4168--3.7038")
	if len(atts) != 3 {
		t.Errorf("expected 3 attachments, got %d", len(atts))
	}
}

func TestCommentDefaultsAuthor(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	c, err := store.AddComment(ctx, "cafe-40.4168--3.7038", "Great corner visibility", "")
	if err != nil {
		t.Fatalf("add comment: %v", err)
	}
	if c.AuthorName != "Anonymous" {
		t.Errorf("expected Anonymous, got %q", c.AuthorName)
	}

	if _, err := store.AddComment(ctx, "cafe-40.4168--3.7038", "   ", "ana"); !errors.Is(err, ErrConflict) {
		t.Errorf("expected ErrConflict for blank content, got %v", err)
	}
}

func TestToggleHidden(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	hidden, err := store.ToggleHidden(ctx, "cafe-40.4168--3.7038")
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !hidden {
		t.Error("expected first toggle to hide")
	}

	hidden, _ = store.ToggleHidden(ctx, "cafe-40.4168--3.7038")
	if hidden {
		t.Error("expected second toggle to unhide")
	}

	ids, _ := store.HiddenPOIs(ctx)
	if len(ids) != 0 {
		t.Errorf("expected empty hidden set, got %v", ids)
	}
}

func TestSystemCategoriesAreSeededAndProtected(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	cats, err := store.ListCategories(ctx)
	if err != nil {
		t.Fatalf("list categories: %v", err)
	}
	if len(cats) != len(scout.SystemCategories) {
		t.Fatalf("expected %d seeded categories, got %d", len(scout.SystemCategories), len(cats))
	}

	if err := store.DeleteCategory(ctx, cats[0].ID); !errors.Is(err, ErrConflict) {
		t.Errorf("expected ErrConflict deleting a system category, got %v", err)
	}
}

func TestCategoryDeletionBlockedWhileReferenced(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	cat, err := store.CreateCategory(ctx, "Scaffolding", "#ff8800")
	if err != nil {
		t.Fatalf("create category: %v", err)
	}

	shape, err := store.CreateShape(ctx, scout.Shape{
		Name:       "Works on Gran Via",
		Kind:       "point",
		CategoryID: cat.ID,
		Lat:        40.4203,
		Lng:        -3.7058,
	})
	if err != nil {
		t.Fatalf("create shape: %v", err)
	}

	if err := store.DeleteCategory(ctx, cat.ID); !errors.Is(err, ErrConflict) {
		t.Errorf("expected ErrConflict while referenced, got %v", err)
	}

	if err := store.DeleteShape(ctx, shape.ID); err != nil {
		t.Fatalf("delete shape: %v", err)
	}
	if err := store.DeleteCategory(ctx, cat.ID); err != nil {
		t.Errorf("expected deletion after shape removed, got %v", err)
	}
}

func TestDuplicateCategoryNameRejected(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	if _, err := store.CreateCategory(ctx, "Roadworks", "#ff0000"); err != nil {
		t.Fatalf("create: %v", err)
	}
	_, err := store.CreateCategory(ctx, "roadworks", "#00ff00")
	if !errors.Is(err, ErrConflict) {
		t.Errorf("expected ErrConflict for case-insensitive duplicate, got %v", err)
	}
}

func TestShapeRequiresExistingCategory(t *testing.T) {
	store := setupStore(t)

	_, err := store.CreateShape(context.Background(), scout.Shape{
		Name:       "Orphan",
		Kind:       "point",
		CategoryID: "cat-nope",
	})
	if !errors.Is(err, ErrConflict) {
		t.Errorf("expected ErrConflict for unknown category, got %v", err)
	}
}

func TestSessionIDIsStable(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	first, err := store.SessionID(ctx)
	if err != nil {
		t.Fatalf("session: %v", err)
	}
	if first == "" {
		t.Fatal("expected a session id")
	}

	second, _ := store.SessionID(ctx)
	if first != second {
		t.Errorf("expected stable session id, got %q then %q", first, second)
	}
}

func TestLegacyTripsBlobMigratesOnLoad(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	legacy := `{"trips": [{"id": "t1", "cityId": "madrid", "status": "draft",
		"linkedItems": [{"id": "p1", "name": "Corner unit"}, {"id": "p2", "name": "Rival"}],
		"createdAt": "2024-01-01T00:00:00.000Z", "updatedAt": "2024-01-01T00:00:00.000Z"}]}`
	_, err := store.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO blobs (key, data) VALUES (?, jsonb(?))`,
		keyTrips, legacy,
	)
	if err != nil {
		t.Fatalf("seeding legacy blob: %v", err)
	}

	trip, err := store.GetTrip(ctx, "t1")
	if err != nil {
		t.Fatalf("get migrated trip: %v", err)
	}
	if trip.Property == nil || trip.Property.ID != "p1" {
		t.Errorf("expected property p1, got %+v", trip.Property)
	}
	if len(trip.RelatedPlaces) != 1 || trip.RelatedPlaces[0].ID != "p2" {
		t.Errorf("expected related place p2, got %+v", trip.RelatedPlaces)
	}
	if len(trip.Checklist) != 0 {
		// Migration defaults collections but never invents checklist content.
		t.Errorf("expected empty checklist on migrated trip, got %d items", len(trip.Checklist))
	}
	if !strings.HasPrefix(trip.CreatedAt, "2024-01-01") {
		t.Errorf("expected createdAt to survive, got %q", trip.CreatedAt)
	}
}
