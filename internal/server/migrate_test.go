package server

import (
	"encoding/json"
	"testing"
)

func envFromJSON(t *testing.T, raw string) map[string]any {
	t.Helper()
	var env map[string]any
	if err := json.Unmarshal([]byte(raw), &env); err != nil {
		t.Fatalf("parse fixture: %v", err)
	}
	return env
}

func TestEnvVersionDefaultsToOne(t *testing.T) {
	if v := envVersion(map[string]any{}); v != 1 {
		t.Errorf("missing version: expected 1, got %d", v)
	}
	if v := envVersion(map[string]any{"version": float64(3)}); v != 3 {
		t.Errorf("expected 3, got %d", v)
	}
	if v := envVersion(map[string]any{"version": "2"}); v != 1 {
		t.Errorf("non-numeric version: expected 1, got %d", v)
	}
}

func TestListsV1GetsDrawnAreas(t *testing.T) {
	env := envFromJSON(t, `{
		"lists": [
			{"id": "l1", "name": "Old list", "items": [{"placeId": "cafe-40.4168--3.7038"}]}
		]
	}`)

	env = applyMigrations(env, listsVersion, listMigrations)

	if v := env["version"]; v != listsVersion {
		t.Fatalf("expected version %d, got %v", listsVersion, v)
	}
	rec := env["lists"].([]any)[0].(map[string]any)
	areas, ok := rec["drawnAreas"].([]any)
	if !ok {
		t.Fatal("expected drawnAreas to be added")
	}
	if len(areas) != 0 {
		t.Errorf("expected empty drawnAreas, got %v", areas)
	}
	// Items present in v1 survive untouched.
	items := rec["items"].([]any)
	if len(items) != 1 {
		t.Errorf("expected 1 item, got %d", len(items))
	}
}

func TestTripsLinkedItemsBecomesPropertyAndPlaces(t *testing.T) {
	env := envFromJSON(t, `{
		"trips": [
			{"id": "t1", "linkedItems": [
				{"id": "p1", "name": "Corner unit"},
				{"id": "p2", "name": "Rival cafe"},
				{"id": "p3", "name": "Metro stop"}
			]}
		]
	}`)

	env = applyMigrations(env, tripsVersion, tripMigrations)

	rec := env["trips"].([]any)[0].(map[string]any)
	if _, ok := rec["linkedItems"]; ok {
		t.Error("expected linkedItems to be removed")
	}

	prop, ok := rec["property"].(map[string]any)
	if !ok {
		t.Fatal("expected first linked item to become property")
	}
	if prop["id"] != "p1" {
		t.Errorf("expected property id p1, got %v", prop["id"])
	}

	places := rec["relatedPlaces"].([]any)
	if len(places) != 2 {
		t.Fatalf("expected 2 related places, got %d", len(places))
	}
	if places[0].(map[string]any)["id"] != "p2" {
		t.Errorf("expected first related place p2, got %v", places[0])
	}
}

func TestTripsSingleLinkedItemLeavesPlacesEmpty(t *testing.T) {
	env := envFromJSON(t, `{
		"trips": [{"id": "t1", "linkedItems": [{"id": "p1"}]}]
	}`)

	env = applyMigrations(env, tripsVersion, tripMigrations)

	rec := env["trips"].([]any)[0].(map[string]any)
	if rec["property"].(map[string]any)["id"] != "p1" {
		t.Errorf("expected property p1, got %v", rec["property"])
	}
	if places := rec["relatedPlaces"].([]any); len(places) != 0 {
		t.Errorf("expected empty relatedPlaces, got %v", places)
	}
}

func TestTripsEmptyLinkedItemsClearsProperty(t *testing.T) {
	env := envFromJSON(t, `{
		"trips": [{"id": "t1", "linkedItems": []}]
	}`)

	env = applyMigrations(env, tripsVersion, tripMigrations)

	rec := env["trips"].([]any)[0].(map[string]any)
	if prop := rec["property"]; prop != nil {
		t.Errorf("expected nil property, got %v", prop)
	}
}

// A record that already has a property keeps it even when the stored
// version predates stamping.
func TestTripsExistingPropertyIsKept(t *testing.T) {
	env := envFromJSON(t, `{
		"version": 2,
		"trips": [
			{"id": "t1", "property": {"id": "p9"}, "linkedItems": [{"id": "p1"}]}
		]
	}`)

	env = applyMigrations(env, tripsVersion, tripMigrations)

	rec := env["trips"].([]any)[0].(map[string]any)
	if rec["property"].(map[string]any)["id"] != "p9" {
		t.Errorf("expected property p9 to survive, got %v", rec["property"])
	}
	if _, ok := rec["linkedItems"]; ok {
		t.Error("expected stale linkedItems to be dropped")
	}
}

// The legacy shape forces the step even when the stored version claims
// to be current.
func TestTripsMigrationRunsOnLegacyShapeRegardlessOfVersion(t *testing.T) {
	env := envFromJSON(t, `{
		"version": 2,
		"trips": [{"id": "t1", "linkedItems": [{"id": "p1"}]}]
	}`)

	env = applyMigrations(env, tripsVersion, tripMigrations)

	rec := env["trips"].([]any)[0].(map[string]any)
	if _, ok := rec["linkedItems"]; ok {
		t.Error("expected linkedItems to be migrated despite current version")
	}
	if rec["property"] == nil {
		t.Error("expected property to be set")
	}
}

func TestCurrentEnvelopePassesThrough(t *testing.T) {
	env := envFromJSON(t, `{
		"version": 2,
		"trips": [{"id": "t1", "property": null, "relatedPlaces": []}]
	}`)

	env = applyMigrations(env, tripsVersion, tripMigrations)

	if v := env["version"]; v != tripsVersion {
		t.Errorf("expected version %d, got %v", tripsVersion, v)
	}
}
