package server

import (
	"context"
	"log/slog"

	"github.com/locusmaps/scoutmap/internal/scout"
)

func systemCategories(now string) []scout.PointCategory {
	cats := make([]scout.PointCategory, len(scout.SystemCategories))
	copy(cats, scout.SystemCategories)
	for i := range cats {
		cats[i].CreatedAt = now
	}
	return cats
}

// SeedDemo creates the demo workspace with a sample list and trip if no
// workspace databases exist yet. Idempotent: does nothing once the demo
// workspace has any lists.
func SeedDemo(ctx context.Context, logger *slog.Logger, workspaces *Registry) error {
	store, err := workspaces.Get(ctx, "demo")
	if err != nil {
		return err
	}

	lists, err := store.ListLists(ctx)
	if err != nil {
		return err
	}
	if len(lists) > 0 {
		return nil
	}

	list, err := store.CreateList(ctx, "Cafes to visit")
	if err != nil {
		return err
	}
	_, err = store.ToggleInList(ctx, list.ID, scout.ListItem{
		PlaceID: "cafe-40.4168--3.7038",
		Name:    "Café Central",
		Type:    "cafe",
		Lat:     40.4168,
		Lng:     -3.7038,
		Address: "Plaza del Ángel 10",
	})
	if err != nil {
		return err
	}

	trip, err := store.CreateTrip(ctx, "madrid")
	if err != nil {
		return err
	}
	_, err = store.SetTripProperty(ctx, trip.ID, &scout.LinkedItem{
		ID:   "property-40.4200--3.7100",
		Name: "Calle Mayor 12, ground floor",
		Kind: "poi",
		Lat:  40.42,
		Lng:  -3.71,
	})
	if err != nil {
		return err
	}

	logger.Info("demo workspace created and seeded")
	return nil
}
