package server

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/locusmaps/scoutmap/internal/scout"
)

type tripsBlob struct {
	Version int                  `json:"version"`
	Trips   []scout.ScoutingTrip `json:"trips"`
}

func (s *WorkspaceStore) loadTrips(ctx context.Context) (tripsBlob, error) {
	empty := tripsBlob{Version: tripsVersion, Trips: []scout.ScoutingTrip{}}

	env, err := s.loadEnvelope(ctx, keyTrips)
	if errors.Is(err, ErrNotFound) {
		return empty, nil
	}
	if err != nil {
		return empty, err
	}

	env = applyMigrations(env, tripsVersion, tripMigrations)

	var b tripsBlob
	if !s.decodeEnvelope(keyTrips, env, &b) {
		return empty, nil
	}
	b.Version = tripsVersion
	if b.Trips == nil {
		b.Trips = []scout.ScoutingTrip{}
	}
	for i := range b.Trips {
		t := &b.Trips[i]
		if t.RelatedPlaces == nil {
			t.RelatedPlaces = []scout.LinkedItem{}
		}
		if t.Checklist == nil {
			t.Checklist = []scout.ChecklistItem{}
		}
		if t.Attachments == nil {
			t.Attachments = []scout.Attachment{}
		}
		if t.Status == "" {
			t.Status = scout.StatusDraft
		}
	}
	return b, nil
}

func (s *WorkspaceStore) modifyTrips(ctx context.Context, fn func(*tripsBlob) error) error {
	b, err := s.loadTrips(ctx)
	if err != nil {
		return err
	}
	if err := fn(&b); err != nil {
		return err
	}
	s.saveBlob(ctx, keyTrips, b)
	return nil
}

// modifyTrip locates one trip, applies fn, stamps updatedAt, and saves.
func (s *WorkspaceStore) modifyTrip(ctx context.Context, id string, fn func(*scout.ScoutingTrip) error) (scout.ScoutingTrip, error) {
	var out scout.ScoutingTrip
	err := s.modifyTrips(ctx, func(b *tripsBlob) error {
		for i := range b.Trips {
			if b.Trips[i].ID == id {
				if err := fn(&b.Trips[i]); err != nil {
					return err
				}
				b.Trips[i].UpdatedAt = nowUTC()
				out = b.Trips[i]
				return nil
			}
		}
		return ErrNotFound
	})
	return out, err
}

func (s *WorkspaceStore) ListTrips(ctx context.Context) ([]scout.ScoutingTrip, error) {
	b, err := s.loadTrips(ctx)
	if err != nil {
		return nil, err
	}
	return b.Trips, nil
}

func (s *WorkspaceStore) CreateTrip(ctx context.Context, cityID string) (scout.ScoutingTrip, error) {
	now := nowUTC()
	trip := scout.ScoutingTrip{
		ID:            newID(),
		CityID:        cityID,
		Status:        scout.StatusDraft,
		RelatedPlaces: []scout.LinkedItem{},
		Checklist:     scout.DefaultChecklist(newID),
		Attachments:   []scout.Attachment{},
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	err := s.modifyTrips(ctx, func(b *tripsBlob) error {
		b.Trips = append(b.Trips, trip)
		return nil
	})
	return trip, err
}

func (s *WorkspaceStore) GetTrip(ctx context.Context, id string) (scout.ScoutingTrip, error) {
	b, err := s.loadTrips(ctx)
	if err != nil {
		return scout.ScoutingTrip{}, err
	}
	for _, t := range b.Trips {
		if t.ID == id {
			return t, nil
		}
	}
	return scout.ScoutingTrip{}, ErrNotFound
}

func (s *WorkspaceStore) UpdateTripBrief(ctx context.Context, id string, lease scout.LeaseBrief) (scout.ScoutingTrip, error) {
	return s.modifyTrip(ctx, id, func(t *scout.ScoutingTrip) error {
		t.Lease = lease
		return nil
	})
}

func (s *WorkspaceStore) DeleteTrip(ctx context.Context, id string) error {
	return s.modifyTrips(ctx, func(b *tripsBlob) error {
		for i := range b.Trips {
			if b.Trips[i].ID == id {
				b.Trips = append(b.Trips[:i], b.Trips[i+1:]...)
				return nil
			}
		}
		return ErrNotFound
	})
}

// SubmitTrip moves a draft to submitted and stamps submittedAt.
// Submitting an already submitted trip is idempotent on shape; only the
// timestamp refreshes.
func (s *WorkspaceStore) SubmitTrip(ctx context.Context, id string) (scout.ScoutingTrip, error) {
	return s.modifyTrip(ctx, id, func(t *scout.ScoutingTrip) error {
		if !scout.CanTransition(t.Status, scout.StatusSubmitted) {
			return fmt.Errorf("%w: cannot submit a %s trip", ErrConflict, t.Status)
		}
		t.Status = scout.StatusSubmitted
		t.SubmittedAt = nowUTC()
		return nil
	})
}

func (s *WorkspaceStore) ApproveTrip(ctx context.Context, id, reviewer string) (scout.ScoutingTrip, error) {
	return s.modifyTrip(ctx, id, func(t *scout.ScoutingTrip) error {
		if !scout.CanTransition(t.Status, scout.StatusApproved) {
			return fmt.Errorf("%w: cannot approve a %s trip", ErrConflict, t.Status)
		}
		t.Status = scout.StatusApproved
		t.ReviewedAt = nowUTC()
		t.ReviewedBy = reviewer
		return nil
	})
}

func (s *WorkspaceStore) RejectTrip(ctx context.Context, id, reviewer, notes string) (scout.ScoutingTrip, error) {
	if strings.TrimSpace(notes) == "" {
		return scout.ScoutingTrip{}, fmt.Errorf("%w: rejection requires notes", ErrConflict)
	}
	return s.modifyTrip(ctx, id, func(t *scout.ScoutingTrip) error {
		if !scout.CanTransition(t.Status, scout.StatusRejected) {
			return fmt.Errorf("%w: cannot reject a %s trip", ErrConflict, t.Status)
		}
		t.Status = scout.StatusRejected
		t.ReviewedAt = nowUTC()
		t.ReviewedBy = reviewer
		t.RejectionNotes = notes
		return nil
	})
}

// SetTripProperty sets or clears the trip's property. The property id
// may not also appear among related places.
func (s *WorkspaceStore) SetTripProperty(ctx context.Context, id string, property *scout.LinkedItem) (scout.ScoutingTrip, error) {
	return s.modifyTrip(ctx, id, func(t *scout.ScoutingTrip) error {
		if property != nil {
			for _, p := range t.RelatedPlaces {
				if p.ID == property.ID {
					return fmt.Errorf("%w: %q is already a related place", ErrConflict, property.ID)
				}
			}
		}
		t.Property = property
		return nil
	})
}

func (s *WorkspaceStore) AddRelatedPlace(ctx context.Context, id string, place scout.LinkedItem) (scout.ScoutingTrip, error) {
	return s.modifyTrip(ctx, id, func(t *scout.ScoutingTrip) error {
		if t.HasLinked(place.ID) {
			// Idempotent add.
			return nil
		}
		t.RelatedPlaces = append(t.RelatedPlaces, place)
		return nil
	})
}

func (s *WorkspaceStore) RemoveRelatedPlace(ctx context.Context, id, placeID string) (scout.ScoutingTrip, error) {
	return s.modifyTrip(ctx, id, func(t *scout.ScoutingTrip) error {
		for i, p := range t.RelatedPlaces {
			if p.ID == placeID {
				t.RelatedPlaces = append(t.RelatedPlaces[:i], t.RelatedPlaces[i+1:]...)
				return nil
			}
		}
		return nil
	})
}

func (s *WorkspaceStore) AddChecklistItem(ctx context.Context, tripID, question string) (scout.ScoutingTrip, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return scout.ScoutingTrip{}, fmt.Errorf("%w: empty question", ErrConflict)
	}
	return s.modifyTrip(ctx, tripID, func(t *scout.ScoutingTrip) error {
		t.Checklist = append(t.Checklist, scout.ChecklistItem{
			ID:       newID(),
			Question: question,
		})
		return nil
	})
}

func (s *WorkspaceStore) UpdateChecklistItem(ctx context.Context, tripID, itemID string, isChecked bool, notes string) (scout.ScoutingTrip, error) {
	return s.modifyTrip(ctx, tripID, func(t *scout.ScoutingTrip) error {
		for i := range t.Checklist {
			if t.Checklist[i].ID == itemID {
				t.Checklist[i].IsChecked = isChecked
				t.Checklist[i].Notes = notes
				return nil
			}
		}
		return ErrNotFound
	})
}

// DeleteChecklistItem removes a user-added item. Seeded default items
// are not deletable.
func (s *WorkspaceStore) DeleteChecklistItem(ctx context.Context, tripID, itemID string) (scout.ScoutingTrip, error) {
	return s.modifyTrip(ctx, tripID, func(t *scout.ScoutingTrip) error {
		for i := range t.Checklist {
			if t.Checklist[i].ID != itemID {
				continue
			}
			if t.Checklist[i].IsDefault {
				return fmt.Errorf("%w: default checklist items cannot be deleted", ErrConflict)
			}
			t.Checklist = append(t.Checklist[:i], t.Checklist[i+1:]...)
			return nil
		}
		return ErrNotFound
	})
}

func (s *WorkspaceStore) AddTripAttachment(ctx context.Context, tripID string, att scout.Attachment) (scout.ScoutingTrip, error) {
	return s.modifyTrip(ctx, tripID, func(t *scout.ScoutingTrip) error {
		if err := scout.ValidateAttachment(att, t.Attachments); err != nil {
			return err
		}
		att.ID = newID()
		att.AddedAt = nowUTC()
		t.Attachments = append(t.Attachments, att)
		return nil
	})
}

func (s *WorkspaceStore) RemoveTripAttachment(ctx context.Context, tripID, attID string) (scout.ScoutingTrip, error) {
	return s.modifyTrip(ctx, tripID, func(t *scout.ScoutingTrip) error {
		for i, a := range t.Attachments {
			if a.ID == attID {
				t.Attachments = append(t.Attachments[:i], t.Attachments[i+1:]...)
				return nil
			}
		}
		return ErrNotFound
	})
}
