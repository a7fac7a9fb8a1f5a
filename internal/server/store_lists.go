package server

import (
	"context"
	"errors"
	"strings"

	"github.com/locusmaps/scoutmap/internal/scout"
)

type listsBlob struct {
	Version int                  `json:"version"`
	Lists   []scout.LocationList `json:"lists"`
}

func (s *WorkspaceStore) loadLists(ctx context.Context) (listsBlob, error) {
	empty := listsBlob{Version: listsVersion, Lists: []scout.LocationList{}}

	env, err := s.loadEnvelope(ctx, keyLists)
	if errors.Is(err, ErrNotFound) {
		return empty, nil
	}
	if err != nil {
		return empty, err
	}

	env = applyMigrations(env, listsVersion, listMigrations)

	var b listsBlob
	if !s.decodeEnvelope(keyLists, env, &b) {
		return empty, nil
	}
	b.Version = listsVersion
	if b.Lists == nil {
		b.Lists = []scout.LocationList{}
	}
	for i := range b.Lists {
		if b.Lists[i].Items == nil {
			b.Lists[i].Items = []scout.ListItem{}
		}
		if b.Lists[i].DrawnAreas == nil {
			b.Lists[i].DrawnAreas = []scout.DrawnAreaItem{}
		}
	}
	return b, nil
}

// modifyLists loads the lists blob, applies fn, and rewrites it whole.
func (s *WorkspaceStore) modifyLists(ctx context.Context, fn func(*listsBlob) error) error {
	b, err := s.loadLists(ctx)
	if err != nil {
		return err
	}
	if err := fn(&b); err != nil {
		return err
	}
	s.saveBlob(ctx, keyLists, b)
	return nil
}

func (s *WorkspaceStore) ListLists(ctx context.Context) ([]scout.LocationList, error) {
	b, err := s.loadLists(ctx)
	if err != nil {
		return nil, err
	}
	return b.Lists, nil
}

func (s *WorkspaceStore) CreateList(ctx context.Context, name string) (scout.LocationList, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return scout.LocationList{}, ErrConflict
	}

	list := scout.LocationList{
		ID:         newID(),
		Name:       name,
		CreatedAt:  nowUTC(),
		Items:      []scout.ListItem{},
		DrawnAreas: []scout.DrawnAreaItem{},
	}
	err := s.modifyLists(ctx, func(b *listsBlob) error {
		b.Lists = append(b.Lists, list)
		return nil
	})
	return list, err
}

func (s *WorkspaceStore) GetList(ctx context.Context, id string) (scout.LocationList, error) {
	b, err := s.loadLists(ctx)
	if err != nil {
		return scout.LocationList{}, err
	}
	for _, l := range b.Lists {
		if l.ID == id {
			return l, nil
		}
	}
	return scout.LocationList{}, ErrNotFound
}

func (s *WorkspaceStore) RenameList(ctx context.Context, id, name string) (scout.LocationList, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return scout.LocationList{}, ErrConflict
	}

	var out scout.LocationList
	err := s.modifyLists(ctx, func(b *listsBlob) error {
		for i := range b.Lists {
			if b.Lists[i].ID == id {
				b.Lists[i].Name = name
				out = b.Lists[i]
				return nil
			}
		}
		return ErrNotFound
	})
	return out, err
}

func (s *WorkspaceStore) SetVisitPlan(ctx context.Context, id string, plan *scout.VisitPlan) (scout.LocationList, error) {
	var out scout.LocationList
	err := s.modifyLists(ctx, func(b *listsBlob) error {
		for i := range b.Lists {
			if b.Lists[i].ID == id {
				b.Lists[i].VisitPlan = plan
				out = b.Lists[i]
				return nil
			}
		}
		return ErrNotFound
	})
	return out, err
}

func (s *WorkspaceStore) DeleteList(ctx context.Context, id string) error {
	return s.modifyLists(ctx, func(b *listsBlob) error {
		for i := range b.Lists {
			if b.Lists[i].ID == id {
				b.Lists = append(b.Lists[:i], b.Lists[i+1:]...)
				return nil
			}
		}
		return ErrNotFound
	})
}

// ToggleInList adds place to the list, or removes it if an entry with
// the same placeId is already present. Membership is keyed by placeId
// only, so a list never holds two entries for the same place.
func (s *WorkspaceStore) ToggleInList(ctx context.Context, listID string, place scout.ListItem) (bool, error) {
	var wasAdded bool
	err := s.modifyLists(ctx, func(b *listsBlob) error {
		for i := range b.Lists {
			if b.Lists[i].ID != listID {
				continue
			}
			for j, it := range b.Lists[i].Items {
				if it.PlaceID == place.PlaceID {
					b.Lists[i].Items = append(b.Lists[i].Items[:j], b.Lists[i].Items[j+1:]...)
					wasAdded = false
					return nil
				}
			}
			place.AddedAt = nowUTC()
			b.Lists[i].Items = append(b.Lists[i].Items, place)
			wasAdded = true
			return nil
		}
		return ErrNotFound
	})
	return wasAdded, err
}

func (s *WorkspaceStore) AddDrawnArea(ctx context.Context, listID string, area scout.DrawnAreaItem) (scout.LocationList, error) {
	var out scout.LocationList
	err := s.modifyLists(ctx, func(b *listsBlob) error {
		for i := range b.Lists {
			if b.Lists[i].ID != listID {
				continue
			}
			for _, a := range b.Lists[i].DrawnAreas {
				if a.AreaID == area.AreaID {
					// Idempotent add.
					out = b.Lists[i]
					return nil
				}
			}
			area.AddedAt = nowUTC()
			b.Lists[i].DrawnAreas = append(b.Lists[i].DrawnAreas, area)
			out = b.Lists[i]
			return nil
		}
		return ErrNotFound
	})
	return out, err
}

func (s *WorkspaceStore) RemoveDrawnArea(ctx context.Context, listID, areaID string) (scout.LocationList, error) {
	var out scout.LocationList
	err := s.modifyLists(ctx, func(b *listsBlob) error {
		for i := range b.Lists {
			if b.Lists[i].ID != listID {
				continue
			}
			for j, a := range b.Lists[i].DrawnAreas {
				if a.AreaID == areaID {
					b.Lists[i].DrawnAreas = append(b.Lists[i].DrawnAreas[:j], b.Lists[i].DrawnAreas[j+1:]...)
					break
				}
			}
			out = b.Lists[i]
			return nil
		}
		return ErrNotFound
	})
	return out, err
}
