package server

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/locusmaps/scoutmap/internal/scout"
)

type categoriesBlob struct {
	Version    int                   `json:"version"`
	Categories []scout.PointCategory `json:"categories"`
}

func (s *WorkspaceStore) loadCategories(ctx context.Context) (categoriesBlob, error) {
	empty := categoriesBlob{Version: blobVersion, Categories: []scout.PointCategory{}}

	env, err := s.loadEnvelope(ctx, keyCategories)
	if errors.Is(err, ErrNotFound) {
		return empty, nil
	}
	if err != nil {
		return empty, err
	}

	var b categoriesBlob
	if !s.decodeEnvelope(keyCategories, env, &b) {
		return empty, nil
	}
	b.Version = blobVersion
	if b.Categories == nil {
		b.Categories = []scout.PointCategory{}
	}
	return b, nil
}

func (s *WorkspaceStore) ListCategories(ctx context.Context) ([]scout.PointCategory, error) {
	b, err := s.loadCategories(ctx)
	if err != nil {
		return nil, err
	}
	return b.Categories, nil
}

func (s *WorkspaceStore) CreateCategory(ctx context.Context, name, color string) (scout.PointCategory, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return scout.PointCategory{}, ErrConflict
	}

	b, err := s.loadCategories(ctx)
	if err != nil {
		return scout.PointCategory{}, err
	}
	for _, c := range b.Categories {
		if strings.EqualFold(c.Name, name) {
			return scout.PointCategory{}, fmt.Errorf("%w: category %q already exists", ErrConflict, name)
		}
	}

	cat := scout.PointCategory{
		ID:        newID(),
		Name:      name,
		Color:     color,
		CreatedAt: nowUTC(),
	}
	b.Categories = append(b.Categories, cat)
	s.saveBlob(ctx, keyCategories, b)
	return cat, nil
}

// DeleteCategory removes a user-defined category. System categories are
// protected, and deletion is blocked while any drawn point still
// references the category.
func (s *WorkspaceStore) DeleteCategory(ctx context.Context, id string) error {
	b, err := s.loadCategories(ctx)
	if err != nil {
		return err
	}

	idx := -1
	for i, c := range b.Categories {
		if c.ID == id {
			if c.IsSystem {
				return fmt.Errorf("%w: system categories cannot be deleted", ErrConflict)
			}
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrNotFound
	}

	shapes, err := s.loadShapes(ctx)
	if err != nil {
		return err
	}
	for _, sh := range shapes.Shapes {
		if sh.CategoryID == id {
			return fmt.Errorf("%w: category is referenced by drawn point %q", ErrConflict, sh.ID)
		}
	}

	b.Categories = append(b.Categories[:idx], b.Categories[idx+1:]...)
	s.saveBlob(ctx, keyCategories, b)
	return nil
}
