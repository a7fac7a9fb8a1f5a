package server

import (
	"context"
	"errors"
	"fmt"

	"github.com/locusmaps/scoutmap/internal/scout"
)

type shapesBlob struct {
	Version int           `json:"version"`
	Shapes  []scout.Shape `json:"shapes"`
}

func (s *WorkspaceStore) loadShapes(ctx context.Context) (shapesBlob, error) {
	empty := shapesBlob{Version: blobVersion, Shapes: []scout.Shape{}}

	env, err := s.loadEnvelope(ctx, keyShapes)
	if errors.Is(err, ErrNotFound) {
		return empty, nil
	}
	if err != nil {
		return empty, err
	}

	var b shapesBlob
	if !s.decodeEnvelope(keyShapes, env, &b) {
		return empty, nil
	}
	b.Version = blobVersion
	if b.Shapes == nil {
		b.Shapes = []scout.Shape{}
	}
	return b, nil
}

func (s *WorkspaceStore) ListShapes(ctx context.Context) ([]scout.Shape, error) {
	b, err := s.loadShapes(ctx)
	if err != nil {
		return nil, err
	}
	return b.Shapes, nil
}

// CreateShape stores drawn-shape metadata. A point referencing a
// category must reference one that exists.
func (s *WorkspaceStore) CreateShape(ctx context.Context, shape scout.Shape) (scout.Shape, error) {
	if shape.CategoryID != "" {
		cats, err := s.loadCategories(ctx)
		if err != nil {
			return scout.Shape{}, err
		}
		found := false
		for _, c := range cats.Categories {
			if c.ID == shape.CategoryID {
				found = true
				break
			}
		}
		if !found {
			return scout.Shape{}, fmt.Errorf("%w: unknown category %q", ErrConflict, shape.CategoryID)
		}
	}

	b, err := s.loadShapes(ctx)
	if err != nil {
		return scout.Shape{}, err
	}
	shape.ID = newID()
	shape.CreatedAt = nowUTC()
	b.Shapes = append(b.Shapes, shape)
	s.saveBlob(ctx, keyShapes, b)
	return shape, nil
}

func (s *WorkspaceStore) DeleteShape(ctx context.Context, id string) error {
	b, err := s.loadShapes(ctx)
	if err != nil {
		return err
	}
	for i, sh := range b.Shapes {
		if sh.ID == id {
			b.Shapes = append(b.Shapes[:i], b.Shapes[i+1:]...)
			s.saveBlob(ctx, keyShapes, b)
			return nil
		}
	}
	return ErrNotFound
}
