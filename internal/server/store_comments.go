package server

import (
	"context"
	"errors"
	"strings"

	"github.com/locusmaps/scoutmap/internal/scout"
)

type commentsBlob struct {
	Version  int                           `json:"version"`
	ByEntity map[string][]scout.PoiComment `json:"byEntity"`
}

func (s *WorkspaceStore) loadComments(ctx context.Context) (commentsBlob, error) {
	empty := commentsBlob{Version: blobVersion, ByEntity: map[string][]scout.PoiComment{}}

	env, err := s.loadEnvelope(ctx, keyComments)
	if errors.Is(err, ErrNotFound) {
		return empty, nil
	}
	if err != nil {
		return empty, err
	}

	var b commentsBlob
	if !s.decodeEnvelope(keyComments, env, &b) {
		return empty, nil
	}
	b.Version = blobVersion
	if b.ByEntity == nil {
		b.ByEntity = map[string][]scout.PoiComment{}
	}
	return b, nil
}

func (s *WorkspaceStore) modifyComments(ctx context.Context, fn func(*commentsBlob) error) error {
	b, err := s.loadComments(ctx)
	if err != nil {
		return err
	}
	if err := fn(&b); err != nil {
		return err
	}
	s.saveBlob(ctx, keyComments, b)
	return nil
}

func (s *WorkspaceStore) ListComments(ctx context.Context, entityID string) ([]scout.PoiComment, error) {
	b, err := s.loadComments(ctx)
	if err != nil {
		return nil, err
	}
	comments := b.ByEntity[entityID]
	if comments == nil {
		comments = []scout.PoiComment{}
	}
	return comments, nil
}

func (s *WorkspaceStore) AddComment(ctx context.Context, entityID, content, authorName string) (scout.PoiComment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return scout.PoiComment{}, ErrConflict
	}
	if authorName == "" {
		authorName = "Anonymous"
	}

	comment := scout.PoiComment{
		ID:         newID(),
		EntityID:   entityID,
		Content:    content,
		AuthorName: authorName,
		CreatedAt:  nowUTC(),
	}
	err := s.modifyComments(ctx, func(b *commentsBlob) error {
		b.ByEntity[entityID] = append(b.ByEntity[entityID], comment)
		return nil
	})
	return comment, err
}

func (s *WorkspaceStore) DeleteComment(ctx context.Context, entityID, commentID string) error {
	return s.modifyComments(ctx, func(b *commentsBlob) error {
		comments := b.ByEntity[entityID]
		for i, c := range comments {
			if c.ID == commentID {
				b.ByEntity[entityID] = append(comments[:i], comments[i+1:]...)
				if len(b.ByEntity[entityID]) == 0 {
					delete(b.ByEntity, entityID)
				}
				return nil
			}
		}
		return ErrNotFound
	})
}
