package server

import (
	"context"
	"errors"
)

type sessionBlob struct {
	Version   int    `json:"version"`
	SessionID string `json:"sessionId"`
	CreatedAt string `json:"createdAt"`
}

// SessionID returns the workspace's stable session id, creating one on
// first access.
func (s *WorkspaceStore) SessionID(ctx context.Context) (string, error) {
	env, err := s.loadEnvelope(ctx, keySession)
	if err == nil {
		var b sessionBlob
		if s.decodeEnvelope(keySession, env, &b) && b.SessionID != "" {
			return b.SessionID, nil
		}
	} else if !errors.Is(err, ErrNotFound) {
		return "", err
	}

	b := sessionBlob{
		Version:   blobVersion,
		SessionID: newID(),
		CreatedAt: nowUTC(),
	}
	s.saveBlob(ctx, keySession, b)
	return b.SessionID, nil
}

// seedDefaults populates a fresh workspace with the built-in point
// categories. Idempotent: an existing categories blob is left alone.
func (s *WorkspaceStore) seedDefaults(ctx context.Context) error {
	_, err := s.loadEnvelope(ctx, keyCategories)
	if err == nil {
		return nil
	}
	if !errors.Is(err, ErrNotFound) {
		return err
	}

	b := categoriesBlob{Version: blobVersion}
	now := nowUTC()
	b.Categories = append(b.Categories, systemCategories(now)...)
	s.saveBlob(ctx, keyCategories, b)
	return nil
}
