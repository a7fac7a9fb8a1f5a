package server

import (
	"context"
	"errors"
	"sort"
)

type hiddenBlob struct {
	Version int      `json:"version"`
	IDs     []string `json:"ids"`
}

func (s *WorkspaceStore) loadHidden(ctx context.Context) (hiddenBlob, error) {
	empty := hiddenBlob{Version: blobVersion, IDs: []string{}}

	env, err := s.loadEnvelope(ctx, keyHidden)
	if errors.Is(err, ErrNotFound) {
		return empty, nil
	}
	if err != nil {
		return empty, err
	}

	var b hiddenBlob
	if !s.decodeEnvelope(keyHidden, env, &b) {
		return empty, nil
	}
	b.Version = blobVersion
	if b.IDs == nil {
		b.IDs = []string{}
	}
	return b, nil
}

func (s *WorkspaceStore) HiddenPOIs(ctx context.Context) ([]string, error) {
	b, err := s.loadHidden(ctx)
	if err != nil {
		return nil, err
	}
	return b.IDs, nil
}

// ToggleHidden flips one placeId in or out of the hidden set and
// reports the new membership.
func (s *WorkspaceStore) ToggleHidden(ctx context.Context, placeID string) (bool, error) {
	b, err := s.loadHidden(ctx)
	if err != nil {
		return false, err
	}

	nowHidden := true
	for i, id := range b.IDs {
		if id == placeID {
			b.IDs = append(b.IDs[:i], b.IDs[i+1:]...)
			nowHidden = false
			break
		}
	}
	if nowHidden {
		b.IDs = append(b.IDs, placeID)
	}
	s.saveBlob(ctx, keyHidden, b)
	return nowHidden, nil
}

// SetHidden replaces the whole set, deduplicated and sorted so the
// stored blob is stable.
func (s *WorkspaceStore) SetHidden(ctx context.Context, placeIDs []string) error {
	seen := map[string]bool{}
	ids := []string{}
	for _, id := range placeIDs {
		if id != "" && !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	s.saveBlob(ctx, keyHidden, hiddenBlob{Version: blobVersion, IDs: ids})
	return nil
}
