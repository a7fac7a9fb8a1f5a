package server

import (
	"context"
	"errors"

	"github.com/locusmaps/scoutmap/internal/scout"
)

type attachmentsBlob struct {
	Version  int                           `json:"version"`
	ByEntity map[string][]scout.Attachment `json:"byEntity"`
}

func (s *WorkspaceStore) loadAttachments(ctx context.Context) (attachmentsBlob, error) {
	empty := attachmentsBlob{Version: blobVersion, ByEntity: map[string][]scout.Attachment{}}

	env, err := s.loadEnvelope(ctx, keyAttachments)
	if errors.Is(err, ErrNotFound) {
		return empty, nil
	}
	if err != nil {
		return empty, err
	}

	var b attachmentsBlob
	if !s.decodeEnvelope(keyAttachments, env, &b) {
		return empty, nil
	}
	b.Version = blobVersion
	if b.ByEntity == nil {
		b.ByEntity = map[string][]scout.Attachment{}
	}
	return b, nil
}

func (s *WorkspaceStore) modifyAttachments(ctx context.Context, fn func(*attachmentsBlob) error) error {
	b, err := s.loadAttachments(ctx)
	if err != nil {
		return err
	}
	if err := fn(&b); err != nil {
		return err
	}
	s.saveBlob(ctx, keyAttachments, b)
	return nil
}

func (s *WorkspaceStore) ListEntityAttachments(ctx context.Context, entityID string) ([]scout.Attachment, error) {
	b, err := s.loadAttachments(ctx)
	if err != nil {
		return nil, err
	}
	atts := b.ByEntity[entityID]
	if atts == nil {
		atts = []scout.Attachment{}
	}
	return atts, nil
}

// AddEntityAttachment validates and stores an upload against the POI or
// drawn shape identified by entityID. A validation failure leaves the
// collection untouched.
func (s *WorkspaceStore) AddEntityAttachment(ctx context.Context, entityID string, att scout.Attachment) (scout.Attachment, error) {
	err := s.modifyAttachments(ctx, func(b *attachmentsBlob) error {
		if err := scout.ValidateAttachment(att, b.ByEntity[entityID]); err != nil {
			return err
		}
		att.ID = newID()
		att.AddedAt = nowUTC()
		b.ByEntity[entityID] = append(b.ByEntity[entityID], att)
		return nil
	})
	if err != nil {
		return scout.Attachment{}, err
	}
	return att, nil
}

func (s *WorkspaceStore) RemoveEntityAttachment(ctx context.Context, entityID, attID string) error {
	return s.modifyAttachments(ctx, func(b *attachmentsBlob) error {
		atts := b.ByEntity[entityID]
		for i, a := range atts {
			if a.ID == attID {
				b.ByEntity[entityID] = append(atts[:i], atts[i+1:]...)
				if len(b.ByEntity[entityID]) == 0 {
					delete(b.ByEntity, entityID)
				}
				return nil
			}
		}
		return ErrNotFound
	})
}
