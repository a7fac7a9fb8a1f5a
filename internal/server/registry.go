package server

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"regexp"
	"sync"

	"github.com/locusmaps/scoutmap/internal/database"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]{0,63}$`)

// Registry opens one database per workspace slug, lazily. A workspace
// is the server-side analog of a browser storage partition: entities in
// different workspaces never see each other.
type Registry struct {
	dir    string
	logger *slog.Logger
	mu     sync.RWMutex
	stores map[string]*WorkspaceStore
}

func NewRegistry(dir string, logger *slog.Logger) *Registry {
	return &Registry{
		dir:    dir,
		logger: logger,
		stores: make(map[string]*WorkspaceStore),
	}
}

func (r *Registry) Get(ctx context.Context, slug string) (*WorkspaceStore, error) {
	if !slugPattern.MatchString(slug) {
		return nil, fmt.Errorf("invalid workspace slug %q", slug)
	}

	r.mu.RLock()
	s, ok := r.stores[slug]
	r.mu.RUnlock()
	if ok {
		return s, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Double-check after acquiring the write lock.
	if s, ok := r.stores[slug]; ok {
		return s, nil
	}

	dbPath := filepath.Join(r.dir, slug+".db")
	db, err := database.Open(ctx, dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening workspace db %q: %w", slug, err)
	}
	s, err = NewWorkspaceStore(ctx, db, r.logger.With("workspace", slug))
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing workspace %q: %w", slug, err)
	}
	r.stores[slug] = s
	return s, nil
}

// Ping checks every open workspace database. Workspaces that were
// never touched have nothing to check.
func (r *Registry) Ping(ctx context.Context) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for slug, s := range r.stores {
		if err := s.db.PingContext(ctx); err != nil {
			return fmt.Errorf("workspace %q: %w", slug, err)
		}
	}
	return nil
}

func (r *Registry) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for slug, s := range r.stores {
		s.db.Close()
		delete(r.stores, slug)
	}
	return nil
}
