package content

import (
	"context"
	"errors"
	"fmt"
	"sync"

	log "github.com/go-pkgz/lgr"

	"github.com/umputun/blog/app/store"
)

// PostStore is the part of the post store used by Syncer.
type PostStore interface {
	List(ctx context.Context, drafts bool) ([]store.Post, error)
	Upsert(ctx context.Context, post store.Post) error
	Delete(ctx context.Context, slug string) error
}

// SyncStats reports what a sync did.
type SyncStats struct {
	Upserted int
	Deleted  int
}

// Syncer makes the store mirror a content source. Syncs are serialized, a sync started
// while another one runs waits for it and then loads the source again.
type Syncer struct {
	store  PostStore
	source func(ctx context.Context) ([]store.Post, error)
	mu     sync.Mutex
}

// NewSyncer makes a syncer reading posts from source, usually a LoadDir closure.
func NewSyncer(st PostStore, source func(ctx context.Context) ([]store.Post, error)) *Syncer {
	return &Syncer{store: st, source: source}
}

// Sync loads posts from the source, upserts all of them and deletes stored posts missing in the source.
// Nothing is written if the source can't be loaded.
func (s *Syncer) Sync(ctx context.Context) (SyncStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	posts, err := s.source(ctx)
	if err != nil {
		return SyncStats{}, fmt.Errorf("failed to load content: %w", err)
	}

	var stats SyncStats
	keep := make(map[string]bool, len(posts))
	for _, p := range posts {
		if err := s.store.Upsert(ctx, p); err != nil {
			return stats, err
		}
		keep[p.Slug] = true
		stats.Upserted++
	}

	stored, err := s.store.List(ctx, true)
	if err != nil {
		return stats, err
	}
	for _, p := range stored {
		if keep[p.Slug] {
			continue
		}
		if err := s.store.Delete(ctx, p.Slug); err != nil && !errors.Is(err, store.ErrNotFound) {
			return stats, err
		}
		stats.Deleted++
	}

	log.Printf("[INFO] content synced, %d posts upserted, %d deleted", stats.Upserted, stats.Deleted)
	return stats, nil
}
