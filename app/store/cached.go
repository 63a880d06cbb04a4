package store

import (
	"context"
	"fmt"

	"github.com/go-pkgz/lcw/v2"
)

// Interface is the set of store operations, implemented by Store and Cached.
type Interface interface {
	Get(ctx context.Context, slug string) (Post, error)
	List(ctx context.Context, drafts bool) ([]Post, error)
	Upsert(ctx context.Context, post Post) error
	Delete(ctx context.Context, slug string) error
	Close() error
}

// Cached wraps a store Interface with a loading cache and satisfies the Interface itself.
// Cache is populated on reads via loader function, invalidated on writes.
type Cached struct {
	store Interface
	cache lcw.LoadingCache[Post]
}

// NewCached creates a new cached store wrapper.
// maxKeys sets the maximum number of posts in the cache.
func NewCached(store Interface, maxKeys int) (*Cached, error) {
	o := lcw.NewOpts[Post]()
	cache, err := lcw.NewLruCache(o.MaxKeys(maxKeys))
	if err != nil {
		return nil, fmt.Errorf("failed to create cache: %w", err)
	}
	return &Cached{store: store, cache: cache}, nil
}

// Get retrieves a post by slug, using cache with load-through.
func (c *Cached) Get(ctx context.Context, slug string) (Post, error) {
	post, err := c.cache.Get(slug, func() (Post, error) {
		p, loadErr := c.store.Get(ctx, slug)
		if loadErr != nil {
			return Post{}, fmt.Errorf("load from store: %w", loadErr)
		}
		return p, nil
	})
	if err != nil {
		return Post{}, fmt.Errorf("cache get: %w", err)
	}
	return post, nil
}

// List returns posts from the underlying store (not cached).
func (c *Cached) List(ctx context.Context, drafts bool) ([]Post, error) {
	posts, err := c.store.List(ctx, drafts)
	if err != nil {
		return nil, fmt.Errorf("store list: %w", err)
	}
	return posts, nil
}

// Upsert stores a post and invalidates its cache entry.
func (c *Cached) Upsert(ctx context.Context, post Post) error {
	if err := c.store.Upsert(ctx, post); err != nil {
		return fmt.Errorf("store upsert: %w", err)
	}
	c.cache.Invalidate(func(k string) bool { return k == post.Slug })
	return nil
}

// Delete removes a post and invalidates the cache entry.
func (c *Cached) Delete(ctx context.Context, slug string) error {
	// invalidate regardless of error - post might have been cached
	c.cache.Invalidate(func(k string) bool { return k == slug })
	if err := c.store.Delete(ctx, slug); err != nil {
		return fmt.Errorf("store delete: %w", err)
	}
	return nil
}

// Close closes the cache and underlying store.
func (c *Cached) Close() error {
	_ = c.cache.Close()
	if err := c.store.Close(); err != nil {
		return fmt.Errorf("store close: %w", err)
	}
	return nil
}

// Stats returns cache statistics.
func (c *Cached) Stats() lcw.CacheStat {
	return c.cache.Stat()
}
