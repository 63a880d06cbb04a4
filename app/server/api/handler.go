// Package api provides HTTP handlers for the JSON posts API.
package api

import (
	"context"
	"errors"
	"net/http"
	"slices"
	"strings"

	log "github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/routegroup"

	"github.com/umputun/blog/app/store"
)

//go:generate moq -out mocks/poststore.go -pkg mocks -skip-ensure -fmt goimports . PostStore

// PostStore defines the interface for reading posts.
type PostStore interface {
	Get(ctx context.Context, slug string) (store.Post, error)
	List(ctx context.Context, drafts bool) ([]store.Post, error)
}

// Renderer converts markdown to HTML.
type Renderer interface {
	HTML(src string) string
}

// Handler handles API requests for /api/v1/* endpoints.
type Handler struct {
	store    PostStore
	renderer Renderer
}

// postResponse is a single post with its body.
type postResponse struct {
	store.Post
	Markdown string `json:"markdown"`
	HTML     string `json:"html"`
}

// New creates a new API handler.
func New(st PostStore, rnd Renderer) *Handler {
	return &Handler{store: st, renderer: rnd}
}

// Register registers API routes on the given router.
func (h *Handler) Register(r *routegroup.Bundle) {
	r.HandleFunc("GET /posts", h.handleList)
	r.HandleFunc("GET /posts/{slug}", h.handleGet)
}

// handleList returns published posts without bodies, newest first.
// GET /api/v1/posts
// Optional query params: ?tag=go (filter by tag)
func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	posts, err := h.store.List(r.Context(), false)
	if err != nil {
		rest.SendErrorJSON(w, r, log.Default(), http.StatusInternalServerError, err, "failed to list posts")
		return
	}

	if tag := strings.TrimSpace(r.URL.Query().Get("tag")); tag != "" {
		posts = slices.DeleteFunc(posts, func(p store.Post) bool {
			return !slices.ContainsFunc(p.Tags, func(t string) bool { return strings.EqualFold(t, tag) })
		})
	}
	if posts == nil {
		posts = []store.Post{}
	}
	rest.RenderJSON(w, posts)
}

// handleGet returns a published post with markdown and rendered HTML.
// GET /api/v1/posts/{slug}
func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	slug := store.NormalizeSlug(r.PathValue("slug"))
	if slug == "" {
		rest.SendErrorJSON(w, r, log.Default(), http.StatusBadRequest, nil, "slug is required")
		return
	}

	post, err := h.store.Get(r.Context(), slug)
	if errors.Is(err, store.ErrNotFound) || (err == nil && post.Draft) {
		rest.SendErrorJSON(w, r, log.Default(), http.StatusNotFound, store.ErrNotFound, "post not found")
		return
	}
	if err != nil {
		rest.SendErrorJSON(w, r, log.Default(), http.StatusInternalServerError, err, "failed to get post")
		return
	}

	rest.RenderJSON(w, postResponse{Post: post, Markdown: post.Body, HTML: h.renderer.HTML(post.Body)})
}
