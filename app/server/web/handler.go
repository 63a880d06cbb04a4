// Package web provides HTTP handlers for the blog pages and the theme switch.
package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"sync"
	"time"

	"github.com/go-pkgz/lcw/v2"
	"github.com/go-pkgz/routegroup"
	"github.com/gorilla/websocket"

	"github.com/umputun/blog/app/config"
	"github.com/umputun/blog/app/content"
	"github.com/umputun/blog/app/enum"
	"github.com/umputun/blog/app/store"
)

//go:generate moq -out mocks/poststore.go -pkg mocks -skip-ensure -fmt goimports . PostStore

// themeCookie keeps the selected theme, absent cookie means system preference.
const themeCookie = "theme"

// defaults for toggle sessions
const (
	defaultToggleTTL   = 30 * time.Minute
	defaultMaxSessions = 10000
)

//go:embed static
var staticFS embed.FS

// StaticFS returns the embedded static filesystem for external use.
func StaticFS() (fs.FS, error) {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		return nil, fmt.Errorf("failed to get static sub-filesystem: %w", err)
	}
	return sub, nil
}

// PostStore defines the interface for reading posts.
type PostStore interface {
	Get(ctx context.Context, slug string) (store.Post, error)
	List(ctx context.Context, drafts bool) ([]store.Post, error)
}

// Config holds web handler configuration.
type Config struct {
	Site        config.Site
	ToggleTTL   time.Duration // sessions are dropped this long after creation
	MaxSessions int           // max number of live toggle sessions
	Metrics     *Metrics      // optional
}

// Handler handles blog pages and theme switch requests.
type Handler struct {
	store    PostStore
	renderer *content.Renderer
	site     config.Site
	baseURL  string
	sessions lcw.LoadingCache[*toggleSession]
	metrics  *Metrics
	upgrader websocket.Upgrader
	now      func() time.Time

	closeOnce sync.Once
	closeErr  error
}

// New creates a new web handler.
func New(st PostStore, cfg Config) (*Handler, error) {
	ttl := cfg.ToggleTTL
	if ttl <= 0 {
		ttl = defaultToggleTTL
	}
	maxSessions := cfg.MaxSessions
	if maxSessions <= 0 {
		maxSessions = defaultMaxSessions
	}

	o := lcw.NewOpts[*toggleSession]()
	sessions, err := lcw.NewExpirableCache(o.MaxKeys(maxSessions), o.TTL(ttl))
	if err != nil {
		return nil, fmt.Errorf("failed to create toggle sessions cache: %w", err)
	}

	return &Handler{
		store:    st,
		renderer: content.NewRenderer(),
		site:     cfg.Site,
		baseURL:  cfg.Site.BasePath,
		sessions: sessions,
		metrics:  cfg.Metrics,
		upgrader: websocket.Upgrader{ReadBufferSize: 1024, WriteBufferSize: 4096},
		now:      time.Now,
	}, nil
}

// Register registers web routes on the given router.
func (h *Handler) Register(r *routegroup.Bundle) {
	r.HandleFunc("GET /{$}", h.handleIndex)
	r.HandleFunc("GET /posts/{slug}", h.handlePost)
	r.HandleFunc("GET /web/highlight.css", h.handleHighlightCSS)
	r.HandleFunc("POST /web/theme", h.handleThemeToggle)
	r.HandleFunc("POST /web/toggle", h.handleToggleEvent)
	r.HandleFunc("GET /web/toggle/ws", h.handleToggleWS)
}

// Close stops the toggle sessions cache, safe to call more than once.
func (h *Handler) Close() error {
	h.closeOnce.Do(func() {
		if err := h.sessions.Close(); err != nil {
			h.closeErr = fmt.Errorf("failed to close sessions cache: %w", err)
		}
	})
	return h.closeErr
}

// getTheme returns the current theme from cookie.
func (h *Handler) getTheme(r *http.Request) enum.Theme {
	cookie, err := r.Cookie(themeCookie)
	if err != nil || cookie.Value == "" {
		return enum.ThemeSystem // use system preference
	}
	if cookie.Value == enum.ThemeDark.String() || cookie.Value == enum.ThemeLight.String() {
		return enum.MustTheme(cookie.Value)
	}
	return enum.ThemeSystem
}

// setTheme writes the theme cookie, system theme removes it.
func (h *Handler) setTheme(w http.ResponseWriter, theme enum.Theme) {
	cookie := &http.Cookie{
		Name:     themeCookie,
		Value:    theme.String(),
		Path:     h.cookiePath(),
		MaxAge:   365 * 24 * 60 * 60, // 1 year
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	if theme == enum.ThemeSystem {
		cookie.Value, cookie.MaxAge = "", -1
	}
	http.SetCookie(w, cookie)
	w.Header().Set("X-Theme", theme.String())
	h.metrics.themeChanged(theme)
}

// url returns a URL path with the base URL prefix.
func (h *Handler) url(path string) string {
	return h.baseURL + path
}

// cookiePath returns the path for cookies (base URL with trailing slash or "/").
func (h *Handler) cookiePath() string {
	if h.baseURL == "" {
		return "/"
	}
	return h.baseURL + "/"
}

// rootPath is the location of the index page.
func (h *Handler) rootPath() string {
	return h.baseURL + "/"
}

// paginate applies pagination to a slice of posts and returns pagination info.
// page is 1-based, pageSize is the max posts per page.
func (h *Handler) paginate(posts []store.Post, page, pageSize int) ([]store.Post, int, int, bool, bool) {
	total := len(posts)
	if pageSize <= 0 {
		return posts, 1, 1, false, false
	}

	totalPages := (total + pageSize - 1) / pageSize
	if totalPages == 0 {
		totalPages = 1
	}
	page = max(1, min(page, totalPages))

	start := (page - 1) * pageSize
	end := min(start+pageSize, total)
	if start >= total {
		return nil, page, totalPages, page > 1, false
	}
	return posts[start:end], page, totalPages, page > 1, page < totalPages
}

// isNotFound reports whether err means a missing post.
func isNotFound(err error) bool {
	return errors.Is(err, store.ErrNotFound)
}
