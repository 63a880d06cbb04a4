package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/blog/app/config"
	"github.com/umputun/blog/app/store"
)

func TestServer_Routes(t *testing.T) {
	srv := newTestServer(t, config.Default())
	handler := srv.handler()

	tests := []struct {
		name     string
		method   string
		path     string
		code     int
		contains string
	}{
		{name: "index", method: http.MethodGet, path: "/", code: http.StatusOK, contains: "main-heading"},
		{name: "post", method: http.MethodGet, path: "/posts/hello", code: http.StatusOK, contains: "Hello"},
		{name: "missing post", method: http.MethodGet, path: "/posts/nope", code: http.StatusNotFound},
		{name: "api list", method: http.MethodGet, path: "/api/v1/posts", code: http.StatusOK, contains: `"slug":"hello"`},
		{name: "api get", method: http.MethodGet, path: "/api/v1/posts/hello", code: http.StatusOK, contains: `"html"`},
		{name: "static css", method: http.MethodGet, path: "/static/blog.css", code: http.StatusOK, contains: ".toggle"},
		{name: "static js", method: http.MethodGet, path: "/static/toggle.js", code: http.StatusOK, contains: "theme-switch"},
		{name: "highlight css", method: http.MethodGet, path: "/web/highlight.css", code: http.StatusOK, contains: ".chroma"},
		{name: "ping", method: http.MethodGet, path: "/ping", code: http.StatusOK, contains: "pong"},
		{name: "theme", method: http.MethodPost, path: "/web/theme", code: http.StatusNoContent},
		{name: "toggle", method: http.MethodPost, path: "/web/toggle?event=click", code: http.StatusOK, contains: "toggle--checked"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, http.NoBody)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			assert.Equal(t, tc.code, rec.Code)
			if tc.contains != "" {
				assert.Contains(t, rec.Body.String(), tc.contains)
			}
		})
	}

	t.Run("app info headers", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", http.NoBody))
		assert.Equal(t, "blog", rec.Header().Get("App-Name"))
		assert.Equal(t, "test", rec.Header().Get("App-Version"))
	})
}

func TestServer_Metrics(t *testing.T) {
	srv := newTestServer(t, config.Default())
	handler := srv.handler()

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/web/toggle?event=click", http.NoBody))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", http.NoBody))
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `blog_toggle_events_total{event="click"} 1`)
	assert.Contains(t, body, `blog_theme_changes_total{theme="dark"} 1`)
	assert.Contains(t, body, "blog_toggle_sessions 1")
	assert.Contains(t, body, "go_goroutines")
}

func TestServer_BaseURL(t *testing.T) {
	site := config.Default()
	site.BasePath = "/blog"
	srv := newTestServer(t, site)
	handler := srv.handler()

	t.Run("redirects base to base slash", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/blog", http.NoBody))
		assert.Equal(t, http.StatusMovedPermanently, rec.Code)
		assert.Equal(t, "/blog/", rec.Header().Get("Location"))
	})

	t.Run("root page under base", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/blog/", http.NoBody))
		require.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, `data-is-root-path="true"`)
		assert.Contains(t, body, `href="/blog/posts/hello"`)
		assert.Contains(t, body, `data-endpoint="/blog/web/toggle"`)
	})

	t.Run("post under base", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/blog/posts/hello", http.NoBody))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `data-is-root-path="false"`)
	})

	t.Run("outside of base", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/posts/hello", http.NoBody))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestServer_Run(t *testing.T) {
	srv := newTestServer(t, config.Default())
	srv.cfg.Address = "127.0.0.1:0"
	srv.cfg.ShutdownTimeout = time.Second

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server didn't stop")
	}
}

func TestServer_Limits(t *testing.T) {
	srv := &Server{}
	assert.Equal(t, int64(64*1024), srv.bodySizeLimit())
	assert.Equal(t, int64(1000), srv.requestsPerSec())

	srv.cfg = Config{BodySizeLimit: 10, RequestsPerSec: 5}
	assert.Equal(t, int64(10), srv.bodySizeLimit())
	assert.Equal(t, int64(5), srv.requestsPerSec())
}

func newTestServer(t *testing.T, site config.Site) *Server {
	t.Helper()
	st := &mockStore{posts: map[string]store.Post{
		"hello": {Slug: "hello", Title: "Hello", Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), Body: "hi *there*"},
	}}
	srv, err := New(st, Config{Address: ":0", ReadTimeout: 5 * time.Second, Version: "test", Site: site})
	require.NoError(t, err)
	t.Cleanup(func() { _ = srv.webHandler.Close() })
	return srv
}

// mockStore implements PostStore for testing
type mockStore struct {
	posts map[string]store.Post
}

func (m *mockStore) Get(_ context.Context, slug string) (store.Post, error) {
	if p, ok := m.posts[slug]; ok {
		return p, nil
	}
	return store.Post{}, store.ErrNotFound
}

func (m *mockStore) List(_ context.Context, drafts bool) ([]store.Post, error) {
	res := make([]store.Post, 0, len(m.posts))
	for _, p := range m.posts {
		if p.Draft && !drafts {
			continue
		}
		p.Body = ""
		res = append(res, p)
	}
	return res, nil
}
