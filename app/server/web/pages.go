package web

import (
	"net/http"
	"strconv"
	"time"

	log "github.com/go-pkgz/lgr"
	g "maragu.dev/gomponents"
	"maragu.dev/gomponents/html"

	"github.com/umputun/blog/app/enum"
	"github.com/umputun/blog/app/store"
)

// handleIndex renders the list of published posts.
func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	posts, err := h.store.List(r.Context(), false)
	if err != nil {
		log.Printf("[ERROR] failed to list posts: %v", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	page := 1
	if p := r.URL.Query().Get("page"); p != "" {
		if parsed, parseErr := strconv.Atoi(p); parseErr == nil && parsed > 0 {
			page = parsed
		}
	}
	paged, page, totalPages, hasPrev, hasNext := h.paginate(posts, page, h.site.PostsPerPage)

	items := make([]g.Node, 0, len(paged))
	for _, p := range paged {
		items = append(items, h.postSummary(p))
	}
	if len(items) == 0 {
		items = append(items, html.P(html.Class("empty"), g.Text("No blog posts found.")))
	}

	h.render(w, r, http.StatusOK, "",
		html.Ol(html.Class("post-list"), g.Group(items)),
		g.If(totalPages > 1, html.Nav(html.Class("pager"),
			g.If(hasPrev, html.A(html.Rel("prev"), html.Href(h.pageURL(page-1)), g.Text("← Newer"))),
			html.Span(g.Textf("%d / %d", page, totalPages)),
			g.If(hasNext, html.A(html.Rel("next"), html.Href(h.pageURL(page+1)), g.Text("Older →"))),
		)),
	)
}

// handlePost renders a single published post.
func (h *Handler) handlePost(w http.ResponseWriter, r *http.Request) {
	post, err := h.store.Get(r.Context(), r.PathValue("slug"))
	if err != nil && !isNotFound(err) {
		log.Printf("[ERROR] failed to get post %s: %v", r.PathValue("slug"), err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if isNotFound(err) || post.Draft {
		h.render(w, r, http.StatusNotFound, "Not found",
			html.H1(g.Text("Not found")), html.P(g.Text("There is no post here.")))
		return
	}

	h.render(w, r, http.StatusOK, post.Title,
		html.Article(html.Class("blog-post"),
			html.Header(
				html.H1(g.Text(post.Title)),
				html.P(g.El("time", g.Attr("datetime", post.Date.Format(time.DateOnly)), g.Text(post.Date.Format("January 02, 2006")))),
			),
			html.Section(g.Raw(h.renderer.HTML(post.Body))),
		),
	)
}

// handleThemeToggle sets the theme from the optional "theme" form value, flips it otherwise.
func (h *Handler) handleThemeToggle(w http.ResponseWriter, r *http.Request) {
	newTheme := h.getTheme(r).Toggle()
	if v := r.FormValue("theme"); v != "" {
		parsed, err := enum.ParseTheme(v)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		newTheme = parsed
	}
	h.setTheme(w, newTheme)
	w.WriteHeader(http.StatusNoContent)
}

// handleHighlightCSS serves the stylesheet for highlighted code blocks.
func (h *Handler) handleHighlightCSS(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	if err := h.renderer.Highlighter().WriteCSS(w); err != nil {
		log.Printf("[WARN] failed to write highlight css: %v", err)
	}
}

func (h *Handler) postSummary(p store.Post) g.Node {
	return html.Li(
		html.Article(html.Class("post-list-item"),
			html.Header(
				html.H2(html.A(html.Href(h.url("/posts/"+p.Slug)), g.Text(p.Title))),
				html.Small(g.Text(p.Date.Format("January 02, 2006"))),
			),
			g.If(p.Description != "", html.P(g.Text(p.Description))),
		),
	)
}

// pageURL returns the index url of the given page.
func (h *Handler) pageURL(page int) string {
	if page <= 1 {
		return h.rootPath()
	}
	return h.rootPath() + "?page=" + strconv.Itoa(page)
}

// render writes a full page wrapped by PageLayout.
func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, title string, children ...g.Node) {
	props := LayoutProps{
		Location: h.url(r.URL.Path),
		Title:    title,
		Site:     h.site,
		Theme:    h.getTheme(r),
		Year:     h.now().Year(),
		Content:  children,
	}
	if props.Location == h.rootPath() {
		props.Switch = h.toggleNode(w, r)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := PageLayout(props).Render(w); err != nil {
		log.Printf("[ERROR] failed to render page: %v", err)
	}
}
