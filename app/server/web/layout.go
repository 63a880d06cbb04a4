package web

import (
	"strconv"

	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"github.com/umputun/blog/app/config"
	"github.com/umputun/blog/app/enum"
)

// LayoutProps describes a page wrapped by PageLayout.
type LayoutProps struct {
	Location string // request path including the base path
	Title    string // page title, site title if empty
	Site     config.Site
	Theme    enum.Theme
	Switch   g.Node // theme switch, shown in the root page header
	Year     int
	Content  []g.Node
}

// PageLayout renders the document shell. The root page gets a large heading with the theme switch,
// other pages a compact link back home.
func PageLayout(p LayoutProps) g.Node {
	root := p.Site.BasePath + "/"
	isRoot := p.Location == root

	title := p.Site.Title
	if p.Title != "" && p.Title != p.Site.Title {
		title = p.Title + " | " + p.Site.Title
	}

	var header g.Node
	if isRoot {
		header = h.H1(h.Class("main-heading"),
			h.A(h.Href(root), g.Text(p.Site.Title)),
			g.If(p.Switch != nil, h.Div(h.ID("theme-switch"),
				h.Data("endpoint", p.Site.BasePath+"/web/toggle"),
				h.Data("ws", p.Site.BasePath+"/web/toggle/ws"),
				h.Data("theme-endpoint", p.Site.BasePath+"/web/theme"),
				p.Switch,
			)),
		)
	} else {
		header = h.A(h.Class("header-link-home"), h.Href(root), g.Text(p.Site.Title))
	}

	footer := "© " + strconv.Itoa(p.Year)
	if p.Site.Author != "" {
		footer += " " + p.Site.Author
	}

	return h.Doctype(
		h.HTML(h.Lang("en"),
			g.If(p.Theme != enum.ThemeSystem, h.Data("theme", p.Theme.String())),
			h.Head(
				h.Meta(h.Charset("utf-8")),
				h.Meta(h.Name("viewport"), h.Content("width=device-width, initial-scale=1")),
				h.TitleEl(g.Text(title)),
				g.If(p.Site.Description != "", h.Meta(h.Name("description"), h.Content(p.Site.Description))),
				h.Link(h.Rel("stylesheet"), h.Href(p.Site.BasePath+"/static/blog.css")),
				h.Link(h.Rel("stylesheet"), h.Href(p.Site.BasePath+"/web/highlight.css")),
				h.Script(h.Src(p.Site.BasePath+"/static/toggle.js"), h.Defer()),
			),
			h.Body(
				h.Div(h.Class("global-wrapper"), h.Data("is-root-path", strconv.FormatBool(isRoot)),
					h.Header(h.Class("global-header"), header),
					h.Main(g.Group(p.Content)),
					h.Footer(g.Text(footer)),
				),
			),
		),
	)
}
