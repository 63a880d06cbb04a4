package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"

	log "github.com/go-pkgz/lgr"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	g "maragu.dev/gomponents"

	"github.com/umputun/blog/app/enum"
	"github.com/umputun/blog/app/toggle"
)

// toggleCookie holds the id of the browser's theme switch session.
const toggleCookie = "blog-toggle"

// maxWSMessage limits the size of a single websocket event.
const maxWSMessage = 1024

// toggleSession is the server side theme switch of one browser.
// The switch is controlled by the theme it mirrors.
type toggleSession struct {
	mu        sync.Mutex
	toggle    *toggle.Toggle
	theme     enum.Theme
	committed bool // set by the change callback during an event
}

// toggleEvent is a browser event forwarded to the theme switch.
type toggleEvent struct {
	Event  enum.ToggleEvent `json:"event"`
	X      *float64         `json:"x,omitempty"`
	Target enum.Target      `json:"target"`
}

// toggleResult is the state of the switch after an event.
type toggleResult struct {
	HTML  string `json:"html"`
	Theme string `json:"theme"` // new theme if the event committed a change
	Error string `json:"error,omitempty"`
}

// themeIcons are shown in the switch track.
var themeIcons = toggle.Icons{
	Checked:   g.Text("🌜"),
	Unchecked: g.Text("🌞"),
}

func newToggleSession(theme enum.Theme) *toggleSession {
	s := &toggleSession{theme: theme}
	s.toggle = toggle.New(toggle.Config{
		Mode:  toggle.Controlled(func() bool { return s.theme.Dark() }),
		Icons: themeIcons,
		Class: "theme-toggle",
		Attrs: map[string]string{"id": "theme-toggle-input", "name": "dark"},
		OnChange: func(c toggle.Change) {
			s.theme = enum.ThemeFromChecked(c.Checked)
			s.committed = true
		},
		OnFocus: func() { log.Printf("[DEBUG] theme switch focused") },
		OnBlur:  func() { log.Printf("[DEBUG] theme switch blurred") },
	})
	return s
}

// handle applies the event and returns the rendered switch. current is the theme known to the
// browser, the switch is re-synced when it differs from the mirrored one.
func (s *toggleSession) handle(ev toggleEvent, current enum.Theme) (toggleResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sync(current)
	s.committed = false
	ev.apply(s.toggle)

	html, err := s.render()
	if err != nil {
		return toggleResult{}, err
	}
	res := toggleResult{HTML: html}
	if s.committed {
		res.Theme = s.theme.String()
	}
	return res, nil
}

// node renders the switch for a page in the given theme.
func (s *toggleSession) node(current enum.Theme) (g.Node, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sync(current)
	html, err := s.render()
	if err != nil {
		return nil, err
	}
	return g.Raw(html), nil
}

func (s *toggleSession) sync(current enum.Theme) {
	if current.Dark() == s.theme.Dark() {
		s.theme = current
		return
	}
	s.theme = current
	s.toggle.Sync()
}

func (s *toggleSession) render() (string, error) {
	var sb strings.Builder
	if err := s.toggle.Node().Render(&sb); err != nil {
		return "", fmt.Errorf("failed to render theme switch: %w", err)
	}
	return sb.String(), nil
}

// validate checks event fields, x is required for the positional events.
func (e *toggleEvent) validate() error {
	if e.Event == (enum.ToggleEvent{}) {
		return errors.New("event is required")
	}
	if e.Target == (enum.Target{}) {
		e.Target = enum.TargetInput
	}
	if (e.Event == enum.ToggleEventTouchStart || e.Event == enum.ToggleEventTouchMove) && e.X == nil {
		return fmt.Errorf("x is required for %s", e.Event)
	}
	return nil
}

// apply dispatches the event to the switch.
func (e toggleEvent) apply(tg *toggle.Toggle) {
	switch e.Event {
	case enum.ToggleEventClick:
		origin := toggle.OriginInner
		if e.Target == enum.TargetInput {
			origin = toggle.OriginControl
		}
		tg.Activate(origin)
	case enum.ToggleEventFocus:
		tg.Focus()
	case enum.ToggleEventBlur:
		tg.Blur()
	case enum.ToggleEventTouchStart:
		tg.GestureStart(*e.X)
	case enum.ToggleEventTouchMove:
		tg.GestureMove(*e.X)
	case enum.ToggleEventTouchEnd:
		tg.GestureEnd()
	case enum.ToggleEventTouchCancel:
		tg.GestureCancel()
	}
}

// parseToggleForm reads a toggle event from form fields.
func parseToggleForm(r *http.Request) (toggleEvent, error) {
	var ev toggleEvent
	var err error
	if ev.Event, err = enum.ParseToggleEvent(r.FormValue("event")); err != nil {
		return toggleEvent{}, err
	}
	if ev.Target, err = enum.ParseTarget(r.FormValue("target")); err != nil {
		return toggleEvent{}, err
	}
	if xs := r.FormValue("x"); xs != "" {
		x, parseErr := strconv.ParseFloat(xs, 64)
		if parseErr != nil {
			return toggleEvent{}, fmt.Errorf("invalid x %q: %w", xs, parseErr)
		}
		ev.X = &x
	}
	return ev, ev.validate()
}

// toggleSession returns the session of the request and its cookie if a new one was made.
func (h *Handler) toggleSession(r *http.Request) (*toggleSession, *http.Cookie, error) {
	id := ""
	if cookie, err := r.Cookie(toggleCookie); err == nil {
		if _, parseErr := uuid.Parse(cookie.Value); parseErr == nil {
			id = cookie.Value
		}
	}

	var newCookie *http.Cookie
	if id == "" {
		id = uuid.NewString()
		newCookie = &http.Cookie{
			Name:     toggleCookie,
			Value:    id,
			Path:     h.cookiePath(),
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		}
	}

	theme := h.getTheme(r)
	sess, err := h.sessions.Get(id, func() (*toggleSession, error) {
		log.Printf("[DEBUG] new theme switch session %s", id)
		return newToggleSession(theme), nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get toggle session: %w", err)
	}
	h.metrics.liveSessions(h.sessions.Stat().Keys)
	return sess, newCookie, nil
}

// toggleNode renders the switch of the request's session, used by the page layout.
func (h *Handler) toggleNode(w http.ResponseWriter, r *http.Request) g.Node {
	sess, cookie, err := h.toggleSession(r)
	if err != nil {
		log.Printf("[WARN] %v", err)
		return nil
	}
	if cookie != nil {
		http.SetCookie(w, cookie)
	}
	node, err := sess.node(h.getTheme(r))
	if err != nil {
		log.Printf("[WARN] %v", err)
		return nil
	}
	return node
}

// handleToggleEvent applies one event posted as a form and returns the switch fragment.
// A committed change sets the theme cookie.
func (h *Handler) handleToggleEvent(w http.ResponseWriter, r *http.Request) {
	ev, err := parseToggleForm(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	h.metrics.event(ev.Event)

	sess, cookie, err := h.toggleSession(r)
	if err != nil {
		log.Printf("[ERROR] %v", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if cookie != nil {
		http.SetCookie(w, cookie)
	}

	res, err := sess.handle(ev, h.getTheme(r))
	if err != nil {
		log.Printf("[ERROR] %v", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if res.Theme != "" {
		h.setTheme(w, enum.MustTheme(res.Theme))
		log.Printf("[DEBUG] theme switched to %s", res.Theme)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(res.HTML))
}

// handleToggleWS streams switch events over a websocket. Cookies can't be set on the socket,
// the client follows a reply with a theme by POST /web/theme.
func (h *Handler) handleToggleWS(w http.ResponseWriter, r *http.Request) {
	sess, cookie, err := h.toggleSession(r)
	if err != nil {
		log.Printf("[ERROR] %v", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	hdr := http.Header{}
	if cookie != nil {
		hdr.Add("Set-Cookie", cookie.String())
	}

	conn, err := h.upgrader.Upgrade(w, r, hdr)
	if err != nil {
		log.Printf("[WARN] websocket upgrade failed: %v", err) // upgrader already replied
		return
	}
	defer conn.Close()
	conn.SetReadLimit(maxWSMessage)

	theme := h.getTheme(r)
	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Printf("[DEBUG] toggle websocket closed: %v", err)
			}
			return
		}

		res, err := h.wsEvent(sess, msg, theme)
		if err != nil {
			res = toggleResult{Error: err.Error()}
		}
		if res.Theme != "" {
			theme = enum.MustTheme(res.Theme)
		}
		if err := conn.WriteJSON(res); err != nil {
			log.Printf("[WARN] failed to write toggle reply: %v", err)
			return
		}
	}
}

func (h *Handler) wsEvent(sess *toggleSession, msg []byte, theme enum.Theme) (toggleResult, error) {
	var ev toggleEvent
	if err := json.Unmarshal(msg, &ev); err != nil {
		return toggleResult{}, fmt.Errorf("invalid event: %w", err)
	}
	if err := ev.validate(); err != nil {
		return toggleResult{}, err
	}
	h.metrics.event(ev.Event)
	return sess.handle(ev, theme)
}
