package web

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-pkgz/routegroup"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/blog/app/config"
	"github.com/umputun/blog/app/enum"
)

func toggleForm(event, target, x string) url.Values {
	v := url.Values{"event": {event}}
	if target != "" {
		v.Set("target", target)
	}
	if x != "" {
		v.Set("x", x)
	}
	return v
}

func checked(t *testing.T, fragment string) bool {
	t.Helper()
	return parseDoc(t, fragment).Find(".toggle").HasClass("toggle--checked")
}

func TestHandler_ToggleClick(t *testing.T) {
	b := newBrowser(t, newTestHandler(t, nil, config.Default()))

	rec := b.post("/web/toggle", toggleForm("click", "", ""))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, checked(t, rec.Body.String()))
	assert.Equal(t, "dark", rec.Header().Get("X-Theme"))
	assert.Equal(t, "dark", b.cookie("theme"))
	sessionID := b.cookie(toggleCookie)
	require.NotEmpty(t, sessionID)

	rec = b.post("/web/toggle", toggleForm("click", "input", ""))
	assert.False(t, checked(t, rec.Body.String()))
	assert.Equal(t, "light", b.cookie("theme"))
	assert.Equal(t, sessionID, b.cookie(toggleCookie), "session is reused")
	for _, c := range rec.Result().Cookies() {
		assert.NotEqual(t, toggleCookie, c.Name, "no new session cookie")
	}
}

func TestHandler_ToggleInnerClickFocuses(t *testing.T) {
	b := newBrowser(t, newTestHandler(t, nil, config.Default()))
	rec := b.post("/web/toggle", toggleForm("click", "thumb", ""))
	require.Equal(t, http.StatusOK, rec.Code)
	root := parseDoc(t, rec.Body.String()).Find(".toggle")
	assert.True(t, root.HasClass("toggle--checked"))
	assert.True(t, root.HasClass("toggle--focus"))
	assert.Equal(t, "dark", b.cookie("theme"))

	rec = b.post("/web/toggle", toggleForm("blur", "", ""))
	root = parseDoc(t, rec.Body.String()).Find(".toggle")
	assert.False(t, root.HasClass("toggle--focus"))
	assert.True(t, root.HasClass("toggle--checked"))
	assert.Empty(t, rec.Header().Get("X-Theme"), "blur commits nothing")
}

func TestHandler_ToggleDrag(t *testing.T) {
	b := newBrowser(t, newTestHandler(t, nil, config.Default()))

	rec := b.post("/web/toggle", toggleForm("touchstart", "thumb", "100"))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, parseDoc(t, rec.Body.String()).Find(".toggle").HasClass("toggle--focus"))

	rec = b.post("/web/toggle", toggleForm("touchmove", "", "130"))
	assert.True(t, checked(t, rec.Body.String()), "thumb follows the drag")
	assert.Empty(t, rec.Header().Get("X-Theme"), "not committed yet")
	assert.Empty(t, b.cookie("theme"))

	rec = b.post("/web/toggle", toggleForm("touchend", "", ""))
	assert.True(t, checked(t, rec.Body.String()))
	assert.Equal(t, "dark", rec.Header().Get("X-Theme"))
	assert.Equal(t, "dark", b.cookie("theme"))
	assert.False(t, parseDoc(t, rec.Body.String()).Find(".toggle").HasClass("toggle--focus"),
		"focus dropped, it wasn't there before the drag")

	t.Run("cancel restores", func(t *testing.T) {
		b.post("/web/toggle", toggleForm("touchstart", "", "100"))
		rec := b.post("/web/toggle", toggleForm("touchmove", "", "60"))
		assert.False(t, checked(t, rec.Body.String()))
		rec = b.post("/web/toggle", toggleForm("touchcancel", "", ""))
		assert.True(t, checked(t, rec.Body.String()))
		assert.Equal(t, "dark", b.cookie("theme"))
	})

	t.Run("tap then click", func(t *testing.T) {
		b.post("/web/toggle", toggleForm("touchstart", "track", "100"))
		rec := b.post("/web/toggle", toggleForm("touchend", "", ""))
		assert.True(t, checked(t, rec.Body.String()), "tap alone changes nothing")
		rec = b.post("/web/toggle", toggleForm("click", "track", ""))
		assert.False(t, checked(t, rec.Body.String()))
		assert.Equal(t, "light", b.cookie("theme"))
	})
}

func TestHandler_ToggleRepeatedFocus(t *testing.T) {
	b := newBrowser(t, newTestHandler(t, nil, config.Default()))
	first := b.post("/web/toggle", toggleForm("focus", "", ""))
	require.Equal(t, http.StatusOK, first.Code)
	assert.Contains(t, first.Body.String(), "toggle--focus")

	second := b.post("/web/toggle", toggleForm("focus", "", ""))
	require.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, first.Body.String(), second.Body.String(), "focus of a focused switch changes nothing")
	assert.Empty(t, second.Header().Get("X-Theme"))
}

func TestHandler_ToggleFollowsThemeCookie(t *testing.T) {
	b := newBrowser(t, newTestHandler(t, nil, config.Default()))
	rec := b.post("/web/toggle", toggleForm("focus", "", ""))
	assert.False(t, checked(t, rec.Body.String()))

	// theme changed elsewhere, e.g. by another tab
	b.post("/web/theme", url.Values{"theme": {"dark"}})
	rec = b.post("/web/toggle", toggleForm("focus", "", ""))
	assert.True(t, checked(t, rec.Body.String()))

	rec = b.post("/web/toggle", toggleForm("click", "", ""))
	assert.False(t, checked(t, rec.Body.String()))
	assert.Equal(t, "light", b.cookie("theme"))
}

func TestHandler_ToggleBadRequests(t *testing.T) {
	b := newBrowser(t, newTestHandler(t, nil, config.Default()))

	tests := []struct {
		name string
		form url.Values
	}{
		{name: "no event", form: url.Values{}},
		{name: "unknown event", form: toggleForm("doubleclick", "", "")},
		{name: "unknown target", form: toggleForm("click", "handle", "")},
		{name: "touchstart without x", form: toggleForm("touchstart", "", "")},
		{name: "touchmove without x", form: toggleForm("touchmove", "", "")},
		{name: "bad x", form: toggleForm("touchmove", "", "left")},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := b.post("/web/toggle", tc.form)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestHandler_ToggleWebsocket(t *testing.T) {
	h := newTestHandler(t, nil, config.Default())
	router := routegroup.New(http.NewServeMux())
	h.Register(router)
	ts := httptest.NewServer(router)
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/web/toggle/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()
	defer resp.Body.Close()

	var sessionCookie *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == toggleCookie {
			sessionCookie = c
		}
	}
	require.NotNil(t, sessionCookie, "session cookie set on upgrade")

	exchange := func(msg string) toggleResult {
		t.Helper()
		require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(msg)))
		var res toggleResult
		require.NoError(t, conn.ReadJSON(&res))
		return res
	}

	res := exchange(`{"event":"click","target":"icon"}`)
	assert.Empty(t, res.Error)
	assert.Equal(t, "dark", res.Theme)
	assert.True(t, checked(t, res.HTML))

	res = exchange(`{"event":"touchstart","x":50}`)
	assert.Empty(t, res.Theme)
	res = exchange(`{"event":"touchmove","x":20}`)
	assert.False(t, checked(t, res.HTML))
	res = exchange(`{"event":"touchend"}`)
	assert.Equal(t, "light", res.Theme)

	res = exchange(`{"event":"touchmove"}`)
	assert.Equal(t, "x is required for touchmove", res.Error)
	res = exchange(`not json`)
	assert.Contains(t, res.Error, "invalid event")
	res = exchange(`{"event":"wave"}`)
	assert.Contains(t, res.Error, "invalid event")

	t.Run("reconnect reuses the session", func(t *testing.T) {
		hdr := http.Header{}
		hdr.Set("Cookie", toggleCookie+"="+sessionCookie.Value+"; theme=light")
		conn2, resp2, err := websocket.DefaultDialer.Dial(wsURL, hdr)
		require.NoError(t, err)
		defer conn2.Close()
		defer resp2.Body.Close()
		assert.Empty(t, resp2.Cookies(), "no new session")

		require.NoError(t, conn2.WriteJSON(map[string]any{"event": "focus"}))
		var res toggleResult
		require.NoError(t, conn2.ReadJSON(&res))
		assert.False(t, checked(t, res.HTML))
		assert.True(t, parseDoc(t, res.HTML).Find(".toggle").HasClass("toggle--focus"))
	})
}

func TestHandler_ToggleMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewMetrics(reg)
	h, err := New(nil, Config{Site: config.Default(), Metrics: metrics})
	require.NoError(t, err)
	defer h.Close()
	b := newBrowser(t, h)

	b.post("/web/toggle", toggleForm("click", "", ""))
	b.post("/web/toggle", toggleForm("click", "", ""))
	b.post("/web/toggle", toggleForm("focus", "", ""))
	b.post("/web/toggle", toggleForm("touchmove", "", "")) // rejected, not counted

	assert.InDelta(t, 2, testutil.ToFloat64(metrics.events.WithLabelValues(enum.ToggleEventClick.String())), 0.001)
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.events.WithLabelValues("focus")), 0.001)
	assert.InDelta(t, 0, testutil.ToFloat64(metrics.events.WithLabelValues("touchmove")), 0.001)
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.themes.WithLabelValues("dark")), 0.001)
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.themes.WithLabelValues("light")), 0.001)
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.sessions), 0.001)

	t.Run("nil metrics are fine", func(t *testing.T) {
		var m *Metrics
		m.event(enum.ToggleEventBlur)
		m.themeChanged(enum.ThemeDark)
		m.liveSessions(3)
	})
}

func TestToggleEvent_Validate(t *testing.T) {
	x := 10.0
	tests := []struct {
		name   string
		ev     toggleEvent
		err    string
		target enum.Target
	}{
		{name: "click defaults target", ev: toggleEvent{Event: enum.ToggleEventClick}, target: enum.TargetInput},
		{name: "touchstart with x", ev: toggleEvent{Event: enum.ToggleEventTouchStart, X: &x, Target: enum.TargetThumb},
			target: enum.TargetThumb},
		{name: "touchend without x", ev: toggleEvent{Event: enum.ToggleEventTouchEnd}, target: enum.TargetInput},
		{name: "missing event", ev: toggleEvent{}, err: "event is required"},
		{name: "touchstart without x", ev: toggleEvent{Event: enum.ToggleEventTouchStart}, err: "x is required for touchstart"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.ev.validate()
			if tc.err != "" {
				require.EqualError(t, err, tc.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.target, tc.ev.Target)
		})
	}
}
