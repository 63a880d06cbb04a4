// Package toggle implements a two-state switch control driven by activation, focus and
// horizontal drag gestures. The control owns its state and is not safe for concurrent use,
// callers serialize access the same way a UI event loop would.
package toggle

import (
	g "maragu.dev/gomponents"
)

// Threshold is the horizontal distance a drag has to travel past the last flip point
// before the switch flips.
const Threshold = 15.0

// Origin tells where an activation landed.
type Origin int

const (
	// OriginControl is the focusable input itself.
	OriginControl Origin = iota
	// OriginInner is any visual sub-element: track, thumb or icon.
	OriginInner
)

// Change is the notification sent to the owner when a user interaction commits a new value.
type Change struct {
	Checked bool   // new value
	Name    string // "name" attribute of the input, if any
	Value   string // "value" attribute of the input, "on" when not set
}

// State is the externally visible toggle state.
type State struct {
	Checked           bool
	HasFocus          bool
	PreviouslyChecked bool
}

// Config defines toggle construction parameters. Zero value is a usable, uncontrolled,
// unchecked toggle with default icons.
type Config struct {
	Mode     Mode
	Disabled bool
	Icons    Icons
	Class    string            // extra class added to the root element
	Attrs    map[string]string // pass-through attributes for the input element

	OnChange func(Change)
	OnFocus  func()
	OnBlur   func()
}

// Toggle is a switch control instance.
type Toggle struct {
	cfg   Config
	icons Icons
	snap  snapshot
}

// snapshot is everything the transition function reads and writes.
type snapshot struct {
	State
	disabled bool
	session  session
}

// session is the transient part of a drag gesture. hadFocus survives session resets,
// focus and blur keep it current between gestures.
type session struct {
	startX   float64
	hasStart bool
	started  bool
	moved    bool
	hadFocus bool
}

func (s session) reset() session {
	return session{hadFocus: s.hadFocus}
}

// New makes a toggle from config. Mode and icons are resolved here and never re-inspected.
func New(cfg Config) *Toggle {
	initial := cfg.Mode.value()
	return &Toggle{
		cfg:   cfg,
		icons: cfg.Icons.resolve(),
		snap: snapshot{
			State:    State{Checked: initial, PreviouslyChecked: initial},
			disabled: cfg.Disabled,
		},
	}
}

// State returns current state.
func (t *Toggle) State() State { return t.snap.State }

// Checked reports current value.
func (t *Toggle) Checked() bool { return t.snap.Checked }

// Controlled reports whether the value is owned by an external source.
func (t *Toggle) Controlled() bool { return t.cfg.Mode.Controlled() }

// Disabled reports whether the toggle ignores activation and gestures.
func (t *Toggle) Disabled() bool { return t.snap.disabled }

// InGesture reports whether a drag session is active.
func (t *Toggle) InGesture() bool { return t.snap.session.started }

// Activate handles a click or the equivalent keyboard action.
func (t *Toggle) Activate(origin Origin) {
	t.dispatch(event{kind: evActivate, origin: origin})
}

// GestureStart begins a drag session at horizontal position x.
func (t *Toggle) GestureStart(x float64) {
	t.dispatch(event{kind: evGestureStart, x: x})
}

// GestureMove processes a drag move to x, ignored without a started session.
func (t *Toggle) GestureMove(x float64) {
	t.dispatch(event{kind: evGestureMove, x: x})
}

// GestureEnd finishes the drag session and commits the value if the drag changed it.
// Without any move it does nothing and the session stays open.
func (t *Toggle) GestureEnd() {
	t.dispatch(event{kind: evGestureEnd})
}

// GestureCancel drops the drag session without committing.
func (t *Toggle) GestureCancel() {
	t.dispatch(event{kind: evGestureCancel})
}

// Focus marks the control focused, OnFocus is called first.
func (t *Toggle) Focus() {
	t.dispatch(event{kind: evFocus})
}

// Blur marks the control unfocused, OnBlur is called first.
func (t *Toggle) Blur() {
	t.dispatch(event{kind: evBlur})
}

// Sync re-reads the value source of a controlled toggle and forces the state to it.
// Does nothing for uncontrolled toggles.
func (t *Toggle) Sync() {
	if !t.cfg.Mode.Controlled() {
		return
	}
	t.dispatch(event{kind: evSync, checked: t.cfg.Mode.value()})
}

// SetDisabled updates the disabled flag.
func (t *Toggle) SetDisabled(disabled bool) {
	t.dispatch(event{kind: evDisable, checked: disabled})
}

// Node renders the toggle.
func (t *Toggle) Node() g.Node {
	return render(t.snap.State, t.snap.disabled, t.icons, t.cfg.Class, t.cfg.Attrs)
}

// dispatch runs one event through transition and executes the resulting effects.
// Owner callbacks for focus and blur run before the new state is stored, change
// notifications and re-dispatches run after.
func (t *Toggle) dispatch(ev event) {
	next, fx := transition(t.snap, ev)

	if fx.focus && t.cfg.OnFocus != nil {
		t.cfg.OnFocus()
	}
	if fx.blur && t.cfg.OnBlur != nil {
		t.cfg.OnBlur()
	}

	t.snap = next

	if fx.redispatch != nil {
		t.dispatch(*fx.redispatch)
		return
	}

	if fx.changed {
		if t.cfg.OnChange != nil {
			t.cfg.OnChange(t.change(next.Checked))
		}
		// controlled value wins over whatever the interaction produced
		t.Sync()
	}
}

func (t *Toggle) change(checked bool) Change {
	res := Change{Checked: checked, Name: t.cfg.Attrs["name"], Value: t.cfg.Attrs["value"]}
	if res.Value == "" {
		res.Value = "on"
	}
	return res
}
