package toggle

type eventKind int

const (
	evActivate eventKind = iota
	evGestureStart
	evGestureMove
	evGestureEnd
	evGestureCancel
	evFocus
	evBlur
	evSync
	evDisable
)

type event struct {
	kind    eventKind
	origin  Origin
	x       float64
	checked bool // value for evSync, flag for evDisable
}

// effects are side effects requested by a transition, executed by dispatch.
type effects struct {
	focus      bool   // call OnFocus
	blur       bool   // call OnBlur
	changed    bool   // committed value changed, notify owner
	redispatch *event // run this event next
}

// transition is the only place where toggle state changes. It gets the current snapshot
// and returns the next one, it never calls owner code.
func transition(s snapshot, ev event) (snapshot, effects) {
	switch ev.kind {
	case evActivate:
		return activate(s, ev.origin)

	case evGestureStart:
		if s.disabled {
			return s, effects{}
		}
		s.session = session{
			startX:   ev.x,
			hasStart: true,
			started:  true,
			hadFocus: s.HasFocus,
		}
		s.PreviouslyChecked = s.Checked
		s.HasFocus = true
		return s, effects{}

	case evGestureMove:
		if !s.session.started {
			return s, effects{}
		}
		s.session.moved = true
		if !s.session.hasStart {
			return s, effects{}
		}
		switch {
		case s.Checked && ev.x+Threshold < s.session.startX:
			s.Checked = false
			s.session.startX = ev.x
		case !s.Checked && ev.x-Threshold > s.session.startX:
			s.Checked = true
			s.session.startX = ev.x
		}
		return s, effects{}

	case evGestureEnd:
		// a tap is left to the click that follows it, the session stays open
		if !s.session.moved {
			return s, effects{}
		}
		var fx effects
		if s.Checked != s.PreviouslyChecked {
			s.PreviouslyChecked = s.Checked
			fx.changed = true
		}
		s = endSession(s)
		return s, fx

	case evGestureCancel:
		if !s.session.started {
			return s, effects{}
		}
		s.Checked = s.PreviouslyChecked
		return endSession(s), effects{}

	case evFocus:
		s.HasFocus = true
		s.session.hadFocus = true
		return s, effects{focus: true}

	case evBlur:
		s.HasFocus = false
		s.session.hadFocus = false
		return s, effects{blur: true}

	case evSync:
		s.Checked = ev.checked
		s.PreviouslyChecked = ev.checked
		return s, effects{}

	case evDisable:
		s.disabled = ev.checked
		return s, effects{}
	}
	return s, effects{}
}

// activate flips the value. Activation on an inner element focuses the control and
// comes back as a control activation, unless a drag is in progress, in which case the
// drag owns the outcome and the activation is dropped.
func activate(s snapshot, origin Origin) (snapshot, effects) {
	if s.disabled {
		return s, effects{}
	}
	if origin != OriginControl {
		if s.session.moved {
			return s, effects{}
		}
		s.HasFocus = true
		s.session.hadFocus = true
		return s, effects{focus: true, redispatch: &event{kind: evActivate, origin: OriginControl}}
	}
	s.Checked = !s.Checked
	s.PreviouslyChecked = s.Checked
	return s, effects{changed: true}
}

// endSession clears gesture fields and drops focus unless it was there before the gesture.
func endSession(s snapshot) snapshot {
	hadFocus := s.session.hadFocus
	s.session = s.session.reset()
	if !hadFocus {
		s.HasFocus = false
	}
	return s
}
