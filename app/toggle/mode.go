package toggle

type modeKind int

const (
	modeUncontrolled modeKind = iota
	modeControlled
)

// Mode says who owns the toggle value. Zero value is Uncontrolled(false).
type Mode struct {
	kind    modeKind
	initial bool
	source  func() bool
}

// Uncontrolled makes a mode where the toggle owns its value, starting from initial.
func Uncontrolled(initial bool) Mode {
	return Mode{kind: modeUncontrolled, initial: initial}
}

// Controlled makes a mode where the value comes from source. The toggle still notifies
// the owner about user changes and re-reads source right after each notification,
// so the owner applies a change by updating whatever source reads.
func Controlled(source func() bool) Mode {
	if source == nil {
		source = func() bool { return false }
	}
	return Mode{kind: modeControlled, source: source}
}

// Controlled reports whether the value is owned externally.
func (m Mode) Controlled() bool { return m.kind == modeControlled }

func (m Mode) value() bool {
	if m.kind == modeControlled {
		return m.source()
	}
	return m.initial
}
