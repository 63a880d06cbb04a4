package toggle

import (
	"sort"

	g "maragu.dev/gomponents"
	c "maragu.dev/gomponents/components"
	h "maragu.dev/gomponents/html"
)

// defaultAriaLabel is used when Attrs has no aria-label.
const defaultAriaLabel = "Switch between Dark and Light mode"

// Icons holds content for the two track slots. Nil fields fall back to the built-in icons.
type Icons struct {
	Checked   g.Node
	Unchecked g.Node
}

func (i Icons) resolve() Icons {
	if i.Checked == nil {
		i.Checked = CheckIcon()
	}
	if i.Unchecked == nil {
		i.Unchecked = CrossIcon()
	}
	return i
}

// CheckIcon is the default icon shown on a checked track.
func CheckIcon() g.Node {
	return g.Raw(`<svg width="14" height="11" viewBox="0 0 14 11" aria-hidden="true"><path d="M11.264 0L5.26 6.004 2.103 2.847 0 4.95l5.26 5.26 8.108-8.107L11.264 0" fill="#fff" fill-rule="evenodd"/></svg>`)
}

// CrossIcon is the default icon shown on an unchecked track.
func CrossIcon() g.Node {
	return g.Raw(`<svg width="10" height="10" viewBox="0 0 10 10" aria-hidden="true"><path d="M9.9 2.12L7.78 0 4.95 2.828 2.12 0 0 2.12l2.83 2.83L0 7.776 2.123 9.9 4.95 7.07 7.78 9.9 9.9 7.776 7.07 4.95 9.9 2.12" fill="#fff" fill-rule="evenodd"/></svg>`)
}

// ownedAttrs are input attributes set by the toggle itself, pass-through values are ignored.
var ownedAttrs = map[string]bool{"type": true, "class": true, "checked": true, "disabled": true}

func render(st State, disabled bool, icons Icons, class string, attrs map[string]string) g.Node {
	classes := c.Classes{
		"toggle":           true,
		"toggle--checked":  st.Checked,
		"toggle--focus":    st.HasFocus,
		"toggle--disabled": disabled,
	}
	if class != "" {
		classes[class] = true
	}

	return h.Div(classes,
		h.Div(h.Class("toggle-track"),
			h.Div(h.Class("toggle-track-check"), icons.Checked),
			h.Div(h.Class("toggle-track-x"), icons.Unchecked),
		),
		h.Div(h.Class("toggle-thumb")),
		h.Input(
			h.Type("checkbox"),
			h.Class("toggle-screenreader-only"),
			g.If(st.Checked, h.Checked()),
			g.If(disabled, h.Disabled()),
			g.Group(inputAttrs(attrs)),
		),
	)
}

// inputAttrs converts pass-through attributes to nodes in a stable order.
func inputAttrs(attrs map[string]string) []g.Node {
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		if ownedAttrs[k] {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	res := make([]g.Node, 0, len(keys)+1)
	if _, ok := attrs["aria-label"]; !ok {
		res = append(res, h.Aria("label", defaultAriaLabel))
	}
	for _, k := range keys {
		res = append(res, g.Attr(k, attrs[k]))
	}
	return res
}
