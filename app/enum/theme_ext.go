package enum

// Toggle returns the opposite theme (dark↔light). System defaults to dark.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// Dark reports whether the theme is dark, this is the checked state of the theme switch.
func (t Theme) Dark() bool { return t == ThemeDark }

// ThemeFromChecked maps the theme switch value to the requested theme.
func ThemeFromChecked(checked bool) Theme {
	if checked {
		return ThemeDark
	}
	return ThemeLight
}
