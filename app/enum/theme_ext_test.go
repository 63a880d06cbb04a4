package enum

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTheme_Toggle(t *testing.T) {
	tests := []struct {
		current  Theme
		expected Theme
	}{
		{ThemeSystem, ThemeDark},
		{ThemeLight, ThemeDark},
		{ThemeDark, ThemeLight},
	}

	for _, tc := range tests {
		t.Run(tc.current.String()+"->"+tc.expected.String(), func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.current.Toggle())
		})
	}
}

func TestTheme_Dark(t *testing.T) {
	assert.True(t, ThemeDark.Dark())
	assert.False(t, ThemeLight.Dark())
	assert.False(t, ThemeSystem.Dark())
}

func TestThemeFromChecked(t *testing.T) {
	assert.Equal(t, ThemeDark, ThemeFromChecked(true))
	assert.Equal(t, ThemeLight, ThemeFromChecked(false))
	for _, th := range []Theme{ThemeLight, ThemeDark} {
		assert.Equal(t, th, ThemeFromChecked(th.Dark()), "round trip %s", th)
	}
}

func TestParseTheme(t *testing.T) {
	tests := []struct {
		in       string
		expected Theme
		wantErr  bool
	}{
		{in: "dark", expected: ThemeDark},
		{in: "LIGHT", expected: ThemeLight},
		{in: "", expected: ThemeSystem},
		{in: "system", expected: ThemeSystem},
		{in: "sepia", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			th, err := ParseTheme(tc.in)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, th)
		})
	}
}
