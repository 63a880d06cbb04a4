package enum

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseToggleEvent(t *testing.T) {
	for _, name := range ToggleEventNames() {
		ev, err := ParseToggleEvent(name)
		require.NoError(t, err)
		assert.Equal(t, name, ev.String())
	}
	_, err := ParseToggleEvent("dblclick")
	require.Error(t, err)
}

func TestParseTarget(t *testing.T) {
	tg, err := ParseTarget("")
	require.NoError(t, err)
	assert.Equal(t, TargetInput, tg)

	tg, err = ParseTarget("thumb")
	require.NoError(t, err)
	assert.Equal(t, TargetThumb, tg)

	_, err = ParseTarget("label")
	require.Error(t, err)
}
