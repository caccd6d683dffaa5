package alarm

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestState_IsAlarm verifies only the exact ALARM value counts as an alarm.
func TestState_IsAlarm(t *testing.T) {
	t.Parallel()

	require.True(t, StateAlarm.IsAlarm())
	require.False(t, StateOK.IsAlarm())
	require.False(t, StateInsufficientData.IsAlarm())
	require.False(t, State("alarm").IsAlarm())
	require.False(t, State("").IsAlarm())
	require.Equal(t, "INSUFFICIENT_DATA", StateInsufficientData.String())
}
