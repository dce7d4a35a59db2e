package optimistic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounter_ConfirmReplacesWithCanonicalValue(t *testing.T) {
	c := NewCounter(5)
	require.NoError(t, c.Apply(1))
	assert.Equal(t, int64(6), c.Value())
	assert.Equal(t, OptimisticallyApplied, c.State())

	// Server answered with a higher count: someone else liked meanwhile.
	require.NoError(t, c.Confirm(8))
	assert.Equal(t, int64(8), c.Value())
	assert.Equal(t, Confirmed, c.State())
}

func TestCounter_RollbackRestoresExactPreActionValue(t *testing.T) {
	c := NewCounter(41)
	require.NoError(t, c.Apply(1))
	assert.Equal(t, int64(42), c.Value())

	require.NoError(t, c.Rollback())
	assert.Equal(t, int64(41), c.Value())
	assert.Equal(t, RolledBack, c.State())
}

func TestCounter_ApplyWhileInFlightIsRejected(t *testing.T) {
	c := NewCounter(0)
	require.NoError(t, c.Apply(1))
	assert.ErrorIs(t, c.Apply(1), ErrMutationInFlight)
	// The rejected second tap must not touch the value.
	assert.Equal(t, int64(1), c.Value())
}

func TestCounter_NewMutationAfterSettle(t *testing.T) {
	c := NewCounter(0)

	require.NoError(t, c.Apply(1))
	require.NoError(t, c.Confirm(1))
	require.NoError(t, c.Apply(1))
	require.NoError(t, c.Rollback())
	assert.Equal(t, int64(1), c.Value())

	require.NoError(t, c.Apply(1))
	require.NoError(t, c.Confirm(2))
	assert.Equal(t, int64(2), c.Value())
}

func TestCounter_ConfirmWithoutApply(t *testing.T) {
	c := NewCounter(3)
	assert.ErrorIs(t, c.Confirm(4), ErrNoPendingMutation)
	assert.ErrorIs(t, c.Rollback(), ErrNoPendingMutation)
	assert.Equal(t, int64(3), c.Value())
}

func TestCounter_RepeatedFailuresDoNotDrift(t *testing.T) {
	c := NewCounter(10)
	for i := 0; i < 5; i++ {
		require.NoError(t, c.Apply(1))
		require.NoError(t, c.Rollback())
	}
	assert.Equal(t, int64(10), c.Value())
}

func TestFlag_Lifecycle(t *testing.T) {
	t.Run("ConfirmKeepsServerValue", func(t *testing.T) {
		f := NewFlag(false)
		require.NoError(t, f.Apply(true))
		assert.True(t, f.Value())
		require.NoError(t, f.Confirm(true))
		assert.True(t, f.Value())
		assert.Equal(t, Confirmed, f.State())
	})

	t.Run("RollbackRestoresPrevious", func(t *testing.T) {
		f := NewFlag(false)
		require.NoError(t, f.Apply(true))
		require.NoError(t, f.Rollback())
		assert.False(t, f.Value())
		assert.Equal(t, RolledBack, f.State())
	})

	t.Run("DoubleApplyRejected", func(t *testing.T) {
		f := NewFlag(false)
		require.NoError(t, f.Apply(true))
		assert.ErrorIs(t, f.Apply(true), ErrMutationInFlight)
	})
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "optimistically_applied", OptimisticallyApplied.String())
	assert.Equal(t, "confirmed", Confirmed.String())
	assert.Equal(t, "rolled_back", RolledBack.String())
}
