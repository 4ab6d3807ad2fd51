package condition

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSoftwareIterationIndices(t *testing.T) {
	var seen []int
	c := NewSoftware(func(i int) Tristate {
		seen = append(seen, i)
		if i < 3 {
			return True
		}
		return False
	})

	// Each probe/evaluate pair costs a single callback invocation.
	assert.False(t, c.RequiresSuspension())
	assert.Equal(t, True, c.evaluate())
	assert.False(t, c.RequiresSuspension())
	assert.Equal(t, True, c.evaluate())
	assert.Equal(t, True, c.evaluate())
	assert.Equal(t, False, c.evaluate())

	assert.Equal(t, []int{0, 1, 2, 3}, seen)
	assert.Equal(t, 4, c.Iteration())
}

func TestSoftwareUndeterminedNotMemoized(t *testing.T) {
	decided := false
	calls := 0
	c := NewSoftware(func(i int) Tristate {
		calls++
		if !decided {
			return Undetermined
		}
		return False
	})

	assert.True(t, c.RequiresSuspension())
	assert.True(t, c.RequiresSuspension())
	// Every retry re-invokes the callback at the same index.
	assert.Equal(t, 2, calls)
	assert.Equal(t, 0, c.Iteration())

	decided = true
	assert.False(t, c.RequiresSuspension())
	assert.Equal(t, False, c.evaluate())
	assert.Equal(t, 3, calls)
	assert.Equal(t, 1, c.Iteration())
}

func TestTristateString(t *testing.T) {
	assert.Equal(t, "true", True.String())
	assert.Equal(t, "false", False.String())
	assert.Equal(t, "undetermined", Undetermined.String())
}

func TestHardwareNeverSuspends(t *testing.T) {
	c := NewHardware("T0")
	assert.False(t, c.RequiresSuspension())
	assert.Equal(t, "T0", c.Trigger())
}
