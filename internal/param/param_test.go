package param

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func TestConstant(t *testing.T) {
	c := NewConstant(cty.NumberFloatVal(0.5))

	assert.True(t, c.Resolved())
	v, err := c.Value()
	require.NoError(t, err)
	assert.Equal(t, cty.NumberFloatVal(0.5), v)
}

func TestDeferred(t *testing.T) {
	d := NewDeferred()

	assert.False(t, d.Resolved())
	_, err := d.Value()
	assert.ErrorIs(t, err, ErrUnresolved)

	d.Set(cty.StringVal("ro"))
	assert.True(t, d.Resolved())
	v, err := d.Value()
	require.NoError(t, err)
	assert.Equal(t, cty.StringVal("ro"), v)
}

func TestMapResolve(t *testing.T) {
	m := Map{
		"amp": NewConstant(cty.NumberFloatVal(1)),
	}

	v, err := m.Resolve("amp")
	require.NoError(t, err)
	assert.Equal(t, cty.NumberFloatVal(1), v)

	_, err = m.Resolve("missing")
	assert.ErrorIs(t, err, ErrNotFound)

	_, ok := m.Lookup("missing")
	assert.False(t, ok)
}
