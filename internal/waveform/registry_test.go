package waveform

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func TestRegistryDefine(t *testing.T) {
	r := NewRegistry()

	err := r.Define(Definition{Name: "readout"})
	require.NoError(t, err)
	assert.True(t, r.Defined("readout"))
	assert.False(t, r.Defined("missing"))

	err = r.Define(Definition{Name: "readout"})
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestRegistryMaterialize(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Define(Definition{Name: "readout"}))
	ctx := context.Background()

	payload := Payload{
		Name:      "readout",
		Arguments: map[string]cty.Value{"amp": cty.NumberFloatVal(0.5)},
	}

	ref, err := r.Materialize(ctx, payload)
	require.NoError(t, err)
	assert.Equal(t, "readout", ref.Name)

	// Identical payloads share a reference.
	again, err := r.Materialize(ctx, payload)
	require.NoError(t, err)
	assert.Equal(t, ref, again)

	// A different argument value mints a new reference.
	other, err := r.Materialize(ctx, Payload{
		Name:      "readout",
		Arguments: map[string]cty.Value{"amp": cty.NumberFloatVal(0.7)},
	})
	require.NoError(t, err)
	assert.NotEqual(t, ref.ID, other.ID)
}

func TestRegistryMaterializeUnknown(t *testing.T) {
	r := NewRegistry()

	_, err := r.Materialize(context.Background(), Payload{Name: "ghost"})
	assert.ErrorIs(t, err, ErrUnknown)
}
