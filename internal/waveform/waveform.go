// Package waveform is the materialization collaborator of the compiler. The
// compiler never generates samples; it resolves an atomic template's payload
// against its parameters and asks a Materializer for an opaque reference to
// embed in the generated program.
package waveform

import (
	"context"

	"github.com/google/uuid"
	"github.com/zclconf/go-cty/cty"
)

// Payload is a fully resolved waveform request: the declared waveform name
// plus the parameter values the atomic template bound to it.
type Payload struct {
	Name      string
	Arguments map[string]cty.Value
}

// Ref is an opaque reference to a materialized waveform. The compiler stores
// it verbatim inside exec instructions; downstream consumers use the ID to
// fetch the actual data from whatever produced it.
type Ref struct {
	ID   uuid.UUID
	Name string
}

// Materializer turns a resolved payload into a waveform reference. A failure
// is fatal to the enclosing compilation and is not retried.
type Materializer interface {
	Materialize(ctx context.Context, payload Payload) (Ref, error)
}
