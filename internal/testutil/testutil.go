// Package testutil holds fixtures shared by the compiler's tests.
package testutil

import (
	"context"

	"github.com/google/uuid"

	"github.com/pulselab/pulsec/internal/condition"
	"github.com/pulselab/pulsec/internal/template"
	"github.com/pulselab/pulsec/internal/waveform"
)

// StubMaterializer materializes any payload without a declaration registry,
// recording the requests it sees. Err, when set, makes every request fail.
type StubMaterializer struct {
	Calls []waveform.Payload
	Err   error
}

// NewStub returns an empty stub materializer.
func NewStub() *StubMaterializer {
	return &StubMaterializer{}
}

// Materialize implements waveform.Materializer.
func (m *StubMaterializer) Materialize(ctx context.Context, payload waveform.Payload) (waveform.Ref, error) {
	m.Calls = append(m.Calls, payload)
	if m.Err != nil {
		return waveform.Ref{}, m.Err
	}
	return waveform.Ref{ID: uuid.New(), Name: payload.Name}, nil
}

// Pulse returns a parameterless atomic template over the stub.
func Pulse(m waveform.Materializer, name string) *template.Atomic {
	return template.NewAtomic(name, nil, m)
}

// LessThan returns a software condition callback that holds for the first n
// iterations and then stops.
func LessThan(n int) condition.Callback {
	return func(i int) condition.Tristate {
		if i < n {
			return condition.True
		}
		return condition.False
	}
}
