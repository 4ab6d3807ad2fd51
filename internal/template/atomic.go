// Package template implements the pulse description tree: the four node
// variants the compiler translates. Nodes are immutable and reusable across
// compilations; everything that varies per compilation comes in through the
// sequencer scope.
package template

import (
	"context"
	"fmt"

	"github.com/zclconf/go-cty/cty"

	"github.com/pulselab/pulsec/internal/ctxlog"
	"github.com/pulselab/pulsec/internal/sequencer"
	"github.com/pulselab/pulsec/internal/waveform"
)

// Atomic is a leaf node producing a single exec instruction. It names a
// declared waveform and the parameters whose resolved values the waveform is
// materialized with.
type Atomic struct {
	waveformName string
	paramNames   []string
	materializer waveform.Materializer
}

// NewAtomic returns an atomic node for the named waveform. paramNames lists
// the parameters bound into the payload; the materializer is the external
// collaborator asked for the waveform reference.
func NewAtomic(waveformName string, paramNames []string, materializer waveform.Materializer) *Atomic {
	return &Atomic{
		waveformName: waveformName,
		paramNames:   append([]string(nil), paramNames...),
		materializer: materializer,
	}
}

// WaveformName returns the declared waveform this node plays.
func (a *Atomic) WaveformName() string { return a.waveformName }

// RequiresSuspension reports true while any referenced parameter exists but
// is not resolvable yet. A missing parameter is not a suspension; it
// surfaces as a fatal error from the compile step.
func (a *Atomic) RequiresSuspension(scope sequencer.Scope) bool {
	for _, name := range a.paramNames {
		if p, ok := scope.Parameters.Lookup(name); ok && !p.Resolved() {
			return true
		}
	}
	return false
}

// CompileStep resolves the payload, requests a waveform reference, and
// appends an exec instruction to the current block.
func (a *Atomic) CompileStep(ctx context.Context, seq *sequencer.Sequencer, scope sequencer.Scope, block *sequencer.Block) error {
	args := make(map[string]cty.Value, len(a.paramNames))
	for _, name := range a.paramNames {
		v, err := scope.Parameters.Resolve(name)
		if err != nil {
			return fmt.Errorf("pulse %q: %w", a.waveformName, err)
		}
		args[name] = v
	}

	ref, err := a.materializer.Materialize(ctx, waveform.Payload{Name: a.waveformName, Arguments: args})
	if err != nil {
		return fmt.Errorf("pulse %q: %w", a.waveformName, err)
	}

	ctxlog.FromContext(ctx).Debug("Compiled pulse.", "waveform", a.waveformName, "block", block.Handle())
	block.AppendExec(ref)
	return nil
}
