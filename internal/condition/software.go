package condition

import (
	"context"
	"errors"

	"github.com/pulselab/pulsec/internal/sequencer"
)

// ErrUndetermined reports a compile step reaching an undetermined software
// condition. The sequencer's decidability check prevents this; seeing it
// means a template was compiled without that check.
var ErrUndetermined = errors.New("condition evaluated undetermined during compile step")

// Software is a condition decided at compile time by a callback. It owns a
// private iteration counter, starting at 0 and advancing once per decided
// evaluation, so the callback sees strictly increasing indices across the
// unrolling of its loop.
//
// A decided probe result is memoized until consumed, so the sequencer's
// suspension check and the following compile step cost a single callback
// invocation. Undetermined results are never memoized; every retry after a
// suspension re-invokes the callback at the same index.
type Software struct {
	callback  Callback
	iteration int
	pending   *Tristate
}

// NewSoftware returns a software condition over the given callback.
func NewSoftware(callback Callback) *Software {
	return &Software{callback: callback}
}

// Iteration returns the current iteration index, for inspection in tests.
func (c *Software) Iteration() int { return c.iteration }

// probe evaluates the callback at the current index without advancing it.
func (c *Software) probe() Tristate {
	if c.pending != nil {
		return *c.pending
	}
	result := c.callback(c.iteration)
	if result != Undetermined {
		c.pending = &result
	}
	return result
}

// evaluate consumes the probed result, advancing the iteration counter.
func (c *Software) evaluate() Tristate {
	result := c.probe()
	if result != Undetermined {
		c.pending = nil
		c.iteration++
	}
	return result
}

// RequiresSuspension implements sequencer.Condition.
func (c *Software) RequiresSuspension() bool {
	return c.probe() == Undetermined
}

// BuildLoop unrolls one loop iteration. On true the loop template is pushed
// back beneath its body, so the body compiles first and the loop then
// re-evaluates; on false control simply falls through in the current block.
func (c *Software) BuildLoop(ctx context.Context, seq *sequencer.Sequencer, id string, loop, body sequencer.Template, scope sequencer.Scope, block *sequencer.Block) error {
	switch c.evaluate() {
	case True:
		seq.PushOn(block, loop, scope)
		seq.PushOn(block, body, scope)
		return nil
	case False:
		return nil
	default:
		return ErrUndetermined
	}
}

// BuildBranch selects one of the two bodies by a single evaluation.
func (c *Software) BuildBranch(ctx context.Context, seq *sequencer.Sequencer, id string, positive, negative sequencer.Template, scope sequencer.Scope, block *sequencer.Block) error {
	switch c.evaluate() {
	case True:
		seq.PushOn(block, positive, scope)
		return nil
	case False:
		seq.PushOn(block, negative, scope)
		return nil
	default:
		return ErrUndetermined
	}
}
