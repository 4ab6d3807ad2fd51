package template

import (
	"context"

	"github.com/pulselab/pulsec/internal/sequencer"
)

// Sequence is an ordered concatenation of subtemplates.
type Sequence struct {
	children []sequencer.Template
}

// NewSequence returns a sequence over the given children.
func NewSequence(children ...sequencer.Template) *Sequence {
	return &Sequence{children: append([]sequencer.Template(nil), children...)}
}

// Subtemplates implements sequencer.Container.
func (s *Sequence) Subtemplates() []sequencer.Template {
	return append([]sequencer.Template(nil), s.children...)
}

// RequiresSuspension always reports false: expanding a sequence is always
// possible, and each child's own decidability is checked when it reaches the
// top of the stack.
func (s *Sequence) RequiresSuspension(scope sequencer.Scope) bool { return false }

// CompileStep pushes the children in reverse order, so the first child is
// the next item popped from the LIFO stack.
func (s *Sequence) CompileStep(ctx context.Context, seq *sequencer.Sequencer, scope sequencer.Scope, block *sequencer.Block) error {
	for i := len(s.children) - 1; i >= 0; i-- {
		seq.PushOn(block, s.children[i], scope)
	}
	return nil
}
