package sequencer

import (
	"context"
	"fmt"

	"github.com/pulselab/pulsec/internal/param"
)

// Template is one node of a pulse description tree. Implementations are
// immutable and may be shared across compilations; all per-compilation state
// lives in the Scope and the Sequencer.
//
// RequiresSuspension reports whether compiling this node right now is
// impossible (an undetermined software condition, an unresolved parameter).
// While it reports true the sequencer leaves the node's work item on its
// stack untouched and tries other blocks.
//
// CompileStep performs exactly one unit of translation: it may append
// instructions to block, create child blocks via the sequencer, and push
// further work items. A node never re-pushes itself directly; loop re-entry
// happens through its condition pushing a fresh work item for the same
// template value.
type Template interface {
	RequiresSuspension(scope Scope) bool
	CompileStep(ctx context.Context, seq *Sequencer, scope Scope, block *Block) error
}

// Container is implemented by templates with subtemplates. The sequencer
// uses it to reject cyclic template structures before compiling.
type Container interface {
	Subtemplates() []Template
}

// Condition decides loop and branch lowering. A software condition unrolls
// at compile time; a hardware condition defers the decision to the device by
// emitting jump instructions.
type Condition interface {
	// RequiresSuspension reports whether the condition's outcome cannot be
	// determined right now. Hardware conditions never suspend.
	RequiresSuspension() bool

	// BuildLoop lowers one step of a loop. loop is the delegating loop
	// template itself, pushed again by software conditions that unroll.
	BuildLoop(ctx context.Context, seq *Sequencer, id string, loop, body Template, scope Scope, block *Block) error

	// BuildBranch lowers a two-way branch.
	BuildBranch(ctx context.Context, seq *Sequencer, id string, positive, negative Template, scope Scope, block *Block) error
}

// Scope binds a work item to its compilation environment. Both mappings are
// read-only from the sequencer's perspective during a build call.
type Scope struct {
	Parameters param.Map
	Conditions map[string]Condition
}

// Condition returns the condition registered under id, or
// ErrUnknownCondition. A missing condition is a structural error, not a
// suspension.
func (s Scope) Condition(id string) (Condition, error) {
	c, ok := s.Conditions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCondition, id)
	}
	return c, nil
}

// WorkItem is one pending compilation obligation: a template bound to the
// environment it must be compiled under.
type WorkItem struct {
	Template Template
	Scope    Scope
}
