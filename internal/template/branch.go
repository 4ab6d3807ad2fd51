package template

import (
	"context"

	"github.com/pulselab/pulsec/internal/sequencer"
)

// Branch chooses between two bodies by the named condition.
type Branch struct {
	condition string
	positive  sequencer.Template
	negative  sequencer.Template
}

// NewBranch returns a branch on the named condition.
func NewBranch(condition string, positive, negative sequencer.Template) *Branch {
	return &Branch{condition: condition, positive: positive, negative: negative}
}

// ConditionID returns the branch's condition identifier.
func (b *Branch) ConditionID() string { return b.condition }

// Subtemplates implements sequencer.Container.
func (b *Branch) Subtemplates() []sequencer.Template {
	return []sequencer.Template{b.positive, b.negative}
}

// RequiresSuspension defers to the condition, like Loop.
func (b *Branch) RequiresSuspension(scope sequencer.Scope) bool {
	c, err := scope.Condition(b.condition)
	if err != nil {
		return false
	}
	return c.RequiresSuspension()
}

// CompileStep delegates lowering to the condition.
func (b *Branch) CompileStep(ctx context.Context, seq *sequencer.Sequencer, scope sequencer.Scope, block *sequencer.Block) error {
	c, err := scope.Condition(b.condition)
	if err != nil {
		return err
	}
	return c.BuildBranch(ctx, seq, b.condition, b.positive, b.negative, scope, block)
}
