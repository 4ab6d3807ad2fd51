package template

import (
	"context"

	"github.com/pulselab/pulsec/internal/sequencer"
)

// Loop repeats its body while the named condition holds. How that lowers
// depends entirely on the condition variant, so the node delegates to it:
// software conditions unroll, hardware conditions emit a jump loop.
type Loop struct {
	condition string
	body      sequencer.Template
}

// NewLoop returns a loop over body controlled by the named condition.
func NewLoop(condition string, body sequencer.Template) *Loop {
	return &Loop{condition: condition, body: body}
}

// ConditionID returns the loop's condition identifier.
func (l *Loop) ConditionID() string { return l.condition }

// Subtemplates implements sequencer.Container.
func (l *Loop) Subtemplates() []sequencer.Template {
	return []sequencer.Template{l.body}
}

// RequiresSuspension defers to the condition. An unknown condition
// identifier does not suspend; it fails the compile step instead.
func (l *Loop) RequiresSuspension(scope sequencer.Scope) bool {
	c, err := scope.Condition(l.condition)
	if err != nil {
		return false
	}
	return c.RequiresSuspension()
}

// CompileStep delegates lowering to the condition, handing it the loop
// itself so a software condition can schedule the re-evaluation.
func (l *Loop) CompileStep(ctx context.Context, seq *sequencer.Sequencer, scope sequencer.Scope, block *sequencer.Block) error {
	c, err := scope.Condition(l.condition)
	if err != nil {
		return err
	}
	return c.BuildLoop(ctx, seq, l.condition, l, l.body, scope, block)
}
