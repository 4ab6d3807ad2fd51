package condition

import (
	"context"

	"github.com/pulselab/pulsec/internal/sequencer"
)

// Hardware is a condition decided by a device trigger at run time. It never
// evaluates to a boolean at compile time; it is always immediately decidable
// from the compiler's perspective, because what it decides is to branch in
// the generated program.
type Hardware struct {
	trigger string
}

// NewHardware returns a hardware condition bound to the given trigger
// handle. The handle is opaque; acquiring it from physical hardware is the
// caller's concern.
func NewHardware(trigger string) *Hardware {
	return &Hardware{trigger: trigger}
}

// Trigger returns the opaque trigger handle.
func (c *Hardware) Trigger() string { return c.trigger }

// RequiresSuspension implements sequencer.Condition; hardware conditions
// never suspend.
func (c *Hardware) RequiresSuspension() bool { return false }

// BuildLoop lowers the loop to a fresh body block entered through a
// conditional jump. The body block is its own continuation, so exhausting it
// emits the back-edge that re-tests the trigger on hardware. Control that
// does not take the jump falls through in the current block.
func (c *Hardware) BuildLoop(ctx context.Context, seq *sequencer.Sequencer, id string, loop, body sequencer.Template, scope sequencer.Scope, block *sequencer.Block) error {
	bodyBlock := seq.NewBlock(nil)
	bodyBlock.SetContinuation(bodyBlock)
	block.AppendCjmp(id, bodyBlock)
	seq.PushOn(bodyBlock, body, scope)
	return nil
}

// BuildBranch lowers the branch to two fresh blocks: a conditional jump to
// the positive block, then an unconditional jump to the negative one. Both
// arms inherit the current block's continuation, so control resumes where it
// would have after the fallthrough (for a branch forming the body of a
// hardware loop, that is the loop entry).
func (c *Hardware) BuildBranch(ctx context.Context, seq *sequencer.Sequencer, id string, positive, negative sequencer.Template, scope sequencer.Scope, block *sequencer.Block) error {
	posBlock := seq.NewBlock(block.Continuation())
	negBlock := seq.NewBlock(block.Continuation())
	block.AppendCjmp(id, posBlock)
	block.AppendGoto(negBlock)
	seq.PushOn(posBlock, positive, scope)
	seq.PushOn(negBlock, negative, scope)
	return nil
}
