package sequencer

import (
	"github.com/pulselab/pulsec/internal/program"
	"github.com/pulselab/pulsec/internal/waveform"
)

// instrKind tags the mutable instruction forms a block accumulates during
// construction. Stop is never stored; it appears only at freeze time.
type instrKind int

const (
	instrExec instrKind = iota
	instrCjmp
	instrGoto
)

// pending is an instruction under construction. Jump targets are block
// handles rather than pointers so freezing can relink them through a remap
// table in one pass.
type pending struct {
	kind      instrKind
	waveform  waveform.Ref
	condition string
	target    int
}

// Block is a growable instruction list under construction, paired with its
// own stack of pending compilation obligations. Blocks have identity
// independent of content: jump instructions in other blocks reference a
// block by handle before its instructions exist.
type Block struct {
	handle       int
	instructions []pending
	stack        []WorkItem

	// continuation, when set, is the block control falls through to once
	// this block's instructions are exhausted; freezing appends the
	// corresponding goto. A nil continuation freezes to an implicit stop.
	continuation *Block
}

// Handle returns the block's stable identity within its sequencer.
func (b *Block) Handle() int { return b.handle }

// Len returns the number of instructions appended so far.
func (b *Block) Len() int { return len(b.instructions) }

// AppendExec appends an instruction playing the given waveform reference.
func (b *Block) AppendExec(ref waveform.Ref) {
	b.instructions = append(b.instructions, pending{kind: instrExec, waveform: ref})
}

// AppendCjmp appends a conditional jump on the named condition to target.
func (b *Block) AppendCjmp(condition string, target *Block) {
	b.instructions = append(b.instructions, pending{kind: instrCjmp, condition: condition, target: target.handle})
}

// AppendGoto appends an unconditional jump to target.
func (b *Block) AppendGoto(target *Block) {
	b.instructions = append(b.instructions, pending{kind: instrGoto, target: target.handle})
}

// SetContinuation records where control resumes after this block. A block
// may be its own continuation, which produces a hardware loop's back-edge.
func (b *Block) SetContinuation(target *Block) {
	b.continuation = target
}

// Continuation returns the block's continuation, or nil when unset.
func (b *Block) Continuation() *Block { return b.continuation }

// push adds a work item to the block's stack.
func (b *Block) push(item WorkItem) {
	b.stack = append(b.stack, item)
}

// top returns the most recently pushed unprocessed work item.
func (b *Block) top() (WorkItem, bool) {
	if len(b.stack) == 0 {
		return WorkItem{}, false
	}
	return b.stack[len(b.stack)-1], true
}

// pop removes and returns the top work item.
func (b *Block) pop() (WorkItem, bool) {
	item, ok := b.top()
	if !ok {
		return WorkItem{}, false
	}
	b.stack = b.stack[:len(b.stack)-1]
	return item, true
}

// freeze converts the block into its immutable form, relinking jump targets
// through remap and appending the terminal instruction: blocks already
// ending in an unconditional transfer are left exactly as compiled, blocks
// with a continuation jump to it, and everything else stops.
func (b *Block) freeze(id program.BlockID, name string, remap map[int]program.BlockID) *program.Block {
	out := make([]program.Instruction, 0, len(b.instructions)+1)
	for _, ins := range b.instructions {
		switch ins.kind {
		case instrExec:
			out = append(out, program.Exec{Waveform: ins.waveform})
		case instrCjmp:
			out = append(out, program.Cjmp{Condition: ins.condition, Target: remap[ins.target]})
		case instrGoto:
			out = append(out, program.Goto{Target: remap[ins.target]})
		}
	}

	endsUnconditional := len(b.instructions) > 0 && b.instructions[len(b.instructions)-1].kind == instrGoto
	if !endsUnconditional {
		if b.continuation != nil {
			out = append(out, program.Goto{Target: remap[b.continuation.handle]})
		} else {
			out = append(out, program.Stop{})
		}
	}

	return program.NewBlock(id, name, out)
}
