// Package program holds the immutable output of a completed compilation: a
// graph of instruction blocks linked by jump targets. A Program is safe to
// hand to a playback device driver or an emulator; nothing in it refers back
// to the compiler's mutable state.
package program

import (
	"fmt"
	"strings"
)

// BlockID addresses a block within its Program. IDs are dense, starting at 0
// for the main block, and are the sole way jump instructions name their
// targets.
type BlockID int

// Block is a finalized, ordered instruction list. Its instruction slice is
// terminated at freeze time: a block whose compiled instructions do not end
// in an unconditional transfer carries a trailing Stop (or the Goto to its
// continuation), so every block ends in exactly one control transfer.
type Block struct {
	id           BlockID
	name         string
	instructions []Instruction
}

// NewBlock assembles a finalized block. The caller (the sequencer's freeze
// pass) must already have relinked all jump targets to BlockIDs and appended
// the terminal instruction.
func NewBlock(id BlockID, name string, instructions []Instruction) *Block {
	return &Block{id: id, name: name, instructions: instructions}
}

// ID returns the block's address within its program.
func (b *Block) ID() BlockID { return b.id }

// Name returns the block's human-readable name ("main" for block 0).
func (b *Block) Name() string { return b.name }

// Instructions returns a copy of the block's instruction list.
func (b *Block) Instructions() []Instruction {
	out := make([]Instruction, len(b.instructions))
	copy(out, b.instructions)
	return out
}

// Len returns the number of instructions, terminal included.
func (b *Block) Len() int { return len(b.instructions) }

// Program is the frozen block graph. Block 0 is the main block; every other
// block is reachable from it through jump instructions.
type Program struct {
	blocks []*Block
}

// New assembles a program from finalized blocks, in BlockID order.
func New(blocks []*Block) *Program {
	return &Program{blocks: blocks}
}

// Main returns the entry block.
func (p *Program) Main() *Block { return p.blocks[0] }

// Block returns the block with the given ID.
func (p *Program) Block(id BlockID) (*Block, bool) {
	if id < 0 || int(id) >= len(p.blocks) {
		return nil, false
	}
	return p.blocks[id], true
}

// Blocks returns all blocks in BlockID order.
func (p *Program) Blocks() []*Block {
	out := make([]*Block, len(p.blocks))
	copy(out, p.blocks)
	return out
}

// Render produces a deterministic textual listing of the whole program, one
// section per block, with jump targets shown by block name.
func (p *Program) Render() string {
	var sb strings.Builder
	for _, b := range p.blocks {
		fmt.Fprintf(&sb, "%s:\n", b.name)
		for i, ins := range b.instructions {
			fmt.Fprintf(&sb, "  %3d  %s\n", i, p.renderInstruction(ins))
		}
	}
	return sb.String()
}

func (p *Program) renderInstruction(ins Instruction) string {
	switch ins := ins.(type) {
	case Exec:
		return fmt.Sprintf("exec %s", ins.Waveform.Name)
	case Cjmp:
		return fmt.Sprintf("cjmp %s -> %s", ins.Condition, p.blockName(ins.Target))
	case Goto:
		return fmt.Sprintf("goto %s", p.blockName(ins.Target))
	case Stop:
		return "stop"
	default:
		return fmt.Sprintf("%#v", ins)
	}
}

func (p *Program) blockName(id BlockID) string {
	if b, ok := p.Block(id); ok {
		return b.name
	}
	return fmt.Sprintf("?%d", id)
}
