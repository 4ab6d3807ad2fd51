package program

import "github.com/pulselab/pulsec/internal/waveform"

// Instruction is the closed set of low-level operations a block can hold.
// Jump targets are BlockIDs, never block pointers, so instructions stay
// value types with no ownership ties into the graph.
type Instruction interface {
	isInstruction()
}

// Exec plays one materialized waveform.
type Exec struct {
	Waveform waveform.Ref
}

// Cjmp transfers control to Target if the named condition's trigger fires;
// otherwise control falls through to the next instruction.
type Cjmp struct {
	Condition string
	Target    BlockID
}

// Goto unconditionally transfers control to Target.
type Goto struct {
	Target BlockID
}

// Stop terminates playback. It is appended at freeze time to blocks that do
// not already end in an unconditional transfer.
type Stop struct{}

func (Exec) isInstruction() {}
func (Cjmp) isInstruction() {}
func (Goto) isInstruction() {}
func (Stop) isInstruction() {}
