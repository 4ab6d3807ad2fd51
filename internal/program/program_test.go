package program

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pulselab/pulsec/internal/waveform"
)

func twoBlockProgram() *Program {
	ref := waveform.Ref{ID: uuid.Nil, Name: "readout"}
	main := NewBlock(0, "main", []Instruction{
		Exec{Waveform: ref},
		Cjmp{Condition: "cool", Target: 1},
		Stop{},
	})
	body := NewBlock(1, "block_1", []Instruction{
		Exec{Waveform: ref},
		Goto{Target: 1},
	})
	return New([]*Block{main, body})
}

func TestProgramAccessors(t *testing.T) {
	p := twoBlockProgram()

	assert.Equal(t, "main", p.Main().Name())
	assert.Equal(t, BlockID(0), p.Main().ID())
	assert.Len(t, p.Blocks(), 2)

	b, ok := p.Block(1)
	require.True(t, ok)
	assert.Equal(t, 2, b.Len())

	_, ok = p.Block(7)
	assert.False(t, ok)
	_, ok = p.Block(-1)
	assert.False(t, ok)
}

func TestBlockInstructionsIsACopy(t *testing.T) {
	p := twoBlockProgram()

	ins := p.Main().Instructions()
	ins[0] = Stop{}
	assert.IsType(t, Exec{}, p.Main().Instructions()[0])
}

func TestRender(t *testing.T) {
	p := twoBlockProgram()

	want := "main:\n" +
		"    0  exec readout\n" +
		"    1  cjmp cool -> block_1\n" +
		"    2  stop\n" +
		"block_1:\n" +
		"    0  exec readout\n" +
		"    1  goto block_1\n"
	assert.Equal(t, want, p.Render())
}
