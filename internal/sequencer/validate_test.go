package sequencer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeNode is a minimal container template for structural tests.
type fakeNode struct {
	children []Template
}

func (f *fakeNode) Subtemplates() []Template { return f.children }

func (f *fakeNode) RequiresSuspension(Scope) bool { return false }

func (f *fakeNode) CompileStep(ctx context.Context, seq *Sequencer, scope Scope, block *Block) error {
	for i := len(f.children) - 1; i >= 0; i-- {
		seq.PushOn(block, f.children[i], scope)
	}
	return nil
}

func TestValidateAcyclic(t *testing.T) {
	t.Run("tree passes", func(t *testing.T) {
		leaf := &fakeNode{}
		root := &fakeNode{children: []Template{leaf, &fakeNode{children: []Template{leaf}}}}
		assert.NoError(t, validateAcyclic(root))
	})

	t.Run("shared subtree passes", func(t *testing.T) {
		// A diamond is legal: the same value appears twice without being
		// reachable from itself.
		shared := &fakeNode{}
		root := &fakeNode{children: []Template{shared, shared}}
		assert.NoError(t, validateAcyclic(root))
	})

	t.Run("self reference fails", func(t *testing.T) {
		n := &fakeNode{}
		n.children = []Template{n}
		assert.ErrorIs(t, validateAcyclic(n), ErrMalformedTemplate)
	})

	t.Run("indirect cycle fails", func(t *testing.T) {
		a := &fakeNode{}
		b := &fakeNode{children: []Template{a}}
		a.children = []Template{b}
		assert.ErrorIs(t, validateAcyclic(a), ErrMalformedTemplate)
	})
}

func TestPushRejectsCyclicTemplate(t *testing.T) {
	n := &fakeNode{}
	n.children = []Template{n}

	s := New()
	err := s.Push(n, Scope{})
	require.ErrorIs(t, err, ErrMalformedTemplate)

	// The failed state latches.
	_, err = s.Build(context.Background())
	assert.ErrorIs(t, err, ErrMalformedTemplate)
	err = s.Push(&fakeNode{}, Scope{})
	assert.ErrorIs(t, err, ErrMalformedTemplate)
}

func TestBlockWorkStackLIFO(t *testing.T) {
	s := New()
	b := s.MainBlock()

	first := &fakeNode{}
	second := &fakeNode{}
	b.push(WorkItem{Template: first})
	b.push(WorkItem{Template: second})

	item, ok := b.pop()
	require.True(t, ok)
	assert.Same(t, second, item.Template)
	item, ok = b.pop()
	require.True(t, ok)
	assert.Same(t, first, item.Template)
	_, ok = b.pop()
	assert.False(t, ok)
}
