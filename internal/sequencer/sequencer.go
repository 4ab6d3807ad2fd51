// Package sequencer drives the translation of pulse template trees into a
// linked graph of instruction blocks. It is a resumable, stack-based
// compiler: each block under construction carries its own LIFO stack of
// pending work, and a build call runs until every stack is empty (the graph
// freezes) or every remaining item is undecidable right now (the build
// suspends and a later call resumes it).
package sequencer

import (
	"context"
	"fmt"

	"github.com/pulselab/pulsec/internal/ctxlog"
	"github.com/pulselab/pulsec/internal/program"
)

// Sequencer owns the set of in-progress blocks and the scheduling logic that
// drains their work stacks. It is single-threaded and cooperative; the only
// way to abandon a compilation is to discard the instance.
type Sequencer struct {
	blocks []*Block // creation order; blocks[0] is main

	frozen *program.Program // cached on completion, makes Build idempotent
	failed error            // latched first fatal error
}

// New returns a sequencer with an empty main block.
func New() *Sequencer {
	s := &Sequencer{}
	s.newBlock()
	return s
}

// newBlock appends a fresh block to the registry and returns it.
func (s *Sequencer) newBlock() *Block {
	b := &Block{handle: len(s.blocks)}
	s.blocks = append(s.blocks, b)
	return b
}

// MainBlock returns the designated entry block.
func (s *Sequencer) MainBlock() *Block { return s.blocks[0] }

// NewBlock creates a child block with the given continuation (which may be
// nil). Child blocks are visited after their creators, in creation order.
func (s *Sequencer) NewBlock(continuation *Block) *Block {
	b := s.newBlock()
	b.continuation = continuation
	return b
}

// Push schedules a template for compilation into the main block. The
// template tree is checked for structural cycles first; a cyclic tree is
// ErrMalformedTemplate and latches the failed state.
func (s *Sequencer) Push(t Template, scope Scope) error {
	if s.failed != nil {
		return s.failed
	}
	if err := validateAcyclic(t); err != nil {
		s.failed = err
		return err
	}
	s.PushOn(s.MainBlock(), t, scope)
	return nil
}

// PushOn schedules a template onto a specific block's work stack. Templates
// and conditions use it during compile steps; subtrees reached this way were
// already validated by the enclosing Push.
func (s *Sequencer) PushOn(b *Block, t Template, scope Scope) {
	b.push(WorkItem{Template: t, Scope: scope})
}

// HasFinished reports whether every block's work stack is empty.
func (s *Sequencer) HasFinished() bool {
	for _, b := range s.blocks {
		if len(b.stack) > 0 {
			return false
		}
	}
	return true
}

// Build drains work stacks until the graph is complete or no remaining item
// is decidable. Blocks are visited in creation order, main block first, and
// within a block strictly LIFO; an item whose template requires suspension
// is left on its stack untouched.
//
// On full completion Build freezes the graph and returns it; subsequent
// calls return the same program without further mutation. On suspension
// Build returns (nil, nil) and HasFinished reports false; a later call
// re-attempts every suspended item's decidability check first. A fatal error
// latches the sequencer and is returned from every later call.
func (s *Sequencer) Build(ctx context.Context) (*program.Program, error) {
	logger := ctxlog.FromContext(ctx)

	if s.failed != nil {
		return nil, s.failed
	}
	if s.frozen != nil {
		return s.frozen, nil
	}

	for {
		progress := false

		// The slice grows while we iterate: compile steps create child
		// blocks, which are picked up later in the same pass.
		for i := 0; i < len(s.blocks); i++ {
			b := s.blocks[i]
			for {
				item, ok := b.top()
				if !ok {
					break
				}
				if item.Template.RequiresSuspension(item.Scope) {
					logger.Debug("Work item requires suspension, trying other blocks.", "block", b.handle)
					break
				}
				b.pop()
				if err := item.Template.CompileStep(ctx, s, item.Scope, b); err != nil {
					s.failed = fmt.Errorf("compile step failed in block %d: %w", b.handle, err)
					logger.Error("Compilation failed.", "block", b.handle, "error", err)
					return nil, s.failed
				}
				progress = true
			}
		}

		if s.HasFinished() {
			break
		}
		if !progress {
			logger.Debug("All pending work suspended, returning control to caller.")
			return nil, nil
		}
	}

	s.frozen = s.freeze()
	logger.Debug("Compilation complete.", "blocks", len(s.blocks))
	return s.frozen, nil
}

// freeze converts every block into its immutable snapshot, building the
// handle remap table first so cross-block jump targets relink consistently.
func (s *Sequencer) freeze() *program.Program {
	remap := make(map[int]program.BlockID, len(s.blocks))
	for i, b := range s.blocks {
		remap[b.handle] = program.BlockID(i)
	}

	frozen := make([]*program.Block, len(s.blocks))
	for i, b := range s.blocks {
		name := "main"
		if i > 0 {
			name = fmt.Sprintf("block_%d", i)
		}
		frozen[i] = b.freeze(program.BlockID(i), name, remap)
	}
	return program.New(frozen)
}
