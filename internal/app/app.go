// Package app wires the compiler together: it loads pulse definitions,
// drives the sequencer, and writes the compiled program listing.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/pulselab/pulsec/internal/ctxlog"
	"github.com/pulselab/pulsec/internal/hcldef"
	"github.com/pulselab/pulsec/internal/sequencer"
)

// ErrSuspended reports a compilation that paused waiting for external
// information. It is the expected, recoverable outcome of a build over
// undecidable conditions, distinct from a failure.
var ErrSuspended = errors.New("compilation suspended awaiting external information")

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	loader *hcldef.Loader
}

// New is the constructor for the main application, with an isolated logger
// writing to errW so the compiled program on outW stays clean.
func New(outW io.Writer, cfg *Config) *App {
	return &App{
		outW:   outW,
		logger: newLogger(cfg.LogLevel, cfg.LogFormat, os.Stderr),
		loader: hcldef.NewLoader(),
	}
}

// Run loads the configured definitions, compiles the requested template, and
// writes the program listing. A suspended compilation returns ErrSuspended:
// definition files declare only decidable conditions, so hitting it means a
// definition produced an undecidable build, which the caller must resolve.
func (a *App) Run(ctx context.Context, cfg *Config) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App run started.", "paths", cfg.DefinitionPaths, "template", cfg.TemplateName)

	def, err := a.loader.Load(ctx, cfg.DefinitionPaths...)
	if err != nil {
		return fmt.Errorf("failed to load definitions: %w", err)
	}

	root, ok := def.Template(cfg.TemplateName)
	if !ok {
		return fmt.Errorf("template %q is not declared in the loaded definitions", cfg.TemplateName)
	}

	seq := sequencer.New()
	if err := seq.Push(root, def.Scope()); err != nil {
		return fmt.Errorf("failed to schedule template: %w", err)
	}

	prog, err := seq.Build(ctx)
	if err != nil {
		return fmt.Errorf("compilation failed: %w", err)
	}
	if prog == nil {
		return ErrSuspended
	}

	a.logger.Info("Compilation finished.", "blocks", len(prog.Blocks()))
	fmt.Fprint(a.outW, prog.Render())
	return nil
}
