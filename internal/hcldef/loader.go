// Package hcldef is the declarative front-end of the compiler: it loads
// `.hcl` pulse definition files and produces the collaborator inputs a
// compilation needs — the template tree, the condition mapping, the
// parameter mapping, and the waveform catalog.
package hcldef

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/pulselab/pulsec/internal/ctxlog"
	"github.com/pulselab/pulsec/internal/param"
	"github.com/pulselab/pulsec/internal/sequencer"
	"github.com/pulselab/pulsec/internal/template"
	"github.com/pulselab/pulsec/internal/waveform"
)

// Definition is everything a set of pulse definition files declares.
type Definition struct {
	Templates  map[string]sequencer.Template
	Conditions map[string]sequencer.Condition
	Parameters param.Map
	Waveforms  *waveform.Registry
}

// Scope returns the compilation scope the definition declares.
func (d *Definition) Scope() sequencer.Scope {
	return sequencer.Scope{Parameters: d.Parameters, Conditions: d.Conditions}
}

// Template returns the named template tree.
func (d *Definition) Template(name string) (sequencer.Template, bool) {
	t, ok := d.Templates[name]
	return t, ok
}

// Loader parses pulse definition files.
type Loader struct{}

// NewLoader creates a new pulse definition loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load discovers `.hcl` files under the given paths (files or directories),
// parses them all into a single Definition, and validates cross-references.
func (l *Loader) Load(ctx context.Context, paths ...string) (*Definition, error) {
	logger := ctxlog.FromContext(ctx)

	files, err := l.findDefinitionFiles(paths)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered definition files.", "count", len(files))

	def := newDefinition()
	parser := hclparse.NewParser()
	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse %s: %w", file, diags)
		}
		if err := l.decodeFile(ctx, def, hclFile.Body); err != nil {
			return nil, fmt.Errorf("%s: %w", file, err)
		}
	}

	if err := l.validate(def); err != nil {
		return nil, err
	}
	logger.Debug("Definition loading complete.",
		"templates", len(def.Templates),
		"conditions", len(def.Conditions),
		"parameters", len(def.Parameters))
	return def, nil
}

// Parse decodes a single in-memory definition, for callers that already hold
// the source (tests, editors).
func (l *Loader) Parse(ctx context.Context, filename string, src []byte) (*Definition, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse %s: %w", filename, diags)
	}

	def := newDefinition()
	if err := l.decodeFile(ctx, def, hclFile.Body); err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	if err := l.validate(def); err != nil {
		return nil, err
	}
	return def, nil
}

func newDefinition() *Definition {
	return &Definition{
		Templates:  make(map[string]sequencer.Template),
		Conditions: make(map[string]sequencer.Condition),
		Parameters: param.Map{},
		Waveforms:  waveform.NewRegistry(),
	}
}

// findDefinitionFiles walks all given paths and returns a flat, deduplicated
// list of `.hcl` files.
func (l *Loader) findDefinitionFiles(paths []string) ([]string, error) {
	var allFiles []string
	seen := make(map[string]struct{})

	add := func(p string) {
		if _, wasSeen := seen[p]; !wasSeen {
			allFiles = append(allFiles, p)
			seen[p] = struct{}{}
		}
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("error accessing path %s: %w", path, err)
		}

		if !info.IsDir() {
			add(path)
			continue
		}
		err = filepath.Walk(path, func(p string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if !info.IsDir() && filepath.Ext(p) == ".hcl" {
				add(p)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return allFiles, nil
}

// validate checks cross-references once all files are merged: every pulse
// must play a declared waveform and every loop/branch must name a declared
// condition. The sequencer defends against the latter too, but catching it
// at load time points at the definition instead of the compilation.
func (l *Loader) validate(def *Definition) error {
	var visit func(owner string, t sequencer.Template) error
	visit = func(owner string, t sequencer.Template) error {
		switch n := t.(type) {
		case *template.Atomic:
			if !def.Waveforms.Defined(n.WaveformName()) {
				return fmt.Errorf("template %q plays undeclared waveform %q", owner, n.WaveformName())
			}
		case *template.Loop:
			if _, ok := def.Conditions[n.ConditionID()]; !ok {
				return fmt.Errorf("template %q loops on undeclared condition %q", owner, n.ConditionID())
			}
		case *template.Branch:
			if _, ok := def.Conditions[n.ConditionID()]; !ok {
				return fmt.Errorf("template %q branches on undeclared condition %q", owner, n.ConditionID())
			}
		}
		if c, ok := t.(sequencer.Container); ok {
			for _, sub := range c.Subtemplates() {
				if err := visit(owner, sub); err != nil {
					return err
				}
			}
		}
		return nil
	}

	for name, t := range def.Templates {
		if err := visit(name, t); err != nil {
			return err
		}
	}
	return nil
}

// attrRange is a small helper for error messages pointing at source.
func attrRange(attr *hcl.Attribute) string {
	return attr.Range.String()
}
