package hcldef

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"

	"github.com/pulselab/pulsec/internal/condition"
	"github.com/pulselab/pulsec/internal/ctxlog"
	"github.com/pulselab/pulsec/internal/param"
	"github.com/pulselab/pulsec/internal/sequencer"
	"github.com/pulselab/pulsec/internal/template"
	"github.com/pulselab/pulsec/internal/waveform"
)

// decodeFile merges one file's top-level blocks into the definition.
func (l *Loader) decodeFile(ctx context.Context, def *Definition, body hcl.Body) error {
	logger := ctxlog.FromContext(ctx)

	content, diags := body.Content(rootSchema)
	if diags.HasErrors() {
		return fmt.Errorf("failed to decode definition: %w", diags)
	}

	for _, block := range content.Blocks {
		var err error
		switch block.Type {
		case "waveform":
			err = l.decodeWaveform(def, block)
		case "condition":
			err = l.decodeCondition(def, block)
		case "parameters":
			err = l.decodeParameters(def, block)
		case "template":
			err = l.decodeTemplate(def, block)
		}
		if err != nil {
			return err
		}
	}

	logger.Debug("Decoded definition file body.", "blocks", len(content.Blocks))
	return nil
}

// decodeWaveform registers a `waveform "name" { ... }` block. Its body is
// free-form: every attribute becomes part of the declared shape.
func (l *Loader) decodeWaveform(def *Definition, block *hcl.Block) error {
	name := block.Labels[0]

	attrs, diags := block.Body.JustAttributes()
	if diags.HasErrors() {
		return fmt.Errorf("waveform %q: %w", name, diags)
	}

	attributes := make(map[string]cty.Value, len(attrs))
	for attrName, attr := range attrs {
		v, err := literalValue(attr)
		if err != nil {
			return fmt.Errorf("waveform %q: %w", name, err)
		}
		attributes[attrName] = v
	}

	return def.Waveforms.Define(waveform.Definition{Name: name, Attributes: attributes})
}

// decodeCondition registers a `condition "id" { ... }` block. Two sources
// exist: "counter" (software, true for the first `limit` iterations) and
// "hardware" (deferred to the named trigger).
func (l *Loader) decodeCondition(def *Definition, block *hcl.Block) error {
	id := block.Labels[0]
	if _, ok := def.Conditions[id]; ok {
		return fmt.Errorf("condition %q declared twice", id)
	}

	content, diags := block.Body.Content(conditionSchema)
	if diags.HasErrors() {
		return fmt.Errorf("condition %q: %w", id, diags)
	}

	source, err := stringAttr(content.Attributes["source"])
	if err != nil {
		return fmt.Errorf("condition %q: %w", id, err)
	}

	switch source {
	case "counter":
		attr, ok := content.Attributes["limit"]
		if !ok {
			return fmt.Errorf("condition %q: counter conditions require a limit", id)
		}
		v, err := literalValue(attr)
		if err != nil {
			return fmt.Errorf("condition %q: %w", id, err)
		}
		var limit int
		if err := gocty.FromCtyValue(v, &limit); err != nil {
			return fmt.Errorf("condition %q: limit: %w", id, err)
		}
		def.Conditions[id] = condition.NewSoftware(func(i int) condition.Tristate {
			if i < limit {
				return condition.True
			}
			return condition.False
		})
	case "hardware":
		attr, ok := content.Attributes["trigger"]
		if !ok {
			return fmt.Errorf("condition %q: hardware conditions require a trigger", id)
		}
		trigger, err := stringAttr(attr)
		if err != nil {
			return fmt.Errorf("condition %q: %w", id, err)
		}
		def.Conditions[id] = condition.NewHardware(trigger)
	default:
		return fmt.Errorf("condition %q: unknown source %q (want \"counter\" or \"hardware\")", id, source)
	}
	return nil
}

// decodeParameters merges a `parameters { ... }` block into the parameter
// mapping as constant providers.
func (l *Loader) decodeParameters(def *Definition, block *hcl.Block) error {
	attrs, diags := block.Body.JustAttributes()
	if diags.HasErrors() {
		return fmt.Errorf("parameters: %w", diags)
	}

	for name, attr := range attrs {
		if _, ok := def.Parameters[name]; ok {
			return fmt.Errorf("parameter %q declared twice (second declaration at %s)", name, attrRange(attr))
		}
		v, err := literalValue(attr)
		if err != nil {
			return fmt.Errorf("parameter %q: %w", name, err)
		}
		def.Parameters[name] = param.NewConstant(v)
	}
	return nil
}

// decodeTemplate registers a `template "name" { ... }` block. A body with
// several nodes is an implicit sequence.
func (l *Loader) decodeTemplate(def *Definition, block *hcl.Block) error {
	name := block.Labels[0]
	if _, ok := def.Templates[name]; ok {
		return fmt.Errorf("template %q declared twice", name)
	}

	node, err := l.decodeBody(def, block.Body)
	if err != nil {
		return fmt.Errorf("template %q: %w", name, err)
	}
	def.Templates[name] = node
	return nil
}

// decodeBody decodes a template body into a single node, wrapping multiple
// nodes in a sequence.
func (l *Loader) decodeBody(def *Definition, body hcl.Body) (sequencer.Template, error) {
	nodes, err := l.decodeNodes(def, body)
	if err != nil {
		return nil, err
	}
	if len(nodes) == 1 {
		return nodes[0], nil
	}
	return template.NewSequence(nodes...), nil
}

// decodeNodes decodes the ordered node blocks of a template body.
func (l *Loader) decodeNodes(def *Definition, body hcl.Body) ([]sequencer.Template, error) {
	content, diags := body.Content(nodeSchema)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode template body: %w", diags)
	}

	nodes := make([]sequencer.Template, 0, len(content.Blocks))
	for _, block := range content.Blocks {
		var (
			node sequencer.Template
			err  error
		)
		switch block.Type {
		case "pulse":
			node, err = l.decodePulse(def, block)
		case "sequence":
			var children []sequencer.Template
			children, err = l.decodeNodes(def, block.Body)
			if err == nil {
				node = template.NewSequence(children...)
			}
		case "loop":
			var bodyNode sequencer.Template
			bodyNode, err = l.decodeBody(def, block.Body)
			if err == nil {
				node = template.NewLoop(block.Labels[0], bodyNode)
			}
		case "branch":
			node, err = l.decodeBranch(def, block)
		}
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
	}
	return nodes, nil
}

// decodePulse decodes a `pulse "waveform" { ... }` leaf.
func (l *Loader) decodePulse(def *Definition, block *hcl.Block) (sequencer.Template, error) {
	waveformName := block.Labels[0]

	content, diags := block.Body.Content(pulseSchema)
	if diags.HasErrors() {
		return nil, fmt.Errorf("pulse %q: %w", waveformName, diags)
	}

	var paramNames []string
	if attr, ok := content.Attributes["parameters"]; ok {
		v, err := literalValue(attr)
		if err != nil {
			return nil, fmt.Errorf("pulse %q: %w", waveformName, err)
		}
		if err := gocty.FromCtyValue(v, &paramNames); err != nil {
			return nil, fmt.Errorf("pulse %q: parameters must be a list of names: %w", waveformName, err)
		}
	}

	return template.NewAtomic(waveformName, paramNames, def.Waveforms), nil
}

// decodeBranch decodes a `branch "condition" { positive {} negative {} }`
// node. Both arms are required; an empty arm is written as an empty block.
func (l *Loader) decodeBranch(def *Definition, block *hcl.Block) (sequencer.Template, error) {
	id := block.Labels[0]

	content, diags := block.Body.Content(branchSchema)
	if diags.HasErrors() {
		return nil, fmt.Errorf("branch %q: %w", id, diags)
	}

	var positive, negative sequencer.Template
	for _, arm := range content.Blocks {
		node, err := l.decodeBody(def, arm.Body)
		if err != nil {
			return nil, fmt.Errorf("branch %q %s: %w", id, arm.Type, err)
		}
		switch arm.Type {
		case "positive":
			if positive != nil {
				return nil, fmt.Errorf("branch %q: duplicate positive arm", id)
			}
			positive = node
		case "negative":
			if negative != nil {
				return nil, fmt.Errorf("branch %q: duplicate negative arm", id)
			}
			negative = node
		}
	}
	if positive == nil || negative == nil {
		return nil, fmt.Errorf("branch %q: both positive and negative arms are required", id)
	}

	return template.NewBranch(id, positive, negative), nil
}

// literalValue evaluates an attribute expression with no variables in scope;
// definition files are fully literal.
func literalValue(attr *hcl.Attribute) (cty.Value, error) {
	v, diags := attr.Expr.Value(nil)
	if diags.HasErrors() {
		return cty.NilVal, fmt.Errorf("%s: %w", attrRange(attr), diags)
	}
	return v, nil
}

// stringAttr evaluates an attribute that must be a literal string.
func stringAttr(attr *hcl.Attribute) (string, error) {
	v, err := literalValue(attr)
	if err != nil {
		return "", err
	}
	if v.Type() != cty.String {
		return "", fmt.Errorf("%s: expected a string", attrRange(attr))
	}
	return v.AsString(), nil
}
