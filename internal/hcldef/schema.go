package hcldef

import "github.com/hashicorp/hcl/v2"

// rootSchema describes the top-level blocks of a pulse definition file.
var rootSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "waveform", LabelNames: []string{"name"}},
		{Type: "condition", LabelNames: []string{"id"}},
		{Type: "parameters"},
		{Type: "template", LabelNames: []string{"name"}},
	},
}

// conditionSchema describes the body of a `condition` block.
var conditionSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "source", Required: true},
		{Name: "limit"},
		{Name: "trigger"},
	},
}

// nodeSchema describes a template body: any ordered mix of the four node
// block types. Decoding with Content preserves source order, which is what
// gives sequences their meaning.
var nodeSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "pulse", LabelNames: []string{"waveform"}},
		{Type: "sequence"},
		{Type: "loop", LabelNames: []string{"condition"}},
		{Type: "branch", LabelNames: []string{"condition"}},
	},
}

// pulseSchema describes the body of a `pulse` block.
var pulseSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "parameters"},
	},
}

// branchSchema describes the body of a `branch` block.
var branchSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "positive"},
		{Type: "negative"},
	},
}
