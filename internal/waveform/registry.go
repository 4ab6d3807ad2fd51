package waveform

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/zclconf/go-cty/cty"

	"github.com/pulselab/pulsec/internal/ctxlog"
)

// ErrUnknown reports a materialization request for an undeclared waveform.
var ErrUnknown = errors.New("unknown waveform")

// ErrDuplicate reports a second declaration of the same waveform name.
var ErrDuplicate = errors.New("duplicate waveform")

// Definition is a declared waveform shape: a name plus free-form attributes
// describing it to whatever eventually produces the samples.
type Definition struct {
	Name       string
	Attributes map[string]cty.Value
}

// Registry is an in-memory Materializer over a set of declared waveforms.
// Materializing the same payload twice yields the same reference, so a pulse
// repeated inside an unrolled loop shares one waveform.
type Registry struct {
	defs map[string]Definition
	refs map[string]Ref
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		defs: make(map[string]Definition),
		refs: make(map[string]Ref),
	}
}

// Define registers a waveform declaration. Redefining a name is an error.
func (r *Registry) Define(def Definition) error {
	if _, ok := r.defs[def.Name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicate, def.Name)
	}
	r.defs[def.Name] = def
	return nil
}

// Defined reports whether name has been declared.
func (r *Registry) Defined(name string) bool {
	_, ok := r.defs[name]
	return ok
}

// Materialize implements Materializer. The reference for a given payload is
// minted once and reused on identical requests.
func (r *Registry) Materialize(ctx context.Context, payload Payload) (Ref, error) {
	logger := ctxlog.FromContext(ctx)

	if _, ok := r.defs[payload.Name]; !ok {
		return Ref{}, fmt.Errorf("%w: %q", ErrUnknown, payload.Name)
	}

	key := fingerprint(payload)
	if ref, ok := r.refs[key]; ok {
		return ref, nil
	}

	ref := Ref{ID: uuid.New(), Name: payload.Name}
	r.refs[key] = ref
	logger.Debug("Materialized waveform.", "waveform", payload.Name, "ref", ref.ID)
	return ref, nil
}

// fingerprint builds a deterministic key for a payload so identical requests
// collapse onto one reference.
func fingerprint(payload Payload) string {
	names := make([]string, 0, len(payload.Arguments))
	for name := range payload.Arguments {
		names = append(names, name)
	}
	sort.Strings(names)

	var sb strings.Builder
	sb.WriteString(payload.Name)
	for _, name := range names {
		sb.WriteByte('|')
		sb.WriteString(name)
		sb.WriteByte('=')
		sb.WriteString(payload.Arguments[name].GoString())
	}
	return sb.String()
}
