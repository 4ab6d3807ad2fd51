// Package param supplies parameter values to the compiler. A parameter is an
// opaque named value provider: the compiler only ever looks one up by name,
// asks whether it is resolvable yet, and reads its value. Values are
// represented as cty.Value so the HCL front-end and the compiler share a
// single dynamic value model.
package param

import (
	"errors"
	"fmt"

	"github.com/zclconf/go-cty/cty"
)

// ErrNotFound reports a parameter name absent from the mapping.
var ErrNotFound = errors.New("parameter not found")

// ErrUnresolved reports a read of a parameter whose value is not available yet.
var ErrUnresolved = errors.New("parameter not yet resolved")

// Provider yields a single parameter value. Resolved reports whether the
// value can currently be read; an unresolved provider causes the compiler to
// suspend rather than fail.
type Provider interface {
	Resolved() bool
	Value() (cty.Value, error)
}

// Map is a parameter mapping keyed by parameter name.
type Map map[string]Provider

// Lookup returns the provider registered under name.
func (m Map) Lookup(name string) (Provider, bool) {
	p, ok := m[name]
	return p, ok
}

// Resolve reads the value of the named parameter, distinguishing a missing
// name from a provider that cannot be read yet.
func (m Map) Resolve(name string) (cty.Value, error) {
	p, ok := m[name]
	if !ok {
		return cty.NilVal, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return p.Value()
}

// Constant is a provider holding an immediately available value.
type Constant struct {
	val cty.Value
}

// NewConstant returns a provider that always resolves to val.
func NewConstant(val cty.Value) *Constant {
	return &Constant{val: val}
}

// Resolved always reports true for a constant.
func (c *Constant) Resolved() bool { return true }

// Value returns the constant value.
func (c *Constant) Value() (cty.Value, error) { return c.val, nil }

// Deferred is a provider whose value arrives after construction, typically
// between two build calls on a suspended compilation.
type Deferred struct {
	val cty.Value
	set bool
}

// NewDeferred returns an unresolved provider. Set supplies the value later.
func NewDeferred() *Deferred {
	return &Deferred{}
}

// Set supplies the value, marking the provider resolved.
func (d *Deferred) Set(val cty.Value) {
	d.val = val
	d.set = true
}

// Resolved reports whether Set has been called.
func (d *Deferred) Resolved() bool { return d.set }

// Value returns the supplied value, or ErrUnresolved before Set.
func (d *Deferred) Value() (cty.Value, error) {
	if !d.set {
		return cty.NilVal, ErrUnresolved
	}
	return d.val, nil
}
