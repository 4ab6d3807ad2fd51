// Package condition implements the two condition variants the compiler
// understands. A Software condition is decided by an in-process callback and
// unrolled at compile time; a Hardware condition is decided by a device
// trigger at run time and lowers to conditional jump instructions.
package condition

// Tristate is the result of evaluating a software condition callback.
// Undetermined means the outcome cannot be decided right now (a live
// measurement is missing, say); it suspends the enclosing compilation
// instead of failing it.
type Tristate int

const (
	Undetermined Tristate = iota
	False
	True
)

// String returns the lower-case name of the tristate value.
func (t Tristate) String() string {
	switch t {
	case True:
		return "true"
	case False:
		return "false"
	default:
		return "undetermined"
	}
}

// Callback decides one iteration of a software condition. It receives the
// current non-negative iteration index and may return Undetermined to
// signal that the outcome is not yet known.
type Callback func(iteration int) Tristate
