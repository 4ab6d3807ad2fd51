package sequencer

import "errors"

// Structural errors abort a compilation and latch the sequencer into a
// non-resumable failed state. Suspension is not among them: an undetermined
// condition or an unresolved parameter pauses the build without error.
var (
	// ErrUnknownCondition reports a loop or branch referencing a condition
	// identifier absent from the supplied condition mapping.
	ErrUnknownCondition = errors.New("unknown condition")

	// ErrMalformedTemplate reports a structurally invalid template, such as
	// a cyclic composite.
	ErrMalformedTemplate = errors.New("malformed template")

	// ErrFailed reports a build attempt on a sequencer already latched into
	// the failed state by an earlier fatal error.
	ErrFailed = errors.New("sequencer is in a failed state")
)
