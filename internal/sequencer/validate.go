package sequencer

import "fmt"

// validateAcyclic rejects template trees that contain themselves. Template
// values are freely shared between siblings (a diamond is fine); what cannot
// be compiled is a composite reachable from itself, which would unroll
// forever.
//
// Classic depth-first search with two sets keyed on node identity:
// permanent nodes are fully visited and known safe, temporary nodes are in
// the current recursion stack.
func validateAcyclic(root Template) error {
	permanent := make(map[Template]bool)
	temporary := make(map[Template]bool)

	var visit func(t Template) error
	visit = func(t Template) error {
		if permanent[t] {
			return nil
		}
		if temporary[t] {
			return fmt.Errorf("%w: template contains itself", ErrMalformedTemplate)
		}

		temporary[t] = true
		if c, ok := t.(Container); ok {
			for _, sub := range c.Subtemplates() {
				if err := visit(sub); err != nil {
					return err
				}
			}
		}
		delete(temporary, t)
		permanent[t] = true

		return nil
	}

	return visit(root)
}
