package filter

import "errors"

// Filter error constants
var (
	// ErrUnrenderable is returned when a graph cannot be rendered into a
	// filter string, typically because external mutation left a link
	// pointing at a node that no longer exists.
	ErrUnrenderable = errors.New("expression graph is not renderable")

	// ErrNothingToGenerate is returned when a generator is constructed over
	// an entity with no filterable properties and no usable built-in
	// functions.
	ErrNothingToGenerate = errors.New("no filterable properties and no filter functions available")
)
