package layout

import "errors"

// Sentinel errors for Graph construction. Malformed input is surfaced
// immediately and the core aborts without mutating anything (spec.md §7).
var (
	// ErrNonPositiveMinlen indicates an edge declared minlen < 1.
	ErrNonPositiveMinlen = errors.New("layout: edge minlen must be >= 1")

	// ErrNegativeWeight indicates an edge declared a negative weight.
	ErrNegativeWeight = errors.New("layout: edge weight must be >= 0")

	// ErrNegativeDimension indicates a node with negative width/height.
	ErrNegativeDimension = errors.New("layout: node width/height must be >= 0")

	// ErrMissingReference indicates an edge referencing an unknown host node.
	ErrMissingReference = errors.New("layout: edge references an unknown node")
)
