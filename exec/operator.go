// Package exec implements the pull-based physical operators of spec.md
// section 4: Scan, Select, Join, Projection, Sort, DuplicateElimination,
// Sum, and LiteralAppend. Every operator is single-threaded, owns its
// children, and exposes Next/Reset/Close per the Operator interface below.
package exec

import (
	"github.com/csql-dev/csql/schema"
	"github.com/csql-dev/csql/tuple"
)

// Operator is the pull interface every physical operator implements.
// Next returns (nil, nil) at end of stream — not an error — matching
// spec.md section 4.1's "next() -> Tuple | end-of-stream".
type Operator interface {
	Next() (*tuple.Tuple, error)
	Reset() error
	// Mapping is the schema mapping exactly describing the tuples this
	// operator produces (spec.md section 4.9 invariant).
	Mapping() *schema.Mapping
	// Close releases any resource the operator owns (Scan's file handle)
	// and cascades to children; safe to call more than once.
	Close() error
}
