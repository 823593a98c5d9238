// Package tuple defines the row representation threaded through every
// operator in exec.
package tuple

import (
	"strings"

	"github.com/csql-dev/csql/value"
)

// Tuple is an ordered sequence of field values. Arity is fixed by the
// producing operator and is invariant along any single operator chain.
type Tuple struct {
	Fields []value.Value
}

func New(fields ...value.Value) *Tuple {
	return &Tuple{Fields: fields}
}

func (t *Tuple) Arity() int { return len(t.Fields) }

// Concat builds the left-then-right concatenation used by Join; the
// result's field i<|left| is left.Fields[i], otherwise right.Fields[i-|left|].
func Concat(left, right *Tuple) *Tuple {
	out := make([]value.Value, 0, len(left.Fields)+len(right.Fields))
	out = append(out, left.Fields...)
	out = append(out, right.Fields...)
	return &Tuple{Fields: out}
}

// Canonical renders the fixed-delimiter textual form DuplicateElimination
// hashes into its seen-set (spec.md 4.7). The delimiter is not comma (a
// field's own text can legitimately contain one once text fields exist)
// so it can never be confused with a field boundary.
const canonicalDelim = "\x1f"

func (t *Tuple) Canonical() string {
	parts := make([]string, len(t.Fields))
	for i, f := range t.Fields {
		parts[i] = f.Text()
	}
	return strings.Join(parts, canonicalDelim)
}
