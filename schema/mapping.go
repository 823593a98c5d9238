// Package schema implements the schema mapping: the immutable, per-operator
// contract from a fully qualified column name to a zero-based tuple index.
// Every rewrite in the planner (pushdown, join-tree construction, literal-SUM
// rewriting, projection pruning, ORDER BY over synthetic columns) produces a
// new Mapping rather than mutating one in place; getting this bookkeeping
// wrong in any single operator misaligns every downstream column reference,
// so Mapping is deliberately the only place that owns name -> index.
package schema

import "fmt"

// Mapping is immutable once built; WithColumn and Join return new values.
type Mapping struct {
	index map[string]int
	order []string // column names in index order, for deterministic iteration
}

func New() *Mapping {
	return &Mapping{index: make(map[string]int)}
}

// FromColumns builds {qualifier.Ci -> i} for i in 0..len(cols)-1, the shape
// Scan's local mapping always takes.
func FromColumns(qualifier string, cols []string) *Mapping {
	m := New()
	for i, c := range cols {
		m.set(qualifier+"."+c, i)
	}
	return m
}

func (m *Mapping) set(name string, idx int) {
	if _, ok := m.index[name]; !ok {
		m.order = append(m.order, name)
	}
	m.index[name] = idx
}

// Lookup resolves a fully qualified name. ok is false if the mapping has no
// such column — the caller raises a plan error.
func (m *Mapping) Lookup(qualified string) (int, bool) {
	idx, ok := m.index[qualified]
	return idx, ok
}

// Len reports the arity a tuple under this mapping must have: one past the
// largest index in use.
func (m *Mapping) Len() int {
	max := -1
	for _, idx := range m.index {
		if idx > max {
			max = idx
		}
	}
	return max + 1
}

func (m *Mapping) Columns() []string {
	out := make([]string, len(m.order))
	copy(out, m.order)
	return out
}

// Clone produces a detached copy safe for a caller to extend without
// mutating the receiver — Mapping itself is never mutated after it is
// attached to an operator, so every rewrite site clones first.
func (m *Mapping) Clone() *Mapping {
	out := New()
	for _, name := range m.order {
		out.set(name, m.index[name])
	}
	return out
}

// WithColumn returns a clone with one additional qualified name bound to
// idx. Used by the literal-SUM rewrite to add a synthetic column at the
// next free index (spec.md 4.8) and by Sum/Projection to build their
// output mappings.
func (m *Mapping) WithColumn(name string, idx int) *Mapping {
	out := m.Clone()
	out.set(name, idx)
	return out
}

// Join builds the combined mapping for a binary Join: left's names keep
// their indices, right's are shifted by leftArity.
func Join(left *Mapping, right *Mapping, leftArity int) *Mapping {
	out := left.Clone()
	for _, name := range right.order {
		out.set(name, right.index[name]+leftArity)
	}
	return out
}

// NextFreeIndex is the index a new column may safely occupy without
// colliding with any column already bound in m.
func (m *Mapping) NextFreeIndex() int {
	return m.Len()
}

func (m *Mapping) String() string {
	return fmt.Sprintf("%v", m.index)
}
