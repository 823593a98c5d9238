package exec

import (
	mapset "github.com/deckarep/golang-set/v2"

	"github.com/csql-dev/csql/schema"
	"github.com/csql-dev/csql/tuple"
)

// DuplicateElimination streams distinct tuples: only a tuple whose
// canonical textual form (spec.md section 4.7) has not already been seen
// is emitted. The seen-set holds those canonical strings in the same
// mapset.Set[string] the rest of the retrieval pack uses for
// plan-equivalence tracking.
type DuplicateElimination struct {
	child   Operator
	mapping *schema.Mapping
	seen    mapset.Set[string]
}

func NewDuplicateElimination(child Operator) *DuplicateElimination {
	return &DuplicateElimination{
		child:   child,
		mapping: child.Mapping(),
		seen:    mapset.NewSet[string](),
	}
}

func (d *DuplicateElimination) Mapping() *schema.Mapping { return d.mapping }

func (d *DuplicateElimination) Next() (*tuple.Tuple, error) {
	for {
		t, err := d.child.Next()
		if err != nil || t == nil {
			return nil, err
		}
		key := t.Canonical()
		if d.seen.Contains(key) {
			continue
		}
		d.seen.Add(key)
		return t, nil
	}
}

// Reset clears the seen-set and cascades to the child (spec.md section 4.7).
func (d *DuplicateElimination) Reset() error {
	d.seen = mapset.NewSet[string]()
	return d.child.Reset()
}

func (d *DuplicateElimination) Close() error { return d.child.Close() }
