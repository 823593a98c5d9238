package exec

import (
	"github.com/csql-dev/csql/diag"
	"github.com/csql-dev/csql/schema"
	"github.com/csql-dev/csql/tuple"
	"github.com/csql-dev/csql/value"
)

// Projection rearranges/prunes a child's fields per an ordered list of
// qualified column names (spec.md section 4.5). Duplicate names are
// silently deduplicated, first occurrence wins; if the deduplicated list's
// length already equals the child's arity and the projection is a pure
// identity, the input tuple passes through unchanged.
type Projection struct {
	child     Operator
	indices   []int
	mapping   *schema.Mapping
	identity  bool
}

// NewProjection resolves each name in cols against child's mapping (a plan
// error if any is unresolvable) and builds the 0..n-1 output mapping.
func NewProjection(child Operator, cols []string) (*Projection, error) {
	seen := make(map[string]bool, len(cols))
	var deduped []string
	for _, c := range cols {
		if seen[c] {
			continue
		}
		seen[c] = true
		deduped = append(deduped, c)
	}

	indices := make([]int, len(deduped))
	out := schema.New()
	for i, name := range deduped {
		idx, ok := child.Mapping().Lookup(name)
		if !ok {
			return nil, diag.Errorf(diag.Plan, "project", "column %s not found in current schema", name)
		}
		indices[i] = idx
		out = out.WithColumn(name, i)
	}

	identity := len(indices) == child.Mapping().Len()
	if identity {
		for i, idx := range indices {
			if idx != i {
				identity = false
				break
			}
		}
	}

	return &Projection{child: child, indices: indices, mapping: out, identity: identity}, nil
}

func (p *Projection) Mapping() *schema.Mapping { return p.mapping }

func (p *Projection) Next() (*tuple.Tuple, error) {
	t, err := p.child.Next()
	if err != nil || t == nil {
		return nil, err
	}
	if p.identity {
		return t, nil
	}
	fields := make([]value.Value, len(p.indices))
	for i, idx := range p.indices {
		fields[i] = t.Fields[idx]
	}
	return &tuple.Tuple{Fields: fields}, nil
}

func (p *Projection) Reset() error { return p.child.Reset() }
func (p *Projection) Close() error { return p.child.Close() }
