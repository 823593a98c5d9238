package exec

import (
	"sort"

	"github.com/csql-dev/csql/diag"
	"github.com/csql-dev/csql/schema"
	"github.com/csql-dev/csql/tuple"
	"github.com/csql-dev/csql/value"
)

// SortKey is one already-resolved ORDER BY key: a field index into the
// child's tuples plus a direction. The planner is responsible for
// rewriting a non-column ORDER BY expression (e.g. a bare SUM(...)) into
// a resolvable column reference before it ever reaches Sort (spec.md
// section 4.6).
type SortKey struct {
	Index int
	Desc  bool
}

// Sort is blocking: it buffers every child tuple on the first Next, total
// orders them by Keys (lexicographic in key order, integer comparison),
// and streams from that buffer thereafter. Reset rewinds the cursor
// without re-reading the child (spec.md section 4.6).
type Sort struct {
	child   Operator
	keys    []SortKey
	mapping *schema.Mapping

	buffered bool
	rows     []*tuple.Tuple
	cursor   int
}

func NewSort(child Operator, keys []SortKey) (*Sort, error) {
	arity := child.Mapping().Len()
	for _, k := range keys {
		if k.Index < 0 || k.Index >= arity {
			return nil, diag.Errorf(diag.Plan, "sort", "order-by key index %d out of range for arity %d", k.Index, arity)
		}
	}
	return &Sort{child: child, keys: keys, mapping: child.Mapping()}, nil
}

func (s *Sort) Mapping() *schema.Mapping { return s.mapping }

func (s *Sort) fill() error {
	for {
		t, err := s.child.Next()
		if err != nil {
			return err
		}
		if t == nil {
			break
		}
		s.rows = append(s.rows, t)
	}
	s.buffered = true
	return nil
}

func (s *Sort) Next() (*tuple.Tuple, error) {
	if !s.buffered {
		if err := s.fill(); err != nil {
			return nil, err
		}
		if err := s.sortRows(); err != nil {
			return nil, err
		}
	}
	if s.cursor >= len(s.rows) {
		return nil, nil
	}
	t := s.rows[s.cursor]
	s.cursor++
	return t, nil
}

func (s *Sort) sortRows() error {
	var sortErr error
	sort.SliceStable(s.rows, func(i, j int) bool {
		if sortErr != nil {
			return false
		}
		less, err := s.less(s.rows[i], s.rows[j])
		if err != nil {
			sortErr = err
			return false
		}
		return less
	})
	return sortErr
}

func (s *Sort) less(a, b *tuple.Tuple) (bool, error) {
	for _, k := range s.keys {
		av, bv := a.Fields[k.Index], b.Fields[k.Index]
		cmp, ok := value.Compare(av, bv)
		if !ok {
			return false, diag.Errorf(diag.Type, "sort", "non-integer value at sort key index %d", k.Index)
		}
		if k.Desc {
			cmp = -cmp
		}
		if cmp != 0 {
			return cmp < 0, nil
		}
	}
	return false, nil
}

// Reset rewinds the cursor over the already-materialized buffer; it never
// re-runs the child or re-sorts.
func (s *Sort) Reset() error {
	s.cursor = 0
	return nil
}

func (s *Sort) Close() error { return s.child.Close() }
