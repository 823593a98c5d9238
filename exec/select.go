package exec

import (
	"github.com/csql-dev/csql/expr"
	"github.com/csql-dev/csql/schema"
	"github.com/csql-dev/csql/sql"
	"github.com/csql-dev/csql/tuple"
)

// Select wraps a child and filters its output by a predicate (spec.md
// section 4.3). A nil predicate makes Select a pass-through, which the
// planner never needs but which keeps the operator safe to construct
// unconditionally.
type Select struct {
	child     Operator
	predicate sql.Expr
	mapping   *schema.Mapping
}

// NewSelect validates that predicate resolves entirely against child's
// mapping at construction time — a predicate referencing an unknown
// column is a plan error raised here, not per-tuple (spec.md section 4.3).
func NewSelect(child Operator, predicate sql.Expr) (*Select, error) {
	if predicate != nil {
		if err := expr.CheckColumns(predicate, child.Mapping()); err != nil {
			return nil, err
		}
	}
	return &Select{child: child, predicate: predicate, mapping: child.Mapping()}, nil
}

func (s *Select) Mapping() *schema.Mapping { return s.mapping }

func (s *Select) Next() (*tuple.Tuple, error) {
	for {
		t, err := s.child.Next()
		if err != nil || t == nil {
			return nil, err
		}
		ok, err := expr.EvalBool(s.predicate, t, s.mapping)
		if err != nil {
			return nil, err
		}
		if ok {
			return t, nil
		}
	}
}

func (s *Select) Reset() error { return s.child.Reset() }
func (s *Select) Close() error { return s.child.Close() }
