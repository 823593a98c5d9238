package exec

import (
	"github.com/csql-dev/csql/expr"
	"github.com/csql-dev/csql/schema"
	"github.com/csql-dev/csql/sql"
	"github.com/csql-dev/csql/tuple"
)

// Join is a binary tuple-nested-loop join (spec.md section 4.4): for each
// outer tuple, the inner child is reset and fully re-iterated. Output
// order is outer-major, inner-minor; output arity is left arity + right
// arity. A nil predicate makes this a Cartesian product.
type Join struct {
	left, right Operator
	predicate   sql.Expr
	mapping     *schema.Mapping
	leftArity   int

	outer    *tuple.Tuple
	innerEnd bool
}

func NewJoin(left, right Operator, predicate sql.Expr) (*Join, error) {
	leftArity := left.Mapping().Len()
	combined := schema.Join(left.Mapping(), right.Mapping(), leftArity)
	if predicate != nil {
		if err := expr.CheckColumns(predicate, combined); err != nil {
			return nil, err
		}
	}
	return &Join{
		left: left, right: right,
		predicate: predicate,
		mapping:   combined,
		leftArity: leftArity,
		innerEnd:  true,
	}, nil
}

func (j *Join) Mapping() *schema.Mapping { return j.mapping }

func (j *Join) Next() (*tuple.Tuple, error) {
	for {
		if j.outer == nil {
			outer, err := j.left.Next()
			if err != nil || outer == nil {
				return nil, err
			}
			j.outer = outer
			if err := j.right.Reset(); err != nil {
				return nil, err
			}
			j.innerEnd = false
		}

		if j.innerEnd {
			j.outer = nil
			continue
		}

		inner, err := j.right.Next()
		if err != nil {
			return nil, err
		}
		if inner == nil {
			j.innerEnd = true
			j.outer = nil
			continue
		}

		combined := tuple.Concat(j.outer, inner)
		ok, err := expr.EvalBool(j.predicate, combined, j.mapping)
		if err != nil {
			return nil, err
		}
		if ok {
			return combined, nil
		}
	}
}

// Reset resets both children and drops the current outer tuple (spec.md
// section 4.4).
func (j *Join) Reset() error {
	if err := j.left.Reset(); err != nil {
		return err
	}
	if err := j.right.Reset(); err != nil {
		return err
	}
	j.outer = nil
	j.innerEnd = true
	return nil
}

func (j *Join) Close() error {
	if err := j.left.Close(); err != nil {
		return err
	}
	return j.right.Close()
}
