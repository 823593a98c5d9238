// Package expr evaluates a parsed sql.Expr against one tuple under one
// schema mapping — the single recursive evaluator the design notes call
// for in place of the original's visitor pattern. Every operator that
// touches predicates or SUM arguments (Select, Join, Sum) funnels through
// here so there is exactly one place that turns a column reference into a
// tuple index.
package expr

import (
	"github.com/csql-dev/csql/diag"
	"github.com/csql-dev/csql/schema"
	"github.com/csql-dev/csql/sql"
	"github.com/csql-dev/csql/tuple"
	"github.com/csql-dev/csql/value"
)

// CheckColumns walks e and verifies every column reference resolves
// against m, surfacing the plan error at construction time rather than
// deferring it to the first next() call (spec.md section 4.3).
func CheckColumns(e sql.Expr, m *schema.Mapping) error {
	if e == nil {
		return nil
	}
	switch e.Type() {
	case sql.ExprConst:
		return nil
	case sql.ExprColumn:
		col := e.(*sql.Column)
		if _, ok := m.Lookup(col.Qualified()); !ok {
			return diag.Errorf(diag.Plan, "plan", "column %s not found in current schema", col.Qualified())
		}
		return nil
	case sql.ExprBinary:
		b := e.(*sql.Binary)
		if err := CheckColumns(b.L, m); err != nil {
			return err
		}
		return CheckColumns(b.R, m)
	default:
		return diag.Errorf(diag.Plan, "plan", "unsupported expression kind")
	}
}

// Eval computes the integer value of an arithmetic expression (Const,
// Column, or a Binary with an arithmetic op) against t under m.
func Eval(e sql.Expr, t *tuple.Tuple, m *schema.Mapping) (value.Value, error) {
	switch e.Type() {
	case sql.ExprConst:
		return value.FromInt(e.(*sql.Const).Value), nil

	case sql.ExprColumn:
		col := e.(*sql.Column)
		idx, ok := m.Lookup(col.Qualified())
		if !ok {
			return value.Value{}, diag.Errorf(diag.Plan, "plan", "column %s not found in current schema", col.Qualified())
		}
		if idx >= t.Arity() {
			return value.Value{}, diag.Errorf(diag.Type, "eval", "tuple arity %d too small for column %s at index %d", t.Arity(), col.Qualified(), idx)
		}
		return t.Fields[idx], nil

	case sql.ExprBinary:
		b := e.(*sql.Binary)
		if !sql.IsComparison(b.Op) && b.Op != sql.OpAnd && b.Op != sql.OpOr {
			lv, err := Eval(b.L, t, m)
			if err != nil {
				return value.Value{}, err
			}
			rv, err := Eval(b.R, t, m)
			if err != nil {
				return value.Value{}, err
			}
			li, ok := lv.Int()
			if !ok {
				return value.Value{}, diag.Errorf(diag.Type, "eval", "non-integer operand %q to %s", lv.Text(), sql.OpName(b.Op))
			}
			ri, ok := rv.Int()
			if !ok {
				return value.Value{}, diag.Errorf(diag.Type, "eval", "non-integer operand %q to %s", rv.Text(), sql.OpName(b.Op))
			}
			switch b.Op {
			case sql.OpAdd:
				return value.FromInt(li + ri), nil
			case sql.OpMul:
				return value.FromInt(li * ri), nil
			}
		}
		return value.Value{}, diag.Errorf(diag.Type, "eval", "expression %s does not produce an integer value", sql.PrintExpr(e))

	default:
		return value.Value{}, diag.Errorf(diag.Plan, "eval", "unsupported expression kind")
	}
}

// EvalBool evaluates a predicate: a comparison, or an AND/OR combination of
// predicates. Join and Select both evaluate their filter this way.
func EvalBool(e sql.Expr, t *tuple.Tuple, m *schema.Mapping) (bool, error) {
	if e == nil {
		return true, nil
	}
	b, ok := e.(*sql.Binary)
	if !ok {
		return false, diag.Errorf(diag.Type, "eval", "expression %s is not a boolean predicate", sql.PrintExpr(e))
	}

	switch b.Op {
	case sql.OpAnd:
		l, err := EvalBool(b.L, t, m)
		if err != nil {
			return false, err
		}
		if !l {
			return false, nil
		}
		return EvalBool(b.R, t, m)

	case sql.OpOr:
		l, err := EvalBool(b.L, t, m)
		if err != nil {
			return false, err
		}
		if l {
			return true, nil
		}
		return EvalBool(b.R, t, m)

	default:
		if !sql.IsComparison(b.Op) {
			return false, diag.Errorf(diag.Type, "eval", "expression %s is not a boolean predicate", sql.PrintExpr(e))
		}
		lv, err := Eval(b.L, t, m)
		if err != nil {
			return false, err
		}
		rv, err := Eval(b.R, t, m)
		if err != nil {
			return false, err
		}
		cmp, ok := value.Compare(lv, rv)
		if !ok {
			if b.Op == sql.OpEq || b.Op == sql.OpNe {
				eq := lv.Equal(rv)
				if b.Op == sql.OpEq {
					return eq, nil
				}
				return !eq, nil
			}
			return false, diag.Errorf(diag.Type, "eval", "cannot order non-integer operands in %s", sql.PrintExpr(e))
		}
		switch b.Op {
		case sql.OpEq:
			return cmp == 0, nil
		case sql.OpNe:
			return cmp != 0, nil
		case sql.OpLt:
			return cmp < 0, nil
		case sql.OpLe:
			return cmp <= 0, nil
		case sql.OpGt:
			return cmp > 0, nil
		case sql.OpGe:
			return cmp >= 0, nil
		default:
			return false, diag.Errorf(diag.Plan, "eval", "unsupported comparison operator")
		}
	}
}
