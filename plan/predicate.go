// Predicate decomposition: flattening WHERE over AND, and computing each
// atom's table-access set, the same data-flow idea as the teacher's
// exprTableAccessInfo (plan/expr.go) — post-order walk, union children's
// sets into the parent's — specialized here to a plain set of table names
// instead of table indices, since this planner never needs anything more
// than "which tables does this atom touch".
package plan

import "github.com/csql-dev/csql/sql"

// flattenAnd splits e into its top-level AND-conjuncts (spec.md section
// 4.9 step 3). A disjunction or any other non-AND combinator is never
// split further — it comes back as a single atom, verbatim.
func flattenAnd(e sql.Expr) []sql.Expr {
	if e == nil {
		return nil
	}
	if b, ok := e.(*sql.Binary); ok && b.Op == sql.OpAnd {
		return append(flattenAnd(b.L), flattenAnd(b.R)...)
	}
	return []sql.Expr{e}
}

// tableSet collects every table name referenced anywhere inside e,
// regardless of combinator — an OR atom's set is the union of both sides,
// the same as an AND's would be, because table-set membership doesn't
// care how the atom combines its operands.
func tableSet(e sql.Expr) map[string]bool {
	set := make(map[string]bool)
	var walk func(e sql.Expr)
	walk = func(e sql.Expr) {
		if e == nil {
			return
		}
		switch e.Type() {
		case sql.ExprColumn:
			set[e.(*sql.Column).Table] = true
		case sql.ExprBinary:
			b := e.(*sql.Binary)
			walk(b.L)
			walk(b.R)
		}
	}
	walk(e)
	return set
}

func subsetOf(set map[string]bool, available map[string]bool) bool {
	for t := range set {
		if !available[t] {
			return false
		}
	}
	return true
}

// conjoin folds a list of atoms back into a single AND-expression, nil if
// the list is empty.
func conjoin(atoms []sql.Expr) sql.Expr {
	if len(atoms) == 0 {
		return nil
	}
	out := atoms[0]
	for _, a := range atoms[1:] {
		out = &sql.Binary{Op: sql.OpAnd, L: out, R: a}
	}
	return out
}
