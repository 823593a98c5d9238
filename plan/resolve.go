package plan

import (
	"github.com/csql-dev/csql/catalog"
	"github.com/csql-dev/csql/sql"
)

// resolveColumns walks every column reference reachable from stmt and fills
// in its Table when the query text left it unqualified, per spec.md
// section 3: unqualified C resolves to T.C where T is the unique FROM
// table declaring C.
func resolveColumns(stmt *sql.Select, cat *catalog.Catalog) error {
	resolveOne := func(c *sql.Column) error {
		if c.Table != "" {
			return nil
		}
		t, err := cat.ResolveColumn(stmt.From, c.Name)
		if err != nil {
			return err
		}
		c.Table = t
		return nil
	}

	var walkExpr func(e sql.Expr) error
	walkExpr = func(e sql.Expr) error {
		if e == nil {
			return nil
		}
		switch e.Type() {
		case sql.ExprConst:
			return nil
		case sql.ExprColumn:
			return resolveOne(e.(*sql.Column))
		case sql.ExprBinary:
			b := e.(*sql.Binary)
			if err := walkExpr(b.L); err != nil {
				return err
			}
			return walkExpr(b.R)
		}
		return nil
	}

	if err := walkExpr(stmt.Where); err != nil {
		return err
	}
	for _, g := range stmt.GroupBy {
		if err := resolveOne(g); err != nil {
			return err
		}
	}
	for _, o := range stmt.OrderBy {
		if o.Col != nil {
			if err := resolveOne(o.Col); err != nil {
				return err
			}
		}
		if err := walkExpr(o.SumArg); err != nil {
			return err
		}
	}
	for _, p := range stmt.Proj {
		if p.Col != nil {
			if err := resolveOne(p.Col); err != nil {
				return err
			}
		}
		if err := walkExpr(p.SumArg); err != nil {
			return err
		}
	}
	return nil
}
