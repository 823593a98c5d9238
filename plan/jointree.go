package plan

import (
	"github.com/csql-dev/csql/catalog"
	"github.com/csql-dev/csql/diag"
	"github.com/csql-dev/csql/exec"
	"github.com/csql-dev/csql/schema"
	"github.com/csql-dev/csql/sql"
)

// buildJoinTree implements spec.md section 4.9 steps 2-4: one Scan per
// FROM table, local predicates pushed down as a Select on that table's
// scan, and a left-deep tree of binary Joins threading the combined
// schema mapping through. Every WHERE atom is attached exactly once, at
// the earliest point (table, or join step) whose mapping covers every
// table the atom references — which is precisely the deepest join that
// covers it, since every later join's mapping is a superset.
func buildJoinTree(stmt *sql.Select, cat *catalog.Catalog) (exec.Operator, error) {
	if len(stmt.From) == 0 {
		return nil, diag.Errorf(diag.Plan, "plan", "FROM clause is empty")
	}

	atoms := flattenAnd(stmt.Where)
	used := make([]bool, len(atoms))

	var root exec.Operator
	tablesSoFar := make(map[string]bool)

	for i, tableName := range stmt.From {
		tbl, err := cat.Resolve(tableName)
		if err != nil {
			return nil, err
		}
		scanMap := schema.FromColumns(tableName, tbl.Columns)
		scanOp, err := exec.NewScan(tbl.Path, scanMap)
		if err != nil {
			return nil, err
		}

		var tableOp exec.Operator = scanOp
		var localAtoms []sql.Expr
		only := map[string]bool{tableName: true}
		for j, a := range atoms {
			if used[j] {
				continue
			}
			if subsetOf(tableSet(a), only) {
				localAtoms = append(localAtoms, a)
				used[j] = true
			}
		}
		if pred := conjoin(localAtoms); pred != nil {
			sel, err := exec.NewSelect(scanOp, pred)
			if err != nil {
				return nil, err
			}
			tableOp = sel
		}

		tablesSoFar[tableName] = true

		if i == 0 {
			root = tableOp
			continue
		}

		var joinAtoms []sql.Expr
		for j, a := range atoms {
			if used[j] {
				continue
			}
			if subsetOf(tableSet(a), tablesSoFar) {
				joinAtoms = append(joinAtoms, a)
				used[j] = true
			}
		}
		joinOp, err := exec.NewJoin(root, tableOp, conjoin(joinAtoms))
		if err != nil {
			return nil, err
		}
		root = joinOp
	}

	return root, nil
}
