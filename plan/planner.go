// Package plan turns a parsed *sql.Select into a runnable exec.Operator
// tree. It mirrors the teacher's own plan package in spirit — a single
// entry point that threads a schema mapping through each rewrite step —
// but the steps themselves implement spec.md section 4.9's algorithm for
// this module's binary-join, pull-iterator execution model rather than
// the teacher's AWK-codegen one.
package plan

import (
	"github.com/csql-dev/csql/catalog"
	"github.com/csql-dev/csql/exec"
	"github.com/csql-dev/csql/sql"
)

// Plan builds the operator tree for stmt against cat. The construction
// order is:
//
//  1. resolve every unqualified column reference (section 3)
//  2. one Scan per FROM table, with local WHERE atoms pushed down as a
//     Select, and the rest attached to the earliest left-deep Join whose
//     mapping covers them (section 4.9 steps 2-4)
//  3. if the query aggregates, rewrite constant SUM arguments via
//     LiteralAppend and wrap the tree in Sum (section 4.9 step 6)
//  4. if there is an ORDER BY, wrap in Sort now, while the schema still
//     carries every column ORDER BY might reference — a column the final
//     SELECT list doesn't keep, or a SUM_i naming a SELECT-list SUM
//  5. if SELECT isn't *, wrap in Projection down to the SELECT list
//  6. if DISTINCT or GROUP BY is present, wrap in DuplicateElimination
//
// Because Select, Projection and DuplicateElimination all preserve their
// child's emission order (section 5), sorting before the final
// projection/dedup still leaves the requested order intact in the
// output even though those later steps never see the sort key again.
func Plan(stmt *sql.Select, cat *catalog.Catalog) (exec.Operator, error) {
	if err := resolveColumns(stmt, cat); err != nil {
		return nil, err
	}

	root, err := buildJoinTree(stmt, cat)
	if err != nil {
		return nil, err
	}

	var agg *aggregation
	if needsAggregation(stmt) {
		root, agg, err = rewriteAggregation(root, stmt)
		if err != nil {
			return nil, err
		}
	}

	if len(stmt.OrderBy) > 0 {
		keys, err := buildSortKeys(stmt, root.Mapping(), agg)
		if err != nil {
			return nil, err
		}
		sortOp, err := exec.NewSort(root, keys)
		if err != nil {
			return nil, err
		}
		root = sortOp
	}

	var projNames []string
	if agg != nil {
		projNames = agg.projNames
	} else if stmt.Proj[0].Kind != sql.ProjStar {
		projNames = make([]string, len(stmt.Proj))
		for i, p := range stmt.Proj {
			projNames[i] = p.Col.Qualified()
		}
	}
	if projNames != nil {
		projOp, err := exec.NewProjection(root, projNames)
		if err != nil {
			return nil, err
		}
		root = projOp
	}

	if stmt.Distinct || len(stmt.GroupBy) > 0 {
		root = exec.NewDuplicateElimination(root)
	}

	return root, nil
}
