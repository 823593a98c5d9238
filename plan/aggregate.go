package plan

import (
	"fmt"

	"github.com/csql-dev/csql/diag"
	"github.com/csql-dev/csql/exec"
	"github.com/csql-dev/csql/sql"
)

// aggregation is everything the rest of the planner needs once a query's
// SUM list and GROUP BY have been folded into a Sum operator: the
// synthetic output name for every SELECT-list item, the synthetic name
// for every GROUP BY column (so ORDER BY can refer back to it), and the
// original inner-expression text of every SUM (so a bare ORDER BY
// SUM(...) can be matched against it per spec.md section 4.9 step 9).
type aggregation struct {
	projNames      []string
	groupNameByCol map[string]string
	sumArgTexts    []string
}

func needsAggregation(stmt *sql.Select) bool {
	if len(stmt.GroupBy) > 0 {
		return true
	}
	for _, p := range stmt.Proj {
		if p.Kind == sql.ProjSum {
			return true
		}
	}
	return false
}

// rewriteAggregation implements spec.md section 4.9 step 6: the
// literal-SUM rewrite (SUM(k) for constant k becomes a reference to a
// synthetic LITERAL_SUM_i column a LiteralAppend operator adds) followed
// by wrapping root in Sum. SUM_i indices are assigned in the order SUM
// items appear in the SELECT list, so a bare ORDER BY SUM(...) can be
// matched back against the same position later.
func rewriteAggregation(root exec.Operator, stmt *sql.Select) (exec.Operator, *aggregation, error) {
	var appended []exec.AppendedColumn
	litNameForProj := make(map[int]string)
	litCounter := 0
	for i, p := range stmt.Proj {
		if p.Kind != sql.ProjSum || p.SumArg.Type() != sql.ExprConst {
			continue
		}
		name := fmt.Sprintf("LITERAL_SUM_%d", litCounter)
		litCounter++
		appended = append(appended, exec.AppendedColumn{
			Name:  name,
			Value: p.SumArg.(*sql.Const).Value,
		})
		litNameForProj[i] = name
	}
	if len(appended) > 0 {
		root = exec.NewLiteralAppend(root, appended)
	}

	groupExprs := make([]sql.Expr, len(stmt.GroupBy))
	for i, g := range stmt.GroupBy {
		groupExprs[i] = g
	}

	var sumExprs []sql.Expr
	var sumArgTexts []string
	sumIndexForProj := make(map[int]int)
	for i, p := range stmt.Proj {
		if p.Kind != sql.ProjSum {
			continue
		}
		sumIndexForProj[i] = len(sumExprs)
		sumArgTexts = append(sumArgTexts, sql.PrintExpr(p.SumArg))
		if name, ok := litNameForProj[i]; ok {
			sumExprs = append(sumExprs, &sql.Column{Name: name})
		} else {
			sumExprs = append(sumExprs, p.SumArg)
		}
	}

	sumOp, err := exec.NewSum(root, groupExprs, sumExprs)
	if err != nil {
		return nil, nil, err
	}
	root = sumOp

	groupNameByCol := make(map[string]string, len(stmt.GroupBy))
	for i, g := range stmt.GroupBy {
		name := "Group"
		if len(stmt.GroupBy) > 1 {
			name = fmt.Sprintf("Group_%d", i)
		}
		groupNameByCol[g.Qualified()] = name
	}

	projNames := make([]string, len(stmt.Proj))
	for i, p := range stmt.Proj {
		switch p.Kind {
		case sql.ProjColumn:
			name, ok := groupNameByCol[p.Col.Qualified()]
			if !ok {
				return nil, nil, diag.Errorf(diag.Plan, "plan",
					"column %s must appear in GROUP BY to be used alongside SUM", p.Col.Qualified())
			}
			projNames[i] = name
		case sql.ProjSum:
			projNames[i] = fmt.Sprintf("SUM_%d", sumIndexForProj[i])
		case sql.ProjStar:
			return nil, nil, diag.Errorf(diag.Plan, "plan", "SELECT * cannot be combined with SUM or GROUP BY")
		}
	}

	return root, &aggregation{
		projNames:      projNames,
		groupNameByCol: groupNameByCol,
		sumArgTexts:    sumArgTexts,
	}, nil
}
