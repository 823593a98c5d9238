package plan

import (
	"fmt"
	"strings"

	"github.com/csql-dev/csql/diag"
	"github.com/csql-dev/csql/exec"
	"github.com/csql-dev/csql/schema"
	"github.com/csql-dev/csql/sql"
)

// buildSortKeys resolves every ORDER BY item against mapping — the
// schema in effect immediately after the (optional) aggregation step,
// before projection has had a chance to drop a column ORDER BY still
// needs (spec.md's concrete scenario "SELECT R.A FROM R ORDER BY R.B"
// only works if Sort sees R.B, so Sort is built against this
// pre-projection mapping rather than the final SELECT-list one).
//
// A bare SUM(expr) item is matched case-insensitively against the inner
// expression text of an existing SUM in the SELECT list (spec.md section
// 4.9 step 9); it is a plan error if none matches, or if the query has no
// aggregation at all.
func buildSortKeys(stmt *sql.Select, mapping *schema.Mapping, agg *aggregation) ([]exec.SortKey, error) {
	keys := make([]exec.SortKey, len(stmt.OrderBy))
	for i, item := range stmt.OrderBy {
		var name string
		switch {
		case item.Col != nil:
			name = item.Col.Qualified()
			if agg != nil {
				mapped, ok := agg.groupNameByCol[name]
				if !ok {
					return nil, diag.Errorf(diag.Plan, "plan",
						"ORDER BY column %s must appear in GROUP BY", name)
				}
				name = mapped
			}
		case item.SumArg != nil:
			if agg == nil {
				return nil, diag.Errorf(diag.Plan, "plan", "ORDER BY SUM(...) used without aggregation")
			}
			target := strings.ToLower(sql.PrintExpr(item.SumArg))
			found := -1
			for j, text := range agg.sumArgTexts {
				if strings.ToLower(text) == target {
					found = j
					break
				}
			}
			if found == -1 {
				return nil, diag.Errorf(diag.Plan, "plan",
					"ORDER BY SUM(%s) does not match any SELECT-list SUM", sql.PrintExpr(item.SumArg))
			}
			name = fmt.Sprintf("SUM_%d", found)
		default:
			return nil, diag.Errorf(diag.Plan, "plan", "empty ORDER BY item")
		}

		idx, ok := mapping.Lookup(name)
		if !ok {
			return nil, diag.Errorf(diag.Plan, "plan", "ORDER BY key %s not found in current schema", name)
		}
		keys[i] = exec.SortKey{Index: idx, Desc: item.Desc}
	}
	return keys, nil
}
