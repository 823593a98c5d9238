package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/csql-dev/csql/catalog"
	"github.com/csql-dev/csql/exec"
	"github.com/csql-dev/csql/schema"
	"github.com/csql-dev/csql/sql"
)

func scanOp(t *testing.T, dir, table string, cols []string) exec.Operator {
	cat, err := catalog.Load(dir)
	assert.NoError(t, err)
	tbl, err := cat.Resolve(table)
	assert.NoError(t, err)
	op, err := exec.NewScan(tbl.Path, schema.FromColumns(table, cols))
	assert.NoError(t, err)
	return op
}

func TestNeedsAggregationDetectsGroupBy(t *testing.T) {
	assert := assert.New(t)

	stmt := &sql.Select{GroupBy: []*sql.Column{{Table: "R", Name: "A"}}}
	assert.True(needsAggregation(stmt))
}

func TestNeedsAggregationDetectsSelectListSum(t *testing.T) {
	assert := assert.New(t)

	stmt := &sql.Select{Proj: []*sql.ProjItem{{Kind: sql.ProjSum, SumArg: &sql.Const{Value: 1}}}}
	assert.True(needsAggregation(stmt))
}

func TestNeedsAggregationFalseForPlainSelect(t *testing.T) {
	assert := assert.New(t)

	stmt := &sql.Select{Proj: []*sql.ProjItem{{Kind: sql.ProjColumn, Col: &sql.Column{Table: "R", Name: "A"}}}}
	assert.False(needsAggregation(stmt))
}

func TestRewriteAggregationRejectsNonGroupedColumn(t *testing.T) {
	assert := assert.New(t)

	dir := writeTestDB(t, "R A B\n", map[string]string{"R": "1, 2\n"})
	root := scanOp(t, dir, "R", []string{"A", "B"})

	stmt := &sql.Select{
		Proj: []*sql.ProjItem{
			{Kind: sql.ProjColumn, Col: &sql.Column{Table: "R", Name: "B"}},
			{Kind: sql.ProjSum, SumArg: &sql.Column{Table: "R", Name: "A"}},
		},
		GroupBy: []*sql.Column{{Table: "R", Name: "A"}},
	}
	_, _, err := rewriteAggregation(root, stmt)
	assert.Error(err)
}

func TestRewriteAggregationLiteralSumUsesSyntheticColumn(t *testing.T) {
	assert := assert.New(t)

	dir := writeTestDB(t, "R A\n", map[string]string{"R": "1\n2\n"})
	root := scanOp(t, dir, "R", []string{"A"})

	stmt := &sql.Select{
		Proj: []*sql.ProjItem{{Kind: sql.ProjSum, SumArg: &sql.Const{Value: 7}}},
	}
	newRoot, agg, err := rewriteAggregation(root, stmt)
	assert.NoError(err)
	assert.Equal("SUM_0", agg.projNames[0])

	tup, err := newRoot.Next()
	assert.NoError(err)
	assert.Equal("14", tup.Fields[0].Text())
}
