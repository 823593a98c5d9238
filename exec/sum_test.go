package exec

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/csql-dev/csql/schema"
	"github.com/csql-dev/csql/sql"
)

func TestSumGlobalAggregation(t *testing.T) {
	assert := assert.New(t)

	scan, err := NewScan(writeCSV(t, "1\n2\n3\n"), schema.FromColumns("R", []string{"A"}))
	assert.NoError(err)

	sumOp, err := NewSum(scan, nil, []sql.Expr{col("R", "A")})
	assert.NoError(err)

	rows := drain(t, sumOp)
	assert.Equal([][]string{{"6"}}, rows)
}

func TestSumGlobalAggregationOverEmptyInputEmitsOneRow(t *testing.T) {
	assert := assert.New(t)

	scan, err := NewScan(writeCSV(t, ""), schema.FromColumns("R", []string{"A"}))
	assert.NoError(err)

	sumOp, err := NewSum(scan, nil, []sql.Expr{col("R", "A")})
	assert.NoError(err)

	rows := drain(t, sumOp)
	assert.Equal([][]string{{"0"}}, rows)
}

func TestSumGroupBy(t *testing.T) {
	assert := assert.New(t)

	scan, err := NewScan(writeCSV(t, "1, 10\n1, 20\n2, 5\n"), schema.FromColumns("R", []string{"G", "V"}))
	assert.NoError(err)

	sumOp, err := NewSum(scan, []sql.Expr{col("R", "G")}, []sql.Expr{col("R", "V")})
	assert.NoError(err)

	rows := drain(t, sumOp)
	sort.Slice(rows, func(i, j int) bool { return rows[i][0] < rows[j][0] })
	assert.Equal([][]string{{"1", "30"}, {"2", "5"}}, rows)
}

func TestSumOutputMappingNames(t *testing.T) {
	assert := assert.New(t)

	scan, err := NewScan(writeCSV(t, "1, 2\n"), schema.FromColumns("R", []string{"G", "V"}))
	assert.NoError(err)

	sumOp, err := NewSum(scan,
		[]sql.Expr{col("R", "G")},
		[]sql.Expr{col("R", "V")})
	assert.NoError(err)

	_, ok := sumOp.Mapping().Lookup("Group")
	assert.True(ok)
	_, ok = sumOp.Mapping().Lookup("SUM_0")
	assert.True(ok)
}

func TestSumMultipleGroupKeysUseIndexedNames(t *testing.T) {
	assert := assert.New(t)

	scan, err := NewScan(writeCSV(t, "1, 2, 3\n"), schema.FromColumns("R", []string{"G1", "G2", "V"}))
	assert.NoError(err)

	sumOp, err := NewSum(scan,
		[]sql.Expr{col("R", "G1"), col("R", "G2")},
		[]sql.Expr{col("R", "V")})
	assert.NoError(err)

	_, ok := sumOp.Mapping().Lookup("Group_0")
	assert.True(ok)
	_, ok = sumOp.Mapping().Lookup("Group_1")
	assert.True(ok)
}

func TestSumResetDoesNotReAggregate(t *testing.T) {
	assert := assert.New(t)

	scan, err := NewScan(writeCSV(t, "1\n2\n"), schema.FromColumns("R", []string{"A"}))
	assert.NoError(err)

	sumOp, err := NewSum(scan, nil, []sql.Expr{col("R", "A")})
	assert.NoError(err)

	first := drain(t, sumOp)
	assert.NoError(sumOp.Reset())
	second := drain(t, sumOp)
	assert.Equal(first, second)
}
