package expr

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/csql-dev/csql/schema"
	"github.com/csql-dev/csql/sql"
	"github.com/csql-dev/csql/tuple"
	"github.com/csql-dev/csql/value"
)

func col(table, name string) *sql.Column { return &sql.Column{Table: table, Name: name} }

func TestCheckColumnsRejectsUnknownColumn(t *testing.T) {
	assert := assert.New(t)

	m := schema.FromColumns("R", []string{"A"})
	err := CheckColumns(col("R", "Z"), m)
	assert.Error(err)
}

func TestEvalArithmetic(t *testing.T) {
	assert := assert.New(t)

	m := schema.FromColumns("R", []string{"A", "B"})
	row := tuple.New(value.FromInt(2), value.FromInt(3))

	expr := &sql.Binary{Op: sql.OpAdd, L: col("R", "A"), R: col("R", "B")}
	v, err := Eval(expr, row, m)
	assert.NoError(err)
	n, ok := v.Int()
	assert.True(ok)
	assert.Equal(int64(5), n)
}

func TestEvalRejectsNonIntegerArithmeticOperand(t *testing.T) {
	assert := assert.New(t)

	m := schema.FromColumns("R", []string{"A"})
	row := tuple.New(value.FromText("x"))

	expr := &sql.Binary{Op: sql.OpAdd, L: col("R", "A"), R: &sql.Const{Value: 1}}
	_, err := Eval(expr, row, m)
	assert.Error(err)
}

func TestEvalBoolComparison(t *testing.T) {
	assert := assert.New(t)

	m := schema.FromColumns("R", []string{"A"})
	row := tuple.New(value.FromInt(5))

	pred := &sql.Binary{Op: sql.OpGt, L: col("R", "A"), R: &sql.Const{Value: 3}}
	ok, err := EvalBool(pred, row, m)
	assert.NoError(err)
	assert.True(ok)
}

func TestEvalBoolAndShortCircuits(t *testing.T) {
	assert := assert.New(t)

	m := schema.FromColumns("R", []string{"A"})
	row := tuple.New(value.FromInt(5))

	falseLeft := &sql.Binary{Op: sql.OpEq, L: col("R", "A"), R: &sql.Const{Value: 999}}
	// R.Z is not in m: evaluating the right side would return an error.
	rhs := &sql.Binary{Op: sql.OpEq, L: col("R", "Z"), R: &sql.Const{Value: 5}}
	pred := &sql.Binary{Op: sql.OpAnd, L: falseLeft, R: rhs}

	ok, err := EvalBool(pred, row, m)
	assert.NoError(err)
	assert.False(ok)
}

func TestEvalBoolOr(t *testing.T) {
	assert := assert.New(t)

	m := schema.FromColumns("R", []string{"A"})
	row := tuple.New(value.FromInt(5))

	lhs := &sql.Binary{Op: sql.OpEq, L: col("R", "A"), R: &sql.Const{Value: 1}}
	rhs := &sql.Binary{Op: sql.OpEq, L: col("R", "A"), R: &sql.Const{Value: 5}}
	pred := &sql.Binary{Op: sql.OpOr, L: lhs, R: rhs}

	ok, err := EvalBool(pred, row, m)
	assert.NoError(err)
	assert.True(ok)
}

func TestEvalBoolEqualityOnTextValues(t *testing.T) {
	assert := assert.New(t)

	m := schema.FromColumns("R", []string{"A"})
	row := tuple.New(value.FromText("hello"))

	pred := &sql.Binary{Op: sql.OpEq, L: col("R", "A"), R: col("R", "A")}
	ok, err := EvalBool(pred, row, m)
	assert.NoError(err)
	assert.True(ok)
}
