package exec

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/csql-dev/csql/sql"
)

func TestSelectFiltersRows(t *testing.T) {
	assert := assert.New(t)

	path := writeCSV(t, "1\n2\n3\n")
	scan, err := NewScan(path, schemaFor())
	assert.NoError(err)

	pred := &sql.Binary{Op: sql.OpGt, L: col("R", "A"), R: &sql.Const{Value: 1}}
	sel, err := NewSelect(scan, pred)
	assert.NoError(err)

	rows := drain(t, sel)
	assert.Equal([][]string{{"2"}, {"3"}}, rows)
}

func TestNewSelectRejectsUnknownColumn(t *testing.T) {
	assert := assert.New(t)

	path := writeCSV(t, "1\n")
	scan, err := NewScan(path, schemaFor())
	assert.NoError(err)

	pred := &sql.Binary{Op: sql.OpGt, L: col("R", "Z"), R: &sql.Const{Value: 1}}
	_, err = NewSelect(scan, pred)
	assert.Error(err)
}
