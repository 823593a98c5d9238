package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/csql-dev/csql/catalog"
	"github.com/csql-dev/csql/sql"
)

func twoTableCatalog(t *testing.T) *catalog.Catalog {
	dir := writeTestDB(t, "R A B\nS C\n", map[string]string{
		"R": "1, 2\n",
		"S": "3\n",
	})
	cat, err := catalog.Load(dir)
	assert.NoError(t, err)
	return cat
}

func TestResolveColumnsFillsUnqualifiedTable(t *testing.T) {
	assert := assert.New(t)

	cat := twoTableCatalog(t)
	stmt := &sql.Select{
		Proj: []*sql.ProjItem{{Kind: sql.ProjColumn, Col: &sql.Column{Name: "A"}}},
		From: []string{"R", "S"},
	}
	assert.NoError(resolveColumns(stmt, cat))
	assert.Equal("R", stmt.Proj[0].Col.Table)
}

func TestResolveColumnsErrorsOnAmbiguousColumn(t *testing.T) {
	assert := assert.New(t)

	dir := writeTestDB(t, "R A\nS A\n", map[string]string{"R": "1\n", "S": "2\n"})
	cat, err := catalog.Load(dir)
	assert.NoError(err)

	stmt := &sql.Select{
		Proj: []*sql.ProjItem{{Kind: sql.ProjColumn, Col: &sql.Column{Name: "A"}}},
		From: []string{"R", "S"},
	}
	assert.Error(resolveColumns(stmt, cat))
}

func TestResolveColumnsLeavesQualifiedColumnsAlone(t *testing.T) {
	assert := assert.New(t)

	cat := twoTableCatalog(t)
	stmt := &sql.Select{
		Proj: []*sql.ProjItem{{Kind: sql.ProjColumn, Col: &sql.Column{Table: "S", Name: "C"}}},
		From: []string{"R", "S"},
	}
	assert.NoError(resolveColumns(stmt, cat))
	assert.Equal("S", stmt.Proj[0].Col.Table)
}
