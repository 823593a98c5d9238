package exec

import (
	"github.com/csql-dev/csql/schema"
	"github.com/csql-dev/csql/sql"
)

func col(table, name string) *sql.Column { return &sql.Column{Table: table, Name: name} }

func schemaFor() *schema.Mapping { return schema.FromColumns("R", []string{"A"}) }
