// Package catalog implements the process-wide, read-only table directory
// spec.md section 3 and section 6 describe: schema.txt gives each table's
// authoritative column order, data/<Table>.csv holds its rows. The teacher's
// own TableDescriptor (plan/table.go) plays an analogous role for an AWK
// source path; this is the same idea rebuilt as an explicitly constructed
// value rather than the original Java's process-wide singleton
// (SchemaProvider, per the engine's design notes).
package catalog

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/csql-dev/csql/diag"
)

// Table is one resolved catalog entry: where its rows live and the column
// order that is authoritative for every tuple that Scan produces from it.
type Table struct {
	Name    string
	Path    string
	Columns []string
}

// Catalog is built once from a database directory and never mutated
// afterward; Resolve and ResolveColumn are its read paths.
type Catalog struct {
	dir    string
	tables map[string]*Table
}

// Load reads <dir>/schema.txt and checks that each named table's CSV file
// under <dir>/data exists, returning a catalog error (spec.md section 7) if
// either is missing or malformed. It does not open any data file — Scan
// does that when the query's plan is built.
func Load(dir string) (*Catalog, error) {
	schemaPath := filepath.Join(dir, "schema.txt")
	f, err := os.Open(schemaPath)
	if err != nil {
		return nil, diag.Errorf(diag.Catalog, "catalog", "cannot open %s: %s", schemaPath, err)
	}
	defer f.Close()

	cat := &Catalog{dir: dir, tables: make(map[string]*Table)}

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return nil, diag.Errorf(diag.Catalog, "catalog",
				"schema.txt line %d: expected 'TableName Col1 ... ColN', got %q", lineNo, line)
		}
		name := fields[0]
		cols := fields[1:]
		if _, dup := cat.tables[name]; dup {
			return nil, diag.Errorf(diag.Catalog, "catalog", "table %s declared twice in schema.txt", name)
		}
		path := filepath.Join(dir, "data", name+".csv")
		if _, err := os.Stat(path); err != nil {
			return nil, diag.Errorf(diag.Catalog, "catalog", "table %s: data file %s: %s", name, path, err)
		}
		cat.tables[name] = &Table{Name: name, Path: path, Columns: cols}
	}
	if err := scanner.Err(); err != nil {
		return nil, diag.Errorf(diag.Catalog, "catalog", "reading %s: %s", schemaPath, err)
	}
	if len(cat.tables) == 0 {
		return nil, diag.Errorf(diag.Catalog, "catalog", "%s declares no tables", schemaPath)
	}
	return cat, nil
}

// Resolve returns the table's CSV path and ordered column list, or a
// catalog error if no such table exists.
func (c *Catalog) Resolve(tableName string) (*Table, error) {
	t, ok := c.tables[tableName]
	if !ok {
		return nil, diag.Errorf(diag.Catalog, "catalog", "unknown table %s", tableName)
	}
	return t, nil
}

// ResolveColumn finds the unique table in names that declares column col,
// implementing the unqualified-column resolution rule of spec.md section 3:
// it is an error if no such table exists or more than one does.
func (c *Catalog) ResolveColumn(names []string, col string) (string, error) {
	var found string
	for _, n := range names {
		t, ok := c.tables[n]
		if !ok {
			return "", diag.Errorf(diag.Plan, "plan", "unknown table %s", n)
		}
		for _, c2 := range t.Columns {
			if c2 == col {
				if found != "" {
					return "", diag.Errorf(diag.Plan, "plan", "column %s is ambiguous between %s and %s", col, found, n)
				}
				found = n
				break
			}
		}
	}
	if found == "" {
		return "", diag.Errorf(diag.Plan, "plan", "column %s not found in %s", col, fmt.Sprint(names))
	}
	return found, nil
}
