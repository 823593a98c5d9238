// Package output writes a query's result tuples to the destination CSV
// file spec.md section 6 fixes the format for.
package output

import (
	"bufio"
	"os"
	"strings"

	"github.com/csql-dev/csql/diag"
	"github.com/csql-dev/csql/exec"
)

// Write drains op and writes one line per tuple to path, each field
// rendered through value.Value's text form and joined with the literal
// ", " separator spec.md section 6 requires — encoding/csv's Writer only
// supports a single-rune Comma, so this stays hand-rolled the way the
// teacher hand-rolls its own AWK source text rather than reaching for a
// templating library (SPEC_FULL.md section 6).
func Write(op exec.Operator, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return diag.Errorf(diag.IO, "output", "cannot create %s: %s", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for {
		t, err := op.Next()
		if err != nil {
			return err
		}
		if t == nil {
			break
		}
		parts := make([]string, len(t.Fields))
		for i, field := range t.Fields {
			parts[i] = field.Text()
		}
		if _, err := w.WriteString(strings.Join(parts, ", ")); err != nil {
			return diag.Errorf(diag.IO, "output", "writing %s: %s", path, err)
		}
		if _, err := w.WriteString("\n"); err != nil {
			return diag.Errorf(diag.IO, "output", "writing %s: %s", path, err)
		}
	}
	return w.Flush()
}
