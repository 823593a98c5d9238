package exec

import (
	"github.com/csql-dev/csql/schema"
	"github.com/csql-dev/csql/tuple"
	"github.com/csql-dev/csql/value"
)

// AppendedColumn is one constant field LiteralAppend adds to every tuple
// it passes through, plus the synthetic name the planner has chosen for
// it (LITERAL_SUM_i per spec.md section 4.8).
type AppendedColumn struct {
	Name  string
	Value int64
}

// LiteralAppend implements the literal-SUM rewrite as its own operator,
// the way original_source/'s LiteralAppendOperator does, rather than a
// special case inside Sum: for SUM(k) with constant k, the planner wraps
// Sum's input in a LiteralAppend that appends k as a new trailing field to
// every tuple, under a synthetic LITERAL_SUM_i column the mapping gains at
// the next free index (spec.md section 4.8, section 4.9 step 6). This
// keeps Sum's own contract uniform — it only ever evaluates an expression
// against a tuple, never special-cases a constant SUM argument.
type LiteralAppend struct {
	child   Operator
	columns []AppendedColumn
	mapping *schema.Mapping
}

func NewLiteralAppend(child Operator, columns []AppendedColumn) *LiteralAppend {
	m := child.Mapping()
	next := m.NextFreeIndex()
	for i, c := range columns {
		m = m.WithColumn(c.Name, next+i)
	}
	return &LiteralAppend{child: child, columns: columns, mapping: m}
}

func (l *LiteralAppend) Mapping() *schema.Mapping { return l.mapping }

func (l *LiteralAppend) Next() (*tuple.Tuple, error) {
	t, err := l.child.Next()
	if err != nil || t == nil {
		return nil, err
	}
	fields := make([]value.Value, 0, len(t.Fields)+len(l.columns))
	fields = append(fields, t.Fields...)
	for _, c := range l.columns {
		fields = append(fields, value.FromInt(c.Value))
	}
	return &tuple.Tuple{Fields: fields}, nil
}

func (l *LiteralAppend) Reset() error { return l.child.Reset() }
func (l *LiteralAppend) Close() error { return l.child.Close() }
