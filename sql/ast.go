// Package sql is the SQL subset's lexer, parser and AST: the external
// collaborator spec.md section 1 says the core only consumes through a
// fixed interface (Parse returns a *Select). Token-kind-as-iota and the
// Expr-interface-with-a-Type-discriminant shape follow the teacher's own
// sql package (ast.go, lexer.go); the grammar itself is the much smaller
// subset spec.md section 6 fixes.
package sql

import "fmt"

const (
	ExprConst = iota
	ExprColumn
	ExprBinary
)

const (
	OpAdd = iota
	OpMul
	OpEq
	OpNe
	OpLt
	OpLe
	OpGt
	OpGe
	OpAnd
	OpOr
)

func OpName(op int) string {
	switch op {
	case OpAdd:
		return "+"
	case OpMul:
		return "*"
	case OpEq:
		return "="
	case OpNe:
		return "!="
	case OpLt:
		return "<"
	case OpLe:
		return "<="
	case OpGt:
		return ">"
	case OpGe:
		return ">="
	case OpAnd:
		return "AND"
	case OpOr:
		return "OR"
	default:
		return "?"
	}
}

// IsComparison reports whether op produces a boolean, as opposed to an
// arithmetic op (OpAdd, OpMul) that produces an integer.
func IsComparison(op int) bool {
	switch op {
	case OpEq, OpNe, OpLt, OpLe, OpGt, OpGe:
		return true
	default:
		return false
	}
}

type CodeInfo struct {
	Line int
	Col  int
}

// Expr is the tagged sum over expression node kinds the design notes ask
// for in place of a visitor-pattern tree: Type() discriminates, every node
// also carries CInfo() for diagnostics.
type Expr interface {
	Type() int
	CInfo() CodeInfo
}

type Const struct {
	Value    int64
	CodeInfo CodeInfo
}

func (c *Const) Type() int      { return ExprConst }
func (c *Const) CInfo() CodeInfo { return c.CodeInfo }

// Column is a (possibly unqualified) column reference. Table is empty until
// the planner's unqualified-column resolution fills it in (spec.md section
// 3); by the time an Expr tree reaches expr.Eval every Column must be
// qualified, except the synthetic LITERAL_SUM_i references the planner
// builds itself, which carry no Table and resolve by their bare name.
type Column struct {
	Table    string
	Name     string
	CodeInfo CodeInfo
}

func (c *Column) Type() int       { return ExprColumn }
func (c *Column) CInfo() CodeInfo { return c.CodeInfo }

func (c *Column) Qualified() string {
	if c.Table == "" {
		return c.Name
	}
	return c.Table + "." + c.Name
}

func (c *Column) String() string {
	return c.Qualified()
}

type Binary struct {
	Op       int
	L, R     Expr
	CodeInfo CodeInfo
}

func (b *Binary) Type() int       { return ExprBinary }
func (b *Binary) CInfo() CodeInfo { return b.CodeInfo }

// PrintExpr renders an Expr back to SQL-ish text, used in diagnostics and
// in matching a bare ORDER BY SUM(...) against its inner expression's
// textual form (spec.md section 4.9 step 9).
func PrintExpr(e Expr) string {
	if e == nil {
		return ""
	}
	switch e.Type() {
	case ExprConst:
		return fmt.Sprintf("%d", e.(*Const).Value)
	case ExprColumn:
		return e.(*Column).Qualified()
	case ExprBinary:
		b := e.(*Binary)
		return fmt.Sprintf("(%s %s %s)", PrintExpr(b.L), OpName(b.Op), PrintExpr(b.R))
	default:
		return "?"
	}
}

// ProjItem kinds.
const (
	ProjStar = iota
	ProjColumn
	ProjSum
)

// ProjItem is one SELECT list entry: *, a qualified column, or SUM(expr).
type ProjItem struct {
	Kind     int
	Col      *Column // set when Kind == ProjColumn
	SumArg   Expr    // set when Kind == ProjSum
	CodeInfo CodeInfo
}

// OrderItem is one ORDER BY key: a column, or a bare SUM(expr) that must be
// matched against a synthetic aggregate column (spec.md section 4.9 step 9).
type OrderItem struct {
	Col      *Column
	SumArg   Expr
	Desc     bool
	CodeInfo CodeInfo
}

// Select is the parser's sole output: the parts of one SELECT statement,
// unresolved — column qualification and predicate decomposition are the
// planner's job, not the parser's.
type Select struct {
	Distinct bool
	Proj     []*ProjItem
	From     []string
	Where    Expr
	GroupBy  []*Column
	OrderBy  []*OrderItem
}
