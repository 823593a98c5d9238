package exec

import (
	"fmt"
	"strings"

	"github.com/csql-dev/csql/sql"
)

// Explain renders op's operator tree one line per node, indented by
// depth, for the -explain flag (SPEC_FULL.md section 4.12). It is a
// plain type switch rather than a Describe method on the Operator
// interface, so adding a diagnostic never widens the interface every
// operator has to implement.
func Explain(op Operator) string {
	var b strings.Builder
	explainNode(&b, op, 0)
	return b.String()
}

func explainNode(b *strings.Builder, op Operator, depth int) {
	indent := strings.Repeat("  ", depth)
	switch n := op.(type) {
	case *Scan:
		fmt.Fprintf(b, "%sScan(%s) -> %s\n", indent, n.path, n.mapping)
	case *Select:
		fmt.Fprintf(b, "%sSelect(%s)\n", indent, sql.PrintExpr(n.predicate))
		explainNode(b, n.child, depth+1)
	case *Join:
		fmt.Fprintf(b, "%sJoin(%s)\n", indent, sql.PrintExpr(n.predicate))
		explainNode(b, n.left, depth+1)
		explainNode(b, n.right, depth+1)
	case *LiteralAppend:
		fmt.Fprintf(b, "%sLiteralAppend(%d columns)\n", indent, len(n.columns))
		explainNode(b, n.child, depth+1)
	case *Sum:
		fmt.Fprintf(b, "%sSum(%d group keys, %d sums) -> %s\n", indent, len(n.groupBy), len(n.sums), n.outMap)
		explainNode(b, n.child, depth+1)
	case *Sort:
		fmt.Fprintf(b, "%sSort(%d keys)\n", indent, len(n.keys))
		explainNode(b, n.child, depth+1)
	case *Projection:
		fmt.Fprintf(b, "%sProjection -> %s\n", indent, n.mapping)
		explainNode(b, n.child, depth+1)
	case *DuplicateElimination:
		fmt.Fprintf(b, "%sDuplicateElimination\n", indent)
		explainNode(b, n.child, depth+1)
	default:
		fmt.Fprintf(b, "%s%T\n", indent, op)
	}
}
