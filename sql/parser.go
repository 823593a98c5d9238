package sql

import (
	"fmt"

	"github.com/csql-dev/csql/diag"
)

// Parser is a hand-written recursive-descent parser over the grammar fixed
// by spec.md section 6, in the same self-receiver, stage-tagged-error style
// as the teacher's own sql.Parser.
type Parser struct {
	lexer *Lexer
}

func NewParser(src string) *Parser {
	return &Parser{lexer: NewLexer(src)}
}

func (self *Parser) tok() int { return self.lexer.Token }

func (self *Parser) err(format string, args ...interface{}) error {
	line, col := self.lexer.pos()
	return diag.Errorf(diag.Parse, "parse", "at line %d col %d: %s", line, col, fmt.Sprintf(format, args...))
}

func (self *Parser) expect(tk int) error {
	if self.tok() != tk {
		return self.err("expected %s but found %s", TokenName(tk), TokenName(self.tok()))
	}
	self.lexer.Next()
	return nil
}

// Parse consumes the whole input as a single SELECT statement, the only
// statement form spec.md section 6 admits.
func (self *Parser) Parse() (*Select, error) {
	if self.tok() == TkError {
		return nil, self.err("%s", self.lexer.Lexeme.Text)
	}
	s, err := self.parseSelect()
	if err != nil {
		return nil, err
	}
	if self.tok() != TkEof {
		return nil, self.err("unexpected trailing input at %s", TokenName(self.tok()))
	}
	return s, nil
}

func (self *Parser) parseSelect() (*Select, error) {
	if err := self.expect(TkSelect); err != nil {
		return nil, err
	}

	s := &Select{}
	if self.tok() == TkDistinct {
		s.Distinct = true
		self.lexer.Next()
	}

	proj, err := self.parseProjList()
	if err != nil {
		return nil, err
	}
	s.Proj = proj

	if err := self.expect(TkFrom); err != nil {
		return nil, err
	}
	from, err := self.parseFromList()
	if err != nil {
		return nil, err
	}
	s.From = from

	if self.tok() == TkWhere {
		self.lexer.Next()
		where, err := self.parseExpr()
		if err != nil {
			return nil, err
		}
		s.Where = where
	}

	if self.tok() == TkGroup {
		self.lexer.Next()
		if err := self.expect(TkBy); err != nil {
			return nil, err
		}
		cols, err := self.parseColumnList()
		if err != nil {
			return nil, err
		}
		s.GroupBy = cols
	}

	if self.tok() == TkOrder {
		self.lexer.Next()
		if err := self.expect(TkBy); err != nil {
			return nil, err
		}
		items, err := self.parseOrderList()
		if err != nil {
			return nil, err
		}
		s.OrderBy = items
	}

	return s, nil
}

func (self *Parser) parseProjList() ([]*ProjItem, error) {
	if self.tok() == TkMul {
		self.lexer.Next()
		return []*ProjItem{{Kind: ProjStar}}, nil
	}

	var items []*ProjItem
	for {
		item, err := self.parseProjItem()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
		if self.tok() != TkComma {
			break
		}
		self.lexer.Next()
	}
	return items, nil
}

func (self *Parser) parseProjItem() (*ProjItem, error) {
	if self.tok() == TkSum {
		self.lexer.Next()
		if err := self.expect(TkLPar); err != nil {
			return nil, err
		}
		arg, err := self.parseArith()
		if err != nil {
			return nil, err
		}
		if err := self.expect(TkRPar); err != nil {
			return nil, err
		}
		return &ProjItem{Kind: ProjSum, SumArg: arg}, nil
	}

	col, err := self.parseColumn()
	if err != nil {
		return nil, err
	}
	return &ProjItem{Kind: ProjColumn, Col: col}, nil
}

func (self *Parser) parseFromList() ([]string, error) {
	var names []string
	for {
		if self.tok() != TkId {
			return nil, self.err("expected table name, found %s", TokenName(self.tok()))
		}
		names = append(names, self.lexer.Lexeme.Text)
		self.lexer.Next()
		if self.tok() != TkComma {
			break
		}
		self.lexer.Next()
	}
	return names, nil
}

func (self *Parser) parseColumnList() ([]*Column, error) {
	var cols []*Column
	for {
		col, err := self.parseColumn()
		if err != nil {
			return nil, err
		}
		cols = append(cols, col)
		if self.tok() != TkComma {
			break
		}
		self.lexer.Next()
	}
	return cols, nil
}

func (self *Parser) parseColumn() (*Column, error) {
	if self.tok() != TkId {
		return nil, self.err("expected column name, found %s", TokenName(self.tok()))
	}
	first := self.lexer.Lexeme.Text
	line, col := self.lexer.pos()
	self.lexer.Next()

	if self.tok() == TkDot {
		self.lexer.Next()
		if self.tok() != TkId {
			return nil, self.err("expected column name after '.', found %s", TokenName(self.tok()))
		}
		name := self.lexer.Lexeme.Text
		self.lexer.Next()
		return &Column{Table: first, Name: name, CodeInfo: CodeInfo{Line: line, Col: col}}, nil
	}
	return &Column{Name: first, CodeInfo: CodeInfo{Line: line, Col: col}}, nil
}

func (self *Parser) parseOrderList() ([]*OrderItem, error) {
	var items []*OrderItem
	for {
		item, err := self.parseOrderItem()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
		if self.tok() != TkComma {
			break
		}
		self.lexer.Next()
	}
	return items, nil
}

func (self *Parser) parseOrderItem() (*OrderItem, error) {
	item := &OrderItem{}
	if self.tok() == TkSum {
		self.lexer.Next()
		if err := self.expect(TkLPar); err != nil {
			return nil, err
		}
		arg, err := self.parseArith()
		if err != nil {
			return nil, err
		}
		if err := self.expect(TkRPar); err != nil {
			return nil, err
		}
		item.SumArg = arg
	} else {
		col, err := self.parseColumn()
		if err != nil {
			return nil, err
		}
		item.Col = col
	}

	switch self.tok() {
	case TkAsc:
		self.lexer.Next()
	case TkDesc:
		item.Desc = true
		self.lexer.Next()
	}
	return item, nil
}

// ---- expression grammar ----------------------------------------------
//
// expr       := or_term (OR or_term)*
// or_term    := and_term (AND and_term)*
// and_term   := comparison
// comparison := arith (cmp_op arith)?
// arith      := term (ADD term)*
// term       := factor (MUL factor)*
// factor     := '(' expr ')' | INT | column
//
// AND binds tighter than OR, the usual SQL precedence. The planner, not the
// parser, is what refuses to decompose an OR below a single atom (spec.md
// section 4.9 step 3) — syntactically OR is perfectly legal here.

func (self *Parser) parseExpr() (Expr, error) {
	left, err := self.parseAndTerm()
	if err != nil {
		return nil, err
	}
	for self.tok() == TkOr {
		line, col := self.lexer.pos()
		self.lexer.Next()
		right, err := self.parseAndTerm()
		if err != nil {
			return nil, err
		}
		left = &Binary{Op: OpOr, L: left, R: right, CodeInfo: CodeInfo{Line: line, Col: col}}
	}
	return left, nil
}

func (self *Parser) parseAndTerm() (Expr, error) {
	left, err := self.parseComparison()
	if err != nil {
		return nil, err
	}
	for self.tok() == TkAnd {
		line, col := self.lexer.pos()
		self.lexer.Next()
		right, err := self.parseComparison()
		if err != nil {
			return nil, err
		}
		left = &Binary{Op: OpAnd, L: left, R: right, CodeInfo: CodeInfo{Line: line, Col: col}}
	}
	return left, nil
}

func cmpOp(tk int) (int, bool) {
	switch tk {
	case TkEq:
		return OpEq, true
	case TkNe:
		return OpNe, true
	case TkLt:
		return OpLt, true
	case TkLe:
		return OpLe, true
	case TkGt:
		return OpGt, true
	case TkGe:
		return OpGe, true
	default:
		return 0, false
	}
}

func (self *Parser) parseComparison() (Expr, error) {
	left, err := self.parseArith()
	if err != nil {
		return nil, err
	}
	if op, ok := cmpOp(self.tok()); ok {
		line, col := self.lexer.pos()
		self.lexer.Next()
		right, err := self.parseArith()
		if err != nil {
			return nil, err
		}
		return &Binary{Op: op, L: left, R: right, CodeInfo: CodeInfo{Line: line, Col: col}}, nil
	}
	return left, nil
}

func (self *Parser) parseArith() (Expr, error) {
	left, err := self.parseTerm()
	if err != nil {
		return nil, err
	}
	for self.tok() == TkAdd {
		line, col := self.lexer.pos()
		self.lexer.Next()
		right, err := self.parseTerm()
		if err != nil {
			return nil, err
		}
		left = &Binary{Op: OpAdd, L: left, R: right, CodeInfo: CodeInfo{Line: line, Col: col}}
	}
	return left, nil
}

func (self *Parser) parseTerm() (Expr, error) {
	left, err := self.parseFactor()
	if err != nil {
		return nil, err
	}
	for self.tok() == TkMul {
		line, col := self.lexer.pos()
		self.lexer.Next()
		right, err := self.parseFactor()
		if err != nil {
			return nil, err
		}
		left = &Binary{Op: OpMul, L: left, R: right, CodeInfo: CodeInfo{Line: line, Col: col}}
	}
	return left, nil
}

func (self *Parser) parseFactor() (Expr, error) {
	switch self.tok() {
	case TkLPar:
		self.lexer.Next()
		e, err := self.parseExpr()
		if err != nil {
			return nil, err
		}
		if err := self.expect(TkRPar); err != nil {
			return nil, err
		}
		return e, nil
	case TkInt:
		line, col := self.lexer.pos()
		v := self.lexer.Lexeme.Int
		self.lexer.Next()
		return &Const{Value: v, CodeInfo: CodeInfo{Line: line, Col: col}}, nil
	case TkId:
		return self.parseColumn()
	default:
		return nil, self.err("expected '(', an integer, or a column, found %s", TokenName(self.tok()))
	}
}
