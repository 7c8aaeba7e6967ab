package parser

import (
	"slices"
	"strconv"

	"github.com/strager/cfront/ast"
	"github.com/strager/cfront/lexer"
)

type opInfo struct {
	prec       int
	rightAssoc bool
	prefix     bool
}

// operators lists every token that can sit on the operator stack as an
// operator. Markers and deferred identifiers are absent.
var operators = map[lexer.TokenType]opInfo{
	lexer.ASSIGN: {prec: 1, rightAssoc: true},

	lexer.AND: {prec: 5},
	lexer.OR:  {prec: 5},

	lexer.EQ: {prec: 7},
	lexer.GT: {prec: 7},
	lexer.LT: {prec: 7},
	lexer.GE: {prec: 7},
	lexer.LE: {prec: 7},

	lexer.BANG: {prec: 9, prefix: true},

	lexer.PLUS:  {prec: 10},
	lexer.MINUS: {prec: 10},

	lexer.ASTERISK: {prec: 20},
	lexer.SLASH:    {prec: 20},

	lexer.DEREF:     {prec: 100, rightAssoc: true, prefix: true},
	lexer.NEG:       {prec: 100, rightAssoc: true, prefix: true},
	lexer.AMPERSAND: {prec: 100, rightAssoc: true, prefix: true},
	lexer.PRE_INCR:  {prec: 100, prefix: true},
	lexer.PRE_DECR:  {prec: 100, prefix: true},
}

var binaryOps = map[lexer.TokenType]ast.BinaryOp{
	lexer.ASSIGN:   ast.OpAssign,
	lexer.AND:      ast.OpAnd,
	lexer.OR:       ast.OpOr,
	lexer.EQ:       ast.OpEq,
	lexer.GT:       ast.OpGt,
	lexer.LT:       ast.OpLt,
	lexer.GE:       ast.OpGe,
	lexer.LE:       ast.OpLe,
	lexer.PLUS:     ast.OpAdd,
	lexer.MINUS:    ast.OpSub,
	lexer.ASTERISK: ast.OpMul,
	lexer.SLASH:    ast.OpDiv,
}

var unaryOps = map[lexer.TokenType]ast.UnaryOp{
	lexer.DEREF:     ast.OpDeref,
	lexer.AMPERSAND: ast.OpAddrOf,
	lexer.BANG:      ast.OpNot,
	lexer.PRE_INCR:  ast.OpPreIncr,
	lexer.PRE_DECR:  ast.OpPreDecr,
	lexer.POST_INCR: ast.OpPostIncr,
	lexer.POST_DECR: ast.OpPostDecr,
}

// stackEntry is an operator-stack slot: an operator, a '(' '[' or ','
// marker, or an identifier waiting for its call arguments or index.
type stackEntry struct {
	tok lexer.Token
	// depth is the operand stack height when a marker was pushed.
	depth int
}

// exprParser is the state of one ParseExpression call.
type exprParser struct {
	p           *Parser
	terminators []lexer.TokenType
	operands    []ast.Expr
	operators   []stackEntry
	// prev is the classified type of the previous token, or "" at the
	// start of the expression.
	prev    lexer.TokenType
	nesting int
}

// ParseExpression parses tokens up to, but not including, the first
// terminator found outside any parentheses or brackets, and returns the
// single expression they form. Reaching EOF first is an error unless EOF is
// one of the terminators.
func (p *Parser) ParseExpression(terminators ...lexer.TokenType) (ast.Expr, error) {
	e := &exprParser{p: p, terminators: terminators}
	return e.parse()
}

func (e *exprParser) parse() (ast.Expr, error) {
	for {
		tok := e.p.peek()
		if e.nesting == 0 && slices.Contains(e.terminators, tok.Type) {
			return e.finish(*tok)
		}
		if tok.Type == lexer.EOF {
			return nil, e.errorf(*tok, "unexpected end of input")
		}
		if slices.Contains(e.terminators, tok.Type) && tok.Type != lexer.RPAREN && tok.Type != lexer.RBRACKET {
			return nil, e.errorf(*tok, "unexpected %s inside parentheses", tok)
		}
		e.classify(tok)
		if err := e.step(*tok); err != nil {
			return nil, err
		}
		e.prev = tok.Type
		e.p.advance()
	}
}

func (e *exprParser) errorf(tok lexer.Token, format string, args ...any) error {
	return e.p.errorf(ExpressionError, tok, format, args...)
}

// prefixLegal reports whether a prefix operator may appear at the current
// position: at the start, after an operator, or after '(' '[' or ','.
func (e *exprParser) prefixLegal() bool {
	switch e.prev {
	case "", lexer.LPAREN, lexer.LBRACKET, lexer.COMMA:
		return true
	}
	_, ok := operators[e.prev]
	return ok
}

// classify rewrites an ambiguous operator token in place. Tokens that were
// already reclassified are left alone.
func (e *exprParser) classify(tok *lexer.Token) {
	prefix := e.prefixLegal()
	switch tok.Type {
	case lexer.ASTERISK:
		if prefix {
			tok.Type = lexer.DEREF
		}
	case lexer.MINUS:
		if prefix {
			tok.Type = lexer.NEG
		}
	case lexer.PLUS_PLUS:
		if prefix {
			tok.Type = lexer.PRE_INCR
		} else {
			tok.Type = lexer.POST_INCR
		}
	case lexer.MINUS_MINUS:
		if prefix {
			tok.Type = lexer.PRE_DECR
		} else {
			tok.Type = lexer.POST_DECR
		}
	}
}

func (e *exprParser) step(tok lexer.Token) error {
	switch tok.Type {
	case lexer.NUMBER, lexer.STRING, lexer.CHAR, lexer.IDENT:
		if !e.prefixLegal() {
			return e.errorf(tok, "unexpected %s, expected an operator", tok)
		}
		if tok.Type == lexer.IDENT {
			if next := e.p.peekAt(1).Type; next == lexer.LPAREN || next == lexer.LBRACKET {
				e.pushOperator(tok)
				return nil
			}
		}
		x, err := e.literal(tok)
		if err != nil {
			return err
		}
		e.operands = append(e.operands, x)

	case lexer.POST_INCR, lexer.POST_DECR:
		x := e.popOperand()
		e.operands = append(e.operands, &ast.Unary{Op: unaryOps[tok.Type], X: x})

	case lexer.LPAREN:
		if !e.prefixLegal() && e.prev != lexer.IDENT {
			return e.errorf(tok, "unexpected '('")
		}
		e.nesting++
		e.pushOperator(tok)

	case lexer.LBRACKET:
		if e.prev != lexer.IDENT {
			return e.errorf(tok, "unexpected '[', only named arrays can be indexed")
		}
		e.nesting++
		e.pushOperator(tok)

	case lexer.RPAREN:
		return e.closeParen(tok)
	case lexer.RBRACKET:
		return e.closeBracket(tok)
	case lexer.COMMA:
		return e.comma(tok)

	default:
		info, ok := operators[tok.Type]
		if !ok {
			if lexer.IsKeyword(tok.Type) {
				return e.errorf(tok, "unexpected keyword %s in expression", tok)
			}
			return e.errorf(tok, "unexpected %s in expression", tok)
		}
		if info.prefix {
			if !e.prefixLegal() {
				return e.errorf(tok, "unexpected %s after an operand", tok)
			}
		} else {
			if e.prefixLegal() {
				return e.errorf(tok, "expected an operand before %s", tok)
			}
			if err := e.reduceFor(info); err != nil {
				return err
			}
		}
		e.pushOperator(tok)
	}
	return nil
}

func (e *exprParser) literal(tok lexer.Token) (ast.Expr, error) {
	switch tok.Type {
	case lexer.NUMBER:
		n, err := strconv.ParseInt(tok.Literal, 10, 64)
		if err != nil {
			return nil, e.errorf(tok, "integer literal %s out of range", tok.Literal)
		}
		return &ast.NumConst{Value: n}, nil
	case lexer.STRING:
		return &ast.StrConst{Value: tok.Literal}, nil
	case lexer.CHAR:
		return &ast.CharConst{Value: tok.Literal[0]}, nil
	default:
		return &ast.Ident{Name: tok.Literal}, nil
	}
}

func (e *exprParser) pushOperator(tok lexer.Token) {
	e.operators = append(e.operators, stackEntry{tok: tok, depth: len(e.operands)})
}

func (e *exprParser) popOperator() stackEntry {
	top := e.operators[len(e.operators)-1]
	e.operators = e.operators[:len(e.operators)-1]
	return top
}

// topIsOperator reports whether the operator stack's top is an operator
// rather than a marker or deferred identifier.
func (e *exprParser) topIsOperator() (opInfo, bool) {
	if len(e.operators) == 0 {
		return opInfo{}, false
	}
	info, ok := operators[e.operators[len(e.operators)-1].tok.Type]
	return info, ok
}

func (e *exprParser) popOperand() ast.Expr {
	x := e.operands[len(e.operands)-1]
	e.operands = e.operands[:len(e.operands)-1]
	return x
}

// reduceFor reduces every stacked operator that binds at least as tightly
// as the incoming binary operator in.
func (e *exprParser) reduceFor(in opInfo) error {
	for {
		top, ok := e.topIsOperator()
		if !ok {
			return nil
		}
		if top.prec > in.prec || (top.prec == in.prec && !in.rightAssoc) {
			if err := e.reduce(); err != nil {
				return err
			}
			continue
		}
		return nil
	}
}

// reduceAll reduces operators down to the nearest marker.
func (e *exprParser) reduceAll() error {
	for {
		if _, ok := e.topIsOperator(); !ok {
			return nil
		}
		if err := e.reduce(); err != nil {
			return err
		}
	}
}

// reduce pops one operator and its operands and pushes the resulting node.
func (e *exprParser) reduce() error {
	top := e.popOperator()
	info := operators[top.tok.Type]
	if len(e.operands)-top.depth < 1 {
		return e.errorf(top.tok, "missing operand for %s", top.tok)
	}

	if info.prefix {
		x := e.popOperand()
		if top.tok.Type == lexer.NEG {
			e.operands = append(e.operands, &ast.Binary{Op: ast.OpSub, L: &ast.NumConst{Value: 0}, R: x})
		} else {
			e.operands = append(e.operands, &ast.Unary{Op: unaryOps[top.tok.Type], X: x})
		}
		return nil
	}
	r := e.popOperand()
	l := e.popOperand()
	e.operands = append(e.operands, &ast.Binary{Op: binaryOps[top.tok.Type], L: l, R: r})
	return nil
}

func (e *exprParser) closeParen(tok lexer.Token) error {
	if e.nesting == 0 {
		return e.errorf(tok, "unmatched ')'")
	}
	if e.prefixLegal() && e.prev != lexer.LPAREN {
		return e.errorf(tok, "expected an operand before ')'")
	}
	if err := e.reduceAll(); err != nil {
		return err
	}

	commas := 0
	var open stackEntry
	for {
		top := e.popOperator()
		if top.tok.Type == lexer.COMMA {
			commas++
			continue
		}
		if top.tok.Type != lexer.LPAREN {
			return e.errorf(tok, "expected ']' to close %s at %s, found ')'", top.tok, top.tok.Pos)
		}
		open = top
		break
	}
	e.nesting--
	got := len(e.operands) - open.depth

	if n := len(e.operators); n > 0 && e.operators[n-1].tok.Type == lexer.IDENT {
		name := e.popOperator().tok
		if got != commas+1 && (got != 0 || commas != 0) {
			return e.errorf(tok, "malformed argument list in call to %s", name.Literal)
		}
		var args []ast.Expr
		if got > 0 {
			args = append(args, e.operands[open.depth:]...)
		}
		e.operands = e.operands[:open.depth]
		e.operands = append(e.operands, &ast.Call{Name: name.Literal, Args: args})
		return nil
	}

	if got != 1 {
		return e.errorf(tok, "empty parentheses")
	}
	return nil
}

func (e *exprParser) closeBracket(tok lexer.Token) error {
	if e.nesting == 0 {
		return e.errorf(tok, "unmatched ']'")
	}
	if e.prefixLegal() {
		if e.prev == lexer.LBRACKET {
			return e.errorf(tok, "empty index expression")
		}
		return e.errorf(tok, "expected an operand before ']'")
	}
	if err := e.reduceAll(); err != nil {
		return err
	}

	open := e.popOperator()
	if open.tok.Type != lexer.LBRACKET {
		return e.errorf(tok, "expected ')' to close %s at %s, found ']'", open.tok, open.tok.Pos)
	}
	e.nesting--
	if len(e.operands)-open.depth != 1 {
		return e.errorf(tok, "malformed index expression")
	}
	name := e.popOperator().tok
	index := e.popOperand()
	e.operands = append(e.operands, &ast.Index{Name: name.Literal, Index: index})
	return nil
}

func (e *exprParser) comma(tok lexer.Token) error {
	if e.nesting == 0 {
		return e.errorf(tok, "unexpected ','")
	}
	if e.prefixLegal() {
		return e.errorf(tok, "expected an operand before ','")
	}
	if err := e.reduceAll(); err != nil {
		return err
	}

	n := len(e.operators)
	switch top := e.operators[n-1].tok.Type; {
	case top == lexer.COMMA:
	case top == lexer.LPAREN && n >= 2 && e.operators[n-2].tok.Type == lexer.IDENT:
	default:
		return e.errorf(tok, "unexpected ',' outside an argument list")
	}
	e.pushOperator(tok)
	return nil
}

// finish drains the operator stack at the terminator and returns the one
// remaining operand.
func (e *exprParser) finish(end lexer.Token) (ast.Expr, error) {
	if e.prev == "" {
		return nil, e.errorf(end, "expected an expression, found %s", end)
	}
	if e.prefixLegal() {
		return nil, e.errorf(end, "expected an operand before %s", end)
	}
	if err := e.reduceAll(); err != nil {
		return nil, err
	}
	if len(e.operators) != 0 || len(e.operands) != 1 {
		return nil, e.errorf(end, "malformed expression: %d operands and %d operators left over", len(e.operands), len(e.operators))
	}
	return e.operands[0], nil
}
