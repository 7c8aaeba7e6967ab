package parser

import (
	"github.com/strager/cfront/ast"
	"github.com/strager/cfront/ctypes"
	"github.com/strager/cfront/lexer"
)

// ParseProgram parses statements until EOF.
func (p *Parser) ParseProgram() ([]ast.Stmt, error) {
	var stmts []ast.Stmt
	for !p.AtEOF() {
		stmt, err := p.ParseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	return stmts, nil
}

// ParseStatement parses one statement, including its terminating ';' or
// '}'.
func (p *Parser) ParseStatement() (ast.Stmt, error) {
	switch tok := *p.peek(); tok.Type {
	case lexer.TYPEDEF:
		return p.parseTypedef()
	case lexer.RETURN:
		return p.parseReturn()
	case lexer.IF:
		return p.parseIf()
	case lexer.LBRACE:
		return p.parseBlock()
	case lexer.EOF:
		return nil, p.errorf(StatementError, tok, "expected a statement, found end of input")
	}

	typ, err := p.TryParseType()
	if err != nil {
		return nil, err
	}
	if typ == nil {
		return p.parseExprStatement()
	}
	return p.parseDeclaration(typ)
}

func (p *Parser) parseReturn() (ast.Stmt, error) {
	p.advance() // return
	value, err := p.ParseExpression(lexer.SEMICOLON, lexer.EOF)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.SEMICOLON, StatementError, "';' after return value"); err != nil {
		return nil, err
	}
	return &ast.Return{Value: value}, nil
}

func (p *Parser) parseIf() (ast.Stmt, error) {
	p.advance() // if
	if _, err := p.expect(lexer.LPAREN, StatementError, "'(' after 'if'"); err != nil {
		return nil, err
	}
	cond, err := p.ParseExpression(lexer.RPAREN, lexer.EOF)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.RPAREN, StatementError, "')' after if condition"); err != nil {
		return nil, err
	}

	then, err := p.ParseStatement()
	if err != nil {
		return nil, err
	}
	stmt := &ast.If{Cond: cond, Then: then}
	if p.peek().Type == lexer.ELSE {
		p.advance()
		if stmt.Else, err = p.ParseStatement(); err != nil {
			return nil, err
		}
	}
	return stmt, nil
}

func (p *Parser) parseBlock() (ast.Stmt, error) {
	open := p.advance() // {
	block := &ast.Block{}
	for p.peek().Type != lexer.RBRACE {
		if p.AtEOF() {
			return nil, p.errorf(StatementError, *p.peek(), "expected '}' to close block opened at %s", open.Pos)
		}
		stmt, err := p.ParseStatement()
		if err != nil {
			return nil, err
		}
		block.Stmts = append(block.Stmts, stmt)
	}
	p.advance()
	return block, nil
}

func (p *Parser) parseExprStatement() (ast.Stmt, error) {
	x, err := p.ParseExpression(lexer.SEMICOLON, lexer.EOF)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.SEMICOLON, StatementError, "';' after expression"); err != nil {
		return nil, err
	}
	return &ast.ExprStmt{X: x}, nil
}

// parseDeclaration parses what follows a leading type: a variable
// declaration with or without initializer, or a bare struct declaration.
func (p *Parser) parseDeclaration(typ *ctypes.Type) (ast.Stmt, error) {
	tok := *p.peek()
	if tok.Type == lexer.SEMICOLON && typ.Kind == ctypes.Struct {
		p.advance()
		return &ast.TypeDecl{Type: typ}, nil
	}
	if tok.Type != lexer.IDENT {
		return nil, p.errorf(StatementError, tok, "expected identifier after type %s, found %s", typ, tok)
	}
	p.advance()

	switch next := *p.peek(); next.Type {
	case lexer.SEMICOLON:
		p.advance()
		return &ast.Declaration{Type: typ, Name: tok.Literal}, nil
	case lexer.ASSIGN:
		p.advance()
		value, err := p.ParseExpression(lexer.SEMICOLON, lexer.EOF)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.SEMICOLON, StatementError, "';' after initializer of "+tok.Literal); err != nil {
			return nil, err
		}
		return &ast.Assignment{Type: typ, Name: tok.Literal, Value: value}, nil
	case lexer.LPAREN:
		return nil, p.errorf(StatementError, next, "function definitions are not supported")
	default:
		return nil, p.errorf(StatementError, next, "expected ';', '=' or '(' after %s, found %s", tok.Literal, next)
	}
}
