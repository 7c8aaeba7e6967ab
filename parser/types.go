package parser

import (
	"github.com/strager/cfront/ast"
	"github.com/strager/cfront/ctypes"
	"github.com/strager/cfront/lexer"
)

// TryParseType parses a type at the cursor. It returns a nil type and a
// nil error, with the cursor unchanged, if the current token cannot start
// a type.
func (p *Parser) TryParseType() (*ctypes.Type, error) {
	start := p.pos
	typ, err := p.parseBaseType()
	if err != nil {
		return nil, err
	}
	if typ == nil {
		p.pos = start
		return nil, nil
	}
	for p.peek().Type == lexer.ASTERISK {
		p.advance()
		typ = ctypes.PointerTo(typ)
	}
	return typ, nil
}

// ParseType is TryParseType for positions where a type is required.
func (p *Parser) ParseType() (*ctypes.Type, error) {
	tok := *p.peek()
	typ, err := p.TryParseType()
	if err != nil {
		return nil, err
	}
	if typ == nil {
		if tok.Type == lexer.IDENT {
			return nil, p.errorf(TypeError, tok, "unknown type name %s", tok.Literal)
		}
		return nil, p.errorf(TypeError, tok, "expected a type, found %s", tok)
	}
	return typ, nil
}

func (p *Parser) parseBaseType() (*ctypes.Type, error) {
	tok := *p.peek()
	switch tok.Type {
	case lexer.VOID:
		p.advance()
		return p.reg.Void().Copy(), nil
	case lexer.CHAR_KW:
		p.advance()
		return p.reg.Char().Copy(), nil
	case lexer.INT:
		p.advance()
		return p.reg.Int().Copy(), nil
	case lexer.LONG, lexer.FILE:
		return nil, p.errorf(TypeError, tok, "unsupported type %s", tok.Literal)
	case lexer.IDENT:
		typ := p.reg.Lookup(tok.Literal)
		if typ == nil {
			return nil, nil
		}
		p.advance()
		if typ.Kind == ctypes.Struct {
			return ctypes.StructType(p.reg.StructDef(typ.Struct)), nil
		}
		return typ.Copy(), nil
	case lexer.STRUCT:
		return p.parseStructType()
	default:
		return nil, nil
	}
}

// parseStructType parses "struct NAME", "struct NAME { ... }" or
// "struct { ... }". A named struct is registered before its body is
// parsed, so fields can point back at it.
func (p *Parser) parseStructType() (*ctypes.Type, error) {
	p.advance() // struct

	var def *ctypes.StructDef
	switch tok := *p.peek(); tok.Type {
	case lexer.IDENT:
		p.advance()
		def = p.reg.LookupStruct(tok.Literal)
		if def == nil {
			def = p.reg.DeclareStruct(tok.Literal)
		}
		if p.peek().Type != lexer.LBRACE {
			return ctypes.StructType(def), nil
		}
	case lexer.LBRACE:
		def = p.reg.DeclareStruct("")
	default:
		return nil, p.errorf(TypeError, tok, "expected struct name or '{' after 'struct', found %s", tok)
	}

	lbrace := p.advance()
	if def.Complete {
		return nil, p.errorf(TypeError, lbrace, "redefinition of %s", ctypes.StructType(def))
	}
	fields, err := p.parseFields(def)
	if err != nil {
		return nil, err
	}
	repairSelfReferences(def, fields)
	if err := p.reg.CompleteStruct(def, fields); err != nil {
		return nil, p.errorf(TypeError, lbrace, "%s", err.Error())
	}
	return ctypes.StructType(def), nil
}

// parseFields parses "TYPE NAME ;" members up to and including the
// closing brace.
func (p *Parser) parseFields(def *ctypes.StructDef) ([]ctypes.Field, error) {
	var fields []ctypes.Field
	seen := make(map[string]bool)
	for {
		tok := *p.peek()
		switch tok.Type {
		case lexer.RBRACE:
			p.advance()
			return fields, nil
		case lexer.EOF:
			return nil, p.errorf(TypeError, tok, "unterminated body of %s", ctypes.StructType(def))
		}

		typ, err := p.ParseType()
		if err != nil {
			return nil, err
		}
		name, err := p.expect(lexer.IDENT, TypeError, "field name")
		if err != nil {
			return nil, err
		}
		if seen[name.Literal] {
			return nil, p.errorf(TypeError, name, "duplicate field %s in %s", name.Literal, ctypes.StructType(def))
		}
		if !p.reg.IsComplete(typ) {
			return nil, p.errorf(TypeError, name, "field %s has incomplete type %s", name.Literal, typ)
		}
		if _, err := p.expect(lexer.SEMICOLON, TypeError, "';' after field "+name.Literal); err != nil {
			return nil, err
		}
		seen[name.Literal] = true
		fields = append(fields, ctypes.Field{Name: name.Literal, Type: typ})
	}
}

// repairSelfReferences points every pointer field whose target names the
// enclosing struct at def itself. Fields resolve the struct by ID while
// they are parsed, so this only asserts that they already do.
func repairSelfReferences(def *ctypes.StructDef, fields []ctypes.Field) {
	if def.Name == "" {
		return
	}
	for _, f := range fields {
		if !f.Type.IsPointer() {
			continue
		}
		if base := f.Type.Base(); base.Kind == ctypes.Struct && base.Name == def.Name {
			base.Struct = def.ID
		}
	}
}

// parseTypedef parses "typedef TYPE NAME ;" and registers NAME as an alias.
func (p *Parser) parseTypedef() (ast.Stmt, error) {
	p.advance() // typedef
	typ, err := p.ParseType()
	if err != nil {
		return nil, err
	}
	name, err := p.expect(lexer.IDENT, StatementError, "typedef name after "+typ.String())
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.SEMICOLON, StatementError, "';' after typedef"); err != nil {
		return nil, err
	}
	p.reg.Register(ctypes.AliasOf(name.Literal, typ.Copy()))
	return &ast.Typedef{Type: typ, Name: name.Literal}, nil
}
