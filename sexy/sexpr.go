// Package sexy reads the s-expression notation used by the Markdown test
// suites and matches it against rendered ASTs.
package sexy

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/strager/cfront/ast"
)

// NodeType represents the type of a Node
type NodeType int

const (
	NodeSymbol NodeType = iota
	NodeString
	NodeInteger
	NodeEllipsis
	NodeList
)

func (t NodeType) String() string {
	switch t {
	case NodeSymbol:
		return "symbol"
	case NodeString:
		return "string"
	case NodeInteger:
		return "integer"
	case NodeEllipsis:
		return "ellipsis"
	case NodeList:
		return "list"
	default:
		return fmt.Sprintf("NodeType(%d)", int(t))
	}
}

// Node is one datum.
type Node struct {
	Type  NodeType
	Text  string  // NodeSymbol, NodeString, NodeInteger
	Items []*Node // NodeList
}

func (n *Node) String() string {
	switch n.Type {
	case NodeSymbol, NodeInteger:
		return n.Text
	case NodeString:
		return ast.Quote(n.Text)
	case NodeEllipsis:
		return "..."
	case NodeList:
		parts := make([]string, len(n.Items))
		for i, item := range n.Items {
			parts[i] = item.String()
		}
		return "(" + strings.Join(parts, " ") + ")"
	default:
		return fmt.Sprintf("UNKNOWN_NODE_TYPE_%d", n.Type)
	}
}

// Helper constructors for common node types
func NewSymbol(name string) *Node {
	return &Node{Type: NodeSymbol, Text: name}
}

func NewString(value string) *Node {
	return &Node{Type: NodeString, Text: value}
}

func NewInteger(text string) *Node {
	return &Node{Type: NodeInteger, Text: text}
}

func NewEllipsis() *Node {
	return &Node{Type: NodeEllipsis}
}

func NewList(items ...*Node) *Node {
	return &Node{Type: NodeList, Items: items}
}

// IsAtom checks if the node is an atomic value
func (n *Node) IsAtom() bool {
	return n.Type != NodeList
}

type parser struct {
	lexer        *lexer
	currentToken token
}

// Parse parses input holding exactly one datum.
func Parse(input string) (*Node, error) {
	nodes, err := ParseAll(input)
	if err != nil {
		return nil, err
	}
	if len(nodes) != 1 {
		return nil, fmt.Errorf("expected exactly one datum, found %d", len(nodes))
	}
	return nodes[0], nil
}

// ParseAll parses every datum in input, in order.
func ParseAll(input string) ([]*Node, error) {
	p := &parser{lexer: newLexer(input)}
	if err := p.nextToken(); err != nil {
		return nil, err
	}

	var nodes []*Node
	for p.currentToken.Type != tokenEOF {
		node, err := p.parseDatum()
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
	}
	return nodes, nil
}

func (p *parser) nextToken() error {
	tok, err := p.lexer.nextToken()
	if err != nil {
		return err
	}
	p.currentToken = tok
	return nil
}

func (p *parser) parseDatum() (*Node, error) {
	tok := p.currentToken
	var node *Node
	switch tok.Type {
	case tokenSymbol:
		node = NewSymbol(tok.Value)
	case tokenString:
		node = NewString(tok.Value)
	case tokenInteger:
		node = NewInteger(tok.Value)
	case tokenEllipsis:
		node = NewEllipsis()
	case tokenLParen:
		return p.parseList()
	default:
		return nil, fmt.Errorf("offset %d: unexpected token: %s", tok.Position, tok.Type)
	}
	if err := p.nextToken(); err != nil {
		return nil, err
	}
	return node, nil
}

func (p *parser) parseList() (*Node, error) {
	open := p.currentToken
	if err := p.nextToken(); err != nil { // consume '('
		return nil, err
	}

	list := NewList()
	for p.currentToken.Type != tokenRParen {
		if p.currentToken.Type == tokenEOF {
			return nil, fmt.Errorf("offset %d: unterminated list", open.Position)
		}
		item, err := p.parseDatum()
		if err != nil {
			return nil, err
		}
		list.Items = append(list.Items, item)
	}
	if err := p.nextToken(); err != nil { // consume ')'
		return nil, err
	}
	return list, nil
}

type tokenType int

const (
	tokenEOF tokenType = iota
	tokenSymbol
	tokenString
	tokenInteger
	tokenEllipsis
	tokenLParen
	tokenRParen
)

func (t tokenType) String() string {
	switch t {
	case tokenEOF:
		return "EOF"
	case tokenSymbol:
		return "symbol"
	case tokenString:
		return "string"
	case tokenInteger:
		return "integer"
	case tokenEllipsis:
		return "ellipsis"
	case tokenLParen:
		return "'('"
	case tokenRParen:
		return "')'"
	default:
		return fmt.Sprintf("unknown token %d", int(t))
	}
}

type token struct {
	Type     tokenType
	Value    string
	Position int
}

type lexer struct {
	input    string
	position int
}

func newLexer(input string) *lexer {
	return &lexer{input: input}
}

func (l *lexer) peek(n int) byte {
	if l.position+n >= len(l.input) {
		return 0
	}
	return l.input[l.position+n]
}

func (l *lexer) nextToken() (token, error) {
	for l.position < len(l.input) {
		pos := l.position
		c := l.input[pos]

		switch {
		case unicode.IsSpace(rune(c)):
			l.position++
		case c == ';':
			for l.position < len(l.input) && l.input[l.position] != '\n' {
				l.position++
			}
		case c == '(':
			l.position++
			return token{Type: tokenLParen, Value: "(", Position: pos}, nil
		case c == ')':
			l.position++
			return token{Type: tokenRParen, Value: ")", Position: pos}, nil
		case c == '"':
			str, err := l.readString()
			if err != nil {
				return token{}, err
			}
			return token{Type: tokenString, Value: str, Position: pos}, nil
		case c == '.':
			if l.peek(1) == '.' && l.peek(2) == '.' {
				l.position += 3
				return token{Type: tokenEllipsis, Value: "...", Position: pos}, nil
			}
			return token{}, fmt.Errorf("offset %d: unexpected character '.'", pos)
		case isDigit(c) || ((c == '+' || c == '-') && isDigit(l.peek(1))):
			l.position++
			for isDigit(l.peek(0)) {
				l.position++
			}
			return token{Type: tokenInteger, Value: l.input[pos:l.position], Position: pos}, nil
		case isSymbolChar(c):
			for isSymbolChar(l.peek(0)) {
				l.position++
			}
			return token{Type: tokenSymbol, Value: l.input[pos:l.position], Position: pos}, nil
		default:
			return token{}, fmt.Errorf("offset %d: unexpected character '%c'", pos, c)
		}
	}
	return token{Type: tokenEOF, Position: l.position}, nil
}

// readString reads a double-quoted string. The escapes are \" \\ \n \t
// and \0.
func (l *lexer) readString() (string, error) {
	start := l.position
	l.position++ // skip opening quote

	var sb strings.Builder
	for {
		if l.position >= len(l.input) {
			return "", fmt.Errorf("offset %d: unterminated string", start)
		}
		c := l.input[l.position]
		l.position++
		switch c {
		case '"':
			return sb.String(), nil
		case '\\':
			if l.position >= len(l.input) {
				return "", fmt.Errorf("offset %d: unterminated string", start)
			}
			esc := l.input[l.position]
			l.position++
			switch esc {
			case '"', '\\':
				sb.WriteByte(esc)
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			case '0':
				sb.WriteByte(0)
			default:
				return "", fmt.Errorf("offset %d: invalid escape sequence: \\%c", l.position-2, esc)
			}
		default:
			sb.WriteByte(c)
		}
	}
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isSymbolChar(c byte) bool {
	return unicode.IsLetter(rune(c)) || isDigit(c) || strings.IndexByte("-_+*/<>=!&|?", c) >= 0
}
