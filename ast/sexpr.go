package ast

import (
	"strconv"
	"strings"
)

// ToSExpr converts an AST node to s-expression string representation.
func ToSExpr(node Node) string {
	var sb strings.Builder
	writeSExpr(&sb, node)
	return sb.String()
}

func writeSExpr(sb *strings.Builder, node Node) {
	switch n := node.(type) {
	case *NumConst:
		sb.WriteString("(integer " + strconv.FormatInt(n.Value, 10) + ")")
	case *StrConst:
		sb.WriteString("(string " + Quote(n.Value) + ")")
	case *CharConst:
		sb.WriteString("(char " + Quote(string([]byte{n.Value})) + ")")
	case *Ident:
		sb.WriteString("(ident " + Quote(n.Name) + ")")
	case *Call:
		sb.WriteString("(call " + Quote(n.Name))
		for _, arg := range n.Args {
			sb.WriteString(" ")
			writeSExpr(sb, arg)
		}
		sb.WriteString(")")
	case *Index:
		sb.WriteString("(idx " + Quote(n.Name) + " ")
		writeSExpr(sb, n.Index)
		sb.WriteString(")")
	case *Unary:
		if n.Op.IsPostfix() {
			sb.WriteString("(postfix ")
		} else {
			sb.WriteString("(unary ")
		}
		sb.WriteString(Quote(n.Op.String()) + " ")
		writeSExpr(sb, n.X)
		sb.WriteString(")")
	case *Binary:
		sb.WriteString("(binary " + Quote(n.Op.String()) + " ")
		writeSExpr(sb, n.L)
		sb.WriteString(" ")
		writeSExpr(sb, n.R)
		sb.WriteString(")")

	case *Declaration:
		sb.WriteString("(decl " + n.Type.SExpr() + " " + Quote(n.Name) + ")")
	case *Assignment:
		sb.WriteString("(assign " + n.Type.SExpr() + " " + Quote(n.Name) + " ")
		writeSExpr(sb, n.Value)
		sb.WriteString(")")
	case *ExprStmt:
		sb.WriteString("(expr ")
		writeSExpr(sb, n.X)
		sb.WriteString(")")
	case *Typedef:
		sb.WriteString("(typedef " + n.Type.SExpr() + " " + Quote(n.Name) + ")")
	case *TypeDecl:
		sb.WriteString("(typedecl " + n.Type.SExpr() + ")")
	case *Return:
		sb.WriteString("(return ")
		writeSExpr(sb, n.Value)
		sb.WriteString(")")
	case *If:
		sb.WriteString("(if ")
		writeSExpr(sb, n.Cond)
		sb.WriteString(" ")
		writeSExpr(sb, n.Then)
		if n.Else != nil {
			sb.WriteString(" ")
			writeSExpr(sb, n.Else)
		}
		sb.WriteString(")")
	case *Block:
		sb.WriteString("(block")
		for _, stmt := range n.Stmts {
			sb.WriteString(" ")
			writeSExpr(sb, stmt)
		}
		sb.WriteString(")")
	default:
		panic("ast: unhandled node type in ToSExpr")
	}
}

// Quote wraps s in double quotes, escaping backslash, quote, newline, tab
// and NUL, which is the string syntax the sexy reader accepts.
func Quote(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '\\':
			sb.WriteString(`\\`)
		case '"':
			sb.WriteString(`\"`)
		case '\n':
			sb.WriteString(`\n`)
		case '\t':
			sb.WriteString(`\t`)
		case 0:
			sb.WriteString(`\0`)
		default:
			sb.WriteByte(c)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}
