package ast

import (
	"strconv"
	"strings"
)

// Format renders a statement as one line of debug text that mirrors the
// source, e.g.
//
//	ASSIGN int x = (1 + 2)
//	IF (a > b) THEN RETURN a ELSE RETURN b
func Format(stmt Stmt) string {
	var sb strings.Builder
	formatStmt(&sb, stmt)
	return sb.String()
}

// FormatExpr renders an expression in source form. Binary operators are
// always parenthesized so the tree shape is visible.
func FormatExpr(expr Expr) string {
	var sb strings.Builder
	formatExpr(&sb, expr)
	return sb.String()
}

func formatStmt(sb *strings.Builder, stmt Stmt) {
	switch s := stmt.(type) {
	case *Declaration:
		formatStmt(sb, s.AsAssignment())
	case *Assignment:
		sb.WriteString("ASSIGN " + s.Type.String() + " " + s.Name + " = ")
		formatExpr(sb, s.Value)
	case *ExprStmt:
		sb.WriteString("EVAL ")
		formatExpr(sb, s.X)
	case *Typedef:
		sb.WriteString("TYPEDEF " + s.Type.String() + " TO " + s.Name)
	case *TypeDecl:
		sb.WriteString("DECLARE " + s.Type.String())
	case *Return:
		sb.WriteString("RETURN ")
		formatExpr(sb, s.Value)
	case *If:
		sb.WriteString("IF ")
		formatExpr(sb, s.Cond)
		sb.WriteString(" THEN ")
		formatStmt(sb, s.Then)
		if s.Else != nil {
			sb.WriteString(" ELSE ")
			formatStmt(sb, s.Else)
		}
	case *Block:
		sb.WriteString("{")
		for i, inner := range s.Stmts {
			if i > 0 {
				sb.WriteString(";")
			}
			sb.WriteString(" ")
			formatStmt(sb, inner)
		}
		sb.WriteString(" }")
	default:
		panic("ast: unhandled statement type in Format")
	}
}

func formatExpr(sb *strings.Builder, expr Expr) {
	switch e := expr.(type) {
	case *NumConst:
		sb.WriteString(strconv.FormatInt(e.Value, 10))
	case *StrConst:
		sb.WriteString(Quote(e.Value))
	case *CharConst:
		q := Quote(string([]byte{e.Value}))
		sb.WriteString("'" + q[1:len(q)-1] + "'")
	case *Ident:
		sb.WriteString(e.Name)
	case *Call:
		sb.WriteString(e.Name + "(")
		for i, arg := range e.Args {
			if i > 0 {
				sb.WriteString(", ")
			}
			formatExpr(sb, arg)
		}
		sb.WriteString(")")
	case *Index:
		sb.WriteString(e.Name + "[")
		formatExpr(sb, e.Index)
		sb.WriteString("]")
	case *Unary:
		if e.Op.IsPostfix() {
			formatExpr(sb, e.X)
			sb.WriteString(e.Op.String())
		} else {
			sb.WriteString(e.Op.String())
			formatExpr(sb, e.X)
		}
	case *Binary:
		sb.WriteString("(")
		formatExpr(sb, e.L)
		sb.WriteString(" " + e.Op.String() + " ")
		formatExpr(sb, e.R)
		sb.WriteString(")")
	default:
		panic("ast: unhandled expression type in Format")
	}
}
