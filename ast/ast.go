// Package ast defines the statement and expression trees produced by the
// parser.
package ast

import "github.com/strager/cfront/ctypes"

// Node is implemented by every Expr and Stmt.
type Node interface {
	node()
}

// Expr is a value-producing expression. The set of implementations is
// closed: NumConst, StrConst, CharConst, Ident, Call, Index, Unary, Binary.
type Expr interface {
	Node
	exprNode()
}

// Stmt is a statement. The set of implementations is closed: Declaration,
// Assignment, ExprStmt, Typedef, TypeDecl, Return, If, Block.
type Stmt interface {
	Node
	stmtNode()
}

type NumConst struct{ Value int64 }
type StrConst struct{ Value string }
type CharConst struct{ Value byte }
type Ident struct{ Name string }

// Call is a function call by name.
type Call struct {
	Name string
	Args []Expr
}

// Index is an array access by name.
type Index struct {
	Name  string
	Index Expr
}

type UnaryOp int

const (
	OpDeref UnaryOp = iota
	OpAddrOf
	OpNot
	OpPreIncr
	OpPreDecr
	OpPostIncr
	OpPostDecr
)

func (op UnaryOp) String() string {
	switch op {
	case OpDeref:
		return "*"
	case OpAddrOf:
		return "&"
	case OpNot:
		return "!"
	case OpPreIncr, OpPostIncr:
		return "++"
	case OpPreDecr, OpPostDecr:
		return "--"
	default:
		return "?"
	}
}

// IsPostfix reports whether the operator is written after its operand.
func (op UnaryOp) IsPostfix() bool {
	return op == OpPostIncr || op == OpPostDecr
}

type Unary struct {
	Op UnaryOp
	X  Expr
}

type BinaryOp int

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
	OpAnd
	OpOr
	OpEq
	OpGt
	OpLt
	OpGe
	OpLe
	OpAssign
)

func (op BinaryOp) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpAnd:
		return "&&"
	case OpOr:
		return "||"
	case OpEq:
		return "=="
	case OpGt:
		return ">"
	case OpLt:
		return "<"
	case OpGe:
		return ">="
	case OpLe:
		return "<="
	case OpAssign:
		return "="
	default:
		return "?"
	}
}

// Binary is a two-operand expression. Unary minus is represented as
// Binary{OpSub, NumConst{0}, x}.
type Binary struct {
	Op BinaryOp
	L  Expr
	R  Expr
}

// Declaration declares a variable with an implicit zero initializer.
type Declaration struct {
	Type *ctypes.Type
	Name string
}

// Init returns the implicit initializer of the declaration.
func (d *Declaration) Init() Expr { return &NumConst{Value: 0} }

// AsAssignment returns the equivalent explicitly initialized statement.
func (d *Declaration) AsAssignment() *Assignment {
	return &Assignment{Type: d.Type, Name: d.Name, Value: d.Init()}
}

// Assignment declares a variable with an initializer.
type Assignment struct {
	Type  *ctypes.Type
	Name  string
	Value Expr
}

type ExprStmt struct{ X Expr }

// Typedef introduces Name as an alias for Type.
type Typedef struct {
	Type *ctypes.Type
	Name string
}

// TypeDecl is a declaration with no declarator, e.g. "struct S { int a; };".
type TypeDecl struct{ Type *ctypes.Type }

type Return struct{ Value Expr }

// If has an optional Else branch (nil when absent).
type If struct {
	Cond Expr
	Then Stmt
	Else Stmt
}

type Block struct{ Stmts []Stmt }

func (*NumConst) node()  {}
func (*StrConst) node()  {}
func (*CharConst) node() {}
func (*Ident) node()     {}
func (*Call) node()      {}
func (*Index) node()     {}
func (*Unary) node()     {}
func (*Binary) node()    {}

func (*NumConst) exprNode()  {}
func (*StrConst) exprNode()  {}
func (*CharConst) exprNode() {}
func (*Ident) exprNode()     {}
func (*Call) exprNode()      {}
func (*Index) exprNode()     {}
func (*Unary) exprNode()     {}
func (*Binary) exprNode()    {}

func (*Declaration) node() {}
func (*Assignment) node()  {}
func (*ExprStmt) node()    {}
func (*Typedef) node()     {}
func (*TypeDecl) node()    {}
func (*Return) node()      {}
func (*If) node()          {}
func (*Block) node()       {}

func (*Declaration) stmtNode() {}
func (*Assignment) stmtNode()  {}
func (*ExprStmt) stmtNode()    {}
func (*Typedef) stmtNode()     {}
func (*TypeDecl) stmtNode()    {}
func (*Return) stmtNode()      {}
func (*If) stmtNode()          {}
func (*Block) stmtNode()       {}
