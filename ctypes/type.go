// Package ctypes describes the types of the C-like source language and the
// registry that maps type names to them.
package ctypes

import (
	"strconv"
	"strings"
)

// Kind is the variant tag of a Type.
type Kind int

const (
	Primitive Kind = iota
	Pointer
	Struct
	Alias
)

func (k Kind) String() string {
	switch k {
	case Primitive:
		return "primitive"
	case Pointer:
		return "pointer"
	case Struct:
		return "struct"
	case Alias:
		return "alias"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// PointerSize is the size of every pointer on the 32-bit target.
const PointerSize = 4

// StructID identifies a struct definition in a Registry. IDs are stable for
// the lifetime of the registry.
type StructID int

// Type is a tagged variant:
//
//	Primitive: Name, Size
//	Pointer:   Elem (pointee)
//	Struct:    Name (empty when anonymous), Struct
//	Alias:     Name, Elem (underlying type)
//
// Primitive, pointer and alias chains are values: Copy duplicates them.
// Struct types only carry the ID of their definition, so every copy of a
// struct type refers to the same StructDef.
type Type struct {
	Kind   Kind
	Name   string
	Size   int // Primitive only; use Registry.SizeOf for the general case
	Elem   *Type
	Struct StructID
}

// PointerTo wraps elem in a pointer type.
func PointerTo(elem *Type) *Type {
	return &Type{Kind: Pointer, Elem: elem}
}

// StructType returns a reference to the struct definition def.
func StructType(def *StructDef) *Type {
	return &Type{Kind: Struct, Name: def.Name, Struct: def.ID}
}

// AliasOf creates a typedef name for underlying.
func AliasOf(name string, underlying *Type) *Type {
	return &Type{Kind: Alias, Name: name, Elem: underlying}
}

// Copy returns a deep copy of t. The copy is observably identical to t but
// shares no pointer or alias nodes with it.
func (t *Type) Copy() *Type {
	if t == nil {
		return nil
	}
	cpy := *t
	cpy.Elem = t.Elem.Copy()
	return &cpy
}

// IsPointer reports whether t is a pointer type.
func (t *Type) IsPointer() bool { return t.Kind == Pointer }

// Base follows pointers and aliases down to the innermost type.
func (t *Type) Base() *Type {
	for t.Elem != nil {
		t = t.Elem
	}
	return t
}

// Identical reports whether a and b have the same shape. Struct types are
// identical when they refer to the same definition.
func Identical(a, b *Type) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case Primitive:
		return a.Name == b.Name && a.Size == b.Size
	case Pointer:
		return Identical(a.Elem, b.Elem)
	case Struct:
		return a.Struct == b.Struct
	case Alias:
		return a.Name == b.Name && Identical(a.Elem, b.Elem)
	default:
		return false
	}
}

// String renders t in C syntax, e.g. "int**" or "struct Node*".
func (t *Type) String() string {
	switch t.Kind {
	case Primitive, Alias:
		return t.Name
	case Pointer:
		return t.Elem.String() + "*"
	case Struct:
		if t.Name == "" {
			return "struct <anonymous#" + strconv.Itoa(int(t.Struct)) + ">"
		}
		return "struct " + t.Name
	default:
		return t.Kind.String()
	}
}

// SExpr renders t as an s-expression:
//
//	(type "int")  (ptr X)  (struct "Node")  (alias "name" X)
func (t *Type) SExpr() string {
	var sb strings.Builder
	t.writeSExpr(&sb)
	return sb.String()
}

func (t *Type) writeSExpr(sb *strings.Builder) {
	switch t.Kind {
	case Primitive:
		sb.WriteString("(type " + strconv.Quote(t.Name) + ")")
	case Pointer:
		sb.WriteString("(ptr ")
		t.Elem.writeSExpr(sb)
		sb.WriteString(")")
	case Struct:
		if t.Name == "" {
			sb.WriteString("(struct)")
		} else {
			sb.WriteString("(struct " + strconv.Quote(t.Name) + ")")
		}
	case Alias:
		sb.WriteString("(alias " + strconv.Quote(t.Name) + " ")
		t.Elem.writeSExpr(sb)
		sb.WriteString(")")
	}
}
