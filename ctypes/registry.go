package ctypes

import (
	"fmt"
	"strconv"
	"strings"
)

// Field is one member of a struct, in declaration order.
type Field struct {
	Name   string
	Type   *Type
	Offset int
}

// StructDef is the single shared definition behind every reference to a
// struct type. A definition starts incomplete (forward declared) and is
// completed once its body has been parsed.
type StructDef struct {
	ID       StructID
	Name     string
	Fields   []Field
	Complete bool
	Size     int
}

// Field returns the member called name, or nil.
func (d *StructDef) Field(name string) *Field {
	for i := range d.Fields {
		if d.Fields[i].Name == name {
			return &d.Fields[i]
		}
	}
	return nil
}

// Registry owns the known types of one parse session: an ordered list of
// named entries plus an arena of struct definitions indexed by StructID.
//
// Entries are only ever appended. Duplicate names are not rejected and
// lookups return the first match.
type Registry struct {
	entries []*Type
	structs []*StructDef
}

// Indices of the primitives, which are always the first three entries.
const (
	voidIndex = iota
	charIndex
	intIndex
)

// NewRegistry returns a registry holding the primitives void, char and int.
func NewRegistry() *Registry {
	return &Registry{
		entries: []*Type{
			voidIndex: {Kind: Primitive, Name: "void", Size: 0},
			charIndex: {Kind: Primitive, Name: "char", Size: 1},
			intIndex:  {Kind: Primitive, Name: "int", Size: 4},
		},
	}
}

// Void, Char and Int return the registry's own primitive entries. Callers
// that store a primitive in a declaration should Copy it first.
func (r *Registry) Void() *Type { return r.entries[voidIndex] }
func (r *Registry) Char() *Type { return r.entries[charIndex] }
func (r *Registry) Int() *Type  { return r.entries[intIndex] }

// Register appends t to the registry.
func (r *Registry) Register(t *Type) {
	r.entries = append(r.entries, t)
}

// Lookup returns the first entry called name, or nil. A primitive or
// typedef name wins over a struct tag of the same name, so
// "typedef struct Node {...} Node;" makes Node resolve to the alias.
func (r *Registry) Lookup(name string) *Type {
	var tag *Type
	for _, t := range r.entries {
		if t.Name != name {
			continue
		}
		if t.Kind != Struct {
			return t
		}
		if tag == nil {
			tag = t
		}
	}
	return tag
}

// LookupStruct returns the first struct definition tagged name, or nil.
func (r *Registry) LookupStruct(name string) *StructDef {
	for _, t := range r.entries {
		if t.Kind == Struct && t.Name == name {
			return r.structs[t.Struct]
		}
	}
	return nil
}

// DeclareStruct allocates a new, incomplete struct definition. Named
// structs are registered immediately so that their own body can refer to
// them.
func (r *Registry) DeclareStruct(name string) *StructDef {
	def := &StructDef{ID: StructID(len(r.structs)), Name: name}
	r.structs = append(r.structs, def)
	if name != "" {
		r.Register(StructType(def))
	}
	return def
}

// StructDef returns the definition with the given ID.
func (r *Registry) StructDef(id StructID) *StructDef {
	if int(id) < 0 || int(id) >= len(r.structs) {
		return nil
	}
	return r.structs[id]
}

// CompleteStruct installs the members of def, laying them out one after
// another with no padding.
func (r *Registry) CompleteStruct(def *StructDef, fields []Field) error {
	if def.Complete {
		return fmt.Errorf("redefinition of %s", StructType(def))
	}
	offset := 0
	for i := range fields {
		fields[i].Offset = offset
		offset += r.SizeOf(fields[i].Type)
	}
	def.Fields = fields
	def.Size = offset
	def.Complete = true
	return nil
}

// SizeOf returns the size of t in bytes. Incomplete structs have size 0.
func (r *Registry) SizeOf(t *Type) int {
	switch t.Kind {
	case Primitive:
		return t.Size
	case Pointer:
		return PointerSize
	case Struct:
		if def := r.StructDef(t.Struct); def != nil {
			return def.Size
		}
		return 0
	case Alias:
		return r.SizeOf(t.Elem)
	default:
		return 0
	}
}

// IsComplete reports whether values of type t can be laid out. Only a
// by-value reference to an incomplete struct is not.
func (r *Registry) IsComplete(t *Type) bool {
	for t.Kind == Alias {
		t = t.Elem
	}
	if t.Kind != Struct {
		return true
	}
	def := r.StructDef(t.Struct)
	return def != nil && def.Complete
}

// Entries returns the registered types in registration order.
func (r *Registry) Entries() []*Type {
	return append([]*Type(nil), r.entries...)
}

// Dump renders every user-defined entry (everything after the primitives)
// as one s-expression per line. Structs list their size and fields:
//
//	(struct "Node" 8 (field "value" (type "int") 0) (field "next" (ptr (struct "Node")) 4))
//	(alias "NodePtr" (ptr (struct "Node")) 4)
func (r *Registry) Dump() string {
	var lines []string
	for _, t := range r.entries[intIndex+1:] {
		switch t.Kind {
		case Struct:
			lines = append(lines, r.dumpStruct(r.structs[t.Struct]))
		case Alias:
			lines = append(lines, "(alias "+strconv.Quote(t.Name)+" "+t.Elem.SExpr()+" "+strconv.Itoa(r.SizeOf(t))+")")
		default:
			lines = append(lines, t.SExpr())
		}
	}
	return strings.Join(lines, "\n")
}

func (r *Registry) dumpStruct(def *StructDef) string {
	var sb strings.Builder
	sb.WriteString("(struct " + strconv.Quote(def.Name))
	if !def.Complete {
		sb.WriteString(" incomplete)")
		return sb.String()
	}
	sb.WriteString(" " + strconv.Itoa(def.Size))
	for _, f := range def.Fields {
		sb.WriteString(" (field " + strconv.Quote(f.Name) + " " + f.Type.SExpr() + " " + strconv.Itoa(f.Offset) + ")")
	}
	sb.WriteString(")")
	return sb.String()
}
