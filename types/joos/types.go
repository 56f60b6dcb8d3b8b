package joos

import "strings"

const (
	// NameSeparator joins the segments of a canonical name in readable form.
	NameSeparator = "."
	// MaxSegmentLen is the largest segment the single-digit length field can describe.
	MaxSegmentLen = 9
)

// QualifiedName is an ordered list of identifier segments, e.g. {"java", "util", "Vector"}.
// Values are treated as immutable; use NewQualifiedName to take a private copy.
type QualifiedName []string

// NewQualifiedName copies segs into a new QualifiedName.
func NewQualifiedName(segs ...string) QualifiedName {
	if len(segs) == 0 {
		return nil
	}
	return append(QualifiedName(nil), segs...)
}

// ParseQualifiedName splits a dotted canonical name.
func ParseQualifiedName(name string) QualifiedName {
	if name == "" {
		return nil
	}
	return QualifiedName(strings.Split(name, NameSeparator))
}

func (q QualifiedName) String() string {
	return strings.Join(q, NameSeparator)
}

// Equal reports whether q and o have the same segments.
func (q QualifiedName) Equal(o QualifiedName) bool {
	if len(q) != len(o) {
		return false
	}
	for i := range q {
		if q[i] != o[i] {
			return false
		}
	}
	return true
}

// Last returns the final segment (the simple name), or "" for an empty name.
func (q QualifiedName) Last() string {
	if len(q) == 0 {
		return ""
	}
	return q[len(q)-1]
}

// Type is a type descriptor. The set of implementations is closed:
// Primitive, Reference, ClassRef and Array.
type Type interface {
	String() string
	isType()
}

// Primitive is a built-in value type.
type Primitive uint8

const (
	Boolean Primitive = iota + 1
	Char
	Short
	Int
	Byte
	Void // return position only
)

var primitiveNames = map[Primitive]string{
	Boolean: "boolean",
	Char:    "char",
	Short:   "short",
	Int:     "int",
	Byte:    "byte",
	Void:    "void",
}

func (p Primitive) String() string {
	if s, ok := primitiveNames[p]; ok {
		return s
	}
	return "Primitive(?)"
}

func (Primitive) isType() {}

// Reference is a built-in reference type with its own one-character code.
type Reference uint8

const (
	String Reference = iota + 1
	Object
)

var referenceNames = map[Reference]string{
	String: "String",
	Object: "Object",
}

// referenceClasses are the canonical classes the built-in references stand for.
var referenceClasses = map[Reference]QualifiedName{
	String: {"java", "lang", "String"},
	Object: {"java", "lang", "Object"},
}

func (r Reference) String() string {
	if s, ok := referenceNames[r]; ok {
		return s
	}
	return "Reference(?)"
}

// Class returns the canonical class name r stands for.
func (r Reference) Class() QualifiedName {
	return NewQualifiedName(referenceClasses[r]...)
}

func (Reference) isType() {}

// ClassRef is a user-defined class type.
type ClassRef struct {
	Name QualifiedName
}

func (c ClassRef) String() string { return c.Name.String() }

func (ClassRef) isType() {}

// Array is one level of array nesting around Elem.
type Array struct {
	Elem Type
}

func (a Array) String() string {
	if a.Elem == nil {
		return "?[]"
	}
	return a.Elem.String() + "[]"
}

func (Array) isType() {}

// ArrayOf wraps elem in depth levels of Array.
func ArrayOf(elem Type, depth int) Type {
	for i := 0; i < depth; i++ {
		elem = Array{Elem: elem}
	}
	return elem
}

// IsVoid reports whether t is the void primitive.
func IsVoid(t Type) bool {
	p, ok := t.(Primitive)
	return ok && p == Void
}

// TypesEqual reports whether a and b describe the same type.
func TypesEqual(a, b Type) bool {
	switch x := a.(type) {
	case Primitive:
		y, ok := b.(Primitive)
		return ok && x == y
	case Reference:
		y, ok := b.(Reference)
		return ok && x == y
	case ClassRef:
		y, ok := b.(ClassRef)
		return ok && x.Name.Equal(y.Name)
	case Array:
		y, ok := b.(Array)
		return ok && TypesEqual(x.Elem, y.Elem)
	case nil:
		return b == nil
	}
	return false
}
