package joos

import (
	"fmt"
	"strings"
)

// Kind identifies which sort of compiled entity a symbol names.
type Kind uint8

const (
	KindMethod Kind = iota + 1
	KindGlobal
	KindClass
	KindVTable
	KindVTableCtor
)

func (k Kind) String() string {
	switch k {
	case KindMethod:
		return "method"
	case KindGlobal:
		return "global"
	case KindClass:
		return "class"
	case KindVTable:
		return "vtable"
	case KindVTableCtor:
		return "vtable ctor"
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// Entity is anything the compiler emits a mangled symbol for.
type Entity interface {
	Kind() Kind
	String() string
}

// Signature describes a compiled method.
type Signature struct {
	Name   QualifiedName
	Static bool
	Return Type
	Params []Type
}

func (*Signature) Kind() Kind { return KindMethod }

// String renders the signature as "[static ]<ret> <name>(<params>)".
func (s *Signature) String() string {
	var b strings.Builder
	if s.Static {
		b.WriteString("static ")
	}
	if s.Return != nil {
		b.WriteString(s.Return.String())
		b.WriteByte(' ')
	}
	b.WriteString(s.Simple())
	return b.String()
}

// Simple renders the signature without the static qualifier and return type.
func (s *Signature) Simple() string {
	return s.Name.String() + paramList(s.Params)
}

func paramList(params []Type) string {
	parts := make([]string, 0, len(params))
	for _, p := range params {
		if p == nil {
			parts = append(parts, "?")
			continue
		}
		parts = append(parts, p.String())
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// Equal reports whether s and o describe the same method.
func (s *Signature) Equal(o *Signature) bool {
	if s == nil || o == nil {
		return s == o
	}
	if s.Static != o.Static || !s.Name.Equal(o.Name) || !TypesEqual(s.Return, o.Return) {
		return false
	}
	if len(s.Params) != len(o.Params) {
		return false
	}
	for i := range s.Params {
		if !TypesEqual(s.Params[i], o.Params[i]) {
			return false
		}
	}
	return true
}

// Global is a static field emitted as a global variable.
type Global struct {
	Name QualifiedName
	Type Type
}

func (*Global) Kind() Kind { return KindGlobal }

func (g *Global) String() string {
	typ := "?"
	if g.Type != nil {
		typ = g.Type.String()
	}
	return "static " + typ + " " + g.Name.String()
}

// Class names a class's initialiser entry point.
type Class struct {
	Name QualifiedName
}

func (*Class) Kind() Kind { return KindClass }

func (c *Class) String() string { return "class " + c.Name.String() }

// VTable names a class's vtable global.
type VTable struct {
	Name QualifiedName
}

func (*VTable) Kind() Kind { return KindVTable }

func (v *VTable) String() string { return "vtable for " + v.Name.String() }

// VTableCtor names the function that populates a class's vtable.
type VTableCtor struct {
	Name QualifiedName
}

func (*VTableCtor) Kind() Kind { return KindVTableCtor }

func (v *VTableCtor) String() string { return "vtable constructor for " + v.Name.String() }
