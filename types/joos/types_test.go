package joos

import "testing"

func TestLeafTagInvertsLookupTag(t *testing.T) {
	for tag, typ := range mangledType {
		got, ok := LeafTag(typ)
		if !ok || got != tag {
			t.Errorf("LeafTag(%v) = %q, %v; want %q", typ, got, ok, tag)
		}
	}
	for _, composite := range []byte{TagArray, TagClassRef, StaticMarker, EndOfList} {
		if _, ok := LookupTag(composite); ok {
			t.Errorf("tag %q must not be a leaf tag", composite)
		}
	}
	if _, ok := LeafTag(ClassRef{Name: QualifiedName{"A"}}); ok {
		t.Errorf("class references have no leaf tag")
	}
}

func TestTypesEqual(t *testing.T) {
	a := Array{Elem: ClassRef{Name: QualifiedName{"a", "B"}}}
	b := Array{Elem: ClassRef{Name: NewQualifiedName("a", "B")}}
	if !TypesEqual(a, b) {
		t.Fatalf("expected %v == %v", a, b)
	}
	for _, other := range []Type{
		Array{Elem: ClassRef{Name: QualifiedName{"a", "C"}}},
		ArrayOf(ClassRef{Name: QualifiedName{"a", "B"}}, 2),
		ClassRef{Name: QualifiedName{"a", "B"}},
		String,
		nil,
	} {
		if TypesEqual(a, other) {
			t.Errorf("expected %v != %v", a, other)
		}
	}
	if TypesEqual(Int, Primitive(Short)) || !TypesEqual(Object, Object) {
		t.Fatalf("primitive/reference equality broken")
	}
}

func TestQualifiedName(t *testing.T) {
	q := ParseQualifiedName("java.lang.String")
	if len(q) != 3 || q.Last() != "String" || q.String() != "java.lang.String" {
		t.Fatalf("unexpected name %#v", q)
	}
	if !String.Class().Equal(q) {
		t.Fatalf("String.Class() = %v", String.Class())
	}
	segs := []string{"a", "b"}
	n := NewQualifiedName(segs...)
	segs[0] = "z"
	if n[0] != "a" {
		t.Fatalf("NewQualifiedName must copy its input")
	}
	if ParseQualifiedName("") != nil || NewQualifiedName() != nil {
		t.Fatalf("empty names should be nil")
	}
}

func TestSignatureString(t *testing.T) {
	sig := &Signature{
		Name:   QualifiedName{"Foo", "bar"},
		Static: true,
		Return: Int,
		Params: []Type{Boolean, Array{Elem: String}},
	}
	if got, want := sig.String(), "static int Foo.bar(boolean, String[])"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
	if got, want := sig.Simple(), "Foo.bar(boolean, String[])"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
	if sig.Kind() != KindMethod || sig.Kind().String() != "method" {
		t.Fatalf("unexpected kind %v", sig.Kind())
	}
}

func TestEntityStringIncompleteTypes(t *testing.T) {
	tests := []struct {
		e    Entity
		want string
	}{
		{&Global{Name: QualifiedName{"Foo", "count"}, Type: Int}, "static int Foo.count"},
		{&Global{Name: QualifiedName{"Foo", "count"}}, "static ? Foo.count"},
		{&Signature{Name: QualifiedName{"f"}, Return: Void, Params: []Type{nil, Int}}, "void f(?, int)"},
		{&VTableCtor{Name: QualifiedName{"a", "Foo"}}, "vtable constructor for a.Foo"},
	}
	for _, tt := range tests {
		if got := tt.e.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestLookupTag(t *testing.T) {
	for tag, want := range map[byte]Type{TagInt: Int, TagString: String, TagVoid: Void} {
		got, ok := LookupTag(tag)
		if !ok || !TypesEqual(got, want) {
			t.Errorf("LookupTag(%q) = %v, %v; want %v", tag, got, ok, want)
		}
	}
	if _, ok := LookupTag('Z'); ok {
		t.Errorf("LookupTag('Z') should fail")
	}
}
