package joosym

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/appsworld/go-joosym/types/joos"
)

func TestEncodeDecodeStaticMethod(t *testing.T) {
	sig := &joos.Signature{
		Name:   joos.QualifiedName{"Foo", "bar"},
		Static: true,
		Return: joos.Int,
		Params: []joos.Type{joos.Boolean},
	}
	mangled, err := Encode(sig)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	got, err := Decode(mangled)
	if err != nil {
		t.Fatalf("Decode(%q) failed: %v", mangled, err)
	}
	if !got.Static {
		t.Errorf("expected static")
	}
	if got.Name.String() != "Foo.bar" {
		t.Errorf("unexpected name %q", got.Name)
	}
	if got.Return.String() != "int" {
		t.Errorf("unexpected return type %q", got.Return)
	}
	if len(got.Params) != 1 || got.Params[0].String() != "boolean" {
		t.Errorf("unexpected params %v", got.Params)
	}
}

func TestRoundTripVoidNoParams(t *testing.T) {
	sig := &joos.Signature{Name: joos.QualifiedName{"run"}, Return: joos.Void}
	mangled, err := Encode(sig)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	got, err := Decode(mangled)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if diff := cmp.Diff(sig, got); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
	if len(got.Params) != 0 {
		t.Fatalf("expected no parameters, got %v", got.Params)
	}
}

func TestRoundTripNestedArray(t *testing.T) {
	sig := &joos.Signature{
		Name:   joos.QualifiedName{"Matrix", "fill"},
		Return: joos.Void,
		Params: []joos.Type{joos.Array{Elem: joos.Array{Elem: joos.Int}}},
	}
	mangled, err := Encode(sig)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	got, err := Decode(mangled)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if diff := cmp.Diff(sig, got); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeForeignPrefix(t *testing.T) {
	for _, in := range []string{"", "main", "_ZN3Foo3barEv", "$s4main", "_J", "_jF3FooEv"} {
		_, err := Decode(in)
		var de *DecodeError
		if !errors.As(err, &de) || de.Kind != BadPrefix {
			t.Errorf("Decode(%q): expected BadPrefix, got %v", in, err)
		}
		if !errors.Is(err, ErrBadPrefix) {
			t.Errorf("Decode(%q): error does not match ErrBadPrefix", in)
		}
	}
}

func TestEncodeRejectsLongSegment(t *testing.T) {
	_, err := Encode(&joos.Signature{Name: joos.QualifiedName{"HelloWorld", "main"}, Return: joos.Void})
	var ee *EncodeError
	if !errors.As(err, &ee) || ee.Kind != SegmentTooLong {
		t.Fatalf("expected SegmentTooLong, got %v", err)
	}
}

func TestDemangle(t *testing.T) {
	tests := []struct {
		in, full, simple string
	}{
		{"_JFC3Foo3barEiB", "static int Foo.bar(boolean)", "Foo.bar(boolean)"},
		{"_JF3FooEvAS", "void Foo(String[])", "Foo(String[])"},
		{"_JGO1a3FooE", "static Object a.Foo", "static Object a.Foo"},
		{"_JC1a3FooE", "class a.Foo", "class a.Foo"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			full, err := Demangle(tt.in)
			if err != nil {
				t.Fatalf("Demangle failed: %v", err)
			}
			if full != tt.full {
				t.Errorf("Demangle = %q, want %q", full, tt.full)
			}
			simple, err := DemangleSimple(tt.in)
			if err != nil {
				t.Fatalf("DemangleSimple failed: %v", err)
			}
			if simple != tt.simple {
				t.Errorf("DemangleSimple = %q, want %q", simple, tt.simple)
			}
		})
	}
}

func TestDemangleOrRaw(t *testing.T) {
	if got := DemangleOrRaw("_JF3FooE"); got != "_JF3FooE" {
		t.Fatalf("expected raw fallback, got %q", got)
	}
	if got := DemangleOrRaw("_JF3FooEv"); got != "void Foo()" {
		t.Fatalf("unexpected rendering %q", got)
	}
}

func TestDemangleBlobs(t *testing.T) {
	blob := "at _JFC4Main4testEi+0x1c (bad: _JF9x)"
	if got, want := DemangleBlob(blob), "at static int Main.test()+0x1c (bad: _JF9x)"; got != want {
		t.Fatalf("DemangleBlob = %q, want %q", got, want)
	}
	if got, want := DemangleSimpleBlob(blob), "at Main.test()+0x1c (bad: _JF9x)"; got != want {
		t.Fatalf("DemangleSimpleBlob = %q, want %q", got, want)
	}
}

func TestMangleEntities(t *testing.T) {
	for _, e := range []joos.Entity{
		&joos.Global{Name: joos.QualifiedName{"a", "Foo", "x"}, Type: joos.Char},
		&joos.Class{Name: joos.QualifiedName{"a", "Foo"}},
		&joos.VTable{Name: joos.QualifiedName{"a", "Foo"}},
		&joos.VTableCtor{Name: joos.QualifiedName{"a", "Foo"}},
	} {
		mangled, err := Mangle(e)
		if err != nil {
			t.Fatalf("Mangle(%v) failed: %v", e, err)
		}
		if !IsMangled(mangled) {
			t.Fatalf("IsMangled(%q) = false", mangled)
		}
		back, err := DemangleSymbol(mangled)
		if err != nil {
			t.Fatalf("DemangleSymbol(%q) failed: %v", mangled, err)
		}
		if diff := cmp.Diff(e, back); diff != "" {
			t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
		}
	}
}
