package main

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestExtractSymbols(t *testing.T) {
	output := `_JFC3Foo3barEiB T 0000000000001000 0000000000000010
main T 0000000000001010
_JV3FooE D 0000000000002000
_JFC3Foo3barEiB: duplicate
jcf.vtable.ctor._JC3FooE T 0000000000001020`
	want := []string{"_JFC3Foo3barEiB", "_JV3FooE", "jcf.vtable.ctor._JC3FooE"}
	if diff := cmp.Diff(want, extractSymbols(output)); diff != "" {
		t.Fatalf("extractSymbols mismatch (-want +got):\n%s", diff)
	}
}

func TestCheckSymbols(t *testing.T) {
	failures := checkSymbols([]string{
		"_JFC3Foo3barEiB",
		"_JF3Fo",
		"_JF21aEv",
		"_JV3FooE",
	})
	var got []string
	for _, f := range failures {
		got = append(got, f.symbol)
	}
	if diff := cmp.Diff([]string{"_JF3Fo", "_JF21aEv"}, got); diff != "" {
		t.Fatalf("failures mismatch (-want +got):\n%s", diff)
	}
}
