package jmangle

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/appsworld/go-joosym/types/joos"
)

// EncodeSignature mangles a method signature. The signature is fully
// validated before any output is produced.
func EncodeSignature(sig *joos.Signature) (string, error) {
	if sig == nil {
		return "", ErrInvalidType
	}
	if err := validateName(sig.Name); err != nil {
		return "", err
	}
	if err := validateType(sig.Return, true); err != nil {
		return "", fmt.Errorf("return type: %w", err)
	}
	for i, param := range sig.Params {
		if err := validateType(param, false); err != nil {
			return "", fmt.Errorf("parameter %d: %w", i, err)
		}
	}

	var b strings.Builder
	b.WriteString(joos.MethodPrefix)
	if sig.Static {
		b.WriteByte(joos.StaticMarker)
	}
	writeName(&b, sig.Name)
	writeType(&b, sig.Return)
	for _, param := range sig.Params {
		writeType(&b, param)
	}
	return b.String(), nil
}

// EncodeEntity mangles any Joos entity.
func EncodeEntity(e joos.Entity) (string, error) {
	switch x := e.(type) {
	case *joos.Signature:
		return EncodeSignature(x)
	case *joos.Global:
		if err := validateType(x.Type, false); err != nil {
			return "", fmt.Errorf("global type: %w", err)
		}
		if err := validateName(x.Name); err != nil {
			return "", err
		}
		var b strings.Builder
		b.WriteString(joos.GlobalPrefix)
		writeType(&b, x.Type)
		writeName(&b, x.Name)
		return b.String(), nil
	case *joos.Class:
		return encodeNamed(joos.ClassPrefix, x.Name)
	case *joos.VTable:
		return encodeNamed(joos.VTablePrefix, x.Name)
	case *joos.VTableCtor:
		sym, err := encodeNamed(joos.ClassPrefix, x.Name)
		if err != nil {
			return "", err
		}
		return joos.VTableCtorPrefix + sym, nil
	}
	return "", fmt.Errorf("%w: unsupported entity %T", ErrInvalidType, e)
}

func encodeNamed(prefix string, name joos.QualifiedName) (string, error) {
	if err := validateName(name); err != nil {
		return "", err
	}
	var b strings.Builder
	b.WriteString(prefix)
	writeName(&b, name)
	return b.String(), nil
}

func validateName(name joos.QualifiedName) error {
	if len(name) == 0 {
		return &EncodeError{Kind: EmptyNameSegments, Detail: "qualified name has no segments"}
	}
	for _, seg := range name {
		if err := validateSegment(seg); err != nil {
			return err
		}
	}
	return nil
}

func validateSegment(seg string) error {
	switch {
	case seg == "":
		return &EncodeError{Kind: AmbiguousSegment, Detail: "empty segment"}
	case len(seg) > joos.MaxSegmentLen:
		return &EncodeError{
			Kind:    SegmentTooLong,
			Segment: seg,
			Detail:  fmt.Sprintf("%d bytes, limit is %d", len(seg), joos.MaxSegmentLen),
		}
	case seg[0] >= '0' && seg[0] <= '9':
		return &EncodeError{Kind: AmbiguousSegment, Segment: seg, Detail: "segment starts with a digit"}
	case strings.Contains(seg, joos.NameSeparator):
		return &EncodeError{Kind: AmbiguousSegment, Segment: seg, Detail: "segment contains the name separator"}
	}
	for i := 0; i < len(seg); i++ {
		if c := seg[i]; !isSymbolByte(c) {
			return &EncodeError{Kind: AmbiguousSegment, Segment: seg, Detail: fmt.Sprintf("byte %#02x is not allowed in a linker symbol", c)}
		}
	}
	return nil
}

// isSymbolByte reports whether c may appear in a segment. The set matches
// mangledTokenPattern so every encoded symbol is found again in free text.
func isSymbolByte(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	}
	return c == '_' || c == '$'
}

func validateType(t joos.Type, allowVoid bool) error {
	depth := 0
	for {
		a, ok := t.(joos.Array)
		if !ok {
			break
		}
		t = a.Elem
		depth++
	}
	switch x := t.(type) {
	case nil:
		return fmt.Errorf("%w: missing type", ErrInvalidType)
	case joos.ClassRef:
		return validateName(x.Name)
	default:
		if _, ok := joos.LeafTag(t); !ok {
			return fmt.Errorf("%w: %T(%v) has no tag", ErrInvalidType, t, t)
		}
	}
	if joos.IsVoid(t) && (!allowVoid || depth > 0) {
		return &EncodeError{Kind: VoidParameter, Detail: "void is only valid as a return type"}
	}
	return nil
}

func writeName(b *strings.Builder, name joos.QualifiedName) {
	for _, seg := range name {
		b.WriteString(strconv.Itoa(len(seg)))
		b.WriteString(seg)
	}
	b.WriteByte(joos.EndOfList)
}

func writeType(b *strings.Builder, t joos.Type) {
	for {
		a, ok := t.(joos.Array)
		if !ok {
			break
		}
		b.WriteByte(joos.TagArray)
		t = a.Elem
	}
	if ref, ok := t.(joos.ClassRef); ok {
		b.WriteByte(joos.TagClassRef)
		writeName(b, ref.Name)
		return
	}
	tag, _ := joos.LeafTag(t)
	b.WriteByte(tag)
}
