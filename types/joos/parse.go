package joos

import (
	"errors"
	"fmt"
	"strings"
)

// ErrSyntax is returned for readable type or signature text that cannot be parsed.
var ErrSyntax = errors.New("joos: invalid syntax")

var primitiveByName = map[string]Primitive{}

func init() {
	for p, name := range primitiveNames {
		primitiveByName[name] = p
	}
}

// ParseType parses the readable form of a type, e.g. "int", "String[]" or "java.util.Vector[][]".
// "String", "Object" and their java.lang qualified names map to the built-in references.
func ParseType(text string) (Type, error) {
	s := strings.Join(strings.Fields(text), "")
	depth := 0
	for strings.HasSuffix(s, "[]") {
		s = strings.TrimSuffix(s, "[]")
		depth++
	}
	if s == "" {
		return nil, fmt.Errorf("%w: empty type in %q", ErrSyntax, text)
	}
	var base Type
	if p, ok := primitiveByName[s]; ok {
		if p == Void && depth > 0 {
			return nil, fmt.Errorf("%w: array of void in %q", ErrSyntax, text)
		}
		base = p
	} else {
		name := ParseQualifiedName(s)
		for _, seg := range name {
			if !isIdentifier(seg) {
				return nil, fmt.Errorf("%w: bad identifier %q in %q", ErrSyntax, seg, text)
			}
		}
		base = ClassRef{Name: name}
		for ref, class := range referenceClasses {
			if s == ref.String() || name.Equal(class) {
				base = ref
				break
			}
		}
	}
	return ArrayOf(base, depth), nil
}

// ParseSignature parses the readable form produced by Signature.String,
// e.g. "static int Foo.bar(boolean, String[])".
func ParseSignature(text string) (*Signature, error) {
	s := strings.TrimSpace(text)
	open := strings.IndexByte(s, '(')
	if open < 0 || !strings.HasSuffix(s, ")") {
		return nil, fmt.Errorf("%w: missing parameter list in %q", ErrSyntax, text)
	}
	head := strings.Fields(s[:open])
	sig := &Signature{}
	if len(head) > 0 && head[0] == "static" {
		sig.Static = true
		head = head[1:]
	}
	if len(head) != 2 {
		return nil, fmt.Errorf("%w: expected \"<return> <name>(...)\" in %q", ErrSyntax, text)
	}
	ret, err := ParseType(head[0])
	if err != nil {
		return nil, err
	}
	sig.Return = ret
	sig.Name = ParseQualifiedName(head[1])
	for _, seg := range sig.Name {
		if !isIdentifier(seg) {
			return nil, fmt.Errorf("%w: bad identifier %q in %q", ErrSyntax, seg, text)
		}
	}
	if inner := strings.TrimSpace(s[open+1 : len(s)-1]); inner != "" {
		for _, p := range strings.Split(inner, ",") {
			typ, err := ParseType(p)
			if err != nil {
				return nil, err
			}
			sig.Params = append(sig.Params, typ)
		}
	}
	return sig, nil
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '_' || c == '$':
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}
