package jmangle

import (
	"strings"

	"github.com/appsworld/go-joosym/types/joos"
)

// DecodeSignature decodes a method symbol (_JF...).
func DecodeSignature(mangled string) (*joos.Signature, error) {
	if !strings.HasPrefix(mangled, joos.MethodPrefix) {
		return nil, badPrefix(mangled, joos.MethodPrefix)
	}
	return decodeMethod(newParser(mangled, len(joos.MethodPrefix)))
}

// DecodeEntity decodes any Joos symbol, dispatching on its prefix.
func DecodeEntity(mangled string) (joos.Entity, error) {
	if strings.HasPrefix(mangled, joos.VTableCtorPrefix) {
		start := len(joos.VTableCtorPrefix)
		if !strings.HasPrefix(mangled[start:], joos.ClassPrefix) {
			return nil, &DecodeError{Kind: BadPrefix, Input: mangled, Pos: start, Detail: "vtable constructor must wrap a class symbol"}
		}
		p := newParser(mangled, start+len(joos.ClassPrefix))
		name, err := decodeNameOnly(p)
		if err != nil {
			return nil, err
		}
		return &joos.VTableCtor{Name: name}, nil
	}

	switch {
	case strings.HasPrefix(mangled, joos.MethodPrefix):
		sig, err := decodeMethod(newParser(mangled, len(joos.MethodPrefix)))
		if err != nil {
			return nil, err
		}
		return sig, nil
	case strings.HasPrefix(mangled, joos.GlobalPrefix):
		g, err := decodeGlobal(newParser(mangled, len(joos.GlobalPrefix)))
		if err != nil {
			return nil, err
		}
		return g, nil
	case strings.HasPrefix(mangled, joos.ClassPrefix):
		name, err := decodeNameOnly(newParser(mangled, len(joos.ClassPrefix)))
		if err != nil {
			return nil, err
		}
		return &joos.Class{Name: name}, nil
	case strings.HasPrefix(mangled, joos.VTablePrefix):
		name, err := decodeNameOnly(newParser(mangled, len(joos.VTablePrefix)))
		if err != nil {
			return nil, err
		}
		return &joos.VTable{Name: name}, nil
	}
	return nil, badPrefix(mangled, "_J[FGCV]")
}

// IsMangled reports whether s carries one of the Joos symbol prefixes.
// It does not validate the rest of the symbol.
func IsMangled(s string) bool {
	s = strings.TrimPrefix(s, joos.VTableCtorPrefix)
	for _, prefix := range []string{joos.MethodPrefix, joos.GlobalPrefix, joos.ClassPrefix, joos.VTablePrefix} {
		if strings.HasPrefix(s, prefix) {
			return true
		}
	}
	return false
}

func badPrefix(mangled, want string) error {
	return &DecodeError{Kind: BadPrefix, Input: mangled, Pos: 0, Detail: "expected prefix " + want}
}

func decodeMethod(p *parser) (*joos.Signature, error) {
	sig := &joos.Signature{}
	if !p.eof() && p.peek() == joos.StaticMarker {
		p.pos++
		sig.Static = true
	}
	name, err := p.parseName()
	if err != nil {
		return nil, err
	}
	sig.Name = name
	if sig.Return, err = p.parseType(true); err != nil {
		return nil, err
	}
	for !p.eof() {
		param, err := p.parseType(false)
		if err != nil {
			return nil, err
		}
		sig.Params = append(sig.Params, param)
	}
	return sig, nil
}

func decodeGlobal(p *parser) (*joos.Global, error) {
	typ, err := p.parseType(false)
	if err != nil {
		return nil, err
	}
	name, err := decodeNameOnly(p)
	if err != nil {
		return nil, err
	}
	return &joos.Global{Name: name, Type: typ}, nil
}

func decodeNameOnly(p *parser) (joos.QualifiedName, error) {
	name, err := p.parseName()
	if err != nil {
		return nil, err
	}
	if err := p.expectEnd(); err != nil {
		return nil, err
	}
	return name, nil
}
