package jmangle

import (
	"fmt"

	"github.com/appsworld/go-joosym/types/joos"
)

// parser is a forward-only cursor over a mangled symbol. It never backtracks;
// every production is selected by its first byte.
type parser struct {
	data string
	pos  int
}

func newParser(data string, pos int) *parser {
	return &parser{data: data, pos: pos}
}

func (p *parser) eof() bool {
	return p.pos >= len(p.data)
}

func (p *parser) peek() byte {
	if p.eof() {
		return 0
	}
	return p.data[p.pos]
}

func (p *parser) consume() byte {
	if p.eof() {
		return 0
	}
	b := p.data[p.pos]
	p.pos++
	return b
}

func (p *parser) remaining() int {
	return len(p.data) - p.pos
}

func (p *parser) errorAt(pos int, kind DecodeErrorKind, format string, args ...any) error {
	return &DecodeError{
		Kind:   kind,
		Input:  p.data,
		Pos:    pos,
		Detail: fmt.Sprintf(format, args...),
	}
}

// parseName reads a segment-list: <len><bytes>... terminated by EndOfList.
// At least one segment is required.
func (p *parser) parseName() (joos.QualifiedName, error) {
	start := p.pos
	var name joos.QualifiedName
	for {
		if p.eof() {
			return nil, p.errorAt(p.pos, Truncated, "segment list not terminated by %q", joos.EndOfList)
		}
		c := p.peek()
		if c == joos.EndOfList {
			p.pos++
			break
		}
		if c < '0' || c > '9' {
			return nil, p.errorAt(p.pos, BadLength, "expected segment length digit, found %q", c)
		}
		n := int(c - '0')
		if n == 0 {
			return nil, p.errorAt(p.pos, BadLength, "zero-length segment")
		}
		if n > p.remaining()-1 {
			return nil, p.errorAt(p.pos, BadLength, "segment length %d exceeds the %d remaining bytes", n, p.remaining()-1)
		}
		p.pos++
		name = append(name, p.data[p.pos:p.pos+n])
		p.pos += n
	}
	if len(name) == 0 {
		return nil, p.errorAt(start, EmptyName, "segment list has no segments")
	}
	return name, nil
}

// parseType reads one type descriptor. Array tags are counted iteratively so
// nesting depth costs no stack.
func (p *parser) parseType(allowVoid bool) (joos.Type, error) {
	depth := 0
	for !p.eof() && p.peek() == joos.TagArray {
		p.pos++
		depth++
	}
	if p.eof() {
		return nil, p.errorAt(p.pos, Truncated, "expected type descriptor")
	}
	tagPos := p.pos
	tag := p.consume()
	var base joos.Type
	switch tag {
	case joos.TagClassRef:
		name, err := p.parseName()
		if err != nil {
			return nil, err
		}
		base = joos.ClassRef{Name: name}
	default:
		t, ok := joos.LookupTag(tag)
		if !ok {
			return nil, p.errorAt(tagPos, UnknownTag, "unrecognized tag %q", tag)
		}
		if joos.IsVoid(t) && (!allowVoid || depth > 0) {
			return nil, p.errorAt(tagPos, UnknownTag, "void is only valid as a return type")
		}
		base = t
	}
	return joos.ArrayOf(base, depth), nil
}

func (p *parser) expectEnd() error {
	if !p.eof() {
		return p.errorAt(p.pos, UnknownTag, "unexpected trailing %q", p.data[p.pos:])
	}
	return nil
}
