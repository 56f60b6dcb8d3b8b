package jmangle

import (
	"errors"
	"fmt"
)

// Decode failures. A *DecodeError unwraps to exactly one of these.
var (
	ErrBadPrefix  = errors.New("jmangle: not a Joos symbol")
	ErrTruncated  = errors.New("jmangle: unexpected end of symbol")
	ErrBadLength  = errors.New("jmangle: bad segment length")
	ErrUnknownTag = errors.New("jmangle: unknown type tag")
	ErrEmptyName  = errors.New("jmangle: empty name")
)

// Encode failures. An *EncodeError unwraps to exactly one of these (or ErrEmptyName).
var (
	ErrSegmentTooLong   = errors.New("jmangle: name segment too long")
	ErrVoidParameter    = errors.New("jmangle: void used outside return position")
	ErrAmbiguousSegment = errors.New("jmangle: ambiguous name segment")

	// ErrInvalidType is returned for a nil type, a nil entity, or a Primitive or
	// Reference value outside the tag table.
	ErrInvalidType = errors.New("jmangle: invalid type")
)

// DecodeErrorKind identifies the grammar rule a mangled string violated.
type DecodeErrorKind uint8

const (
	BadPrefix DecodeErrorKind = iota + 1
	Truncated
	BadLength
	UnknownTag
	EmptyName
)

var decodeSentinels = map[DecodeErrorKind]error{
	BadPrefix:  ErrBadPrefix,
	Truncated:  ErrTruncated,
	BadLength:  ErrBadLength,
	UnknownTag: ErrUnknownTag,
	EmptyName:  ErrEmptyName,
}

func (k DecodeErrorKind) String() string {
	switch k {
	case BadPrefix:
		return "BadPrefix"
	case Truncated:
		return "Truncated"
	case BadLength:
		return "BadLength"
	case UnknownTag:
		return "UnknownTag"
	case EmptyName:
		return "EmptyName"
	}
	return fmt.Sprintf("DecodeErrorKind(%d)", k)
}

// DecodeError reports where and why a mangled string failed to decode.
type DecodeError struct {
	Kind   DecodeErrorKind
	Input  string
	Pos    int
	Detail string
}

func (e *DecodeError) Error() string {
	msg := fmt.Sprintf("%v at position %d in %q", decodeSentinels[e.Kind], e.Pos, e.Input)
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

func (e *DecodeError) Unwrap() error { return decodeSentinels[e.Kind] }

// EncodeErrorKind identifies why an entity cannot be mangled.
type EncodeErrorKind uint8

const (
	SegmentTooLong EncodeErrorKind = iota + 1
	VoidParameter
	AmbiguousSegment
	EmptyNameSegments
)

var encodeSentinels = map[EncodeErrorKind]error{
	SegmentTooLong:    ErrSegmentTooLong,
	VoidParameter:     ErrVoidParameter,
	AmbiguousSegment:  ErrAmbiguousSegment,
	EmptyNameSegments: ErrEmptyName,
}

func (k EncodeErrorKind) String() string {
	switch k {
	case SegmentTooLong:
		return "SegmentTooLong"
	case VoidParameter:
		return "VoidParameter"
	case AmbiguousSegment:
		return "AmbiguousSegment"
	case EmptyNameSegments:
		return "EmptyName"
	}
	return fmt.Sprintf("EncodeErrorKind(%d)", k)
}

// EncodeError reports an entity that falls outside the encodable domain.
// It always indicates a bug in how the caller built the entity.
type EncodeError struct {
	Kind    EncodeErrorKind
	Segment string
	Detail  string
}

func (e *EncodeError) Error() string {
	msg := encodeSentinels[e.Kind].Error()
	if e.Segment != "" {
		msg += fmt.Sprintf(" %q", e.Segment)
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

func (e *EncodeError) Unwrap() error { return encodeSentinels[e.Kind] }
