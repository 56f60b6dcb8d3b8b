// Package joosym mangles and demangles the linker symbols emitted by the Joos
// compiler and reads them back out of object files.
//
// A method symbol looks like
//
//	_JFC3Foo3barEiB  =>  static int Foo.bar(boolean)
//
// "_JF" is the method prefix, "C" marks a static method, the name is a list of
// length-prefixed segments closed by "E", and the return and parameter types
// follow as single-letter tags ("A" nests an array, "R" introduces a class name).
package joosym

import (
	"log"
	"os"

	"github.com/appsworld/go-joosym/internal/jmangle"
	"github.com/appsworld/go-joosym/types/joos"
)

const (
	debugEnvVar     = "JOOSYM_DEBUG"
	traceBlobEnvVar = "JOOSYM_TRACE_BLOB"
)

var (
	debug         = os.Getenv(debugEnvVar) != ""
	logBlobTokens = os.Getenv(traceBlobEnvVar) != ""
)

type (
	DecodeError     = jmangle.DecodeError
	DecodeErrorKind = jmangle.DecodeErrorKind
	EncodeError     = jmangle.EncodeError
	EncodeErrorKind = jmangle.EncodeErrorKind
)

const (
	BadPrefix  = jmangle.BadPrefix
	Truncated  = jmangle.Truncated
	BadLength  = jmangle.BadLength
	UnknownTag = jmangle.UnknownTag
	EmptyName  = jmangle.EmptyName

	SegmentTooLong   = jmangle.SegmentTooLong
	VoidParameter    = jmangle.VoidParameter
	AmbiguousSegment = jmangle.AmbiguousSegment
)

var (
	ErrBadPrefix        = jmangle.ErrBadPrefix
	ErrTruncated        = jmangle.ErrTruncated
	ErrBadLength        = jmangle.ErrBadLength
	ErrUnknownTag       = jmangle.ErrUnknownTag
	ErrEmptyName        = jmangle.ErrEmptyName
	ErrSegmentTooLong   = jmangle.ErrSegmentTooLong
	ErrVoidParameter    = jmangle.ErrVoidParameter
	ErrAmbiguousSegment = jmangle.ErrAmbiguousSegment
	ErrInvalidType      = jmangle.ErrInvalidType
)

// Encode returns the method symbol for sig.
func Encode(sig *joos.Signature) (string, error) {
	return jmangle.EncodeSignature(sig)
}

// Decode parses a method symbol. Anything without the "_JF" prefix fails with ErrBadPrefix.
func Decode(mangled string) (*joos.Signature, error) {
	return jmangle.DecodeSignature(mangled)
}

// Mangle returns the symbol for any Joos entity.
func Mangle(e joos.Entity) (string, error) {
	return jmangle.EncodeEntity(e)
}

// DemangleSymbol parses any Joos symbol into the entity it names.
func DemangleSymbol(mangled string) (joos.Entity, error) {
	return jmangle.DecodeEntity(mangled)
}

// Demangle returns the readable form of a Joos symbol.
func Demangle(mangled string) (string, error) {
	text, _, err := jmangle.Demangle(mangled)
	return text, err
}

// DemangleSimple is like Demangle but drops the static qualifier and return type of methods.
func DemangleSimple(mangled string) (string, error) {
	text, _, err := jmangle.Demangle(mangled, jmangle.WithSimple())
	return text, err
}

// DemangleOrRaw returns the readable form of mangled, or mangled itself when it does not decode.
func DemangleOrRaw(mangled string) string {
	text, err := Demangle(mangled)
	if err != nil {
		return mangled
	}
	return text
}

// IsMangled reports whether s carries a Joos symbol prefix.
func IsMangled(s string) bool {
	return jmangle.IsMangled(s)
}

// DemangleBlob replaces every Joos symbol in blob with its demangled equivalent.
func DemangleBlob(blob string) string {
	return jmangle.DemangleBlob(blob, blobTrace())
}

// DemangleSimpleBlob replaces every Joos symbol in blob with its simplified form.
func DemangleSimpleBlob(blob string) string {
	return jmangle.DemangleBlob(blob, jmangle.WithSimple(), blobTrace())
}

func blobTrace() jmangle.Option {
	if !logBlobTokens {
		return nil
	}
	return jmangle.WithTokenHook(func(token string) {
		log.Printf("DemangleBlob token: %s", token)
	})
}
