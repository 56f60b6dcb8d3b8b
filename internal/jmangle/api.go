package jmangle

import (
	"regexp"

	"github.com/appsworld/go-joosym/types/joos"
)

var mangledTokenPattern = regexp.MustCompile(`(?:jcf\.vtable\.ctor\.)?_J[FGCV][A-Za-z0-9_$]*`)

type Option func(*options)

type options struct {
	simple  bool
	onToken func(token string)
}

// WithSimple drops the static qualifier and return type from method renderings.
func WithSimple() Option {
	return func(o *options) {
		o.simple = true
	}
}

// WithTokenHook registers fn to be called with every candidate token DemangleBlob finds.
func WithTokenHook(fn func(token string)) Option {
	return func(o *options) {
		o.onToken = fn
	}
}

// Format renders e for display.
func Format(e joos.Entity, opts ...Option) string {
	if e == nil {
		return ""
	}
	cfg := buildOptions(opts...)
	if sig, ok := e.(*joos.Signature); ok && cfg.simple {
		return sig.Simple()
	}
	return e.String()
}

// Demangle decodes any Joos symbol and returns its rendering alongside the entity.
func Demangle(mangled string, opts ...Option) (string, joos.Entity, error) {
	e, err := DecodeEntity(mangled)
	if err != nil {
		return "", nil, err
	}
	return Format(e, opts...), e, nil
}

// DemangleBlob replaces every decodable Joos symbol in blob with its rendering.
// Tokens that fail to decode are left as they are.
func DemangleBlob(blob string, opts ...Option) string {
	cfg := buildOptions(opts...)
	return mangledTokenPattern.ReplaceAllStringFunc(blob, func(token string) string {
		if cfg.onToken != nil {
			cfg.onToken(token)
		}
		out, _, err := Demangle(token, opts...)
		if err != nil {
			return token
		}
		return out
	})
}

func buildOptions(opts ...Option) options {
	cfg := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
