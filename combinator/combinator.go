// Package combinator provides the small codec primitives the osufile
// section parsers are built from.
//
// A Codec pairs a decode function with its inverse encode function.
// Combinators build composite codecs out of simpler ones: fixed-arity
// tuples with trailing defaults, homogeneous lists, delimiter splitting,
// failure-tolerant wrapping and pipeline composition. Every combinator
// satisfies Decode(Encode(x)) == x for any x its decoder can produce,
// except where a lossy default is documented on the combinator itself.
package combinator

import (
	"fmt"
	"strings"
)

// Codec converts between a wire representation W and a value V.
// Decode may fail; Encode is total for any valid V. Codecs hold no
// state and are safe to share between goroutines.
type Codec[W, V any] struct {
	Decode func(W) (V, error)
	Encode func(V) (W, error)
}

// Field is a type-erased element codec, used where heterogeneous values
// share one positional layout (see Tuple).
type Field = Codec[string, any]

// F adapts a typed string codec into a Field. Encoding a value of the
// wrong dynamic type fails.
func F[V any](c Codec[string, V]) Field {
	return Field{
		Decode: func(s string) (any, error) {
			return c.Decode(s)
		},
		Encode: func(v any) (string, error) {
			tv, ok := v.(V)
			if !ok {
				return "", fmt.Errorf("combinator: cannot encode %T as %T", v, tv)
			}
			return c.Encode(tv)
		},
	}
}

// Tuple decodes a fixed-length token list positionally. Missing trailing
// tokens are filled from the right-aligned defaults; if tokens plus
// defaults cannot cover every field, decoding fails. Tokens beyond the
// field count are ignored. Encoding re-serializes exactly one value per
// field.
func Tuple(fields []Field, defaults ...any) Codec[[]string, []any] {
	return Codec[[]string, []any]{
		Decode: func(tokens []string) ([]any, error) {
			if len(tokens)+len(defaults) < len(fields) {
				return nil, fmt.Errorf("combinator: want at least %d fields, got %d", len(fields)-len(defaults), len(tokens))
			}
			n := len(tokens)
			if n > len(fields) {
				n = len(fields)
			}
			out := make([]any, len(fields))
			for i := 0; i < n; i++ {
				v, err := fields[i].Decode(tokens[i])
				if err != nil {
					return nil, err
				}
				out[i] = v
			}
			// right-aligned defaults for the omitted trailing fields
			copy(out[n:], defaults[len(defaults)-(len(fields)-n):])
			return out, nil
		},
		Encode: func(vals []any) ([]string, error) {
			if len(vals) != len(fields) {
				return nil, fmt.Errorf("combinator: want %d values, got %d", len(fields), len(vals))
			}
			out := make([]string, len(vals))
			for i, v := range vals {
				s, err := fields[i].Encode(v)
				if err != nil {
					return nil, err
				}
				out[i] = s
			}
			return out, nil
		},
	}
}

// List applies an element codec to every token independently. Element
// failures propagate; wrap the element codec with Try to suppress them.
func List[V any](c Codec[string, V]) Codec[[]string, []V] {
	return Codec[[]string, []V]{
		Decode: func(tokens []string) ([]V, error) {
			out := make([]V, len(tokens))
			for i, t := range tokens {
				v, err := c.Decode(t)
				if err != nil {
					return nil, err
				}
				out[i] = v
			}
			return out, nil
		},
		Encode: func(vals []V) ([]string, error) {
			out := make([]string, len(vals))
			for i, v := range vals {
				s, err := c.Encode(v)
				if err != nil {
					return nil, err
				}
				out[i] = s
			}
			return out, nil
		},
	}
}

// Split is pure text splitting and joining on sep. It never fails.
func Split(sep string) Codec[string, []string] {
	return Codec[string, []string]{
		Decode: func(s string) ([]string, error) {
			return strings.Split(s, sep), nil
		},
		Encode: func(parts []string) (string, error) {
			return strings.Join(parts, sep), nil
		},
	}
}

// Try substitutes fallback when the inner decode fails. The encode path
// passes through unchanged, so Try is lossy only for inputs the inner
// codec rejects.
func Try[W, V any](c Codec[W, V], fallback V) Codec[W, V] {
	return Codec[W, V]{
		Decode: func(w W) (V, error) {
			v, err := c.Decode(w)
			if err != nil {
				return fallback, nil
			}
			return v, nil
		},
		Encode: c.Encode,
	}
}

// Compose chains two codecs: decoding applies inner then outer, encoding
// applies the mirror image in reverse order.
func Compose[A, B, C any](outer Codec[B, C], inner Codec[A, B]) Codec[A, C] {
	return Codec[A, C]{
		Decode: func(a A) (C, error) {
			b, err := inner.Decode(a)
			if err != nil {
				var zero C
				return zero, err
			}
			return outer.Decode(b)
		},
		Encode: func(c C) (A, error) {
			b, err := outer.Encode(c)
			if err != nil {
				var zero A
				return zero, err
			}
			return inner.Encode(b)
		},
	}
}

// SplitList splits on sep and decodes every piece with the element codec.
func SplitList[V any](sep string, c Codec[string, V]) Codec[string, []V] {
	return Compose(List(c), Split(sep))
}

// SplitTuple splits on sep and decodes the pieces as a positional tuple.
func SplitTuple(sep string, fields []Field, defaults ...any) Codec[string, []any] {
	return Compose(Tuple(fields, defaults...), Split(sep))
}
