package osufile

import (
	"math"
	"strconv"

	"github.com/osukit/go-osufile/combinator"
)

// Scalars holds the four scalar codecs every section codec is built
// from. It is the single place numeric and boolean text conversion
// happens: substituting a codec here changes how every downstream
// combinator interprets that scalar kind.
type Scalars struct {
	Int   combinator.Codec[string, int]
	Float combinator.Codec[string, float64]
	Bool  combinator.Codec[string, bool]
	Str   combinator.Codec[string, string]
}

// DefaultScalars returns the stock scalar codecs.
//
// Integers are parsed by rounding a float, so "90e00" and "3.7" are
// accepted; this matches how the reference client reads the format.
// Booleans are "non-zero integer means true" and encode as 1 or 0.
func DefaultScalars() Scalars {
	return Scalars{
		Int: combinator.Codec[string, int]{
			Decode: func(s string) (int, error) {
				f, err := strconv.ParseFloat(s, 64)
				if err != nil {
					return 0, err
				}
				return int(math.Round(f)), nil
			},
			Encode: func(v int) (string, error) {
				return strconv.Itoa(v), nil
			},
		},
		Float: combinator.Codec[string, float64]{
			Decode: func(s string) (float64, error) {
				return strconv.ParseFloat(s, 64)
			},
			Encode: func(v float64) (string, error) {
				return strconv.FormatFloat(v, 'g', -1, 64), nil
			},
		},
		Bool: combinator.Codec[string, bool]{
			Decode: func(s string) (bool, error) {
				n, err := strconv.Atoi(s)
				if err != nil {
					return false, err
				}
				return n != 0, nil
			},
			Encode: func(v bool) (string, error) {
				if v {
					return "1", nil
				}
				return "0", nil
			},
		},
		Str: combinator.Codec[string, string]{
			Decode: func(s string) (string, error) { return s, nil },
			Encode: func(s string) (string, error) { return s, nil },
		},
	}
}
