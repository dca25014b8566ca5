package osufile

import (
	"fmt"

	"go.uber.org/zap"
)

type options struct {
	scalars  Scalars
	log      *zap.Logger
	sections map[string]Section
}

// Option configures a Parser.
type Option func(*options) error

// WithScalars substitutes the scalar codecs every built-in section codec
// is constructed from. This is the only place numeric and boolean text
// conversion happens, so overriding here changes all of them at once.
func WithScalars(sc Scalars) Option {
	return func(o *options) error {
		if sc.Int.Decode == nil || sc.Float.Decode == nil || sc.Bool.Decode == nil || sc.Str.Decode == nil {
			return fmt.Errorf("osufile: scalars must provide all four codecs")
		}
		o.scalars = sc
		return nil
	}
}

// WithLogger sets the logger used for parse diagnostics such as dropped
// timing points and defaulted slider lengths. The default is a no-op
// logger.
func WithLogger(log *zap.Logger) Option {
	return func(o *options) error {
		if log == nil {
			return fmt.Errorf("osufile: logger must not be nil")
		}
		o.log = log
		return nil
	}
}

// WithSection registers a codec for a section name, replacing the
// built-in codec if one exists. Sections with no codec at all round-trip
// as raw lines.
func WithSection(name string, s Section) Option {
	return func(o *options) error {
		if s == nil {
			return fmt.Errorf("osufile: section codec must not be nil")
		}
		if o.sections == nil {
			o.sections = make(map[string]Section)
		}
		o.sections[name] = s
		return nil
	}
}
