package osufile

import "fmt"

// A SectionError reports a record that could not be parsed, with enough
// context to locate it in the source.
type SectionError struct {
	Section string
	Line    string
	Err     error
}

func (e *SectionError) Error() string {
	return fmt.Sprintf("osufile: section [%s]: cannot parse %q: %v", e.Section, e.Line, e.Err)
}

func (e *SectionError) Unwrap() error { return e.Err }

func errWrongRecordType(got, want any) error {
	return fmt.Errorf("wrong record type %T, want %T", got, want)
}
