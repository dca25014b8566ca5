package osufile

// Section parses the raw lines of one bracketed section into records and
// serializes those records back to lines. Implementations are built once
// per Parser configuration and are safe for concurrent use.
//
// Parse receives the section's lines already trimmed of surrounding
// whitespace and may fail. Write is total for any records its own Parse
// can produce.
type Section interface {
	Parse(name string, lines []string) (any, error)
	Write(name string, records any) ([]string, error)
}
