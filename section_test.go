package osufile_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	osufile "github.com/osukit/go-osufile"
)

// parseText runs raw section text through a codec the way the file
// parser would, one line per element.
func parseText(t *testing.T, s osufile.Section, name, text string) any {
	t.Helper()
	records, err := s.Parse(name, strings.Split(text, "\n"))
	require.NoError(t, err)
	return records
}

func parseTextErr(t *testing.T, s osufile.Section, name, text string) {
	t.Helper()
	_, err := s.Parse(name, strings.Split(text, "\n"))
	require.Error(t, err)
}

func writeText(t *testing.T, s osufile.Section, name string, records any) []string {
	t.Helper()
	lines, err := s.Write(name, records)
	require.NoError(t, err)
	return lines
}

// roundTrip checks parse -> write -> parse stability; textual equality
// is not expected because defaulted fields are normalized on write.
func roundTrip(t *testing.T, s osufile.Section, name, text string) {
	t.Helper()
	first := parseText(t, s, name, text)
	second, err := s.Parse(name, writeText(t, s, name, first))
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func dictOf(t *testing.T, pairs ...any) *osufile.Dict {
	t.Helper()
	require.Zero(t, len(pairs)%2)
	d := osufile.NewDict()
	for i := 0; i < len(pairs); i += 2 {
		d.Set(pairs[i].(string), pairs[i+1])
	}
	return d
}
