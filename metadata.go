package osufile

import (
	"strings"

	"github.com/osukit/go-osufile/combinator"
)

// MetadataTable maps a metadata key to the codec used for its value.
// Keys absent from the table fall back to an identity string codec.
type MetadataTable map[string]combinator.Field

// Metadata parses key:value sections (General, Editor, Metadata,
// Difficulty). Lines without a colon are skipped. A value that fails its
// typed codec aborts the whole section. Repeated keys keep the first
// key's position but the last value.
type Metadata struct {
	sc    Scalars
	table MetadataTable
}

// NewMetadata returns a Metadata section codec using the given per-key
// table.
func NewMetadata(sc Scalars, table MetadataTable) *Metadata {
	return &Metadata{sc: sc, table: table}
}

// Parse decodes the section into a *Dict of key to typed value.
func (m *Metadata) Parse(name string, lines []string) (any, error) {
	d := NewDict()
	for _, line := range lines {
		rawKey, rawVal, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		key := strings.TrimSpace(rawKey)
		val, err := m.lookup(key).Decode(strings.TrimSpace(rawVal))
		if err != nil {
			return nil, &SectionError{Section: name, Line: line, Err: err}
		}
		d.Set(key, val)
	}
	return d, nil
}

// Write serializes the mapping back to key:value lines in stored order.
func (m *Metadata) Write(name string, records any) ([]string, error) {
	d, ok := records.(*Dict)
	if !ok {
		return nil, &SectionError{Section: name, Line: "", Err: errWrongRecordType(records, d)}
	}
	lines := make([]string, 0, d.Len())
	for _, key := range d.Keys() {
		val, _ := d.Get(key)
		s, err := m.lookup(key).Encode(val)
		if err != nil {
			return nil, err
		}
		lines = append(lines, key+":"+s)
	}
	return lines, nil
}

func (m *Metadata) lookup(key string) combinator.Field {
	if f, ok := m.table[key]; ok {
		return f
	}
	return combinator.F(m.sc.Str)
}

// DefaultMetadataTables returns the stock per-section typed tables for
// the General, Editor, Metadata and Difficulty sections. Anything not
// listed parses as a plain string.
func DefaultMetadataTables(sc Scalars) map[string]MetadataTable {
	osuInt := combinator.F(sc.Int)
	osuFloat := combinator.F(sc.Float)
	osuBool := combinator.F(sc.Bool)

	// Bookmarks is a comma-joined int list, Tags a space-joined word list.
	bookmarks := combinator.F(combinator.SplitList(",", sc.Int))
	tags := combinator.F(combinator.Codec[string, []string]{
		Decode: func(s string) ([]string, error) {
			return strings.Split(strings.TrimSpace(s), " "), nil
		},
		Encode: func(words []string) (string, error) {
			return strings.Join(words, " "), nil
		},
	})

	return map[string]MetadataTable{
		"General": {
			"AudioLeadIn":              osuInt,
			"PreviewTime":              osuInt,
			"Countdown":                osuInt,
			"StackLeniency":            osuFloat,
			"Mode":                     osuInt,
			"LetterboxInBreaks":        osuBool,
			"StoryFireInFront":         osuBool,
			"EpilepsyWarning":          osuBool,
			"CountdownOffset":          osuInt,
			"WidescreenStoryboard":     osuBool,
			"SpecialStyle":             osuBool,
			"UseSkinSprites":           osuBool,
			"SamplesMatchPlaybackRate": osuBool,
			"AlwaysShowPlayfield":      osuBool,
		},
		"Editor": {
			"Bookmarks":       bookmarks,
			"DistanceSpacing": osuFloat,
			"BeatDivisor":     osuInt,
			"GridSize":        osuInt,
			"TimelineZoom":    osuFloat,
		},
		"Metadata": {
			"BeatmapID":    osuInt,
			"BeatmapSetID": osuInt,
			"Tags":         tags,
		},
		"Difficulty": {
			"HPDrainRate":       osuFloat,
			"CircleSize":        osuFloat,
			"OverallDifficulty": osuFloat,
			"ApproachRate":      osuFloat,
			"SliderMultiplier":  osuFloat,
			"SliderTickRate":    osuFloat,
		},
	}
}
