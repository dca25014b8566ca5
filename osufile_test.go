package osufile_test

import (
	"bytes"
	"os"
	"strconv"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	osufile "github.com/osukit/go-osufile"
	"github.com/osukit/go-osufile/combinator"
)

func parseString(t *testing.T, s string, opts ...osufile.Option) *osufile.File {
	t.Helper()
	f, err := osufile.Parse(strings.NewReader(s), opts...)
	require.NoError(t, err)
	return f
}

func writeString(t *testing.T, f *osufile.File, opts ...osufile.Option) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, osufile.Write(&buf, f, opts...))
	return buf.String()
}

func TestParseSampleFile(t *testing.T) {
	data, err := os.ReadFile("testdata/sample.osu")
	require.NoError(t, err)
	f := parseString(t, string(data))

	require.Equal(t, "osu file format v14", f.Header)
	require.Equal(t, []string{
		"General", "Editor", "Metadata", "Difficulty",
		"Events", "TimingPoints", "Colours", "HitObjects",
	}, f.Sections.Keys())

	general, _ := f.Sections.Get("General")
	v, ok := general.(*osufile.Dict).Get("StackLeniency")
	require.True(t, ok)
	require.Equal(t, 0.7, v)
	v, _ = general.(*osufile.Dict).Get("LetterboxInBreaks")
	require.Equal(t, false, v)

	editor, _ := f.Sections.Get("Editor")
	v, _ = editor.(*osufile.Dict).Get("Bookmarks")
	require.Equal(t, []int{2434, 20184, 38184}, v)

	tps, _ := f.Sections.Get("TimingPoints")
	require.Len(t, tps.([]osufile.TimingPoint), 3)
	require.Equal(t, 376.470588235294, tps.([]osufile.TimingPoint)[0].Tick)

	events, _ := f.Sections.Get("Events")
	require.Equal(t, []osufile.Event{
		osufile.EventBackground{Type: "0", Time: 0, Filename: "bg.jpg"},
		osufile.EventBreak{Type: "2", Time: 57420, End: 65000},
		osufile.EventUnknown{Type: "Sprite", Params: []string{"Foreground", "Centre", `"sb\flash.png"`, "320", "240"}},
	}, events)

	objs, _ := f.Sections.Get("HitObjects")
	require.Len(t, objs.([]osufile.HitObject), 4)

	colours, _ := f.Sections.Get("Colours")
	v, _ = colours.(*osufile.Dict).Get("Combo2")
	require.Equal(t, osufile.Colour{R: 156, G: 197, B: 255}, v)

	require.Equal(t, "cYsmix feat. Emmy - Tear Rain (jonathanlfj) [Insane].osu", osufile.DefaultFilename(f))
}

func TestFileRoundTrip(t *testing.T) {
	data, err := os.ReadFile("testdata/sample.osu")
	require.NoError(t, err)

	first := parseString(t, string(data))
	out := writeString(t, first)
	second := parseString(t, out)

	require.Equal(t, first.Sections, second.Sections)
	require.Equal(t, out, writeString(t, second), "writing reaches a fixed point after one pass")
}

func TestWriteShape(t *testing.T) {
	f := osufile.NewFile()
	d := osufile.NewDict()
	d.Set("AudioFilename", "audio.mp3")
	f.Sections.Set("General", d)
	f.Sections.Set("Unknown", []string{"a", "b"})

	out := writeString(t, f)
	require.Equal(t, "osu file format v14\n\n[General]\nAudioFilename:audio.mp3\n\n[Unknown]\na\nb\n", out)
}

func TestParseStructure(t *testing.T) {
	t.Run("content before first section ignored", func(t *testing.T) {
		f := parseString(t, "osu file format v12\nstray line\n[General]\nAudioFilename: a.mp3")
		require.Equal(t, "osu file format v12", f.Header)
		require.Equal(t, []string{"General"}, f.Sections.Keys())
	})

	t.Run("lines without a colon are dropped from metadata", func(t *testing.T) {
		f := parseString(t, "osu file format v14\n\n[General]\nAudioFilename: audio.mp3\nbadtag")
		general, _ := f.Sections.Get("General")
		require.Equal(t, dictOf(t, "AudioFilename", "audio.mp3"), general)
	})

	t.Run("unknown sections keep raw lines", func(t *testing.T) {
		f := parseString(t, "osu file format v14\n\n[Whatever]\nline one\n\nline two")
		raw, _ := f.Sections.Get("Whatever")
		require.Equal(t, []string{"line one", "", "line two"}, raw)
	})

	t.Run("empty section name is a section like any other", func(t *testing.T) {
		f := parseString(t, "osu file format v14\nstray\n[]\nkept line\n[General]\nAudioFilename: a.mp3")
		require.Equal(t, []string{"", "General"}, f.Sections.Keys())
		raw, _ := f.Sections.Get("")
		require.Equal(t, []string{"kept line"}, raw)

		second := parseString(t, writeString(t, f))
		require.Equal(t, f.Sections, second.Sections)
	})

	t.Run("duplicate unknown section keeps the first", func(t *testing.T) {
		f := parseString(t, "osu file format v14\n[X]\nfirst\n[X]\nsecond")
		raw, _ := f.Sections.Get("X")
		require.Equal(t, []string{"first"}, raw)
	})

	t.Run("section parse failure carries context", func(t *testing.T) {
		_, err := osufile.Parse(strings.NewReader("osu file format v14\n[General]\nPreviewTime: asdf"))
		require.Error(t, err)
		var se *osufile.SectionError
		require.ErrorAs(t, err, &se)
		require.Equal(t, "General", se.Section)
		require.Equal(t, "PreviewTime: asdf", se.Line)
	})
}

// numbersSection stores one integer per line, exercising the custom
// section registration point.
type numbersSection struct{}

func (numbersSection) Parse(name string, lines []string) (any, error) {
	nums := make([]int, 0, len(lines))
	for _, line := range lines {
		if line == "" {
			continue
		}
		n, err := strconv.Atoi(line)
		if err != nil {
			return nil, err
		}
		nums = append(nums, n)
	}
	return nums, nil
}

func (numbersSection) Write(name string, records any) ([]string, error) {
	nums := records.([]int)
	lines := make([]string, len(nums))
	for i, n := range nums {
		lines[i] = strconv.Itoa(n)
	}
	return lines, nil
}

func TestCustomSection(t *testing.T) {
	src := "osu file format v14\n\n[General]\nAudioFilename: audio.mp3\n\n[Numbers]\n3\n-5\n60\n-128"
	opt := osufile.WithSection("Numbers", numbersSection{})

	first := parseString(t, src, opt)
	nums, _ := first.Sections.Get("Numbers")
	require.Equal(t, []int{3, -5, 60, -128}, nums)

	second := parseString(t, writeString(t, first, opt), opt)
	require.Equal(t, first.Sections, second.Sections)
}

func TestCustomScalars(t *testing.T) {
	// fixed two-decimal float output everywhere floats are written
	sc := osufile.DefaultScalars()
	sc.Float.Encode = func(v float64) (string, error) {
		return strconv.FormatFloat(v, 'f', 2, 64), nil
	}

	src := "osu file format v14\n\n[General]\nStackLeniency: 0.7\n\n[TimingPoints]\n570,376.470588235294,4,2,1,60,1,0"
	f := parseString(t, src, osufile.WithScalars(sc))
	out := writeString(t, f, osufile.WithScalars(sc))

	require.Contains(t, out, "StackLeniency:0.70")
	require.Contains(t, out, "570,376.47,4,2,1,60,1,0")
}

func TestDecimalMetadata(t *testing.T) {
	// arbitrary precision flows through a per-key metadata override
	sc := osufile.DefaultScalars()
	dec := combinator.Codec[string, decimal.Decimal]{
		Decode: decimal.NewFromString,
		Encode: func(d decimal.Decimal) (string, error) { return d.String(), nil },
	}
	general := osufile.NewMetadata(sc, osufile.MetadataTable{
		"StackLeniency": combinator.F(dec),
	})
	opt := osufile.WithSection("General", general)

	src := "osu file format v14\n\n[General]\nAudioFilename: audio.mp3\nStackLeniency: 0.30000000000000000000001"
	first := parseString(t, src, opt)

	g, _ := first.Sections.Get("General")
	v, ok := g.(*osufile.Dict).Get("StackLeniency")
	require.True(t, ok)
	require.IsType(t, decimal.Decimal{}, v)

	out := writeString(t, first, opt)
	require.Contains(t, out, "StackLeniency:0.30000000000000000000001", "precision survives the round trip")

	second := parseString(t, out, opt)
	require.Equal(t, first.Sections, second.Sections)
}

func TestOptionValidation(t *testing.T) {
	_, err := osufile.New(osufile.WithLogger(nil))
	require.Error(t, err)

	_, err = osufile.New(osufile.WithSection("X", nil))
	require.Error(t, err)

	_, err = osufile.New(osufile.WithScalars(osufile.Scalars{}))
	require.Error(t, err)
}
