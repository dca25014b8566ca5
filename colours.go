package osufile

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/osukit/go-osufile/combinator"
)

// Colours parses the [Colours] section. Every value is an r,g,b triple;
// components beyond the third are ignored, fewer than three fail. Keys
// keep any leading whitespace but lose trailing whitespace, matching how
// the reference client reads the section.
type Colours struct {
	sc Scalars
}

// NewColours returns a Colours section codec.
func NewColours(sc Scalars) *Colours {
	return &Colours{sc: sc}
}

// Parse decodes the section into a *Dict of key to Colour.
func (c *Colours) Parse(name string, lines []string) (any, error) {
	d := NewDict()
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		rawKey, rawVal, found := strings.Cut(line, ":")
		if !found {
			return nil, &SectionError{Section: name, Line: line, Err: fmt.Errorf("colour line has no value")}
		}
		key := strings.TrimRight(rawKey, " \t")
		col, err := c.parseColour(rawVal)
		if err != nil {
			return nil, &SectionError{Section: name, Line: line, Err: err}
		}
		d.Set(key, col)
	}
	return d, nil
}

// Write serializes the mapping back to "key : r,g,b" lines in stored
// order.
func (c *Colours) Write(name string, records any) ([]string, error) {
	d, ok := records.(*Dict)
	if !ok {
		return nil, &SectionError{Section: name, Line: "", Err: errWrongRecordType(records, d)}
	}
	lines := make([]string, 0, d.Len())
	for _, key := range d.Keys() {
		val, _ := d.Get(key)
		col, ok := val.(Colour)
		if !ok {
			return nil, errWrongRecordType(val, col)
		}
		parts := make([]string, 3)
		for i, v := range []int{col.R, col.G, col.B} {
			s, err := c.sc.Int.Encode(v)
			if err != nil {
				return nil, err
			}
			parts[i] = s
		}
		lines = append(lines, key+" : "+strings.Join(parts, ","))
	}
	return lines, nil
}

func (c *Colours) parseColour(raw string) (Colour, error) {
	tokens := strings.Split(raw, ",")
	if len(tokens) < 3 {
		return Colour{}, fmt.Errorf("colour needs 3 components, got %d", len(tokens))
	}
	var vals [3]int
	for i := 0; i < 3; i++ {
		v, err := c.sc.Int.Decode(strings.TrimSpace(tokens[i]))
		if err != nil {
			return Colour{}, err
		}
		vals[i] = v
	}
	return Colour{R: vals[0], G: vals[1], B: vals[2]}, nil
}

// ColourInterpreter groups the ComboN entries of parsed [Colours] data
// into an ordered colour list. Slot numbers are read with Int, which
// defaults to strict integer parsing ("Combo2.0" is not a combo slot).
type ColourInterpreter struct {
	Int      combinator.Codec[string, int]
	MaxCombo int
}

const comboPrefix = "Combo"

// NewColourInterpreter returns an interpreter with strict slot parsing
// and the standard limit of 8 combo colours.
func NewColourInterpreter() *ColourInterpreter {
	return &ColourInterpreter{
		Int: combinator.Codec[string, int]{
			Decode: strconv.Atoi,
			Encode: func(v int) (string, error) { return strconv.Itoa(v), nil },
		},
		MaxCombo: 8,
	}
}

// ComboOrdering returns the ComboN keys of d in slot order. Keys with a
// non-integer or out-of-range slot are ignored.
func (ci *ColourInterpreter) ComboOrdering(d *Dict) []string {
	slots := make(map[int]string)
	for _, key := range d.Keys() {
		if !strings.HasPrefix(key, comboPrefix) {
			continue
		}
		n, err := ci.Int.Decode(key[len(comboPrefix):])
		if err != nil {
			continue
		}
		if n <= 0 || n > ci.MaxCombo {
			continue
		}
		slots[n] = key
	}
	nums := make([]int, 0, len(slots))
	for n := range slots {
		nums = append(nums, n)
	}
	sort.Ints(nums)
	keys := make([]string, len(nums))
	for i, n := range nums {
		keys[i] = slots[n]
	}
	return keys
}

// GroupCombo partitions d into the ordered combo colour list and the
// remaining entries, which keep their relative order.
func (ci *ColourInterpreter) GroupCombo(d *Dict) ([]Colour, *Dict) {
	ordering := ci.ComboOrdering(d)
	combo := make(map[string]bool, len(ordering))
	colours := make([]Colour, 0, len(ordering))
	for _, key := range ordering {
		combo[key] = true
		v, _ := d.Get(key)
		colours = append(colours, v.(Colour))
	}
	others := NewDict()
	for _, key := range d.Keys() {
		if combo[key] {
			continue
		}
		v, _ := d.Get(key)
		others.Set(key, v)
	}
	return colours, others
}

// JoinCombo is the inverse of GroupCombo: combo colours are renumbered
// from 1 and placed first, then the other entries in their order.
func (ci *ColourInterpreter) JoinCombo(colours []Colour, others *Dict) *Dict {
	out := NewDict()
	for i, col := range colours {
		slot, err := ci.Int.Encode(i + 1)
		if err != nil {
			slot = strconv.Itoa(i + 1)
		}
		out.Set(comboPrefix+slot, col)
	}
	for _, key := range others.Keys() {
		v, _ := others.Get(key)
		out.Set(key, v)
	}
	return out
}
