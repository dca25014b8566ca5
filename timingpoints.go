package osufile

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/osukit/go-osufile/combinator"
)

// TimingPoints parses the [TimingPoints] section. Each line is up to
// eight comma fields; the trailing four default to sampleindex=0,
// volume=100, uninherited=1, effects=0 when omitted.
//
// Failure handling is asymmetric on purpose: a present token that fails
// its scalar decode drops only that record, while a line whose tokens
// all decode but number fewer than four aborts the section.
type TimingPoints struct {
	fields []combinator.Field
	log    *zap.Logger
}

const timingPointMinFields = 4

var timingPointDefaults = []any{0, 100, true, 0}

// NewTimingPoints returns a TimingPoints section codec.
func NewTimingPoints(sc Scalars, log *zap.Logger) *TimingPoints {
	if log == nil {
		log = zap.NewNop()
	}
	osuInt := combinator.F(sc.Int)
	return &TimingPoints{
		fields: []combinator.Field{
			osuInt,                 // time
			combinator.F(sc.Float), // tick
			osuInt,                 // meter
			osuInt,                 // sampleset
			osuInt,                 // sampleindex
			osuInt,                 // volume
			combinator.F(sc.Bool),  // uninherited
			osuInt,                 // effects
		},
		log: log,
	}
}

// Parse decodes the section into []TimingPoint in file order.
func (tp *TimingPoints) Parse(name string, lines []string) (any, error) {
	points := make([]TimingPoint, 0, len(lines))
	for _, line := range lines {
		p, ok, err := tp.parsePoint(line)
		if err != nil {
			return nil, &SectionError{Section: name, Line: line, Err: err}
		}
		if !ok {
			tp.log.Debug("dropping malformed timing point", zap.String("line", line))
			continue
		}
		points = append(points, p)
	}
	return points, nil
}

// Write serializes the points back to lines, one per record.
func (tp *TimingPoints) Write(name string, records any) ([]string, error) {
	points, ok := records.([]TimingPoint)
	if !ok {
		return nil, &SectionError{Section: name, Line: "", Err: errWrongRecordType(records, points)}
	}
	lines := make([]string, 0, len(points))
	for _, p := range points {
		line, err := tp.writePoint(p)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, nil
}

func (tp *TimingPoints) parsePoint(line string) (TimingPoint, bool, error) {
	tokens := strings.Split(line, ",")
	n := len(tokens)
	if n > len(tp.fields) {
		n = len(tp.fields)
	}

	vals := make([]any, 0, len(tp.fields))
	for i := 0; i < n; i++ {
		v, err := tp.fields[i].Decode(tokens[i])
		if err != nil {
			// a present but malformed scalar drops the record
			return TimingPoint{}, false, nil
		}
		vals = append(vals, v)
	}
	if len(vals) < timingPointMinFields {
		return TimingPoint{}, false, fmt.Errorf("timing point needs at least %d fields, got %d", timingPointMinFields, len(vals))
	}
	vals = append(vals, timingPointDefaults[len(vals)-timingPointMinFields:]...)

	return TimingPoint{
		Time:        vals[0].(int),
		Tick:        vals[1].(float64),
		Meter:       vals[2].(int),
		SampleSet:   vals[3].(int),
		SampleIndex: vals[4].(int),
		Volume:      vals[5].(int),
		Uninherited: vals[6].(bool),
		Effects:     vals[7].(int),
	}, true, nil
}

func (tp *TimingPoints) writePoint(p TimingPoint) (string, error) {
	vals := []any{p.Time, p.Tick, p.Meter, p.SampleSet, p.SampleIndex, p.Volume, p.Uninherited, p.Effects}
	tokens := make([]string, len(vals))
	for i, v := range vals {
		s, err := tp.fields[i].Encode(v)
		if err != nil {
			return "", err
		}
		tokens[i] = s
	}
	return strings.Join(tokens, ","), nil
}
