package osufile

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/osukit/go-osufile/combinator"
)

// HitObjects parses the [HitObjects] section. Every line starts with the
// five-int header x,y,time,type,sound; the type bitmask selects which of
// the four layouts the trailing tokens follow. A type matching no known
// bit becomes a RawHitObject with its trailing tokens kept verbatim.
type HitObjects struct {
	log *zap.Logger

	header        combinator.Codec[[]string, []any]
	hitSample     combinator.Codec[string, HitSample]
	circleParams  combinator.Codec[[]string, []any]
	spinnerParams combinator.Codec[[]string, []any]
	sliderParams  combinator.Codec[[]string, []any]
	holdEndTime   combinator.Codec[string, int]
}

const hitObjectHeaderSize = 5

// sliderCurve is the first slider token: a curve type character and a
// |-joined list of x:y control points.
type sliderCurve struct {
	Type   string
	Points []CurvePoint
}

// NewHitObjects returns a HitObjects section codec.
func NewHitObjects(sc Scalars, log *zap.Logger) *HitObjects {
	if log == nil {
		log = zap.NewNop()
	}
	h := &HitObjects{log: log}

	osuInt := combinator.F(sc.Int)
	osuFloat := combinator.F(sc.Float)

	// x:y and normal:addition pairs share one shape
	intPair := combinator.SplitTuple(":", []combinator.Field{osuInt, osuInt})
	curvePoint := combinator.Compose(combinator.Codec[[]any, CurvePoint]{
		Decode: func(vs []any) (CurvePoint, error) {
			return CurvePoint{X: vs[0].(int), Y: vs[1].(int)}, nil
		},
		Encode: func(p CurvePoint) ([]any, error) {
			return []any{p.X, p.Y}, nil
		},
	}, intPair)
	edgeSet := combinator.Compose(combinator.Codec[[]any, EdgeSet]{
		Decode: func(vs []any) (EdgeSet, error) {
			return EdgeSet{NormalSet: vs[0].(int), AdditionSet: vs[1].(int)}, nil
		},
		Encode: func(e EdgeSet) ([]any, error) {
			return []any{e.NormalSet, e.AdditionSet}, nil
		},
	}, intPair)

	h.hitSample = combinator.Compose(combinator.Codec[[]any, HitSample]{
		Decode: func(vs []any) (HitSample, error) {
			return HitSample{
				NormalSet:   vs[0].(int),
				AdditionSet: vs[1].(int),
				Index:       vs[2].(int),
				Volume:      vs[3].(int),
				Filename:    vs[4].(string),
			}, nil
		},
		Encode: func(s HitSample) ([]any, error) {
			return []any{s.NormalSet, s.AdditionSet, s.Index, s.Volume, s.Filename}, nil
		},
	}, combinator.SplitTuple(":", []combinator.Field{osuInt, osuInt, osuInt, osuInt, combinator.F(sc.Str)}))

	curvePoints := combinator.SplitList("|", curvePoint)
	curve := combinator.Codec[string, sliderCurve]{
		Decode: func(s string) (sliderCurve, error) {
			// only the first | separates the type from the point list
			t, rest, _ := strings.Cut(s, "|")
			pts, err := curvePoints.Decode(rest)
			if err != nil {
				return sliderCurve{}, err
			}
			return sliderCurve{Type: t, Points: pts}, nil
		},
		Encode: func(c sliderCurve) (string, error) {
			pts, err := curvePoints.Encode(c.Points)
			if err != nil {
				return "", err
			}
			return c.Type + "|" + pts, nil
		},
	}

	h.header = combinator.Tuple([]combinator.Field{osuInt, osuInt, osuInt, osuInt, osuInt})
	h.circleParams = combinator.Tuple([]combinator.Field{combinator.F(h.hitSample)})
	h.spinnerParams = combinator.Tuple([]combinator.Field{osuInt, combinator.F(h.hitSample)})
	h.sliderParams = combinator.Tuple([]combinator.Field{
		combinator.F(curve),
		osuInt,   // slides
		osuFloat, // length
		combinator.F(combinator.SplitList("|", combinator.Try(sc.Int, 0))), // edge sounds
		combinator.F(combinator.SplitList("|", edgeSet)),                   // edge sets
		combinator.F(h.hitSample),
	}, nil, []int{}, []EdgeSet{}, HitSample{})
	h.holdEndTime = sc.Int

	return h
}

// Parse decodes the section into []HitObject in file order. Blank lines
// are skipped.
func (h *HitObjects) Parse(name string, lines []string) (any, error) {
	objs := make([]HitObject, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		obj, err := h.parseObject(line)
		if err != nil {
			return nil, &SectionError{Section: name, Line: line, Err: err}
		}
		objs = append(objs, obj)
	}
	return objs, nil
}

// Write serializes the objects back to lines, one per record.
func (h *HitObjects) Write(name string, records any) ([]string, error) {
	objs, ok := records.([]HitObject)
	if !ok {
		return nil, &SectionError{Section: name, Line: "", Err: errWrongRecordType(records, objs)}
	}
	lines := make([]string, 0, len(objs))
	for _, obj := range objs {
		line, err := h.writeObject(obj)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, nil
}

// WhatType resolves the hit object kind from the type bitmask, testing
// circle, slider, spinner, hold in that order. It returns 0 when no bit
// matches.
func (h *HitObjects) WhatType(objType int) int {
	for _, bit := range []int{HitTypeCircle, HitTypeSlider, HitTypeSpinner, HitTypeHold} {
		if objType&bit != 0 {
			return bit
		}
	}
	return 0
}

func (h *HitObjects) parseObject(line string) (HitObject, error) {
	tokens := strings.Split(line, ",")
	rawHeader := tokens
	var rawOthers []string
	if len(tokens) > hitObjectHeaderSize {
		rawHeader, rawOthers = tokens[:hitObjectHeaderSize], tokens[hitObjectHeaderSize:]
	}

	vals, err := h.header.Decode(rawHeader)
	if err != nil {
		return nil, err
	}
	header := HitObjectHeader{
		X:     vals[0].(int),
		Y:     vals[1].(int),
		Time:  vals[2].(int),
		Type:  vals[3].(int),
		Sound: vals[4].(int),
	}

	switch h.WhatType(header.Type) {
	case HitTypeCircle:
		return h.parseCircle(header, rawOthers)
	case HitTypeSlider:
		return h.parseSlider(header, rawOthers)
	case HitTypeSpinner:
		return h.parseSpinner(header, rawOthers)
	case HitTypeHold:
		return h.parseHold(header, rawOthers)
	default:
		return RawHitObject{HitObjectHeader: header, Others: rawOthers}, nil
	}
}

func (h *HitObjects) writeObject(obj HitObject) (string, error) {
	var (
		header    HitObjectHeader
		rawOthers []string
		err       error
	)
	switch o := obj.(type) {
	case HitCircle:
		header = o.HitObjectHeader
		rawOthers, err = h.circleParams.Encode([]any{o.Sample})
	case Slider:
		header = o.HitObjectHeader
		rawOthers, err = h.sliderParams.Encode([]any{
			sliderCurve{Type: o.CurveType, Points: o.CurvePoints},
			o.Slides, o.Length, o.EdgeSounds, o.EdgeSets, o.Sample,
		})
	case Spinner:
		header = o.HitObjectHeader
		rawOthers, err = h.spinnerParams.Encode([]any{o.EndTime, o.Sample})
	case Hold:
		header = o.HitObjectHeader
		rawOthers, err = h.writeHoldParams(o)
	case RawHitObject:
		header = o.HitObjectHeader
		rawOthers = o.Others
	default:
		return "", fmt.Errorf("unsupported hit object type %T", obj)
	}
	if err != nil {
		return "", err
	}

	rawHeader, err := h.header.Encode([]any{header.X, header.Y, header.Time, header.Type, header.Sound})
	if err != nil {
		return "", err
	}
	return strings.Join(append(rawHeader, rawOthers...), ","), nil
}

// ParseHitSample decodes one colon-separated sample block. Fewer than
// five components fail; extras are ignored.
func (h *HitObjects) ParseHitSample(s string) (HitSample, error) {
	return h.hitSample.Decode(s)
}

// WriteHitSample is the inverse of ParseHitSample.
func (h *HitObjects) WriteHitSample(s HitSample) (string, error) {
	return h.hitSample.Encode(s)
}

func (h *HitObjects) parseCircle(header HitObjectHeader, rawOthers []string) (HitObject, error) {
	if len(rawOthers) == 0 || strings.TrimSpace(rawOthers[0]) == "" {
		return HitCircle{HitObjectHeader: header}, nil
	}
	vals, err := h.circleParams.Decode(rawOthers)
	if err != nil {
		return nil, err
	}
	return HitCircle{HitObjectHeader: header, Sample: vals[0].(HitSample)}, nil
}

func (h *HitObjects) parseSpinner(header HitObjectHeader, rawOthers []string) (HitObject, error) {
	vals, err := h.spinnerParams.Decode(rawOthers)
	if err != nil {
		return nil, err
	}
	return Spinner{
		HitObjectHeader: header,
		EndTime:         vals[0].(int),
		Sample:          vals[1].(HitSample),
	}, nil
}

func (h *HitObjects) parseHold(header HitObjectHeader, rawOthers []string) (HitObject, error) {
	if len(rawOthers) == 0 {
		return nil, fmt.Errorf("hold note needs an endtime:sample field")
	}
	// the first colon splits endtime from the sample, which is itself
	// colon-delimited
	rawEnd, rawSample, _ := strings.Cut(rawOthers[0], ":")
	endTime, err := h.holdEndTime.Decode(rawEnd)
	if err != nil {
		return nil, err
	}
	sample, err := h.hitSample.Decode(rawSample)
	if err != nil {
		return nil, err
	}
	return Hold{HitObjectHeader: header, EndTime: endTime, Sample: sample}, nil
}

func (h *HitObjects) writeHoldParams(o Hold) ([]string, error) {
	end, err := h.holdEndTime.Encode(o.EndTime)
	if err != nil {
		return nil, err
	}
	sample, err := h.hitSample.Encode(o.Sample)
	if err != nil {
		return nil, err
	}
	return []string{end + ":" + sample}, nil
}

func (h *HitObjects) parseSlider(header HitObjectHeader, rawOthers []string) (HitObject, error) {
	vals, err := h.sliderParams.Decode(rawOthers)
	if err != nil {
		return nil, err
	}
	curve := vals[0].(sliderCurve)

	var length float64
	if vals[2] == nil {
		// omission is represented literally, not recalculated
		h.log.Warn("slider length missing, defaulting to 0",
			zap.Int("time", header.Time))
	} else {
		length = vals[2].(float64)
	}

	edgeSounds := fillExact(vals[3].([]int), len(curve.Points), 0)
	edgeSets := fillExact(vals[4].([]EdgeSet), len(curve.Points), EdgeSet{})

	return Slider{
		HitObjectHeader: header,
		CurveType:       curve.Type,
		CurvePoints:     curve.Points,
		Slides:          vals[1].(int),
		Length:          length,
		EdgeSounds:      edgeSounds,
		EdgeSets:        edgeSets,
		Sample:          vals[5].(HitSample),
	}, nil
}

// fillExact truncates or right-pads vs with fill so that it has exactly
// size elements.
func fillExact[T any](vs []T, size int, fill T) []T {
	if len(vs) > size {
		return vs[:size]
	}
	for len(vs) < size {
		vs = append(vs, fill)
	}
	return vs
}
