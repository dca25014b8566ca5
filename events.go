package osufile

import (
	"fmt"
	"strings"

	"github.com/osukit/go-osufile/combinator"
)

// Events parses the [Events] section. Comment lines (// prefix) and
// blank lines are skipped. The first comma token, trimmed, selects the
// record shape: "0" background, "1" or "Video" video, "2" break;
// anything else is kept verbatim as an EventUnknown.
type Events struct {
	sc          Scalars
	mediaParams combinator.Codec[[]string, []any]
	breakParams combinator.Codec[[]string, []any]
}

// NewEvents returns an Events section codec.
func NewEvents(sc Scalars) *Events {
	osuInt := combinator.F(sc.Int)

	// a quoted filename loses all surrounding double quotes, not just the
	// outer pair, matching how the reference client reads the field;
	// unquoted text passes through untouched, whitespace and all
	quotedStr := combinator.Field{
		Decode: func(s string) (any, error) {
			return strings.Trim(s, `"`), nil
		},
		Encode: func(v any) (string, error) {
			s, ok := v.(string)
			if !ok {
				return "", errWrongRecordType(v, s)
			}
			return s, nil
		},
	}

	return &Events{
		sc:          sc,
		mediaParams: combinator.Tuple([]combinator.Field{osuInt, quotedStr, osuInt, osuInt}, 0, 0),
		breakParams: combinator.Tuple([]combinator.Field{osuInt, osuInt}),
	}
}

// Parse decodes the section into []Event in file order.
func (ev *Events) Parse(name string, lines []string) (any, error) {
	events := make([]Event, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}
		e, err := ev.parseLine(line)
		if err != nil {
			return nil, &SectionError{Section: name, Line: line, Err: err}
		}
		events = append(events, e)
	}
	return events, nil
}

// Write serializes the events back to lines, one per record.
func (ev *Events) Write(name string, records any) ([]string, error) {
	events, ok := records.([]Event)
	if !ok {
		return nil, &SectionError{Section: name, Line: "", Err: errWrongRecordType(records, events)}
	}
	lines := make([]string, 0, len(events))
	for _, e := range events {
		line, err := ev.writeLine(e)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, nil
}

func (ev *Events) parseLine(line string) (Event, error) {
	tokens := strings.Split(line, ",")
	typ := strings.TrimSpace(tokens[0])
	rest := tokens[1:]

	switch typ {
	case "0":
		vals, err := ev.mediaParams.Decode(rest)
		if err != nil {
			return nil, err
		}
		return EventBackground{
			Type:     typ,
			Time:     vals[0].(int),
			Filename: vals[1].(string),
			XOffset:  vals[2].(int),
			YOffset:  vals[3].(int),
		}, nil
	case "1", "Video":
		vals, err := ev.mediaParams.Decode(rest)
		if err != nil {
			return nil, err
		}
		return EventVideo{
			Type:     typ,
			Time:     vals[0].(int),
			Filename: vals[1].(string),
			XOffset:  vals[2].(int),
			YOffset:  vals[3].(int),
		}, nil
	case "2":
		vals, err := ev.breakParams.Decode(rest)
		if err != nil {
			return nil, err
		}
		return EventBreak{Type: typ, Time: vals[0].(int), End: vals[1].(int)}, nil
	default:
		return EventUnknown{Type: typ, Params: rest}, nil
	}
}

func (ev *Events) writeLine(e Event) (string, error) {
	var (
		typ  string
		rest []string
		err  error
	)
	switch o := e.(type) {
	case EventBackground:
		typ = o.Type
		rest, err = ev.mediaParams.Encode([]any{o.Time, o.Filename, o.XOffset, o.YOffset})
	case EventVideo:
		typ = o.Type
		rest, err = ev.mediaParams.Encode([]any{o.Time, o.Filename, o.XOffset, o.YOffset})
	case EventBreak:
		typ = o.Type
		rest, err = ev.breakParams.Encode([]any{o.Time, o.End})
	case EventUnknown:
		typ = o.Type
		rest = o.Params
	default:
		return "", fmt.Errorf("unsupported event type %T", e)
	}
	if err != nil {
		return "", err
	}
	return strings.Join(append([]string{typ}, rest...), ","), nil
}
