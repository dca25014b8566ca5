package osufile

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
)

// FormatHeader is the header line written at the top of every output
// file. Input headers are recorded but output is always this version.
const FormatHeader = "osu file format v14"

// File is one parsed beatmap: the header line and an insertion-ordered
// mapping from section name to that section's records. Known sections
// hold their decoded record collections; unrecognized sections hold
// their raw lines as []string.
type File struct {
	Header   string
	Sections *Dict
}

// NewFile returns an empty File.
func NewFile() *File {
	return &File{Sections: NewDict()}
}

// Parser is a configured set of section codecs. Construct one with New
// and reuse it freely: a Parser is immutable after construction and safe
// for concurrent use.
type Parser struct {
	sections map[string]Section
	log      *zap.Logger
}

// New returns a Parser built from the given options.
func New(opts ...Option) (*Parser, error) {
	o := options{
		scalars: DefaultScalars(),
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		if err := opt(&o); err != nil {
			return nil, err
		}
	}

	p := &Parser{
		sections: make(map[string]Section),
		log:      o.log,
	}
	for name, table := range DefaultMetadataTables(o.scalars) {
		p.sections[name] = NewMetadata(o.scalars, table)
	}
	p.sections["TimingPoints"] = NewTimingPoints(o.scalars, o.log)
	p.sections["HitObjects"] = NewHitObjects(o.scalars, o.log)
	p.sections["Events"] = NewEvents(o.scalars)
	p.sections["Colours"] = NewColours(o.scalars)
	for name, s := range o.sections {
		p.sections[name] = s
	}
	return p, nil
}

// Section returns the codec registered for a section name.
func (p *Parser) Section(name string) (Section, bool) {
	s, ok := p.sections[name]
	return s, ok
}

// Parse reads a beatmap from r. The first line becomes the file header;
// anything else before the first bracketed section is ignored. A known
// section that fails to parse aborts with a *SectionError.
func (p *Parser) Parse(r io.Reader) (*File, error) {
	f := NewFile()

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	first := true
	inSection := false
	var name string
	var lines []string
	flush := func() error {
		if !inSection {
			return nil
		}
		if err := p.parseSection(f, name, lines); err != nil {
			return err
		}
		lines = nil
		return nil
	}

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if first {
			f.Header = line
			first = false
			continue
		}
		if strings.HasPrefix(line, "[") {
			if err := flush(); err != nil {
				return nil, err
			}
			// the name may be empty; "[]" is a section like any other
			name = strings.TrimSuffix(strings.TrimPrefix(line, "["), "]")
			inSection = true
			continue
		}
		if inSection {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("osufile: read: %w", err)
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return f, nil
}

func (p *Parser) parseSection(f *File, name string, lines []string) error {
	s, ok := p.sections[name]
	if !ok {
		// raw section: keep the lines, first definition wins
		f.Sections.SetDefault(name, lines)
		return nil
	}
	records, err := s.Parse(name, lines)
	if err != nil {
		return err
	}
	f.Sections.Set(name, records)
	return nil
}

// Write serializes f to w: the fixed format header, then each section in
// stored order as a blank line, the bracketed name and the section's
// lines.
func (p *Parser) Write(w io.Writer, f *File) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(FormatHeader + "\n"); err != nil {
		return err
	}
	for _, name := range f.Sections.Keys() {
		records, _ := f.Sections.Get(name)
		lines, err := p.writeSection(name, records)
		if err != nil {
			return err
		}
		if _, err := bw.WriteString("\n[" + name + "]\n"); err != nil {
			return err
		}
		for _, line := range lines {
			if _, err := bw.WriteString(line + "\n"); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}

func (p *Parser) writeSection(name string, records any) ([]string, error) {
	if s, ok := p.sections[name]; ok {
		return s.Write(name, records)
	}
	lines, ok := records.([]string)
	if !ok {
		return nil, &SectionError{Section: name, Line: "", Err: errWrongRecordType(records, lines)}
	}
	return lines, nil
}

// Parse reads a beatmap from r using a default Parser.
func Parse(r io.Reader, opts ...Option) (*File, error) {
	p, err := New(opts...)
	if err != nil {
		return nil, err
	}
	return p.Parse(r)
}

// Write serializes f to w using a default Parser.
func Write(w io.Writer, f *File, opts ...Option) error {
	p, err := New(opts...)
	if err != nil {
		return err
	}
	return p.Write(w, f)
}

// DefaultFilename returns the conventional beatmap filename,
// "Artist - Title (Creator) [Version].osu", built from the file's
// Metadata section. Missing entries come out empty.
func DefaultFilename(f *File) string {
	get := func(key string) string {
		raw, ok := f.Sections.Get("Metadata")
		if !ok {
			return ""
		}
		d, ok := raw.(*Dict)
		if !ok {
			return ""
		}
		v, ok := d.Get(key)
		if !ok {
			return ""
		}
		s, _ := v.(string)
		return s
	}
	return fmt.Sprintf("%s - %s (%s) [%s].osu", get("Artist"), get("Title"), get("Creator"), get("Version"))
}
