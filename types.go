package osufile

// TimingPoint is one line of the [TimingPoints] section. Points keep
// their file order; the parser never re-sorts them by time.
type TimingPoint struct {
	Time        int
	Tick        float64
	Meter       int
	SampleSet   int
	SampleIndex int
	Volume      int
	Uninherited bool
	Effects     int
}

// HitSample is the colon-separated sample block shared by all hit
// object kinds.
type HitSample struct {
	NormalSet   int
	AdditionSet int
	Index       int
	Volume      int
	Filename    string
}

// HitObjectHeader is the five comma fields every hit object starts with.
type HitObjectHeader struct {
	X     int
	Y     int
	Time  int
	Type  int
	Sound int
}

// Hit object type bits. When several are set, the lowest entry of
// circle < slider < spinner < hold wins.
const (
	HitTypeCircle    = 1 << 0
	HitTypeSlider    = 1 << 1
	HitTypeNewCombo  = 1 << 2
	HitTypeSpinner   = 1 << 3
	HitTypeComboSkip = 0b01110000
	HitTypeHold      = 1 << 7
)

// Hit sound bits.
const (
	HitSoundNormal  = 1 << 0
	HitSoundWhistle = 1 << 1
	HitSoundFinish  = 1 << 2
	HitSoundClap    = 1 << 3
)

// HitObject is the closed set of decoded hit object kinds: HitCircle,
// Slider, Spinner, Hold and RawHitObject.
type HitObject interface {
	hitObject()
}

// HitCircle is a plain circle.
type HitCircle struct {
	HitObjectHeader
	Sample HitSample
}

// CurvePoint is one x:y control point of a slider curve.
type CurvePoint struct {
	X int
	Y int
}

// EdgeSet is one normal:addition sample-set pair of a slider edge.
type EdgeSet struct {
	NormalSet   int
	AdditionSet int
}

// Slider is a slider object. EdgeSounds and EdgeSets always have
// exactly len(CurvePoints) entries after decoding; Length is 0 when the
// source line omitted it entirely.
type Slider struct {
	HitObjectHeader
	CurveType   string
	CurvePoints []CurvePoint
	Slides      int
	Length      float64
	EdgeSounds  []int
	EdgeSets    []EdgeSet
	Sample      HitSample
}

// Spinner is a spinner object.
type Spinner struct {
	HitObjectHeader
	EndTime int
	Sample  HitSample
}

// Hold is a mania hold note.
type Hold struct {
	HitObjectHeader
	EndTime int
	Sample  HitSample
}

// RawHitObject is the fallback for a type bitmask matching no known
// kind: the trailing tokens are kept verbatim.
type RawHitObject struct {
	HitObjectHeader
	Others []string
}

func (HitCircle) hitObject()    {}
func (Slider) hitObject()       {}
func (Spinner) hitObject()      {}
func (Hold) hitObject()         {}
func (RawHitObject) hitObject() {}

// Event is the closed set of decoded [Events] records: EventBackground,
// EventVideo, EventBreak and EventUnknown.
type Event interface {
	event()
}

// EventBackground is a background image event. Type keeps the
// discriminator token as written.
type EventBackground struct {
	Type     string
	Time     int
	Filename string
	XOffset  int
	YOffset  int
}

// EventVideo is a background video event.
type EventVideo struct {
	Type     string
	Time     int
	Filename string
	XOffset  int
	YOffset  int
}

// EventBreak is a break period.
type EventBreak struct {
	Type string
	Time int
	End  int
}

// EventUnknown keeps an unrecognized event verbatim.
type EventUnknown struct {
	Type   string
	Params []string
}

func (EventBackground) event() {}
func (EventVideo) event()      {}
func (EventBreak) event()      {}
func (EventUnknown) event()    {}

// Colour is an r,g,b triple from the [Colours] section.
type Colour struct {
	R int
	G int
	B int
}
