package lighting

// TimeOfDay tracks where we are in the daily sunrise/sunset/late-night
// cycle. It is driven entirely by clock events, never by view mode.
type TimeOfDay int

const (
	Day TimeOfDay = iota
	Night
	LateNight
)

// String returns the time-of-day name for logs and the status page.
func (t TimeOfDay) String() string {
	switch t {
	case Day:
		return "day"
	case Night:
		return "night"
	case LateNight:
		return "late-night"
	default:
		return "unknown"
	}
}

// ViewMode is the top-level display mode selected by button gestures.
type ViewMode int

const (
	Normal ViewMode = iota
	CyclePatterns
	TestPattern
)

// String returns the mode name for logs and the status page.
func (m ViewMode) String() string {
	switch m {
	case Normal:
		return "normal"
	case CyclePatterns:
		return "cycle-patterns"
	case TestPattern:
		return "test-pattern"
	default:
		return "unknown"
	}
}

// RGB is a single pixel with channels in [0, 1]. Patterns produce these;
// the compositor scales them to output bytes.
type RGB struct {
	R, G, B float64
}

// Layout describes the physical arrangement of panels across the roof.
// The controller sits at the top center of the gable; the left run is
// wired from the center outward, so its logical order is reversed.
type Layout struct {
	PanelSize   int // LEDs per panel
	LeftPanels  int // panels left of center, facing the house
	RightPanels int // panels right of center
}

// DefaultLayout matches the original installation: ten 38-LED panels,
// six left of center and four right.
var DefaultLayout = Layout{
	PanelSize:   38,
	LeftPanels:  6,
	RightPanels: 4,
}

// LEDCount returns the total number of LEDs across the roof.
func (l Layout) LEDCount() int {
	return (l.LeftPanels + l.RightPanels) * l.PanelSize
}
