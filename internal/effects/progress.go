package effects

// Sections are the page regions tracked by the progress indicator, top to
// bottom.
var Sections = []string{"home", "research", "publications", "about", "contact"}

// Span is a region's vertical extent in document coordinates.
type Span struct {
	Top    float64
	Height float64
}

// Contains reports whether y lies in [Top, Top+Height).
func (s Span) Contains(y float64) bool {
	return y >= s.Top && y < s.Top+s.Height
}

// Marker is the indicator state of one region.
type Marker int

const (
	Pending Marker = iota
	Active
	Completed
)

func (m Marker) String() string {
	switch m {
	case Active:
		return "active"
	case Completed:
		return "completed"
	default:
		return ""
	}
}

// ProgressState is one evaluation of the indicator.
type ProgressState struct {
	// Percent is how far the page has been scrolled, 0 to 100.
	Percent float64
	// Active is the index of the region holding the viewport midpoint.
	Active  int
	Markers []Marker
}

// Progress evaluates the indicator. spans must be in top-to-bottom order; a
// nil span stands for a region missing from the page. The first span that
// contains the viewport midpoint is active; when none does the first region
// is.
func Progress(scrollTop, viewportH, documentH float64, spans []*Span) ProgressState {
	st := ProgressState{Markers: make([]Marker, len(spans))}

	if scrollable := documentH - viewportH; scrollable > 0 {
		st.Percent = min(100, max(0, scrollTop/scrollable*100))
	}

	mid := scrollTop + viewportH/2
	for i, s := range spans {
		if s != nil && s.Contains(mid) {
			st.Active = i
			break
		}
	}

	for i := range st.Markers {
		switch {
		case i == st.Active:
			st.Markers[i] = Active
		case i < st.Active:
			st.Markers[i] = Completed
		}
	}
	return st
}

// ScrollTarget returns the id of the region the i-th indicator scrolls to,
// or "" when i is out of range.
func ScrollTarget(i int) string {
	if i < 0 || i >= len(Sections) {
		return ""
	}
	return Sections[i]
}
