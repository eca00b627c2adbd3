package pagelist

import "github.com/vtcore-dev/vtcore/cellpage"

// ScrollDirective selects one of §4.E's four scroll semantics.
type ScrollDirective struct {
	kind  scrollKind
	delta int
}

type scrollKind uint8

const (
	scrollTop scrollKind = iota
	scrollBottom
	scrollDelta
	scrollDeltaNoGrow
)

// ScrollTop moves the viewport to the oldest row of history.
func ScrollTop() ScrollDirective { return ScrollDirective{kind: scrollTop} }

// ScrollBottom moves the viewport to the maximum history offset (the
// active area's top row).
func ScrollBottom() ScrollDirective { return ScrollDirective{kind: scrollBottom} }

// ScrollDelta moves the viewport by n rows (negative = toward history,
// positive = toward present). At the bottom, a positive delta grows
// new blank history rows up to capacity, reclaiming the oldest rows
// once capacity is exceeded. A negative delta saturates at 0.
func ScrollDelta(n int) ScrollDirective { return ScrollDirective{kind: scrollDelta, delta: n} }

// ScrollDeltaNoGrow is like ScrollDelta but clamps to the current
// maximum viewport offset instead of growing history.
func ScrollDeltaNoGrow(n int) ScrollDirective {
	return ScrollDirective{kind: scrollDeltaNoGrow, delta: n}
}

// Scrollback is the circular history buffer behind the screen's
// viewport (§4.E). Each entry is a one-row cellpage.Page; this is a
// documented simplification of §3's multi-row Page design — see
// DESIGN.md. The active area is not stored here; Screen keeps it as a
// separate Page.
type Scrollback struct {
	rows       *List[*cellpage.Page]
	cols       int
	rowCap     cellpage.Capacity
	viewport   int
	activeRows int
	pushes     int
}

// NewScrollback creates a Scrollback holding up to maxHistoryRows rows
// of cols columns, with activeRows rows forming the active area below
// history. rowCap supplies the per-row style/grapheme/hyperlink
// capacity knobs (§6) used when a new blank history row is allocated.
func NewScrollback(cols, maxHistoryRows, activeRows int, rowCap cellpage.Capacity) *Scrollback {
	rowCap.Cols = cols
	rowCap.Rows = 1
	return &Scrollback{
		rows:       New[*cellpage.Page](maxHistoryRows),
		cols:       cols,
		rowCap:     rowCap,
		activeRows: activeRows,
	}
}

func (s *Scrollback) blankRow() *cellpage.Page {
	p, err := cellpage.NewPage(s.rowCap)
	if err != nil {
		panic(err) // Rows is forced to 1 at construction; this fails only if cols <= 0
	}
	return p
}

// PushRow appends row as the newest history row, discarding the oldest
// row if the scrollback is at capacity (§4.E "reclaiming the oldest
// rows once exceeded").
func (s *Scrollback) PushRow(row *cellpage.Page) {
	wasAtBottom := s.viewport >= s.maxViewport()
	s.rows.Push(row)
	s.pushes++
	if wasAtBottom {
		s.viewport = s.maxViewport()
	}
}

// Pushes returns the total number of rows ever pushed, including ones
// since evicted by ring-buffer wraparound. A consumer mirroring newly
// retired rows to external storage (e.g. the root package's
// ScrollbackProvider) can diff this counter across calls to find how
// many of the newest Len() rows it hasn't mirrored yet.
func (s *Scrollback) Pushes() int { return s.pushes }

// Len returns the number of rows currently held in history.
func (s *Scrollback) Len() int { return s.rows.Len() }

// Capacity returns the maximum number of history rows.
func (s *Scrollback) Capacity() int { return s.rows.Capacity() }

// Row returns the history row at logical offset 0 (oldest) to Len()-1
// (newest).
func (s *Scrollback) Row(offset int) *cellpage.Page { return s.rows.Get(offset) }

// Viewport returns the current viewport offset: the index, counted
// from the oldest history row, of the topmost visible row.
func (s *Scrollback) Viewport() int { return s.viewport }

// maxViewport is the "active-area top": the history offset one past
// the newest stored row, i.e. where the active area begins.
func (s *Scrollback) maxViewport() int { return s.rows.Len() }

// Scroll applies one of the four §4.E scroll semantics to the viewport.
func (s *Scrollback) Scroll(d ScrollDirective) {
	switch d.kind {
	case scrollTop:
		s.viewport = 0
	case scrollBottom:
		s.viewport = s.maxViewport()
	case scrollDelta:
		s.scrollDelta(d.delta)
	case scrollDeltaNoGrow:
		next := s.viewport + d.delta
		if next < 0 {
			next = 0
		}
		if max := s.maxViewport(); next > max {
			next = max
		}
		s.viewport = next
	}
}

func (s *Scrollback) scrollDelta(n int) {
	if n < 0 {
		next := s.viewport + n
		if next < 0 {
			next = 0
		}
		s.viewport = next
		return
	}
	next := s.viewport + n
	max := s.maxViewport()
	if next > max {
		grow := next - max
		for i := 0; i < grow; i++ {
			s.rows.Push(s.blankRow())
		}
		next = s.maxViewport()
	}
	s.viewport = next
}
