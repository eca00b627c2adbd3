package screen

import "github.com/vtcore-dev/vtcore/cellpage"

// §4.F row-index arithmetic over four tags:
//   screen   — absolute from top of scrollback
//   viewport — relative to first visible row
//   active   — relative to first active row
//   history  — scrollback only

// ActiveTop returns the screen-row index where the active area begins
// (equivalently, the current amount of history).
func (s *Screen) ActiveTop() int { return s.scrollback.Len() }

// ViewportTop returns the screen-row index of the topmost visible row.
func (s *Screen) ViewportTop() int { return s.scrollback.Viewport() }

// TotalRows returns the number of rows in history plus the active area.
func (s *Screen) TotalRows() int { return s.ActiveTop() + s.cfg.Rows }

// ScreenToActive converts an absolute screen-row index to an
// active-area-relative index. Bounds-checking is an assertion, not a
// runtime error (§4.F).
func (s *Screen) ScreenToActive(y int) int {
	r := y - s.ActiveTop()
	if r < 0 || r >= s.cfg.Rows {
		panic("screen: row not in active area")
	}
	return r
}

// ActiveToScreen converts an active-area-relative row index to an
// absolute screen-row index.
func (s *Screen) ActiveToScreen(y int) int { return y + s.ActiveTop() }

// ScreenToViewport converts an absolute screen-row index to a
// viewport-relative index.
func (s *Screen) ScreenToViewport(y int) int { return y - s.ViewportTop() }

// ViewportToScreen converts a viewport-relative row index to an
// absolute screen-row index.
func (s *Screen) ViewportToScreen(y int) int { return y + s.ViewportTop() }

// ScreenToHistory converts an absolute screen-row index to a
// history-relative index, returning ok=false if y is in the active area.
func (s *Screen) ScreenToHistory(y int) (int, bool) {
	if y >= s.ActiveTop() {
		return 0, false
	}
	return y, true
}

// rowAt returns the Row header and cell slice for absolute screen-row y,
// resolving whether it lives in history or the active page.
func (s *Screen) rowAt(y int) (*cellpage.Row, []cellpage.Cell) {
	if hy, ok := s.ScreenToHistory(y); ok {
		p := s.scrollback.Row(hy)
		return p.GetRow(0), p.RowCells(0)
	}
	ay := s.ScreenToActive(y)
	return s.active.GetRow(ay), s.active.RowCells(ay)
}

// GetCell returns the cell at (x, y) in absolute screen-row space.
func (s *Screen) GetCell(x, y int) cellpage.Cell {
	_, cells := s.rowAt(y)
	return cells[x]
}

// GetRow returns the Row header at absolute screen-row y.
func (s *Screen) GetRow(y int) *cellpage.Row {
	row, _ := s.rowAt(y)
	return row
}

// --- selection.Content ---

// MaxY returns the largest valid absolute screen-row index.
func (s *Screen) MaxY() int { return s.TotalRows() - 1 }

// IsBlankCell reports whether the cell at (x, y) is blank, satisfying
// selection.Content.
func (s *Screen) IsBlankCell(x, y int) bool {
	return s.GetCell(x, y).IsEmpty()
}

// LastNonEmptyRow returns the largest row index at or below maxY that
// has any non-blank cell, or -1 if none does.
func (s *Screen) LastNonEmptyRow(maxY int) int {
	for y := maxY; y >= 0; y-- {
		_, cells := s.rowAt(y)
		for _, c := range cells {
			if !c.IsEmpty() {
				return y
			}
		}
	}
	return -1
}
