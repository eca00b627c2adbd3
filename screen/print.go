package screen

import (
	"unicode/utf8"

	"github.com/clipperhouse/uax29/v2/graphemes"
	"github.com/unilibs/uniwidth"

	"github.com/vtcore-dev/vtcore/cellpage"
)

// clusterContinuations reports, for each rune of s in order, whether
// that rune continues the previous grapheme cluster rather than
// starting a new one. It is computed once per TestWriteString call so
// the print path can tell "combining mark" apart from "independent
// zero-width rune" without re-running segmentation per byte.
//
// Grounded on github.com/clipperhouse/uax29/v2's grapheme segmenter
// (see SPEC_FULL.md's DOMAIN STACK): the teacher's own Input path drops
// zero-width runes outright, which loses combining marks; joining them
// into the base cell's grapheme slice instead is this module's
// improvement on that behavior.
func clusterContinuations(s string) []bool {
	n := utf8.RuneCountInString(s)
	cont := make([]bool, 0, n)
	seg := graphemes.FromString(s)
	for seg.Next() {
		cluster := seg.Value()
		first := true
		for range cluster {
			cont = append(cont, !first)
			first = false
		}
	}
	return cont
}

// writeCellAt overwrites the cell at active-relative (x, y), attaching
// the cursor's current style and hyperlink pen state. Any previous
// occupant's references are released first via ClearCells.
func (s *Screen) writeCellAt(x, y int, c cellpage.Cell) {
	s.active.ClearCells(y, x, x+1)
	if s.cursor.styleID != 0 {
		s.active.Styles.Retain(s.cursor.styleID)
		c.StyleID = s.cursor.styleID
	}
	s.active.SetCell(x, y, c)
	if s.cursor.Hyperlink != 0 {
		s.active.Hyperlinks.Retain(s.cursor.Hyperlink)
		_ = s.active.SetHyperlink(y, x, s.cursor.Hyperlink)
	}
}

// syncPen interns the cursor's pending Style if it changed since the
// last print, lazily (§3 "style_id: interned style handle; 0 means
// default").
func (s *Screen) syncPen() {
	if !s.cursor.dirty {
		return
	}
	if h, err := s.active.Styles.Insert(s.cursor.Style); err == nil {
		s.cursor.styleID = h
	}
	s.cursor.dirty = false
}

// appendContinuation tries to fold r into the most recently printed
// cell's grapheme slice, converting that cell to
// ContentCodepointGrapheme on its first combining mark.
func (s *Screen) appendContinuation(r rune) bool {
	if s.lastPrintY < 0 {
		return false
	}
	c := s.active.GetCell(s.lastPrintX, s.lastPrintY)
	if c.Tag() == cellpage.ContentCodepointGrapheme {
		return s.active.AppendGrapheme(s.lastPrintY, s.lastPrintX, r) == nil
	}
	return s.active.SetGraphemes(s.lastPrintY, s.lastPrintX, []rune{r}) == nil
}

// printRune writes one decoded codepoint at the cursor, handling
// soft-wrap and wide (2-column) glyphs per §3/§4.B.
func (s *Screen) printRune(r rune, continuation bool) {
	if continuation && s.appendContinuation(r) {
		return
	}
	s.syncPen()

	w := uniwidth.RuneWidth(r)
	if w <= 0 {
		w = 1
	}
	if s.cursor.X+w-1 > s.scrollRight {
		s.wrapLine()
	}

	if w == 2 {
		s.writeCellAt(s.cursor.X, s.cursor.Y, cellpage.NewBlankCell().WithRune(r, cellpage.WideWide))
		s.lastPrintX, s.lastPrintY = s.cursor.X, s.cursor.Y
		s.writeCellAt(s.cursor.X+1, s.cursor.Y, cellpage.NewBlankCell().SetWide(cellpage.WideSpacerTail))
		s.cursor.X += 2
		return
	}
	s.writeCellAt(s.cursor.X, s.cursor.Y, cellpage.NewBlankCell().WithRune(r, cellpage.WideNarrow))
	s.lastPrintX, s.lastPrintY = s.cursor.X, s.cursor.Y
	s.cursor.X++
}

// wrapLine marks the current row as soft-wrapped, advances to the
// next line (scrolling if at the bottom margin), and marks the new
// row as a wrap continuation.
func (s *Screen) wrapLine() {
	s.active.GetRow(s.cursor.Y).Flags |= cellpage.RowWrap
	s.lineFeed()
	s.cursor.X = s.scrollLeft
	s.active.GetRow(s.cursor.Y).Flags |= cellpage.RowWrapContinuation
}

// lineFeed moves the cursor down one row, scrolling the active area
// (pushing the top margin row into history) if already at the bottom
// margin.
func (s *Screen) lineFeed() {
	if s.cursor.Y == s.scrollBottom {
		s.scrollUp(1)
		return
	}
	s.cursor.Y++
}

// scrollUp pushes the top n rows of the scroll region into history and
// shifts the remaining region rows up, clearing the newly exposed
// bottom rows (§3 "the active area is the last rows rows across
// pages; everything above is history").
func (s *Screen) scrollUp(n int) {
	for i := 0; i < n; i++ {
		hist, err := cellpage.NewPage(s.cfg.rowCapacity())
		if err == nil {
			if err := hist.CopyRowsFrom(s.active, s.scrollTop, 0, 1); err == nil {
				s.scrollback.PushRow(hist)
			}
		}
		for y := s.scrollTop; y < s.scrollBottom; y++ {
			s.active.ClearCells(y, 0, s.cfg.Cols)
			_ = s.active.CopyRowsFrom(s.active, y+1, y, 1)
		}
		s.active.ClearCells(s.scrollBottom, 0, s.cfg.Cols)
		*s.active.GetRow(s.scrollBottom) = cellpage.Row{}
	}
}
