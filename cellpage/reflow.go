package cellpage

// CopyRowsFrom copies count rows starting at srcStart in src into this
// page starting at dstStart, rewriting style and hyperlink handles by
// interning into this page's sets (the "clone-from" semantics of
// §4.D). If src and p are the same page, handles are reused and ref
// counts simply bumped instead of re-interned.
//
// Shrinking columns (p.Cols() < src.Cols()) truncates cells past the
// new width; a wide cell left at the new last column without its
// spacer tail becomes a narrow blank. Growing
// columns (p.Cols() > src.Cols()) fills the remainder with blanks and
// clears obsolete spacer-head markers that no longer sit at the last
// column.
func (p *Page) CopyRowsFrom(src *Page, srcStart, dstStart, count int) error {
	samePage := src == p
	width := p.cap.Cols
	if src.cap.Cols < width {
		width = src.cap.Cols
	}

	for i := 0; i < count; i++ {
		sy := srcStart + i
		dy := dstStart + i
		p.rows[dy] = src.rows[sy]

		for x := 0; x < width; x++ {
			sc := src.GetCell(x, sy)
			dc := sc

			if sc.StyleID != 0 {
				if samePage {
					p.Styles.Retain(sc.StyleID)
				} else {
					style := src.Styles.Lookup(sc.StyleID)
					h, err := p.Styles.Insert(style)
					if err != nil {
						return err
					}
					dc.StyleID = h
				}
			}

			if sc.Tag() == ContentCodepointGrapheme {
				cps := src.Graphemes.Lookup(src.offset(sy, x))
				if err := p.Graphemes.Set(p.offset(dy, x), append([]rune(nil), cps...)); err != nil {
					return err
				}
			}

			if sc.Hyperlink != 0 {
				if samePage {
					p.Hyperlinks.Retain(sc.Hyperlink)
					dc.Hyperlink = sc.Hyperlink
				} else {
					link, _ := src.Hyperlinks.Lookup(sc.Hyperlink)
					h, err := p.Hyperlinks.Insert(link)
					if err != nil {
						return err
					}
					dc.Hyperlink = h
				}
				if err := p.hlCells.set(p.offset(dy, x), dc.Hyperlink); err != nil {
					return err
				}
			}

			p.cells[dy*p.cap.Cols+x] = dc
		}

		// Truncating: a wide cell at the new edge lost its spacer tail,
		// so turn it into a narrow blank.
		if p.cap.Cols < src.cap.Cols && width > 0 {
			last := p.GetCell(width-1, dy)
			if last.WideState() == WideWide {
				p.cells[dy*p.cap.Cols+width-1] = last.WithRune(' ', WideNarrow)
			}
		}
		// Growing: blank-fill the new columns and clear any spacer-head
		// that used to sit at the old last column but no longer does.
		for x := width; x < p.cap.Cols; x++ {
			p.cells[dy*p.cap.Cols+x] = NewBlankCell()
		}
		if p.cap.Cols > src.cap.Cols && width > 0 {
			mid := p.GetCell(width-1, dy)
			if mid.WideState() == WideSpacerHead {
				p.cells[dy*p.cap.Cols+width-1] = mid.WithRune(' ', WideNarrow)
			}
		}

		p.dirty.mark(dy)
	}
	return nil
}

// Recapacity returns a new page with the same row count and arena
// capacities but newCols columns; content is migrated row by row via
// CopyRowsFrom. It does not trade rows for columns against a fixed
// total-size budget: the row count never changes. If newCols is zero
// or negative, returns ErrOutOfMemory.
func (p *Page) Recapacity(newCols int) (*Page, error) {
	if newCols <= 0 {
		return nil, ErrOutOfMemory
	}
	cap := p.cap
	cap.Cols = newCols
	next, err := NewPage(cap)
	if err != nil {
		return nil, err
	}
	if err := next.CopyRowsFrom(p, 0, 0, p.cap.Rows); err != nil {
		return nil, err
	}
	return next, nil
}
