package cellpage

// VerifyIntegrity cross-checks every invariant from §3/§4.D and
// returns every violation found (nil if the page is sound). It is
// O(rows×cols) and intended for tests and debug builds, not hot paths.
func (p *Page) VerifyIntegrity() []*IntegrityError {
	var errs []*IntegrityError
	add := func(kind IntegrityErrorKind, row, col int) {
		errs = append(errs, &IntegrityError{Kind: kind, Row: row, Col: col})
	}

	if p.cap.Rows == 0 {
		add(ErrZeroRowCount, 0, 0)
	}
	if p.cap.Cols == 0 {
		add(ErrZeroColCount, 0, 0)
	}

	for y := 0; y < p.cap.Rows; y++ {
		row := p.rows[y]
		rowHasGrapheme := false
		rowHasStyle := false
		rowHasHyperlink := false

		for x := 0; x < p.cap.Cols; x++ {
			c := p.GetCell(x, y)
			off := p.offset(y, x)

			switch c.Tag() {
			case ContentCodepointGrapheme:
				if !p.Graphemes.Has(off) {
					add(ErrMissingGraphemeDataKind, y, x)
				} else {
					rowHasGrapheme = true
					if len(p.Graphemes.Lookup(off)) == 0 {
						add(ErrInvalidGraphemeCount, y, x)
					}
				}
			default:
				if p.Graphemes.Has(off) {
					add(ErrUnmarkedGraphemeCell, y, x)
				}
			}

			if c.StyleID != 0 {
				rowHasStyle = true
				if c.StyleID >= uint32(len(p.Styles.entries)) {
					add(ErrMissingStyle, y, x)
				}
			}

			if c.Hyperlink != 0 {
				rowHasHyperlink = true
				if _, ok := p.hlCells.get(off); !ok {
					add(ErrMissingHyperlinkData, y, x)
				}
			} else if h, ok := p.hlCells.get(off); ok && h != 0 {
				add(ErrUnmarkedHyperlinkCell, y, x)
			}

			switch c.WideState() {
			case WideSpacerTail:
				if x == 0 {
					add(ErrInvalidSpacerTailLocation, y, x)
				} else {
					left := p.GetCell(x-1, y)
					if left.WideState() != WideWide {
						add(ErrInvalidSpacerTailLocation, y, x)
					}
				}
			case WideSpacerHead:
				if x != p.cap.Cols-1 {
					add(ErrInvalidSpacerHeadLocation, y, x)
				} else if !row.Wrap() {
					add(ErrUnwrappedSpacerHead, y, x)
				}
			}
		}

		if rowHasGrapheme && !row.HasGrapheme() {
			add(ErrUnmarkedGraphemeRow, y, 0)
		}
		if rowHasStyle && !row.Styled() {
			add(ErrUnmarkedStyleRow, y, 0)
		}
		if rowHasHyperlink && !row.HasHyperlink() {
			add(ErrUnmarkedHyperlinkRow, y, 0)
		}
	}

	for h := 1; h < len(p.Styles.entries); h++ {
		used := p.countStyleUsage(StyleHandle(h))
		if p.Styles.RefCount(StyleHandle(h)) < used {
			add(ErrMismatchedStyleRef, 0, 0)
		}
	}
	for h := 1; h < len(p.Hyperlinks.entries); h++ {
		used := p.countHyperlinkUsage(HyperlinkHandle(h))
		if p.Hyperlinks.RefCount(HyperlinkHandle(h)) < used {
			add(ErrMismatchedHyperlinkRef, 0, 0)
		}
	}

	return errs
}

func (p *Page) countStyleUsage(h StyleHandle) uint32 {
	var n uint32
	for _, c := range p.cells {
		if c.StyleID == h {
			n++
		}
	}
	return n
}

func (p *Page) countHyperlinkUsage(h HyperlinkHandle) uint32 {
	var n uint32
	for _, c := range p.cells {
		if c.Hyperlink == h {
			n++
		}
	}
	return n
}
