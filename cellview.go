package vtcore

import "github.com/vtcore-dev/vtcore/cellpage"

// CellView is a read-only, page-independent snapshot of one cell: the
// printable rune (plus any combining marks folded into its grapheme
// cluster), its resolved style, and its hyperlink, if any. It is what
// Terminal hands out from Cell/ScrollbackLine instead of a
// raw cellpage.Cell, since a cellpage.Cell's StyleID/Hyperlink handles
// are only meaningful relative to the cellpage.Page that produced them
// and a history row's page is discarded once it ages out of scrollback.
type CellView struct {
	// Char is the cell's base rune (space for a blank or wide-spacer cell).
	Char rune
	// Graphemes holds any combining codepoints beyond Char, in the order
	// they were appended (cellpage.Row.HasGrapheme/Page.LookupGrapheme).
	Graphemes []rune
	Style     cellpage.Style
	Hyperlink cellpage.Hyperlink
}

// cellViewFrom resolves cell (row, col) of page p into a CellView,
// looking up its style and, if tagged, its grapheme cluster and
// hyperlink from the page's interning tables.
func cellViewFrom(p *cellpage.Page, row, col int, c cellpage.Cell) CellView {
	v := CellView{Char: ' ', Style: p.Styles.Lookup(c.StyleID)}
	switch c.Tag() {
	case cellpage.ContentCodepoint:
		v.Char = c.Rune()
	case cellpage.ContentCodepointGrapheme:
		v.Char = c.Rune()
		v.Graphemes = p.LookupGrapheme(row, col)
	default:
		// Background-palette/RGB cells (Sixel/Kitty placeholder content)
		// carry no printable rune; Non-goals exclude image decode, so
		// these never arise from this module's own writes, but a cloned
		// page handed in by a caller could still carry one.
	}
	if c.Hyperlink != 0 {
		if link, ok := p.LookupHyperlink(row, col); ok {
			v.Hyperlink = link
		}
	}
	return v
}

// pageRowToCellViews converts every cell of a single-row page (as
// pagelist.Scrollback stores each history line) into CellViews.
func pageRowToCellViews(p *cellpage.Page) []CellView {
	cells := p.RowCells(0)
	views := make([]CellView, len(cells))
	for i, c := range cells {
		views[i] = cellViewFrom(p, 0, i, c)
	}
	return views
}
