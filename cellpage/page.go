package cellpage

// Capacity describes the fixed dimensions and arena sizes a Page is
// created with (§6 "Page capacity knobs"). All fields are fixed at
// page creation; changing the column count is performed by
// Recapacity, which builds a new Page, not by mutating a live Page.
type Capacity struct {
	Cols int
	Rows int

	MaxStyles int

	GraphemeRunes    int
	MaxGraphemeCells int

	StringBytes       int
	MaxHyperlinks     int
	MaxHyperlinkCells int
}

// dirtyBits is a one-bit-per-row bitset (§3 Page "dirty bitset").
type dirtyBits []uint64

func newDirtyBits(rows int) dirtyBits {
	return make(dirtyBits, (rows+63)/64)
}

func (d dirtyBits) mark(row int)    { d[row/64] |= 1 << uint(row%64) }
func (d dirtyBits) clear(row int)   { d[row/64] &^= 1 << uint(row%64) }
func (d dirtyBits) isSet(row int) bool { return d[row/64]&(1<<uint(row%64)) != 0 }
func (d dirtyBits) clearAll() {
	for i := range d {
		d[i] = 0
	}
}

// Page is a fixed-capacity, self-contained grid region: rows × cols of
// Cells, a style interning set, a grapheme arena, a hyperlink interning
// set, and per-row dirty bits (§3, §4.D). Every reference between its
// parts is a cellOffset/handle rather than a pointer, so a Page's
// backing state can be copied wholesale by CloneInto.
type Page struct {
	cap  Capacity
	rows []Row
	// cells is the flat rows×cols grid, row-major.
	cells []Cell
	dirty dirtyBits

	Styles     *StyleSet
	Graphemes  *GraphemeArena
	Strings    *StringArena
	Hyperlinks *HyperlinkSet
	hlCells    cellHyperlinkMap
}

// NewPage allocates a zero-initialized page sized by cap, with every
// cell set to a blank codepoint cell and every row's cells linked by
// construction (the cells slice IS the row's cell range at
// row*Cols:(row+1)*Cols).
func NewPage(cap Capacity) (*Page, error) {
	if cap.Rows <= 0 {
		return nil, &IntegrityError{Kind: ErrZeroRowCount}
	}
	if cap.Cols <= 0 {
		return nil, &IntegrityError{Kind: ErrZeroColCount}
	}
	p := &Page{
		cap:     cap,
		rows:    make([]Row, cap.Rows),
		cells:   make([]Cell, cap.Rows*cap.Cols),
		dirty:   newDirtyBits(cap.Rows),
		Strings: NewStringArena(cap.StringBytes),
	}
	p.Styles = NewStyleSet(cap.MaxStyles)
	p.Graphemes = NewGraphemeArena(cap.GraphemeRunes, cap.MaxGraphemeCells)
	p.Hyperlinks = NewHyperlinkSet(cap.MaxHyperlinks, p.Strings)
	p.hlCells = newCellHyperlinkMap(cap.MaxHyperlinkCells)
	for i := range p.cells {
		p.cells[i] = NewBlankCell()
	}
	return p, nil
}

// Capacity returns the dimensions and arena sizes this page was created with.
func (p *Page) Capacity() Capacity { return p.cap }

func (p *Page) offset(row, col int) cellOffset { return cellOffset(row*p.cap.Cols + col) }

func (p *Page) checkBounds(row, col int) {
	if row < 0 || row >= p.cap.Rows || col < 0 || col >= p.cap.Cols {
		panic("cellpage: cell index out of bounds")
	}
}

// GetRow returns a pointer to row y's header, letting callers inspect
// or mutate its flags directly.
func (p *Page) GetRow(y int) *Row {
	if y < 0 || y >= p.cap.Rows {
		panic("cellpage: row index out of bounds")
	}
	return &p.rows[y]
}

// RowCells returns the cell slice backing row y.
func (p *Page) RowCells(y int) []Cell {
	if y < 0 || y >= p.cap.Rows {
		panic("cellpage: row index out of bounds")
	}
	start := y * p.cap.Cols
	return p.cells[start : start+p.cap.Cols]
}

// GetCell returns the cell at (x, y).
func (p *Page) GetCell(x, y int) Cell {
	p.checkBounds(y, x)
	return p.cells[y*p.cap.Cols+x]
}

// SetCell overwrites the cell at (x, y) verbatim, without touching
// style/hyperlink/grapheme ref counts. Callers that change a cell's
// style or hyperlink must Release the old handle and Insert/Retain the
// new one themselves; SetCell alone is for content-only writes (e.g.
// the screen's print path after it has already resolved a style_id).
func (p *Page) SetCell(x, y int, c Cell) {
	p.checkBounds(y, x)
	p.cells[y*p.cap.Cols+x] = c
	p.dirty.mark(y)
	if c.StyleID != 0 {
		p.rows[y].set(RowStyled)
	}
}

// MarkDirty flags row y as modified since the last ClearDirty.
func (p *Page) MarkDirty(y int) { p.dirty.mark(y) }

// IsDirty reports whether row y was modified since the last ClearDirty.
func (p *Page) IsDirty(y int) bool { return p.dirty.isSet(y) }

// ClearDirty resets row y's dirty bit.
func (p *Page) ClearDirty(y int) { p.dirty.clear(y) }

// ClearAllDirty resets every row's dirty bit.
func (p *Page) ClearAllDirty() { p.dirty.clearAll() }

// Rows returns the number of rows this page holds.
func (p *Page) Rows() int { return p.cap.Rows }

// Cols returns the number of columns this page holds.
func (p *Page) Cols() int { return p.cap.Cols }

// releaseCell drops a cell's style/grapheme/hyperlink references
// before it is overwritten or cleared, keeping ref counts balanced.
func (p *Page) releaseCell(row, col int) {
	c := p.GetCell(col, row)
	if c.StyleID != 0 {
		p.Styles.Release(c.StyleID)
	}
	off := p.offset(row, col)
	if c.Tag() == ContentCodepointGrapheme {
		p.Graphemes.Clear(off)
	}
	if c.Hyperlink != 0 {
		p.Hyperlinks.Release(c.Hyperlink)
		p.hlCells.clear(off)
	}
}

// ClearCells releases style/grapheme/hyperlink references for cells in
// [l, r) of row, then zeroes them to blank cells (§4.D ClearCells).
func (p *Page) ClearCells(row, l, r int) {
	for x := l; x < r; x++ {
		p.releaseCell(row, x)
		p.cells[row*p.cap.Cols+x] = NewBlankCell()
	}
	p.dirty.mark(row)
}

// MoveCells moves len cells (with their grapheme/hyperlink
// associations) from (srcRow, srcX) to (dstRow, dstX), clearing the
// source region. Destination must be disjoint from the source, or the
// same row with non-overlapping ranges; it never allocates (§4.D).
func (p *Page) MoveCells(srcRow, srcX, dstRow, dstX, length int) {
	if length <= 0 {
		return
	}
	if srcRow == dstRow {
		overlap := srcX < dstX+length && dstX < srcX+length
		if overlap && dstX > srcX {
			// Copy back-to-front to avoid clobbering unread source cells.
			for i := length - 1; i >= 0; i-- {
				p.moveOne(srcRow, srcX+i, dstRow, dstX+i)
			}
			p.dirty.mark(srcRow)
			return
		}
	}
	for i := 0; i < length; i++ {
		p.moveOne(srcRow, srcX+i, dstRow, dstX+i)
	}
	p.dirty.mark(srcRow)
	p.dirty.mark(dstRow)
}

func (p *Page) moveOne(srcRow, srcX, dstRow, dstX int) {
	if srcRow == dstRow && srcX == dstX {
		return
	}
	srcOff := p.offset(srcRow, srcX)
	dstOff := p.offset(dstRow, dstX)
	c := p.GetCell(srcX, srcRow)

	// Release whatever the destination held before being overwritten.
	p.releaseCell(dstRow, dstX)

	p.cells[dstRow*p.cap.Cols+dstX] = c
	if c.Tag() == ContentCodepointGrapheme {
		p.Graphemes.Move(srcOff, dstOff)
	}
	if c.Hyperlink != 0 {
		p.hlCells.move(srcOff, dstOff)
	}
	p.cells[srcRow*p.cap.Cols+srcX] = NewBlankCell()
}

// SwapCells exchanges the cells at a and b, including their grapheme
// and hyperlink side-state, without touching style ref counts (a
// style's total reference count is unaffected by which cell holds it).
func (p *Page) SwapCells(aRow, aCol, bRow, bCol int) {
	aOff := p.offset(aRow, aCol)
	bOff := p.offset(bRow, bCol)
	ai := aRow*p.cap.Cols + aCol
	bi := bRow*p.cap.Cols + bCol

	p.cells[ai], p.cells[bi] = p.cells[bi], p.cells[ai]

	aHasG := p.Graphemes.Has(aOff)
	bHasG := p.Graphemes.Has(bOff)
	if aHasG || bHasG {
		aG := p.Graphemes.Lookup(aOff)
		bG := p.Graphemes.Lookup(bOff)
		aCopy := append([]rune(nil), aG...)
		bCopy := append([]rune(nil), bG...)
		if bHasG {
			p.Graphemes.Set(aOff, bCopy)
		} else {
			p.Graphemes.Clear(aOff)
		}
		if aHasG {
			p.Graphemes.Set(bOff, aCopy)
		} else {
			p.Graphemes.Clear(bOff)
		}
	}

	aLink, aOk := p.hlCells.get(aOff)
	bLink, bOk := p.hlCells.get(bOff)
	if aOk {
		p.hlCells.set(bOff, aLink)
	} else {
		p.hlCells.clear(bOff)
	}
	if bOk {
		p.hlCells.set(aOff, bLink)
	} else {
		p.hlCells.clear(aOff)
	}

	p.dirty.mark(aRow)
	p.dirty.mark(bRow)
}

// SetGraphemes moves the cell at (row, cell) to ContentCodepointGrapheme
// and associates it with cps. The cell must not already carry grapheme
// data (§4.D).
func (p *Page) SetGraphemes(row, cell int, cps []rune) error {
	c := p.GetCell(cell, row)
	if c.Tag() == ContentCodepointGrapheme {
		return ErrGraphemeAlreadySet
	}
	off := p.offset(row, cell)
	if err := p.Graphemes.Set(off, cps); err != nil {
		return err
	}
	c.word = packWord(c.Content(), ContentCodepointGrapheme, c.WideState())
	p.cells[row*p.cap.Cols+cell] = c
	p.rows[row].set(RowGrapheme)
	p.dirty.mark(row)
	return nil
}

// AppendGrapheme appends one codepoint to the cell's existing
// grapheme slice, growing the arena chunk if necessary.
func (p *Page) AppendGrapheme(row, cell int, cp rune) error {
	off := p.offset(row, cell)
	if err := p.Graphemes.Append(off, cp); err != nil {
		return err
	}
	p.rows[row].set(RowGrapheme)
	p.dirty.mark(row)
	return nil
}

// ClearGrapheme frees the cell's grapheme slice and reverts it to a
// plain codepoint cell.
func (p *Page) ClearGrapheme(row, cell int) {
	off := p.offset(row, cell)
	p.Graphemes.Clear(off)
	c := p.GetCell(cell, row)
	c.word = packWord(c.Content(), ContentCodepoint, c.WideState())
	p.cells[row*p.cap.Cols+cell] = c
	p.dirty.mark(row)
}

// InsertHyperlink interns link into the page's hyperlink set and
// returns its handle, incrementing its ref count.
func (p *Page) InsertHyperlink(link Hyperlink) (HyperlinkHandle, error) {
	return p.Hyperlinks.Insert(link)
}

// SetHyperlink associates handle h with the cell at (row, cell),
// releasing any previously associated hyperlink on that cell (even if
// it is the same handle, to keep the caller's ref-count bookkeeping
// simple: every SetHyperlink call is one Release plus the caller's own
// prior Insert/Retain for h).
func (p *Page) SetHyperlink(row, cell int, h HyperlinkHandle) error {
	off := p.offset(row, cell)
	if prev, ok := p.hlCells.get(off); ok {
		p.Hyperlinks.Release(prev)
	}
	if err := p.hlCells.set(off, h); err != nil {
		return err
	}
	c := p.GetCell(cell, row)
	c.Hyperlink = h
	p.cells[row*p.cap.Cols+cell] = c
	p.rows[row].set(RowHyperlink)
	p.dirty.mark(row)
	return nil
}

// LookupGrapheme returns the codepoints associated with a cell, if any.
func (p *Page) LookupGrapheme(row, cell int) []rune {
	return p.Graphemes.Lookup(p.offset(row, cell))
}

// LookupHyperlink returns the Hyperlink associated with a cell, if any.
func (p *Page) LookupHyperlink(row, cell int) (Hyperlink, bool) {
	off := p.offset(row, cell)
	h, ok := p.hlCells.get(off)
	if !ok {
		return Hyperlink{}, false
	}
	return p.Hyperlinks.Lookup(h)
}

// CloneInto copies p's full grid, row headers, and dirty bits into dst,
// which must have the same Rows/Cols (otherwise it returns
// ErrOutOfMemory). dst then shares p's style, grapheme, string and
// hyperlink sets rather than getting its own copies, so every handle
// in the copied cells stays valid, matching §4.D's "plain byte
// copy... yields a valid page" contract without Go needing raw memory
// copy.
func (p *Page) CloneInto(dst *Page) error {
	if dst.cap.Rows != p.cap.Rows || dst.cap.Cols != p.cap.Cols {
		return ErrOutOfMemory
	}
	copy(dst.cells, p.cells)
	copy(dst.rows, p.rows)
	copy(dst.dirty, p.dirty)
	dst.Styles = p.Styles
	dst.Graphemes = p.Graphemes
	dst.Strings = p.Strings
	dst.Hyperlinks = p.Hyperlinks
	dst.hlCells = p.hlCells
	return nil
}
