package cellpage

import "testing"

func testCapacity() Capacity {
	return Capacity{
		Cols: 10, Rows: 5,
		MaxStyles:         8,
		GraphemeRunes:     64,
		MaxGraphemeCells:  8,
		StringBytes:       256,
		MaxHyperlinks:     8,
		MaxHyperlinkCells: 8,
	}
}

func TestNewPageBlank(t *testing.T) {
	p, err := NewPage(testCapacity())
	if err != nil {
		t.Fatalf("NewPage: %v", err)
	}
	for y := 0; y < p.Rows(); y++ {
		for x := 0; x < p.Cols(); x++ {
			c := p.GetCell(x, y)
			if c.Rune() != ' ' || c.StyleID != 0 {
				t.Fatalf("cell (%d,%d) not blank", x, y)
			}
		}
	}
	if errs := p.VerifyIntegrity(); len(errs) != 0 {
		t.Fatalf("fresh page failed integrity: %v", errs)
	}
}

func TestGraphemeRoundTrip(t *testing.T) {
	p, _ := NewPage(testCapacity())
	cps := []rune{'e', 0x0301}
	if err := p.SetGraphemes(0, 2, cps); err != nil {
		t.Fatalf("SetGraphemes: %v", err)
	}
	got := p.LookupGrapheme(0, 2)
	if string(got) != string(cps) {
		t.Fatalf("grapheme round-trip mismatch: got %v want %v", got, cps)
	}
	c := p.GetCell(2, 0)
	if c.Tag() != ContentCodepointGrapheme {
		t.Fatalf("cell tag not codepoint_with_grapheme after SetGraphemes")
	}
	if !p.GetRow(0).HasGrapheme() {
		t.Fatalf("row grapheme flag not set")
	}
	if errs := p.VerifyIntegrity(); len(errs) != 0 {
		t.Fatalf("integrity errors after SetGraphemes: %v", errs)
	}
}

func TestHyperlinkRoundTrip(t *testing.T) {
	p, _ := NewPage(testCapacity())
	h, err := p.InsertHyperlink(Hyperlink{URI: "https://example.com"})
	if err != nil {
		t.Fatalf("InsertHyperlink: %v", err)
	}
	if err := p.SetHyperlink(1, 3, h); err != nil {
		t.Fatalf("SetHyperlink: %v", err)
	}
	got, ok := p.LookupHyperlink(1, 3)
	if !ok || got.URI != "https://example.com" {
		t.Fatalf("hyperlink round-trip mismatch: %+v ok=%v", got, ok)
	}
	if errs := p.VerifyIntegrity(); len(errs) != 0 {
		t.Fatalf("integrity errors after SetHyperlink: %v", errs)
	}
}

func TestMoveCellsRoundTrip(t *testing.T) {
	p, _ := NewPage(testCapacity())
	p.SetCell(0, 0, NewBlankCell().WithRune('A', WideNarrow))
	p.SetCell(1, 0, NewBlankCell().WithRune('B', WideNarrow))
	before := make([]Cell, 2)
	copy(before, p.RowCells(0)[0:2])

	p.MoveCells(0, 0, 0, 5, 2)
	p.MoveCells(0, 5, 0, 0, 2)

	after := p.RowCells(0)[0:2]
	for i := range before {
		if before[i].Rune() != after[i].Rune() {
			t.Fatalf("move round-trip mismatch at %d: %c != %c", i, before[i].Rune(), after[i].Rune())
		}
	}
}

func TestSpacerTailInvariant(t *testing.T) {
	p, _ := NewPage(testCapacity())
	p.SetCell(2, 0, NewBlankCell().WithRune('中', WideWide))
	p.SetCell(3, 0, NewBlankCell().SetWide(WideSpacerTail))
	if errs := p.VerifyIntegrity(); len(errs) != 0 {
		t.Fatalf("valid spacer tail flagged: %v", errs)
	}

	p2, _ := NewPage(testCapacity())
	p2.SetCell(0, 0, NewBlankCell().SetWide(WideSpacerTail))
	errs := p2.VerifyIntegrity()
	found := false
	for _, e := range errs {
		if e.Kind == ErrInvalidSpacerTailLocation {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected InvalidSpacerTailLocation for column-0 spacer tail")
	}
}

func TestCloneIntoEqual(t *testing.T) {
	p, _ := NewPage(testCapacity())
	p.SetCell(0, 0, NewBlankCell().WithRune('Z', WideNarrow))
	dst, _ := NewPage(testCapacity())
	if err := p.CloneInto(dst); err != nil {
		t.Fatalf("CloneInto: %v", err)
	}
	if errs := dst.VerifyIntegrity(); len(errs) != 0 {
		t.Fatalf("cloned page failed integrity: %v", errs)
	}
	for y := 0; y < p.Rows(); y++ {
		for x := 0; x < p.Cols(); x++ {
			if p.GetCell(x, y) != dst.GetCell(x, y) {
				t.Fatalf("clone mismatch at (%d,%d)", x, y)
			}
		}
	}
}

func TestStyleRefCounting(t *testing.T) {
	p, _ := NewPage(testCapacity())
	h, err := p.Styles.Insert(Style{Attrs: AttrBold})
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	c := NewBlankCell()
	c.StyleID = h
	p.SetCell(0, 0, c)
	p.SetCell(1, 0, c)
	p.Styles.Retain(h) // second cell's "reference" bump, mirroring caller bookkeeping

	if p.Styles.RefCount(h) < 2 {
		t.Fatalf("ref count %d less than cell usage", p.Styles.RefCount(h))
	}
	if errs := p.VerifyIntegrity(); len(errs) != 0 {
		t.Fatalf("integrity errors: %v", errs)
	}
}

func TestRecapacityGrowShrink(t *testing.T) {
	p, _ := NewPage(testCapacity())
	p.SetCell(0, 0, NewBlankCell().WithRune('X', WideNarrow))

	grown, err := p.Recapacity(20)
	if err != nil {
		t.Fatalf("Recapacity grow: %v", err)
	}
	if grown.Cols() != 20 {
		t.Fatalf("grown page has %d cols, want 20", grown.Cols())
	}
	if grown.GetCell(0, 0).Rune() != 'X' {
		t.Fatalf("content lost on grow")
	}
	if errs := grown.VerifyIntegrity(); len(errs) != 0 {
		t.Fatalf("integrity errors after grow: %v", errs)
	}

	shrunk, err := grown.Recapacity(4)
	if err != nil {
		t.Fatalf("Recapacity shrink: %v", err)
	}
	if shrunk.Cols() != 4 {
		t.Fatalf("shrunk page has %d cols, want 4", shrunk.Cols())
	}
	if errs := shrunk.VerifyIntegrity(); len(errs) != 0 {
		t.Fatalf("integrity errors after shrink: %v", errs)
	}
}

func TestRecapacityZeroRejected(t *testing.T) {
	p, _ := NewPage(testCapacity())
	if _, err := p.Recapacity(0); err != ErrOutOfMemory {
		t.Fatalf("expected ErrOutOfMemory, got %v", err)
	}
}

func TestGraphemeArenaExhaustion(t *testing.T) {
	cap := testCapacity()
	cap.GraphemeRunes = 2
	p, _ := NewPage(cap)
	if err := p.SetGraphemes(0, 0, []rune{'a', 'b'}); err != nil {
		t.Fatalf("first SetGraphemes: %v", err)
	}
	if err := p.SetGraphemes(0, 1, []rune{'c'}); err != ErrGraphemeAllocOutOfMemory {
		t.Fatalf("expected ErrGraphemeAllocOutOfMemory, got %v", err)
	}
}
