package screen

import (
	"testing"

	"github.com/vtcore-dev/vtcore/cellpage"
)

func testConfig() Config {
	c := DefaultConfig()
	c.Cols, c.Rows = 10, 4
	c.ScrollbackRows = 20
	return c
}

func TestCursorPositioning(t *testing.T) {
	s := New(testConfig())
	s.TestWriteString("\x1b[3;5H")
	x, y := s.CursorPosition()
	if x != 4 || y != 2 {
		t.Fatalf("cursor = (%d,%d), want (4,2)", x, y)
	}
}

func TestPrintAdvancesCursorAndCell(t *testing.T) {
	s := New(testConfig())
	s.TestWriteString("AB")
	x, y := s.CursorPosition()
	if x != 2 || y != 0 {
		t.Fatalf("cursor = (%d,%d), want (2,0)", x, y)
	}
	if r := s.GetCell(0, 0).Rune(); r != 'A' {
		t.Fatalf("cell(0,0) = %q, want 'A'", r)
	}
	if r := s.GetCell(1, 0).Rune(); r != 'B' {
		t.Fatalf("cell(1,0) = %q, want 'B'", r)
	}
}

func TestSoftWrapAtRightMargin(t *testing.T) {
	s := New(testConfig())
	s.TestWriteString("0123456789X")
	x, y := s.CursorPosition()
	if y != 1 || x != 1 {
		t.Fatalf("cursor = (%d,%d), want (1,1) after wrap", x, y)
	}
	if !s.GetRow(s.ActiveToScreen(0)).Wrap() {
		t.Fatalf("row 0 should be marked RowWrap")
	}
	if !s.GetRow(s.ActiveToScreen(1)).WrapContinuation() {
		t.Fatalf("row 1 should be marked RowWrapContinuation")
	}
	if r := s.GetCell(0, s.ActiveToScreen(1)).Rune(); r != 'X' {
		t.Fatalf("wrapped cell = %q, want 'X'", r)
	}
}

func TestWideCharacterOccupiesTwoCells(t *testing.T) {
	s := New(testConfig())
	s.TestWriteString("中")
	c0 := s.GetCell(0, 0)
	c1 := s.GetCell(1, 0)
	if c0.WideState() != cellpage.WideWide {
		t.Fatalf("cell(0,0) wide state = %v, want WideWide", c0.WideState())
	}
	if c1.WideState() != cellpage.WideSpacerTail {
		t.Fatalf("cell(1,0) wide state = %v, want WideSpacerTail", c1.WideState())
	}
	x, _ := s.CursorPosition()
	if x != 2 {
		t.Fatalf("cursor.X = %d, want 2", x)
	}
}

func TestCombiningMarkFoldsIntoBaseCell(t *testing.T) {
	s := New(testConfig())
	s.TestWriteString("é")
	x, _ := s.CursorPosition()
	if x != 1 {
		t.Fatalf("cursor.X = %d, want 1 (combining mark should not advance)", x)
	}
	c := s.GetCell(0, 0)
	if c.Tag() != cellpage.ContentCodepointGrapheme {
		t.Fatalf("cell(0,0) tag = %v, want ContentCodepointGrapheme", c.Tag())
	}
}

func TestSGRColonAndSemicolonExtendedColor(t *testing.T) {
	s := New(testConfig())
	s.TestWriteString("\x1b[38;5;196mX")
	if s.cursor.Style.Fg == nil {
		t.Fatalf("expected foreground color to be set")
	}

	s = New(testConfig())
	s.TestWriteString("\x1b[38:5:196mX")
	if s.cursor.Style.Fg == nil {
		t.Fatalf("expected foreground color to be set from the colon form")
	}
}

func TestSGRResetClearsAttributes(t *testing.T) {
	s := New(testConfig())
	s.TestWriteString("\x1b[1m\x1b[0mX")
	if s.cursor.Style.Attrs != 0 {
		t.Fatalf("Attrs = %v, want 0 after SGR reset", s.cursor.Style.Attrs)
	}
}

func TestLineFeedScrollsIntoHistory(t *testing.T) {
	s := New(testConfig())
	for i := 0; i < 5; i++ {
		s.TestWriteString("line\r\n")
	}
	if s.Scrollback().Len() == 0 {
		t.Fatalf("expected scrollback to have grown")
	}
}

func TestEraseInLineAll(t *testing.T) {
	s := New(testConfig())
	s.TestWriteString("ABCDE\x1b[2K")
	for x := 0; x < 5; x++ {
		if !s.GetCell(x, 0).IsEmpty() {
			t.Fatalf("cell(%d,0) should be blank after CSI 2K", x)
		}
	}
}

func TestScrollRegionConstrainsCursorMovement(t *testing.T) {
	s := New(testConfig())
	s.TestWriteString("\x1b[2;3r\x1b[1;1H\x1b[5A")
	_, y := s.CursorPosition()
	if y != 0 {
		t.Fatalf("cursor.Y = %d, want 0 (CUP outside margins is unaffected by the region)", y)
	}
}

func TestHyperlinkSinkCallback(t *testing.T) {
	var gotURI string
	sink := &recordingSink{onHyperlink: func(l cellpage.Hyperlink, id string) { gotURI = l.URI }}
	s := New(testConfig(), WithSink(sink))
	s.TestWriteString("\x1b]8;;http://example.com\x1b\\link\x1b]8;;\x1b\\")
	if gotURI != "http://example.com" {
		t.Fatalf("hyperlink URI = %q, want http://example.com", gotURI)
	}
}

type recordingSink struct {
	NoopSink
	onHyperlink func(cellpage.Hyperlink, string)
}

func (r *recordingSink) Hyperlink(l cellpage.Hyperlink, id string) {
	if r.onHyperlink != nil {
		r.onHyperlink(l, id)
	}
}
