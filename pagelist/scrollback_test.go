package pagelist

import (
	"testing"

	"github.com/vtcore-dev/vtcore/cellpage"
)

func testRowCap() cellpage.Capacity {
	return cellpage.Capacity{
		MaxStyles: 4, GraphemeRunes: 16, MaxGraphemeCells: 4,
		StringBytes: 64, MaxHyperlinks: 4, MaxHyperlinkCells: 4,
	}
}

func TestScrollbackTopBottom(t *testing.T) {
	sb := NewScrollback(10, 5, 24, testRowCap())
	for i := 0; i < 5; i++ {
		sb.PushRow(sb.blankRow())
	}
	sb.Scroll(ScrollTop())
	if sb.Viewport() != 0 {
		t.Fatalf("viewport after ScrollTop = %d, want 0", sb.Viewport())
	}
	sb.Scroll(ScrollBottom())
	if sb.Viewport() != 5 {
		t.Fatalf("viewport after ScrollBottom = %d, want 5", sb.Viewport())
	}
}

func TestScrollbackDeltaGrowsAtBottom(t *testing.T) {
	sb := NewScrollback(10, 3, 24, testRowCap())
	sb.PushRow(sb.blankRow())
	sb.Scroll(ScrollBottom())
	sb.Scroll(ScrollDelta(5)) // pushes 5 blank rows; capacity 3 keeps only the newest 3
	if sb.Len() != 3 {
		t.Fatalf("Len after growing delta = %d, want 3", sb.Len())
	}
	if sb.Viewport() != sb.maxViewport() {
		t.Fatalf("viewport %d != maxViewport %d after grow", sb.Viewport(), sb.maxViewport())
	}
}

func TestScrollbackDeltaSaturatesAtZero(t *testing.T) {
	sb := NewScrollback(10, 5, 24, testRowCap())
	sb.Scroll(ScrollDelta(-100))
	if sb.Viewport() != 0 {
		t.Fatalf("viewport = %d, want 0", sb.Viewport())
	}
}

func TestScrollbackDeltaNoGrowClamps(t *testing.T) {
	sb := NewScrollback(10, 5, 24, testRowCap())
	for i := 0; i < 3; i++ {
		sb.PushRow(sb.blankRow())
	}
	sb.Scroll(ScrollDeltaNoGrow(100))
	if sb.Viewport() != 3 {
		t.Fatalf("viewport = %d, want 3 (clamped, no growth)", sb.Viewport())
	}
	if sb.Len() != 3 {
		t.Fatalf("Len = %d, want 3 (no growth)", sb.Len())
	}
}
