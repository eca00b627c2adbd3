package screen

import "github.com/vtcore-dev/vtcore/cellpage"

// Cursor tracks the active-area write position and pen state, keyed to
// a cellpage.StyleHandle instead of direct color fields (the screen
// interns its current pen
// into the active page's StyleSet lazily, on first use).
type Cursor struct {
	X, Y    int
	Style   cellpage.Style
	styleID cellpage.StyleHandle
	dirty   bool

	// Hyperlink is the handle of the hyperlink currently "active" for
	// OSC 8, applied to cells printed until the next hyperlink_end.
	Hyperlink cellpage.HyperlinkHandle
}
