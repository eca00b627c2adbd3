package vtcore

import (
	"fmt"
	"image/color"

	"github.com/vtcore-dev/vtcore/cellpage"
)

// SnapshotDetail specifies the level of detail in a snapshot.
type SnapshotDetail string

const (
	// SnapshotDetailText returns plain text only.
	SnapshotDetailText SnapshotDetail = "text"
	// SnapshotDetailStyled returns text with style segments per line.
	SnapshotDetailStyled SnapshotDetail = "styled"
	// SnapshotDetailFull returns full cell-by-cell data.
	SnapshotDetailFull SnapshotDetail = "full"
)

// Snapshot represents a complete terminal screen capture.
type Snapshot struct {
	Size   SnapshotSize   `json:"size"`
	Cursor SnapshotCursor `json:"cursor"`
	Lines  []SnapshotLine `json:"lines"`
}

// SnapshotSize holds terminal dimensions.
type SnapshotSize struct {
	Rows int `json:"rows"`
	Cols int `json:"cols"`
}

// SnapshotCursor holds cursor state.
type SnapshotCursor struct {
	Row   int    `json:"row"`
	Col   int    `json:"col"`
	Style string `json:"style"`
}

// SnapshotLine represents a single line in the snapshot.
type SnapshotLine struct {
	Text     string            `json:"text"`
	Segments []SnapshotSegment `json:"segments,omitempty"`
	Cells    []SnapshotCell    `json:"cells,omitempty"`
}

// SnapshotSegment represents a styled text segment within a line.
type SnapshotSegment struct {
	Text       string        `json:"text"`
	Fg         string        `json:"fg,omitempty"`
	Bg         string        `json:"bg,omitempty"`
	Attributes SnapshotAttrs `json:"attrs,omitempty"`
	Hyperlink  *SnapshotLink `json:"hyperlink,omitempty"`
}

// SnapshotCell represents a single cell with full attributes.
type SnapshotCell struct {
	Char       string        `json:"char"`
	Fg         string        `json:"fg"`
	Bg         string        `json:"bg"`
	Attributes SnapshotAttrs `json:"attrs,omitempty"`
	Hyperlink  *SnapshotLink `json:"hyperlink,omitempty"`
	Wide       bool          `json:"wide,omitempty"`
	WideSpacer bool          `json:"wide_spacer,omitempty"`
}

// SnapshotAttrs holds text formatting attributes.
type SnapshotAttrs struct {
	Bold          bool `json:"bold,omitempty"`
	Dim           bool `json:"dim,omitempty"`
	Italic        bool `json:"italic,omitempty"`
	Underline     bool `json:"underline,omitempty"`
	Blink         bool `json:"blink,omitempty"`
	Reverse       bool `json:"reverse,omitempty"`
	Hidden        bool `json:"hidden,omitempty"`
	Strikethrough bool `json:"strikethrough,omitempty"`
}

// SnapshotLink holds hyperlink information.
type SnapshotLink struct {
	ID  string `json:"id,omitempty"`
	URI string `json:"uri"`
}

// Snapshot creates a snapshot of the current terminal state. The
// detail parameter controls how much information is included.
func (t *Terminal) Snapshot(detail SnapshotDetail) *Snapshot {
	t.mu.RLock()
	defer t.mu.RUnlock()

	page := t.screen.ActivePage()
	x, y := t.screen.CursorPosition()
	snap := &Snapshot{
		Size: SnapshotSize{Rows: page.Rows(), Cols: page.Cols()},
		Cursor: SnapshotCursor{
			Row:   y,
			Col:   x,
			Style: cursorStyleToString(CursorStyleSteadyBlock),
		},
		Lines: make([]SnapshotLine, page.Rows()),
	}
	for row := 0; row < page.Rows(); row++ {
		snap.Lines[row] = t.snapshotLine(page, row, detail)
	}
	return snap
}

func (t *Terminal) snapshotLine(page *cellpage.Page, row int, detail SnapshotDetail) SnapshotLine {
	line := SnapshotLine{Text: t.lineContentLocked(page, row)}
	switch detail {
	case SnapshotDetailStyled:
		line.Segments = lineToSegments(page, row)
	case SnapshotDetailFull:
		line.Cells = lineToCells(page, row)
	}
	return line
}

func lineToSegments(page *cellpage.Page, row int) []SnapshotSegment {
	var segments []SnapshotSegment
	var current *SnapshotSegment
	var currentChars []rune

	cells := page.RowCells(row)
	for col, cell := range cells {
		if cell.WideState() == cellpage.WideSpacerTail {
			continue
		}
		style := page.Styles.Lookup(cell.StyleID)
		fg, bg := colorToHex(style.Fg), colorToHex(style.Bg)
		attrs := attrsToSnapshot(style.Attrs)
		link := hyperlinkToSnapshot(page, row, col, cell)

		if current == nil || !segmentMatches(current, fg, bg, attrs, link) {
			if current != nil && len(currentChars) > 0 {
				current.Text = string(currentChars)
				segments = append(segments, *current)
			}
			current = &SnapshotSegment{Fg: fg, Bg: bg, Attributes: attrs, Hyperlink: link}
			currentChars = nil
		}
		currentChars = append(currentChars, cellRune(cell))
	}
	if current != nil && len(currentChars) > 0 {
		current.Text = string(currentChars)
		segments = append(segments, *current)
	}
	return segments
}

func lineToCells(page *cellpage.Page, row int) []SnapshotCell {
	cells := page.RowCells(row)
	out := make([]SnapshotCell, 0, len(cells))
	for col, cell := range cells {
		style := page.Styles.Lookup(cell.StyleID)
		out = append(out, SnapshotCell{
			Char:       string(cellRune(cell)),
			Fg:         colorToHex(style.Fg),
			Bg:         colorToHex(style.Bg),
			Attributes: attrsToSnapshot(style.Attrs),
			Hyperlink:  hyperlinkToSnapshot(page, row, col, cell),
			Wide:       cell.WideState() == cellpage.WideWide,
			WideSpacer: cell.WideState() == cellpage.WideSpacerTail || cell.WideState() == cellpage.WideSpacerHead,
		})
	}
	return out
}

func cellRune(c cellpage.Cell) rune {
	if c.Tag() == cellpage.ContentCodepoint || c.Tag() == cellpage.ContentCodepointGrapheme {
		return c.Rune()
	}
	return ' '
}

func segmentMatches(seg *SnapshotSegment, fg, bg string, attrs SnapshotAttrs, link *SnapshotLink) bool {
	if seg.Fg != fg || seg.Bg != bg || seg.Attributes != attrs {
		return false
	}
	if seg.Hyperlink == nil && link == nil {
		return true
	}
	if seg.Hyperlink == nil || link == nil {
		return false
	}
	return seg.Hyperlink.URI == link.URI && seg.Hyperlink.ID == link.ID
}

// colorToHex converts a cellpage style color to a hex string via
// ResolveDefaultColor; nil ("default") yields "".
func colorToHex(c color.Color) string {
	if c == nil {
		return ""
	}
	rgba := ResolveDefaultColor(c, true)
	return fmt.Sprintf("#%02x%02x%02x", rgba.R, rgba.G, rgba.B)
}

func attrsToSnapshot(a cellpage.StyleAttrs) SnapshotAttrs {
	return SnapshotAttrs{
		Bold:          a&cellpage.AttrBold != 0,
		Dim:           a&cellpage.AttrDim != 0,
		Italic:        a&cellpage.AttrItalic != 0,
		Underline:     a&(cellpage.AttrUnderline|cellpage.AttrDoubleUnderline|cellpage.AttrCurlyUnderline) != 0,
		Blink:         a&(cellpage.AttrBlinkSlow|cellpage.AttrBlinkFast) != 0,
		Reverse:       a&cellpage.AttrReverse != 0,
		Hidden:        a&cellpage.AttrHidden != 0,
		Strikethrough: a&cellpage.AttrStrike != 0,
	}
}

func hyperlinkToSnapshot(page *cellpage.Page, row, col int, c cellpage.Cell) *SnapshotLink {
	if c.Hyperlink == 0 {
		return nil
	}
	link, ok := page.LookupHyperlink(row, col)
	if !ok {
		return nil
	}
	return &SnapshotLink{ID: link.ID, URI: link.URI}
}
