package vtcore

import (
	"fmt"
	"strings"

	"github.com/vtcore-dev/vtcore/cellpage"
)

// RenderANSI re-serializes the active area as an ANSI byte stream: SGR
// sequences for style/attribute changes plus the cell content, one line
// per row, trimmed of trailing blank cells. Re-feeding the result into
// a fresh Terminal reproduces the same visible screen, modulo cursor
// position and scrollback. Pixel/font rendering is out of scope; this
// is the terminal's rendering, not a rasterizer's.
func (t *Terminal) RenderANSI() string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	page := t.screen.ActivePage()
	var b strings.Builder
	for row := 0; row < page.Rows(); row++ {
		if row > 0 {
			b.WriteString("\r\n")
		}
		renderANSILine(&b, page, row)
	}
	b.WriteString("\x1b[0m")
	return b.String()
}

func renderANSILine(b *strings.Builder, page *cellpage.Page, row int) {
	cells := page.RowCells(row)
	last := -1
	for i, c := range cells {
		if c.WideState() != cellpage.WideSpacerTail && c.WideState() != cellpage.WideSpacerHead && !c.IsEmpty() {
			last = i
		}
	}
	var curStyle uint32 = 0xffffffff
	for i := 0; i <= last; i++ {
		c := cells[i]
		if c.WideState() == cellpage.WideSpacerTail {
			continue
		}
		if c.StyleID != curStyle {
			writeSGR(b, page.Styles.Lookup(c.StyleID))
			curStyle = c.StyleID
		}
		b.WriteRune(cellRune(c))
		if c.Tag() == cellpage.ContentCodepointGrapheme {
			b.WriteString(string(page.LookupGrapheme(row, i)))
		}
	}
}

// writeSGR emits the minimal SGR sequence to set the terminal's
// rendering attributes to match style.
func writeSGR(b *strings.Builder, style cellpage.Style) {
	params := []string{"0"}
	a := style.Attrs
	if a&cellpage.AttrBold != 0 {
		params = append(params, "1")
	}
	if a&cellpage.AttrDim != 0 {
		params = append(params, "2")
	}
	if a&cellpage.AttrItalic != 0 {
		params = append(params, "3")
	}
	if a&cellpage.AttrUnderline != 0 {
		params = append(params, "4")
	}
	if a&cellpage.AttrBlinkSlow != 0 {
		params = append(params, "5")
	}
	if a&cellpage.AttrBlinkFast != 0 {
		params = append(params, "6")
	}
	if a&cellpage.AttrReverse != 0 {
		params = append(params, "7")
	}
	if a&cellpage.AttrHidden != 0 {
		params = append(params, "8")
	}
	if a&cellpage.AttrStrike != 0 {
		params = append(params, "9")
	}
	if a&cellpage.AttrDoubleUnderline != 0 {
		params = append(params, "21")
	}
	if style.Fg != nil {
		rgba := ResolveDefaultColor(style.Fg, true)
		params = append(params, fmt.Sprintf("38;2;%d;%d;%d", rgba.R, rgba.G, rgba.B))
	}
	if style.Bg != nil {
		rgba := ResolveDefaultColor(style.Bg, false)
		params = append(params, fmt.Sprintf("48;2;%d;%d;%d", rgba.R, rgba.G, rgba.B))
	}
	b.WriteString("\x1b[")
	b.WriteString(strings.Join(params, ";"))
	b.WriteByte('m')
}
