package screen

import (
	"image/color"

	"github.com/vtcore-dev/vtcore/cellpage"
)

// ansi16 is the standard 16-color ANSI palette, the same RGB values the
// root package's colors.go DefaultPalette uses for indices 0-15 (kept
// duplicated here rather than imported to avoid a dependency from
// screen back onto the root package).
var ansi16 = [16]color.RGBA{
	{0, 0, 0, 255}, {205, 49, 49, 255}, {13, 188, 121, 255}, {229, 229, 16, 255},
	{36, 114, 200, 255}, {188, 63, 188, 255}, {17, 168, 205, 255}, {229, 229, 229, 255},
	{102, 102, 102, 255}, {241, 76, 76, 255}, {35, 209, 139, 255}, {245, 245, 67, 255},
	{59, 142, 234, 255}, {214, 112, 214, 255}, {41, 184, 219, 255}, {255, 255, 255, 255},
}

func paletteColor(idx int) color.Color {
	if idx >= 0 && idx < 16 {
		return ansi16[idx]
	}
	if idx >= 16 && idx < 232 {
		i := idx - 16
		r := i / 36
		g := (i / 6) % 6
		b := i % 6
		return color.RGBA{R: uint8(r * 51), G: uint8(g * 51), B: uint8(b * 51), A: 255}
	}
	if idx >= 232 && idx < 256 {
		gray := uint8(8 + (idx-232)*10)
		return color.RGBA{R: gray, G: gray, B: gray, A: 255}
	}
	return ansi16[7]
}

// applySGR updates the cursor's pending Style from a CSI `m` parameter
// list, honoring the extended-color forms `38/48;5;n` and
// `38/48;2;r;g;b` (colon or semicolon separated, per §4.B's note that
// SGR is the one final byte colon subparameters are accepted for).
func (s *Screen) applySGR(params []uint16) {
	if len(params) == 0 {
		params = []uint16{0}
	}
	st := &s.cursor.Style
	for i := 0; i < len(params); i++ {
		p := int(params[i])
		switch {
		case p == 0:
			*st = cellpage.Style{}
		case p == 1:
			st.Attrs |= cellpage.AttrBold
		case p == 2:
			st.Attrs |= cellpage.AttrDim
		case p == 3:
			st.Attrs |= cellpage.AttrItalic
		case p == 4:
			st.Attrs |= cellpage.AttrUnderline
		case p == 7:
			st.Attrs |= cellpage.AttrReverse
		case p == 9:
			st.Attrs |= cellpage.AttrStrike
		case p == 22:
			st.Attrs &^= cellpage.AttrBold | cellpage.AttrDim
		case p == 23:
			st.Attrs &^= cellpage.AttrItalic
		case p == 24:
			st.Attrs &^= cellpage.AttrUnderline
		case p == 27:
			st.Attrs &^= cellpage.AttrReverse
		case p == 29:
			st.Attrs &^= cellpage.AttrStrike
		case p >= 30 && p <= 37:
			st.Fg = paletteColor(p - 30)
		case p == 38:
			if c := s.consumeExtendedColor(params, &i); c != nil {
				st.Fg = c
			}
		case p == 39:
			st.Fg = nil
		case p >= 40 && p <= 47:
			st.Bg = paletteColor(p - 40)
		case p == 48:
			if c := s.consumeExtendedColor(params, &i); c != nil {
				st.Bg = c
			}
		case p == 49:
			st.Bg = nil
		case p >= 90 && p <= 97:
			st.Fg = paletteColor(p - 90 + 8)
		case p >= 100 && p <= 107:
			st.Bg = paletteColor(p - 100 + 8)
		}
	}
	s.cursor.dirty = true
}

// consumeExtendedColor parses a 38/48;5;n or 38/48;2;r;g;b run starting
// at params[*i+1], advancing *i past it, and returns the resolved
// color (nil if malformed).
func (s *Screen) consumeExtendedColor(params []uint16, i *int) color.Color {
	if *i+1 >= len(params) {
		return nil
	}
	switch params[*i+1] {
	case 5:
		if *i+2 >= len(params) {
			return nil
		}
		*i += 2
		return paletteColor(int(params[*i]))
	case 2:
		if *i+4 >= len(params) {
			return nil
		}
		r, g, b := params[*i+2], params[*i+3], params[*i+4]
		*i += 4
		return color.RGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: 255}
	}
	return nil
}
