package cellpage

import "image/color"

// StyleAttrs is the SGR attribute bitmask. It lives in the page's own
// style set rather than on every cell, matching §3 Page's "style set:
// reference-counted interning table keyed by style contents, returning
// small integer style_ids".
type StyleAttrs uint16

const (
	AttrBold StyleAttrs = 1 << iota
	AttrDim
	AttrItalic
	AttrUnderline
	AttrDoubleUnderline
	AttrCurlyUnderline
	AttrBlinkSlow
	AttrBlinkFast
	AttrReverse
	AttrHidden
	AttrStrike
)

// Style is the value a style_id is interned from. Equal Styles always
// resolve to the same handle (§9 "ref-counted interning sets").
type Style struct {
	Fg, Bg, Underline color.Color
	Attrs             StyleAttrs
}

type styleEntry struct {
	style    Style
	refCount uint32
}

// StyleSet is a ref-counted interning table mapping Style values to
// compact StyleHandles. Its lookup index is a Go map, not an
// open-addressed table, so it never needs a rehash. Handle 0 is
// reserved for the default style and is never stored in the table.
type StyleSet struct {
	entries  []styleEntry
	byStyle  map[Style]StyleHandle
	capacity int
}

// NewStyleSet creates a style set bounded to capacity distinct,
// non-default styles (the page capacity knob from §6).
func NewStyleSet(capacity int) *StyleSet {
	return &StyleSet{
		entries:  make([]styleEntry, 1, capacity+1), // index 0 unused (default style)
		byStyle:  make(map[Style]StyleHandle, capacity),
		capacity: capacity,
	}
}

// Insert interns s and returns its handle with an incremented ref
// count. The zero Style always maps to handle 0 without consuming
// capacity.
func (ss *StyleSet) Insert(s Style) (StyleHandle, error) {
	if s == (Style{}) {
		return 0, nil
	}
	if h, ok := ss.byStyle[s]; ok {
		ss.entries[h].refCount++
		return h, nil
	}
	if len(ss.entries)-1 >= ss.capacity {
		return 0, ErrStyleSetOutOfMemory
	}
	h := StyleHandle(len(ss.entries))
	ss.entries = append(ss.entries, styleEntry{style: s, refCount: 1})
	ss.byStyle[s] = h
	return h, nil
}

// Lookup returns the Style a handle was interned from. Handle 0
// always resolves to the zero Style.
func (ss *StyleSet) Lookup(h StyleHandle) Style {
	if h == 0 || int(h) >= len(ss.entries) {
		return Style{}
	}
	return ss.entries[h].style
}

// Retain increments h's ref count without re-interning; used by
// Page.CopyRowsFrom's same-page path and other paths that duplicate a
// handle reference without going through Insert.
func (ss *StyleSet) Retain(h StyleHandle) {
	if h == 0 || int(h) >= len(ss.entries) {
		return
	}
	ss.entries[h].refCount++
}

// Release decrements h's ref count. It never reclaims the slot itself
// (handles are stable for the page's lifetime); a zero ref count
// simply means no live cell currently references the style.
func (ss *StyleSet) Release(h StyleHandle) {
	if h == 0 || int(h) >= len(ss.entries) {
		return
	}
	if ss.entries[h].refCount > 0 {
		ss.entries[h].refCount--
	}
}

// RefCount reports the current ref count for a handle, used by
// VerifyIntegrity to check it is >= the number of referencing cells.
func (ss *StyleSet) RefCount(h StyleHandle) uint32 {
	if h == 0 || int(h) >= len(ss.entries) {
		return 0
	}
	return ss.entries[h].refCount
}

// Len returns the number of distinct non-default styles interned.
func (ss *StyleSet) Len() int { return len(ss.entries) - 1 }
