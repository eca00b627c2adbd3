// Package selection implements Selection geometry: two pinned screen
// coordinates plus a rectangle flag, with ordering, normalization, and
// directional adjustment over a screen's row/cell content (§4.G).
package selection

// Point is a (column, row) coordinate in absolute screen-row space
// (§3 "a pin is a stable reference to a (page, row, column)"; this
// package operates on the resolved row index a pin currently maps to,
// leaving pin stability itself to the screen package).
type Point struct {
	X, Y int
}

// Less reports whether p sorts before o in row-major order.
func (p Point) Less(o Point) bool {
	if p.Y != o.Y {
		return p.Y < o.Y
	}
	return p.X < o.X
}

// Direction is one of the directional adjustments Selection.Adjust accepts.
type Direction uint8

const (
	DirLeft Direction = iota
	DirRight
	DirUp
	DirDown
	DirHome
	DirEnd
	DirPageUp
	DirPageDown
	DirBeginningOfLine
	DirEndOfLine
)

// RectOrder disambiguates the four diagonal orientations a rectangular
// selection can have (§3 Selection).
type RectOrder uint8

const (
	RectForward RectOrder = iota
	RectReverse
	RectMirroredForward
	RectMirroredReverse
)

// Content is the minimal row-query surface Selection needs from a
// screen to skip blank cells during Adjust and to bound Down/Up at
// the last non-empty row. Implemented by screen.Screen.
type Content interface {
	// Cols returns the number of columns per row.
	Cols() int
	// LastNonEmptyRow returns the row index of the last row that has
	// any non-blank cell at or above maxY, or -1 if none.
	LastNonEmptyRow(maxY int) int
	// IsBlankCell reports whether the cell at (x, y) is blank.
	IsBlankCell(x, y int) bool
	// MaxY returns the largest valid row index (history + active).
	MaxY() int
}

// Selection is a pinned region: start/end pins plus a rectangle flag.
// Order is always derived on demand from the pins, never stored.
type Selection struct {
	Start     Point
	End       Point
	Rectangle bool
}

// New creates a Selection between start and end.
func New(start, end Point, rectangle bool) Selection {
	return Selection{Start: start, End: end, Rectangle: rectangle}
}

// forward reports whether Start sorts before or equal to End.
func (s Selection) forward() bool { return !s.End.Less(s.Start) }

// Order returns RectForward/RectReverse for a linear selection read
// top-left-to-bottom-right vs. the reverse, and for rectangular
// selections additionally distinguishes the two mirrored diagonal
// cases: mirrored_forward is top-right→bottom-left, mirrored_reverse
// is bottom-left→top-right.
func (s Selection) Order() RectOrder {
	fwd := s.forward()
	if !s.Rectangle {
		if fwd {
			return RectForward
		}
		return RectReverse
	}
	colForward := s.End.X >= s.Start.X
	switch {
	case fwd && colForward:
		return RectForward
	case fwd && !colForward:
		return RectMirroredForward
	case !fwd && colForward:
		return RectMirroredReverse
	default:
		return RectReverse
	}
}

// Ordered returns (first, second) such that first ≤ second in
// row-major order, resolving ties by Order().
func (s Selection) Ordered() (Point, Point) {
	if s.forward() {
		return s.Start, s.End
	}
	return s.End, s.Start
}

// TopLeft returns the first pin in row-major order. For a rectangular
// selection its X is the smaller of the two pins' columns, making it
// the top-left corner of the rectangle.
func (s Selection) TopLeft() Point {
	first, second := s.Ordered()
	x := first.X
	if s.Rectangle && second.X < x {
		x = second.X
	}
	return Point{X: x, Y: first.Y}
}

// BottomRight returns the second pin in row-major order. For a
// rectangular selection its X is the larger of the two pins' columns,
// making it the bottom-right corner of the rectangle.
func (s Selection) BottomRight() Point {
	first, second := s.Ordered()
	x := second.X
	if s.Rectangle && first.X > x {
		x = first.X
	}
	return Point{X: x, Y: second.Y}
}

// Contains reports whether p falls within the selection.
func (s Selection) Contains(p Point) bool {
	tl, br := s.TopLeft(), s.BottomRight()
	if p.Y < tl.Y || p.Y > br.Y {
		return false
	}
	if s.Rectangle {
		return p.X >= tl.X && p.X <= br.X
	}
	if tl.Y == br.Y {
		return p.X >= tl.X && p.X <= br.X
	}
	if p.Y == tl.Y {
		return p.X >= tl.X
	}
	if p.Y == br.Y {
		return p.X <= br.X
	}
	return true
}

// ContainsRow reports whether any column of row p.Y is within the selection.
func (s Selection) ContainsRow(p Point) bool {
	tl, br := s.TopLeft(), s.BottomRight()
	return p.Y >= tl.Y && p.Y <= br.Y
}

// ContainedRow returns the clipped single-row selection for row y, or
// ok=false if the selection does not cover y.
func (s Selection) ContainedRow(cols int, y int) (Selection, bool) {
	tl, br := s.TopLeft(), s.BottomRight()
	if y < tl.Y || y > br.Y {
		return Selection{}, false
	}
	left, right := tl.X, br.X
	if !s.Rectangle {
		if tl.Y != br.Y {
			switch {
			case y == tl.Y:
				right = cols - 1
			case y == br.Y:
				left = 0
			default:
				left, right = 0, cols-1
			}
		}
	}
	return Selection{Start: Point{X: left, Y: y}, End: Point{X: right, Y: y}, Rectangle: true}, true
}

// Within reports whether the selection's row range intersects [start, end].
func (s Selection) Within(start, end int) bool {
	tl, br := s.TopLeft(), s.BottomRight()
	return tl.Y <= end && br.Y >= start
}

// ToViewport translates a screen-absolute selection into viewport-
// relative coordinates given the viewport's top row offset.
func (s Selection) ToViewport(viewportTop int) Selection {
	return Selection{
		Start:     Point{X: s.Start.X, Y: s.Start.Y - viewportTop},
		End:       Point{X: s.End.X, Y: s.End.Y - viewportTop},
		Rectangle: s.Rectangle,
	}
}

// Adjust moves the End pin in direction dir against content, following
// §4.G: left/right skip blank cells and wrap to adjacent rows; down
// stops at the last non-empty row then clamps to end-of-line; up
// clamps to row 0, column 0. The Start pin never moves, so dragging a
// selection in either direction behaves naturally from the anchor.
func (s Selection) Adjust(content Content, dir Direction) Selection {
	next := s
	cols := content.Cols()
	switch dir {
	case DirLeft:
		next.End = adjustLeft(content, s.End, cols)
	case DirRight:
		next.End = adjustRight(content, s.End, cols)
	case DirUp:
		y := s.End.Y - 1
		if y < 0 {
			next.End = Point{X: 0, Y: 0}
		} else {
			next.End = Point{X: s.End.X, Y: y}
		}
	case DirDown:
		lastRow := content.LastNonEmptyRow(content.MaxY())
		y := s.End.Y + 1
		if lastRow >= 0 && y > lastRow {
			y = lastRow
			next.End = Point{X: cols - 1, Y: y}
		} else {
			next.End = Point{X: s.End.X, Y: y}
		}
	case DirHome:
		next.End = Point{X: 0, Y: 0}
	case DirEnd:
		lastRow := content.LastNonEmptyRow(content.MaxY())
		if lastRow < 0 {
			lastRow = 0
		}
		next.End = Point{X: cols - 1, Y: lastRow}
	case DirPageUp:
		y := s.End.Y - content.MaxY()
		if y < 0 {
			y = 0
		}
		next.End = Point{X: s.End.X, Y: y}
	case DirPageDown:
		y := s.End.Y + content.MaxY()
		if max := content.MaxY(); y > max {
			y = max
		}
		next.End = Point{X: s.End.X, Y: y}
	case DirBeginningOfLine:
		next.End = Point{X: 0, Y: s.End.Y}
	case DirEndOfLine:
		next.End = Point{X: cols - 1, Y: s.End.Y}
	}
	return next
}

func adjustLeft(content Content, p Point, cols int) Point {
	x, y := p.X, p.Y
	for {
		x--
		if x < 0 {
			if y == 0 {
				return Point{X: 0, Y: 0}
			}
			y--
			x = cols - 1
		}
		if !content.IsBlankCell(x, y) || x == 0 {
			return Point{X: x, Y: y}
		}
	}
}

func adjustRight(content Content, p Point, cols int) Point {
	x, y := p.X, p.Y
	maxY := content.MaxY()
	for {
		x++
		if x >= cols {
			if y >= maxY {
				return Point{X: cols - 1, Y: maxY}
			}
			y++
			x = 0
		}
		if !content.IsBlankCell(x, y) || x == cols-1 {
			return Point{X: x, Y: y}
		}
	}
}
