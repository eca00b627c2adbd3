// Package screen implements Screen: the orchestrator that owns the
// page list, cursor, active area, and scroll region, and exposes
// row/cell read/write over the four row-index tags (screen, viewport,
// active, history) described in §4.F.
package screen

import (
	"github.com/vtcore-dev/vtcore/cellpage"
	"github.com/vtcore-dev/vtcore/oscparse"
	"github.com/vtcore-dev/vtcore/pagelist"
	"github.com/vtcore-dev/vtcore/vtparse"
)

// Config carries the §6 enumerated page/scrollback capacity knobs.
type Config struct {
	Cols, Rows     int
	ScrollbackRows int

	MaxStyles         int
	GraphemeRunes     int
	MaxGraphemeCells  int
	StringBytes       int
	MaxHyperlinks     int
	MaxHyperlinkCells int

	// MaxOSCBytes bounds OSC/DCS payload capture (§6). Values below 256
	// reject all non-trivial payloads, matching oscparse's own floor.
	MaxOSCBytes int
	// OSCAllocator mirrors §6's "allocator for OSC dynamic strings"; Go
	// has no manual allocator, so its presence/absence is the idiomatic
	// analogue: true lets clipboard/kitty-color payloads grow past the
	// fixed 2 KiB buffer instead of being marked Incomplete.
	OSCAllocator bool
}

// DefaultConfig returns sane defaults: 80x24, 10,000 scrollback rows,
// 1 MiB OSC payload cap (§6 defaults).
func DefaultConfig() Config {
	return Config{
		Cols: 80, Rows: 24,
		ScrollbackRows:    10000,
		MaxStyles:         512,
		GraphemeRunes:     1 << 16,
		MaxGraphemeCells:  4096,
		StringBytes:       1 << 16,
		MaxHyperlinks:     1024,
		MaxHyperlinkCells: 4096,
		MaxOSCBytes:       1 << 20,
	}
}

func (c Config) pageCapacity() cellpage.Capacity {
	return cellpage.Capacity{
		Cols: c.Cols, Rows: c.Rows,
		MaxStyles:         c.MaxStyles,
		GraphemeRunes:     c.GraphemeRunes,
		MaxGraphemeCells:  c.MaxGraphemeCells,
		StringBytes:       c.StringBytes,
		MaxHyperlinks:     c.MaxHyperlinks,
		MaxHyperlinkCells: c.MaxHyperlinkCells,
	}
}

func (c Config) rowCapacity() cellpage.Capacity {
	cap := c.pageCapacity()
	// History rows get a share of the active page's per-cell capacity
	// knobs; a full Cols×Rows-sized budget per scrollback row would be
	// wasteful since history rows hold at most Cols cells of state.
	cap.MaxStyles = max(1, c.MaxStyles/c.Rows)
	cap.GraphemeRunes = max(4, c.GraphemeRunes/c.Rows)
	cap.MaxGraphemeCells = max(1, c.MaxGraphemeCells/c.Rows)
	cap.StringBytes = max(16, c.StringBytes/c.Rows)
	cap.MaxHyperlinks = max(1, c.MaxHyperlinks/c.Rows)
	cap.MaxHyperlinkCells = max(1, c.MaxHyperlinkCells/c.Rows)
	return cap
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// Sink receives side effects from OSC commands the screen can't itself
// own: window title/icon changes, clipboard payloads, notifications,
// palette operations, and query replies. Screen calls its Sink without
// a nil check, so WithSink(nil) is not a way to discard callbacks; New
// installs NoopSink by default, the root package's Noop...Provider
// convention (doc.go) lifted to this layer.
type Sink interface {
	Title(text string)
	Icon(text string)
	Hyperlink(link cellpage.Hyperlink, id string)
	Notification(title, body string)
	Progress(state oscparse.ProgressState, value int, hasValue bool)
	Clipboard(kind byte, data string)
	WorkingDirectory(url string)
	// Bell is called on a C0 BEL (0x07).
	Bell()
	// SetColor is called for OSC 4/10/11/12 palette-set commands.
	// palette is the 0-255 palette index, or one of PaletteForeground/
	// PaletteBackground/PaletteCursor for the dynamic-color variants.
	SetColor(palette int, spec string)
	// ResetColor is called for OSC 104/110/111/112, with the same
	// palette-index convention as SetColor. A nil/empty indices slice
	// means "reset every palette entry" (bare OSC 104).
	ResetColor(indices []int)
	// MouseShape is called for OSC 22.
	MouseShape(shape string)
	// KittyColors is called for OSC 21's key/value color list.
	KittyColors(kv map[string]string)
	// EndOfCommand is called on OSC 133;D, carrying the command's exit
	// code when the shell reported one.
	EndOfCommand(exitCode int, hasExitCode bool)
}

// Pseudo palette indices SetColor/ResetColor use for the dynamic
// foreground/background/cursor colors (OSC 10/11/12), which share the
// palette-index address space with OSC 4's 0-255 indices.
const (
	PaletteForeground = -1
	PaletteBackground = -2
	PaletteCursor      = -3
)

// NoopSink discards every callback.
type NoopSink struct{}

func (NoopSink) Title(string)                                {}
func (NoopSink) Icon(string)                                 {}
func (NoopSink) Hyperlink(cellpage.Hyperlink, string)         {}
func (NoopSink) Notification(string, string)                 {}
func (NoopSink) Progress(oscparse.ProgressState, int, bool)   {}
func (NoopSink) Clipboard(byte, string)                       {}
func (NoopSink) WorkingDirectory(string)                      {}
func (NoopSink) Bell()                                        {}
func (NoopSink) SetColor(int, string)                         {}
func (NoopSink) ResetColor([]int)                             {}
func (NoopSink) MouseShape(string)                            {}
func (NoopSink) KittyColors(map[string]string)                {}
func (NoopSink) EndOfCommand(int, bool)                       {}

// Option configures a Screen at construction, following the root
// package's functional-option convention (doc.go's With...).
type Option func(*Screen)

// WithSink installs a Sink for OSC side effects.
func WithSink(sink Sink) Option {
	return func(s *Screen) { s.sink = sink }
}

// Screen owns the page list, cursor, scroll margins and tab stops, and
// exposes TestWriteString for deterministic tests (§4.F). It keeps no
// charset translation tables: G0-G3 designation is not handled.
type Screen struct {
	cfg Config

	active     *cellpage.Page
	scrollback *pagelist.Scrollback

	cursor Cursor

	// scrollTop/scrollBottom are the inclusive active-area row margins
	// (DECSTBM); scrollLeft/scrollRight are the inclusive column
	// margins (DECSLRM), defaulting to the full width.
	scrollTop, scrollBottom int
	scrollLeft, scrollRight int

	tabStops []bool

	parser *vtparse.Parser
	sink   Sink

	// lastPrintX/lastPrintY track the most recently printed cell (in
	// active-relative coordinates) so a following combining mark can be
	// folded into it; -1 means "nothing printed yet".
	lastPrintX, lastPrintY int

	// contFlags/contIdx carry the per-rune grapheme-continuation flags
	// computed once per TestWriteString call (see nextIsContinuation).
	contFlags []bool
	contIdx   int
}

// New creates a Screen with the given configuration and options.
func New(cfg Config, opts ...Option) *Screen {
	active, err := cellpage.NewPage(cfg.pageCapacity())
	if err != nil {
		panic(err)
	}
	s := &Screen{
		cfg:           cfg,
		active:        active,
		scrollback:    pagelist.NewScrollback(cfg.Cols, cfg.ScrollbackRows, cfg.Rows, cfg.rowCapacity()),
		scrollBottom:  cfg.Rows - 1,
		scrollRight:   cfg.Cols - 1,
		tabStops:      defaultTabStops(cfg.Cols),
		sink:          NoopSink{},
		lastPrintX:    -1,
		lastPrintY:    -1,
	}
	oscOpt := []oscparse.Option{oscparse.WithMaxBytes(cfg.MaxOSCBytes)}
	if cfg.OSCAllocator {
		oscOpt = append(oscOpt, oscparse.WithAllocator(cfg.MaxOSCBytes))
	}
	s.parser = vtparse.NewParser(oscOpt...)
	for _, o := range opts {
		o(s)
	}
	return s
}

func defaultTabStops(cols int) []bool {
	stops := make([]bool, cols)
	for i := 0; i < cols; i += 8 {
		stops[i] = true
	}
	return stops
}

// Cols returns the active area's column count.
func (s *Screen) Cols() int { return s.cfg.Cols }

// Rows returns the active area's row count.
func (s *Screen) Rows() int { return s.cfg.Rows }

// CursorPosition returns the cursor's current active-area coordinates.
func (s *Screen) CursorPosition() (x, y int) { return s.cursor.X, s.cursor.Y }

// ActivePage returns the live active-area page, for callers (e.g. a
// renderer) that clone it before reading concurrently (§5).
func (s *Screen) ActivePage() *cellpage.Page { return s.active }

// Scrollback returns the history buffer backing this screen.
func (s *Screen) Scrollback() *pagelist.Scrollback { return s.scrollback }
