package vtcore

import (
	"encoding/base64"
	"fmt"
	"strings"
	"sync"

	"github.com/vtcore-dev/vtcore/cellpage"
	"github.com/vtcore-dev/vtcore/oscparse"
	"github.com/vtcore-dev/vtcore/screen"
	"github.com/vtcore-dev/vtcore/selection"
)

// DefaultRows and DefaultCols are the terminal's default size when no
// WithSize option is given.
const (
	DefaultRows = 24
	DefaultCols = 80
)

// options accumulates construction-time configuration before New
// builds the Terminal and its backing screen.Screen. It exists
// separately from Terminal because the screen's Config must be fully
// resolved before screen.New allocates the active page.
type options struct {
	cfg screen.Config

	response     ResponseProvider
	bell         BellProvider
	title        TitleProvider
	clipboard    ClipboardProvider
	scrollback   ScrollbackProvider
	recording    RecordingProvider
	palette      PaletteProvider
	progress     ProgressProvider
	notification NotificationProvider
	mouseShape   MouseShapeProvider
	kittyColor   KittyColorProvider
	workingDir   WorkingDirectoryProvider

	middleware *Middleware
}

// Option configures a Terminal at construction.
type Option func(*options)

// WithSize sets the terminal's row/column count.
func WithSize(rows, cols int) Option {
	return func(o *options) { o.cfg.Rows, o.cfg.Cols = rows, cols }
}

// WithScrollbackRows sets the internal scrollback capacity.
func WithScrollbackRows(n int) Option {
	return func(o *options) { o.cfg.ScrollbackRows = n }
}

// WithResponse installs a provider for reply-generating sequences
// (e.g. OSC 52 clipboard queries).
func WithResponse(p ResponseProvider) Option { return func(o *options) { o.response = p } }

// WithBell installs a bell provider.
func WithBell(p BellProvider) Option { return func(o *options) { o.bell = p } }

// WithTitle installs a title/icon provider.
func WithTitle(p TitleProvider) Option { return func(o *options) { o.title = p } }

// WithClipboard installs a clipboard provider.
func WithClipboard(p ClipboardProvider) Option { return func(o *options) { o.clipboard = p } }

// WithScrollback installs a provider that additionally mirrors lines
// as they scroll off the top of the screen.
func WithScrollback(p ScrollbackProvider) Option { return func(o *options) { o.scrollback = p } }

// WithRecording installs a provider that captures raw input bytes.
func WithRecording(p RecordingProvider) Option { return func(o *options) { o.recording = p } }

// WithPalette installs a palette/dynamic-color provider.
func WithPalette(p PaletteProvider) Option { return func(o *options) { o.palette = p } }

// WithProgress installs a taskbar-progress provider.
func WithProgress(p ProgressProvider) Option { return func(o *options) { o.progress = p } }

// WithNotification installs a desktop-notification provider.
func WithNotification(p NotificationProvider) Option {
	return func(o *options) { o.notification = p }
}

// WithMouseShape installs a pointer-shape provider.
func WithMouseShape(p MouseShapeProvider) Option { return func(o *options) { o.mouseShape = p } }

// WithKittyColor installs a Kitty color-protocol provider.
func WithKittyColor(p KittyColorProvider) Option { return func(o *options) { o.kittyColor = p } }

// WithWorkingDirectory installs a shell-integration working-directory provider.
func WithWorkingDirectory(p WorkingDirectoryProvider) Option {
	return func(o *options) { o.workingDir = p }
}

// WithMiddleware installs middleware intercepting provider dispatch.
func WithMiddleware(m *Middleware) Option { return func(o *options) { o.middleware = m } }

// Terminal is a headless VT220-compatible terminal emulator: it drives
// a single screen.Screen, forwards the screen's Sink callbacks to
// pluggable providers (optionally through Middleware), and tracks the
// terminal-level state the screen itself doesn't own (title, exit-code
// bookkeeping for semantic-prompt marks, selection, recording, and
// scrollback mirroring).
//
// All exported methods lock mu themselves except the screen.Sink
// callbacks (Bell, Hyperlink, ...), which are only ever invoked
// synchronously from within Write/TestWriteString while mu is already
// held by the caller; they must not attempt to lock it again.
type Terminal struct {
	mu sync.RWMutex

	screen *screen.Screen

	response     ResponseProvider
	bell         BellProvider
	title        TitleProvider
	clipboard    ClipboardProvider
	scrollback   ScrollbackProvider
	recording    RecordingProvider
	palette      PaletteProvider
	progress     ProgressProvider
	notification NotificationProvider
	mouseShape   MouseShapeProvider
	kittyColor   KittyColorProvider
	workingDir   WorkingDirectoryProvider

	middleware *Middleware

	curTitle         string
	curIcon          string
	workingDirectory string

	// exitCodes maps an absolute screen row (where OSC 133;D landed) to
	// the command's reported exit code, since cellpage.Row only carries
	// the SemanticPrompt classification, not the exit code itself.
	exitCodes map[int]promptExitCode

	sel       selection.Selection
	hasSel    bool

	scrollbackMirrored int // value of screen.Scrollback().Pushes() last mirrored
}

type promptExitCode struct {
	code    int
	hasCode bool
}

// New creates a Terminal with the given options.
func New(opts ...Option) *Terminal {
	o := &options{
		cfg:          screen.DefaultConfig(),
		response:     NoopResponse{},
		bell:         NoopBell{},
		title:        NoopTitle{},
		clipboard:    NoopClipboard{},
		scrollback:   NoopScrollback{},
		recording:    NoopRecording{},
		palette:      NoopPalette{},
		progress:     NoopProgress{},
		notification: NoopNotification{},
		mouseShape:   NoopMouseShape{},
		kittyColor:   NoopKittyColor{},
		workingDir:   NoopWorkingDirectory{},
	}
	o.cfg.Rows, o.cfg.Cols = DefaultRows, DefaultCols
	for _, opt := range opts {
		opt(o)
	}

	t := &Terminal{
		response:     o.response,
		bell:         o.bell,
		title:        o.title,
		clipboard:    o.clipboard,
		scrollback:   o.scrollback,
		recording:    o.recording,
		palette:      o.palette,
		progress:     o.progress,
		notification: o.notification,
		mouseShape:   o.mouseShape,
		kittyColor:   o.kittyColor,
		workingDir:   o.workingDir,
		middleware:   o.middleware,
		exitCodes:    make(map[int]promptExitCode),
	}
	t.screen = screen.New(o.cfg, screen.WithSink(terminalSink{t}))
	return t
}

// Write feeds raw bytes containing ANSI escape sequences into the
// terminal, satisfying io.Writer. It never returns an error.
func (t *Terminal) Write(p []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.recording.Record(p)
	n, _ := t.screen.Write(p)
	t.mirrorScrollback()
	return n, nil
}

// WriteString is a convenience wrapper around Write.
func (t *Terminal) WriteString(s string) (int, error) {
	return t.Write([]byte(s))
}

// mirrorScrollback pushes any history rows retired since the last call
// to the ScrollbackProvider. It assumes the caller holds mu.
func (t *Terminal) mirrorScrollback() {
	sb := t.screen.Scrollback()
	pushes := sb.Pushes()
	delta := pushes - t.scrollbackMirrored
	if delta <= 0 {
		return
	}
	n := sb.Len()
	if delta > n {
		// More rows were pushed than the scrollback's own capacity
		// within this single Write; the oldest ones are unrecoverable
		// since the ring buffer already overwrote them.
		delta = n
	}
	for i := n - delta; i < n; i++ {
		t.scrollback.Push(pageRowToCellViews(sb.Row(i)))
	}
	t.scrollbackMirrored = pushes
}

// Rows returns the active area's row count.
func (t *Terminal) Rows() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.screen.Rows()
}

// Cols returns the active area's column count.
func (t *Terminal) Cols() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.screen.Cols()
}

// CursorPosition returns the cursor's current position in the active area.
func (t *Terminal) CursorPosition() Position {
	t.mu.RLock()
	defer t.mu.RUnlock()
	x, y := t.screen.CursorPosition()
	return Position{Row: y, Col: x}
}

// Cell returns a read-only view of the cell at (row, col) in the
// active area.
func (t *Terminal) Cell(row, col int) CellView {
	t.mu.RLock()
	defer t.mu.RUnlock()
	page := t.screen.ActivePage()
	return cellViewFrom(page, row, col, page.GetCell(col, row))
}

// LineContent returns the plain-text content of active-area row, with
// trailing blank cells trimmed.
func (t *Terminal) LineContent(row int) string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.lineContentLocked(t.screen.ActivePage(), row)
}

func (t *Terminal) lineContentLocked(page *cellpage.Page, row int) string {
	cells := page.RowCells(row)
	last := -1
	for i, c := range cells {
		if c.WideState() == cellpage.WideSpacerTail || c.WideState() == cellpage.WideSpacerHead {
			continue
		}
		if !c.IsEmpty() {
			last = i
		}
	}
	if last < 0 {
		return ""
	}
	var b strings.Builder
	for i := 0; i <= last; i++ {
		c := cells[i]
		if c.WideState() == cellpage.WideSpacerTail {
			continue
		}
		switch c.Tag() {
		case cellpage.ContentCodepoint, cellpage.ContentCodepointGrapheme:
			b.WriteRune(c.Rune())
			if c.Tag() == cellpage.ContentCodepointGrapheme {
				b.WriteString(string(page.LookupGrapheme(row, i)))
			}
		default:
			b.WriteRune(' ')
		}
	}
	return b.String()
}

// String returns the full active-area content as newline-joined lines,
// with trailing blank lines trimmed.
func (t *Terminal) String() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	page := t.screen.ActivePage()
	lines := make([]string, page.Rows())
	last := -1
	for y := 0; y < page.Rows(); y++ {
		lines[y] = t.lineContentLocked(page, y)
		if lines[y] != "" {
			last = y
		}
	}
	return strings.Join(lines[:last+1], "\n")
}

// HasDirty reports whether any active-area row has unflushed changes.
func (t *Terminal) HasDirty() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	page := t.screen.ActivePage()
	for y := 0; y < page.Rows(); y++ {
		if page.IsDirty(y) {
			return true
		}
	}
	return false
}

// DirtyRows returns the indices of active-area rows with unflushed changes.
func (t *Terminal) DirtyRows() []int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	page := t.screen.ActivePage()
	var rows []int
	for y := 0; y < page.Rows(); y++ {
		if page.IsDirty(y) {
			rows = append(rows, y)
		}
	}
	return rows
}

// ClearDirty clears every active-area row's dirty flag.
func (t *Terminal) ClearDirty() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.screen.ActivePage().ClearAllDirty()
}

// --- Scrollback ---

// ScrollbackLen returns the number of rows retained in the screen's
// internal scrollback.
func (t *Terminal) ScrollbackLen() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.screen.Scrollback().Len()
}

// ScrollbackLine returns scrollback row index (0 = oldest) as CellViews.
func (t *Terminal) ScrollbackLine(index int) []CellView {
	t.mu.RLock()
	defer t.mu.RUnlock()
	sb := t.screen.Scrollback()
	if index < 0 || index >= sb.Len() {
		return nil
	}
	return pageRowToCellViews(sb.Row(index))
}

// --- Selection ---

// SetSelection starts a selection between start and end, in absolute
// screen-row coordinates.
func (t *Terminal) SetSelection(start, end Position, rectangle bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.sel = selection.New(selection.Point{X: start.Col, Y: start.Row}, selection.Point{X: end.Col, Y: end.Row}, rectangle)
	t.hasSel = true
}

// ClearSelection discards the current selection.
func (t *Terminal) ClearSelection() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.hasSel = false
}

// HasSelection reports whether a selection is active.
func (t *Terminal) HasSelection() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.hasSel
}

// GetSelectedText returns the text covered by the current selection,
// or "" if none is active.
func (t *Terminal) GetSelectedText() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if !t.hasSel {
		return ""
	}
	tl, br := t.sel.TopLeft(), t.sel.BottomRight()
	var lines []string
	for y := tl.Y; y <= br.Y; y++ {
		row, cells := t.screen.GetRow(y), t.rowCellsAt(y)
		left, right := 0, len(cells)-1
		if rowSel, ok := t.sel.ContainedRow(len(cells), y); ok {
			left, right = rowSel.TopLeft().X, rowSel.BottomRight().X
		}
		_ = row
		lines = append(lines, cellsToPlainText(cells, left, right))
	}
	return strings.Join(lines, "\n")
}

// rowCellsAt returns the cell slice for absolute screen-row y.
func (t *Terminal) rowCellsAt(y int) []cellpage.Cell {
	if hy, ok := t.screen.ScreenToHistory(y); ok {
		return t.screen.Scrollback().Row(hy).RowCells(0)
	}
	return t.screen.ActivePage().RowCells(t.screen.ScreenToActive(y))
}

func cellsToPlainText(cells []cellpage.Cell, left, right int) string {
	if right >= len(cells) {
		right = len(cells) - 1
	}
	var b strings.Builder
	for i := left; i <= right; i++ {
		c := cells[i]
		if c.WideState() == cellpage.WideSpacerTail {
			continue
		}
		if c.Tag() == cellpage.ContentCodepoint || c.Tag() == cellpage.ContentCodepointGrapheme {
			b.WriteRune(c.Rune())
		} else {
			b.WriteRune(' ')
		}
	}
	return b.String()
}

// --- Search ---

// Search returns the positions of every occurrence of needle within
// the active area, scanning row by row.
func (t *Terminal) Search(needle string) []Position {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if needle == "" {
		return nil
	}
	var matches []Position
	page := t.screen.ActivePage()
	for y := 0; y < page.Rows(); y++ {
		line := t.lineContentLocked(page, y)
		runes := []rune(line)
		needleRunes := []rune(needle)
		for col := 0; col+len(needleRunes) <= len(runes); col++ {
			if string(runes[col:col+len(needleRunes)]) == needle {
				matches = append(matches, Position{Row: y, Col: col})
			}
		}
	}
	return matches
}

// --- Title ---

// Title returns the current window title.
func (t *Terminal) Title() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.curTitle
}

// Icon returns the current icon name.
func (t *Terminal) Icon() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.curIcon
}

// WorkingDirectoryPath returns the last reported working directory URL (OSC 7).
func (t *Terminal) WorkingDirectoryPath() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.workingDirectory
}

// --- screen.Sink ---
//
// The methods below implement screen.Sink. They are invoked
// synchronously from inside Write/TestWriteString, which already hold
// mu, so they must not lock it again.

// terminalSink is the screen.Sink that New installs. It embeds the
// Terminal for every callback except Title and Icon, which it defines
// itself because Terminal's own Title and Icon are the getters above.
type terminalSink struct{ *Terminal }

func (t *Terminal) Bell() {
	fire := func() { t.bell.Ring() }
	if t.middleware != nil && t.middleware.Bell != nil {
		t.middleware.Bell(fire)
		return
	}
	fire()
}

func (s terminalSink) Title(text string) {
	t := s.Terminal
	fire := func(s string) {
		t.curTitle = s
		t.title.SetTitle(s)
	}
	if t.middleware != nil && t.middleware.SetTitle != nil {
		t.middleware.SetTitle(text, fire)
		return
	}
	fire(text)
}

func (s terminalSink) Icon(text string) {
	t := s.Terminal
	fire := func(s string) {
		t.curIcon = s
		t.title.SetIcon(s)
	}
	if t.middleware != nil && t.middleware.SetIcon != nil {
		t.middleware.SetIcon(text, fire)
		return
	}
	fire(text)
}

func (t *Terminal) WorkingDirectory(url string) {
	fire := func(u string) {
		t.workingDirectory = u
		t.workingDir.SetWorkingDirectory(u)
	}
	if t.middleware != nil && t.middleware.WorkingDirectory != nil {
		t.middleware.WorkingDirectory(url, fire)
		return
	}
	fire(url)
}

func (t *Terminal) SetColor(palette int, spec string) {
	fire := func(p int, s string) { t.palette.SetColor(p, s) }
	if t.middleware != nil && t.middleware.SetColor != nil {
		t.middleware.SetColor(palette, spec, fire)
		return
	}
	fire(palette, spec)
}

func (t *Terminal) ResetColor(indices []int) {
	fire := func(idx []int) { t.palette.ResetColor(idx) }
	if t.middleware != nil && t.middleware.ResetColor != nil {
		t.middleware.ResetColor(indices, fire)
		return
	}
	fire(indices)
}

func (t *Terminal) MouseShape(shape string) {
	fire := func(s string) { t.mouseShape.SetMouseShape(s) }
	if t.middleware != nil && t.middleware.MouseShape != nil {
		t.middleware.MouseShape(shape, fire)
		return
	}
	fire(shape)
}

func (t *Terminal) KittyColors(kv map[string]string) {
	fire := func(m map[string]string) { t.kittyColor.SetKittyColors(m) }
	if t.middleware != nil && t.middleware.KittyColors != nil {
		t.middleware.KittyColors(kv, fire)
		return
	}
	fire(kv)
}

func (t *Terminal) Progress(state oscparse.ProgressState, value int, hasValue bool) {
	fire := func(s oscparse.ProgressState, v int, hv bool) { t.progress.SetProgress(s, v, hv) }
	if t.middleware != nil && t.middleware.Progress != nil {
		t.middleware.Progress(state, value, hasValue, fire)
		return
	}
	fire(state, value, hasValue)
}

func (t *Terminal) Notification(title, body string) {
	fire := func(ti, b string) { t.notification.Notify(ti, b) }
	if t.middleware != nil && t.middleware.Notification != nil {
		t.middleware.Notification(title, body, fire)
		return
	}
	fire(title, body)
}

func (t *Terminal) EndOfCommand(exitCode int, hasExitCode bool) {
	x, y := t.screen.CursorPosition()
	_ = x
	row := t.screen.ActiveToScreen(y)
	fire := func(code int, has bool) {
		t.exitCodes[row] = promptExitCode{code: code, hasCode: has}
	}
	if t.middleware != nil && t.middleware.EndOfCommand != nil {
		t.middleware.EndOfCommand(exitCode, hasExitCode, fire)
	} else {
		fire(exitCode, hasExitCode)
	}
	if t.middleware != nil && t.middleware.SemanticPromptMark != nil {
		t.middleware.SemanticPromptMark(PromptMarkCommand, row, func(PromptMarkKind, int) {})
	}
}

func (t *Terminal) Hyperlink(link cellpage.Hyperlink, id string) {
	fire := func(i, u string) {}
	if t.middleware != nil && t.middleware.Hyperlink != nil {
		t.middleware.Hyperlink(id, link.URI, fire)
		return
	}
	fire(id, link.URI)
}

func (t *Terminal) Clipboard(kind byte, data string) {
	fire := func(k byte, d string) {
		if d == "?" {
			content := t.clipboard.Read(k)
			encoded := base64.StdEncoding.EncodeToString([]byte(content))
			fmt.Fprintf(t.response, "\x1b]52;%c;%s\x07", k, encoded)
			return
		}
		decoded, err := base64.StdEncoding.DecodeString(d)
		if err != nil {
			return
		}
		t.clipboard.Write(k, decoded)
	}
	if t.middleware != nil && t.middleware.Clipboard != nil {
		t.middleware.Clipboard(kind, data, fire)
		return
	}
	fire(kind, data)
}
