package vtcore

import (
	"io"

	"github.com/vtcore-dev/vtcore/oscparse"
)

// ResponseProvider writes terminal responses (e.g., query replies) back
// to the PTY. Typically an io.Writer connected to the PTY input.
type ResponseProvider = io.Writer

// NoopResponse discards all response data (useful when responses are not needed).
type NoopResponse struct{}

func (NoopResponse) Write(p []byte) (n int, err error) {
	return len(p), nil
}

// --- Bell Provider ---

// BellProvider handles bell/beep events triggered by BEL (0x07) characters.
type BellProvider interface {
	// Ring is called when a bell character is received.
	Ring()
}

// NoopBell ignores all bell events.
type NoopBell struct{}

func (NoopBell) Ring() {}

// --- Title Provider ---

// TitleProvider handles window title and icon-name changes (OSC 0/1/2).
// The xterm title stack (CSI 22 t / CSI 23 t push/pop) is not handled
// by the screen's CSI dispatch, so unlike the teacher this provider
// carries no PushTitle/PopTitle.
type TitleProvider interface {
	// SetTitle is called when the window title changes (OSC 0 or 2).
	SetTitle(title string)
	// SetIcon is called when the icon name changes (OSC 1).
	SetIcon(name string)
}

// NoopTitle ignores all title operations.
type NoopTitle struct{}

func (NoopTitle) SetTitle(title string) {}
func (NoopTitle) SetIcon(name string)   {}

// --- Clipboard Provider ---

// ClipboardProvider handles clipboard read/write operations (OSC 52).
type ClipboardProvider interface {
	// Read returns content from the specified clipboard ('c' for clipboard, 'p' for primary selection).
	Read(clipboard byte) string
	// Write stores content to the specified clipboard.
	Write(clipboard byte, data []byte)
}

// NoopClipboard ignores all clipboard operations.
type NoopClipboard struct{}

func (NoopClipboard) Read(clipboard byte) string        { return "" }
func (NoopClipboard) Write(clipboard byte, data []byte) {}

// --- Scrollback Provider ---

// ScrollbackProvider additionally mirrors lines scrolled off the top of
// the screen as they retire from the active area. The screen always
// keeps its own scrollback internally (Terminal.ScrollbackLen/Line read
// that directly); this provider is for mirroring to external storage
// (disk, a database, a ring buffer with different retention) as lines
// scroll off, matching the root package's doc comment example.
type ScrollbackProvider interface {
	// Push appends a line to scrollback. Oldest lines should be removed if MaxLines is exceeded.
	Push(line []CellView)
	// Len returns the current number of stored lines.
	Len() int
	// Line returns the line at index, where 0 is the oldest line. Returns nil if out of range.
	Line(index int) []CellView
	// Clear removes all stored lines.
	Clear()
	// SetMaxLines sets the maximum capacity. Implementations should trim oldest lines if needed.
	SetMaxLines(max int)
	// MaxLines returns the current maximum capacity.
	MaxLines() int
}

// NoopScrollback discards all scrollback lines.
type NoopScrollback struct{}

func (NoopScrollback) Push(line []CellView)      {}
func (NoopScrollback) Len() int                  { return 0 }
func (NoopScrollback) Line(index int) []CellView { return nil }
func (NoopScrollback) Clear()                    {}
func (NoopScrollback) SetMaxLines(max int)       {}
func (NoopScrollback) MaxLines() int             { return 0 }

// --- Recording Provider ---

// RecordingProvider captures raw input bytes before ANSI parsing for replay or debugging.
type RecordingProvider interface {
	// Record appends raw bytes to the recording.
	Record(data []byte)
	// Data returns all captured bytes since the last Clear call.
	Data() []byte
	// Clear discards all recorded data.
	Clear()
}

// NoopRecording discards all input recordings.
type NoopRecording struct{}

func (NoopRecording) Record([]byte) {}
func (NoopRecording) Data() []byte  { return nil }
func (NoopRecording) Clear()        {}

// --- Palette Provider ---

// PaletteProvider observes palette and dynamic-color set/reset requests
// (OSC 4 and the OSC 10/11/12 foreground/background/cursor variants).
// palette is the 0-255 palette index, or one of screen.PaletteForeground/
// PaletteBackground/PaletteCursor.
type PaletteProvider interface {
	SetColor(palette int, spec string)
	ResetColor(indices []int)
}

// NoopPalette ignores all palette operations.
type NoopPalette struct{}

func (NoopPalette) SetColor(palette int, spec string) {}
func (NoopPalette) ResetColor(indices []int)          {}

// --- Progress Provider ---

// ProgressProvider observes taskbar progress reports (OSC 9;4, ConEmu-style).
type ProgressProvider interface {
	SetProgress(state oscparse.ProgressState, value int, hasValue bool)
}

// NoopProgress ignores all progress reports.
type NoopProgress struct{}

func (NoopProgress) SetProgress(state oscparse.ProgressState, value int, hasValue bool) {}

// --- Notification Provider ---

// NotificationProvider observes desktop notification requests (OSC 9 /
// OSC 777). Unlike the teacher's iTerm2-specific rich payload (ID,
// PayloadType, Encoding, Actions, sound, urgency, ...), oscparse only
// extracts a title and body; there is no parser support for the richer
// OSC 99 fields, so this surface is intentionally the simpler one.
type NotificationProvider interface {
	Notify(title, body string)
}

// NoopNotification ignores all notifications.
type NoopNotification struct{}

func (NoopNotification) Notify(title, body string) {}

// --- Mouse Shape Provider ---

// MouseShapeProvider observes pointer-shape change requests (OSC 22).
type MouseShapeProvider interface {
	SetMouseShape(shape string)
}

// NoopMouseShape ignores mouse-shape requests.
type NoopMouseShape struct{}

func (NoopMouseShape) SetMouseShape(shape string) {}

// --- Kitty Color Provider ---

// KittyColorProvider observes the Kitty terminal's key/value color
// protocol (OSC 21).
type KittyColorProvider interface {
	SetKittyColors(kv map[string]string)
}

// NoopKittyColor ignores Kitty color-protocol requests.
type NoopKittyColor struct{}

func (NoopKittyColor) SetKittyColors(kv map[string]string) {}

// --- Working Directory Provider ---

// WorkingDirectoryProvider observes shell-integration working-directory
// reports (OSC 7).
type WorkingDirectoryProvider interface {
	SetWorkingDirectory(url string)
}

// NoopWorkingDirectory ignores working-directory reports.
type NoopWorkingDirectory struct{}

func (NoopWorkingDirectory) SetWorkingDirectory(url string) {}

// Ensure implementations satisfy their interfaces.
var (
	_ ResponseProvider         = NoopResponse{}
	_ BellProvider              = (*NoopBell)(nil)
	_ TitleProvider              = (*NoopTitle)(nil)
	_ ClipboardProvider          = (*NoopClipboard)(nil)
	_ ScrollbackProvider         = (*NoopScrollback)(nil)
	_ RecordingProvider          = (*NoopRecording)(nil)
	_ PaletteProvider            = (*NoopPalette)(nil)
	_ ProgressProvider           = (*NoopProgress)(nil)
	_ NotificationProvider       = (*NoopNotification)(nil)
	_ MouseShapeProvider         = (*NoopMouseShape)(nil)
	_ KittyColorProvider         = (*NoopKittyColor)(nil)
	_ WorkingDirectoryProvider   = (*NoopWorkingDirectory)(nil)
)
