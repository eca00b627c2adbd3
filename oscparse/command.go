// Package oscparse implements the OSC sub-parser: a secondary state
// machine driven by the bytes the VT parser collects while in its
// osc_string state. It recognizes semicolon-separated numeric prefixes
// to select a command variant and assembles the remainder into a
// tagged Command.
package oscparse

// Terminator records which byte sequence closed the OSC string, so a
// synchronous reply can echo the same delimiter.
type Terminator uint8

const (
	TerminatorBEL Terminator = iota
	TerminatorST
)

func (t Terminator) String() string {
	if t == TerminatorBEL {
		return "\x07"
	}
	return "\x1b\\"
}

// Kind discriminates the OSC command union.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindChangeWindowTitle
	KindChangeWindowIcon
	KindReportColor
	KindSetColor
	KindReportPWD
	KindHyperlinkStart
	KindHyperlinkEnd
	KindShowDesktopNotification
	KindProgress
	KindSetForeground
	KindReportForeground
	KindSetBackground
	KindReportBackground
	KindSetCursorColor
	KindReportCursorColor
	KindKittyColorProtocol
	KindMouseShape
	KindClipboardContents
	KindResetColor
	KindResetForeground
	KindResetBackground
	KindResetCursorColor
	KindPromptStart
	KindPromptEnd
	KindEndOfInput
	KindEndOfCommand
)

// ProgressState is the state field of a progress (OSC 9;4) command.
type ProgressState uint8

const (
	ProgressRemove ProgressState = iota
	ProgressSet
	ProgressError
	ProgressIndeterminate
	ProgressPause
)

// PromptKind distinguishes the four OSC 133;A prompt kinds.
type PromptKind uint8

const (
	PromptPrimary PromptKind = iota
	PromptContinuation
	PromptSecondary
	PromptRight
)

// Command is the tagged union of parsed OSC payloads.
type Command struct {
	Kind       Kind
	Terminator Terminator

	// change_window_title / change_window_icon
	Text string

	// report_color / set_color / reset_color
	Palette        int
	ColorSpec      string
	PaletteIndices []int

	// report_pwd
	PWD string

	// hyperlink_start / hyperlink_end
	HyperlinkID  string
	HyperlinkURI string

	// show_desktop_notification
	NotificationTitle string
	NotificationBody  string

	// progress
	ProgressState    ProgressState
	Progress         int
	HasProgressValue bool

	// set/report dynamic color (10/11/12) share ColorSpec above; Query
	// is true when the payload was "?".
	Query bool

	// kitty_color_protocol (OSC 21)
	KittyColors map[string]string

	// mouse_shape (OSC 22)
	MouseShape string

	// clipboard_contents (OSC 52)
	ClipboardKind byte
	ClipboardData string

	// prompt_start (OSC 133;A)
	PromptAID    string
	PromptKind   PromptKind
	PromptRedraw bool

	// end_of_command (OSC 133;D)
	ExitCode    int
	HasExitCode bool

	// Incomplete is set when the working buffer overflowed without an
	// allocator configured to grow it.
	Incomplete bool
}
