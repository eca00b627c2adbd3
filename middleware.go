package vtcore

import "github.com/vtcore-dev/vtcore/oscparse"

// Middleware intercepts Terminal's provider-facing side effects. Each
// field follows the teacher's wrap-with-next convention: a non-nil
// field is called instead of the default provider dispatch, and it
// decides whether (and with what arguments) to invoke next to continue
// to the provider. A nil field means "no interception, call the
// provider directly."
//
// Unlike the teacher's Middleware (keyed to go-ansicode's full Handler
// surface, including charset/mode/image/mouse-reporting hooks), this
// one only covers what screen.Sink actually forwards plus the
// semantic-prompt mark classification Terminal derives from it.
type Middleware struct {
	Bell func(next func())

	SetTitle func(title string, next func(string))
	SetIcon  func(name string, next func(string))

	Hyperlink func(id, uri string, next func(string, string))

	Notification func(title, body string, next func(string, string))

	Progress func(state oscparse.ProgressState, value int, hasValue bool, next func(oscparse.ProgressState, int, bool))

	Clipboard func(kind byte, data string, next func(byte, string))

	WorkingDirectory func(url string, next func(string))

	SetColor   func(palette int, spec string, next func(int, string))
	ResetColor func(indices []int, next func([]int))

	MouseShape  func(shape string, next func(string))
	KittyColors func(kv map[string]string, next func(map[string]string))

	EndOfCommand func(exitCode int, hasExitCode bool, next func(int, bool))

	// SemanticPromptMark intercepts a row's classification as it is
	// derived from cellpage.Row.SemanticPrompt (prompt/input/command
	// boundaries, OSC 133).
	SemanticPromptMark func(kind PromptMarkKind, row int, next func(PromptMarkKind, int))
}

// Merge copies every non-nil field of other into m, so callers can
// layer middleware without replacing the whole struct. Fields set on
// other take precedence over m's own.
func (m *Middleware) Merge(other *Middleware) {
	if other == nil {
		return
	}
	if other.Bell != nil {
		m.Bell = other.Bell
	}
	if other.SetTitle != nil {
		m.SetTitle = other.SetTitle
	}
	if other.SetIcon != nil {
		m.SetIcon = other.SetIcon
	}
	if other.Hyperlink != nil {
		m.Hyperlink = other.Hyperlink
	}
	if other.Notification != nil {
		m.Notification = other.Notification
	}
	if other.Progress != nil {
		m.Progress = other.Progress
	}
	if other.Clipboard != nil {
		m.Clipboard = other.Clipboard
	}
	if other.WorkingDirectory != nil {
		m.WorkingDirectory = other.WorkingDirectory
	}
	if other.SetColor != nil {
		m.SetColor = other.SetColor
	}
	if other.ResetColor != nil {
		m.ResetColor = other.ResetColor
	}
	if other.MouseShape != nil {
		m.MouseShape = other.MouseShape
	}
	if other.KittyColors != nil {
		m.KittyColors = other.KittyColors
	}
	if other.EndOfCommand != nil {
		m.EndOfCommand = other.EndOfCommand
	}
	if other.SemanticPromptMark != nil {
		m.SemanticPromptMark = other.SemanticPromptMark
	}
}
