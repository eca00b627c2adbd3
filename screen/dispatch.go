package screen

import (
	"github.com/vtcore-dev/vtcore/cellpage"
	"github.com/vtcore-dev/vtcore/oscparse"
	"github.com/vtcore-dev/vtcore/vtparse"
)

// TestWriteString feeds s through the VT parser pipeline byte by byte
// and applies the resulting actions to the screen, handling soft-wrap
// and wide characters (§4.F). It exists for deterministic unit tests
// exercising the parser→screen path end to end; Write below is the
// general I/O entry point the root Terminal façade drives.
func (s *Screen) TestWriteString(str string) {
	s.contFlags = clusterContinuations(str)
	s.contIdx = 0
	for i := 0; i < len(str); i++ {
		actions := s.parser.Feed(str[i])
		actions.Each(s.apply)
	}
}

// Write feeds raw bytes through the VT parser pipeline, satisfying
// io.Writer. It never returns an error: malformed input is absorbed by
// the parser's *_ignore states per §4.B's failure semantics.
func (s *Screen) Write(p []byte) (int, error) {
	s.contFlags = clusterContinuations(string(p))
	s.contIdx = 0
	for i := 0; i < len(p); i++ {
		actions := s.parser.Feed(p[i])
		actions.Each(s.apply)
	}
	return len(p), nil
}

// apply dispatches a single parser Action to the screen's state.
func (s *Screen) apply(a vtparse.Action) {
	switch a.Kind {
	case vtparse.ActionKindPrint:
		s.printRune(a.Print, s.nextIsContinuation())
	case vtparse.ActionKindExecute:
		s.execute(a.Execute)
	case vtparse.ActionKindCSIDispatch:
		s.dispatchCSI(a.CSI)
	case vtparse.ActionKindESCDispatch:
		s.dispatchESC(a.ESC)
	case vtparse.ActionKindOSCDispatch:
		s.dispatchOSC(a.OSC)
	case vtparse.ActionKindDCSHook, vtparse.ActionKindDCSPut, vtparse.ActionKindDCSUnhook:
		// DCS passthrough (DECRQSS, XTGETTCAP, tmux control mode) is a
		// reply-generating concern that belongs to the embedding
		// program (§6); the screen has nothing to mutate for it.
	}
}

// nextIsContinuation consumes the next precomputed cluster-boundary
// flag. TestWriteString primes s.contFlags/s.contIdx before feeding.
func (s *Screen) nextIsContinuation() bool {
	if s.contIdx >= len(s.contFlags) {
		return false
	}
	v := s.contFlags[s.contIdx]
	s.contIdx++
	return v
}

func (s *Screen) execute(b byte) {
	switch b {
	case '\n':
		s.lineFeed()
	case '\r':
		s.cursor.X = s.scrollLeft
	case '\b':
		if s.cursor.X > s.scrollLeft {
			s.cursor.X--
		}
	case '\t':
		s.advanceTab()
	case 0x07: // BEL
		s.sink.Bell()
	}
}

func (s *Screen) advanceTab() {
	for x := s.cursor.X + 1; x < s.cfg.Cols; x++ {
		if s.tabStops[x] {
			s.cursor.X = x
			return
		}
	}
	s.cursor.X = s.scrollRight
}

func param(params []uint16, i int, def int) int {
	if i >= len(params) || params[i] == 0 {
		return def
	}
	return int(params[i])
}

func (s *Screen) dispatchCSI(csi vtparse.CSIDispatch) {
	p := csi.Params
	switch csi.Final {
	case 'A':
		top := s.scrollTop
		if s.cursor.Y < top {
			top = 0
		}
		s.cursor.Y = clamp(s.cursor.Y-param(p, 0, 1), top, s.scrollBottom)
	case 'B':
		s.cursor.Y = clamp(s.cursor.Y+param(p, 0, 1), s.scrollTop, s.scrollBottom)
	case 'C':
		s.cursor.X = clamp(s.cursor.X+param(p, 0, 1), s.scrollLeft, s.scrollRight)
	case 'D':
		s.cursor.X = clamp(s.cursor.X-param(p, 0, 1), s.scrollLeft, s.scrollRight)
	case 'H', 'f':
		s.cursor.Y = clamp(param(p, 0, 1)-1, 0, s.cfg.Rows-1)
		s.cursor.X = clamp(param(p, 1, 1)-1, 0, s.cfg.Cols-1)
	case 'G':
		s.cursor.X = clamp(param(p, 0, 1)-1, 0, s.cfg.Cols-1)
	case 'd':
		s.cursor.Y = clamp(param(p, 0, 1)-1, 0, s.cfg.Rows-1)
	case 'J':
		s.eraseInDisplay(param(p, 0, 0))
	case 'K':
		s.eraseInLine(param(p, 0, 0))
	case 'r':
		top := clamp(param(p, 0, 1)-1, 0, s.cfg.Rows-1)
		bottom := clamp(param(p, 1, s.cfg.Rows)-1, 0, s.cfg.Rows-1)
		if top < bottom {
			s.scrollTop, s.scrollBottom = top, bottom
		}
	case 'm':
		s.applySGR(p)
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func (s *Screen) eraseInLine(mode int) {
	y := s.cursor.Y
	switch mode {
	case 0:
		s.active.ClearCells(y, s.cursor.X, s.cfg.Cols)
	case 1:
		s.active.ClearCells(y, 0, s.cursor.X+1)
	case 2:
		s.active.ClearCells(y, 0, s.cfg.Cols)
	}
}

func (s *Screen) eraseInDisplay(mode int) {
	switch mode {
	case 0:
		s.eraseInLine(0)
		for y := s.cursor.Y + 1; y < s.cfg.Rows; y++ {
			s.active.ClearCells(y, 0, s.cfg.Cols)
		}
	case 1:
		s.eraseInLine(1)
		for y := 0; y < s.cursor.Y; y++ {
			s.active.ClearCells(y, 0, s.cfg.Cols)
		}
	case 2, 3:
		for y := 0; y < s.cfg.Rows; y++ {
			s.active.ClearCells(y, 0, s.cfg.Cols)
		}
	}
}

func (s *Screen) dispatchESC(esc vtparse.ESCDispatch) {
	switch esc.Final {
	case 'M': // reverse index
		if s.cursor.Y == s.scrollTop {
			s.scrollDown(1)
		} else if s.cursor.Y > 0 {
			s.cursor.Y--
		}
	case 'D': // index
		s.lineFeed()
	case 'E': // next line
		s.cursor.X = s.scrollLeft
		s.lineFeed()
	}
}

// scrollDown shifts the scroll region down by n rows, discarding
// content pushed off the bottom margin and blanking the exposed top
// rows. It does not touch history (reverse scrolling never grows it).
func (s *Screen) scrollDown(n int) {
	for i := 0; i < n; i++ {
		for y := s.scrollBottom; y > s.scrollTop; y-- {
			s.active.ClearCells(y, 0, s.cfg.Cols)
			_ = s.active.CopyRowsFrom(s.active, y-1, y, 1)
		}
		s.active.ClearCells(s.scrollTop, 0, s.cfg.Cols)
		*s.active.GetRow(s.scrollTop) = cellpage.Row{}
	}
}

func (s *Screen) dispatchOSC(cmd *oscparse.Command) {
	if cmd == nil {
		return
	}
	switch cmd.Kind {
	case oscparse.KindChangeWindowTitle:
		s.sink.Title(cmd.Text)
	case oscparse.KindChangeWindowIcon:
		s.sink.Icon(cmd.Text)
	case oscparse.KindHyperlinkStart:
		link := cellpage.Hyperlink{ID: cmd.HyperlinkID, URI: cmd.HyperlinkURI}
		h, err := s.active.InsertHyperlink(link)
		if err == nil {
			s.cursor.Hyperlink = h
		}
		s.sink.Hyperlink(link, cmd.HyperlinkID)
	case oscparse.KindHyperlinkEnd:
		s.cursor.Hyperlink = 0
	case oscparse.KindShowDesktopNotification:
		s.sink.Notification(cmd.NotificationTitle, cmd.NotificationBody)
	case oscparse.KindProgress:
		s.sink.Progress(cmd.ProgressState, cmd.Progress, cmd.HasProgressValue)
	case oscparse.KindClipboardContents:
		s.sink.Clipboard(cmd.ClipboardKind, cmd.ClipboardData)
	case oscparse.KindReportPWD:
		s.sink.WorkingDirectory(cmd.PWD)
	case oscparse.KindPromptStart:
		s.active.GetRow(s.cursor.Y).SemanticPrompt = promptKindToSemantic(cmd.PromptKind)
	case oscparse.KindPromptEnd, oscparse.KindEndOfInput:
		// Marks the boundary; the row's SemanticPrompt was already set
		// by the matching prompt_start/command.
	case oscparse.KindEndOfCommand:
		s.active.GetRow(s.cursor.Y).SemanticPrompt = cellpage.SemanticPromptCommand
		s.sink.EndOfCommand(cmd.ExitCode, cmd.HasExitCode)
	case oscparse.KindSetColor:
		if !cmd.Query {
			s.sink.SetColor(cmd.Palette, cmd.ColorSpec)
		}
	case oscparse.KindSetForeground:
		if !cmd.Query {
			s.sink.SetColor(PaletteForeground, cmd.ColorSpec)
		}
	case oscparse.KindSetBackground:
		if !cmd.Query {
			s.sink.SetColor(PaletteBackground, cmd.ColorSpec)
		}
	case oscparse.KindSetCursorColor:
		if !cmd.Query {
			s.sink.SetColor(PaletteCursor, cmd.ColorSpec)
		}
	case oscparse.KindResetColor:
		s.sink.ResetColor(cmd.PaletteIndices)
	case oscparse.KindResetForeground:
		s.sink.ResetColor([]int{PaletteForeground})
	case oscparse.KindResetBackground:
		s.sink.ResetColor([]int{PaletteBackground})
	case oscparse.KindResetCursorColor:
		s.sink.ResetColor([]int{PaletteCursor})
	case oscparse.KindMouseShape:
		s.sink.MouseShape(cmd.MouseShape)
	case oscparse.KindKittyColorProtocol:
		s.sink.KittyColors(cmd.KittyColors)
	}
}

func promptKindToSemantic(k oscparse.PromptKind) cellpage.SemanticPrompt {
	switch k {
	case oscparse.PromptContinuation:
		return cellpage.SemanticPromptPromptContinuation
	case oscparse.PromptPrimary, oscparse.PromptSecondary, oscparse.PromptRight:
		return cellpage.SemanticPromptPrompt
	default:
		return cellpage.SemanticPromptUnknown
	}
}
