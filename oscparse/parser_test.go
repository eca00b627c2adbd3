package oscparse

import "testing"

// finish feeds payload through a fresh Parser and calls Finish with term,
// mirroring how vtparse drives the sub-parser byte by byte.
func finish(t *testing.T, payload string, term Terminator) *Command {
	t.Helper()
	p := New()
	for i := 0; i < len(payload); i++ {
		p.Put(payload[i])
	}
	cmd, ok := p.Finish(term)
	if !ok {
		t.Fatalf("Finish returned ok=false for payload %q", payload)
	}
	return cmd
}

func TestParse_ChangeWindowTitle(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    string
	}{
		{"OSC 0", "0;hello", "hello"},
		{"OSC 2", "2;world", "world"},
		{"empty title", "0;", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := finish(t, tt.payload, TerminatorBEL)
			if cmd.Kind != KindChangeWindowTitle {
				t.Fatalf("expected KindChangeWindowTitle, got %v", cmd.Kind)
			}
			if cmd.Text != tt.want {
				t.Errorf("expected text %q, got %q", tt.want, cmd.Text)
			}
		})
	}
}

func TestParse_ChangeWindowIcon(t *testing.T) {
	cmd := finish(t, "1;icon name", TerminatorBEL)
	if cmd.Kind != KindChangeWindowIcon {
		t.Fatalf("expected KindChangeWindowIcon, got %v", cmd.Kind)
	}
	if cmd.Text != "icon name" {
		t.Errorf("expected text %q, got %q", "icon name", cmd.Text)
	}
}

func TestParse_SetAndReportColor(t *testing.T) {
	set := finish(t, "4;3;rgb:ff/00/00", TerminatorBEL)
	if set.Kind != KindSetColor || set.Palette != 3 || set.ColorSpec != "rgb:ff/00/00" {
		t.Errorf("unexpected set-color command: %+v", set)
	}

	report := finish(t, "4;3;?", TerminatorBEL)
	if report.Kind != KindReportColor || report.Palette != 3 || !report.Query {
		t.Errorf("unexpected report-color command: %+v", report)
	}
}

func TestParse_ReportPWD(t *testing.T) {
	cmd := finish(t, "7;file://localhost/home/user", TerminatorBEL)
	if cmd.Kind != KindReportPWD {
		t.Fatalf("expected KindReportPWD, got %v", cmd.Kind)
	}
	if cmd.PWD != "file://localhost/home/user" {
		t.Errorf("expected PWD %q, got %q", "file://localhost/home/user", cmd.PWD)
	}
}

func TestParse_Hyperlink(t *testing.T) {
	t.Run("start with id", func(t *testing.T) {
		cmd := finish(t, "8;id=link1;https://example.com", TerminatorBEL)
		if cmd.Kind != KindHyperlinkStart {
			t.Fatalf("expected KindHyperlinkStart, got %v", cmd.Kind)
		}
		if cmd.HyperlinkID != "link1" || cmd.HyperlinkURI != "https://example.com" {
			t.Errorf("unexpected hyperlink command: %+v", cmd)
		}
	})

	t.Run("start without id", func(t *testing.T) {
		cmd := finish(t, "8;;https://example.com", TerminatorBEL)
		if cmd.Kind != KindHyperlinkStart || cmd.HyperlinkID != "" {
			t.Errorf("unexpected hyperlink command: %+v", cmd)
		}
	})

	t.Run("end", func(t *testing.T) {
		cmd := finish(t, "8;;", TerminatorBEL)
		if cmd.Kind != KindHyperlinkEnd {
			t.Fatalf("expected KindHyperlinkEnd, got %v", cmd.Kind)
		}
	})
}

func TestParse_DynamicColors(t *testing.T) {
	tests := []struct {
		prefix     string
		setKind    Kind
		reportKind Kind
	}{
		{"10", KindSetForeground, KindReportForeground},
		{"11", KindSetBackground, KindReportBackground},
		{"12", KindSetCursorColor, KindReportCursorColor},
	}
	for _, tt := range tests {
		t.Run(tt.prefix, func(t *testing.T) {
			set := finish(t, tt.prefix+";rgb:11/22/33", TerminatorBEL)
			if set.Kind != tt.setKind || set.ColorSpec != "rgb:11/22/33" {
				t.Errorf("unexpected set command: %+v", set)
			}
			report := finish(t, tt.prefix+";?", TerminatorBEL)
			if report.Kind != tt.reportKind || !report.Query {
				t.Errorf("unexpected report command: %+v", report)
			}
		})
	}
}

func TestParse_ResetColor(t *testing.T) {
	t.Run("reset all", func(t *testing.T) {
		cmd := finish(t, "104", TerminatorBEL)
		if cmd.Kind != KindResetColor || len(cmd.PaletteIndices) != 0 {
			t.Errorf("unexpected reset-color command: %+v", cmd)
		}
	})

	t.Run("reset specific indices", func(t *testing.T) {
		cmd := finish(t, "104;1;2;3", TerminatorBEL)
		if cmd.Kind != KindResetColor {
			t.Fatalf("expected KindResetColor, got %v", cmd.Kind)
		}
		want := []int{1, 2, 3}
		if len(cmd.PaletteIndices) != len(want) {
			t.Fatalf("expected indices %v, got %v", want, cmd.PaletteIndices)
		}
		for i, v := range want {
			if cmd.PaletteIndices[i] != v {
				t.Errorf("index %d: expected %d, got %d", i, v, cmd.PaletteIndices[i])
			}
		}
	})

	t.Run("reset foreground/background/cursor", func(t *testing.T) {
		if cmd := finish(t, "110", TerminatorBEL); cmd.Kind != KindResetForeground {
			t.Errorf("expected KindResetForeground, got %v", cmd.Kind)
		}
		if cmd := finish(t, "111", TerminatorBEL); cmd.Kind != KindResetBackground {
			t.Errorf("expected KindResetBackground, got %v", cmd.Kind)
		}
		if cmd := finish(t, "112", TerminatorBEL); cmd.Kind != KindResetCursorColor {
			t.Errorf("expected KindResetCursorColor, got %v", cmd.Kind)
		}
	})
}

func TestParse_KittyColors(t *testing.T) {
	cmd := finish(t, "21;foreground=#ff0000;background=#000000", TerminatorBEL)
	if cmd.Kind != KindKittyColorProtocol {
		t.Fatalf("expected KindKittyColorProtocol, got %v", cmd.Kind)
	}
	if cmd.KittyColors["foreground"] != "#ff0000" || cmd.KittyColors["background"] != "#000000" {
		t.Errorf("unexpected kitty colors: %+v", cmd.KittyColors)
	}
}

func TestParse_MouseShape(t *testing.T) {
	cmd := finish(t, "22;pointer", TerminatorBEL)
	if cmd.Kind != KindMouseShape || cmd.MouseShape != "pointer" {
		t.Errorf("unexpected mouse-shape command: %+v", cmd)
	}
}

func TestParse_Clipboard(t *testing.T) {
	t.Run("write", func(t *testing.T) {
		cmd := finish(t, "52;c;aGVsbG8=", TerminatorBEL)
		if cmd.Kind != KindClipboardContents {
			t.Fatalf("expected KindClipboardContents, got %v", cmd.Kind)
		}
		if cmd.ClipboardKind != 'c' || cmd.ClipboardData != "aGVsbG8=" {
			t.Errorf("unexpected clipboard command: %+v", cmd)
		}
	})

	t.Run("query", func(t *testing.T) {
		cmd := finish(t, "52;c;?", TerminatorBEL)
		if cmd.ClipboardKind != 'c' || cmd.ClipboardData != "?" {
			t.Errorf("unexpected clipboard query command: %+v", cmd)
		}
	})

	t.Run("missing kind defaults to c", func(t *testing.T) {
		cmd := finish(t, "52;aGVsbG8=", TerminatorBEL)
		if cmd.ClipboardKind != 'c' {
			t.Errorf("expected default clipboard kind 'c', got %q", cmd.ClipboardKind)
		}
	})
}

func TestParse_SemanticPrompt(t *testing.T) {
	t.Run("prompt start with no fields", func(t *testing.T) {
		cmd := finish(t, "133;A", TerminatorBEL)
		if cmd.Kind != KindPromptStart || cmd.PromptKind != PromptPrimary {
			t.Errorf("unexpected prompt-start command: %+v", cmd)
		}
	})

	t.Run("prompt start with fields but no redraw defaults true", func(t *testing.T) {
		cmd := finish(t, "133;A;aid=7", TerminatorBEL)
		if cmd.PromptAID != "7" {
			t.Errorf("expected aid 7, got %q", cmd.PromptAID)
		}
		if !cmd.PromptRedraw {
			t.Errorf("expected PromptRedraw=true when redraw field is absent but other fields are present")
		}
	})

	t.Run("prompt start with aid and continuation kind", func(t *testing.T) {
		cmd := finish(t, "133;A;aid=42;k=c;redraw=0", TerminatorBEL)
		if cmd.PromptAID != "42" {
			t.Errorf("expected aid 42, got %q", cmd.PromptAID)
		}
		if cmd.PromptKind != PromptContinuation {
			t.Errorf("expected PromptContinuation, got %v", cmd.PromptKind)
		}
		if cmd.PromptRedraw {
			t.Errorf("expected PromptRedraw=false")
		}
	})

	t.Run("prompt end", func(t *testing.T) {
		if cmd := finish(t, "133;B", TerminatorBEL); cmd.Kind != KindPromptEnd {
			t.Errorf("expected KindPromptEnd, got %v", cmd.Kind)
		}
	})

	t.Run("end of input", func(t *testing.T) {
		if cmd := finish(t, "133;C", TerminatorBEL); cmd.Kind != KindEndOfInput {
			t.Errorf("expected KindEndOfInput, got %v", cmd.Kind)
		}
	})

	t.Run("end of command without exit code", func(t *testing.T) {
		cmd := finish(t, "133;D", TerminatorBEL)
		if cmd.Kind != KindEndOfCommand || cmd.HasExitCode {
			t.Errorf("unexpected end-of-command: %+v", cmd)
		}
	})

	t.Run("end of command with exit code", func(t *testing.T) {
		cmd := finish(t, "133;D;127", TerminatorBEL)
		if !cmd.HasExitCode || cmd.ExitCode != 127 {
			t.Errorf("expected exit code 127, got %+v", cmd)
		}
	})
}

func TestParse_Progress(t *testing.T) {
	tests := []struct {
		name      string
		payload   string
		state     ProgressState
		hasValue  bool
		value     int
	}{
		{"remove", "9;4;0", ProgressRemove, false, 0},
		{"set with value", "9;4;1;42", ProgressSet, true, 42},
		{"error", "9;4;2;10", ProgressError, true, 10},
		{"indeterminate", "9;4;3", ProgressIndeterminate, false, 0},
		{"pause", "9;4;4;5", ProgressPause, true, 5},
		{"value clamped to 100", "9;4;1;250", ProgressSet, true, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := finish(t, tt.payload, TerminatorBEL)
			if cmd.Kind != KindProgress {
				t.Fatalf("expected KindProgress, got %v", cmd.Kind)
			}
			if cmd.ProgressState != tt.state {
				t.Errorf("expected state %v, got %v", tt.state, cmd.ProgressState)
			}
			if cmd.HasProgressValue != tt.hasValue {
				t.Errorf("expected HasProgressValue=%v, got %v", tt.hasValue, cmd.HasProgressValue)
			}
			if tt.hasValue && cmd.Progress != tt.value {
				t.Errorf("expected value %d, got %d", tt.value, cmd.Progress)
			}
		})
	}
}

func TestParse_DesktopNotification(t *testing.T) {
	t.Run("bare OSC 9", func(t *testing.T) {
		cmd := finish(t, "9;build finished", TerminatorBEL)
		if cmd.Kind != KindShowDesktopNotification {
			t.Fatalf("expected KindShowDesktopNotification, got %v", cmd.Kind)
		}
		if cmd.NotificationBody != "build finished" {
			t.Errorf("expected body %q, got %q", "build finished", cmd.NotificationBody)
		}
	})

	t.Run("legacy OSC 777 notify", func(t *testing.T) {
		cmd := finish(t, "777;notify;Title;Body text", TerminatorBEL)
		if cmd.Kind != KindShowDesktopNotification {
			t.Fatalf("expected KindShowDesktopNotification, got %v", cmd.Kind)
		}
		if cmd.NotificationTitle != "Title" || cmd.NotificationBody != "Body text" {
			t.Errorf("unexpected notification: %+v", cmd)
		}
	})

	t.Run("legacy OSC 777 non-notify is unknown", func(t *testing.T) {
		cmd := finish(t, "777;other;x;y", TerminatorBEL)
		if cmd.Kind != KindUnknown {
			t.Errorf("expected KindUnknown, got %v", cmd.Kind)
		}
	})
}

func TestParse_UnknownPrefix(t *testing.T) {
	cmd := finish(t, "999;whatever", TerminatorBEL)
	if cmd.Kind != KindUnknown {
		t.Errorf("expected KindUnknown, got %v", cmd.Kind)
	}
}

func TestParse_LatinOneFallback(t *testing.T) {
	// 0xE9 alone is not valid UTF-8; decodeText must fall back to Latin-1
	// so the byte round-trips as 'é' rather than becoming U+FFFD.
	p := New()
	for _, b := range []byte("0;caf") {
		p.Put(b)
	}
	p.Put(0xE9)
	cmd, ok := p.Finish(TerminatorBEL)
	if !ok {
		t.Fatal("Finish returned ok=false")
	}
	if cmd.Text != "café" {
		t.Errorf("expected %q, got %q", "café", cmd.Text)
	}
}

func TestFinish_EmptyPayload(t *testing.T) {
	p := New()
	_, ok := p.Finish(TerminatorBEL)
	if ok {
		t.Error("expected ok=false for an empty payload")
	}
}

func TestFinish_ReportsTerminator(t *testing.T) {
	for _, term := range []Terminator{TerminatorBEL, TerminatorST} {
		cmd := finish(t, "0;x", term)
		if cmd.Terminator != term {
			t.Errorf("expected terminator %v, got %v", term, cmd.Terminator)
		}
	}
}

func TestPut_OverflowMarksIncomplete(t *testing.T) {
	p := New()
	for i := 0; i < fixedBufferSize+10; i++ {
		p.Put('x')
	}
	cmd, ok := p.Finish(TerminatorBEL)
	if !ok {
		t.Fatal("Finish returned ok=false")
	}
	if !cmd.Incomplete {
		t.Error("expected Incomplete=true after overflowing the fixed buffer")
	}
}

func TestTerminator_String(t *testing.T) {
	if got := TerminatorBEL.String(); got != "\x07" {
		t.Errorf("expected BEL string, got %q", got)
	}
	if got := TerminatorST.String(); got != "\x1b\\" {
		t.Errorf("expected ST string, got %q", got)
	}
}
