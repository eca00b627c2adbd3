package vtcore

import "testing"

func TestSemanticPromptMark_PromptStart(t *testing.T) {
	term := New(WithSize(24, 80))

	term.WriteString("\x1b]133;A\x07")

	marks := term.PromptMarks()
	if len(marks) != 1 {
		t.Fatalf("expected 1 mark, got %d", len(marks))
	}
	if marks[0].Kind != PromptMarkPrompt {
		t.Errorf("expected PromptMarkPrompt, got %v", marks[0].Kind)
	}
	if marks[0].HasExitCode {
		t.Errorf("expected no exit code on a prompt mark")
	}
}

// OSC 133;B and 133;C are pure boundary markers (screen/dispatch.go):
// they don't change a row's SemanticPrompt classification, so they
// produce no new mark of their own.
func TestSemanticPromptMark_CommandStartIsBoundaryOnly(t *testing.T) {
	term := New(WithSize(24, 80))

	term.WriteString("\x1b]133;A\x07")
	term.WriteString("$ ")
	term.WriteString("\x1b]133;B\x07")

	marks := term.PromptMarks()
	if len(marks) != 1 {
		t.Fatalf("expected 1 mark (B adds none), got %d", len(marks))
	}
}

func TestSemanticPromptMark_CommandFinished(t *testing.T) {
	term := New(WithSize(24, 80))

	term.WriteString("\x1b]133;D\x07")

	marks := term.PromptMarks()
	if len(marks) != 1 {
		t.Fatalf("expected 1 mark, got %d", len(marks))
	}
	if marks[0].Kind != PromptMarkCommand {
		t.Errorf("expected PromptMarkCommand, got %v", marks[0].Kind)
	}
	if marks[0].HasExitCode {
		t.Errorf("expected no exit code when none reported")
	}
}

func TestSemanticPromptMark_CommandFinishedWithExitCode(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		exitCode int
	}{
		{"exit code 0", "\x1b]133;D;0\x07", 0},
		{"exit code 1", "\x1b]133;D;1\x07", 1},
		{"exit code 127", "\x1b]133;D;127\x07", 127},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			term := New(WithSize(24, 80))
			term.WriteString(tt.input)

			marks := term.PromptMarks()
			if len(marks) != 1 {
				t.Fatalf("expected 1 mark, got %d", len(marks))
			}
			if !marks[0].HasExitCode {
				t.Fatal("expected an exit code to be recorded")
			}
			if marks[0].ExitCode != tt.exitCode {
				t.Errorf("expected exit code %d, got %d", tt.exitCode, marks[0].ExitCode)
			}
		})
	}
}

func TestSemanticPromptMark_FullSequence(t *testing.T) {
	term := New(WithSize(24, 80))

	term.WriteString("\x1b]133;A\x07")
	term.WriteString("$ ")
	term.WriteString("\x1b]133;B\x07")
	term.WriteString("ls -la")
	term.WriteString("\r\n")
	term.WriteString("\x1b]133;C\x07")
	term.WriteString("file1\r\nfile2\r\n")
	term.WriteString("\x1b]133;D;0\x07")

	marks := term.PromptMarks()
	// Only A (row 0, Prompt) and D (row 3, Command) change a row's
	// classification; B and C are boundary-only.
	if len(marks) != 2 {
		t.Fatalf("expected 2 marks, got %d", len(marks))
	}
	if marks[0].Kind != PromptMarkPrompt || marks[0].Row != 0 {
		t.Errorf("mark 0: expected Prompt at row 0, got %v at row %d", marks[0].Kind, marks[0].Row)
	}
	if marks[1].Kind != PromptMarkCommand {
		t.Errorf("mark 1: expected Command, got %v", marks[1].Kind)
	}
	if !marks[1].HasExitCode || marks[1].ExitCode != 0 {
		t.Errorf("expected exit code 0, got has=%v code=%d", marks[1].HasExitCode, marks[1].ExitCode)
	}
}

func TestSemanticPromptMark_RowTracking(t *testing.T) {
	term := New(WithSize(24, 80))

	term.WriteString("\x1b]133;A\x07") // Row 0
	term.WriteString("prompt1\r\n")
	term.WriteString("\x1b]133;A\x07") // Row 1
	term.WriteString("prompt2\r\n")
	term.WriteString("\x1b]133;A\x07") // Row 2

	marks := term.PromptMarks()
	if len(marks) != 3 {
		t.Fatalf("expected 3 marks, got %d", len(marks))
	}
	if marks[0].Row != 0 || marks[1].Row != 1 || marks[2].Row != 2 {
		t.Errorf("unexpected rows: %d, %d, %d", marks[0].Row, marks[1].Row, marks[2].Row)
	}
}

func TestSemanticPromptMark_NextPromptRow(t *testing.T) {
	term := New(WithSize(24, 80))

	term.WriteString("\x1b]133;A\x07")
	term.WriteString("prompt1\r\n")
	term.WriteString("\x1b]133;A\x07")
	term.WriteString("prompt2\r\n")
	term.WriteString("\x1b]133;A\x07")

	if next := term.NextPromptRow(-1, PromptMarkAny); next != 0 {
		t.Errorf("expected next prompt at row 0, got %d", next)
	}
	if next := term.NextPromptRow(0, PromptMarkAny); next != 1 {
		t.Errorf("expected next prompt at row 1, got %d", next)
	}
	if next := term.NextPromptRow(1, PromptMarkAny); next != 2 {
		t.Errorf("expected next prompt at row 2, got %d", next)
	}
	if next := term.NextPromptRow(2, PromptMarkAny); next != -1 {
		t.Errorf("expected no next prompt (-1), got %d", next)
	}
}

func TestSemanticPromptMark_PrevPromptRow(t *testing.T) {
	term := New(WithSize(24, 80))

	term.WriteString("\x1b]133;A\x07")
	term.WriteString("prompt1\r\n")
	term.WriteString("\x1b]133;A\x07")
	term.WriteString("prompt2\r\n")
	term.WriteString("\x1b]133;A\x07")

	if prev := term.PrevPromptRow(3, PromptMarkAny); prev != 2 {
		t.Errorf("expected prev prompt at row 2, got %d", prev)
	}
	if prev := term.PrevPromptRow(2, PromptMarkAny); prev != 1 {
		t.Errorf("expected prev prompt at row 1, got %d", prev)
	}
	if prev := term.PrevPromptRow(1, PromptMarkAny); prev != 0 {
		t.Errorf("expected prev prompt at row 0, got %d", prev)
	}
	if prev := term.PrevPromptRow(0, PromptMarkAny); prev != -1 {
		t.Errorf("expected no prev prompt (-1), got %d", prev)
	}
}

func TestSemanticPromptMark_FilterByKind(t *testing.T) {
	term := New(WithSize(24, 80))

	term.WriteString("\x1b]133;A\x07") // Prompt at row 0
	term.WriteString("prompt\r\n")
	term.WriteString("\x1b]133;D\x07") // Command at row 1
	term.WriteString("output\r\n")
	term.WriteString("\x1b]133;A\x07") // Prompt at row 2

	if next := term.NextPromptRow(-1, PromptMarkPrompt); next != 0 {
		t.Errorf("expected next Prompt at row 0, got %d", next)
	}
	if next := term.NextPromptRow(0, PromptMarkPrompt); next != 2 {
		t.Errorf("expected next Prompt at row 2, got %d", next)
	}
	if next := term.NextPromptRow(-1, PromptMarkCommand); next != 1 {
		t.Errorf("expected next Command at row 1, got %d", next)
	}
}

func TestSemanticPromptMark_ClearMarks(t *testing.T) {
	term := New(WithSize(24, 80))

	term.WriteString("\x1b]133;A\x07")
	term.WriteString("\r\n")
	term.WriteString("\x1b]133;D;7\x07")

	if term.PromptMarkCount() != 2 {
		t.Fatalf("expected 2 marks, got %d", term.PromptMarkCount())
	}

	term.ClearPromptMarks()

	// Row classification survives (it's part of the grid); only the
	// exit-code side table is discarded.
	marks := term.PromptMarks()
	if len(marks) != 2 {
		t.Fatalf("expected row classifications to persist, got %d marks", len(marks))
	}
	if marks[1].HasExitCode {
		t.Errorf("expected exit code to be forgotten after ClearPromptMarks")
	}
}

func TestSemanticPromptMark_GetMarkAt(t *testing.T) {
	term := New(WithSize(24, 80))

	term.WriteString("\x1b]133;A\x07") // Row 0

	mark := term.GetPromptMarkAt(0)
	if mark == nil {
		t.Fatal("expected mark at row 0, got nil")
	}
	if mark.Kind != PromptMarkPrompt {
		t.Errorf("expected PromptMarkPrompt, got %v", mark.Kind)
	}

	if mark := term.GetPromptMarkAt(1); mark != nil {
		t.Errorf("expected nil at row 1, got %v", mark)
	}
}

func TestSemanticPromptMark_Middleware(t *testing.T) {
	var middlewareCalled bool
	var receivedKind PromptMarkKind
	var receivedExitCode int

	mw := &Middleware{
		EndOfCommand: func(exitCode int, hasExitCode bool, next func(int, bool)) {
			middlewareCalled = true
			receivedExitCode = exitCode
			next(exitCode, hasExitCode)
		},
		SemanticPromptMark: func(kind PromptMarkKind, row int, next func(PromptMarkKind, int)) {
			receivedKind = kind
			next(kind, row)
		},
	}

	term := New(WithSize(24, 80), WithMiddleware(mw))

	term.WriteString("\x1b]133;D;123\x07")

	if !middlewareCalled {
		t.Error("expected EndOfCommand middleware to be called")
	}
	if receivedExitCode != 123 {
		t.Errorf("expected exit code 123, got %d", receivedExitCode)
	}
	if receivedKind != PromptMarkCommand {
		t.Errorf("expected PromptMarkCommand, got %v", receivedKind)
	}
	if term.PromptMarkCount() != 1 {
		t.Errorf("expected 1 mark, got %d", term.PromptMarkCount())
	}
}

// --- GetLastCommandOutput ---

func TestGetLastCommandOutput_Basic(t *testing.T) {
	term := New(WithSize(24, 80))

	term.WriteString("\x1b]133;A\x07")
	term.WriteString("$ ")
	term.WriteString("\x1b]133;B\x07")
	term.WriteString("echo hello")
	term.WriteString("\r\n")
	term.WriteString("\x1b]133;C\x07")
	term.WriteString("hello\r\n")
	term.WriteString("\x1b]133;D;0\x07")

	if output := term.GetLastCommandOutput(); output != "hello" {
		t.Errorf("expected %q, got %q", "hello", output)
	}
}

func TestGetLastCommandOutput_MultiLine(t *testing.T) {
	term := New(WithSize(24, 80))

	term.WriteString("\x1b]133;A\x07")
	term.WriteString("\r\n")
	term.WriteString("\x1b]133;C\x07")
	term.WriteString("line1\r\n")
	term.WriteString("line2\r\n")
	term.WriteString("line3\r\n")
	term.WriteString("\x1b]133;D;0\x07")

	expected := "line1\nline2\nline3"
	if output := term.GetLastCommandOutput(); output != expected {
		t.Errorf("expected %q, got %q", expected, output)
	}
}

func TestGetLastCommandOutput_NoOutput(t *testing.T) {
	term := New(WithSize(24, 80))

	term.WriteString("\x1b]133;A\x07")
	term.WriteString("\x1b]133;D;0\x07")

	if output := term.GetLastCommandOutput(); output != "" {
		t.Errorf("expected empty string, got %q", output)
	}
}

func TestGetLastCommandOutput_NoMarks(t *testing.T) {
	term := New(WithSize(24, 80))

	if output := term.GetLastCommandOutput(); output != "" {
		t.Errorf("expected empty string, got %q", output)
	}
}

func TestGetLastCommandOutput_NoPromptYet(t *testing.T) {
	term := New(WithSize(24, 80))

	term.WriteString("\x1b]133;C\x07")
	term.WriteString("output\r\n")

	if output := term.GetLastCommandOutput(); output != "" {
		t.Errorf("expected empty string (no prompt/command pair), got %q", output)
	}
}

func TestGetLastCommandOutput_MultipleCommands(t *testing.T) {
	term := New(WithSize(24, 80))

	term.WriteString("\x1b]133;A\x07")
	term.WriteString("\x1b]133;C\x07")
	term.WriteString("first output\r\n")
	term.WriteString("\x1b]133;D;0\x07")
	term.WriteString("\r\n")

	term.WriteString("\x1b]133;A\x07")
	term.WriteString("$ ")
	term.WriteString("\x1b]133;B\x07")
	term.WriteString("cmd2\r\n")
	term.WriteString("\x1b]133;C\x07")
	term.WriteString("second output\r\n")
	term.WriteString("\x1b]133;D;0\x07")

	expected := "second output"
	if output := term.GetLastCommandOutput(); output != expected {
		t.Errorf("expected %q, got %q", expected, output)
	}
}

func TestGetLastCommandOutput_TrailingEmptyLines(t *testing.T) {
	term := New(WithSize(24, 80))

	term.WriteString("\x1b]133;A\x07")
	term.WriteString("\r\n")
	term.WriteString("\x1b]133;C\x07")
	term.WriteString("content\r\n")
	term.WriteString("\r\n")
	term.WriteString("\r\n")
	term.WriteString("\x1b]133;D;0\x07")

	expected := "content"
	if output := term.GetLastCommandOutput(); output != expected {
		t.Errorf("expected %q, got %q", expected, output)
	}
}

// --- Scrollback interaction ---

type testScrollbackForSemanticPrompt struct {
	lines    [][]CellView
	maxLines int
}

func (s *testScrollbackForSemanticPrompt) Push(line []CellView) {
	lineCopy := make([]CellView, len(line))
	copy(lineCopy, line)
	s.lines = append(s.lines, lineCopy)
	if s.maxLines > 0 && len(s.lines) > s.maxLines {
		s.lines = s.lines[len(s.lines)-s.maxLines:]
	}
}

func (s *testScrollbackForSemanticPrompt) Len() int { return len(s.lines) }

func (s *testScrollbackForSemanticPrompt) Line(index int) []CellView {
	if index < 0 || index >= len(s.lines) {
		return nil
	}
	return s.lines[index]
}

func (s *testScrollbackForSemanticPrompt) SetMaxLines(n int) { s.maxLines = n }
func (s *testScrollbackForSemanticPrompt) Clear()             { s.lines = nil }
func (s *testScrollbackForSemanticPrompt) MaxLines() int      { return s.maxLines }

func TestSemanticPromptMark_RowsSurviveScrollback(t *testing.T) {
	storage := &testScrollbackForSemanticPrompt{}
	storage.SetMaxLines(100)

	term := New(WithSize(5, 80), WithScrollback(storage))

	term.WriteString("\x1b]133;A\x07") // absolute row 0
	term.WriteString("prompt1\r\n")

	for i := 0; i < 10; i++ {
		term.WriteString("line\r\n")
	}

	term.WriteString("\x1b]133;A\x07")
	term.WriteString("prompt2\r\n")

	marks := term.PromptMarks()
	if len(marks) != 2 {
		t.Fatalf("expected 2 marks, got %d", len(marks))
	}
	if marks[0].Row != 0 {
		t.Errorf("expected first mark at absolute row 0, got %d", marks[0].Row)
	}
	if marks[1].Row != 11 {
		t.Errorf("expected second mark at absolute row 11, got %d", marks[1].Row)
	}

	if next := term.NextPromptRow(-1, PromptMarkAny); next != 0 {
		t.Errorf("expected next prompt at absolute row 0, got %d", next)
	}
	if next := term.NextPromptRow(0, PromptMarkAny); next != 11 {
		t.Errorf("expected next prompt at absolute row 11, got %d", next)
	}

	if term.ScrollbackLen() == 0 {
		t.Error("expected scrollback to exist")
	}
}

func TestSemanticPromptMark_GetMarkAtWithScrollback(t *testing.T) {
	storage := &testScrollbackForSemanticPrompt{}
	storage.SetMaxLines(100)

	term := New(WithSize(5, 80), WithScrollback(storage))

	term.WriteString("\x1b]133;A\x07")
	term.WriteString("prompt\r\n")

	for i := 0; i < 10; i++ {
		term.WriteString("line\r\n")
	}

	mark := term.GetPromptMarkAt(0)
	if mark == nil {
		t.Fatal("expected mark at absolute row 0, got nil")
	}
	if mark.Kind != PromptMarkPrompt {
		t.Errorf("expected PromptMarkPrompt, got %v", mark.Kind)
	}

	if mark := term.GetPromptMarkAt(5); mark != nil {
		t.Errorf("expected nil at absolute row 5, got %v", mark)
	}
}
