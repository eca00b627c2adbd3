package vtcore

import (
	"strings"

	"github.com/vtcore-dev/vtcore/cellpage"
)

// PromptMarkKind classifies a row per OSC 133 semantic-prompt marks,
// mirroring cellpage.SemanticPrompt. It exists as its own root-package
// type (rather than reusing cellpage.SemanticPrompt directly) because
// the teacher's equivalent (ansicode.ShellIntegrationMark) was a
// public, importable type and callers of this package expect one too.
type PromptMarkKind int

const (
	// PromptMarkAny matches any kind in NextPromptRow/PrevPromptRow.
	PromptMarkAny                PromptMarkKind = -1
	PromptMarkUnknown            PromptMarkKind = PromptMarkKind(cellpage.SemanticPromptUnknown)
	PromptMarkPrompt             PromptMarkKind = PromptMarkKind(cellpage.SemanticPromptPrompt)
	PromptMarkPromptContinuation PromptMarkKind = PromptMarkKind(cellpage.SemanticPromptPromptContinuation)
	PromptMarkInput              PromptMarkKind = PromptMarkKind(cellpage.SemanticPromptInput)
	PromptMarkCommand            PromptMarkKind = PromptMarkKind(cellpage.SemanticPromptCommand)
)

// PromptMark describes one semantic-prompt boundary: the row (in
// absolute screen-row space, covering history plus the active area)
// where it occurs, and — for PromptMarkCommand rows only — the
// command's exit code, if the shell reported one (OSC 133;D).
type PromptMark struct {
	Kind        PromptMarkKind
	Row         int
	ExitCode    int
	HasExitCode bool
}

// PromptMarks returns every recorded semantic-prompt boundary, scanning
// rows in ascending order. Unlike the teacher, which appended to an
// independently tracked list as OSC 133 sequences arrived, marks here
// are derived on demand from each row's cellpage.Row.SemanticPrompt
// field (the source of truth the screen package maintains) plus the
// exit-code side table EndOfCommand populates — so marks always
// reflect the current grid, including rows that have since scrolled
// into history.
func (t *Terminal) PromptMarks() []PromptMark {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.promptMarksLocked()
}

func (t *Terminal) promptMarksLocked() []PromptMark {
	var marks []PromptMark
	maxY := t.screen.MaxY()
	for y := 0; y <= maxY; y++ {
		sp := t.screen.GetRow(y).SemanticPrompt
		if sp == cellpage.SemanticPromptUnknown {
			continue
		}
		m := PromptMark{Kind: PromptMarkKind(sp), Row: y}
		if sp == cellpage.SemanticPromptCommand {
			if ec, ok := t.exitCodes[y]; ok {
				m.ExitCode, m.HasExitCode = ec.code, ec.hasCode
			}
		}
		marks = append(marks, m)
	}
	return marks
}

// PromptMarkCount returns the number of recorded semantic-prompt boundaries.
func (t *Terminal) PromptMarkCount() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.promptMarksLocked())
}

// ClearPromptMarks discards the recorded exit-code side table. Row
// classifications themselves persist in the grid (they're part of the
// cell/row state a rewrite or scroll would otherwise have to replay),
// so a row already marked Command still reports as one; only its exit
// code forgets.
func (t *Terminal) ClearPromptMarks() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.exitCodes = make(map[int]promptExitCode)
}

// NextPromptRow returns the absolute row of the next mark after
// fromRow, or -1 if none exists. kind restricts the search to one
// PromptMarkKind, or use PromptMarkAny to match any kind.
func (t *Terminal) NextPromptRow(fromRow int, kind PromptMarkKind) int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for _, m := range t.promptMarksLocked() {
		if m.Row > fromRow && (kind == PromptMarkAny || m.Kind == kind) {
			return m.Row
		}
	}
	return -1
}

// PrevPromptRow returns the absolute row of the previous mark before
// fromRow, or -1 if none exists.
func (t *Terminal) PrevPromptRow(fromRow int, kind PromptMarkKind) int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	marks := t.promptMarksLocked()
	for i := len(marks) - 1; i >= 0; i-- {
		m := marks[i]
		if m.Row < fromRow && (kind == PromptMarkAny || m.Kind == kind) {
			return m.Row
		}
	}
	return -1
}

// GetPromptMarkAt returns the mark at absolute row, or nil if none exists.
func (t *Terminal) GetPromptMarkAt(row int) *PromptMark {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for _, m := range t.promptMarksLocked() {
		if m.Row == row {
			mark := m
			return &mark
		}
	}
	return nil
}

// GetLastCommandOutput returns the text of the most recently completed
// command's output: the rows between the last PromptMarkPrompt row and
// the following PromptMarkCommand row, trimmed of trailing blank
// lines. This folds together what a shell distinguishes as "input
// echoed back" and "command output" — oscparse's KindEndOfInput
// (OSC 133;C) is a pure boundary marker with no row effect (§
// screen/dispatch.go), so no finer split is recoverable from the grid
// alone. Returns "" if no complete prompt/command pair is recorded.
func (t *Terminal) GetLastCommandOutput() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	marks := t.promptMarksLocked()
	cmdRow := -1
	for i := len(marks) - 1; i >= 0; i-- {
		if marks[i].Kind == PromptMarkCommand {
			cmdRow = marks[i].Row
			break
		}
	}
	if cmdRow < 0 {
		return ""
	}
	promptRow := -1
	for i := len(marks) - 1; i >= 0; i-- {
		if marks[i].Row < cmdRow && marks[i].Kind == PromptMarkPrompt {
			promptRow = marks[i].Row
			break
		}
	}
	if promptRow < 0 {
		return ""
	}
	var lines []string
	last := -1
	for y := promptRow + 1; y < cmdRow; y++ {
		line := t.screenLineLocked(y)
		lines = append(lines, line)
		if line != "" {
			last = len(lines) - 1
		}
	}
	if last < 0 {
		return ""
	}
	out := lines[:last+1]
	s := ""
	for i, l := range out {
		if i > 0 {
			s += "\n"
		}
		s += l
	}
	return s
}

// screenLineLocked returns the plain-text content of absolute
// screen-row y (history or active), with trailing blanks trimmed; the
// caller must hold mu.
func (t *Terminal) screenLineLocked(y int) string {
	cells := t.rowCellsAt(y)
	return strings.TrimRight(cellsToPlainText(cells, 0, len(cells)-1), " ")
}
