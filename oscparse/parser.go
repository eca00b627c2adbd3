package oscparse

import (
	"bytes"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/text/encoding/charmap"
)

// fixedBufferSize is the working buffer size backing most OSC fields.
// Commands that can legitimately exceed it (clipboard contents, kitty
// color lists) grow past it only when an Allocator is configured.
const fixedBufferSize = 2048

// Option configures a Parser.
type Option func(*Parser)

// WithAllocator enables dynamic growth for fields that may exceed the
// fixed working buffer (clipboard contents, kitty color lists), up to
// maxBytes. Without it, such commands silently cap at the fixed buffer
// and are marked Incomplete.
func WithAllocator(maxBytes int) Option {
	return func(p *Parser) {
		p.hasAllocator = true
		p.maxBytes = maxBytes
	}
}

// WithMaxBytes sets the overall OSC payload cap even without a dynamic
// allocator (default 1 MiB; values below 256 reject all non-trivial
// payloads).
func WithMaxBytes(n int) Option {
	return func(p *Parser) { p.maxBytes = n }
}

// Parser accumulates bytes delivered by the VT parser's osc_string state
// and, on Finish, parses the accumulated payload into a Command.
type Parser struct {
	buf          []byte
	hasAllocator bool
	maxBytes     int
	overflowed   bool

	// genIDFunc is set to uuid.NewString by New. Finish does not call
	// it: a hyperlink_start without id= keeps an empty HyperlinkID, and
	// an embedding program that wants one can call NewHyperlinkID.
	genIDFunc func() string
}

// New creates an OSC sub-parser. Defaults: fixed 2 KiB buffer, no
// allocator, 1 MiB max payload size (values below 256 reject all
// non-trivial payloads).
func New(opts ...Option) *Parser {
	p := &Parser{
		maxBytes:  1 << 20,
		genIDFunc: uuid.NewString,
	}
	for _, o := range opts {
		o(p)
	}
	if p.maxBytes < 256 {
		p.maxBytes = 0
	}
	return p
}

// Reset clears the accumulator; called by the driver on entering
// osc_string.
func (p *Parser) Reset() {
	p.buf = p.buf[:0]
	p.overflowed = false
}

// effectiveCap returns the current capacity ceiling for the buffer.
func (p *Parser) effectiveCap() int {
	if p.hasAllocator {
		return p.maxBytes
	}
	if p.maxBytes < fixedBufferSize {
		return p.maxBytes
	}
	return fixedBufferSize
}

// Put appends one payload byte, received via the osc_put transition
// action. Bytes beyond the effective capacity are dropped and the
// command is marked Incomplete.
func (p *Parser) Put(b byte) {
	if len(p.buf) >= p.effectiveCap() {
		p.overflowed = true
		return
	}
	p.buf = append(p.buf, b)
}

// Finish parses the accumulated payload, called on exiting osc_string.
// ok is false when no bytes were ever accumulated (empty OSC, nothing
// to dispatch).
func (p *Parser) Finish(term Terminator) (*Command, bool) {
	if len(p.buf) == 0 {
		return nil, false
	}
	cmd := parse(p.buf)
	cmd.Terminator = term
	if p.overflowed {
		cmd.Incomplete = true
	}
	return cmd, true
}

// parse dispatches on the numeric prefix before the first ';'. Any
// other prefix yields KindUnknown.
func parse(buf []byte) *Command {
	prefix, rest, _ := cut(buf, ';')
	switch string(prefix) {
	case "0", "2":
		return &Command{Kind: KindChangeWindowTitle, Text: decodeText(rest)}
	case "1":
		return &Command{Kind: KindChangeWindowIcon, Text: decodeText(rest)}
	case "4":
		return parseSetColor(rest, KindSetColor, KindReportColor)
	case "7":
		return &Command{Kind: KindReportPWD, PWD: string(rest)}
	case "8":
		return parseHyperlink(rest)
	case "9":
		return parseNine(rest)
	case "10":
		return parseDynamicColor(rest, KindSetForeground, KindReportForeground)
	case "11":
		return parseDynamicColor(rest, KindSetBackground, KindReportBackground)
	case "12":
		return parseDynamicColor(rest, KindSetCursorColor, KindReportCursorColor)
	case "21":
		return parseKittyColors(rest)
	case "22":
		return &Command{Kind: KindMouseShape, MouseShape: string(rest)}
	case "52":
		return parseClipboard(rest)
	case "104":
		return parseResetColor(rest)
	case "110":
		return &Command{Kind: KindResetForeground}
	case "111":
		return &Command{Kind: KindResetBackground}
	case "112":
		return &Command{Kind: KindResetCursorColor}
	case "133":
		return parseSemanticPrompt(rest)
	case "777":
		return parseLegacyNotify(rest)
	default:
		return &Command{Kind: KindUnknown, Text: string(buf)}
	}
}

// decodeText returns b as UTF-8, falling back to ISO-8859-1 when b
// isn't valid UTF-8. xterm's OSC 0/1/2 never declared an encoding for
// window titles, and plenty of legacy senders still emit raw Latin-1
// bytes; decoding through charmap.ISO8859_1 keeps those bytes
// round-trippable as runes instead of producing replacement characters.
func decodeText(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}
	out, err := charmap.ISO8859_1.NewDecoder().Bytes(b)
	if err != nil {
		return string(b)
	}
	return string(out)
}

func cut(buf []byte, sep byte) (before, after []byte, found bool) {
	if i := bytes.IndexByte(buf, sep); i >= 0 {
		return buf[:i], buf[i+1:], true
	}
	return buf, nil, false
}

func parseSetColor(rest []byte, setKind, reportKind Kind) *Command {
	idxField, spec, _ := cut(rest, ';')
	idx, err := strconv.Atoi(string(idxField))
	if err != nil {
		return &Command{Kind: KindUnknown}
	}
	idx = clampU16(idx)
	if string(spec) == "?" {
		return &Command{Kind: reportKind, Palette: idx, Query: true}
	}
	return &Command{Kind: setKind, Palette: idx, ColorSpec: string(spec)}
}

func parseDynamicColor(rest []byte, setKind, reportKind Kind) *Command {
	if string(rest) == "?" {
		return &Command{Kind: reportKind, Query: true}
	}
	return &Command{Kind: setKind, ColorSpec: string(rest)}
}

func parseResetColor(rest []byte) *Command {
	if len(rest) == 0 {
		return &Command{Kind: KindResetColor}
	}
	var indices []int
	for _, part := range strings.Split(string(rest), ";") {
		if n, err := strconv.Atoi(part); err == nil {
			indices = append(indices, clampU16(n))
		}
	}
	return &Command{Kind: KindResetColor, PaletteIndices: indices}
}

func parseHyperlink(rest []byte) *Command {
	params, uri, _ := cut(rest, ';')
	if len(uri) == 0 {
		return &Command{Kind: KindHyperlinkEnd}
	}
	var id string
	if len(params) > 0 {
		for _, kv := range strings.Split(string(params), ":") {
			k, v, ok := strings.Cut(kv, "=")
			if ok && k == "id" {
				id = v
			}
		}
	}
	return &Command{Kind: KindHyperlinkStart, HyperlinkID: id, HyperlinkURI: string(uri)}
}

// NewHyperlinkID synthesizes a stable id for a hyperlink_start command
// that omitted one, so repeated references to the same link can be
// correlated by the embedding program even without an explicit id.
func NewHyperlinkID() string {
	return uuid.NewString()
}

func parseNine(rest []byte) *Command {
	head, tail, hasSemi := cut(rest, ';')
	if string(head) == "4" {
		return parseProgress(tail)
	}
	if hasSemi {
		// "9;4;..." handled above; anything else, ';' included, is the
		// notification body text.
	}
	return &Command{Kind: KindShowDesktopNotification, NotificationTitle: "", NotificationBody: string(rest)}
}

func parseProgress(rest []byte) *Command {
	stateField, valueField, hasValue := cut(rest, ';')
	state, err := strconv.Atoi(string(stateField))
	if err != nil {
		return &Command{Kind: KindUnknown}
	}
	cmd := &Command{Kind: KindProgress, ProgressState: ProgressState(clampState(state))}
	if hasValue {
		v, err := strconv.Atoi(string(valueField))
		if err == nil {
			if v < 0 {
				v = 0
			}
			if v > 100 {
				v = 100
			}
			cmd.Progress = v
			cmd.HasProgressValue = true
		}
	}
	return cmd
}

func clampState(n int) int {
	if n < 0 {
		return 0
	}
	if n > int(ProgressPause) {
		return int(ProgressPause)
	}
	return n
}

func parseKittyColors(rest []byte) *Command {
	colors := make(map[string]string)
	for _, kv := range strings.Split(string(rest), ";") {
		if kv == "" {
			continue
		}
		k, v, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		colors[k] = v
	}
	return &Command{Kind: KindKittyColorProtocol, KittyColors: colors}
}

func parseClipboard(rest []byte) *Command {
	kindField, data, hasSemi := cut(rest, ';')
	kind := byte('c')
	if hasSemi && len(kindField) > 0 {
		kind = kindField[0]
	} else if !hasSemi {
		data = kindField
	}
	return &Command{Kind: KindClipboardContents, ClipboardKind: kind, ClipboardData: string(data)}
}

func parseSemanticPrompt(rest []byte) *Command {
	sub, tail, _ := cut(rest, ';')
	switch string(sub) {
	case "A":
		return parsePromptStart(tail)
	case "B":
		return &Command{Kind: KindPromptEnd}
	case "C":
		return &Command{Kind: KindEndOfInput}
	case "D":
		cmd := &Command{Kind: KindEndOfCommand}
		if len(tail) > 0 {
			codeField, _, _ := cut(tail, ';')
			if n, err := strconv.Atoi(string(codeField)); err == nil {
				cmd.ExitCode = n
				cmd.HasExitCode = true
			}
		}
		return cmd
	default:
		return &Command{Kind: KindUnknown}
	}
}

func parsePromptStart(rest []byte) *Command {
	cmd := &Command{Kind: KindPromptStart, PromptKind: PromptPrimary}
	if len(rest) == 0 {
		return cmd
	}
	for _, kv := range strings.Split(string(rest), ";") {
		k, v, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		switch k {
		case "aid":
			cmd.PromptAID = v
		case "k":
			switch v {
			case "c":
				cmd.PromptKind = PromptContinuation
			case "s":
				cmd.PromptKind = PromptSecondary
			case "r":
				cmd.PromptKind = PromptRight
			default:
				cmd.PromptKind = PromptPrimary
			}
		case "redraw":
			cmd.PromptRedraw = v != "0"
		}
	}
	if _, ok := find(rest, "redraw="); !ok {
		cmd.PromptRedraw = true
	}
	return cmd
}

func find(buf []byte, needle string) (int, bool) {
	i := bytes.Index(buf, []byte(needle))
	return i, i >= 0
}

func parseLegacyNotify(rest []byte) *Command {
	kindField, tail, hasSemi := cut(rest, ';')
	if !hasSemi || string(kindField) != "notify" {
		return &Command{Kind: KindUnknown}
	}
	title, body, _ := cut(tail, ';')
	return &Command{Kind: KindShowDesktopNotification, NotificationTitle: string(title), NotificationBody: string(body)}
}

func clampU16(n int) int {
	if n < 0 {
		return 0
	}
	if n > 65535 {
		return 65535
	}
	return n
}
