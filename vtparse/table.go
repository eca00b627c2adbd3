package vtparse

// Table is the static 256×|State| transition table driving the parser.
// It is built once at package init time by builder, which enforces the
// invariant that every (byte, state) pair is assigned exactly one
// transition — a duplicate assignment panics during init. See
// table_test.go for the test that exercises this invariant.
var Table [numStates][256]Transition

type builder struct {
	set [numStates][256]bool
}

func (b *builder) assign(s State, lo, hi byte, next State, action TransitionAction) {
	for c := int(lo); c <= int(hi); c++ {
		if b.set[s][c] {
			panic("vtparse: duplicate transition for state/byte")
		}
		b.set[s][c] = true
		Table[s][c] = Transition{Next: next, Action: action}
	}
}

func (b *builder) fill(s State, next State, action TransitionAction) {
	for c := 0; c < 256; c++ {
		if !b.set[s][c] {
			b.set[s][c] = true
			Table[s][c] = Transition{Next: next, Action: action}
		}
	}
}

func init() {
	b := &builder{}

	// --- anywhere: global transitions consulted before the current state ---
	b.assign(stateAnywhere, 0x18, 0x18, StateGround, ActionExecute) // CAN
	b.assign(stateAnywhere, 0x1A, 0x1A, StateGround, ActionExecute) // SUB
	b.assign(stateAnywhere, 0x1B, 0x1B, StateEscape, ActionNone)    // ESC
	for _, c := range []byte{0x80, 0x81, 0x82, 0x83, 0x84, 0x85, 0x86, 0x87, 0x88, 0x89, 0x8A, 0x8B, 0x8C, 0x8D, 0x8E, 0x8F, 0x91, 0x92, 0x93, 0x94, 0x95, 0x96, 0x97, 0x99, 0x9A} {
		b.assign(stateAnywhere, c, c, StateGround, ActionExecute)
	}
	b.assign(stateAnywhere, 0x9C, 0x9C, StateGround, ActionNone)       // ST
	b.assign(stateAnywhere, 0x90, 0x90, StateDCSEntry, ActionNone)     // DCS
	b.assign(stateAnywhere, 0x9D, 0x9D, StateOSCString, ActionNone)    // OSC
	b.assign(stateAnywhere, 0x98, 0x98, StateSOSPMAPCString, ActionNone) // SOS
	b.assign(stateAnywhere, 0x9E, 0x9E, StateSOSPMAPCString, ActionNone) // PM
	b.assign(stateAnywhere, 0x9F, 0x9F, StateSOSPMAPCString, ActionNone) // APC
	b.fill(stateAnywhere, StateGround, ActionNone)

	// --- ground ---
	b.assign(StateGround, 0x00, 0x17, StateGround, ActionExecute)
	b.assign(StateGround, 0x19, 0x19, StateGround, ActionExecute)
	b.assign(StateGround, 0x1C, 0x1F, StateGround, ActionExecute)
	b.assign(StateGround, 0x20, 0x7E, StateGround, ActionPrint)
	b.assign(StateGround, 0x7F, 0x7F, StateGround, ActionIgnore)
	b.assign(StateGround, 0xC2, 0xF4, StateUTF8, ActionCollect) // UTF-8 lead byte
	b.fill(StateGround, StateGround, ActionIgnore)

	// --- escape ---
	b.assign(StateEscape, 0x00, 0x17, StateEscape, ActionExecute)
	b.assign(StateEscape, 0x19, 0x19, StateEscape, ActionExecute)
	b.assign(StateEscape, 0x1C, 0x1F, StateEscape, ActionExecute)
	b.assign(StateEscape, 0x7F, 0x7F, StateEscape, ActionIgnore)
	b.assign(StateEscape, 0x20, 0x2F, StateEscapeIntermediate, ActionCollect)
	b.assign(StateEscape, 0x30, 0x4F, StateGround, ActionEscDispatch)
	b.assign(StateEscape, 0x50, 0x50, StateDCSEntry, ActionNone) // DCS
	b.assign(StateEscape, 0x51, 0x57, StateGround, ActionEscDispatch)
	b.assign(StateEscape, 0x58, 0x58, StateSOSPMAPCString, ActionCollect) // SOS
	b.assign(StateEscape, 0x59, 0x5A, StateGround, ActionEscDispatch)
	b.assign(StateEscape, 0x5B, 0x5B, StateCSIEntry, ActionNone) // CSI
	b.assign(StateEscape, 0x5C, 0x5C, StateGround, ActionEscDispatch)
	b.assign(StateEscape, 0x5D, 0x5D, StateOSCString, ActionNone) // OSC
	b.assign(StateEscape, 0x5E, 0x5E, StateSOSPMAPCString, ActionCollect) // PM
	b.assign(StateEscape, 0x5F, 0x5F, StateSOSPMAPCString, ActionCollect) // APC
	b.assign(StateEscape, 0x60, 0x7E, StateGround, ActionEscDispatch)
	b.fill(StateEscape, StateEscape, ActionIgnore)

	// --- escape_intermediate ---
	b.assign(StateEscapeIntermediate, 0x00, 0x17, StateEscapeIntermediate, ActionExecute)
	b.assign(StateEscapeIntermediate, 0x19, 0x19, StateEscapeIntermediate, ActionExecute)
	b.assign(StateEscapeIntermediate, 0x1C, 0x1F, StateEscapeIntermediate, ActionExecute)
	b.assign(StateEscapeIntermediate, 0x20, 0x2F, StateEscapeIntermediate, ActionCollect)
	b.assign(StateEscapeIntermediate, 0x30, 0x7E, StateGround, ActionEscDispatch)
	b.assign(StateEscapeIntermediate, 0x7F, 0x7F, StateEscapeIntermediate, ActionIgnore)
	b.fill(StateEscapeIntermediate, StateEscapeIntermediate, ActionIgnore)

	// --- csi_entry ---
	b.assign(StateCSIEntry, 0x00, 0x17, StateCSIEntry, ActionExecute)
	b.assign(StateCSIEntry, 0x19, 0x19, StateCSIEntry, ActionExecute)
	b.assign(StateCSIEntry, 0x1C, 0x1F, StateCSIEntry, ActionExecute)
	b.assign(StateCSIEntry, 0x7F, 0x7F, StateCSIEntry, ActionIgnore)
	b.assign(StateCSIEntry, 0x20, 0x2F, StateCSIIntermediate, ActionCollect)
	b.assign(StateCSIEntry, 0x30, 0x39, StateCSIParam, ActionParam)
	b.assign(StateCSIEntry, 0x3A, 0x3A, StateCSIParam, ActionParam) // colon subparameter separator
	b.assign(StateCSIEntry, 0x3B, 0x3B, StateCSIParam, ActionParam)
	b.assign(StateCSIEntry, 0x3C, 0x3F, StateCSIParam, ActionCollect)
	b.assign(StateCSIEntry, 0x40, 0x7E, StateGround, ActionCSIDispatch)
	b.fill(StateCSIEntry, StateCSIIgnore, ActionIgnore)

	// --- csi_param ---
	b.assign(StateCSIParam, 0x00, 0x17, StateCSIParam, ActionExecute)
	b.assign(StateCSIParam, 0x19, 0x19, StateCSIParam, ActionExecute)
	b.assign(StateCSIParam, 0x1C, 0x1F, StateCSIParam, ActionExecute)
	b.assign(StateCSIParam, 0x30, 0x39, StateCSIParam, ActionParam)
	b.assign(StateCSIParam, 0x3A, 0x3A, StateCSIParam, ActionParam)
	b.assign(StateCSIParam, 0x3B, 0x3B, StateCSIParam, ActionParam)
	b.assign(StateCSIParam, 0x7F, 0x7F, StateCSIParam, ActionIgnore)
	b.assign(StateCSIParam, 0x3C, 0x3F, StateCSIIgnore, ActionNone)
	b.assign(StateCSIParam, 0x20, 0x2F, StateCSIIntermediate, ActionCollect)
	b.assign(StateCSIParam, 0x40, 0x7E, StateGround, ActionCSIDispatch)
	b.fill(StateCSIParam, StateCSIIgnore, ActionIgnore)

	// --- csi_intermediate ---
	b.assign(StateCSIIntermediate, 0x00, 0x17, StateCSIIntermediate, ActionExecute)
	b.assign(StateCSIIntermediate, 0x19, 0x19, StateCSIIntermediate, ActionExecute)
	b.assign(StateCSIIntermediate, 0x1C, 0x1F, StateCSIIntermediate, ActionExecute)
	b.assign(StateCSIIntermediate, 0x20, 0x2F, StateCSIIntermediate, ActionCollect)
	b.assign(StateCSIIntermediate, 0x7F, 0x7F, StateCSIIntermediate, ActionIgnore)
	b.assign(StateCSIIntermediate, 0x30, 0x3F, StateCSIIgnore, ActionNone)
	b.assign(StateCSIIntermediate, 0x40, 0x7E, StateGround, ActionCSIDispatch)
	b.fill(StateCSIIntermediate, StateCSIIgnore, ActionIgnore)

	// --- csi_ignore ---
	b.assign(StateCSIIgnore, 0x00, 0x17, StateCSIIgnore, ActionExecute)
	b.assign(StateCSIIgnore, 0x19, 0x19, StateCSIIgnore, ActionExecute)
	b.assign(StateCSIIgnore, 0x1C, 0x1F, StateCSIIgnore, ActionExecute)
	b.assign(StateCSIIgnore, 0x20, 0x3F, StateCSIIgnore, ActionIgnore)
	b.assign(StateCSIIgnore, 0x7F, 0x7F, StateCSIIgnore, ActionIgnore)
	b.assign(StateCSIIgnore, 0x40, 0x7E, StateGround, ActionNone)
	b.fill(StateCSIIgnore, StateCSIIgnore, ActionIgnore)

	// --- dcs_entry ---
	b.assign(StateDCSEntry, 0x00, 0x17, StateDCSEntry, ActionIgnore)
	b.assign(StateDCSEntry, 0x19, 0x19, StateDCSEntry, ActionIgnore)
	b.assign(StateDCSEntry, 0x1C, 0x1F, StateDCSEntry, ActionIgnore)
	b.assign(StateDCSEntry, 0x7F, 0x7F, StateDCSEntry, ActionIgnore)
	b.assign(StateDCSEntry, 0x20, 0x2F, StateDCSIntermediate, ActionCollect)
	b.assign(StateDCSEntry, 0x30, 0x39, StateDCSParam, ActionParam)
	b.assign(StateDCSEntry, 0x3A, 0x3A, StateDCSParam, ActionParam)
	b.assign(StateDCSEntry, 0x3B, 0x3B, StateDCSParam, ActionParam)
	b.assign(StateDCSEntry, 0x3C, 0x3F, StateDCSParam, ActionCollect)
	b.assign(StateDCSEntry, 0x40, 0x7E, StateDCSPassthrough, ActionNone)
	b.fill(StateDCSEntry, StateDCSIgnore, ActionIgnore)

	// --- dcs_param ---
	b.assign(StateDCSParam, 0x00, 0x17, StateDCSParam, ActionIgnore)
	b.assign(StateDCSParam, 0x19, 0x19, StateDCSParam, ActionIgnore)
	b.assign(StateDCSParam, 0x1C, 0x1F, StateDCSParam, ActionIgnore)
	b.assign(StateDCSParam, 0x7F, 0x7F, StateDCSParam, ActionIgnore)
	b.assign(StateDCSParam, 0x30, 0x39, StateDCSParam, ActionParam)
	b.assign(StateDCSParam, 0x3A, 0x3A, StateDCSParam, ActionParam)
	b.assign(StateDCSParam, 0x3B, 0x3B, StateDCSParam, ActionParam)
	b.assign(StateDCSParam, 0x3C, 0x3F, StateDCSIgnore, ActionNone)
	b.assign(StateDCSParam, 0x20, 0x2F, StateDCSIntermediate, ActionCollect)
	b.assign(StateDCSParam, 0x40, 0x7E, StateDCSPassthrough, ActionNone)
	b.fill(StateDCSParam, StateDCSIgnore, ActionIgnore)

	// --- dcs_intermediate ---
	b.assign(StateDCSIntermediate, 0x00, 0x17, StateDCSIntermediate, ActionIgnore)
	b.assign(StateDCSIntermediate, 0x19, 0x19, StateDCSIntermediate, ActionIgnore)
	b.assign(StateDCSIntermediate, 0x1C, 0x1F, StateDCSIntermediate, ActionIgnore)
	b.assign(StateDCSIntermediate, 0x20, 0x2F, StateDCSIntermediate, ActionCollect)
	b.assign(StateDCSIntermediate, 0x7F, 0x7F, StateDCSIntermediate, ActionIgnore)
	b.assign(StateDCSIntermediate, 0x30, 0x3F, StateDCSIgnore, ActionNone)
	b.assign(StateDCSIntermediate, 0x40, 0x7E, StateDCSPassthrough, ActionNone)
	b.fill(StateDCSIntermediate, StateDCSIgnore, ActionIgnore)

	// --- dcs_passthrough ---
	b.assign(StateDCSPassthrough, 0x00, 0x17, StateDCSPassthrough, ActionPut)
	b.assign(StateDCSPassthrough, 0x19, 0x19, StateDCSPassthrough, ActionPut)
	b.assign(StateDCSPassthrough, 0x1C, 0x1F, StateDCSPassthrough, ActionPut)
	b.assign(StateDCSPassthrough, 0x20, 0x7E, StateDCSPassthrough, ActionPut)
	b.assign(StateDCSPassthrough, 0x7F, 0x7F, StateDCSPassthrough, ActionIgnore)
	b.fill(StateDCSPassthrough, StateDCSPassthrough, ActionIgnore)

	// --- dcs_ignore ---
	b.assign(StateDCSIgnore, 0x00, 0x7F, StateDCSIgnore, ActionIgnore)
	b.fill(StateDCSIgnore, StateDCSIgnore, ActionIgnore)

	// --- osc_string ---
	b.assign(StateOSCString, 0x00, 0x06, StateOSCString, ActionIgnore)
	b.assign(StateOSCString, 0x07, 0x07, StateGround, ActionNone) // BEL terminator
	b.assign(StateOSCString, 0x08, 0x17, StateOSCString, ActionIgnore)
	b.assign(StateOSCString, 0x19, 0x19, StateOSCString, ActionIgnore)
	b.assign(StateOSCString, 0x1C, 0x1F, StateOSCString, ActionIgnore)
	b.assign(StateOSCString, 0x20, 0x7F, StateOSCString, ActionOSCPut)
	// 0xA0..0xFF: non-ASCII payload bytes (UTF-8 continuation/lead bytes,
	// or raw Latin-1 text). These must reach oscparse rather than being
	// dropped, or titles/clipboard/pwd payloads outside ASCII are
	// silently mangled. 0x80..0x9F stays routed through stateAnywhere's
	// C1 handling (StateGround/StateOSCString exit) via the fill below.
	b.assign(StateOSCString, 0xA0, 0xFF, StateOSCString, ActionOSCPut)
	b.fill(StateOSCString, StateOSCString, ActionIgnore)

	// --- sos_pm_apc_string ---
	b.assign(StateSOSPMAPCString, 0x00, 0x17, StateSOSPMAPCString, ActionPut)
	b.assign(StateSOSPMAPCString, 0x19, 0x19, StateSOSPMAPCString, ActionPut)
	b.assign(StateSOSPMAPCString, 0x1C, 0x1F, StateSOSPMAPCString, ActionPut)
	b.assign(StateSOSPMAPCString, 0x20, 0x7F, StateSOSPMAPCString, ActionPut)
	b.fill(StateSOSPMAPCString, StateSOSPMAPCString, ActionIgnore)

	// --- utf8: exit is driven by Parser.Feed's byte-counting logic, not
	// by this table; every byte collects and parser.go decides when the
	// advertised sequence length has been reached.
	b.fill(StateUTF8, StateUTF8, ActionCollect)

	// stateAnywhere itself is never looked up recursively.
	b.fill(stateAnywhere, StateGround, ActionNone)
}

// Lookup resolves the transition for (b, s): the anywhere column is
// consulted first, falling back to the state's own column.
func Lookup(s State, b byte) Transition {
	if t := Table[stateAnywhere][b]; t.Next != StateGround || t.Action != ActionNone || anywhereDefined[b] {
		return t
	}
	return Table[s][b]
}

// anywhereDefined marks which bytes have an explicit (non-fallback-fill)
// anywhere transition, so Lookup can tell a real "go to ground" entry
// (e.g. CAN/SUB/ESC) apart from the filler default without consulting
// the builder's bookkeeping at runtime.
var anywhereDefined [256]bool

func init() {
	for _, c := range []byte{0x18, 0x1A, 0x1B, 0x80, 0x81, 0x82, 0x83, 0x84, 0x85, 0x86, 0x87, 0x88, 0x89, 0x8A, 0x8B, 0x8C, 0x8D, 0x8E, 0x8F, 0x90, 0x91, 0x92, 0x93, 0x94, 0x95, 0x96, 0x97, 0x98, 0x99, 0x9A, 0x9C, 0x9D, 0x9E, 0x9F} {
		anywhereDefined[c] = true
	}
}
