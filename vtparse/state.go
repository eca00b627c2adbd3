// Package vtparse implements the VT byte-stream parser: a deterministic
// finite-state machine that decodes ECMA-48/VT-series escape sequences
// (C0, C1, CSI, ESC, OSC, DCS) and interleaved UTF-8, emitting a typed
// stream of Actions.
//
// The state machine and its transition table follow the vt100.net ANSI
// parser state diagram, extended with a utf8 state for inline UTF-8
// decoding and a colon-accepting csi_param state for SGR subparameters.
package vtparse

// State is one node of the parser's finite-state machine.
type State uint8

const (
	StateGround State = iota
	StateEscape
	StateEscapeIntermediate
	StateCSIEntry
	StateCSIParam
	StateCSIIntermediate
	StateCSIIgnore
	StateDCSEntry
	StateDCSParam
	StateDCSIntermediate
	StateDCSPassthrough
	StateDCSIgnore
	StateOSCString
	StateSOSPMAPCString
	StateUTF8

	// stateAnywhere is a pseudo-state: it is never the parser's current
	// state, only a lookup column consulted before the current state's
	// own column.
	stateAnywhere

	numStates
)

func (s State) String() string {
	switch s {
	case StateGround:
		return "ground"
	case StateEscape:
		return "escape"
	case StateEscapeIntermediate:
		return "escape_intermediate"
	case StateCSIEntry:
		return "csi_entry"
	case StateCSIParam:
		return "csi_param"
	case StateCSIIntermediate:
		return "csi_intermediate"
	case StateCSIIgnore:
		return "csi_ignore"
	case StateDCSEntry:
		return "dcs_entry"
	case StateDCSParam:
		return "dcs_param"
	case StateDCSIntermediate:
		return "dcs_intermediate"
	case StateDCSPassthrough:
		return "dcs_passthrough"
	case StateDCSIgnore:
		return "dcs_ignore"
	case StateOSCString:
		return "osc_string"
	case StateSOSPMAPCString:
		return "sos_pm_apc_string"
	case StateUTF8:
		return "utf8"
	case stateAnywhere:
		return "anywhere"
	default:
		return "unknown"
	}
}

// TransitionAction is the action the driver performs while moving
// between states for a single input byte.
type TransitionAction uint8

const (
	ActionNone TransitionAction = iota
	ActionIgnore
	ActionPrint
	ActionExecute
	ActionCollect
	ActionParam
	ActionEscDispatch
	ActionCSIDispatch
	ActionPut
	ActionOSCPut
)

func (a TransitionAction) String() string {
	switch a {
	case ActionNone:
		return "none"
	case ActionIgnore:
		return "ignore"
	case ActionPrint:
		return "print"
	case ActionExecute:
		return "execute"
	case ActionCollect:
		return "collect"
	case ActionParam:
		return "param"
	case ActionEscDispatch:
		return "esc_dispatch"
	case ActionCSIDispatch:
		return "csi_dispatch"
	case ActionPut:
		return "put"
	case ActionOSCPut:
		return "osc_put"
	default:
		return "unknown"
	}
}

// Transition is one cell of the 256×|State| parse table.
type Transition struct {
	Next   State
	Action TransitionAction
}
