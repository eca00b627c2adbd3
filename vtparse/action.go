package vtparse

import "github.com/vtcore-dev/vtcore/oscparse"

// ActionKind discriminates the tagged union of Actions the parser
// emits. osc_dispatch is produced here, not by the caller, because the
// Parser owns the nested OSC sub-parser invocation.
type ActionKind uint8

const (
	ActionKindNone ActionKind = iota
	ActionKindPrint
	ActionKindExecute
	ActionKindCSIDispatch
	ActionKindESCDispatch
	ActionKindOSCDispatch
	ActionKindDCSHook
	ActionKindDCSPut
	ActionKindDCSUnhook
)

// CSIDispatch is the payload of a csi_dispatch action.
type CSIDispatch struct {
	Intermediates []byte
	Params        []uint16
	Final         byte
}

// ESCDispatch is the payload of an esc_dispatch action.
type ESCDispatch struct {
	Intermediates []byte
	Final         byte
}

// DCSHook is the payload of a dcs_hook action (entering dcs_passthrough).
type DCSHook struct {
	Intermediates []byte
	Params        []uint16
	Final         byte
}

// Action is one element of the exit/transition/entry triple Feed returns.
type Action struct {
	Kind ActionKind

	Print   rune
	Execute byte
	CSI     CSIDispatch
	ESC     ESCDispatch
	OSC     *oscparse.Command
	DCS     DCSHook
	DCSByte byte
}

// Actions is the fixed three-slot return of Feed, always processed in
// the order exit, transition, entry.
type Actions struct {
	Exit, Transition, Entry       Action
	HasExit, HasTransition, HasEntry bool
}

// Each returns the present actions in processing order.
func (a Actions) Each(fn func(Action)) {
	if a.HasExit {
		fn(a.Exit)
	}
	if a.HasTransition {
		fn(a.Transition)
	}
	if a.HasEntry {
		fn(a.Entry)
	}
}
