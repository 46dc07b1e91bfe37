package checker

import (
	"github.com/synoptic-core/synoptic/event"
	"github.com/synoptic-core/synoptic/invariant"
)

// autoState is the shared 3-state automaton every binary invariant
// kind is checked with: NIL (nothing relevant seen yet), sawA (A seen,
// obligation pending) and fail (terminal).
type autoState uint8

const (
	stateNil autoState = iota
	stateSawA
	stateFail
)

// transitionOne advances one invariant's automaton by one step. cur is
// the state before the step; targetType/isAccept describe the
// partition the step lands in.
func transitionOne(inv invariant.BinaryInvariant, cur autoState, targetType event.EventType, isAccept bool) autoState {
	if cur == stateFail {
		return stateFail
	}

	switch inv.Kind {
	case invariant.AFby:
		next := cur
		switch {
		case targetType == inv.A:
			next = stateSawA
		case targetType == inv.B && cur == stateSawA:
			next = stateNil
		}
		if isAccept && next == stateSawA {
			next = stateFail
		}
		return next

	case invariant.NFby:
		switch {
		case targetType == inv.A:
			return stateSawA
		case targetType == inv.B && cur == stateSawA:
			return stateFail
		default:
			return cur
		}

	case invariant.AP:
		switch {
		case targetType == inv.A:
			return stateSawA
		case targetType == inv.B:
			if cur == stateNil {
				return stateFail
			}
			return cur
		default:
			return cur
		}

	default:
		return cur
	}
}
