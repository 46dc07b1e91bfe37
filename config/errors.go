package config

import "errors"

var (
	// ErrOptionViolation is surfaced by New when an Option was given an
	// invalid value (e.g. a negative k-Tails window).
	ErrOptionViolation = errors.New("config: invalid option supplied")

	// ErrExternalCheckerUnsupported is returned immediately by
	// synoptic.Run when WithFSMChecker(false) requests the external LTL
	// checker: that checker is out of scope, so this draws an explicit
	// boundary instead of silently falling back to the FSM checker.
	ErrExternalCheckerUnsupported = errors.New("config: external LTL checker is not supported, use the FSM checker")
)
