package book

import "errors"

// These errors signal violated invariants, a bug in the caller or a
// corrupted simulation, never a transient input condition. They are
// returned before any mutation so the caller can never observe a
// half-reconciled position, and the run should abort on any of them.
var (
	// ErrMixedLegs means a position was observed holding legs of both
	// signs, which the reconciliation algorithm can never produce.
	ErrMixedLegs = errors.New("book: position legs have mixed signs")

	// ErrWrongInstrument means a fill was routed to a position tracking a
	// different instrument.
	ErrWrongInstrument = errors.New("book: fill instrument does not match position")

	// ErrNoPriceOnFill means a fill claimed a non-zero quantity but
	// carried no price level.
	ErrNoPriceOnFill = errors.New("book: non-zero fill has no price")

	// ErrUniverseMismatch means a fills or fill-models vector did not
	// line up one-to-one with the fixed universe.
	ErrUniverseMismatch = errors.New("book: vector length does not match universe")
)
