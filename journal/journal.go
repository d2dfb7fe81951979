package journal

import (
	"time"

	"github.com/rustyeddy/lotbook/market"
)

// FillRecord is one executed (non-zero) fill as applied to a position.
type FillRecord struct {
	RunID      string
	Step       int
	Instrument string
	Units      market.Quantity
	Price      market.Price
	Fee        market.Cash
	Time       time.Time
}

// EquitySnapshot is the account state sampled after one replay step.
type EquitySnapshot struct {
	RunID   string
	Step    int
	Time    time.Time
	Balance market.Cash
	Equity  market.Cash
}

// Journal persists the output of a run. Implementations must be safe to
// call once per step from a single goroutine.
type Journal interface {
	RecordFill(FillRecord) error
	RecordEquity(EquitySnapshot) error
	Close() error
}

// Nop discards everything. Useful for tests and dry runs.
type Nop struct{}

func (Nop) RecordFill(FillRecord) error       { return nil }
func (Nop) RecordEquity(EquitySnapshot) error { return nil }
func (Nop) Close() error                      { return nil }
