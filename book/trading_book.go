package book

import (
	"fmt"

	"github.com/rustyeddy/lotbook/market"
	"github.com/rustyeddy/lotbook/sim"
)

// TradingBook holds one position per instrument in a fixed universe,
// index-aligned with the universe supplied at construction. Its length
// never changes.
type TradingBook struct {
	positions []*FifoPosition
}

func NewTradingBook(universe []market.Instrument) *TradingBook {
	positions := make([]*FifoPosition, len(universe))
	for i, inst := range universe {
		positions[i] = NewFifoPosition(inst)
	}
	return &TradingBook{positions: positions}
}

// Reconcile applies one fill per position, pairwise, and returns the
// portfolio-level realized PnL. Every step must supply exactly one fill
// per instrument, even a zero no-op one.
func (b *TradingBook) Reconcile(fills []sim.Fill) (market.Cash, error) {
	if len(fills) != len(b.positions) {
		return 0, fmt.Errorf("%w: %d fills for %d positions",
			ErrUniverseMismatch, len(fills), len(b.positions))
	}
	var total market.Cash
	for i, pos := range b.positions {
		pnl, err := pos.Reconcile(fills[i])
		if err != nil {
			return 0, fmt.Errorf("position %d (%s): %w", i, pos.Underlying().ID(), err)
		}
		total += pnl
	}
	return total, nil
}

// UnrealizedPnL sums the mark-to-market PnL of every position, one fill
// model per instrument.
func (b *TradingBook) UnrealizedPnL(models []sim.FillModel) (market.Cash, error) {
	if len(models) != len(b.positions) {
		return 0, fmt.Errorf("%w: %d fill models for %d positions",
			ErrUniverseMismatch, len(models), len(b.positions))
	}
	var total market.Cash
	for i, pos := range b.positions {
		pnl, err := pos.UnrealizedPnL(models[i])
		if err != nil {
			return 0, fmt.Errorf("position %d (%s): %w", i, pos.Underlying().ID(), err)
		}
		total += pnl
	}
	return total, nil
}

// Holdings exposes the positions, index-aligned with the universe.
func (b *TradingBook) Holdings() []*FifoPosition {
	return b.positions
}
