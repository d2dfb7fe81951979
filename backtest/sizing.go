package backtest

import (
	"github.com/rustyeddy/lotbook/book"
	"github.com/rustyeddy/lotbook/market"
)

// SignalEpsilon separates a genuinely flat signal from float noise.
const SignalEpsilon = 1e-9

// Sizer turns a scalar trading signal into a signed order quantity. A zero
// return means "no trade this step".
type Sizer interface {
	OrderQuantity(signal, prevSignal float64, pos *book.FifoPosition,
		prices market.BestPrices, acct *book.Account) market.Quantity
}

func signalDirection(signal float64) market.Quantity {
	switch {
	case signal > SignalEpsilon:
		return 1
	case signal < -SignalEpsilon:
		return -1
	}
	return 0
}

// UnitSizer targets one unit long, one unit short or flat, trading only
// when the signal changes.
type UnitSizer struct{}

func (UnitSizer) OrderQuantity(signal, prevSignal float64, pos *book.FifoPosition,
	prices market.BestPrices, acct *book.Account) market.Quantity {
	if signal == prevSignal {
		return 0
	}
	delta := signalDirection(signal) - pos.NetQuantity()
	return pos.Underlying().ToTransactable(delta)
}

// CapitalSizer scales the target position so its notional value is
// signal * initial balance. Sizing off the initial balance rather than
// equity means no compounding.
type CapitalSizer struct{}

func (CapitalSizer) OrderQuantity(signal, prevSignal float64, pos *book.FifoPosition,
	prices market.BestPrices, acct *book.Account) market.Quantity {
	if signal == prevSignal {
		return 0
	}
	unitValue := market.NotionalValue(pos.Underlying(), 1, prices)
	if unitValue == 0 {
		return 0
	}
	target := (signal * acct.InitialBalance()) / unitValue
	return pos.Underlying().ToTransactable(target - pos.NetQuantity())
}
