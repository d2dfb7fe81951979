package sim

import (
	"errors"
	"fmt"

	"github.com/rustyeddy/lotbook/market"
)

var (
	// ErrNoQuote means Execute ran before any Update. That is a caller
	// bug, not a data condition; the run should stop.
	ErrNoQuote = errors.New("sim: execute before first quote update")

	// ErrCrossedQuote rejects a malformed snapshot where bid exceeds ask.
	ErrCrossedQuote = errors.New("sim: crossed quote")

	// ErrWrongInstrument means an order was routed to a model built for a
	// different instrument.
	ErrWrongInstrument = errors.New("sim: order instrument does not match model")
)

// FillModel is a read-only valuation oracle: Update stores the latest
// market snapshot, Execute synthesizes a fill against it. Execute never
// mutates model, position or account state, so multiple readers may share
// it between updates.
type FillModel interface {
	Update(prices market.BestPrices) error
	Execute(order MarketOrder) (Fill, error)
}

// TopOfBook fills market orders by crossing the spread: buys lift the ask,
// sells hit the bid. Fees are always the taker side of the instrument's
// commission schedule.
type TopOfBook struct {
	instrument market.Instrument
	prices     *market.BestPrices
}

func NewTopOfBook(inst market.Instrument) *TopOfBook {
	return &TopOfBook{instrument: inst}
}

func (m *TopOfBook) Update(prices market.BestPrices) error {
	if prices.Bid > prices.Ask {
		return fmt.Errorf("%w: bid %v above ask %v for %s",
			ErrCrossedQuote, prices.Bid, prices.Ask, m.instrument.ID())
	}
	m.prices = &prices
	return nil
}

func (m *TopOfBook) Execute(order MarketOrder) (Fill, error) {
	if order.InstrumentID != m.instrument.ID() {
		return Fill{}, fmt.Errorf("%w: got %s, model is %s",
			ErrWrongInstrument, order.InstrumentID, m.instrument.ID())
	}
	if order.Quantity == 0 {
		return Fill{InstrumentID: order.InstrumentID}, nil
	}
	if m.prices == nil {
		return Fill{}, fmt.Errorf("%w: %s", ErrNoQuote, m.instrument.ID())
	}

	price := m.prices.Ask
	if order.Quantity < 0 {
		price = m.prices.Bid
	}
	fee := m.instrument.CommissionFor(order.Quantity, *m.prices).Taker

	return NewFill(order.InstrumentID, order.Quantity, price, fee), nil
}
