package book

import (
	"fmt"
	"math"

	"github.com/rustyeddy/lotbook/market"
	"github.com/rustyeddy/lotbook/sim"
)

// DefaultCloseEpsilon is the tolerance within which a reduced position is
// considered flat. It is not derived from any instrument's minimum tradable
// unit; override CloseEpsilon on the position when that matters.
const DefaultCloseEpsilon market.Quantity = 0.000_001 * 0.5

// PositionLeg is one open lot: a signed quantity at its entry price.
type PositionLeg struct {
	Quantity   market.Quantity
	EntryPrice market.Price
}

// FifoPosition tracks per-instrument inventory as an ordered queue of legs,
// oldest first. All legs share one sign at every observable state. The
// queue has no internal locking; a position must be exclusively owned by
// its caller during Reconcile.
type FifoPosition struct {
	underlying market.Instrument
	legs       []PositionLeg

	// CloseEpsilon is the |net + fill| threshold below which an
	// opposite-side fill closes the position instead of reversing it.
	CloseEpsilon market.Quantity
}

func NewFifoPosition(underlying market.Instrument) *FifoPosition {
	return &FifoPosition{
		underlying:   underlying,
		CloseEpsilon: DefaultCloseEpsilon,
	}
}

func (p *FifoPosition) Underlying() market.Instrument {
	return p.underlying
}

// NetQuantity is the sum of all open leg quantities, zero when flat.
func (p *FifoPosition) NetQuantity() market.Quantity {
	var net market.Quantity
	for _, leg := range p.legs {
		net += leg.Quantity
	}
	return net
}

func (p *FifoPosition) Flat() bool {
	return len(p.legs) == 0
}

// Legs returns a copy of the open lots, oldest first.
func (p *FifoPosition) Legs() []PositionLeg {
	out := make([]PositionLeg, len(p.legs))
	copy(out, p.legs)
	return out
}

// AverageEntryPrice is the quantity-weighted mean entry price, zero when
// flat.
func (p *FifoPosition) AverageEntryPrice() market.Price {
	net := p.NetQuantity()
	if net == 0 {
		return 0
	}
	var weighted market.Price
	for _, leg := range p.legs {
		weighted += leg.Quantity * leg.EntryPrice
	}
	return weighted / net
}

// Reconcile applies one fill and returns the realized PnL delta, net of
// the fill's fee. A zero-quantity fill never touches the legs but still
// charges its fee.
func (p *FifoPosition) Reconcile(fill sim.Fill) (market.Cash, error) {
	if fill.InstrumentID != p.underlying.ID() {
		return 0, fmt.Errorf("%w: fill %s, position %s",
			ErrWrongInstrument, fill.InstrumentID, p.underlying.ID())
	}
	if err := p.checkLegSigns(); err != nil {
		return 0, err
	}

	quantity := fill.Quantity()
	if quantity == 0 {
		return -fill.Fee, nil
	}
	price, ok := fill.Price()
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrNoPriceOnFill, fill.InstrumentID)
	}

	gross := p.reconcileGross(quantity, price)

	if err := p.checkLegSigns(); err != nil {
		return 0, err
	}
	return gross - fill.Fee, nil
}

// reconcileGross dispatches on the four inventory transitions: accumulate,
// close, reduce, reverse.
func (p *FifoPosition) reconcileGross(fillQuantity market.Quantity, fillPrice market.Price) market.Cash {
	current := p.NetQuantity()
	if current == 0 || market.SameSide(fillQuantity, current) {
		p.legs = append(p.legs, PositionLeg{Quantity: fillQuantity, EntryPrice: fillPrice})
		return 0
	}

	target := current + fillQuantity
	switch {
	case math.Abs(target) < p.CloseEpsilon:
		return p.closeGross(fillPrice)
	case market.SameSide(target, current):
		return p.reduceGross(fillQuantity, fillPrice)
	default:
		return p.reverseGross(target, fillPrice)
	}
}

func (p *FifoPosition) grossOneLeg(leg PositionLeg, exitPrice market.Price) market.Cash {
	prices := market.PositionPrices{Entry: leg.EntryPrice, Exit: exitPrice}
	return p.underlying.GrossPnL(leg.Quantity, prices)
}

// closeGross realizes every leg against the fill price and empties the
// queue.
func (p *FifoPosition) closeGross(fillPrice market.Price) market.Cash {
	var pnl market.Cash
	for _, leg := range p.legs {
		pnl += p.grossOneLeg(leg, fillPrice)
	}
	p.legs = p.legs[:0]
	return pnl
}

// reduceGross walks legs from the front. Each pass either finishes inside
// the front leg or fully consumes it and carries the remainder forward, so
// the loop strictly shrinks the queue.
func (p *FifoPosition) reduceGross(fillQuantity market.Quantity, fillPrice market.Price) market.Cash {
	var pnl market.Cash
	for {
		front := &p.legs[0]
		remaining := front.Quantity + fillQuantity
		if remaining == 0 {
			pnl += p.grossOneLeg(*front, fillPrice)
			p.legs = p.legs[1:]
			return pnl
		}
		if market.SameSide(remaining, front.Quantity) {
			front.Quantity = remaining
			prices := market.PositionPrices{Entry: front.EntryPrice, Exit: fillPrice}
			pnl += p.underlying.GrossPnL(-fillQuantity, prices)
			return pnl
		}
		pnl += p.grossOneLeg(*front, fillPrice)
		p.legs = p.legs[1:]
		fillQuantity = remaining
	}
}

// reverseGross realizes every existing leg, then opens the single
// opposite-side leg left over by the fill.
func (p *FifoPosition) reverseGross(targetQuantity market.Quantity, fillPrice market.Price) market.Cash {
	pnl := p.closeGross(fillPrice)
	p.legs = append(p.legs, PositionLeg{Quantity: targetQuantity, EntryPrice: fillPrice})
	return pnl
}

// UnrealizedPnL marks the open position to market by pricing a hypothetical
// closing order through the given fill model. It mutates nothing.
func (p *FifoPosition) UnrealizedPnL(model sim.FillModel) (market.Cash, error) {
	if len(p.legs) == 0 {
		return 0, nil
	}
	if err := p.checkLegSigns(); err != nil {
		return 0, err
	}

	net := p.NetQuantity()
	fill, err := model.Execute(sim.MarketOrder{
		InstrumentID: p.underlying.ID(),
		Quantity:     -net,
	})
	if err != nil {
		return 0, err
	}
	exit, ok := fill.Price()
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrNoPriceOnFill, p.underlying.ID())
	}

	prices := market.PositionPrices{Entry: p.AverageEntryPrice(), Exit: exit}
	return market.NetPnL(p.underlying, net, prices, fill.Fee), nil
}

func (p *FifoPosition) checkLegSigns() error {
	for _, leg := range p.legs {
		if !market.SameSide(leg.Quantity, p.legs[0].Quantity) {
			return fmt.Errorf("%w: %s", ErrMixedLegs, p.underlying.ID())
		}
	}
	return nil
}
