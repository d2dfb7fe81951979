package sim

import "github.com/rustyeddy/lotbook/market"

// FillLevel is the priced part of a fill. It only exists when something
// actually traded.
type FillLevel struct {
	Price    market.Price
	Quantity market.Quantity
}

// Fill records one executed trade. A nil Level means no trade happened;
// the fee is charged regardless.
type Fill struct {
	InstrumentID market.InstrumentID
	Level        *FillLevel
	Fee          market.Cash
}

// NewFill builds a fill, leaving the level unset when quantity is zero.
func NewFill(id market.InstrumentID, quantity market.Quantity, price market.Price, fee market.Cash) Fill {
	f := Fill{InstrumentID: id, Fee: fee}
	if quantity != 0 {
		f.Level = &FillLevel{Price: price, Quantity: quantity}
	}
	return f
}

// Quantity returns the signed traded quantity, zero for a no-trade fill.
func (f Fill) Quantity() market.Quantity {
	if f.Level == nil {
		return 0
	}
	return f.Level.Quantity
}

// Price returns the fill price; ok is false for a no-trade fill, which has
// no price at all.
func (f Fill) Price() (market.Price, bool) {
	if f.Level == nil {
		return 0, false
	}
	return f.Level.Price, true
}
