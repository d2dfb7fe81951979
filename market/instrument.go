package market

import "math"

// InstrumentID identifies one tradable thing on one venue. It is the key
// correlating positions, fills and orders, so it must stay comparable.
type InstrumentID struct {
	Venue  string `json:"venue" yaml:"venue"`
	Symbol string `json:"symbol" yaml:"symbol"`
}

func (id InstrumentID) String() string {
	return id.Venue + ":" + id.Symbol
}

// Less orders ids by venue first, then symbol.
func (id InstrumentID) Less(other InstrumentID) bool {
	if id.Venue != other.Venue {
		return id.Venue < other.Venue
	}
	return id.Symbol < other.Symbol
}

// Instrument is the pricing and commission contract for one tradable type.
// All methods are pure functions of their arguments.
type Instrument interface {
	ID() InstrumentID

	// GrossPnL is linear in quantity and in (exit - entry).
	GrossPnL(quantity Quantity, prices PositionPrices) Cash

	// CommissionFor returns the maker/taker cash pair for a trade of the
	// given signed quantity at the given quote. Zero quantity costs nothing.
	CommissionFor(quantity Quantity, prices BestPrices) MakerTaker

	// ToTransactable truncates a continuous target quantity to the
	// instrument's tradable granularity.
	ToTransactable(quantity Quantity) Quantity

	// ToNotional applies the contract multiplier.
	ToNotional(quantity Quantity) NotionalQuantity
}

// SettlementValue prices a notional quantity at the bid, the settlement
// convention shared by every instrument.
func SettlementValue(quantity NotionalQuantity, prices BestPrices) Cash {
	return quantity * prices.Bid
}

// NetPnL is gross PnL less the fee charged on the closing fill.
func NetPnL(inst Instrument, quantity Quantity, prices PositionPrices, fee Cash) Cash {
	return inst.GrossPnL(quantity, prices) - fee
}

// NotionalValue is the settlement value of a raw quantity.
func NotionalValue(inst Instrument, quantity Quantity, prices BestPrices) Cash {
	return SettlementValue(inst.ToNotional(quantity), prices)
}

// Spec is the one concrete Instrument: a linear contract with a fixed
// multiplier and a commission schedule. It deserializes straight out of a
// universe file.
type Spec struct {
	UniqueID   InstrumentID `json:"unique_id" yaml:"unique_id"`
	Multiplier float64      `json:"multiplier" yaml:"multiplier"`
	Commission Commission   `json:"commission" yaml:"commission"`
}

func (s Spec) ID() InstrumentID {
	return s.UniqueID
}

func (s Spec) GrossPnL(quantity Quantity, prices PositionPrices) Cash {
	return s.ToNotional(quantity) * (prices.Exit - prices.Entry)
}

func (s Spec) CommissionFor(quantity Quantity, prices BestPrices) MakerTaker {
	if quantity == 0 {
		return MakerTaker{}
	}
	switch s.Commission.Kind {
	case CommissionFixed:
		return SingleRate(s.Commission.Amount)
	case CommissionPerUnit:
		return SingleRate(s.Commission.Amount * math.Abs(quantity))
	case CommissionMakerTaker:
		notional := NotionalValue(s, math.Abs(quantity), prices)
		return MakerTaker{
			Maker: s.Commission.Maker.Multiplier * notional,
			Taker: s.Commission.Taker.Multiplier * notional,
		}
	}
	return MakerTaker{}
}

func (s Spec) ToTransactable(quantity Quantity) Quantity {
	return math.Round(quantity)
}

func (s Spec) ToNotional(quantity Quantity) NotionalQuantity {
	return quantity * s.Multiplier
}
