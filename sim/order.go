package sim

import "github.com/rustyeddy/lotbook/market"

// MarketOrder asks a fill model for immediate execution of a signed
// quantity. Zero quantity is a deliberate no-op (flat signal).
type MarketOrder struct {
	InstrumentID market.InstrumentID
	Quantity     market.Quantity
}
