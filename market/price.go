package market

// Price is a top-of-book price level.
type Price = float64

// BestPrices is a best bid/ask snapshot.
type BestPrices struct {
	Ask Price `json:"ask" yaml:"ask"`
	Bid Price `json:"bid" yaml:"bid"`
}

// SinglePrice builds a zero-spread quote, useful for mid-price series.
func SinglePrice(px Price) BestPrices {
	return BestPrices{Ask: px, Bid: px}
}

func (bp BestPrices) Mid() Price {
	return (bp.Ask + bp.Bid) / 2
}

// PositionPrices pairs the entry and exit prices of one closed (or
// hypothetically closed) piece of inventory.
type PositionPrices struct {
	Entry Price
	Exit  Price
}
