package market

// Quantity is a signed position size: positive long, negative short.
type Quantity = float64

// NotionalQuantity is a quantity after applying the instrument multiplier.
type NotionalQuantity = float64

// Cash is an amount in the account currency.
type Cash = float64

// SameSide reports whether two quantities carry the same sign.
// Zero counts as positive, matching IEEE sign semantics.
func SameSide(a, b Quantity) bool {
	return (a >= 0) == (b >= 0)
}

// Percent is stored as a multiplier so fee math never re-divides by 100.
type Percent struct {
	Multiplier float64 `json:"multiplier" yaml:"multiplier"`
}

// NewPercent builds a Percent from a human percentage, e.g. NewPercent(0.1)
// for ten basis points.
func NewPercent(pct float64) Percent {
	return Percent{Multiplier: pct / 100.0}
}
