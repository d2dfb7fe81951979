package market

import "fmt"

// CommissionKind selects one of the closed set of commission formulas.
type CommissionKind string

const (
	// CommissionFixed charges Amount per trade regardless of size.
	CommissionFixed CommissionKind = "fixed"
	// CommissionPerUnit charges Amount per unit of |quantity|.
	CommissionPerUnit CommissionKind = "per_unit"
	// CommissionMakerTaker charges a percentage of bid-side notional value,
	// with separate maker and taker rates.
	CommissionMakerTaker CommissionKind = "maker_taker"
)

// Commission is the tagged commission variant carried by an instrument spec.
// Amount applies to the fixed kinds, Maker/Taker to the percentage kind.
type Commission struct {
	Kind   CommissionKind `json:"kind" yaml:"kind"`
	Amount Cash           `json:"amount,omitempty" yaml:"amount,omitempty"`
	Maker  Percent        `json:"maker,omitempty" yaml:"maker,omitempty"`
	Taker  Percent        `json:"taker,omitempty" yaml:"taker,omitempty"`
}

// Validate rejects unknown kinds up front so fee math never has to.
func (c Commission) Validate() error {
	switch c.Kind {
	case CommissionFixed, CommissionPerUnit, CommissionMakerTaker:
		return nil
	}
	return fmt.Errorf("unknown commission kind %q", c.Kind)
}

// MakerTaker is a cash pair, one side per liquidity role.
type MakerTaker struct {
	Maker Cash
	Taker Cash
}

// SingleRate builds a pair charging the same cash on both sides.
func SingleRate(c Cash) MakerTaker {
	return MakerTaker{Maker: c, Taker: c}
}
