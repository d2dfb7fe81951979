package book

import (
	"github.com/rustyeddy/lotbook/market"
	"github.com/rustyeddy/lotbook/sim"
)

// AccountConfig is the deserializable shape an account starts from.
type AccountConfig struct {
	Name           string      `json:"name" yaml:"name"`
	InitialBalance market.Cash `json:"initial_balance" yaml:"initial_balance"`
}

// Account is a cash balance plus a trading book over a fixed universe. The
// balance is a running ledger: it only ever moves by reconciled PnL, never
// gets recomputed from scratch.
type Account struct {
	config  AccountConfig
	balance market.Cash
	book    *TradingBook
}

func NewAccount(cfg AccountConfig, universe []market.Instrument) *Account {
	return &Account{
		config:  cfg,
		balance: cfg.InitialBalance,
		book:    NewTradingBook(universe),
	}
}

func (a *Account) Name() string {
	return a.config.Name
}

func (a *Account) InitialBalance() market.Cash {
	return a.config.InitialBalance
}

func (a *Account) Balance() market.Cash {
	return a.balance
}

func (a *Account) Holdings() []*FifoPosition {
	return a.book.Holdings()
}

// Reconcile applies one step's fills and rolls the realized PnL into the
// balance, returning the step's realized delta.
func (a *Account) Reconcile(fills []sim.Fill) (market.Cash, error) {
	pnl, err := a.book.Reconcile(fills)
	if err != nil {
		return 0, err
	}
	a.balance += pnl
	return pnl, nil
}

// Equity is balance plus mark-to-market PnL of all open positions. It is a
// pure read.
func (a *Account) Equity(models []sim.FillModel) (market.Cash, error) {
	unrealized, err := a.book.UnrealizedPnL(models)
	if err != nil {
		return 0, err
	}
	return a.balance + unrealized, nil
}
