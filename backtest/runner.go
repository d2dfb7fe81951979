package backtest

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/rustyeddy/lotbook/book"
	"github.com/rustyeddy/lotbook/journal"
	"github.com/rustyeddy/lotbook/market"
	"github.com/rustyeddy/lotbook/pkg/id"
	"github.com/rustyeddy/lotbook/sim"
)

// Runner replays a signal/price history against a fresh account, one
// reconciliation per instrument per step, and samples equity after every
// step. Any invariant violation aborts the run with step context attached.
type Runner struct {
	Universe []market.Instrument
	Account  book.AccountConfig

	// Sizer defaults to UnitSizer, Journal to a no-op, Log to the
	// standard logrus logger.
	Sizer   Sizer
	Journal journal.Journal
	Log     *logrus.Logger
}

func (r *Runner) sizer() Sizer {
	if r.Sizer == nil {
		return UnitSizer{}
	}
	return r.Sizer
}

func (r *Runner) journal() journal.Journal {
	if r.Journal == nil {
		return journal.Nop{}
	}
	return r.Journal
}

func (r *Runner) log() *logrus.Logger {
	if r.Log == nil {
		return logrus.StandardLogger()
	}
	return r.Log
}

// Run executes the full replay and returns the per-step equity curve.
// signals and prices are step-major matrices, one column per universe
// instrument, aligned with timestamps.
func (r *Runner) Run(timestamps []time.Time, signals [][]float64, prices [][]market.BestPrices) ([]market.Cash, error) {
	if len(r.Universe) == 0 {
		return nil, fmt.Errorf("empty universe")
	}
	if len(signals) != len(timestamps) || len(prices) != len(timestamps) {
		return nil, fmt.Errorf("series length mismatch: %d timestamps, %d signal rows, %d price rows",
			len(timestamps), len(signals), len(prices))
	}
	for t := range signals {
		if len(signals[t]) != len(r.Universe) || len(prices[t]) != len(r.Universe) {
			return nil, fmt.Errorf("step %d: row width does not match universe size %d", t, len(r.Universe))
		}
	}

	runID := id.New()
	log := r.log().WithFields(logrus.Fields{
		"run":     runID,
		"account": r.Account.Name,
		"steps":   len(timestamps),
	})
	log.Info("starting replay")

	account := book.NewAccount(r.Account, r.Universe)
	models := make([]sim.FillModel, len(r.Universe))
	for i, inst := range r.Universe {
		models[i] = sim.NewTopOfBook(inst)
	}
	fills := make([]sim.Fill, len(r.Universe))
	prevSignals := make([]float64, len(r.Universe))
	curve := make([]market.Cash, 0, len(timestamps))

	for t, ts := range timestamps {
		for i, inst := range r.Universe {
			quote := prices[t][i]
			if err := models[i].Update(quote); err != nil {
				return nil, fmt.Errorf("step %d %s: %w", t, inst.ID(), err)
			}

			quantity := r.sizer().OrderQuantity(
				signals[t][i], prevSignals[i], account.Holdings()[i], quote, account)

			fill, err := models[i].Execute(sim.MarketOrder{
				InstrumentID: inst.ID(),
				Quantity:     quantity,
			})
			if err != nil {
				return nil, fmt.Errorf("step %d %s: %w", t, inst.ID(), err)
			}
			fills[i] = fill
		}

		realized, err := account.Reconcile(fills)
		if err != nil {
			return nil, fmt.Errorf("step %d: reconcile: %w", t, err)
		}
		equity, err := account.Equity(models)
		if err != nil {
			return nil, fmt.Errorf("step %d: equity: %w", t, err)
		}
		curve = append(curve, equity)

		for i, fill := range fills {
			if fill.Quantity() == 0 {
				continue
			}
			price, _ := fill.Price()
			if err := r.journal().RecordFill(journal.FillRecord{
				RunID:      runID,
				Step:       t,
				Instrument: fill.InstrumentID.String(),
				Units:      fill.Quantity(),
				Price:      price,
				Fee:        fill.Fee,
				Time:       ts,
			}); err != nil {
				return nil, fmt.Errorf("step %d: journal fill %d: %w", t, i, err)
			}
		}
		if err := r.journal().RecordEquity(journal.EquitySnapshot{
			RunID:   runID,
			Step:    t,
			Time:    ts,
			Balance: account.Balance(),
			Equity:  equity,
		}); err != nil {
			return nil, fmt.Errorf("step %d: journal equity: %w", t, err)
		}

		log.WithFields(logrus.Fields{
			"step":     t,
			"time":     ts,
			"realized": realized,
			"equity":   equity,
		}).Debug("step complete")

		copy(prevSignals, signals[t])
	}

	log.WithField("final_equity", lastOr(curve, r.Account.InitialBalance)).Info("replay complete")
	return curve, nil
}

func lastOr(curve []market.Cash, fallback market.Cash) market.Cash {
	if len(curve) == 0 {
		return fallback
	}
	return curve[len(curve)-1]
}
