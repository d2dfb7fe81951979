package backtest

import (
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/lotbook/book"
	"github.com/rustyeddy/lotbook/journal"
	"github.com/rustyeddy/lotbook/market"
)

type captureJournal struct {
	fills  []journal.FillRecord
	equity []journal.EquitySnapshot
	closed bool
}

func (j *captureJournal) RecordFill(rec journal.FillRecord) error {
	j.fills = append(j.fills, rec)
	return nil
}

func (j *captureJournal) RecordEquity(rec journal.EquitySnapshot) error {
	j.equity = append(j.equity, rec)
	return nil
}

func (j *captureJournal) Close() error {
	j.closed = true
	return nil
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func runnerFixture(j journal.Journal) *Runner {
	spec := market.Spec{
		UniqueID:   market.InstrumentID{Venue: "sim", Symbol: "ES"},
		Multiplier: 1,
		Commission: market.Commission{Kind: market.CommissionFixed, Amount: 0},
	}
	return &Runner{
		Universe: []market.Instrument{spec},
		Account:  book.AccountConfig{Name: "SIM-001", InitialBalance: 1000},
		Journal:  j,
		Log:      quietLogger(),
	}
}

func steps(n int) []time.Time {
	out := make([]time.Time, n)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := range out {
		out[i] = base.Add(time.Duration(i) * time.Hour)
	}
	return out
}

func TestRunnerEquityCurve(t *testing.T) {
	t.Parallel()

	j := &captureJournal{}
	r := runnerFixture(j)

	// Go long one unit at 100, hold through 110, flatten at 105.
	signals := [][]float64{{1}, {1}, {0}}
	prices := [][]market.BestPrices{
		{market.SinglePrice(100)},
		{market.SinglePrice(110)},
		{market.SinglePrice(105)},
	}

	curve, err := r.Run(steps(3), signals, prices)
	require.NoError(t, err)
	require.Len(t, curve, 3)
	assert.InDelta(t, 1000.0, curve[0], 1e-9) // opened flat at the quote
	assert.InDelta(t, 1010.0, curve[1], 1e-9) // marked to 110
	assert.InDelta(t, 1005.0, curve[2], 1e-9) // realized at 105

	// Only the two real trades hit the journal, every step snapshots.
	require.Len(t, j.fills, 2)
	assert.Equal(t, 1.0, j.fills[0].Units)
	assert.Equal(t, 100.0, j.fills[0].Price)
	assert.Equal(t, -1.0, j.fills[1].Units)
	assert.Equal(t, 105.0, j.fills[1].Price)
	assert.Equal(t, 2, j.fills[1].Step)

	require.Len(t, j.equity, 3)
	assert.Equal(t, j.fills[0].RunID, j.equity[0].RunID)
	assert.NotEmpty(t, j.equity[0].RunID)
	assert.InDelta(t, 1005.0, j.equity[2].Balance, 1e-9)
}

func TestRunnerChargesFees(t *testing.T) {
	t.Parallel()

	r := runnerFixture(journal.Nop{})
	spec := market.Spec{
		UniqueID:   market.InstrumentID{Venue: "sim", Symbol: "ES"},
		Multiplier: 1,
		Commission: market.Commission{Kind: market.CommissionFixed, Amount: 2},
	}
	r.Universe = []market.Instrument{spec}

	signals := [][]float64{{1}}
	prices := [][]market.BestPrices{{market.SinglePrice(100)}}

	curve, err := r.Run(steps(1), signals, prices)
	require.NoError(t, err)
	require.Len(t, curve, 1)
	// Opening cost 2, and the hypothetical close costs another 2.
	assert.InDelta(t, 996.0, curve[0], 1e-9)
}

func TestRunnerSeriesLengthMismatch(t *testing.T) {
	t.Parallel()

	r := runnerFixture(journal.Nop{})

	_, err := r.Run(steps(2), [][]float64{{1}}, [][]market.BestPrices{{market.SinglePrice(100)}})
	assert.ErrorContains(t, err, "length mismatch")
}

func TestRunnerRowWidthMismatch(t *testing.T) {
	t.Parallel()

	r := runnerFixture(journal.Nop{})

	_, err := r.Run(steps(1),
		[][]float64{{1, 1}},
		[][]market.BestPrices{{market.SinglePrice(100), market.SinglePrice(100)}})
	assert.ErrorContains(t, err, "universe")
}

func TestRunnerEmptyUniverse(t *testing.T) {
	t.Parallel()

	r := runnerFixture(journal.Nop{})
	r.Universe = nil

	_, err := r.Run(steps(1), [][]float64{{}}, [][]market.BestPrices{{}})
	assert.ErrorContains(t, err, "universe")
}

func TestRunnerCapitalSizing(t *testing.T) {
	t.Parallel()

	r := runnerFixture(journal.Nop{})
	r.Sizer = CapitalSizer{}

	// 0.5 * 1000 / 100 = 5 units, then flatten.
	signals := [][]float64{{0.5}, {0}}
	prices := [][]market.BestPrices{
		{market.SinglePrice(100)},
		{market.SinglePrice(104)},
	}

	curve, err := r.Run(steps(2), signals, prices)
	require.NoError(t, err)
	require.Len(t, curve, 2)
	assert.InDelta(t, 1000.0, curve[0], 1e-9)
	assert.InDelta(t, 1020.0, curve[1], 1e-9) // 5 units * 4
}
