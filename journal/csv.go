package journal

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"
)

// CSV writes fills and equity snapshots to two flat files, flushing after
// every record so a crashed run still leaves usable output.
type CSV struct {
	fills  *csv.Writer
	equity *csv.Writer
	ff, ef *os.File
}

func NewCSV(fillsPath, equityPath string) (*CSV, error) {
	ff, err := os.Create(fillsPath)
	if err != nil {
		return nil, err
	}
	ef, err := os.Create(equityPath)
	if err != nil {
		ff.Close()
		return nil, err
	}

	fw := csv.NewWriter(ff)
	ew := csv.NewWriter(ef)

	if err := fw.Write([]string{"run_id", "step", "instrument", "units", "price", "fee", "time"}); err != nil {
		return nil, err
	}
	if err := ew.Write([]string{"run_id", "step", "time", "balance", "equity"}); err != nil {
		return nil, err
	}
	fw.Flush()
	if err := fw.Error(); err != nil {
		return nil, err
	}
	ew.Flush()
	if err := ew.Error(); err != nil {
		return nil, err
	}

	return &CSV{fills: fw, equity: ew, ff: ff, ef: ef}, nil
}

func (j *CSV) RecordFill(rec FillRecord) error {
	if err := j.fills.Write([]string{
		rec.RunID,
		strconv.Itoa(rec.Step),
		rec.Instrument,
		f(rec.Units),
		f(rec.Price),
		f(rec.Fee),
		rec.Time.Format(time.RFC3339),
	}); err != nil {
		return err
	}
	j.fills.Flush()
	return j.fills.Error()
}

func (j *CSV) RecordEquity(rec EquitySnapshot) error {
	if err := j.equity.Write([]string{
		rec.RunID,
		strconv.Itoa(rec.Step),
		rec.Time.Format(time.RFC3339),
		f(rec.Balance),
		f(rec.Equity),
	}); err != nil {
		return err
	}
	j.equity.Flush()
	return j.equity.Error()
}

func (j *CSV) Close() error {
	j.fills.Flush()
	if err := j.fills.Error(); err != nil {
		return err
	}
	j.equity.Flush()
	if err := j.equity.Error(); err != nil {
		return err
	}
	if err := j.ff.Close(); err != nil {
		return err
	}
	return j.ef.Close()
}

func f(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
