package backtest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/ulikunitz/xz"

	"github.com/rustyeddy/lotbook/market"
)

// Replay inputs are headerless CSV matrices, one row per step and one
// column per universe instrument. Each series may be stored plain or
// xz-compressed (<name>.csv or <name>.csv.xz).

// openSeries opens a series file, transparently decompressing .xz.
func openSeries(dir, name string) (io.ReadCloser, error) {
	plain := filepath.Join(dir, name+".csv")
	if _, err := os.Stat(plain); err == nil {
		return os.Open(plain)
	}

	packed := filepath.Join(dir, name+".csv.xz")
	f, err := os.Open(packed)
	if err != nil {
		return nil, fmt.Errorf("series %q: neither %s nor %s", name, plain, packed)
	}
	r, err := xz.NewReader(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("open %s: %w", packed, err)
	}
	return &xzReadCloser{r: r, f: f}, nil
}

type xzReadCloser struct {
	r *xz.Reader
	f *os.File
}

func (x *xzReadCloser) Read(p []byte) (int, error) { return x.r.Read(p) }
func (x *xzReadCloser) Close() error               { return x.f.Close() }

func readMatrix(dir, name string, cols int) ([][]float64, error) {
	rc, err := openSeries(dir, name)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	cr := csv.NewReader(rc)
	cr.FieldsPerRecord = cols

	var rows [][]float64
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("series %q row %d: %w", name, len(rows)+1, err)
		}
		row := make([]float64, len(record))
		for i, field := range record {
			row[i], err = strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("series %q row %d col %d: %w", name, len(rows)+1, i+1, err)
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// LoadTimestamps reads timestamps.csv: one unix-seconds value per step,
// strictly ascending.
func LoadTimestamps(dir string) ([]time.Time, error) {
	rows, err := readMatrix(dir, "timestamps", 1)
	if err != nil {
		return nil, err
	}

	timestamps := make([]time.Time, len(rows))
	for i, row := range rows {
		timestamps[i] = time.Unix(int64(row[0]), 0).UTC()
		if i > 0 && !timestamps[i].After(timestamps[i-1]) {
			return nil, fmt.Errorf("timestamps not strictly ascending at row %d", i+1)
		}
	}
	return timestamps, nil
}

// LoadSignals reads signals.csv with one column per instrument.
func LoadSignals(dir string, cols int) ([][]float64, error) {
	return readMatrix(dir, "signals", cols)
}

// LoadBestPrices reads prices.csv with one mid price per instrument per
// step, expanded into zero-spread quotes.
func LoadBestPrices(dir string, cols int) ([][]market.BestPrices, error) {
	rows, err := readMatrix(dir, "prices", cols)
	if err != nil {
		return nil, err
	}

	prices := make([][]market.BestPrices, len(rows))
	for i, row := range rows {
		prices[i] = make([]market.BestPrices, len(row))
		for j, px := range row {
			prices[i][j] = market.SinglePrice(px)
		}
	}
	return prices, nil
}

// SaveEquityCurve writes equity_curve.csv, one equity value per step.
func SaveEquityCurve(dir string, curve []market.Cash) error {
	f, err := os.Create(filepath.Join(dir, "equity_curve.csv"))
	if err != nil {
		return fmt.Errorf("create equity curve: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	for _, equity := range curve {
		if err := w.Write([]string{strconv.FormatFloat(equity, 'f', 6, 64)}); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
