package journal

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

// SQLite journals into a single database file, one row per fill and per
// equity snapshot.
type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, err
	}
	return &SQLite{db: db}, nil
}

func (j *SQLite) RecordFill(rec FillRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO fills (run_id, step, instrument, units, price, fee, time)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.RunID, rec.Step, rec.Instrument, rec.Units, rec.Price, rec.Fee, rec.Time,
	)
	return err
}

func (j *SQLite) RecordEquity(rec EquitySnapshot) error {
	_, err := j.db.Exec(`
		INSERT INTO equity (run_id, step, time, balance, equity)
		VALUES (?, ?, ?, ?, ?)`,
		rec.RunID, rec.Step, rec.Time, rec.Balance, rec.Equity,
	)
	return err
}

// EquityCurve reads back one run's equity series, ordered by step.
func (j *SQLite) EquityCurve(runID string) ([]EquitySnapshot, error) {
	rows, err := j.db.Query(`
		SELECT run_id, step, time, balance, equity
		FROM equity WHERE run_id = ? ORDER BY step`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var curve []EquitySnapshot
	for rows.Next() {
		var rec EquitySnapshot
		if err := rows.Scan(&rec.RunID, &rec.Step, &rec.Time, &rec.Balance, &rec.Equity); err != nil {
			return nil, err
		}
		curve = append(curve, rec)
	}
	return curve, rows.Err()
}

func (j *SQLite) Close() error {
	return j.db.Close()
}
