package journal

// Schema creates the journal tables. Run IDs are ULIDs, so ordering by
// (run_id, step) is chronological across runs too.
const Schema = `
CREATE TABLE IF NOT EXISTS fills (
	run_id     TEXT NOT NULL,
	step       INTEGER NOT NULL,
	instrument TEXT NOT NULL,
	units      REAL NOT NULL,
	price      REAL NOT NULL,
	fee        REAL NOT NULL,
	time       TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_fills_run ON fills(run_id, step);

CREATE TABLE IF NOT EXISTS equity (
	run_id  TEXT NOT NULL,
	step    INTEGER NOT NULL,
	time    TIMESTAMP NOT NULL,
	balance REAL NOT NULL,
	equity  REAL NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_equity_run ON equity(run_id, step);
`
