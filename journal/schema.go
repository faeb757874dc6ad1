package journal

const Schema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id TEXT PRIMARY KEY,
	created DATETIME NOT NULL,
	slug TEXT NOT NULL,
	address TEXT NOT NULL,
	title TEXT NOT NULL,
	symbol TEXT NOT NULL,
	start_ts INTEGER NOT NULL,
	end_ts INTEGER NOT NULL,
	trade_count INTEGER NOT NULL,
	dropped_trades INTEGER NOT NULL,
	actual_outcome TEXT NOT NULL,
	total_cost REAL NOT NULL,
	payout REAL NOT NULL,
	profit REAL NOT NULL,
	roi REAL NOT NULL,
	density_pct REAL NOT NULL,
	bias TEXT NOT NULL,
	correct_side INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS ledger (
	run_id TEXT NOT NULL,
	timestamp INTEGER NOT NULL,
	close REAL,
	delta REAL,
	buy_a_size REAL,
	buy_a_price REAL,
	buy_b_size REAL,
	buy_b_price REAL,
	cum_a_size REAL,
	cum_a_avg_cost REAL,
	cum_b_size REAL,
	cum_b_avg_cost REAL,
	net_exposure REAL,
	target_price REAL,
	hedged_size REAL,
	hedged_price REAL,
	hidden_loss REAL,
	hidden_profit REAL,
	trade_count INTEGER NOT NULL,
	PRIMARY KEY (run_id, timestamp)
);

CREATE INDEX IF NOT EXISTS idx_ledger_run ON ledger(run_id);
`
