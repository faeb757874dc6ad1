package journal

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/quantrail/polyledger/ledger"
)

type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		return nil, err
	}

	return &SQLite{db: db}, nil
}

func (j *SQLite) RecordRun(r Run) error {
	_, err := j.db.Exec(`
		INSERT INTO runs
		(run_id, created, slug, address, title, symbol, start_ts, end_ts,
		 trade_count, dropped_trades, actual_outcome, total_cost, payout,
		 profit, roi, density_pct, bias, correct_side)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.RunID, r.Created, r.Slug, r.Address, r.Title, r.Symbol,
		r.StartTS, r.EndTS, r.TradeCount, r.DroppedTrades, r.ActualOutcome,
		r.TotalCost, r.Payout, r.Profit, r.ROI, r.DensityPct, r.Bias,
		r.CorrectSide,
	)
	return err
}

// RecordRows inserts a full ledger in one transaction. Unset optional
// fields become SQL NULLs, keeping the "no position yet" distinction.
func (j *SQLite) RecordRows(runID string, rows []ledger.Row) error {
	tx, err := j.db.Begin()
	if err != nil {
		return err
	}

	stmt, err := tx.Prepare(`
		INSERT INTO ledger
		(run_id, timestamp, close, delta,
		 buy_a_size, buy_a_price, buy_b_size, buy_b_price,
		 cum_a_size, cum_a_avg_cost, cum_b_size, cum_b_avg_cost,
		 net_exposure, target_price, hedged_size, hedged_price,
		 hidden_loss, hidden_profit, trade_count)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for _, row := range rows {
		_, err := stmt.Exec(
			runID, row.Timestamp, nf(row.Close), nf(row.Delta),
			nf(row.BuyASize), nf(row.BuyAPrice), nf(row.BuyBSize), nf(row.BuyBPrice),
			nf(row.CumASize), nf(row.CumAAvgCost), nf(row.CumBSize), nf(row.CumBAvgCost),
			nf(row.NetExposure), nf(row.TargetPrice), nf(row.HedgedSize), nf(row.HedgedPrice),
			nf(row.HiddenLoss), nf(row.HiddenProfit), row.TradeCount,
		)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("insert ledger row %d: %w", row.Timestamp, err)
		}
	}

	return tx.Commit()
}

func (j *SQLite) Close() error {
	return j.db.Close()
}

// nf maps an optional float to a driver value, NULL when unset.
func nf(f ledger.Float) any {
	if !f.Set {
		return nil
	}
	return f.Value
}
