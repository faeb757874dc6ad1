package journal

import (
	"database/sql"
	"fmt"

	"github.com/quantrail/polyledger/ledger"
)

// GetRun returns a single run record by ID.
func (j *SQLite) GetRun(runID string) (Run, error) {
	var r Run

	row := j.db.QueryRow(`
		SELECT run_id, created, slug, address, title, symbol, start_ts, end_ts,
		       trade_count, dropped_trades, actual_outcome, total_cost, payout,
		       profit, roi, density_pct, bias, correct_side
		FROM runs
		WHERE run_id = ?`, runID)

	err := row.Scan(
		&r.RunID, &r.Created, &r.Slug, &r.Address, &r.Title, &r.Symbol,
		&r.StartTS, &r.EndTS, &r.TradeCount, &r.DroppedTrades,
		&r.ActualOutcome, &r.TotalCost, &r.Payout, &r.Profit, &r.ROI,
		&r.DensityPct, &r.Bias, &r.CorrectSide,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return Run{}, fmt.Errorf("run %q not found", runID)
		}
		return Run{}, err
	}
	return r, nil
}

// ListRuns returns all recorded runs, newest first.
func (j *SQLite) ListRuns() ([]Run, error) {
	rows, err := j.db.Query(`
		SELECT run_id, created, slug, address, title, symbol, start_ts, end_ts,
		       trade_count, dropped_trades, actual_outcome, total_cost, payout,
		       profit, roi, density_pct, bias, correct_side
		FROM runs
		ORDER BY created DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(
			&r.RunID, &r.Created, &r.Slug, &r.Address, &r.Title, &r.Symbol,
			&r.StartTS, &r.EndTS, &r.TradeCount, &r.DroppedTrades,
			&r.ActualOutcome, &r.TotalCost, &r.Payout, &r.Profit, &r.ROI,
			&r.DensityPct, &r.Bias, &r.CorrectSide,
		); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListRows returns the stored ledger of a run in timestamp order.
func (j *SQLite) ListRows(runID string) ([]ledger.Row, error) {
	rows, err := j.db.Query(`
		SELECT timestamp, close, delta,
		       buy_a_size, buy_a_price, buy_b_size, buy_b_price,
		       cum_a_size, cum_a_avg_cost, cum_b_size, cum_b_avg_cost,
		       net_exposure, target_price, hedged_size, hedged_price,
		       hidden_loss, hidden_profit, trade_count
		FROM ledger
		WHERE run_id = ?
		ORDER BY timestamp ASC`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ledger.Row
	for rows.Next() {
		var (
			r ledger.Row
			v [16]sql.NullFloat64
		)
		if err := rows.Scan(
			&r.Timestamp, &v[0], &v[1], &v[2], &v[3], &v[4], &v[5],
			&v[6], &v[7], &v[8], &v[9], &v[10], &v[11], &v[12], &v[13],
			&v[14], &v[15], &r.TradeCount,
		); err != nil {
			return nil, err
		}
		r.Close = of(v[0])
		r.Delta = of(v[1])
		r.BuyASize = of(v[2])
		r.BuyAPrice = of(v[3])
		r.BuyBSize = of(v[4])
		r.BuyBPrice = of(v[5])
		r.CumASize = of(v[6])
		r.CumAAvgCost = of(v[7])
		r.CumBSize = of(v[8])
		r.CumBAvgCost = of(v[9])
		r.NetExposure = of(v[10])
		r.TargetPrice = of(v[11])
		r.HedgedSize = of(v[12])
		r.HedgedPrice = of(v[13])
		r.HiddenLoss = of(v[14])
		r.HiddenProfit = of(v[15])
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func of(v sql.NullFloat64) ledger.Float {
	if !v.Valid {
		return ledger.Float{}
	}
	return ledger.F(v.Float64)
}
