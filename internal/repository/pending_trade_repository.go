package repository

import (
	"database/sql"
	"fmt"

	"github.com/fundwatch/Fund-Arbitrage-Monitor-Backend/internal/model"
)

// PendingTradeRepository provides data access methods for the pending_trade
// table: trade intents awaiting a published settlement value.
type PendingTradeRepository struct {
	db *sql.DB
}

// NewPendingTradeRepository creates a new PendingTradeRepository with the provided database connection.
func NewPendingTradeRepository(db *sql.DB) *PendingTradeRepository {
	return &PendingTradeRepository{db: db}
}

// GetPendingTrades retrieves pending trades for one fund, or all when
// fundCode is empty, oldest first so resolution follows submission order
// within a settlement date.
func (r *PendingTradeRepository) GetPendingTrades(fundCode string) ([]model.PendingTrade, error) {
	query := `
		SELECT id, fund_code, type, date, is_after_3pm, amount, share, fee_mode, fee_value, created_at
		FROM pending_trade
	`
	var args []any
	if fundCode != "" {
		query += ` WHERE fund_code = ?`
		args = append(args, fundCode)
	}
	query += ` ORDER BY created_at ASC`

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query pending_trade table: %w", err)
	}
	defer rows.Close()

	pending := []model.PendingTrade{}
	for rows.Next() {
		var p model.PendingTrade
		var createdAtStr string

		err := rows.Scan(&p.ID, &p.FundCode, &p.Type, &p.Date, &p.IsAfter3pm, &p.Amount, &p.Share, &p.FeeMode, &p.FeeValue, &createdAtStr)
		if err != nil {
			return nil, fmt.Errorf("failed to scan pending_trade table results: %w", err)
		}

		p.CreatedAt, err = ParseTime(createdAtStr)
		if err != nil {
			return nil, err
		}

		pending = append(pending, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating pending_trade table: %w", err)
	}

	return pending, nil
}

// PendingSellShare sums the shares reserved by pending sell entries for a
// fund. Those shares are not available for further sells until the entries
// finalize or are revoked.
func (r *PendingTradeRepository) PendingSellShare(fundCode string) (float64, error) {
	var total sql.NullFloat64
	err := r.db.QueryRow(`
		SELECT SUM(share) FROM pending_trade WHERE fund_code = ? AND type = ?
	`, fundCode, model.TradeTypeSell).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to sum pending sell shares: %w", err)
	}
	return total.Float64, nil
}

// InsertPendingTrade queues a trade intent with its full input snapshot.
func (r *PendingTradeRepository) InsertPendingTrade(p *model.PendingTrade) error {
	_, err := r.db.Exec(`
		INSERT INTO pending_trade (id, fund_code, type, date, is_after_3pm, amount, share, fee_mode, fee_value)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, p.ID, p.FundCode, p.Type, p.Date, p.IsAfter3pm, p.Amount, p.Share, p.FeeMode, p.FeeValue)
	if err != nil {
		return fmt.Errorf("failed to insert pending trade: %w", err)
	}
	return nil
}

// ReplaceAll swaps the pending queue inside the given transaction, used
// when restoring a backup.
func (r *PendingTradeRepository) ReplaceAll(tx *sql.Tx, pending []model.PendingTrade) error {
	if _, err := tx.Exec(`DELETE FROM pending_trade`); err != nil {
		return fmt.Errorf("failed to clear pending trades: %w", err)
	}
	for _, p := range pending {
		_, err := tx.Exec(`
			INSERT INTO pending_trade (id, fund_code, type, date, is_after_3pm, amount, share, fee_mode, fee_value)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, p.ID, p.FundCode, p.Type, p.Date, p.IsAfter3pm, p.Amount, p.Share, p.FeeMode, p.FeeValue)
		if err != nil {
			return fmt.Errorf("failed to restore pending trade %s: %w", p.ID, err)
		}
	}
	return nil
}

// DeletePendingTrade removes a pending entry (revocation or finalization).
// Returns the number of rows deleted.
func (r *PendingTradeRepository) DeletePendingTrade(id string) (int64, error) {
	res, err := r.db.Exec(`DELETE FROM pending_trade WHERE id = ?`, id)
	if err != nil {
		return 0, fmt.Errorf("failed to delete pending trade: %w", err)
	}
	return res.RowsAffected()
}

// DeletePendingTradeTx removes a pending entry inside a transaction, used
// when a resolution finalizes the entry atomically with the trade insert.
func (r *PendingTradeRepository) DeletePendingTradeTx(tx *sql.Tx, id string) error {
	if _, err := tx.Exec(`DELETE FROM pending_trade WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete pending trade: %w", err)
	}
	return nil
}
