package repository

import (
	"database/sql"
	"fmt"

	"github.com/fundwatch/Fund-Arbitrage-Monitor-Backend/internal/model"
)

// TradeRepository provides data access methods for the trade table: the
// finalized, append-only trade history.
type TradeRepository struct {
	db *sql.DB
}

// NewTradeRepository creates a new TradeRepository with the provided database connection.
func NewTradeRepository(db *sql.DB) *TradeRepository {
	return &TradeRepository{db: db}
}

// GetTrades retrieves trades for one fund, or all trades when fundCode is
// empty, sorted by date then insertion order.
func (r *TradeRepository) GetTrades(fundCode string) ([]model.Trade, error) {
	query := `
		SELECT id, fund_code, type, date, amount, share, price, timestamp, created_at
		FROM trade
	`
	var args []any
	if fundCode != "" {
		query += ` WHERE fund_code = ?`
		args = append(args, fundCode)
	}
	query += ` ORDER BY date ASC, created_at ASC`

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query trade table: %w", err)
	}
	defer rows.Close()

	trades := []model.Trade{}
	for rows.Next() {
		var t model.Trade
		var createdAtStr string

		err := rows.Scan(&t.ID, &t.FundCode, &t.Type, &t.Date, &t.Amount, &t.Share, &t.Price, &t.Timestamp, &createdAtStr)
		if err != nil {
			return nil, fmt.Errorf("failed to scan trade table results: %w", err)
		}

		t.CreatedAt, err = ParseTime(createdAtStr)
		if err != nil {
			return nil, err
		}

		trades = append(trades, t)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trade table: %w", err)
	}

	return trades, nil
}

// GetTrade retrieves a single trade by ID. Returns sql.ErrNoRows wrapped
// when the trade does not exist.
func (r *TradeRepository) GetTrade(id string) (model.Trade, error) {
	var t model.Trade
	var createdAtStr string

	err := r.db.QueryRow(`
		SELECT id, fund_code, type, date, amount, share, price, timestamp, created_at
		FROM trade WHERE id = ?
	`, id).Scan(&t.ID, &t.FundCode, &t.Type, &t.Date, &t.Amount, &t.Share, &t.Price, &t.Timestamp, &createdAtStr)
	if err != nil {
		return t, err
	}

	t.CreatedAt, err = ParseTime(createdAtStr)
	return t, err
}

// InsertTrade writes a finalized trade inside the given transaction so the
// insert and the holding mutation commit together.
func (r *TradeRepository) InsertTrade(tx *sql.Tx, t *model.Trade) error {
	_, err := tx.Exec(`
		INSERT INTO trade (id, fund_code, type, date, amount, share, price, timestamp)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, t.ID, t.FundCode, t.Type, t.Date, t.Amount, t.Share, t.Price, t.Timestamp)
	if err != nil {
		return fmt.Errorf("failed to insert trade: %w", err)
	}
	return nil
}

// ReplaceAll swaps the trade history inside the given transaction, used
// when restoring a backup.
func (r *TradeRepository) ReplaceAll(tx *sql.Tx, trades []model.Trade) error {
	if _, err := tx.Exec(`DELETE FROM trade`); err != nil {
		return fmt.Errorf("failed to clear trades: %w", err)
	}
	for i := range trades {
		if err := r.InsertTrade(tx, &trades[i]); err != nil {
			return err
		}
	}
	return nil
}

// DeleteTrade removes a trade row. The holding it was applied to is left
// untouched. Returns the number of rows deleted.
func (r *TradeRepository) DeleteTrade(id string) (int64, error) {
	res, err := r.db.Exec(`DELETE FROM trade WHERE id = ?`, id)
	if err != nil {
		return 0, fmt.Errorf("failed to delete trade: %w", err)
	}
	return res.RowsAffected()
}
