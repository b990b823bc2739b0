package repository

import (
	"database/sql"
	"fmt"

	"github.com/fundwatch/Fund-Arbitrage-Monitor-Backend/internal/model"
)

// HoldingRepository provides data access methods for the holding table.
type HoldingRepository struct {
	db *sql.DB
}

// NewHoldingRepository creates a new HoldingRepository with the provided database connection.
func NewHoldingRepository(db *sql.DB) *HoldingRepository {
	return &HoldingRepository{db: db}
}

// GetHoldings retrieves all holdings ordered by fund code.
func (r *HoldingRepository) GetHoldings() ([]model.Holding, error) {
	rows, err := r.db.Query(`SELECT fund_code, share FROM holding ORDER BY fund_code ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query holding table: %w", err)
	}
	defer rows.Close()

	holdings := []model.Holding{}
	for rows.Next() {
		var h model.Holding
		if err := rows.Scan(&h.FundCode, &h.Share); err != nil {
			return nil, fmt.Errorf("failed to scan holding table results: %w", err)
		}
		holdings = append(holdings, h)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating holding table: %w", err)
	}

	return holdings, nil
}

// GetHolding retrieves the holding for one fund. A fund never traded has a
// zero holding, which is returned rather than an error.
func (r *HoldingRepository) GetHolding(fundCode string) (model.Holding, error) {
	h := model.Holding{FundCode: fundCode}

	err := r.db.QueryRow(`SELECT share FROM holding WHERE fund_code = ?`, fundCode).Scan(&h.Share)
	if err == sql.ErrNoRows {
		return h, nil
	}
	if err != nil {
		return h, fmt.Errorf("failed to query holding: %w", err)
	}

	return h, nil
}

// ReplaceAll swaps the holding table contents inside the given transaction,
// used when restoring a backup.
func (r *HoldingRepository) ReplaceAll(tx *sql.Tx, holdings []model.Holding) error {
	if _, err := tx.Exec(`DELETE FROM holding`); err != nil {
		return fmt.Errorf("failed to clear holdings: %w", err)
	}
	for _, h := range holdings {
		_, err := tx.Exec(`INSERT INTO holding (fund_code, share) VALUES (?, ?)`, h.FundCode, h.Share)
		if err != nil {
			return fmt.Errorf("failed to restore holding %s: %w", h.FundCode, err)
		}
	}
	return nil
}

// ApplyDelta adjusts a fund's share count inside the given transaction,
// creating the row if needed. The share >= 0 constraint is enforced by the
// schema; a violating delta fails the enclosing transaction.
func (r *HoldingRepository) ApplyDelta(tx *sql.Tx, fundCode string, delta float64) error {
	_, err := tx.Exec(`
		INSERT INTO holding (fund_code, share) VALUES (?, ?)
		ON CONFLICT(fund_code) DO UPDATE SET share = share + excluded.share
	`, fundCode, delta)
	if err != nil {
		return fmt.Errorf("failed to apply holding delta: %w", err)
	}
	return nil
}
