package service

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/fundwatch/Fund-Arbitrage-Monitor-Backend/internal/api/request"
	"github.com/fundwatch/Fund-Arbitrage-Monitor-Backend/internal/apperrors"
	"github.com/fundwatch/Fund-Arbitrage-Monitor-Backend/internal/model"
	"github.com/fundwatch/Fund-Arbitrage-Monitor-Backend/internal/repository"
	"github.com/fundwatch/Fund-Arbitrage-Monitor-Backend/internal/resolver"
)

// SettlementSource resolves the published net value governing a settlement
// date. Implementations return (nil, nil) when the value is not yet
// published; a transport error is treated by callers as "not yet published".
type SettlementSource interface {
	NetValue(ctx context.Context, code, date string) (*model.ReferenceValue, error)
}

// Trade submission outcomes.
const (
	SubmitFinalized = "finalized"
	SubmitPending   = "pending"
)

// SubmitResult is the outcome of one trade intent: either a finalized
// ledger entry applied to the holding, or a queued pending entry awaiting
// its settlement value.
type SubmitResult struct {
	Status  string              `json:"status"`
	Trade   *model.Trade        `json:"trade,omitempty"`
	Pending *model.PendingTrade `json:"pending,omitempty"`
}

// PreviewResult is the state of a debounced settlement-value preview.
type PreviewResult struct {
	Status string                `json:"status"` // resolving | resolved | unavailable
	Value  *model.ReferenceValue `json:"value,omitempty"`
}

type previewState struct {
	key    string
	result PreviewResult
}

// TradeService turns trade intents into finalized ledger entries or pending
// queue entries, and keeps holdings consistent. It is the only writer of
// holding share counts; finalization is serialized by a mutex so pending
// trades resolving out of order cannot interleave their holding mutations.
type TradeService struct {
	db         *sql.DB
	trades     *repository.TradeRepository
	pending    *repository.PendingTradeRepository
	holdings   *repository.HoldingRepository
	settlement SettlementSource

	finalizeMu sync.Mutex

	debounce  *resolver.Debouncer
	previewMu sync.Mutex
	preview   *previewState
}

// NewTradeService creates a TradeService with the provided repositories and
// settlement source. The debounce delay applies to settlement previews;
// zero uses the default.
func NewTradeService(
	db *sql.DB,
	trades *repository.TradeRepository,
	pending *repository.PendingTradeRepository,
	holdings *repository.HoldingRepository,
	settlement SettlementSource,
	debounceDelay time.Duration,
) *TradeService {
	return &TradeService{
		db:         db,
		trades:     trades,
		pending:    pending,
		holdings:   holdings,
		settlement: settlement,
		debounce:   resolver.New(debounceDelay),
	}
}

// Close abandons any in-flight preview resolution.
func (s *TradeService) Close() {
	s.debounce.Close()
}

// EffectiveSettlementDate returns the trading day whose published net value
// governs an order: the order date itself, or the next day when the order
// was submitted after the 15:00 cutoff (T+1 rule).
func EffectiveSettlementDate(date string, isAfter3pm bool) (string, error) {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		return "", fmt.Errorf("%w: date", apperrors.ErrMissingRequiredField)
	}
	if isAfter3pm {
		d = d.AddDate(0, 0, 1)
	}
	return d.Format("2006-01-02"), nil
}

// SubmitTrade resolves a trade intent against its settlement date. If the
// net value is published the trade finalizes immediately; if it is not yet
// available, or the lookup fails, the intent is queued as pending with all
// inputs snapshotted. Only structurally invalid input is an error.
func (s *TradeService) SubmitTrade(ctx context.Context, req request.SubmitTradeRequest) (*SubmitResult, error) {
	if err := s.validateIntent(req); err != nil {
		return nil, err
	}

	effectiveDate, err := EffectiveSettlementDate(req.Date, req.IsAfter3pm)
	if err != nil {
		return nil, err
	}

	if req.Type == model.TradeTypeSell {
		available, err := s.AvailableShare(req.FundCode)
		if err != nil {
			return nil, err
		}
		if req.Share > available {
			return nil, fmt.Errorf("%w: %.2f requested, %.2f available", apperrors.ErrInsufficientShares, req.Share, available)
		}
	}

	ref, err := s.settlement.NetValue(ctx, req.FundCode, effectiveDate)
	if err != nil {
		// A failed lookup is an expected, recoverable condition: queue the
		// intent and let a later resolution attempt pick it up.
		log.Printf("settlement lookup for %s@%s failed, queueing as pending: %v", req.FundCode, effectiveDate, err)
		ref = nil
	}

	if ref == nil {
		p := &model.PendingTrade{
			ID:         uuid.New().String(),
			FundCode:   req.FundCode,
			Type:       req.Type,
			Date:       req.Date,
			IsAfter3pm: req.IsAfter3pm,
			Amount:     req.Amount,
			Share:      req.Share,
			FeeMode:    req.FeeMode,
			FeeValue:   req.FeeValue,
		}
		if err := s.pending.InsertPendingTrade(p); err != nil {
			return nil, err
		}
		return &SubmitResult{Status: SubmitPending, Pending: p}, nil
	}

	trade, err := s.finalize(req.FundCode, req.Type, req.Amount, req.Share, req.FeeMode, req.FeeValue, ref, "")
	if err != nil {
		return nil, err
	}
	return &SubmitResult{Status: SubmitFinalized, Trade: trade}, nil
}

// ResolvePending re-attempts settlement lookup for every queued entry and
// finalizes those whose value has been published since. Entries finalize in
// the order they become resolvable; a failed lookup for one entry is logged
// and does not block the rest. Returns the trades finalized by this sweep.
func (s *TradeService) ResolvePending(ctx context.Context) ([]model.Trade, error) {
	queue, err := s.pending.GetPendingTrades("")
	if err != nil {
		return nil, err
	}

	resolved := []model.Trade{}
	for _, p := range queue {
		effectiveDate, err := EffectiveSettlementDate(p.Date, p.IsAfter3pm)
		if err != nil {
			log.Printf("pending trade %s has unparsable date %q, skipping", p.ID, p.Date)
			continue
		}

		ref, err := s.settlement.NetValue(ctx, p.FundCode, effectiveDate)
		if err != nil {
			log.Printf("settlement lookup for pending trade %s failed: %v", p.ID, err)
			continue
		}
		if ref == nil {
			continue
		}

		trade, err := s.finalize(p.FundCode, p.Type, p.Amount, p.Share, p.FeeMode, p.FeeValue, ref, p.ID)
		if err != nil {
			log.Printf("failed to finalize pending trade %s: %v", p.ID, err)
			continue
		}
		resolved = append(resolved, *trade)
	}

	return resolved, nil
}

// finalize computes the ledger entry from the snapshotted inputs and the
// resolved reference value, then writes the trade and the holding mutation
// in one transaction. pendingID, when set, removes the originating pending
// entry in the same transaction.
//
// Buys net the fee out of the stated amount: netAmount = amount/(1+rate/100)
// converts to shares at the settlement price. Sells return share*price less
// the fee (proportional or flat per the snapshotted mode).
func (s *TradeService) finalize(fundCode, tradeType string, amount, share float64, feeMode string, feeValue float64, ref *model.ReferenceValue, pendingID string) (*model.Trade, error) {
	s.finalizeMu.Lock()
	defer s.finalizeMu.Unlock()

	trade := &model.Trade{
		ID:       uuid.New().String(),
		FundCode: fundCode,
		Type:     tradeType,
		Date:     ref.Date,
		Price:    ref.Value,
	}

	if d, err := time.Parse("2006-01-02", ref.Date); err == nil {
		trade.Timestamp = d.UnixMilli()
	}

	var delta float64
	switch tradeType {
	case model.TradeTypeBuy:
		netAmount := amount / (1 + feeValue/100)
		trade.Amount = amount
		trade.Share = netAmount / ref.Value
		delta = trade.Share
	case model.TradeTypeSell:
		sellAmount := share * ref.Value
		fee := feeValue
		if feeMode == model.FeeModeRate {
			fee = sellAmount * feeValue / 100
		}
		trade.Amount = sellAmount - fee
		trade.Share = share
		delta = -share
	default:
		return nil, fmt.Errorf("%w: %s", apperrors.ErrInvalidTradeType, tradeType)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if err := s.trades.InsertTrade(tx, trade); err != nil {
		return nil, err
	}
	if err := s.holdings.ApplyDelta(tx, fundCode, delta); err != nil {
		return nil, err
	}
	if pendingID != "" {
		if err := s.pending.DeletePendingTradeTx(tx, pendingID); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit trade: %w", err)
	}

	return trade, nil
}

// AvailableShare is the share count a fund's holder can still sell: the
// holding net of shares reserved by queued pending sells, floored at zero.
func (s *TradeService) AvailableShare(fundCode string) (float64, error) {
	holding, err := s.holdings.GetHolding(fundCode)
	if err != nil {
		return 0, err
	}
	reserved, err := s.pending.PendingSellShare(fundCode)
	if err != nil {
		return 0, err
	}
	available := holding.Share - reserved
	if available < 0 {
		available = 0
	}
	return available, nil
}

// Holdings lists all holdings enriched with pending-sell reservations.
func (s *TradeService) Holdings() ([]model.HoldingSummary, error) {
	holdings, err := s.holdings.GetHoldings()
	if err != nil {
		return nil, err
	}

	summaries := make([]model.HoldingSummary, 0, len(holdings))
	for _, h := range holdings {
		reserved, err := s.pending.PendingSellShare(h.FundCode)
		if err != nil {
			return nil, err
		}
		available := h.Share - reserved
		if available < 0 {
			available = 0
		}
		summaries = append(summaries, model.HoldingSummary{
			FundCode:       h.FundCode,
			Share:          h.Share,
			PendingSell:    reserved,
			AvailableShare: available,
		})
	}
	return summaries, nil
}

// GetTrades returns the finalized trade history, optionally for one fund.
func (s *TradeService) GetTrades(fundCode string) ([]model.Trade, error) {
	return s.trades.GetTrades(fundCode)
}

// GetPendingTrades returns the pending queue, optionally for one fund.
func (s *TradeService) GetPendingTrades(fundCode string) ([]model.PendingTrade, error) {
	return s.pending.GetPendingTrades(fundCode)
}

// DeleteTrade removes a history entry. The holding mutation the trade was
// applied with is intentionally not reversed; deletion edits the record,
// not the position.
func (s *TradeService) DeleteTrade(id string) error {
	n, err := s.trades.DeleteTrade(id)
	if err != nil {
		return err
	}
	if n == 0 {
		return apperrors.ErrTradeNotFound
	}
	return nil
}

// RevokePending deletes a queued entry. Holdings are untouched because a
// pending entry was never applied.
func (s *TradeService) RevokePending(id string) error {
	n, err := s.pending.DeletePendingTrade(id)
	if err != nil {
		return err
	}
	if n == 0 {
		return apperrors.ErrPendingTradeNotFound
	}
	return nil
}

// Preview resolves the settlement value for a drafted intent. The lookup is
// debounced: the first call for a key answers "resolving" and schedules the
// lookup; a change of key supersedes the in-flight lookup so a stale result
// is discarded rather than shown against the wrong date. Subsequent calls
// with the same key return the cached outcome.
func (s *TradeService) Preview(fundCode, date string, isAfter3pm bool) (PreviewResult, error) {
	effectiveDate, err := EffectiveSettlementDate(date, isAfter3pm)
	if err != nil {
		return PreviewResult{}, err
	}
	key := fundCode + "@" + effectiveDate

	s.previewMu.Lock()
	defer s.previewMu.Unlock()

	if s.preview != nil {
		if s.preview.key == key {
			return s.preview.result, nil
		}
		s.debounce.Cancel(s.preview.key)
	}

	s.preview = &previewState{key: key, result: PreviewResult{Status: "resolving"}}
	s.debounce.Trigger(key, func(ctx context.Context) {
		ref, err := s.settlement.NetValue(ctx, fundCode, effectiveDate)

		result := PreviewResult{Status: "unavailable"}
		if err != nil {
			log.Printf("preview lookup for %s failed: %v", key, err)
		} else if ref != nil {
			result = PreviewResult{Status: "resolved", Value: ref}
		}

		s.previewMu.Lock()
		defer s.previewMu.Unlock()
		// Discard if a newer key took over while we were fetching.
		if s.preview != nil && s.preview.key == key {
			s.preview.result = result
		}
	})

	return s.preview.result, nil
}

func (s *TradeService) validateIntent(req request.SubmitTradeRequest) error {
	if req.FundCode == "" || req.Date == "" {
		return apperrors.ErrMissingRequiredField
	}
	switch req.Type {
	case model.TradeTypeBuy:
		if req.Amount <= 0 {
			return fmt.Errorf("%w: amount", apperrors.ErrMissingRequiredField)
		}
	case model.TradeTypeSell:
		if req.Share <= 0 {
			return fmt.Errorf("%w: share", apperrors.ErrMissingRequiredField)
		}
		if req.FeeMode != model.FeeModeRate && req.FeeMode != model.FeeModeAmount {
			return fmt.Errorf("%w: feeMode", apperrors.ErrMissingRequiredField)
		}
	default:
		return fmt.Errorf("%w: %q", apperrors.ErrInvalidTradeType, req.Type)
	}
	return nil
}
