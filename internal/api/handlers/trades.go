package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/fundwatch/Fund-Arbitrage-Monitor-Backend/internal/api/request"
	"github.com/fundwatch/Fund-Arbitrage-Monitor-Backend/internal/api/response"
	"github.com/fundwatch/Fund-Arbitrage-Monitor-Backend/internal/apperrors"
	"github.com/fundwatch/Fund-Arbitrage-Monitor-Backend/internal/service"
	"github.com/fundwatch/Fund-Arbitrage-Monitor-Backend/internal/validation"
)

// TradeHandler handles HTTP requests for trade endpoints. It serves as the
// HTTP layer adapter, parsing requests and delegating business logic to the
// tradeService.
type TradeHandler struct {
	tradeService *service.TradeService
}

// NewTradeHandler creates a new TradeHandler with the provided service dependency.
func NewTradeHandler(tradeService *service.TradeService) *TradeHandler {
	return &TradeHandler{
		tradeService: tradeService,
	}
}

// Trades handles GET requests to retrieve the finalized trade history.
//
// Endpoint: GET /api/trade?fundCode=161725
// Response: 200 OK with array of Trade
// Error: 500 Internal Server Error if retrieval fails
func (h *TradeHandler) Trades(w http.ResponseWriter, r *http.Request) {
	trades, err := h.tradeService.GetTrades(r.URL.Query().Get("fundCode"))
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveTrades.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, trades)
}

// SubmitTrade handles POST requests to submit a trade intent. The trade
// finalizes immediately when the settlement net value is already published,
// otherwise it is queued as pending.
//
// Endpoint: POST /api/trade
// Request Body: SubmitTradeRequest
// Response: 201 Created with SubmitResult (status finalized or pending)
// Error: 400 Bad Request if validation fails
// Error: 409 Conflict if a sell exceeds the available share
// Error: 500 Internal Server Error if persistence fails
func (h *TradeHandler) SubmitTrade(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.SubmitTradeRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateSubmitTrade(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	result, err := h.tradeService.SubmitTrade(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrInsufficientShares):
			response.RespondError(w, http.StatusConflict, apperrors.ErrInsufficientShares.Error(), err.Error())
		case errors.Is(err, apperrors.ErrMissingRequiredField), errors.Is(err, apperrors.ErrInvalidTradeType):
			response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		default:
			response.RespondError(w, http.StatusInternalServerError, "failed to submit trade", err.Error())
		}
		return
	}

	response.RespondJSON(w, http.StatusCreated, result)
}

// DeleteTrade handles DELETE requests to remove a trade history entry.
// The holding the trade was applied to is intentionally left untouched.
//
// Endpoint: DELETE /api/trade/{uuid}
// Response: 204 No Content
// Error: 400 Bad Request if the ID is invalid (validated by middleware)
// Error: 404 Not Found if the trade does not exist
func (h *TradeHandler) DeleteTrade(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "uuid")

	if err := h.tradeService.DeleteTrade(id); err != nil {
		if errors.Is(err, apperrors.ErrTradeNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrTradeNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to delete trade", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}

// PendingTrades handles GET requests to retrieve the pending queue.
//
// Endpoint: GET /api/trade/pending?fundCode=161725
// Response: 200 OK with array of PendingTrade
// Error: 500 Internal Server Error if retrieval fails
func (h *TradeHandler) PendingTrades(w http.ResponseWriter, r *http.Request) {
	pending, err := h.tradeService.GetPendingTrades(r.URL.Query().Get("fundCode"))
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrievePending.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, pending)
}

// ResolvePending handles POST requests to run one resolution sweep over the
// pending queue.
//
// Endpoint: POST /api/trade/pending/resolve
// Response: 200 OK with array of Trade finalized by this sweep
// Error: 500 Internal Server Error if the queue cannot be read
func (h *TradeHandler) ResolvePending(w http.ResponseWriter, r *http.Request) {
	resolved, err := h.tradeService.ResolvePending(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to resolve pending trades", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, resolved)
}

// RevokePending handles DELETE requests to withdraw a queued trade intent.
//
// Endpoint: DELETE /api/trade/pending/{uuid}
// Response: 204 No Content
// Error: 400 Bad Request if the ID is invalid (validated by middleware)
// Error: 404 Not Found if the pending trade does not exist
func (h *TradeHandler) RevokePending(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "uuid")

	if err := h.tradeService.RevokePending(id); err != nil {
		if errors.Is(err, apperrors.ErrPendingTradeNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrPendingTradeNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to revoke pending trade", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}

// Preview handles GET requests for the debounced settlement net value of a
// drafted intent. Answers "resolving" until the lookup settles; repeat the
// call to pick up the outcome.
//
// Endpoint: GET /api/trade/preview?fundCode=161725&date=2024-05-10&isAfter3pm=true
// Response: 200 OK with PreviewResult
// Error: 400 Bad Request if fund code or date is invalid
func (h *TradeHandler) Preview(w http.ResponseWriter, r *http.Request) {
	fundCode := r.URL.Query().Get("fundCode")
	if err := validation.ValidateFundCode(fundCode); err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid fund code", err.Error())
		return
	}

	after3pm, _ := strconv.ParseBool(r.URL.Query().Get("isAfter3pm"))

	result, err := h.tradeService.Preview(fundCode, r.URL.Query().Get("date"), after3pm)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid date", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, result)
}
