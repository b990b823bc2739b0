package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fundwatch/Fund-Arbitrage-Monitor-Backend/internal/api/response"
	"github.com/fundwatch/Fund-Arbitrage-Monitor-Backend/internal/apperrors"
	"github.com/fundwatch/Fund-Arbitrage-Monitor-Backend/internal/service"
)

// FundHandler handles HTTP requests for the fund catalog and live fund views.
type FundHandler struct {
	arbitrageService *service.ArbitrageService
}

// NewFundHandler creates a new FundHandler with the provided service dependency.
func NewFundHandler(arbitrageService *service.ArbitrageService) *FundHandler {
	return &FundHandler{
		arbitrageService: arbitrageService,
	}
}

// Funds handles GET requests to list the tracked fund catalog.
//
// Endpoint: GET /api/fund
// Response: 200 OK with array of Fund
func (h *FundHandler) Funds(w http.ResponseWriter, _ *http.Request) {
	response.RespondJSON(w, http.StatusOK, h.arbitrageService.Funds())
}

// Snapshot handles GET requests for one fund's live view: exchange quote,
// reference value, premium/discount and advice.
//
// Endpoint: GET /api/fund/{code}/quote
// Response: 200 OK with FundSnapshot
// Error: 404 Not Found if the code is not in the catalog
// Error: 502 Bad Gateway if the quote provider cannot be reached
func (h *FundHandler) Snapshot(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	snapshot, err := h.arbitrageService.Snapshot(r.Context(), code)
	if err != nil {
		if errors.Is(err, apperrors.ErrFundNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrFundNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusBadGateway, apperrors.ErrFailedToRetrieveQuote.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, snapshot)
}
