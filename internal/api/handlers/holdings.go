package handlers

import (
	"net/http"

	"github.com/fundwatch/Fund-Arbitrage-Monitor-Backend/internal/api/response"
	"github.com/fundwatch/Fund-Arbitrage-Monitor-Backend/internal/apperrors"
	"github.com/fundwatch/Fund-Arbitrage-Monitor-Backend/internal/service"
)

// HoldingHandler handles HTTP requests for holding endpoints.
type HoldingHandler struct {
	tradeService *service.TradeService
}

// NewHoldingHandler creates a new HoldingHandler with the provided service dependency.
func NewHoldingHandler(tradeService *service.TradeService) *HoldingHandler {
	return &HoldingHandler{
		tradeService: tradeService,
	}
}

// Holdings handles GET requests to list all holdings, each with the share
// count still available to sell after pending-sell reservations.
//
// Endpoint: GET /api/holding
// Response: 200 OK with array of HoldingSummary
// Error: 500 Internal Server Error if retrieval fails
func (h *HoldingHandler) Holdings(w http.ResponseWriter, _ *http.Request) {
	holdings, err := h.tradeService.Holdings()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveHoldings.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, holdings)
}
