package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/fundwatch/Fund-Arbitrage-Monitor-Backend/internal/api/request"
	"github.com/fundwatch/Fund-Arbitrage-Monitor-Backend/internal/api/response"
	"github.com/fundwatch/Fund-Arbitrage-Monitor-Backend/internal/apperrors"
	"github.com/fundwatch/Fund-Arbitrage-Monitor-Backend/internal/arbitrage"
	"github.com/fundwatch/Fund-Arbitrage-Monitor-Backend/internal/service"
	"github.com/fundwatch/Fund-Arbitrage-Monitor-Backend/internal/validation"
)

// ArbitrageHandler handles HTTP requests for arbitrage calculations and scans.
type ArbitrageHandler struct {
	arbitrageService *service.ArbitrageService
}

// NewArbitrageHandler creates a new ArbitrageHandler with the provided service dependency.
func NewArbitrageHandler(arbitrageService *service.ArbitrageService) *ArbitrageHandler {
	return &ArbitrageHandler{
		arbitrageService: arbitrageService,
	}
}

// Premium handles POST requests to simulate a premium arbitrage trade.
//
// Endpoint: POST /api/arbitrage/premium
// Request Body: PremiumArbitrageRequest
// Response: 200 OK with arbitrage.Result
// Error: 400 Bad Request if validation fails or inputs are incomplete
func (h *ArbitrageHandler) Premium(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.PremiumArbitrageRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidatePremiumArbitrage(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	params := arbitrage.PremiumParams{
		Amount:         req.Amount,
		ReferenceValue: req.ReferenceValue,
		SellPrice:      req.SellPrice,
		FundType:       req.FundType,
		UseDiscountFee: req.UseDiscountFee,
	}
	if req.Shares != nil {
		params.Shares = *req.Shares
	}

	result, err := h.arbitrageService.Engine().PremiumArbitrage(params)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, apperrors.ErrIncompleteParams.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, result)
}

// Discount handles POST requests to simulate a discount arbitrage trade.
//
// Endpoint: POST /api/arbitrage/discount
// Request Body: DiscountArbitrageRequest
// Response: 200 OK with arbitrage.Result
// Error: 400 Bad Request if validation fails or inputs are incomplete
func (h *ArbitrageHandler) Discount(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.DiscountArbitrageRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateDiscountArbitrage(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	result, err := h.arbitrageService.Engine().DiscountArbitrage(arbitrage.DiscountParams{
		Amount:         req.Amount,
		BuyPrice:       req.BuyPrice,
		Nav:            req.Nav,
		FundType:       req.FundType,
		UseDiscountFee: req.UseDiscountFee,
	})
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, apperrors.ErrIncompleteParams.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, result)
}

// Profitability handles GET requests to judge a premium/discount percentage
// against the fee cost line.
//
// Endpoint: GET /api/arbitrage/profitability?percent=2.5&type=LOF
// Response: 200 OK with arbitrage.Verdict
// Error: 400 Bad Request if percent is missing or not a number
func (h *ArbitrageHandler) Profitability(w http.ResponseWriter, r *http.Request) {
	percentStr := r.URL.Query().Get("percent")
	percent, err := strconv.ParseFloat(percentStr, 64)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "percent must be a number", percentStr)
		return
	}

	fundType := r.URL.Query().Get("type")

	verdict := h.arbitrageService.Engine().Profitability(percent, fundType)
	response.RespondJSON(w, http.StatusOK, verdict)
}

// Opportunities handles GET requests to scan funds for premiums or discounts
// crossing a threshold. Scans the whole catalog unless ?codes= narrows it.
//
// Endpoint: GET /api/arbitrage/opportunities?codes=161725,510300&threshold=2
// Response: 200 OK with model.CheckResult
// Error: 400 Bad Request if threshold is not a number
func (h *ArbitrageHandler) Opportunities(w http.ResponseWriter, r *http.Request) {
	threshold := 0.0
	if ts := r.URL.Query().Get("threshold"); ts != "" {
		var err error
		threshold, err = strconv.ParseFloat(ts, 64)
		if err != nil {
			response.RespondError(w, http.StatusBadRequest, "threshold must be a number", ts)
			return
		}
	}

	var codes []string
	if cs := r.URL.Query().Get("codes"); cs != "" {
		codes = strings.Split(cs, ",")
	} else {
		for _, f := range h.arbitrageService.Funds() {
			codes = append(codes, f.Code)
		}
	}

	result, err := h.arbitrageService.CheckOpportunities(r.Context(), codes, threshold)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "opportunity scan failed", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, result)
}
