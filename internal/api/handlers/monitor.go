package handlers

import (
	"net/http"

	"github.com/fundwatch/Fund-Arbitrage-Monitor-Backend/internal/api/request"
	"github.com/fundwatch/Fund-Arbitrage-Monitor-Backend/internal/api/response"
	"github.com/fundwatch/Fund-Arbitrage-Monitor-Backend/internal/model"
	"github.com/fundwatch/Fund-Arbitrage-Monitor-Backend/internal/service"
	"github.com/fundwatch/Fund-Arbitrage-Monitor-Backend/internal/validation"
)

// MonitorHandler handles HTTP requests for the opportunity monitor.
type MonitorHandler struct {
	monitorService *service.MonitorService
}

// NewMonitorHandler creates a new MonitorHandler with the provided service dependency.
func NewMonitorHandler(monitorService *service.MonitorService) *MonitorHandler {
	return &MonitorHandler{
		monitorService: monitorService,
	}
}

// GetConfig handles GET requests to retrieve the monitor configuration.
//
// Endpoint: GET /api/monitor/config
// Response: 200 OK with MonitorConfig
func (h *MonitorHandler) GetConfig(w http.ResponseWriter, _ *http.Request) {
	response.RespondJSON(w, http.StatusOK, h.monitorService.Config())
}

// UpdateConfig handles PUT requests to change the monitor configuration.
// Omitted fields keep their current value; the schedule restarts to match.
//
// Endpoint: PUT /api/monitor/config
// Request Body: UpdateMonitorConfigRequest (all fields optional)
// Response: 200 OK with the merged MonitorConfig
// Error: 400 Bad Request if validation fails
// Error: 500 Internal Server Error if persistence fails
func (h *MonitorHandler) UpdateConfig(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.UpdateMonitorConfigRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpdateMonitorConfig(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	cfg, err := h.monitorService.UpdateConfig(req)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to update monitor config", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, cfg)
}

// StatusResponse reports whether monitoring is enabled and the outcome of
// the most recent check, if any.
type StatusResponse struct {
	Enabled   bool               `json:"enabled"`
	LastCheck *model.CheckResult `json:"lastCheck"`
}

// Status handles GET requests for the monitor's last check result.
//
// Endpoint: GET /api/monitor/status
// Response: 200 OK with StatusResponse
func (h *MonitorHandler) Status(w http.ResponseWriter, _ *http.Request) {
	response.RespondJSON(w, http.StatusOK, StatusResponse{
		Enabled:   h.monitorService.Config().Enabled,
		LastCheck: h.monitorService.LastCheck(),
	})
}
