package handlers

import (
	"errors"
	"net/http"

	"github.com/fundwatch/Fund-Arbitrage-Monitor-Backend/internal/api/request"
	"github.com/fundwatch/Fund-Arbitrage-Monitor-Backend/internal/api/response"
	"github.com/fundwatch/Fund-Arbitrage-Monitor-Backend/internal/apperrors"
	"github.com/fundwatch/Fund-Arbitrage-Monitor-Backend/internal/service"
)

// ExportHandler handles HTTP requests for encrypted backup and restore.
type ExportHandler struct {
	exportService *service.ExportService
}

// NewExportHandler creates a new ExportHandler with the provided service dependency.
func NewExportHandler(exportService *service.ExportService) *ExportHandler {
	return &ExportHandler{
		exportService: exportService,
	}
}

// ExportResponse wraps the encrypted backup blob.
type ExportResponse struct {
	Data string `json:"data"`
}

// Export handles POST requests to produce an encrypted backup of all state.
//
// Endpoint: POST /api/export
// Response: 200 OK with ExportResponse
// Error: 500 Internal Server Error if the export fails
func (h *ExportHandler) Export(w http.ResponseWriter, _ *http.Request) {
	data, err := h.exportService.Export()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToExport.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, ExportResponse{Data: data})
}

// Import handles POST requests to restore state from an encrypted backup.
// Holdings, trades and the pending queue are replaced atomically; the
// monitor config is applied last.
//
// Endpoint: POST /api/import
// Request Body: ImportRequest
// Response: 200 OK with the restored Snapshot
// Error: 400 Bad Request if the blob cannot be verified or parsed
// Error: 500 Internal Server Error if the restore fails
func (h *ExportHandler) Import(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.ImportRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	snapshot, err := h.exportService.Import(req.Data)
	if err != nil {
		if errors.Is(err, apperrors.ErrFailedToImport) {
			response.RespondError(w, http.StatusBadRequest, apperrors.ErrFailedToImport.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to restore backup", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, snapshot)
}
