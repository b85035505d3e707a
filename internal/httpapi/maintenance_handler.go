package httpapi

import (
	"net/http"
	"strings"

	"dormhub/internal/service"

	"go.uber.org/zap"
)

type MaintenanceHandler struct {
	maintenanceService service.MaintenanceService
	logger             *zap.Logger
}

func NewMaintenanceHandler(maintenanceService service.MaintenanceService, logger *zap.Logger) *MaintenanceHandler {
	return &MaintenanceHandler{maintenanceService: maintenanceService, logger: logger}
}

func (h *MaintenanceHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path

	switch {
	case path == "/api/v1/maintenance":
		switch r.Method {
		case http.MethodGet:
			h.ListByStatus(w, r)
		case http.MethodPost:
			h.Submit(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	case strings.HasPrefix(path, "/api/v1/maintenance/by-tenant/"):
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.ListForTenant(w, r, pathID("/api/v1/maintenance/by-tenant/", path))
	case strings.HasSuffix(path, "/status"):
		if r.Method != http.MethodPut {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.UpdateStatus(w, r, pathID("/api/v1/maintenance/", path))
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (h *MaintenanceHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var body struct {
		TenantID         string `json:"tenantId"`
		IssueDescription string `json:"issueDescription"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, err)
		return
	}

	req, err := h.maintenanceService.SubmitRequest(r.Context(), service.SubmitMaintenanceRequest{
		TenantID:         body.TenantID,
		IssueDescription: body.IssueDescription,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(req))
}

func (h *MaintenanceHandler) ListByStatus(w http.ResponseWriter, r *http.Request) {
	requests, err := h.maintenanceService.ListByStatus(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(requests))
}

func (h *MaintenanceHandler) ListForTenant(w http.ResponseWriter, r *http.Request, tenantID string) {
	requests, err := h.maintenanceService.ListForTenant(r.Context(), tenantID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(requests))
}

func (h *MaintenanceHandler) UpdateStatus(w http.ResponseWriter, r *http.Request, requestID string) {
	var body struct {
		Status string `json:"status"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, err)
		return
	}

	req, err := h.maintenanceService.UpdateStatus(r.Context(), requestID, body.Status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(req))
}
