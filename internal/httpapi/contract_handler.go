package httpapi

import (
	"net/http"
	"strings"

	"dormhub/internal/service"

	"go.uber.org/zap"
)

type ContractHandler struct {
	contractService service.ContractService
	logger          *zap.Logger
}

func NewContractHandler(contractService service.ContractService, logger *zap.Logger) *ContractHandler {
	return &ContractHandler{contractService: contractService, logger: logger}
}

func (h *ContractHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	path := r.URL.Path
	switch {
	case strings.HasPrefix(path, "/api/v1/contracts/by-tenant/"):
		h.GetForTenant(w, r, pathID("/api/v1/contracts/by-tenant/", path))
	default:
		id := pathID("/api/v1/contracts/", path)
		if id == "" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		h.Get(w, r, id)
	}
}

func (h *ContractHandler) Get(w http.ResponseWriter, r *http.Request, contractID string) {
	contract, err := h.contractService.GetContract(r.Context(), contractID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(contract))
}

func (h *ContractHandler) GetForTenant(w http.ResponseWriter, r *http.Request, tenantID string) {
	contract, err := h.contractService.GetContractForTenant(r.Context(), tenantID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(contract))
}
