package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	"dormhub/internal/service"

	"go.uber.org/zap"
)

type PaymentHandler struct {
	paymentService service.PaymentService
	logger         *zap.Logger
}

func NewPaymentHandler(paymentService service.PaymentService, logger *zap.Logger) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService, logger: logger}
}

func (h *PaymentHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path
	tenantID := pathID("/api/v1/payments/", path)
	if tenantID == "" {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	switch {
	case strings.HasSuffix(path, "/export"):
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.Export(w, r, tenantID)
	default:
		switch r.Method {
		case http.MethodGet:
			h.List(w, r, tenantID)
		case http.MethodPost:
			h.Record(w, r, tenantID)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}
}

func (h *PaymentHandler) List(w http.ResponseWriter, r *http.Request, tenantID string) {
	payments, err := h.paymentService.ListPayments(r.Context(), tenantID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(payments))
}

func (h *PaymentHandler) Record(w http.ResponseWriter, r *http.Request, tenantID string) {
	var body struct {
		Month     string  `json:"month"`
		Amount    float64 `json:"amount"`
		Method    string  `json:"method"`
		PayerName string  `json:"payerName"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, err)
		return
	}

	payment, err := h.paymentService.RecordPayment(r.Context(), service.RecordPaymentRequest{
		TenantID:  tenantID,
		Month:     body.Month,
		Amount:    body.Amount,
		Method:    body.Method,
		PayerName: body.PayerName,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(payment))
}

// Export streams the tenant's payment history as an xlsx attachment.
func (h *PaymentHandler) Export(w http.ResponseWriter, r *http.Request, tenantID string) {
	data, err := h.paymentService.ExportPayments(r.Context(), tenantID)
	if err != nil {
		writeError(w, err)
		return
	}

	filename := fmt.Sprintf("payment-history-%s.xlsx", tenantID)
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		h.logger.Warn("Failed to write export response", zap.Error(err))
	}
}
