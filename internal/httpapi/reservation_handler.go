package httpapi

import (
	"net/http"
	"strings"
	"time"

	"dormhub/internal/service"

	"go.uber.org/zap"
)

type ReservationHandler struct {
	reservationService service.ReservationService
	logger             *zap.Logger
}

func NewReservationHandler(reservationService service.ReservationService, logger *zap.Logger) *ReservationHandler {
	return &ReservationHandler{reservationService: reservationService, logger: logger}
}

func (h *ReservationHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path

	switch {
	case path == "/api/v1/reservations":
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.Create(w, r)
	case path == "/api/v1/reservations/pending":
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.ListPending(w, r)
	case strings.HasSuffix(path, "/approve"):
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.Approve(w, r, pathID("/api/v1/reservations/", path))
	case strings.HasSuffix(path, "/reject"):
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.Reject(w, r, pathID("/api/v1/reservations/", path))
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (h *ReservationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var body struct {
		FirstName           string `json:"firstName"`
		LastName            string `json:"lastName"`
		StudentID           string `json:"studentId"`
		Email               string `json:"email"`
		Gender              string `json:"gender"`
		CurrentYear         string `json:"currentYear"`
		ContractType        string `json:"contractType"`
		PreferredMoveInDate string `json:"preferredMoveInDate"` // YYYY-MM-DD
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, err)
		return
	}

	req := service.CreateReservationRequest{
		FirstName:    body.FirstName,
		LastName:     body.LastName,
		StudentID:    body.StudentID,
		Email:        body.Email,
		Gender:       body.Gender,
		CurrentYear:  body.CurrentYear,
		ContractType: body.ContractType,
	}
	if body.PreferredMoveInDate != "" {
		moveIn, err := time.Parse("2006-01-02", body.PreferredMoveInDate)
		if err != nil {
			writeError(w, service.ErrValidation)
			return
		}
		req.PreferredMoveInDate = moveIn
	}

	reservation, err := h.reservationService.CreateReservation(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(reservation))
}

func (h *ReservationHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	reservations, err := h.reservationService.ListPending(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(reservations))
}

func (h *ReservationHandler) Approve(w http.ResponseWriter, r *http.Request, reservationID string) {
	resp, err := h.reservationService.Approve(r.Context(), reservationID)
	if err != nil {
		writeError(w, err)
		return
	}
	h.logger.Info("Reservation approved",
		zap.String("reservationId", reservationID),
		zap.String("tenantId", resp.Tenant.UserID))
	writeJSON(w, http.StatusOK, Ok(resp))
}

func (h *ReservationHandler) Reject(w http.ResponseWriter, r *http.Request, reservationID string) {
	if err := h.reservationService.Reject(r.Context(), reservationID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(map[string]string{"status": "rejected"}))
}
