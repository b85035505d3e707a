package httpapi

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Router wraps the standard library http.ServeMux; the API surface is small
// enough that a third-party router buys nothing.
type Router struct {
	mux    *http.ServeMux
	logger *zap.Logger
}

func NewRouter(logger *zap.Logger) *Router {
	return &Router{
		mux:    http.NewServeMux(),
		logger: logger,
	}
}

func (r *Router) Handle(pattern string, h http.Handler) {
	r.mux.Handle(pattern, h)
}

// ServeHTTP puts a deadline on every request so a slow document store cannot
// pin a handler forever.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), 15*time.Second)
	defer cancel()
	r.mux.ServeHTTP(w, req.WithContext(ctx))
}

// RegisterAuthRoutes wires login/logout/session endpoints.
func (r *Router) RegisterAuthRoutes(h *AuthHandler) {
	r.Handle("/api/v1/auth/", h)
}

func (r *Router) RegisterRoomRoutes(h *RoomHandler) {
	r.Handle("/api/v1/rooms", h)
	r.Handle("/api/v1/rooms/", h)
}

func (r *Router) RegisterBuildingRoutes(h *BuildingHandler) {
	r.Handle("/api/v1/buildings", h)
	r.Handle("/api/v1/buildings/", h)
}

func (r *Router) RegisterResidentRoutes(h *ResidentHandler) {
	r.Handle("/api/v1/residents", h)
	r.Handle("/api/v1/residents/", h)
}

func (r *Router) RegisterReservationRoutes(h *ReservationHandler) {
	r.Handle("/api/v1/reservations", h)
	r.Handle("/api/v1/reservations/", h)
}

func (r *Router) RegisterContractRoutes(h *ContractHandler) {
	r.Handle("/api/v1/contracts/", h)
}

func (r *Router) RegisterPaymentRoutes(h *PaymentHandler) {
	r.Handle("/api/v1/payments/", h)
}

func (r *Router) RegisterMaintenanceRoutes(h *MaintenanceHandler) {
	r.Handle("/api/v1/maintenance", h)
	r.Handle("/api/v1/maintenance/", h)
}

func (r *Router) RegisterAnnouncementRoutes(h *AnnouncementHandler) {
	r.Handle("/api/v1/announcements", h)
}

// RegisterHealthRoutes exposes a liveness probe.
func (r *Router) RegisterHealthRoutes() {
	r.Handle("/health", http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}))
}
