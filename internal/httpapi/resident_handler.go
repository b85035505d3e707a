package httpapi

import (
	"net/http"
	"strings"
	"time"

	"dormhub/internal/service"

	"go.uber.org/zap"
)

// ResidentHandler serves the resident directory plus the room-assignment
// workflow (selectable rooms and assignment itself).
type ResidentHandler struct {
	residentService   service.ResidentService
	assignmentService service.AssignmentService
	logger            *zap.Logger
}

func NewResidentHandler(residentService service.ResidentService, assignmentService service.AssignmentService, logger *zap.Logger) *ResidentHandler {
	return &ResidentHandler{
		residentService:   residentService,
		assignmentService: assignmentService,
		logger:            logger,
	}
}

func (h *ResidentHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path

	switch {
	case path == "/api/v1/residents":
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.List(w, r)
	case strings.HasSuffix(path, "/selectable-rooms"):
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.SelectableRooms(w, r, pathID("/api/v1/residents/", path))
	case strings.HasSuffix(path, "/assign-room"):
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.AssignRoom(w, r, pathID("/api/v1/residents/", path))
	default:
		id := pathID("/api/v1/residents/", path)
		if id == "" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.Get(w, r, id)
	}
}

func (h *ResidentHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := service.ListResidentsRequest{
		Search:     q.Get("search"),
		BuildingID: q.Get("buildingId"),
		Floor:      parseFloor(q.Get("floor")),
		RoomType:   q.Get("roomType"),
	}

	resp, err := h.residentService.ListResidents(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(resp))
}

func (h *ResidentHandler) Get(w http.ResponseWriter, r *http.Request, tenantID string) {
	item, err := h.residentService.GetResident(r.Context(), tenantID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(item))
}

func (h *ResidentHandler) SelectableRooms(w http.ResponseWriter, r *http.Request, tenantID string) {
	resp, err := h.assignmentService.SelectableRooms(r.Context(), service.SelectableRoomsRequest{TenantID: tenantID})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(resp))
}

func (h *ResidentHandler) AssignRoom(w http.ResponseWriter, r *http.Request, tenantID string) {
	var body struct {
		RoomID          string `json:"roomId"`
		ContractEndDate string `json:"contractEndDate"` // YYYY-MM-DD, required when no contract exists yet
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, err)
		return
	}

	req := service.AssignRoomRequest{
		TenantID: tenantID,
		RoomID:   body.RoomID,
	}
	if body.ContractEndDate != "" {
		end, err := time.Parse("2006-01-02", body.ContractEndDate)
		if err != nil {
			writeError(w, service.ErrValidation)
			return
		}
		req.ContractEndDate = end
	}

	resp, err := h.assignmentService.AssignRoom(r.Context(), req)
	if err != nil {
		h.logger.Warn("Room assignment failed",
			zap.String("tenantId", tenantID),
			zap.String("roomId", body.RoomID),
			zap.Error(err))
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(resp))
}
