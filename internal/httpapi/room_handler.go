package httpapi

import (
	"net/http"
	"strings"

	"dormhub/internal/service"

	"go.uber.org/zap"
)

// RoomHandler exposes room CRUD, manual status toggling and the cache reload
// endpoint.
type RoomHandler struct {
	roomService service.RoomService
	logger      *zap.Logger
}

func NewRoomHandler(roomService service.RoomService, logger *zap.Logger) *RoomHandler {
	return &RoomHandler{roomService: roomService, logger: logger}
}

func (h *RoomHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path

	switch {
	case path == "/api/v1/rooms":
		switch r.Method {
		case http.MethodGet:
			h.List(w, r)
		case http.MethodPost:
			h.Create(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	case path == "/api/v1/rooms/export":
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.Export(w, r)
	case path == "/api/v1/rooms/reload":
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.Reload(w, r)
	case strings.HasSuffix(path, "/status"):
		if r.Method != http.MethodPut {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.SetStatus(w, r, pathID("/api/v1/rooms/", path))
	default:
		id := pathID("/api/v1/rooms/", path)
		if id == "" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		switch r.Method {
		case http.MethodPut:
			h.Update(w, r, id)
		case http.MethodDelete:
			h.Delete(w, r, id)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}
}

func (h *RoomHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := service.ListRoomsRequest{
		BuildingID: q.Get("buildingId"),
		Floor:      parseFloor(q.Get("floor")),
		Status:     q.Get("status"),
	}

	resp, err := h.roomService.ListRooms(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(resp))
}

func (h *RoomHandler) Create(w http.ResponseWriter, r *http.Request) {
	var body struct {
		BuildingID   string  `json:"buildingId"`
		BuildingName string  `json:"buildingName"`
		RoomNumber   string  `json:"roomNumber"`
		Floor        int     `json:"floor"`
		RoomType     string  `json:"roomType"`
		Rate         float64 `json:"rate"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, err)
		return
	}

	resp, err := h.roomService.CreateRoom(r.Context(), service.CreateRoomRequest{
		BuildingID:   body.BuildingID,
		BuildingName: body.BuildingName,
		RoomNumber:   body.RoomNumber,
		Floor:        body.Floor,
		RoomType:     body.RoomType,
		Rate:         body.Rate,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(resp))
}

func (h *RoomHandler) Update(w http.ResponseWriter, r *http.Request, roomID string) {
	var body struct {
		RoomType string  `json:"roomType"`
		Rate     float64 `json:"rate"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, err)
		return
	}

	resp, err := h.roomService.UpdateRoom(r.Context(), service.UpdateRoomRequest{
		RoomID:   roomID,
		RoomType: body.RoomType,
		Rate:     body.Rate,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(resp))
}

func (h *RoomHandler) Delete(w http.ResponseWriter, r *http.Request, roomID string) {
	if err := h.roomService.DeleteRoom(r.Context(), service.DeleteRoomRequest{RoomID: roomID}); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(map[string]string{"status": "deleted"}))
}

func (h *RoomHandler) SetStatus(w http.ResponseWriter, r *http.Request, roomID string) {
	var body struct {
		Status string `json:"status"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, err)
		return
	}

	room, err := h.roomService.SetRoomStatus(r.Context(), service.SetRoomStatusRequest{
		RoomID: roomID,
		Status: body.Status,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(room))
}

// Export streams the room list as an xlsx attachment.
func (h *RoomHandler) Export(w http.ResponseWriter, r *http.Request) {
	data, err := h.roomService.ExportRooms(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="rooms.xlsx"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		h.logger.Warn("Failed to write export response", zap.Error(err))
	}
}

func (h *RoomHandler) Reload(w http.ResponseWriter, r *http.Request) {
	n, err := h.roomService.ReloadRooms(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	h.logger.Info("Room cache reloaded", zap.Int("rooms", n))
	writeJSON(w, http.StatusOK, Ok(map[string]int{"rooms": n}))
}
