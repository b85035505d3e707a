package httpapi

import (
	"net/http"
	"strings"

	"dormhub/internal/service"

	"go.uber.org/zap"
)

type BuildingHandler struct {
	buildingService service.BuildingService
	logger          *zap.Logger
}

func NewBuildingHandler(buildingService service.BuildingService, logger *zap.Logger) *BuildingHandler {
	return &BuildingHandler{buildingService: buildingService, logger: logger}
}

func (h *BuildingHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path

	switch {
	case path == "/api/v1/buildings":
		switch r.Method {
		case http.MethodGet:
			h.List(w, r)
		case http.MethodPost:
			h.Create(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	case strings.HasSuffix(path, "/occupancy"):
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.Occupancy(w, r, pathID("/api/v1/buildings/", path))
	default:
		id := pathID("/api/v1/buildings/", path)
		if id == "" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if r.Method != http.MethodDelete {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.Delete(w, r, id)
	}
}

func (h *BuildingHandler) List(w http.ResponseWriter, r *http.Request) {
	buildings, err := h.buildingService.ListBuildings(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(buildings))
}

func (h *BuildingHandler) Create(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name       string `json:"name"`
		Floors     int    `json:"floors"`
		TotalRooms int    `json:"totalRooms"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, err)
		return
	}

	building, err := h.buildingService.CreateBuilding(r.Context(), service.CreateBuildingRequest{
		Name:       body.Name,
		Floors:     body.Floors,
		TotalRooms: body.TotalRooms,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(building))
}

func (h *BuildingHandler) Delete(w http.ResponseWriter, r *http.Request, buildingID string) {
	if err := h.buildingService.DeleteBuilding(r.Context(), buildingID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(map[string]string{"status": "deleted"}))
}

func (h *BuildingHandler) Occupancy(w http.ResponseWriter, r *http.Request, buildingID string) {
	resp, err := h.buildingService.BuildingOccupancy(r.Context(), buildingID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(resp))
}
