package service

import (
	"context"
	"fmt"

	"dormhub/internal/docstore"
	"dormhub/internal/domain"
	"dormhub/internal/roomstore"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BuildingService manages buildings and derives per-building occupancy from
// the shared room cache.
type BuildingService interface {
	ListBuildings(ctx context.Context) ([]domain.Building, error)
	CreateBuilding(ctx context.Context, req CreateBuildingRequest) (*domain.Building, error)
	DeleteBuilding(ctx context.Context, buildingID string) error
	BuildingOccupancy(ctx context.Context, buildingID string) (*BuildingOccupancyResponse, error)
}

type buildingService struct {
	docs   docstore.Store
	rooms  *roomstore.Store
	logger *zap.Logger
}

func NewBuildingService(docs docstore.Store, rooms *roomstore.Store, logger *zap.Logger) BuildingService {
	return &buildingService{docs: docs, rooms: rooms, logger: logger}
}

type CreateBuildingRequest struct {
	Name       string
	Floors     int
	TotalRooms int
}

type BuildingOccupancyResponse struct {
	BuildingID     string `json:"building_id"`
	TotalRooms     int    `json:"total_rooms"`
	OccupiedRooms  int    `json:"occupied_rooms"`
	AvailableRooms int    `json:"available_rooms"`
	Residents      int    `json:"residents"`
}

func (s *buildingService) ListBuildings(ctx context.Context) ([]domain.Building, error) {
	docs, err := s.docs.List(ctx, ColBuildings)
	if err != nil {
		return nil, fmt.Errorf("list buildings: %w", err)
	}
	out := make([]domain.Building, 0, len(docs))
	for _, doc := range docs {
		out = append(out, domain.BuildingFromDoc(doc))
	}
	return out, nil
}

func (s *buildingService) CreateBuilding(ctx context.Context, req CreateBuildingRequest) (*domain.Building, error) {
	if req.Name == "" {
		return nil, validationf("building name is required")
	}
	if req.Floors <= 0 {
		return nil, validationf("floors must be positive")
	}
	b := domain.Building{
		ID:         uuid.NewString(),
		Name:       req.Name,
		Floors:     req.Floors,
		TotalRooms: req.TotalRooms,
	}
	if err := s.docs.Set(ctx, ColBuildings, b.ID, b.ToDoc()); err != nil {
		return nil, persistence("create building", err)
	}
	s.logger.Info("building created", zap.String("building_id", b.ID), zap.String("name", b.Name))
	return &b, nil
}

func (s *buildingService) DeleteBuilding(ctx context.Context, buildingID string) error {
	if buildingID == "" {
		return validationf("building id is required")
	}
	if err := s.docs.Delete(ctx, ColBuildings, buildingID); err != nil {
		return persistence("delete building", err)
	}
	return nil
}

// BuildingOccupancy is the widget behind each building card: counts from the
// room cache snapshot plus tenant assignments.
func (s *buildingService) BuildingOccupancy(ctx context.Context, buildingID string) (*BuildingOccupancyResponse, error) {
	if buildingID == "" {
		return nil, validationf("building id is required")
	}
	tenants, err := loadTenants(ctx, s.docs)
	if err != nil {
		return nil, err
	}

	resp := &BuildingOccupancyResponse{BuildingID: buildingID}
	for _, room := range s.rooms.ByBuilding(buildingID) {
		resp.TotalRooms++
		occ := OccupancyOf(room.ID, tenants)
		resp.Residents += occ
		if room.Status == domain.RoomOccupied || occ >= room.Capacity {
			resp.OccupiedRooms++
		} else if room.Status == domain.RoomAvailable {
			resp.AvailableRooms++
		}
	}
	return resp, nil
}
