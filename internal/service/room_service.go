package service

import (
	"context"
	"errors"
	"fmt"

	"dormhub/internal/docstore"
	"dormhub/internal/domain"
	"dormhub/internal/roomstore"

	"go.uber.org/zap"
)

// RoomService manages the rooms collection and keeps the shared room cache in
// step with it after every successful write.
type RoomService interface {
	ListRooms(ctx context.Context, req ListRoomsRequest) (*ListRoomsResponse, error)
	CreateRoom(ctx context.Context, req CreateRoomRequest) (*CreateRoomResponse, error)
	UpdateRoom(ctx context.Context, req UpdateRoomRequest) (*UpdateRoomResponse, error)
	DeleteRoom(ctx context.Context, req DeleteRoomRequest) error
	SetRoomStatus(ctx context.Context, req SetRoomStatusRequest) (*domain.Room, error)
	// ReloadRooms refetches the whole collection into the cache; the manual
	// recovery path when the cache is suspected stale.
	ReloadRooms(ctx context.Context) (int, error)
	// ExportRooms renders the full room list with occupancy as an xlsx workbook.
	ExportRooms(ctx context.Context) ([]byte, error)
}

type roomService struct {
	docs   docstore.Store
	rooms  *roomstore.Store
	logger *zap.Logger
}

func NewRoomService(docs docstore.Store, rooms *roomstore.Store, logger *zap.Logger) RoomService {
	return &roomService{docs: docs, rooms: rooms, logger: logger}
}

type ListRoomsRequest struct {
	BuildingID string // optional
	Floor      *int   // optional
	Status     string // optional
}

// RoomWithOccupancy is the admin view of one room.
type RoomWithOccupancy struct {
	Room      domain.Room `json:"room"`
	Occupancy int         `json:"occupancy"`
}

type ListRoomsResponse struct {
	Items []RoomWithOccupancy `json:"items"`
}

type CreateRoomRequest struct {
	BuildingID   string
	BuildingName string
	RoomNumber   string
	Floor        int
	RoomType     string
	Rate         float64
}

type CreateRoomResponse struct {
	Room domain.Room `json:"room"`
}

type UpdateRoomRequest struct {
	RoomID   string
	RoomType string
	Rate     float64
}

type UpdateRoomResponse struct {
	Room domain.Room `json:"room"`
}

type DeleteRoomRequest struct {
	RoomID string
}

type SetRoomStatusRequest struct {
	RoomID string
	Status string
}

func (s *roomService) ListRooms(ctx context.Context, req ListRoomsRequest) (*ListRoomsResponse, error) {
	tenants, err := loadTenants(ctx, s.docs)
	if err != nil {
		return nil, err
	}

	items := []RoomWithOccupancy{}
	for _, room := range s.rooms.All() {
		if req.BuildingID != "" && room.BuildingID != req.BuildingID {
			continue
		}
		if req.Floor != nil && room.Floor != *req.Floor {
			continue
		}
		if req.Status != "" && room.Status != req.Status {
			continue
		}
		items = append(items, RoomWithOccupancy{Room: room, Occupancy: OccupancyOf(room.ID, tenants)})
	}
	return &ListRoomsResponse{Items: items}, nil
}

// CreateRoom uses the room number as the document id, so duplicates are
// rejected up front. Capacity always derives from the room type.
func (s *roomService) CreateRoom(ctx context.Context, req CreateRoomRequest) (*CreateRoomResponse, error) {
	if req.RoomNumber == "" {
		return nil, validationf("room number is required")
	}
	if req.BuildingID == "" {
		return nil, validationf("building is required")
	}

	if _, err := s.docs.Get(ctx, ColRooms, req.RoomNumber); err == nil {
		return nil, validationf("room %q already exists", req.RoomNumber)
	} else if !errors.Is(err, docstore.ErrNotFound) {
		return nil, fmt.Errorf("check existing room: %w", err)
	}

	room := domain.Room{
		ID:           req.RoomNumber,
		BuildingID:   req.BuildingID,
		BuildingName: req.BuildingName,
		RoomNumber:   req.RoomNumber,
		Floor:        req.Floor,
		RoomType:     req.RoomType,
		Capacity:     domain.CapacityForType(req.RoomType),
		Rate:         req.Rate,
		Status:       domain.RoomAvailable,
	}
	if err := s.docs.Set(ctx, ColRooms, room.ID, room.ToDoc()); err != nil {
		return nil, persistence("create room", err)
	}
	s.rooms.Upsert(room)
	s.logger.Info("room created", zap.String("room_id", room.ID), zap.String("type", room.RoomType))
	return &CreateRoomResponse{Room: room}, nil
}

func (s *roomService) UpdateRoom(ctx context.Context, req UpdateRoomRequest) (*UpdateRoomResponse, error) {
	if req.RoomID == "" {
		return nil, validationf("room id is required")
	}
	room, ok := s.rooms.Get(req.RoomID)
	if !ok {
		doc, err := s.docs.Get(ctx, ColRooms, req.RoomID)
		if err != nil {
			return nil, fmt.Errorf("load room %s: %w", req.RoomID, err)
		}
		room = domain.RoomFromDoc(doc)
	}

	room.RoomType = req.RoomType
	room.Capacity = domain.CapacityForType(req.RoomType)
	room.Rate = req.Rate

	fields := docstore.Document{
		"roomType": room.RoomType,
		"capacity": room.Capacity,
		"rate":     room.Rate,
	}
	if err := s.docs.Update(ctx, ColRooms, room.ID, fields); err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, err
		}
		return nil, persistence("update room", err)
	}
	s.rooms.Upsert(room)
	return &UpdateRoomResponse{Room: room}, nil
}

func (s *roomService) DeleteRoom(ctx context.Context, req DeleteRoomRequest) error {
	if req.RoomID == "" {
		return validationf("room id is required")
	}
	if err := s.docs.Delete(ctx, ColRooms, req.RoomID); err != nil {
		return persistence("delete room", err)
	}
	s.rooms.RemoveByID(req.RoomID)
	s.logger.Info("room deleted", zap.String("room_id", req.RoomID))
	return nil
}

// SetRoomStatus is the manual toggle. Releasing an Occupied room back to
// Available only ever happens here, never automatically.
func (s *roomService) SetRoomStatus(ctx context.Context, req SetRoomStatusRequest) (*domain.Room, error) {
	switch req.Status {
	case domain.RoomAvailable, domain.RoomOccupied, domain.RoomMaintenance:
	default:
		return nil, validationf("unknown room status %q", req.Status)
	}
	room, ok := s.rooms.Get(req.RoomID)
	if !ok {
		doc, err := s.docs.Get(ctx, ColRooms, req.RoomID)
		if err != nil {
			return nil, fmt.Errorf("load room %s: %w", req.RoomID, err)
		}
		room = domain.RoomFromDoc(doc)
	}

	if err := s.docs.Update(ctx, ColRooms, room.ID, docstore.Document{"status": req.Status}); err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, err
		}
		return nil, persistence("update room status", err)
	}
	room.Status = req.Status
	s.rooms.Upsert(room)
	s.logger.Info("room status set",
		zap.String("room_id", room.ID),
		zap.String("status", req.Status))
	return &room, nil
}

func (s *roomService) ReloadRooms(ctx context.Context) (int, error) {
	docs, err := s.docs.List(ctx, ColRooms)
	if err != nil {
		return 0, fmt.Errorf("reload rooms: %w", err)
	}
	rooms := make([]domain.Room, 0, len(docs))
	for _, doc := range docs {
		rooms = append(rooms, domain.RoomFromDoc(doc))
	}
	s.rooms.ReplaceAll(rooms)
	s.logger.Info("room cache reloaded", zap.Int("count", len(rooms)))
	return len(rooms), nil
}

func (s *roomService) ExportRooms(ctx context.Context) ([]byte, error) {
	resp, err := s.ListRooms(ctx, ListRoomsRequest{})
	if err != nil {
		return nil, err
	}
	return generateRoomListExcel(resp.Items)
}
