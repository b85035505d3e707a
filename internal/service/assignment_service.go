package service

import (
	"context"
	"fmt"
	"time"

	"dormhub/internal/docstore"
	"dormhub/internal/domain"
	"dormhub/internal/roomstore"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AssignmentService assigns tenants to rooms and creates their contracts,
// keeping room status consistent with occupancy.
type AssignmentService interface {
	SelectableRooms(ctx context.Context, req SelectableRoomsRequest) (*SelectableRoomsResponse, error)
	AssignRoom(ctx context.Context, req AssignRoomRequest) (*AssignRoomResponse, error)
}

type assignmentService struct {
	docs                docstore.Store
	rooms               *roomstore.Store
	defaultContractType string
	now                 func() time.Time
	logger              *zap.Logger
}

func NewAssignmentService(docs docstore.Store, rooms *roomstore.Store, defaultContractType string, logger *zap.Logger) AssignmentService {
	return &assignmentService{
		docs:                docs,
		rooms:               rooms,
		defaultContractType: defaultContractType,
		now:                 time.Now,
		logger:              logger,
	}
}

// ============================================
// Request/Response DTOs
// ============================================

type SelectableRoomsRequest struct {
	TenantID string
}

// SelectableRoom pairs a room with its occupancy at snapshot time.
type SelectableRoom struct {
	Room      domain.Room `json:"room"`
	Occupancy int         `json:"occupancy"`
}

type SelectableRoomsResponse struct {
	Items []SelectableRoom `json:"items"`
}

type AssignRoomRequest struct {
	TenantID string
	RoomID   string
	// ContractEndDate is required only when the tenant has no contract yet.
	ContractEndDate time.Time
}

type AssignRoomResponse struct {
	Tenant domain.Tenant `json:"tenant"`
	Room   domain.Room   `json:"room"`
	// Contract is set only when this call created one.
	Contract *domain.Contract `json:"contract,omitempty"`
}

// ============================================
// Operations
// ============================================

// SelectableRooms returns the rooms a tenant may be assigned to: rooms that
// are Available with occupancy below capacity, plus the tenant's current room
// so a reassignment dialog can show the existing choice.
func (s *assignmentService) SelectableRooms(ctx context.Context, req SelectableRoomsRequest) (*SelectableRoomsResponse, error) {
	tenant, err := s.loadTenant(ctx, req.TenantID)
	if err != nil {
		return nil, err
	}
	tenants, err := s.loadTenants(ctx)
	if err != nil {
		return nil, err
	}

	items := []SelectableRoom{}
	for _, room := range s.rooms.All() {
		occ := OccupancyOf(room.ID, tenants)
		selectable := room.Status == domain.RoomAvailable && occ < room.Capacity
		if room.ID == tenant.RoomID {
			selectable = true
		}
		if selectable {
			items = append(items, SelectableRoom{Room: room, Occupancy: occ})
		}
	}
	return &SelectableRoomsResponse{Items: items}, nil
}

// AssignRoom runs the assignment workflow: validate, commit the tenant's room
// change, create the contract if absent, then recompute the room's status.
// The three writes are not wrapped in a transaction; a failure partway leaves
// the earlier writes in place and surfaces a PersistenceError.
func (s *assignmentService) AssignRoom(ctx context.Context, req AssignRoomRequest) (*AssignRoomResponse, error) {
	if req.RoomID == "" {
		return nil, validationf("no room selected")
	}

	tenant, err := s.loadTenant(ctx, req.TenantID)
	if err != nil {
		return nil, err
	}

	room, ok := s.rooms.Get(req.RoomID)
	if !ok {
		doc, err := s.docs.Get(ctx, ColRooms, req.RoomID)
		if err != nil {
			return nil, fmt.Errorf("load room %s: %w", req.RoomID, err)
		}
		room = domain.RoomFromDoc(doc)
	}

	// All validation happens before the first write.
	needsContract := tenant.ContractID == ""
	if needsContract && req.ContractEndDate.IsZero() {
		return nil, validationf("contract end date is required")
	}

	tenants, err := s.loadTenants(ctx)
	if err != nil {
		return nil, err
	}

	// Commit the room change only when it actually changes.
	if tenant.RoomID != room.ID {
		err := s.docs.Update(ctx, ColUsers, tenant.UserID, docstore.Document{"roomID": room.ID})
		if err != nil {
			return nil, persistence("update tenant room", err)
		}
		tenant.RoomID = room.ID
		s.logger.Info("tenant room updated",
			zap.String("tenant_id", tenant.UserID),
			zap.String("room_id", room.ID))
	}

	resp := &AssignRoomResponse{}
	if needsContract {
		now := s.now()
		contract := domain.Contract{
			ID:           uuid.NewString(),
			TenantID:     tenant.UserID,
			RoomID:       room.ID,
			ContractType: s.defaultContractType,
			RentAmount:   room.Rate,
			DateSigned:   now,
			StartDate:    now,
			EndDate:      req.ContractEndDate,
		}
		if err := s.docs.Set(ctx, ColContracts, contract.ID, contract.ToDoc()); err != nil {
			return nil, persistence("create contract", err)
		}
		if err := s.docs.Update(ctx, ColUsers, tenant.UserID, docstore.Document{"contractID": contract.ID}); err != nil {
			return nil, persistence("link contract to tenant", err)
		}
		tenant.ContractID = contract.ID
		resp.Contract = &contract
		s.logger.Info("contract created",
			zap.String("contract_id", contract.ID),
			zap.String("tenant_id", tenant.UserID),
			zap.Float64("rent", contract.RentAmount))
	}

	// Recompute occupancy for the assigned room with the tenant's move
	// applied. A full room flips to Occupied; it never flips back here.
	for i := range tenants {
		if tenants[i].UserID == tenant.UserID {
			tenants[i].RoomID = tenant.RoomID
		}
	}
	if OccupancyOf(room.ID, tenants) >= room.Capacity && room.Status != domain.RoomOccupied {
		if err := s.docs.Update(ctx, ColRooms, room.ID, docstore.Document{"status": domain.RoomOccupied}); err != nil {
			return nil, persistence("update room status", err)
		}
		room.Status = domain.RoomOccupied
		s.rooms.Upsert(room)
		s.logger.Info("room is now full", zap.String("room_id", room.ID))
	}

	resp.Tenant = tenant
	resp.Room = room
	return resp, nil
}

// ============================================
// Helpers shared by tenant-facing services
// ============================================

func (s *assignmentService) loadTenant(ctx context.Context, tenantID string) (domain.Tenant, error) {
	return loadTenant(ctx, s.docs, tenantID)
}

func (s *assignmentService) loadTenants(ctx context.Context) ([]domain.Tenant, error) {
	return loadTenants(ctx, s.docs)
}

func loadTenant(ctx context.Context, docs docstore.Store, tenantID string) (domain.Tenant, error) {
	if tenantID == "" {
		return domain.Tenant{}, validationf("tenant id is required")
	}
	doc, err := docs.Get(ctx, ColUsers, tenantID)
	if err != nil {
		return domain.Tenant{}, fmt.Errorf("load tenant %s: %w", tenantID, err)
	}
	if doc["userType"] != string(domain.RoleTenant) {
		return domain.Tenant{}, fmt.Errorf("user %s: %w", tenantID, docstore.ErrNotFound)
	}
	return domain.TenantFromDoc(doc), nil
}

func loadTenants(ctx context.Context, docs docstore.Store) ([]domain.Tenant, error) {
	items, err := docs.Query(ctx, ColUsers, "userType", string(domain.RoleTenant))
	if err != nil {
		return nil, fmt.Errorf("load tenants: %w", err)
	}
	tenants := make([]domain.Tenant, 0, len(items))
	for _, doc := range items {
		tenants = append(tenants, domain.TenantFromDoc(doc))
	}
	return tenants, nil
}
