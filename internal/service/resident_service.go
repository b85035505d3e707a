package service

import (
	"context"
	"sort"
	"strings"

	"dormhub/internal/docstore"
	"dormhub/internal/domain"
	"dormhub/internal/roomstore"

	"go.uber.org/zap"
)

// ResidentService serves the admin residents screen: searchable, room-aware
// listing of tenant accounts.
type ResidentService interface {
	ListResidents(ctx context.Context, req ListResidentsRequest) (*ListResidentsResponse, error)
	GetResident(ctx context.Context, tenantID string) (*ResidentItem, error)
}

type residentService struct {
	docs   docstore.Store
	rooms  *roomstore.Store
	logger *zap.Logger
}

func NewResidentService(docs docstore.Store, rooms *roomstore.Store, logger *zap.Logger) ResidentService {
	return &residentService{docs: docs, rooms: rooms, logger: logger}
}

type ListResidentsRequest struct {
	Search     string // matches name, user id, email
	BuildingID string // optional, via the resident's room
	Floor      *int   // optional
	RoomType   string // optional
}

// ResidentItem joins a tenant with their room (when assigned) and a derived
// contract status.
type ResidentItem struct {
	Tenant         domain.Tenant `json:"tenant"`
	Room           *domain.Room  `json:"room,omitempty"`
	ContractStatus string        `json:"contract_status"`
}

type ListResidentsResponse struct {
	Items []ResidentItem `json:"items"`
}

func (s *residentService) ListResidents(ctx context.Context, req ListResidentsRequest) (*ListResidentsResponse, error) {
	tenants, err := loadTenants(ctx, s.docs)
	if err != nil {
		return nil, err
	}

	search := strings.ToLower(strings.TrimSpace(req.Search))
	items := []ResidentItem{}
	for _, tenant := range tenants {
		if search != "" && !matchesSearch(tenant, search) {
			continue
		}

		var room *domain.Room
		if tenant.RoomID != "" {
			if r, ok := s.rooms.Get(tenant.RoomID); ok {
				room = &r
			}
		}

		// Room-based filters exclude tenants without a matching room.
		if req.BuildingID != "" && (room == nil || room.BuildingID != req.BuildingID) {
			continue
		}
		if req.Floor != nil && (room == nil || room.Floor != *req.Floor) {
			continue
		}
		if req.RoomType != "" && (room == nil || room.RoomType != req.RoomType) {
			continue
		}

		items = append(items, ResidentItem{
			Tenant:         tenant,
			Room:           room,
			ContractStatus: contractStatus(tenant),
		})
	}

	sort.Slice(items, func(i, j int) bool {
		return items[i].Tenant.FullName < items[j].Tenant.FullName
	})
	return &ListResidentsResponse{Items: items}, nil
}

func (s *residentService) GetResident(ctx context.Context, tenantID string) (*ResidentItem, error) {
	tenant, err := loadTenant(ctx, s.docs, tenantID)
	if err != nil {
		return nil, err
	}
	item := &ResidentItem{Tenant: tenant, ContractStatus: contractStatus(tenant)}
	if tenant.RoomID != "" {
		if r, ok := s.rooms.Get(tenant.RoomID); ok {
			item.Room = &r
		}
	}
	return item, nil
}

func matchesSearch(t domain.Tenant, search string) bool {
	name := strings.ToLower(t.FirstName + " " + t.LastName)
	full := strings.ToLower(t.FullName)
	return strings.Contains(name, search) ||
		strings.Contains(full, search) ||
		strings.Contains(strings.ToLower(t.UserID), search) ||
		strings.Contains(strings.ToLower(t.Email), search)
}

func contractStatus(t domain.Tenant) string {
	if t.ContractID != "" {
		return "Active"
	}
	return "No Contract"
}
