package service

import "dormhub/internal/domain"

// OccupancyOf counts the tenants currently assigned to roomID. Unassigned
// tenants never count toward any room, so an empty roomID is 0 by definition.
func OccupancyOf(roomID string, tenants []domain.Tenant) int {
	if roomID == "" {
		return 0
	}
	count := 0
	for _, t := range tenants {
		if t.RoomID == roomID {
			count++
		}
	}
	return count
}

// IsFull reports whether the room's occupancy has reached its capacity.
func IsFull(room domain.Room, tenants []domain.Tenant) bool {
	return OccupancyOf(room.ID, tenants) >= room.Capacity
}
