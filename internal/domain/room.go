package domain

// Room statuses. A room never reverts from Occupied to Available automatically;
// release is a manual admin toggle.
const (
	RoomAvailable   = "Available"
	RoomOccupied    = "Occupied"
	RoomMaintenance = "Maintenance"
)

// Room types.
const (
	RoomTypeSingle  = "Single"
	RoomTypeSharedD = "Shared(D)"
	RoomTypeShared  = "Shared"
)

// Room is a physical unit. Capacity is derived from the room type and stored
// denormalized; status must be recomputed from occupancy, never hand-set
// inconsistently with it.
type Room struct {
	ID           string  `json:"id"`
	BuildingID   string  `json:"building_id"`
	BuildingName string  `json:"building_name"`
	RoomNumber   string  `json:"room_number"`
	Floor        int     `json:"floor"`
	RoomType     string  `json:"room_type"`
	Capacity     int     `json:"capacity"`
	Rate         float64 `json:"rate"`
	Status       string  `json:"status"`
}

// CapacityForType maps a room type to its capacity. Unknown or empty types
// count as Single.
func CapacityForType(roomType string) int {
	switch roomType {
	case RoomTypeSharedD:
		return 2
	case RoomTypeShared:
		return 4
	default:
		return 1
	}
}

func (r Room) ToDoc() map[string]any {
	return map[string]any{
		"id":           r.ID,
		"buildingId":   r.BuildingID,
		"buildingName": r.BuildingName,
		"roomNumber":   r.RoomNumber,
		"floor":        r.Floor,
		"roomType":     r.RoomType,
		"capacity":     r.Capacity,
		"rate":         r.Rate,
		"status":       r.Status,
	}
}

func RoomFromDoc(m map[string]any) Room {
	r := Room{
		ID:           docString(m, "id"),
		BuildingID:   docString(m, "buildingId"),
		BuildingName: docString(m, "buildingName"),
		RoomNumber:   docString(m, "roomNumber"),
		Floor:        docInt(m, "floor"),
		RoomType:     docString(m, "roomType"),
		Capacity:     docInt(m, "capacity"),
		Rate:         docFloat(m, "rate"),
		Status:       docString(m, "status"),
	}
	if r.Status == "" {
		r.Status = RoomAvailable
	}
	if r.Capacity == 0 {
		r.Capacity = CapacityForType(r.RoomType)
	}
	return r
}
