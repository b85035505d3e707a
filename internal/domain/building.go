package domain

// Building is an independent aggregate; rooms reference it by id.
type Building struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Floors     int    `json:"floors"`
	TotalRooms int    `json:"total_rooms"`
}

func (b Building) ToDoc() map[string]any {
	return map[string]any{
		"id":         b.ID,
		"name":       b.Name,
		"floors":     b.Floors,
		"totalRooms": b.TotalRooms,
	}
}

func BuildingFromDoc(m map[string]any) Building {
	return Building{
		ID:         docString(m, "id"),
		Name:       docString(m, "name"),
		Floors:     docInt(m, "floors"),
		TotalRooms: docInt(m, "totalRooms"),
	}
}
