package domain

import "time"

// Contract binds a tenant to a room for a date range and rent amount. It is
// created at most once per tenant and is immutable afterwards.
type Contract struct {
	ID           string    `json:"id"`
	TenantID     string    `json:"tenant_id"`
	RoomID       string    `json:"room_id"`
	ContractType string    `json:"contract_type"`
	RentAmount   float64   `json:"rent_amount"`
	DateSigned   time.Time `json:"date_signed"`
	StartDate    time.Time `json:"start_date"`
	EndDate      time.Time `json:"end_date"`
}

func (c Contract) ToDoc() map[string]any {
	return map[string]any{
		"id":           c.ID,
		"tenantId":     c.TenantID,
		"roomId":       c.RoomID,
		"contractType": c.ContractType,
		"rentAmount":   c.RentAmount,
		"dateSigned":   timeDoc(c.DateSigned),
		"startDate":    timeDoc(c.StartDate),
		"endDate":      timeDoc(c.EndDate),
	}
}

func ContractFromDoc(m map[string]any) Contract {
	return Contract{
		ID:           docString(m, "id"),
		TenantID:     docString(m, "tenantId"),
		RoomID:       docString(m, "roomId"),
		ContractType: docString(m, "contractType"),
		RentAmount:   docFloat(m, "rentAmount"),
		DateSigned:   docTime(m, "dateSigned"),
		StartDate:    docTime(m, "startDate"),
		EndDate:      docTime(m, "endDate"),
	}
}
