package domain

import "time"

// Maintenance request statuses.
const (
	MaintenancePending    = "Pending"
	MaintenanceInProgress = "In Progress"
	MaintenanceCompleted  = "Completed"
)

// MaintenanceRequest is a tenant-submitted repair ticket.
type MaintenanceRequest struct {
	ID               string    `json:"id"`
	TenantID         string    `json:"tenant_id"`
	RoomID           string    `json:"room_id"`
	IssueDescription string    `json:"issue_description"`
	Status           string    `json:"status"`
	DateSubmitted    time.Time `json:"date_submitted"`
}

func (r MaintenanceRequest) ToDoc() map[string]any {
	return map[string]any{
		"id":               r.ID,
		"tenantId":         r.TenantID,
		"roomId":           r.RoomID,
		"issueDescription": r.IssueDescription,
		"status":           r.Status,
		"dateSubmitted":    timeDoc(r.DateSubmitted),
	}
}

func MaintenanceRequestFromDoc(m map[string]any) MaintenanceRequest {
	return MaintenanceRequest{
		ID:               docString(m, "id"),
		TenantID:         docString(m, "tenantId"),
		RoomID:           docString(m, "roomId"),
		IssueDescription: docString(m, "issueDescription"),
		Status:           docString(m, "status"),
		DateSubmitted:    docTime(m, "dateSubmitted"),
	}
}
