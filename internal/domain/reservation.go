package domain

import "time"

// Reservation statuses.
const (
	ReservationPending  = "Pending"
	ReservationApproved = "Approved"
	ReservationRejected = "Rejected"
)

// Reservation is a prospective tenant's application. Approving one creates the
// tenant account; the reservation itself is kept for audit.
type Reservation struct {
	ID                  string    `json:"id"`
	FirstName           string    `json:"first_name"`
	LastName            string    `json:"last_name"`
	StudentID           string    `json:"student_id"`
	Email               string    `json:"email"`
	Gender              string    `json:"gender"`
	CurrentYear         string    `json:"current_year"`
	ContractType        string    `json:"contract_type"`
	PreferredMoveInDate time.Time `json:"preferred_move_in_date"`
	Status              string    `json:"status"`
}

func (r Reservation) ToDoc() map[string]any {
	return map[string]any{
		"id":                  r.ID,
		"firstName":           r.FirstName,
		"lastName":            r.LastName,
		"studentId":           r.StudentID,
		"email":               r.Email,
		"gender":              r.Gender,
		"currentYear":         r.CurrentYear,
		"contractType":        r.ContractType,
		"preferredMoveInDate": timeDoc(r.PreferredMoveInDate),
		"status":              r.Status,
	}
}

func ReservationFromDoc(m map[string]any) Reservation {
	return Reservation{
		ID:                  docString(m, "id"),
		FirstName:           docString(m, "firstName"),
		LastName:            docString(m, "lastName"),
		StudentID:           docString(m, "studentId"),
		Email:               docString(m, "email"),
		Gender:              docString(m, "gender"),
		CurrentYear:         docString(m, "currentYear"),
		ContractType:        docString(m, "contractType"),
		PreferredMoveInDate: docTime(m, "preferredMoveInDate"),
		Status:              docString(m, "status"),
	}
}
