package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Role is the closed set of account roles. Routing between the tenant and
// admin workflows switches exhaustively on this value.
type Role string

const (
	RoleTenant Role = "Tenant"
	RoleAdmin  Role = "Admin"
)

// ParseRole maps the stored userType field onto the role enum.
func ParseRole(userType string) (Role, error) {
	switch userType {
	case string(RoleTenant):
		return RoleTenant, nil
	case string(RoleAdmin):
		return RoleAdmin, nil
	default:
		return "", fmt.Errorf("unknown user type %q", userType)
	}
}

// Tenant is a resident account. RoomID and ContractID are empty until a room
// is assigned and a contract created; a tenant has at most one of each.
type Tenant struct {
	UserID       string `json:"user_id"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	FullName     string `json:"full_name"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	GenderType   string `json:"gender_type"`
	StudentID    string `json:"student_id"`
	CurrentYear  string `json:"current_year"`
	RoomID       string `json:"room_id"`
	ContractID   string `json:"contract_id"`
}

// Admin is a staff account.
type Admin struct {
	UserID       string `json:"user_id"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	FullName     string `json:"full_name"`
	StaffRole    string `json:"staff_role"`
}

// Account is the tagged variant returned by authentication: exactly one of
// Tenant or Admin is set, matching Role.
type Account struct {
	Role   Role    `json:"role"`
	Tenant *Tenant `json:"tenant,omitempty"`
	Admin  *Admin  `json:"admin,omitempty"`
}

// UserID returns the identifier of whichever payload is set.
func (a Account) UserID() string {
	switch a.Role {
	case RoleTenant:
		if a.Tenant != nil {
			return a.Tenant.UserID
		}
	case RoleAdmin:
		if a.Admin != nil {
			return a.Admin.UserID
		}
	}
	return ""
}

// HashPassword hashes a plaintext password with SHA-256, hex encoded.
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

func (t Tenant) ToDoc() map[string]any {
	doc := map[string]any{
		"userId":       t.UserID,
		"email":        t.Email,
		"passwordHash": t.PasswordHash,
		"fullName":     t.FullName,
		"firstName":    t.FirstName,
		"lastName":     t.LastName,
		"genderType":   t.GenderType,
		"studentID":    t.StudentID,
		"currentYear":  t.CurrentYear,
		"userType":     string(RoleTenant),
	}
	doc["roomID"] = nullable(t.RoomID)
	doc["contractID"] = nullable(t.ContractID)
	return doc
}

func TenantFromDoc(m map[string]any) Tenant {
	return Tenant{
		UserID:       docString(m, "userId"),
		Email:        docString(m, "email"),
		PasswordHash: docString(m, "passwordHash"),
		FullName:     docString(m, "fullName"),
		FirstName:    docString(m, "firstName"),
		LastName:     docString(m, "lastName"),
		GenderType:   docString(m, "genderType"),
		StudentID:    docString(m, "studentID"),
		CurrentYear:  docString(m, "currentYear"),
		RoomID:       docString(m, "roomID"),
		ContractID:   docString(m, "contractID"),
	}
}

func (a Admin) ToDoc() map[string]any {
	return map[string]any{
		"userId":       a.UserID,
		"email":        a.Email,
		"passwordHash": a.PasswordHash,
		"fullName":     a.FullName,
		"staffRole":    a.StaffRole,
		"userType":     string(RoleAdmin),
	}
}

func AdminFromDoc(m map[string]any) Admin {
	return Admin{
		UserID:       docString(m, "userId"),
		Email:        docString(m, "email"),
		PasswordHash: docString(m, "passwordHash"),
		FullName:     docString(m, "fullName"),
		StaffRole:    docString(m, "staffRole"),
	}
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
