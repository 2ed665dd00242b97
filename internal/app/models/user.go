package models

import (
	"time"

	"github.com/google/uuid"
)

// Role is the closed set of user roles
type Role string

const (
	RoleStudent        Role = "student"
	RoleProfessor      Role = "professor"
	RoleCommunications Role = "communications"
	RoleMarketManager  Role = "market_manager"
	RoleSuperuser      Role = "superuser"
)

// AllRoles lists every valid role
var AllRoles = []Role{
	RoleStudent,
	RoleProfessor,
	RoleCommunications,
	RoleMarketManager,
	RoleSuperuser,
}

// IsValid reports whether r is one of the known roles
func (r Role) IsValid() bool {
	for _, role := range AllRoles {
		if r == role {
			return true
		}
	}
	return false
}

func (r Role) String() string {
	return string(r)
}

// User represents a platform account
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	FullName     *string   `json:"fullName"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"createdAt"`
}
