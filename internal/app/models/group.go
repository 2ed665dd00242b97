package models

import (
	"time"

	"github.com/google/uuid"
)

// Membership role labels
const (
	GroupRoleOwner   = "owner"
	GroupRoleStudent = "student"
)

// Group is a study group owned by its creator
type Group struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Subject   *string   `json:"subject"`
	CreatedBy uuid.UUID `json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
}

// GroupMembership links a user to a group, unique per (group, user)
type GroupMembership struct {
	ID          uuid.UUID `json:"id"`
	GroupID     uuid.UUID `json:"groupId"`
	UserID      uuid.UUID `json:"userId"`
	RoleInGroup string    `json:"roleInGroup"`
	CreatedAt   time.Time `json:"createdAt"`
}

// GroupMember is a membership joined with the member's user info
type GroupMember struct {
	GroupMembership
	Email    string  `json:"email"`
	FullName *string `json:"fullName"`
}
