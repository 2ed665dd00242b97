package models

import (
	"time"

	"github.com/google/uuid"
)

// InviteCode grants group membership to students who redeem it
type InviteCode struct {
	ID        uuid.UUID  `json:"id"`
	GroupID   uuid.UUID  `json:"groupId"`
	Code      string     `json:"code"`
	ExpiresAt *time.Time `json:"expiresAt"`
	MaxUses   *int       `json:"maxUses"`
	Uses      int        `json:"uses"`
	IsActive  bool       `json:"isActive"`
	CreatedBy uuid.UUID  `json:"createdBy"`
	CreatedAt time.Time  `json:"createdAt"`
}

// IsExpired reports whether the invite has passed its expiry, if any
func (i *InviteCode) IsExpired(now time.Time) bool {
	return i.ExpiresAt != nil && i.ExpiresAt.Before(now)
}

// IsExhausted reports whether the invite has used up its allowed redemptions
func (i *InviteCode) IsExhausted() bool {
	return i.MaxUses != nil && i.Uses >= *i.MaxUses
}
