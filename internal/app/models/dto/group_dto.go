package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreateGroupRequest creates a new study group
type CreateGroupRequest struct {
	Name    string  `json:"name" binding:"required,min=2,max=100"`
	Subject *string `json:"subject"`
}

// UpdateGroupRequest updates group fields; nil fields are left unchanged
type UpdateGroupRequest struct {
	Name    *string `json:"name"`
	Subject *string `json:"subject"`
}

// CreateInviteRequest creates an additional invite for a group
type CreateInviteRequest struct {
	ExpiresAt *time.Time `json:"expiresAt"`
	MaxUses   *int       `json:"maxUses" binding:"omitempty,min=1"`
}

// InviteCodeResponse returns the generated invite code
type InviteCodeResponse struct {
	Code string `json:"code"`
}

// JoinGroupRequest redeems an invite code
type JoinGroupRequest struct {
	Code string `json:"code" binding:"required"`
}

// JoinGroupResponse confirms a join; joining an already-joined group
// succeeds as a no-op
type JoinGroupResponse struct {
	Joined bool `json:"joined"`
}

// GroupQuestionSummary is a question linked to a group in detail views
type GroupQuestionSummary struct {
	ID            uuid.UUID `json:"id"`
	Title         string    `json:"title"`
	Category      string    `json:"category"`
	RewardCredits int64     `json:"rewardCredits"`
}

// GroupResponse is the group list item
type GroupResponse struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Subject      *string   `json:"subject"`
	CreatedAt    time.Time `json:"createdAt"`
	StudentCount int       `json:"studentCount"`
	OwnerEmail   string    `json:"ownerEmail"`
	OwnerName    *string   `json:"ownerName"`
}

// GroupDetailResponse extends GroupResponse with invite and question info
type GroupDetailResponse struct {
	GroupResponse
	InviteCode *string                `json:"inviteCode,omitempty"`
	WebJoin    *string                `json:"webJoin,omitempty"`
	DeepLink   *string                `json:"deepLink,omitempty"`
	QRPNG      *string                `json:"qrPng,omitempty"`
	Questions  []GroupQuestionSummary `json:"questions"`
}
