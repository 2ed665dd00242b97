package dto

import (
	"encoding/json"

	"github.com/google/uuid"
)

// QuickActionResponse is one home-screen shortcut visible to the caller
type QuickActionResponse struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Subtitle    *string   `json:"subtitle"`
	Icon        *string   `json:"icon"`
	TargetRoute string    `json:"targetRoute"`
	OrderIndex  int       `json:"orderIndex"`
}

// UpsertQuickActionRequest creates or updates a quick action
type UpsertQuickActionRequest struct {
	Title        string  `json:"title" binding:"required,min=1,max=100"`
	Subtitle     *string `json:"subtitle"`
	Icon         *string `json:"icon"`
	TargetRoute  string  `json:"targetRoute" binding:"required"`
	AllowedRoles string  `json:"allowedRoles" binding:"required"`
	OrderIndex   int     `json:"orderIndex"`
	Active       *bool   `json:"active"`
}

// FeatureFlagResponse is one feature flag
type FeatureFlagResponse struct {
	Key         string          `json:"key"`
	Description *string         `json:"description"`
	Value       json.RawMessage `json:"value"`
}

// UpsertFeatureFlagRequest sets a feature flag by key
type UpsertFeatureFlagRequest struct {
	Description *string         `json:"description"`
	Value       json.RawMessage `json:"value" binding:"required"`
}
