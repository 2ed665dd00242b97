package models

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
)

// QuickAction is a configurable home-screen shortcut filtered by role
type QuickAction struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	Subtitle     *string   `json:"subtitle"`
	Icon         *string   `json:"icon"`
	TargetRoute  string    `json:"targetRoute"`
	AllowedRoles string    `json:"allowedRoles"`
	OrderIndex   int       `json:"orderIndex"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// AllowsRole reports whether the action's comma-separated role list contains role
func (q *QuickAction) AllowsRole(role Role) bool {
	for _, r := range strings.Split(q.AllowedRoles, ",") {
		if strings.TrimSpace(r) == string(role) {
			return true
		}
	}
	return false
}

// FeatureFlag is a keyed configuration value
type FeatureFlag struct {
	Key         string          `json:"key"`
	Description *string         `json:"description"`
	Value       json.RawMessage `json:"value"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}
