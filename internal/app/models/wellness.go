package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Wellness turn statuses. The status is an administrative direct-set field,
// there is no automatic transition between these values.
const (
	TurnStatusWaiting   = "waiting"
	TurnStatusCalled    = "called"
	TurnStatusCompleted = "completed"
	TurnStatusNoShow    = "no_show"
)

// ValidTurnStatuses lists the accepted wellness turn statuses
var ValidTurnStatuses = []string{
	TurnStatusWaiting,
	TurnStatusCalled,
	TurnStatusCompleted,
	TurnStatusNoShow,
}

// ValidTurnStatus reports whether status is an accepted turn status
func ValidTurnStatus(status string) bool {
	for _, s := range ValidTurnStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// WellnessPrompt is a mood check-in question shown on a given screen
type WellnessPrompt struct {
	ID        uuid.UUID `json:"id"`
	Text      string    `json:"text"`
	Options   []string  `json:"options"`
	Screen    string    `json:"screen"`
	Frequency string    `json:"frequency"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
}

// UserMood is one recorded answer to a wellness prompt
type UserMood struct {
	ID        uuid.UUID       `json:"id"`
	UserID    uuid.UUID       `json:"userId"`
	PromptID  uuid.UUID       `json:"promptId"`
	Mood      string          `json:"mood"`
	ExtraData json.RawMessage `json:"extraData"`
	CreatedAt time.Time       `json:"createdAt"`
}

// WellnessCenter is a physical care location
type WellnessCenter struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Description *string         `json:"description"`
	Location    json.RawMessage `json:"location"`
	Contact     json.RawMessage `json:"contact"`
	Active      bool            `json:"active"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// WellnessTurn is an appointment slot at a center
type WellnessTurn struct {
	ID          uuid.UUID  `json:"id"`
	CenterID    uuid.UUID  `json:"centerId"`
	UserID      uuid.UUID  `json:"userId"`
	ScheduledAt *time.Time `json:"scheduledAt"`
	Status      string     `json:"status"`
	QRToken     *string    `json:"qrToken"`
	CreatedAt   time.Time  `json:"createdAt"`
}
