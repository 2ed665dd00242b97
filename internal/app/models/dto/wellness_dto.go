package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// WellnessPromptResponse is a mood prompt shown on a given screen
type WellnessPromptResponse struct {
	ID        uuid.UUID `json:"id"`
	Text      string    `json:"text"`
	Options   []string  `json:"options"`
	Screen    string    `json:"screen"`
	Frequency string    `json:"frequency"`
}

// CreateWellnessPromptRequest creates a mood prompt
type CreateWellnessPromptRequest struct {
	Text      string   `json:"text" binding:"required,min=2"`
	Options   []string `json:"options" binding:"required,min=1"`
	Screen    string   `json:"screen" binding:"required"`
	Frequency string   `json:"frequency" binding:"required"`
	Active    *bool    `json:"active"`
}

// RecordMoodRequest records the caller's mood for a prompt
type RecordMoodRequest struct {
	PromptID  uuid.UUID       `json:"promptId" binding:"required"`
	Mood      string          `json:"mood" binding:"required"`
	ExtraData json.RawMessage `json:"extraData"`
}

// MoodResponse is one recorded mood entry
type MoodResponse struct {
	ID        uuid.UUID `json:"id"`
	Mood      string    `json:"mood"`
	CreatedAt time.Time `json:"createdAt"`
}

// WellnessCenterResponse is a wellness center in list views
type WellnessCenterResponse struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Description *string         `json:"description"`
	Location    json.RawMessage `json:"location"`
	Contact     json.RawMessage `json:"contact"`
	Active      bool            `json:"active"`
}

// CreateWellnessCenterRequest creates a wellness center
type CreateWellnessCenterRequest struct {
	Name        string          `json:"name" binding:"required,min=2,max=150"`
	Description *string         `json:"description"`
	Location    json.RawMessage `json:"location"`
	Contact     json.RawMessage `json:"contact"`
}

// RequestTurnRequest requests a turn at a wellness center
type RequestTurnRequest struct {
	CenterID    uuid.UUID  `json:"centerId" binding:"required"`
	ScheduledAt *time.Time `json:"scheduledAt"`
}

// UpdateTurnStatusRequest moves a turn through its lifecycle
type UpdateTurnStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=waiting called completed no_show"`
}

// TurnResponse is one wellness turn
type TurnResponse struct {
	ID          uuid.UUID  `json:"id"`
	CenterID    uuid.UUID  `json:"centerId"`
	CenterName  string     `json:"centerName"`
	ScheduledAt *time.Time `json:"scheduledAt"`
	Status      string     `json:"status"`
	QRToken     *string    `json:"qrToken,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}
