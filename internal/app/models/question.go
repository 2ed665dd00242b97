package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// QuestionType is the answer format of a community question
type QuestionType string

const (
	QuestionTypeOpen   QuestionType = "open"
	QuestionTypeSingle QuestionType = "single"
)

// Question is a community question, global when it has zero group targets
type Question struct {
	ID            uuid.UUID    `json:"id"`
	Title         string       `json:"title"`
	Body          string       `json:"body"`
	Category      string       `json:"category"`
	Type          QuestionType `json:"type"`
	Options       []string     `json:"options"`
	RewardCredits int64        `json:"rewardCredits"`
	RewardCoins   int64        `json:"rewardCoins"`
	Active        bool         `json:"active"`
	CreatedBy     uuid.UUID    `json:"createdBy"`
	CreatedAt     time.Time    `json:"createdAt"`
}

// QuestionTarget links a question to a group, unique per pair
type QuestionTarget struct {
	ID         uuid.UUID `json:"id"`
	QuestionID uuid.UUID `json:"questionId"`
	GroupID    uuid.UUID `json:"groupId"`
	CreatedAt  time.Time `json:"createdAt"`
}

// QuestionResponse is one answer per (question, user). Reward amounts are
// frozen from the question at answer time.
type QuestionResponse struct {
	ID             uuid.UUID       `json:"id"`
	QuestionID     uuid.UUID       `json:"questionId"`
	UserID         uuid.UUID       `json:"userId"`
	Answer         json.RawMessage `json:"answer"`
	CreditsAwarded int64           `json:"creditsAwarded"`
	CoinsAwarded   int64           `json:"coinsAwarded"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// QuestionCredit is a mutable per-user credit accumulator. Unlike the coins
// ledger this balance is updated in place.
type QuestionCredit struct {
	UserID    uuid.UUID `json:"userId"`
	Balance   int64     `json:"balance"`
	UpdatedAt time.Time `json:"updatedAt"`
}
