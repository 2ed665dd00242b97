package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreateQuestionRequest creates a question targeted at one or more groups
type CreateQuestionRequest struct {
	Title         string      `json:"title" binding:"required,min=2,max=200"`
	Body          string      `json:"body" binding:"required"`
	Category      string      `json:"category" binding:"required"`
	Type          string      `json:"type" binding:"required,oneof=open single"`
	Options       []string    `json:"options"`
	RewardCredits int64       `json:"rewardCredits" binding:"omitempty,min=0"`
	RewardCoins   int64       `json:"rewardCoins" binding:"omitempty,min=0"`
	GroupIDs      []uuid.UUID `json:"groupIds" binding:"required,min=1"`
}

// UpdateQuestionRequest updates question fields; nil fields are left unchanged
type UpdateQuestionRequest struct {
	Title         *string  `json:"title"`
	Body          *string  `json:"body"`
	Category      *string  `json:"category"`
	Options       []string `json:"options"`
	RewardCredits *int64   `json:"rewardCredits"`
	RewardCoins   *int64   `json:"rewardCoins"`
	Active        *bool    `json:"active"`
}

// QuestionTargetsRequest replaces a question's group targets
type QuestionTargetsRequest struct {
	GroupIDs []uuid.UUID `json:"groupIds" binding:"required"`
}

// AnswerQuestionRequest answers an active question
type AnswerQuestionRequest struct {
	Selected []int   `json:"selected"`
	Text     *string `json:"text"`
}

// QuestionGroupRef names a group a question is targeted at
type QuestionGroupRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// QuestionResponseDTO is a question as seen in list and detail views
type QuestionResponseDTO struct {
	ID            uuid.UUID          `json:"id"`
	Title         string             `json:"title"`
	Body          string             `json:"body"`
	Category      string             `json:"category"`
	Type          string             `json:"type"`
	Options       []string           `json:"options"`
	RewardCredits int64              `json:"rewardCredits"`
	RewardCoins   int64              `json:"rewardCoins"`
	Active        bool               `json:"active"`
	IsGlobal      bool               `json:"isGlobal"`
	Groups        []QuestionGroupRef `json:"groups"`
	Answered      bool               `json:"answered"`
	CreatedAt     time.Time          `json:"createdAt"`
}

// QuestionAnswerResponse is returned after a successful answer
type QuestionAnswerResponse struct {
	QuestionID       uuid.UUID `json:"question_id"`
	CreditsAwarded   int64     `json:"credits_awarded"`
	CoinsAwarded     int64     `json:"coins_awarded"`
	NewCreditBalance int64     `json:"new_credit_balance"`
}

// QuestionCreditsResponse is the caller's current credit balance
type QuestionCreditsResponse struct {
	Balance int64 `json:"balance"`
}

// QuestionResponseItem is one student answer as seen by the question owner
type QuestionResponseItem struct {
	ID             uuid.UUID `json:"id"`
	UserID         uuid.UUID `json:"userId"`
	UserEmail      string    `json:"userEmail"`
	UserName       *string   `json:"userName"`
	Answer         any       `json:"answer"`
	CreditsAwarded int64     `json:"creditsAwarded"`
	CoinsAwarded   int64     `json:"coinsAwarded"`
	CreatedAt      time.Time `json:"createdAt"`
}
