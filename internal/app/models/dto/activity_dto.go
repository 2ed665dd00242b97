package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreateActivityRequest creates a new activity with its group targets
type CreateActivityRequest struct {
	Title           string      `json:"title" binding:"required,min=2,max=200"`
	Description     *string     `json:"description"`
	QText           string      `json:"qText" binding:"required"`
	QType           string      `json:"qType" binding:"required,oneof=single open"`
	QOptions        []string    `json:"qOptions"`
	QCorrect        []int       `json:"qCorrect"`
	CoinsOnComplete int64       `json:"coinsOnComplete" binding:"omitempty,min=0"`
	StartAt         *time.Time  `json:"startAt"`
	EndAt           *time.Time  `json:"endAt"`
	Status          *string     `json:"status" binding:"omitempty,oneof=draft published"`
	TargetGroupIDs  []uuid.UUID `json:"targetGroupIds" binding:"required,min=1"`
}

// UpdateActivityRequest updates activity fields; nil fields are left unchanged
type UpdateActivityRequest struct {
	Title           *string    `json:"title"`
	Description     *string    `json:"description"`
	QText           *string    `json:"qText"`
	QOptions        []string   `json:"qOptions"`
	QCorrect        []int      `json:"qCorrect"`
	CoinsOnComplete *int64     `json:"coinsOnComplete"`
	StartAt         *time.Time `json:"startAt"`
	EndAt           *time.Time `json:"endAt"`
	Status          *string    `json:"status" binding:"omitempty,oneof=draft published closed"`
}

// SubmitAnswerRequest submits a student's answer to an activity
type SubmitAnswerRequest struct {
	Selected []int   `json:"selected"`
	Text     *string `json:"text"`
}

// SubmissionResultResponse is returned after a submission is graded
type SubmissionResultResponse struct {
	SubmissionID uuid.UUID `json:"submissionId"`
	Status       string    `json:"status"`
	IsCorrect    *bool     `json:"isCorrect"`
	AwardedCoins int64     `json:"awardedCoins"`
}

// SubmissionResponse is a submission as seen by the activity owner
type SubmissionResponse struct {
	ID           uuid.UUID `json:"id"`
	UserID       uuid.UUID `json:"userId"`
	UserEmail    string    `json:"userEmail"`
	UserName     *string   `json:"userName"`
	IsCorrect    *bool     `json:"isCorrect"`
	Score        *int      `json:"score"`
	Status       string    `json:"status"`
	AwardedCoins int64     `json:"awardedCoins"`
	CreatedAt    time.Time `json:"createdAt"`
}

// GradeSubmissionRequest manually grades an open submission
type GradeSubmissionRequest struct {
	Status string `json:"status" binding:"required,oneof=approved rejected"`
	Score  *int   `json:"score" binding:"omitempty,min=0,max=100"`
}

// ActivityResponse is an activity list item
type ActivityResponse struct {
	ID              uuid.UUID  `json:"id"`
	Title           string     `json:"title"`
	Description     *string    `json:"description"`
	QType           string     `json:"qType"`
	CoinsOnComplete int64      `json:"coinsOnComplete"`
	StartAt         *time.Time `json:"startAt"`
	EndAt           *time.Time `json:"endAt"`
	Status          string     `json:"status"`
	CreatedAt       time.Time  `json:"createdAt"`
	Submitted       bool       `json:"submitted"`
}

// ActivityDetailResponse includes the question payload and, for owners,
// the submission list
type ActivityDetailResponse struct {
	ActivityResponse
	QText          string               `json:"qText"`
	QOptions       []string             `json:"qOptions"`
	TargetGroupIDs []uuid.UUID          `json:"targetGroupIds,omitempty"`
	Submissions    []SubmissionResponse `json:"submissions,omitempty"`
}
