package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// SubmissionStatus is the grading state of a submission
type SubmissionStatus string

const (
	SubmissionStatusSubmitted SubmissionStatus = "submitted"
	SubmissionStatusApproved  SubmissionStatus = "approved"
	SubmissionStatusRejected  SubmissionStatus = "rejected"
)

// Submission is one answer per (activity, user)
type Submission struct {
	ID           uuid.UUID        `json:"id"`
	ActivityID   uuid.UUID        `json:"activityId"`
	UserID       uuid.UUID        `json:"userId"`
	Answer       json.RawMessage  `json:"answer"`
	IsCorrect    *bool            `json:"isCorrect"`
	Score        *int             `json:"score"`
	Status       SubmissionStatus `json:"status"`
	AwardedCoins int64            `json:"awardedCoins"`
	GradedBy     *uuid.UUID       `json:"gradedBy"`
	CreatedAt    time.Time        `json:"createdAt"`
	UpdatedAt    time.Time        `json:"updatedAt"`
}
