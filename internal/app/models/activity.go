package models

import (
	"time"

	"github.com/google/uuid"
)

// ActivityStatus is the activity lifecycle state
type ActivityStatus string

const (
	ActivityStatusDraft     ActivityStatus = "draft"
	ActivityStatusPublished ActivityStatus = "published"
	ActivityStatusClosed    ActivityStatus = "closed"
)

// Activity is a gradeable task targeted at groups
type Activity struct {
	ID              uuid.UUID      `json:"id"`
	Title           string         `json:"title"`
	Description     *string        `json:"description"`
	QText           string         `json:"qText"`
	QType           QuestionType   `json:"qType"`
	QOptions        []string       `json:"qOptions"`
	QCorrect        []int          `json:"qCorrect"`
	CoinsOnComplete int64          `json:"coinsOnComplete"`
	StartAt         *time.Time     `json:"startAt"`
	EndAt           *time.Time     `json:"endAt"`
	Status          ActivityStatus `json:"status"`
	CreatedBy       uuid.UUID      `json:"createdBy"`
	CreatedAt       time.Time      `json:"createdAt"`
}

// InWindow reports whether now falls inside the activity's open window.
// A nil bound means unbounded on that side.
func (a *Activity) InWindow(now time.Time) bool {
	if a.StartAt != nil && now.Before(*a.StartAt) {
		return false
	}
	if a.EndAt != nil && now.After(*a.EndAt) {
		return false
	}
	return true
}

// ActivityTarget links an activity to a group, unique per pair
type ActivityTarget struct {
	ID         uuid.UUID `json:"id"`
	ActivityID uuid.UUID `json:"activityId"`
	GroupID    uuid.UUID `json:"groupId"`
}
