package dto

import (
	"time"

	"github.com/google/uuid"
)

// GroupStats holds engagement metrics for one owned group. Rates are
// percentages rounded to two decimals.
type GroupStats struct {
	GroupID           uuid.UUID `json:"groupId"`
	GroupName         string    `json:"groupName"`
	TotalStudents     int       `json:"totalStudents"`
	RespondedStudents int       `json:"respondedStudents"`
	ResponseRate      float64   `json:"responseRate"`
	TotalActivities   int       `json:"totalActivities"`
	TotalSubmissions  int       `json:"totalSubmissions"`
	Accuracy          float64   `json:"accuracy"`
}

// AnalyticsSummary is the per-owner analytics overview
type AnalyticsSummary struct {
	GeneratedAt      time.Time    `json:"generatedAt"`
	Groups           []GroupStats `json:"groups"`
	TotalGroups      int          `json:"totalGroups"`
	TotalStudents    int          `json:"totalStudents"`
	TotalActivities  int          `json:"totalActivities"`
	TotalSubmissions int          `json:"totalSubmissions"`
}
