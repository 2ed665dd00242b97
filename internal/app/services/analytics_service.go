package services

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/uisgo/uisgo-backend/internal/app/models/dto"
	"github.com/uisgo/uisgo-backend/internal/app/repositories"
)

// AnalyticsService defines the interface for owner-facing engagement metrics
type AnalyticsService interface {
	MyStats(ctx context.Context, userID uuid.UUID) (*dto.AnalyticsSummary, error)
}

// analyticsServiceImpl implements AnalyticsService
type analyticsServiceImpl struct {
	groupRepo    *repositories.GroupRepository
	activityRepo *repositories.ActivityRepository
	logger       zerolog.Logger
}

// NewAnalyticsService creates a new AnalyticsService
func NewAnalyticsService(
	groupRepo *repositories.GroupRepository,
	activityRepo *repositories.ActivityRepository,
	logger zerolog.Logger,
) AnalyticsService {
	return &analyticsServiceImpl{
		groupRepo:    groupRepo,
		activityRepo: activityRepo,
		logger:       logger,
	}
}

// roundPercent rounds a percentage to two decimals
func roundPercent(value float64) float64 {
	return math.Round(value*100) / 100
}

// MyStats builds per-group engagement stats for all groups the caller owns,
// oldest group first. Student counts exclude the owner membership.
func (s *analyticsServiceImpl) MyStats(ctx context.Context, userID uuid.UUID) (*dto.AnalyticsSummary, error) {
	groups, err := s.groupRepo.ListGroupsForOwner(ctx, userID)
	if err != nil {
		return nil, err
	}

	summary := &dto.AnalyticsSummary{
		GeneratedAt: time.Now().UTC(),
		Groups:      make([]dto.GroupStats, 0, len(groups)),
		TotalGroups: len(groups),
	}

	for _, group := range groups {
		students := group.MemberCount - 1
		if students < 0 {
			students = 0
		}

		activities, err := s.activityRepo.CountActivitiesForGroup(ctx, group.Group.ID)
		if err != nil {
			return nil, err
		}

		subStats, err := s.activityRepo.GetGroupSubmissionStats(ctx, group.Group.ID)
		if err != nil {
			return nil, err
		}

		var responseRate, accuracy float64
		if students > 0 {
			responseRate = roundPercent(float64(subStats.RespondedStudents) / float64(students) * 100)
		}
		if subStats.Total > 0 {
			accuracy = roundPercent(float64(subStats.Correct) / float64(subStats.Total) * 100)
		}

		summary.Groups = append(summary.Groups, dto.GroupStats{
			GroupID:           group.Group.ID,
			GroupName:         group.Group.Name,
			TotalStudents:     students,
			RespondedStudents: subStats.RespondedStudents,
			ResponseRate:      responseRate,
			TotalActivities:   activities,
			TotalSubmissions:  subStats.Total,
			Accuracy:          accuracy,
		})

		summary.TotalStudents += students
		summary.TotalActivities += activities
		summary.TotalSubmissions += subStats.Total
	}

	return summary, nil
}
