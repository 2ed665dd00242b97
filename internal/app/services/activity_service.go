package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/uisgo/uisgo-backend/internal/app/models"
	"github.com/uisgo/uisgo-backend/internal/app/models/dto"
	"github.com/uisgo/uisgo-backend/internal/app/repositories"
	"github.com/uisgo/uisgo-backend/internal/db"
	"github.com/uisgo/uisgo-backend/internal/pkg/apperrors"
)

// ActivityService defines the interface for activity and submission operations
type ActivityService interface {
	CreateActivity(ctx context.Context, userID uuid.UUID, role models.Role, req *dto.CreateActivityRequest) (*dto.ActivityDetailResponse, error)
	ListActivities(ctx context.Context, userID uuid.UUID, role models.Role, limit, offset int) ([]dto.ActivityResponse, int64, error)
	GetActivity(ctx context.Context, activityID, userID uuid.UUID, role models.Role) (*dto.ActivityDetailResponse, error)
	UpdateActivity(ctx context.Context, activityID, userID uuid.UUID, role models.Role, req *dto.UpdateActivityRequest) (*dto.ActivityDetailResponse, error)
	Publish(ctx context.Context, activityID, userID uuid.UUID, role models.Role) (*dto.ActivityDetailResponse, error)
	DeleteActivity(ctx context.Context, activityID, userID uuid.UUID, role models.Role) error
	Submit(ctx context.Context, activityID, userID uuid.UUID, req *dto.SubmitAnswerRequest) (*dto.SubmissionResultResponse, error)
	GradeSubmission(ctx context.Context, submissionID, graderID uuid.UUID, role models.Role, req *dto.GradeSubmissionRequest) (*dto.SubmissionResultResponse, error)
}

// activityServiceImpl implements ActivityService
type activityServiceImpl struct {
	database     *db.PostgresDB
	activityRepo *repositories.ActivityRepository
	groupRepo    *repositories.GroupRepository
	coinsRepo    *repositories.CoinsRepository
	logger       zerolog.Logger
}

// NewActivityService creates a new ActivityService
func NewActivityService(
	database *db.PostgresDB,
	activityRepo *repositories.ActivityRepository,
	groupRepo *repositories.GroupRepository,
	coinsRepo *repositories.CoinsRepository,
	logger zerolog.Logger,
) ActivityService {
	return &activityServiceImpl{
		database:     database,
		activityRepo: activityRepo,
		groupRepo:    groupRepo,
		coinsRepo:    coinsRepo,
		logger:       logger,
	}
}

// GradeSingleChoice reports whether the selected option indices exactly
// match the expected ones, order included
func GradeSingleChoice(selected, correct []int) bool {
	if len(selected) != len(correct) {
		return false
	}
	for i := range selected {
		if selected[i] != correct[i] {
			return false
		}
	}
	return true
}

// gradeSingle resolves the stored outcome of a single choice answer. An
// incorrect answer stays submitted so the owner can still review it.
func gradeSingle(selected []int, activity *models.Activity) (models.SubmissionStatus, bool, int64) {
	if GradeSingleChoice(selected, activity.QCorrect) {
		return models.SubmissionStatusApproved, true, activity.CoinsOnComplete
	}
	return models.SubmissionStatusSubmitted, false, 0
}

func (s *activityServiceImpl) validateQuestion(qType models.QuestionType, options []string, correct []int) error {
	switch qType {
	case models.QuestionTypeSingle:
		if len(options) < 2 {
			return fmt.Errorf("%w: single choice activities need at least two options", apperrors.ErrValidationFailed)
		}
		if len(correct) == 0 {
			return fmt.Errorf("%w: single choice activities need the correct option indices", apperrors.ErrValidationFailed)
		}
		for _, idx := range correct {
			if idx < 0 || idx >= len(options) {
				return fmt.Errorf("%w: correct option index %d out of range", apperrors.ErrValidationFailed, idx)
			}
		}
	case models.QuestionTypeOpen:
		if len(correct) > 0 {
			return fmt.Errorf("%w: open activities cannot have correct option indices", apperrors.ErrValidationFailed)
		}
	default:
		return fmt.Errorf("%w: unknown question type %q", apperrors.ErrValidationFailed, qType)
	}
	return nil
}

func (s *activityServiceImpl) validateTargets(ctx context.Context, userID uuid.UUID, role models.Role, groupIDs []uuid.UUID) error {
	if len(groupIDs) == 0 {
		return fmt.Errorf("%w: at least one target group is required", apperrors.ErrValidationFailed)
	}
	for _, groupID := range groupIDs {
		group, err := s.groupRepo.GetGroupByID(ctx, groupID)
		if err != nil {
			if errors.Is(err, repositories.ErrGroupNotFound) {
				return fmt.Errorf("%w: group %s does not exist", apperrors.ErrValidationFailed, groupID)
			}
			return err
		}
		if group.CreatedBy != userID && role != models.RoleSuperuser {
			return apperrors.ErrPermissionDenied
		}
	}
	return nil
}

// CreateActivity creates an activity targeted at the creator's groups.
// Activities are published unless the request asks for a draft.
func (s *activityServiceImpl) CreateActivity(ctx context.Context, userID uuid.UUID, role models.Role, req *dto.CreateActivityRequest) (*dto.ActivityDetailResponse, error) {
	qType := models.QuestionType(req.QType)
	if err := s.validateQuestion(qType, req.QOptions, req.QCorrect); err != nil {
		return nil, err
	}
	if req.StartAt != nil && req.EndAt != nil && !req.EndAt.After(*req.StartAt) {
		return nil, fmt.Errorf("%w: end must be after start", apperrors.ErrValidationFailed)
	}
	if err := s.validateTargets(ctx, userID, role, req.TargetGroupIDs); err != nil {
		return nil, err
	}

	status := models.ActivityStatusPublished
	if req.Status != nil {
		status = models.ActivityStatus(*req.Status)
	}

	activity := &models.Activity{
		Title:           req.Title,
		Description:     req.Description,
		QText:           req.QText,
		QType:           qType,
		QOptions:        req.QOptions,
		QCorrect:        req.QCorrect,
		CoinsOnComplete: req.CoinsOnComplete,
		StartAt:         req.StartAt,
		EndAt:           req.EndAt,
		Status:          status,
		CreatedBy:       userID,
	}

	err := s.database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		_, err := s.activityRepo.CreateActivityTx(ctx, tx, activity, req.TargetGroupIDs)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("activityID", activity.ID.String()).Str("userID", userID.String()).Msg("Activity created")

	return s.buildDetail(ctx, activity, userID, role)
}

// ListActivities shows owned activities to creators and available ones to students
func (s *activityServiceImpl) ListActivities(ctx context.Context, userID uuid.UUID, role models.Role, limit, offset int) ([]dto.ActivityResponse, int64, error) {
	var activities []*models.Activity
	var total int64
	var err error
	if role == models.RoleProfessor || role == models.RoleSuperuser {
		activities, total, err = s.activityRepo.ListForOwner(ctx, userID, limit, offset)
	} else {
		activities, total, err = s.activityRepo.ListForStudent(ctx, userID, limit, offset)
	}
	if err != nil {
		return nil, 0, err
	}

	ids := make([]uuid.UUID, 0, len(activities))
	for _, a := range activities {
		ids = append(ids, a.ID)
	}
	submitted, err := s.activityRepo.SubmittedActivityIDs(ctx, userID, ids)
	if err != nil {
		return nil, 0, err
	}

	result := make([]dto.ActivityResponse, 0, len(activities))
	for _, a := range activities {
		result = append(result, toActivityResponse(a, submitted[a.ID]))
	}

	return result, total, nil
}

func toActivityResponse(a *models.Activity, submitted bool) dto.ActivityResponse {
	return dto.ActivityResponse{
		ID:              a.ID,
		Title:           a.Title,
		Description:     a.Description,
		QType:           string(a.QType),
		CoinsOnComplete: a.CoinsOnComplete,
		StartAt:         a.StartAt,
		EndAt:           a.EndAt,
		Status:          string(a.Status),
		CreatedAt:       a.CreatedAt,
		Submitted:       submitted,
	}
}

// GetActivity returns the detail view; owners additionally get targets and submissions
func (s *activityServiceImpl) GetActivity(ctx context.Context, activityID, userID uuid.UUID, role models.Role) (*dto.ActivityDetailResponse, error) {
	activity, err := s.getActivityChecked(ctx, activityID)
	if err != nil {
		return nil, err
	}

	return s.buildDetail(ctx, activity, userID, role)
}

func (s *activityServiceImpl) buildDetail(ctx context.Context, activity *models.Activity, userID uuid.UUID, role models.Role) (*dto.ActivityDetailResponse, error) {
	submitted, err := s.activityRepo.HasSubmitted(ctx, activity.ID, userID)
	if err != nil {
		return nil, err
	}

	detail := &dto.ActivityDetailResponse{
		ActivityResponse: toActivityResponse(activity, submitted),
		QText:            activity.QText,
		QOptions:         activity.QOptions,
	}

	if activity.CreatedBy == userID || role == models.RoleSuperuser {
		targets, err := s.activityRepo.GetTargetGroupIDs(ctx, activity.ID)
		if err != nil {
			return nil, err
		}
		detail.TargetGroupIDs = targets

		rows, err := s.activityRepo.ListSubmissions(ctx, activity.ID)
		if err != nil {
			return nil, err
		}
		subs := make([]dto.SubmissionResponse, 0, len(rows))
		for _, row := range rows {
			subs = append(subs, dto.SubmissionResponse{
				ID:           row.Submission.ID,
				UserID:       row.Submission.UserID,
				UserEmail:    row.UserEmail,
				UserName:     row.UserName,
				IsCorrect:    row.Submission.IsCorrect,
				Score:        row.Submission.Score,
				Status:       string(row.Submission.Status),
				AwardedCoins: row.Submission.AwardedCoins,
				CreatedAt:    row.Submission.CreatedAt,
			})
		}
		detail.Submissions = subs
	}

	return detail, nil
}

func (s *activityServiceImpl) getActivityChecked(ctx context.Context, activityID uuid.UUID) (*models.Activity, error) {
	activity, err := s.activityRepo.GetActivityByID(ctx, activityID)
	if err != nil {
		if errors.Is(err, repositories.ErrActivityNotFound) {
			return nil, apperrors.ErrActivityNotFound
		}
		return nil, err
	}
	return activity, nil
}

// UpdateActivity changes activity fields; only the owner or a superuser may
func (s *activityServiceImpl) UpdateActivity(ctx context.Context, activityID, userID uuid.UUID, role models.Role, req *dto.UpdateActivityRequest) (*dto.ActivityDetailResponse, error) {
	activity, err := s.getActivityChecked(ctx, activityID)
	if err != nil {
		return nil, err
	}
	if activity.CreatedBy != userID && role != models.RoleSuperuser {
		return nil, apperrors.ErrPermissionDenied
	}

	if req.Title != nil {
		activity.Title = *req.Title
	}
	if req.Description != nil {
		activity.Description = req.Description
	}
	if req.QText != nil {
		activity.QText = *req.QText
	}
	if req.QOptions != nil {
		activity.QOptions = req.QOptions
	}
	if req.QCorrect != nil {
		activity.QCorrect = req.QCorrect
	}
	if req.CoinsOnComplete != nil {
		activity.CoinsOnComplete = *req.CoinsOnComplete
	}
	if req.StartAt != nil {
		activity.StartAt = req.StartAt
	}
	if req.EndAt != nil {
		activity.EndAt = req.EndAt
	}
	if req.Status != nil {
		activity.Status = models.ActivityStatus(*req.Status)
	}

	if err := s.validateQuestion(activity.QType, activity.QOptions, activity.QCorrect); err != nil {
		return nil, err
	}
	if activity.StartAt != nil && activity.EndAt != nil && !activity.EndAt.After(*activity.StartAt) {
		return nil, fmt.Errorf("%w: end must be after start", apperrors.ErrValidationFailed)
	}

	if err := s.activityRepo.UpdateActivity(ctx, activity); err != nil {
		return nil, err
	}

	return s.buildDetail(ctx, activity, userID, role)
}

// Publish sets the activity status to published. Re-publishing an already
// published activity is a no-op.
func (s *activityServiceImpl) Publish(ctx context.Context, activityID, userID uuid.UUID, role models.Role) (*dto.ActivityDetailResponse, error) {
	activity, err := s.getActivityChecked(ctx, activityID)
	if err != nil {
		return nil, err
	}
	if activity.CreatedBy != userID && role != models.RoleSuperuser {
		return nil, apperrors.ErrPermissionDenied
	}

	if activity.Status != models.ActivityStatusPublished {
		activity.Status = models.ActivityStatusPublished
		if err := s.activityRepo.UpdateActivity(ctx, activity); err != nil {
			return nil, err
		}
		s.logger.Info().Str("activityID", activity.ID.String()).Msg("Activity published")
	}

	return s.buildDetail(ctx, activity, userID, role)
}

// DeleteActivity removes an activity with its targets and submissions
func (s *activityServiceImpl) DeleteActivity(ctx context.Context, activityID, userID uuid.UUID, role models.Role) error {
	activity, err := s.getActivityChecked(ctx, activityID)
	if err != nil {
		return err
	}
	if activity.CreatedBy != userID && role != models.RoleSuperuser {
		return apperrors.ErrPermissionDenied
	}

	return s.activityRepo.DeleteActivity(ctx, activityID)
}

// Submit records a student's answer. Single choice activities are graded on
// the spot; a correct answer awards coins in the same transaction as the
// submission row so the ledger can never record a reward without one.
func (s *activityServiceImpl) Submit(ctx context.Context, activityID, userID uuid.UUID, req *dto.SubmitAnswerRequest) (*dto.SubmissionResultResponse, error) {
	activity, err := s.getActivityChecked(ctx, activityID)
	if err != nil {
		return nil, err
	}

	if activity.Status != models.ActivityStatusPublished || !activity.InWindow(time.Now()) {
		return nil, apperrors.ErrActivityClosed
	}

	targeted, err := s.isTargeted(ctx, activity.ID, userID)
	if err != nil {
		return nil, err
	}
	if !targeted {
		return nil, apperrors.ErrPermissionDenied
	}

	submitted, err := s.activityRepo.HasSubmitted(ctx, activityID, userID)
	if err != nil {
		return nil, err
	}
	if submitted {
		return nil, apperrors.ErrAlreadySubmitted
	}

	sub := &models.Submission{
		ActivityID: activityID,
		UserID:     userID,
	}

	switch activity.QType {
	case models.QuestionTypeSingle:
		if len(req.Selected) == 0 {
			return nil, fmt.Errorf("%w: selected options are required", apperrors.ErrValidationFailed)
		}
		for _, idx := range req.Selected {
			if idx < 0 || idx >= len(activity.QOptions) {
				return nil, fmt.Errorf("%w: selected option index %d out of range", apperrors.ErrValidationFailed, idx)
			}
		}
		answer, err := json.Marshal(map[string]any{"selected": req.Selected})
		if err != nil {
			return nil, err
		}
		sub.Answer = answer

		status, correct, awarded := gradeSingle(req.Selected, activity)
		sub.Status = status
		sub.IsCorrect = &correct
		sub.AwardedCoins = awarded
	case models.QuestionTypeOpen:
		if req.Text == nil || *req.Text == "" {
			return nil, fmt.Errorf("%w: answer text is required", apperrors.ErrValidationFailed)
		}
		answer, err := json.Marshal(map[string]any{"text": *req.Text})
		if err != nil {
			return nil, err
		}
		sub.Answer = answer
		sub.Status = models.SubmissionStatusSubmitted
	}

	err = s.database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if _, err := s.activityRepo.CreateSubmissionTx(ctx, tx, sub); err != nil {
			if errors.Is(err, repositories.ErrAlreadySubmitted) {
				return apperrors.ErrAlreadySubmitted
			}
			return err
		}

		if sub.AwardedCoins > 0 {
			entry := &models.CoinsLedgerEntry{
				UserID:     userID,
				ActivityID: &activityID,
				Delta:      sub.AwardedCoins,
				Reason:     models.LedgerReasonActivityCompletion,
			}
			if err := s.coinsRepo.InsertEntryTx(ctx, tx, entry); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("activityID", activityID.String()).
		Str("userID", userID.String()).
		Int64("awardedCoins", sub.AwardedCoins).
		Msg("Submission recorded")

	return &dto.SubmissionResultResponse{
		SubmissionID: sub.ID,
		Status:       string(sub.Status),
		IsCorrect:    sub.IsCorrect,
		AwardedCoins: sub.AwardedCoins,
	}, nil
}

func (s *activityServiceImpl) isTargeted(ctx context.Context, activityID, userID uuid.UUID) (bool, error) {
	targets, err := s.activityRepo.GetTargetGroupIDs(ctx, activityID)
	if err != nil {
		return false, err
	}
	for _, groupID := range targets {
		member, err := s.groupRepo.IsMember(ctx, groupID, userID)
		if err != nil {
			return false, err
		}
		if member {
			return true, nil
		}
	}
	return false, nil
}

// GradeSubmission manually grades an open submission. Approving awards the
// activity's coins unless some were already granted.
func (s *activityServiceImpl) GradeSubmission(ctx context.Context, submissionID, graderID uuid.UUID, role models.Role, req *dto.GradeSubmissionRequest) (*dto.SubmissionResultResponse, error) {
	sub, err := s.activityRepo.GetSubmissionByID(ctx, submissionID)
	if err != nil {
		if errors.Is(err, repositories.ErrSubmissionNotFound) {
			return nil, apperrors.ErrResourceNotFound
		}
		return nil, err
	}

	activity, err := s.getActivityChecked(ctx, sub.ActivityID)
	if err != nil {
		return nil, err
	}
	if activity.CreatedBy != graderID && role != models.RoleSuperuser {
		return nil, apperrors.ErrPermissionDenied
	}
	if activity.QType != models.QuestionTypeOpen {
		return nil, fmt.Errorf("%w: only open submissions can be graded manually", apperrors.ErrValidationFailed)
	}

	status := models.SubmissionStatus(req.Status)
	correct := status == models.SubmissionStatusApproved
	sub.Status = status
	sub.IsCorrect = &correct
	sub.Score = req.Score
	sub.GradedBy = &graderID

	awardCoins := correct && sub.AwardedCoins == 0 && activity.CoinsOnComplete > 0
	if awardCoins {
		sub.AwardedCoins = activity.CoinsOnComplete
	}

	err = s.database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if err := s.activityRepo.UpdateSubmissionGradeTx(ctx, tx, sub); err != nil {
			return err
		}
		if awardCoins {
			entry := &models.CoinsLedgerEntry{
				UserID:     sub.UserID,
				ActivityID: &sub.ActivityID,
				Delta:      sub.AwardedCoins,
				Reason:     models.LedgerReasonActivityCompletion,
			}
			if err := s.coinsRepo.InsertEntryTx(ctx, tx, entry); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &dto.SubmissionResultResponse{
		SubmissionID: sub.ID,
		Status:       string(sub.Status),
		IsCorrect:    sub.IsCorrect,
		AwardedCoins: sub.AwardedCoins,
	}, nil
}
