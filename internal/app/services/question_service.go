package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/uisgo/uisgo-backend/internal/app/models"
	"github.com/uisgo/uisgo-backend/internal/app/models/dto"
	"github.com/uisgo/uisgo-backend/internal/app/repositories"
	"github.com/uisgo/uisgo-backend/internal/pkg/apperrors"
	"github.com/uisgo/uisgo-backend/internal/db"
)

// QuestionService defines the interface for community questions and credits
type QuestionService interface {
	CreateQuestion(ctx context.Context, userID uuid.UUID, role models.Role, req *dto.CreateQuestionRequest) (*dto.QuestionResponseDTO, error)
	ListQuestions(ctx context.Context, userID uuid.UUID, role models.Role, filter repositories.QuestionFilter, limit, offset int) ([]dto.QuestionResponseDTO, int64, error)
	GetQuestion(ctx context.Context, userID uuid.UUID, role models.Role, questionID uuid.UUID) (*dto.QuestionResponseDTO, error)
	UpdateQuestion(ctx context.Context, userID uuid.UUID, role models.Role, questionID uuid.UUID, req *dto.UpdateQuestionRequest) (*dto.QuestionResponseDTO, error)
	ReplaceTargets(ctx context.Context, userID uuid.UUID, role models.Role, questionID uuid.UUID, req *dto.QuestionTargetsRequest) (*dto.QuestionResponseDTO, error)
	DeleteQuestion(ctx context.Context, userID uuid.UUID, role models.Role, questionID uuid.UUID) error
	Answer(ctx context.Context, userID uuid.UUID, questionID uuid.UUID, req *dto.AnswerQuestionRequest) (*dto.QuestionAnswerResponse, error)
	ListResponses(ctx context.Context, userID uuid.UUID, role models.Role, questionID uuid.UUID) ([]dto.QuestionResponseItem, error)
	GetCredits(ctx context.Context, userID uuid.UUID) (*dto.QuestionCreditsResponse, error)
}

// questionServiceImpl implements QuestionService
type questionServiceImpl struct {
	database     *db.PostgresDB
	questionRepo *repositories.QuestionRepository
	groupRepo    *repositories.GroupRepository
	coinsRepo    *repositories.CoinsRepository
	logger       zerolog.Logger
}

// NewQuestionService creates a new QuestionService
func NewQuestionService(
	database *db.PostgresDB,
	questionRepo *repositories.QuestionRepository,
	groupRepo *repositories.GroupRepository,
	coinsRepo *repositories.CoinsRepository,
	logger zerolog.Logger,
) QuestionService {
	return &questionServiceImpl{
		database:     database,
		questionRepo: questionRepo,
		groupRepo:    groupRepo,
		coinsRepo:    coinsRepo,
		logger:       logger,
	}
}

// CreateQuestion creates a question targeted at groups owned by the caller.
// Superusers may target any existing group.
func (s *questionServiceImpl) CreateQuestion(ctx context.Context, userID uuid.UUID, role models.Role, req *dto.CreateQuestionRequest) (*dto.QuestionResponseDTO, error) {
	qType := models.QuestionType(req.Type)
	if qType == models.QuestionTypeSingle && len(req.Options) < 2 {
		return nil, fmt.Errorf("%w: single choice questions need at least two options", apperrors.ErrValidationFailed)
	}

	if err := s.checkTargetGroups(ctx, userID, role, req.GroupIDs); err != nil {
		return nil, err
	}

	question := &models.Question{
		Title:         req.Title,
		Body:          req.Body,
		Category:      req.Category,
		Type:          qType,
		Options:       req.Options,
		RewardCredits: req.RewardCredits,
		RewardCoins:   req.RewardCoins,
		Active:        true,
		CreatedBy:     userID,
	}

	err := s.database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		id, err := s.questionRepo.CreateQuestionTx(ctx, tx, question, req.GroupIDs)
		if err != nil {
			return err
		}
		question.ID = id
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.toQuestionDTO(ctx, question, userID)
}

// checkTargetGroups verifies each target group exists and is owned by the
// caller unless the caller is a superuser.
func (s *questionServiceImpl) checkTargetGroups(ctx context.Context, userID uuid.UUID, role models.Role, groupIDs []uuid.UUID) error {
	for _, groupID := range groupIDs {
		group, err := s.groupRepo.GetGroupByID(ctx, groupID)
		if err != nil {
			if errors.Is(err, repositories.ErrGroupNotFound) {
				return fmt.Errorf("%w: target group %s does not exist", apperrors.ErrValidationFailed, groupID)
			}
			return err
		}
		if role != models.RoleSuperuser && group.CreatedBy != userID {
			return apperrors.ErrPermissionDenied
		}
	}
	return nil
}

// ListQuestions returns questions visible to the caller. Professors and
// superusers see their own questions; students see active questions that are
// global or targeted at one of their groups.
func (s *questionServiceImpl) ListQuestions(ctx context.Context, userID uuid.UUID, role models.Role, filter repositories.QuestionFilter, limit, offset int) ([]dto.QuestionResponseDTO, int64, error) {
	if filter.GroupID != nil {
		if err := s.checkGroupAccess(ctx, userID, role, *filter.GroupID); err != nil {
			return nil, 0, err
		}
	}

	var (
		questions []*models.Question
		total     int64
		err       error
	)
	if role == models.RoleStudent {
		questions, total, err = s.questionRepo.ListForStudent(ctx, userID, filter, limit, offset)
	} else {
		questions, total, err = s.questionRepo.ListForOwner(ctx, userID, filter, limit, offset)
	}
	if err != nil {
		return nil, 0, err
	}

	ids := make([]uuid.UUID, 0, len(questions))
	for _, q := range questions {
		ids = append(ids, q.ID)
	}
	answered, err := s.questionRepo.AnsweredQuestionIDs(ctx, userID, ids)
	if err != nil {
		return nil, 0, err
	}

	result := make([]dto.QuestionResponseDTO, 0, len(questions))
	for _, q := range questions {
		targets, err := s.questionRepo.GetTargets(ctx, q.ID)
		if err != nil {
			return nil, 0, err
		}
		result = append(result, buildQuestionDTO(q, targets, answered[q.ID]))
	}

	return result, total, nil
}

// checkGroupAccess verifies the caller may filter questions by the group:
// students must be members, creators must own it, superusers pass.
func (s *questionServiceImpl) checkGroupAccess(ctx context.Context, userID uuid.UUID, role models.Role, groupID uuid.UUID) error {
	group, err := s.groupRepo.GetGroupByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, repositories.ErrGroupNotFound) {
			return apperrors.ErrGroupNotFound
		}
		return err
	}

	if role == models.RoleSuperuser {
		return nil
	}
	if role == models.RoleStudent {
		member, err := s.groupRepo.IsMember(ctx, groupID, userID)
		if err != nil {
			return err
		}
		if !member {
			return apperrors.ErrPermissionDenied
		}
		return nil
	}
	if group.CreatedBy != userID {
		return apperrors.ErrPermissionDenied
	}
	return nil
}

// GetQuestion returns a single question visible to the caller
func (s *questionServiceImpl) GetQuestion(ctx context.Context, userID uuid.UUID, role models.Role, questionID uuid.UUID) (*dto.QuestionResponseDTO, error) {
	question, err := s.visibleQuestion(ctx, userID, role, questionID)
	if err != nil {
		return nil, err
	}
	return s.toQuestionDTO(ctx, question, userID)
}

// visibleQuestion loads a question and hides it behind a not-found error when
// the caller is a student outside its audience.
func (s *questionServiceImpl) visibleQuestion(ctx context.Context, userID uuid.UUID, role models.Role, questionID uuid.UUID) (*models.Question, error) {
	question, err := s.questionRepo.GetQuestionByID(ctx, questionID)
	if err != nil {
		if errors.Is(err, repositories.ErrQuestionNotFound) {
			return nil, apperrors.ErrQuestionNotFound
		}
		return nil, err
	}

	if role == models.RoleStudent {
		if !question.Active {
			return nil, apperrors.ErrQuestionNotFound
		}
		targets, err := s.questionRepo.GetTargets(ctx, questionID)
		if err != nil {
			return nil, err
		}
		if len(targets) > 0 {
			member := false
			for _, target := range targets {
				ok, err := s.groupRepo.IsMember(ctx, target.GroupID, userID)
				if err != nil {
					return nil, err
				}
				if ok {
					member = true
					break
				}
			}
			if !member {
				return nil, apperrors.ErrQuestionNotFound
			}
		}
	} else if role != models.RoleSuperuser && question.CreatedBy != userID {
		return nil, apperrors.ErrQuestionNotFound
	}

	return question, nil
}

// requireQuestionOwner loads a question and checks the caller may manage it
func (s *questionServiceImpl) requireQuestionOwner(ctx context.Context, userID uuid.UUID, role models.Role, questionID uuid.UUID) (*models.Question, error) {
	question, err := s.questionRepo.GetQuestionByID(ctx, questionID)
	if err != nil {
		if errors.Is(err, repositories.ErrQuestionNotFound) {
			return nil, apperrors.ErrQuestionNotFound
		}
		return nil, err
	}
	if role != models.RoleSuperuser && question.CreatedBy != userID {
		return nil, apperrors.ErrPermissionDenied
	}
	return question, nil
}

// UpdateQuestion updates question fields set in the request
func (s *questionServiceImpl) UpdateQuestion(ctx context.Context, userID uuid.UUID, role models.Role, questionID uuid.UUID, req *dto.UpdateQuestionRequest) (*dto.QuestionResponseDTO, error) {
	question, err := s.requireQuestionOwner(ctx, userID, role, questionID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		question.Title = *req.Title
	}
	if req.Body != nil {
		question.Body = *req.Body
	}
	if req.Category != nil {
		question.Category = *req.Category
	}
	if req.Options != nil {
		question.Options = req.Options
	}
	if req.RewardCredits != nil {
		if *req.RewardCredits < 0 {
			return nil, fmt.Errorf("%w: rewardCredits cannot be negative", apperrors.ErrValidationFailed)
		}
		question.RewardCredits = *req.RewardCredits
	}
	if req.RewardCoins != nil {
		if *req.RewardCoins < 0 {
			return nil, fmt.Errorf("%w: rewardCoins cannot be negative", apperrors.ErrValidationFailed)
		}
		question.RewardCoins = *req.RewardCoins
	}
	if req.Active != nil {
		question.Active = *req.Active
	}
	if question.Type == models.QuestionTypeSingle && len(question.Options) < 2 {
		return nil, fmt.Errorf("%w: single choice questions need at least two options", apperrors.ErrValidationFailed)
	}

	if err := s.questionRepo.UpdateQuestion(ctx, question); err != nil {
		return nil, err
	}

	return s.toQuestionDTO(ctx, question, userID)
}

// ReplaceTargets swaps the full set of group targets. An empty set makes the
// question global.
func (s *questionServiceImpl) ReplaceTargets(ctx context.Context, userID uuid.UUID, role models.Role, questionID uuid.UUID, req *dto.QuestionTargetsRequest) (*dto.QuestionResponseDTO, error) {
	question, err := s.requireQuestionOwner(ctx, userID, role, questionID)
	if err != nil {
		return nil, err
	}

	if err := s.checkTargetGroups(ctx, userID, role, req.GroupIDs); err != nil {
		return nil, err
	}

	err = s.database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		return s.questionRepo.ReplaceTargetsTx(ctx, tx, questionID, req.GroupIDs)
	})
	if err != nil {
		return nil, err
	}

	return s.toQuestionDTO(ctx, question, userID)
}

// DeleteQuestion removes a question, its targets and its responses
func (s *questionServiceImpl) DeleteQuestion(ctx context.Context, userID uuid.UUID, role models.Role, questionID uuid.UUID) error {
	if _, err := s.requireQuestionOwner(ctx, userID, role, questionID); err != nil {
		return err
	}
	return s.questionRepo.DeleteQuestion(ctx, questionID)
}

// Answer records an answer and grants the rewards frozen from the question
// at answer time. Any authenticated user can answer an active question once.
func (s *questionServiceImpl) Answer(ctx context.Context, userID uuid.UUID, questionID uuid.UUID, req *dto.AnswerQuestionRequest) (*dto.QuestionAnswerResponse, error) {
	question, err := s.questionRepo.GetQuestionByID(ctx, questionID)
	if err != nil {
		if errors.Is(err, repositories.ErrQuestionNotFound) {
			return nil, apperrors.ErrQuestionNotFound
		}
		return nil, err
	}
	if !question.Active {
		return nil, apperrors.ErrQuestionNotFound
	}

	answer, err := encodeQuestionAnswer(question.Type, req)
	if err != nil {
		return nil, err
	}

	answered, err := s.questionRepo.HasAnswered(ctx, questionID, userID)
	if err != nil {
		return nil, err
	}
	if answered {
		return nil, apperrors.ErrAlreadyAnswered
	}

	var newBalance int64
	err = s.database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		newBalance, err = s.questionRepo.AddCreditsTx(ctx, tx, userID, question.RewardCredits)
		if err != nil {
			return err
		}

		resp := &models.QuestionResponse{
			QuestionID:     questionID,
			UserID:         userID,
			Answer:         answer,
			CreditsAwarded: question.RewardCredits,
			CoinsAwarded:   question.RewardCoins,
		}
		if _, err := s.questionRepo.CreateResponseTx(ctx, tx, resp); err != nil {
			return err
		}

		if question.RewardCoins > 0 {
			entry := &models.CoinsLedgerEntry{
				UserID: userID,
				Delta:  question.RewardCoins,
				Reason: models.LedgerReasonQuestionReward,
			}
			if err := s.coinsRepo.InsertEntryTx(ctx, tx, entry); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, repositories.ErrAlreadyAnswered) {
			return nil, apperrors.ErrAlreadyAnswered
		}
		return nil, err
	}

	s.logger.Info().
		Str("questionID", questionID.String()).
		Str("userID", userID.String()).
		Int64("credits", question.RewardCredits).
		Int64("coins", question.RewardCoins).
		Msg("Question answered")

	return &dto.QuestionAnswerResponse{
		QuestionID:       questionID,
		CreditsAwarded:   question.RewardCredits,
		CoinsAwarded:     question.RewardCoins,
		NewCreditBalance: newBalance,
	}, nil
}

// encodeQuestionAnswer validates the answer shape for the question type and
// encodes it for storage.
func encodeQuestionAnswer(qType models.QuestionType, req *dto.AnswerQuestionRequest) (json.RawMessage, error) {
	switch qType {
	case models.QuestionTypeSingle:
		if len(req.Selected) == 0 {
			return nil, fmt.Errorf("%w: selected option is required", apperrors.ErrValidationFailed)
		}
		return json.Marshal(map[string]any{"selected": req.Selected})
	case models.QuestionTypeOpen:
		if req.Text == nil || *req.Text == "" {
			return nil, fmt.Errorf("%w: answer text is required", apperrors.ErrValidationFailed)
		}
		return json.Marshal(map[string]any{"text": *req.Text})
	default:
		return nil, fmt.Errorf("%w: unknown question type %q", apperrors.ErrValidationFailed, qType)
	}
}

// ListResponses returns all answers for a question the caller owns
func (s *questionServiceImpl) ListResponses(ctx context.Context, userID uuid.UUID, role models.Role, questionID uuid.UUID) ([]dto.QuestionResponseItem, error) {
	if _, err := s.requireQuestionOwner(ctx, userID, role, questionID); err != nil {
		return nil, err
	}

	rows, err := s.questionRepo.ListResponses(ctx, questionID)
	if err != nil {
		return nil, err
	}

	result := make([]dto.QuestionResponseItem, 0, len(rows))
	for _, row := range rows {
		var answer any
		if len(row.Response.Answer) > 0 {
			if err := json.Unmarshal(row.Response.Answer, &answer); err != nil {
				answer = string(row.Response.Answer)
			}
		}
		result = append(result, dto.QuestionResponseItem{
			ID:             row.Response.ID,
			UserID:         row.Response.UserID,
			UserEmail:      row.UserEmail,
			UserName:       row.UserName,
			Answer:         answer,
			CreditsAwarded: row.Response.CreditsAwarded,
			CoinsAwarded:   row.Response.CoinsAwarded,
			CreatedAt:      row.Response.CreatedAt,
		})
	}

	return result, nil
}

// GetCredits returns the caller's question credit balance
func (s *questionServiceImpl) GetCredits(ctx context.Context, userID uuid.UUID) (*dto.QuestionCreditsResponse, error) {
	balance, err := s.questionRepo.GetCreditBalance(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &dto.QuestionCreditsResponse{Balance: balance}, nil
}

func (s *questionServiceImpl) toQuestionDTO(ctx context.Context, question *models.Question, userID uuid.UUID) (*dto.QuestionResponseDTO, error) {
	targets, err := s.questionRepo.GetTargets(ctx, question.ID)
	if err != nil {
		return nil, err
	}
	answered, err := s.questionRepo.HasAnswered(ctx, question.ID, userID)
	if err != nil {
		return nil, err
	}
	result := buildQuestionDTO(question, targets, answered)
	return &result, nil
}

func buildQuestionDTO(question *models.Question, targets []repositories.QuestionTargetRef, answered bool) dto.QuestionResponseDTO {
	groups := make([]dto.QuestionGroupRef, 0, len(targets))
	for _, target := range targets {
		groups = append(groups, dto.QuestionGroupRef{ID: target.GroupID, Name: target.GroupName})
	}
	return dto.QuestionResponseDTO{
		ID:            question.ID,
		Title:         question.Title,
		Body:          question.Body,
		Category:      question.Category,
		Type:          string(question.Type),
		Options:       question.Options,
		RewardCredits: question.RewardCredits,
		RewardCoins:   question.RewardCoins,
		Active:        question.Active,
		IsGlobal:      len(targets) == 0,
		Groups:        groups,
		Answered:      answered,
		CreatedAt:     question.CreatedAt,
	}
}
