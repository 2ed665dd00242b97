package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/uisgo/uisgo-backend/internal/app/models"
	"github.com/uisgo/uisgo-backend/internal/app/models/dto"
	"github.com/uisgo/uisgo-backend/internal/app/repositories"
	"github.com/uisgo/uisgo-backend/internal/pkg/apperrors"
)

// WellnessService defines the interface for mood prompts, centers and turns
type WellnessService interface {
	ListPrompts(ctx context.Context, screen *string) ([]dto.WellnessPromptResponse, error)
	CreatePrompt(ctx context.Context, req *dto.CreateWellnessPromptRequest) (*dto.WellnessPromptResponse, error)
	RecordMood(ctx context.Context, userID uuid.UUID, req *dto.RecordMoodRequest) (*dto.MoodResponse, error)
	ListMyMoods(ctx context.Context, userID uuid.UUID, limit, offset int) ([]dto.MoodResponse, int64, error)
	ListCenters(ctx context.Context) ([]dto.WellnessCenterResponse, error)
	CreateCenter(ctx context.Context, req *dto.CreateWellnessCenterRequest) (*dto.WellnessCenterResponse, error)
	RequestTurn(ctx context.Context, userID uuid.UUID, req *dto.RequestTurnRequest) (*dto.TurnResponse, error)
	ListMyTurns(ctx context.Context, userID uuid.UUID) ([]dto.TurnResponse, error)
	ListCenterTurns(ctx context.Context, centerID uuid.UUID, status *string) ([]dto.TurnResponse, error)
	UpdateTurnStatus(ctx context.Context, turnID uuid.UUID, req *dto.UpdateTurnStatusRequest) (*dto.TurnResponse, error)
}

// wellnessServiceImpl implements WellnessService
type wellnessServiceImpl struct {
	wellnessRepo *repositories.WellnessRepository
	logger       zerolog.Logger
}

// NewWellnessService creates a new WellnessService
func NewWellnessService(wellnessRepo *repositories.WellnessRepository, logger zerolog.Logger) WellnessService {
	return &wellnessServiceImpl{wellnessRepo: wellnessRepo, logger: logger}
}

// ListPrompts returns active prompts, optionally filtered by screen
func (s *wellnessServiceImpl) ListPrompts(ctx context.Context, screen *string) ([]dto.WellnessPromptResponse, error) {
	prompts, err := s.wellnessRepo.ListActivePrompts(ctx, screen)
	if err != nil {
		return nil, err
	}

	result := make([]dto.WellnessPromptResponse, 0, len(prompts))
	for _, prompt := range prompts {
		result = append(result, toPromptResponse(prompt))
	}
	return result, nil
}

// CreatePrompt stores a new mood prompt
func (s *wellnessServiceImpl) CreatePrompt(ctx context.Context, req *dto.CreateWellnessPromptRequest) (*dto.WellnessPromptResponse, error) {
	prompt := &models.WellnessPrompt{
		Text:      req.Text,
		Options:   req.Options,
		Screen:    req.Screen,
		Frequency: req.Frequency,
		Active:    true,
	}
	if req.Active != nil {
		prompt.Active = *req.Active
	}

	if _, err := s.wellnessRepo.CreatePrompt(ctx, prompt); err != nil {
		return nil, err
	}

	resp := toPromptResponse(prompt)
	return &resp, nil
}

// RecordMood stores a mood entry against an active prompt
func (s *wellnessServiceImpl) RecordMood(ctx context.Context, userID uuid.UUID, req *dto.RecordMoodRequest) (*dto.MoodResponse, error) {
	prompt, err := s.wellnessRepo.GetPromptByID(ctx, req.PromptID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrResourceNotFound
		}
		return nil, err
	}
	if !prompt.Active {
		return nil, apperrors.ErrResourceNotFound
	}

	mood := &models.UserMood{
		UserID:    userID,
		PromptID:  req.PromptID,
		Mood:      req.Mood,
		ExtraData: req.ExtraData,
	}
	if err := s.wellnessRepo.InsertMood(ctx, mood); err != nil {
		return nil, err
	}

	return &dto.MoodResponse{ID: mood.ID, Mood: mood.Mood, CreatedAt: mood.CreatedAt}, nil
}

// ListMyMoods returns the caller's mood history, newest first
func (s *wellnessServiceImpl) ListMyMoods(ctx context.Context, userID uuid.UUID, limit, offset int) ([]dto.MoodResponse, int64, error) {
	moods, total, err := s.wellnessRepo.ListMoodsForUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	result := make([]dto.MoodResponse, 0, len(moods))
	for _, mood := range moods {
		result = append(result, dto.MoodResponse{ID: mood.ID, Mood: mood.Mood, CreatedAt: mood.CreatedAt})
	}
	return result, total, nil
}

// ListCenters returns all active wellness centers
func (s *wellnessServiceImpl) ListCenters(ctx context.Context) ([]dto.WellnessCenterResponse, error) {
	centers, err := s.wellnessRepo.ListActiveCenters(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]dto.WellnessCenterResponse, 0, len(centers))
	for _, center := range centers {
		result = append(result, toCenterResponse(center))
	}
	return result, nil
}

// CreateCenter stores a new wellness center
func (s *wellnessServiceImpl) CreateCenter(ctx context.Context, req *dto.CreateWellnessCenterRequest) (*dto.WellnessCenterResponse, error) {
	center := &models.WellnessCenter{
		Name:        req.Name,
		Description: req.Description,
		Location:    req.Location,
		Contact:     req.Contact,
		Active:      true,
	}

	if _, err := s.wellnessRepo.CreateCenter(ctx, center); err != nil {
		return nil, err
	}

	resp := toCenterResponse(center)
	return &resp, nil
}

// RequestTurn creates a waiting turn at a center
func (s *wellnessServiceImpl) RequestTurn(ctx context.Context, userID uuid.UUID, req *dto.RequestTurnRequest) (*dto.TurnResponse, error) {
	center, err := s.wellnessRepo.GetCenterByID(ctx, req.CenterID)
	if err != nil {
		if errors.Is(err, repositories.ErrWellnessCenterNotFound) {
			return nil, apperrors.ErrResourceNotFound
		}
		return nil, err
	}

	turn := &models.WellnessTurn{
		CenterID:    req.CenterID,
		UserID:      userID,
		ScheduledAt: req.ScheduledAt,
		Status:      models.TurnStatusWaiting,
	}
	if _, err := s.wellnessRepo.CreateTurn(ctx, turn); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("userID", userID.String()).
		Str("centerID", center.ID.String()).
		Msg("Wellness turn requested")

	return toTurnResponse(repositories.TurnRow{Turn: *turn, CenterName: center.Name}), nil
}

// ListMyTurns returns the caller's turns, newest first
func (s *wellnessServiceImpl) ListMyTurns(ctx context.Context, userID uuid.UUID) ([]dto.TurnResponse, error) {
	rows, err := s.wellnessRepo.ListTurnsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toTurnResponses(rows), nil
}

// ListCenterTurns returns a center's turns, optionally filtered by status
func (s *wellnessServiceImpl) ListCenterTurns(ctx context.Context, centerID uuid.UUID, status *string) ([]dto.TurnResponse, error) {
	if status != nil && !models.ValidTurnStatus(*status) {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrInvalidTurnStatus, *status)
	}

	if _, err := s.wellnessRepo.GetCenterByID(ctx, centerID); err != nil {
		if errors.Is(err, repositories.ErrWellnessCenterNotFound) {
			return nil, apperrors.ErrResourceNotFound
		}
		return nil, err
	}

	rows, err := s.wellnessRepo.ListTurnsForCenter(ctx, centerID, status)
	if err != nil {
		return nil, err
	}
	return toTurnResponses(rows), nil
}

// UpdateTurnStatus sets a turn's status
func (s *wellnessServiceImpl) UpdateTurnStatus(ctx context.Context, turnID uuid.UUID, req *dto.UpdateTurnStatusRequest) (*dto.TurnResponse, error) {
	if !models.ValidTurnStatus(req.Status) {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrInvalidTurnStatus, req.Status)
	}

	if err := s.wellnessRepo.UpdateTurnStatus(ctx, turnID, req.Status); err != nil {
		if errors.Is(err, repositories.ErrWellnessTurnNotFound) {
			return nil, apperrors.ErrWellnessRequestNotFound
		}
		return nil, err
	}

	row, err := s.wellnessRepo.GetTurnByID(ctx, turnID)
	if err != nil {
		return nil, err
	}
	return toTurnResponse(*row), nil
}

func toPromptResponse(prompt *models.WellnessPrompt) dto.WellnessPromptResponse {
	return dto.WellnessPromptResponse{
		ID:        prompt.ID,
		Text:      prompt.Text,
		Options:   prompt.Options,
		Screen:    prompt.Screen,
		Frequency: prompt.Frequency,
	}
}

func toCenterResponse(center *models.WellnessCenter) dto.WellnessCenterResponse {
	return dto.WellnessCenterResponse{
		ID:          center.ID,
		Name:        center.Name,
		Description: center.Description,
		Location:    center.Location,
		Contact:     center.Contact,
		Active:      center.Active,
	}
}

func toTurnResponse(row repositories.TurnRow) *dto.TurnResponse {
	return &dto.TurnResponse{
		ID:          row.Turn.ID,
		CenterID:    row.Turn.CenterID,
		CenterName:  row.CenterName,
		ScheduledAt: row.Turn.ScheduledAt,
		Status:      row.Turn.Status,
		QRToken:     row.Turn.QRToken,
		CreatedAt:   row.Turn.CreatedAt,
	}
}

func toTurnResponses(rows []repositories.TurnRow) []dto.TurnResponse {
	result := make([]dto.TurnResponse, 0, len(rows))
	for _, row := range rows {
		result = append(result, *toTurnResponse(row))
	}
	return result
}
