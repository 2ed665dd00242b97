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
	"github.com/uisgo/uisgo-backend/internal/pkg/auth"
)

// XP progression constants. Coins and answered questions feed a derived
// experience total; levels are 100 XP wide.
const (
	XPPerAnswer = 10
	XPPerLevel  = 100
)

// UserService defines the interface for user and profile operations
type UserService interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*dto.UserProfileResponse, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req *dto.UpdateProfileRequest) (*dto.UserResponse, error)
	ListUsers(ctx context.Context, role *models.Role, limit, offset int) ([]dto.UserResponse, int64, error)
	CreateUser(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserResponse, error)
	SetActive(ctx context.Context, userID uuid.UUID, active bool) error
}

// userServiceImpl implements UserService
type userServiceImpl struct {
	userRepo     *repositories.UserRepository
	coinsRepo    *repositories.CoinsRepository
	questionRepo *repositories.QuestionRepository
	logger       zerolog.Logger
}

// NewUserService creates a new UserService
func NewUserService(
	userRepo *repositories.UserRepository,
	coinsRepo *repositories.CoinsRepository,
	questionRepo *repositories.QuestionRepository,
	logger zerolog.Logger,
) UserService {
	return &userServiceImpl{
		userRepo:     userRepo,
		coinsRepo:    coinsRepo,
		questionRepo: questionRepo,
		logger:       logger,
	}
}

// XPStats is the derived progression block of a profile
type XPStats struct {
	TotalXP    int64
	Level      int64
	XPInLevel  int64
	XPProgress float64
	XPToNext   int64
}

// ComputeXPStats derives progression from coin balance and answered count
func ComputeXPStats(coinsBalance int64, questionsAnswered int) XPStats {
	totalXP := coinsBalance + int64(questionsAnswered)*XPPerAnswer
	if totalXP < 0 {
		totalXP = 0
	}

	level := totalXP/XPPerLevel + 1
	if level < 1 {
		level = 1
	}
	xpInLevel := totalXP % XPPerLevel

	toNext := int64(XPPerLevel) - xpInLevel
	if xpInLevel == 0 {
		toNext = XPPerLevel
	}

	return XPStats{
		TotalXP:    totalXP,
		Level:      level,
		XPInLevel:  xpInLevel,
		XPProgress: float64(xpInLevel) / float64(XPPerLevel),
		XPToNext:   toNext,
	}
}

// GetProfile assembles the caller's profile with balances and progression
func (s *userServiceImpl) GetProfile(ctx context.Context, userID uuid.UUID) (*dto.UserProfileResponse, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}

	coins, err := s.coinsRepo.GetBalance(ctx, userID)
	if err != nil {
		return nil, err
	}
	credits, err := s.questionRepo.GetCreditBalance(ctx, userID)
	if err != nil {
		return nil, err
	}
	answered, err := s.userRepo.CountQuestionsAnswered(ctx, userID)
	if err != nil {
		return nil, err
	}

	xp := ComputeXPStats(coins, answered)

	return &dto.UserProfileResponse{
		ID:                user.ID,
		Email:             user.Email,
		FullName:          user.FullName,
		Role:              string(user.Role),
		Active:            user.Active,
		CreatedAt:         user.CreatedAt,
		CoinsBalance:      coins,
		QuestionCredits:   credits,
		QuestionsAnswered: answered,
		TotalXP:           xp.TotalXP,
		Level:             xp.Level,
		XPInLevel:         xp.XPInLevel,
		XPProgress:        xp.XPProgress,
		XPToNext:          xp.XPToNext,
	}, nil
}

// UpdateProfile changes the caller's display name
func (s *userServiceImpl) UpdateProfile(ctx context.Context, userID uuid.UUID, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	if err := s.userRepo.UpdateFullName(ctx, userID, &req.FullName); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := toUserResponse(user)
	return &resp, nil
}

// ListUsers retrieves users for administration
func (s *userServiceImpl) ListUsers(ctx context.Context, role *models.Role, limit, offset int) ([]dto.UserResponse, int64, error) {
	users, total, err := s.userRepo.ListUsers(ctx, role, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	result := make([]dto.UserResponse, 0, len(users))
	for _, user := range users {
		result = append(result, toUserResponse(user))
	}

	return result, total, nil
}

// CreateUser provisions an account with an explicit role
func (s *userServiceImpl) CreateUser(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserResponse, error) {
	role := models.Role(req.Role)
	if !role.IsValid() {
		return nil, fmt.Errorf("%w: unknown role %q", apperrors.ErrValidationFailed, req.Role)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("password hashing error: %w", err)
	}

	user := &models.User{
		Email:        req.Email,
		PasswordHash: hash,
		Role:         role,
		FullName:     req.FullName,
		Active:       true,
	}
	if _, err := s.userRepo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrEmailAlreadyExists) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, err
	}

	s.logger.Info().Str("userID", user.ID.String()).Str("role", req.Role).Msg("User created by admin")

	resp := toUserResponse(user)
	return &resp, nil
}

// SetActive enables or disables an account
func (s *userServiceImpl) SetActive(ctx context.Context, userID uuid.UUID, active bool) error {
	err := s.userRepo.SetActive(ctx, userID, active)
	if errors.Is(err, repositories.ErrUserNotFound) {
		return apperrors.ErrUserNotFound
	}
	return err
}

func toUserResponse(user *models.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		FullName:  user.FullName,
		Role:      string(user.Role),
		Active:    user.Active,
		CreatedAt: user.CreatedAt,
	}
}
