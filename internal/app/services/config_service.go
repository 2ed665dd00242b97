package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/uisgo/uisgo-backend/internal/app/models"
	"github.com/uisgo/uisgo-backend/internal/app/models/dto"
	"github.com/uisgo/uisgo-backend/internal/app/repositories"
	"github.com/uisgo/uisgo-backend/internal/pkg/apperrors"
)

// ConfigService defines the interface for quick actions and feature flags
type ConfigService interface {
	ListQuickActionsForRole(ctx context.Context, role models.Role) ([]dto.QuickActionResponse, error)
	ListAllQuickActions(ctx context.Context) ([]*models.QuickAction, error)
	CreateQuickAction(ctx context.Context, req *dto.UpsertQuickActionRequest) (*models.QuickAction, error)
	UpdateQuickAction(ctx context.Context, id uuid.UUID, req *dto.UpsertQuickActionRequest) (*models.QuickAction, error)
	DeleteQuickAction(ctx context.Context, id uuid.UUID) error
	ListFeatureFlags(ctx context.Context) ([]dto.FeatureFlagResponse, error)
	GetFeatureFlag(ctx context.Context, key string) (*dto.FeatureFlagResponse, error)
	UpsertFeatureFlag(ctx context.Context, key string, req *dto.UpsertFeatureFlagRequest) (*dto.FeatureFlagResponse, error)
}

// configServiceImpl implements ConfigService
type configServiceImpl struct {
	configRepo *repositories.ConfigRepository
	logger     zerolog.Logger
}

// NewConfigService creates a new ConfigService
func NewConfigService(configRepo *repositories.ConfigRepository, logger zerolog.Logger) ConfigService {
	return &configServiceImpl{configRepo: configRepo, logger: logger}
}

// ListQuickActionsForRole returns the active shortcuts the role may see,
// ordered for display.
func (s *configServiceImpl) ListQuickActionsForRole(ctx context.Context, role models.Role) ([]dto.QuickActionResponse, error) {
	actions, err := s.configRepo.ListQuickActions(ctx, true)
	if err != nil {
		return nil, err
	}

	result := make([]dto.QuickActionResponse, 0, len(actions))
	for _, action := range actions {
		if !action.AllowsRole(role) {
			continue
		}
		result = append(result, dto.QuickActionResponse{
			ID:          action.ID,
			Title:       action.Title,
			Subtitle:    action.Subtitle,
			Icon:        action.Icon,
			TargetRoute: action.TargetRoute,
			OrderIndex:  action.OrderIndex,
		})
	}
	return result, nil
}

// ListAllQuickActions returns every shortcut including inactive ones
func (s *configServiceImpl) ListAllQuickActions(ctx context.Context) ([]*models.QuickAction, error) {
	return s.configRepo.ListQuickActions(ctx, false)
}

// CreateQuickAction stores a new shortcut
func (s *configServiceImpl) CreateQuickAction(ctx context.Context, req *dto.UpsertQuickActionRequest) (*models.QuickAction, error) {
	action := &models.QuickAction{
		Title:        req.Title,
		Subtitle:     req.Subtitle,
		Icon:         req.Icon,
		TargetRoute:  req.TargetRoute,
		AllowedRoles: req.AllowedRoles,
		OrderIndex:   req.OrderIndex,
		Active:       true,
	}
	if req.Active != nil {
		action.Active = *req.Active
	}

	if _, err := s.configRepo.CreateQuickAction(ctx, action); err != nil {
		return nil, err
	}
	return action, nil
}

// UpdateQuickAction replaces a shortcut's fields
func (s *configServiceImpl) UpdateQuickAction(ctx context.Context, id uuid.UUID, req *dto.UpsertQuickActionRequest) (*models.QuickAction, error) {
	action, err := s.configRepo.GetQuickActionByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrQuickActionNotFound) {
			return nil, apperrors.ErrQuickActionNotFound
		}
		return nil, err
	}

	action.Title = req.Title
	action.Subtitle = req.Subtitle
	action.Icon = req.Icon
	action.TargetRoute = req.TargetRoute
	action.AllowedRoles = req.AllowedRoles
	action.OrderIndex = req.OrderIndex
	if req.Active != nil {
		action.Active = *req.Active
	}

	if err := s.configRepo.UpdateQuickAction(ctx, action); err != nil {
		return nil, err
	}
	return action, nil
}

// DeleteQuickAction removes a shortcut
func (s *configServiceImpl) DeleteQuickAction(ctx context.Context, id uuid.UUID) error {
	err := s.configRepo.DeleteQuickAction(ctx, id)
	if errors.Is(err, repositories.ErrQuickActionNotFound) {
		return apperrors.ErrQuickActionNotFound
	}
	return err
}

// ListFeatureFlags returns all feature flags
func (s *configServiceImpl) ListFeatureFlags(ctx context.Context) ([]dto.FeatureFlagResponse, error) {
	flags, err := s.configRepo.ListFeatureFlags(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]dto.FeatureFlagResponse, 0, len(flags))
	for _, flag := range flags {
		result = append(result, toFlagResponse(flag))
	}
	return result, nil
}

// GetFeatureFlag returns one flag by key
func (s *configServiceImpl) GetFeatureFlag(ctx context.Context, key string) (*dto.FeatureFlagResponse, error) {
	flag, err := s.configRepo.GetFeatureFlag(ctx, key)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrResourceNotFound
		}
		return nil, err
	}
	resp := toFlagResponse(flag)
	return &resp, nil
}

// UpsertFeatureFlag creates or replaces a flag by key
func (s *configServiceImpl) UpsertFeatureFlag(ctx context.Context, key string, req *dto.UpsertFeatureFlagRequest) (*dto.FeatureFlagResponse, error) {
	flag := &models.FeatureFlag{
		Key:         key,
		Description: req.Description,
		Value:       req.Value,
	}
	if err := s.configRepo.UpsertFeatureFlag(ctx, flag); err != nil {
		return nil, err
	}

	s.logger.Info().Str("key", key).Msg("Feature flag updated")

	resp := toFlagResponse(flag)
	return &resp, nil
}

func toFlagResponse(flag *models.FeatureFlag) dto.FeatureFlagResponse {
	return dto.FeatureFlagResponse{
		Key:         flag.Key,
		Description: flag.Description,
		Value:       flag.Value,
	}
}
