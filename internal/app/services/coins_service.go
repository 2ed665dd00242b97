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

// CoinsService defines the interface for coin balance and ledger operations
type CoinsService interface {
	GetBalance(ctx context.Context, userID uuid.UUID) (*dto.CoinBalanceResponse, error)
	ListLedger(ctx context.Context, userID uuid.UUID, limit, offset int) ([]dto.LedgerEntryResponse, int64, error)
	Adjust(ctx context.Context, req *dto.CoinAdjustRequest) (*dto.CoinBalanceResponse, error)
}

// coinsStore is the slice of the coins repository this service needs
type coinsStore interface {
	GetBalance(ctx context.Context, userID uuid.UUID) (int64, error)
	InsertEntry(ctx context.Context, entry *models.CoinsLedgerEntry) error
	ListEntries(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*models.CoinsLedgerEntry, int64, error)
}

// userStore resolves users targeted by manual adjustments
type userStore interface {
	GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// coinsServiceImpl implements CoinsService
type coinsServiceImpl struct {
	coinsRepo coinsStore
	userRepo  userStore
	logger    zerolog.Logger
}

// NewCoinsService creates a new CoinsService
func NewCoinsService(
	coinsRepo coinsStore,
	userRepo userStore,
	logger zerolog.Logger,
) CoinsService {
	return &coinsServiceImpl{
		coinsRepo: coinsRepo,
		userRepo:  userRepo,
		logger:    logger,
	}
}

// GetBalance returns the user's coin balance
func (s *coinsServiceImpl) GetBalance(ctx context.Context, userID uuid.UUID) (*dto.CoinBalanceResponse, error) {
	balance, err := s.coinsRepo.GetBalance(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &dto.CoinBalanceResponse{Balance: balance}, nil
}

// ListLedger returns the user's ledger entries, newest first
func (s *coinsServiceImpl) ListLedger(ctx context.Context, userID uuid.UUID, limit, offset int) ([]dto.LedgerEntryResponse, int64, error) {
	entries, total, err := s.coinsRepo.ListEntries(ctx, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	result := make([]dto.LedgerEntryResponse, 0, len(entries))
	for _, entry := range entries {
		result = append(result, dto.LedgerEntryResponse{
			ID:         entry.ID,
			Delta:      entry.Delta,
			Reason:     entry.Reason,
			ActivityID: entry.ActivityID,
			CreatedAt:  entry.CreatedAt,
		})
	}

	return result, total, nil
}

// Adjust applies a manual credit or debit to a user's balance. Any signed
// delta is accepted; the ledger itself has no floor.
func (s *coinsServiceImpl) Adjust(ctx context.Context, req *dto.CoinAdjustRequest) (*dto.CoinBalanceResponse, error) {
	if req.Delta == 0 {
		return nil, fmt.Errorf("%w: delta cannot be zero", apperrors.ErrValidationFailed)
	}

	if _, err := s.userRepo.GetUserByID(ctx, req.UserID); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}

	entry := &models.CoinsLedgerEntry{
		UserID: req.UserID,
		Delta:  req.Delta,
		Reason: req.Reason,
	}
	if err := s.coinsRepo.InsertEntry(ctx, entry); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("userID", req.UserID.String()).
		Int64("delta", req.Delta).
		Str("reason", req.Reason).
		Msg("Manual coin adjustment")

	balance, err := s.coinsRepo.GetBalance(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	return &dto.CoinBalanceResponse{Balance: balance}, nil
}
