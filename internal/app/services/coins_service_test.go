package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uisgo/uisgo-backend/internal/app/models"
	"github.com/uisgo/uisgo-backend/internal/app/models/dto"
	"github.com/uisgo/uisgo-backend/internal/app/repositories"
	"github.com/uisgo/uisgo-backend/internal/pkg/apperrors"
)

// memCoinsStore keeps ledger entries in memory and derives the balance from
// their sum, like the real repository does in SQL.
type memCoinsStore struct {
	entries []*models.CoinsLedgerEntry
}

func (s *memCoinsStore) GetBalance(_ context.Context, userID uuid.UUID) (int64, error) {
	var sum int64
	for _, entry := range s.entries {
		if entry.UserID == userID {
			sum += entry.Delta
		}
	}
	return sum, nil
}

func (s *memCoinsStore) InsertEntry(_ context.Context, entry *models.CoinsLedgerEntry) error {
	s.entries = append(s.entries, entry)
	return nil
}

func (s *memCoinsStore) ListEntries(_ context.Context, userID uuid.UUID, limit, offset int) ([]*models.CoinsLedgerEntry, int64, error) {
	var result []*models.CoinsLedgerEntry
	for _, entry := range s.entries {
		if entry.UserID == userID {
			result = append(result, entry)
		}
	}
	return result, int64(len(result)), nil
}

type memUserStore struct {
	users map[uuid.UUID]*models.User
}

func (s *memUserStore) GetUserByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	return user, nil
}

func testCoinsService(users ...*models.User) (CoinsService, *memCoinsStore) {
	coins := &memCoinsStore{}
	byID := make(map[uuid.UUID]*models.User)
	for _, user := range users {
		byID[user.ID] = user
	}
	return NewCoinsService(coins, &memUserStore{users: byID}, zerolog.Nop()), coins
}

func TestAdjustAcceptsAnyDelta(t *testing.T) {
	ctx := context.Background()
	user := &models.User{ID: uuid.New(), Active: true}
	service, store := testCoinsService(user)

	resp, err := service.Adjust(ctx, &dto.CoinAdjustRequest{UserID: user.ID, Delta: 10, Reason: "seed"})
	require.NoError(t, err)
	assert.Equal(t, int64(10), resp.Balance)

	// A debit below zero is still appended; the ledger has no floor
	resp, err = service.Adjust(ctx, &dto.CoinAdjustRequest{UserID: user.ID, Delta: -100, Reason: "penalty"})
	require.NoError(t, err)
	assert.Equal(t, int64(-90), resp.Balance)
	assert.Len(t, store.entries, 2)
}

func TestAdjustBalanceIsLedgerSum(t *testing.T) {
	ctx := context.Background()
	user := &models.User{ID: uuid.New(), Active: true}
	service, _ := testCoinsService(user)

	for _, delta := range []int64{5, -3, 20, -1} {
		_, err := service.Adjust(ctx, &dto.CoinAdjustRequest{UserID: user.ID, Delta: delta, Reason: "move"})
		require.NoError(t, err)
	}

	balance, err := service.GetBalance(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(21), balance.Balance)
}

func TestAdjustRejectsZeroAndUnknownUser(t *testing.T) {
	ctx := context.Background()
	user := &models.User{ID: uuid.New(), Active: true}
	service, store := testCoinsService(user)

	_, err := service.Adjust(ctx, &dto.CoinAdjustRequest{UserID: user.ID, Delta: 0, Reason: "noop"})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, err = service.Adjust(ctx, &dto.CoinAdjustRequest{UserID: uuid.New(), Delta: 5, Reason: "ghost"})
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)

	assert.Empty(t, store.entries)
}
