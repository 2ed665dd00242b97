package services

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uisgo/uisgo-backend/internal/app/models"
	"github.com/uisgo/uisgo-backend/internal/pkg/apperrors"
)

func TestGenerateInviteCode(t *testing.T) {
	pattern := regexp.MustCompile(`^[A-Z0-9]{8}$`)

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code, err := GenerateInviteCode()
		require.NoError(t, err)
		assert.Regexp(t, pattern, code)
		seen[code] = true
	}

	// 100 draws from a 36^8 space should not collide
	assert.Len(t, seen, 100)
}

func TestValidateInvite(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	// No expiry and no use limit
	assert.NoError(t, validateInvite(&models.InviteCode{IsActive: true}, now))

	assert.ErrorIs(t, validateInvite(&models.InviteCode{IsActive: false}, now), apperrors.ErrInviteInactive)
	assert.ErrorIs(t, validateInvite(&models.InviteCode{IsActive: true, ExpiresAt: &past}, now), apperrors.ErrInviteExpired)
	assert.NoError(t, validateInvite(&models.InviteCode{IsActive: true, ExpiresAt: &future}, now))

	// Inactive wins over every other reason
	assert.ErrorIs(t, validateInvite(&models.InviteCode{IsActive: false, ExpiresAt: &past}, now), apperrors.ErrInviteInactive)
}

func TestValidateInviteMaxUses(t *testing.T) {
	now := time.Now()
	maxUses := 2

	// The last remaining use is still redeemable
	invite := &models.InviteCode{IsActive: true, MaxUses: &maxUses, Uses: 1}
	assert.NoError(t, validateInvite(invite, now))

	invite.Uses = 2
	assert.ErrorIs(t, validateInvite(invite, now), apperrors.ErrInviteExhausted)

	invite.Uses = 3
	assert.ErrorIs(t, validateInvite(invite, now), apperrors.ErrInviteExhausted)
}
