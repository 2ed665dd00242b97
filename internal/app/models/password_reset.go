package models

import (
	"time"

	"github.com/google/uuid"
)

// PasswordResetToken is a single-use, time-limited reset token.
// At most one token per user is active at any time.
type PasswordResetToken struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	Used      bool      `json:"used"`
	CreatedAt time.Time `json:"createdAt"`
}
