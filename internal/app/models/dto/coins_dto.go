package dto

import (
	"time"

	"github.com/google/uuid"
)

// CoinBalanceResponse is the current coin balance of a user
type CoinBalanceResponse struct {
	Balance int64 `json:"balance"`
}

// CoinAdjustRequest credits or debits a user's balance manually
type CoinAdjustRequest struct {
	UserID uuid.UUID `json:"userId" binding:"required"`
	Delta  int64     `json:"delta" binding:"required"`
	Reason string    `json:"reason" binding:"required,min=2,max=200"`
}

// LedgerEntryResponse is one movement in the coins ledger
type LedgerEntryResponse struct {
	ID         uuid.UUID  `json:"id"`
	Delta      int64      `json:"delta"`
	Reason     string     `json:"reason"`
	ActivityID *uuid.UUID `json:"activityId,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
}
