package models

import (
	"time"

	"github.com/google/uuid"
)

// Ledger reason strings for system-generated entries
const (
	LedgerReasonActivityCompletion = "Activity completion (auto)"
	LedgerReasonQuestionReward     = "Question reward"
	LedgerReasonChatReply          = "Chat IA"
)

// CoinsLedgerEntry is an immutable record of a coin change.
// A user's balance is always the sum of their deltas.
type CoinsLedgerEntry struct {
	ID         uuid.UUID  `json:"id"`
	UserID     uuid.UUID  `json:"userId"`
	ActivityID *uuid.UUID `json:"activityId"`
	Delta      int64      `json:"delta"`
	Reason     string     `json:"reason"`
	CreatedAt  time.Time  `json:"createdAt"`
}
