package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Chat message roles
const (
	ChatRoleUser      = "user"
	ChatRoleAssistant = "assistant"
)

// ChatSession groups an ordered conversation for one user
type ChatSession struct {
	ID            uuid.UUID `json:"id"`
	UserID        uuid.UUID `json:"userId"`
	Title         string    `json:"title"`
	PolicyVersion string    `json:"policyVersion"`
	CoinsSpent    int64     `json:"coinsSpent"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// ChatMessage is a single turn. Assistant messages carry the coin debit
// they cost, mirroring the ledger entry written in the same transaction.
type ChatMessage struct {
	ID          uuid.UUID       `json:"id"`
	SessionID   uuid.UUID       `json:"sessionId"`
	Role        string          `json:"role"`
	Content     string          `json:"content"`
	Attachments json.RawMessage `json:"attachments"`
	CoinsDelta  int64           `json:"coinsDelta"`
	CreatedAt   time.Time       `json:"createdAt"`
}
