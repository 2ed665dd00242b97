package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// CreateChatSessionRequest opens a new chat session
type CreateChatSessionRequest struct {
	Title *string `json:"title"`
}

// SendChatMessageRequest posts a user message to a session
type SendChatMessageRequest struct {
	Content     string          `json:"content" binding:"required,min=1"`
	Attachments json.RawMessage `json:"attachments"`
}

// ChatSessionResponse is a session list item
type ChatSessionResponse struct {
	ID            uuid.UUID `json:"id"`
	Title         string    `json:"title"`
	PolicyVersion string    `json:"policyVersion"`
	CoinsSpent    int64     `json:"coinsSpent"`
	CreatedAt     time.Time `json:"createdAt"`
}

// ChatMessageResponse is one message in a session
type ChatMessageResponse struct {
	ID         uuid.UUID `json:"id"`
	Role       string    `json:"role"`
	Content    string    `json:"content"`
	CoinsDelta int64     `json:"coinsDelta"`
	CreatedAt  time.Time `json:"createdAt"`
}

// SendChatMessageResponse pairs the stored user message with the
// assistant reply and the balance after the debit
type SendChatMessageResponse struct {
	UserMessage      ChatMessageResponse `json:"userMessage"`
	AssistantMessage ChatMessageResponse `json:"assistantMessage"`
	CoinsCharged     int64               `json:"coinsCharged"`
	NewBalance       int64               `json:"newBalance"`
}
