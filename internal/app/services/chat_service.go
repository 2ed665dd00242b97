package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/uisgo/uisgo-backend/internal/app/models"
	"github.com/uisgo/uisgo-backend/internal/app/models/dto"
	"github.com/uisgo/uisgo-backend/internal/app/repositories"
	"github.com/uisgo/uisgo-backend/internal/pkg/apperrors"
	"github.com/uisgo/uisgo-backend/internal/db"
	"github.com/uisgo/uisgo-backend/internal/pkg/openai"
)

// ChatService defines the interface for coin-gated AI chat
type ChatService interface {
	CreateSession(ctx context.Context, userID uuid.UUID, req *dto.CreateChatSessionRequest) (*dto.ChatSessionResponse, error)
	ListSessions(ctx context.Context, userID uuid.UUID, limit, offset int) ([]dto.ChatSessionResponse, int64, error)
	ListMessages(ctx context.Context, userID uuid.UUID, sessionID uuid.UUID, limit, offset int) ([]dto.ChatMessageResponse, int64, error)
	SendMessage(ctx context.Context, userID uuid.UUID, sessionID uuid.UUID, req *dto.SendChatMessageRequest) (*dto.SendChatMessageResponse, error)
}

// chatServiceImpl implements ChatService
type chatServiceImpl struct {
	database     *db.PostgresDB
	chatRepo     *repositories.ChatRepository
	coinsRepo    *repositories.CoinsRepository
	client       openai.Client
	messageCost  int64
	systemPrompt string
	logger       zerolog.Logger
}

// NewChatService creates a new ChatService. An empty systemPrompt falls back
// to the default policy prompt.
func NewChatService(
	database *db.PostgresDB,
	chatRepo *repositories.ChatRepository,
	coinsRepo *repositories.CoinsRepository,
	client openai.Client,
	messageCost int64,
	systemPrompt string,
	logger zerolog.Logger,
) ChatService {
	if systemPrompt == "" {
		systemPrompt = DefaultChatPolicy.SystemPrompt
	}
	return &chatServiceImpl{
		database:     database,
		chatRepo:     chatRepo,
		coinsRepo:    coinsRepo,
		client:       client,
		messageCost:  messageCost,
		systemPrompt: systemPrompt,
		logger:       logger,
	}
}

// CreateSession opens a new chat session pinned to the current policy version
func (s *chatServiceImpl) CreateSession(ctx context.Context, userID uuid.UUID, req *dto.CreateChatSessionRequest) (*dto.ChatSessionResponse, error) {
	title := "Nueva conversación"
	if req.Title != nil && *req.Title != "" {
		title = *req.Title
	}

	session := &models.ChatSession{
		UserID:        userID,
		Title:         title,
		PolicyVersion: DefaultChatPolicy.Version,
	}
	id, err := s.chatRepo.CreateSession(ctx, session)
	if err != nil {
		return nil, err
	}
	session.ID = id

	return toChatSessionResponse(session), nil
}

// ListSessions returns the caller's sessions, newest first
func (s *chatServiceImpl) ListSessions(ctx context.Context, userID uuid.UUID, limit, offset int) ([]dto.ChatSessionResponse, int64, error) {
	sessions, total, err := s.chatRepo.ListSessions(ctx, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	result := make([]dto.ChatSessionResponse, 0, len(sessions))
	for _, session := range sessions {
		result = append(result, *toChatSessionResponse(session))
	}
	return result, total, nil
}

// requireSession loads a session and hides other users' sessions behind a
// not-found error.
func (s *chatServiceImpl) requireSession(ctx context.Context, userID, sessionID uuid.UUID) (*models.ChatSession, error) {
	session, err := s.chatRepo.GetSessionByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repositories.ErrChatSessionNotFound) {
			return nil, apperrors.ErrConversationNotFound
		}
		return nil, err
	}
	if session.UserID != userID {
		return nil, apperrors.ErrConversationNotFound
	}
	return session, nil
}

// ListMessages returns a session's messages in chronological order
func (s *chatServiceImpl) ListMessages(ctx context.Context, userID uuid.UUID, sessionID uuid.UUID, limit, offset int) ([]dto.ChatMessageResponse, int64, error) {
	if _, err := s.requireSession(ctx, userID, sessionID); err != nil {
		return nil, 0, err
	}

	messages, total, err := s.chatRepo.ListMessages(ctx, sessionID, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	result := make([]dto.ChatMessageResponse, 0, len(messages))
	for _, message := range messages {
		result = append(result, toChatMessageResponse(message))
	}
	return result, total, nil
}

// SendMessage stores the user turn, asks the completion provider for a reply
// and charges the message cost. The assistant message, the ledger debit and
// the session counter move in one transaction, so a failed completion never
// costs coins.
func (s *chatServiceImpl) SendMessage(ctx context.Context, userID uuid.UUID, sessionID uuid.UUID, req *dto.SendChatMessageRequest) (*dto.SendChatMessageResponse, error) {
	session, err := s.requireSession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}

	balance, err := s.coinsRepo.GetBalance(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := checkChatFunds(balance, s.messageCost); err != nil {
		return nil, err
	}

	userMessage := &models.ChatMessage{
		SessionID:   sessionID,
		Role:        models.ChatRoleUser,
		Content:     req.Content,
		Attachments: req.Attachments,
	}
	if err := s.chatRepo.InsertMessage(ctx, userMessage); err != nil {
		return nil, err
	}

	history, err := s.chatRepo.ListHistory(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	reply, err := s.client.Complete(ctx, completionMessages(s.systemPrompt, history))
	if err != nil {
		s.logger.Error().Err(err).
			Str("sessionID", sessionID.String()).
			Msg("Chat completion failed")
		return nil, fmt.Errorf("%w: %v", apperrors.ErrChatUpstream, err)
	}

	assistantMessage := &models.ChatMessage{
		SessionID:  sessionID,
		Role:       models.ChatRoleAssistant,
		Content:    reply,
		CoinsDelta: -s.messageCost,
	}

	err = s.database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		current, err := s.coinsRepo.GetBalanceTx(ctx, tx, userID)
		if err != nil {
			return err
		}
		if err := checkChatFunds(current, s.messageCost); err != nil {
			return err
		}

		if err := s.chatRepo.InsertMessageTx(ctx, tx, assistantMessage); err != nil {
			return err
		}

		entry := &models.CoinsLedgerEntry{
			UserID: userID,
			Delta:  -s.messageCost,
			Reason: models.LedgerReasonChatReply,
		}
		if err := s.coinsRepo.InsertEntryTx(ctx, tx, entry); err != nil {
			return err
		}

		return s.chatRepo.IncrementCoinsSpentTx(ctx, tx, sessionID, s.messageCost)
	})
	if err != nil {
		return nil, err
	}

	newBalance, err := s.coinsRepo.GetBalance(ctx, userID)
	if err != nil {
		return nil, err
	}

	if session.Title == "" || session.Title == "Nueva conversación" {
		title := truncateTitle(req.Content, 60)
		if err := s.chatRepo.UpdateSessionTitle(ctx, sessionID, &title); err != nil {
			s.logger.Warn().Err(err).
				Str("sessionID", sessionID.String()).
				Msg("Failed to update session title")
		}
	}

	s.logger.Info().
		Str("sessionID", sessionID.String()).
		Str("userID", userID.String()).
		Int64("cost", s.messageCost).
		Msg("Chat reply delivered")

	return &dto.SendChatMessageResponse{
		UserMessage:      toChatMessageResponse(userMessage),
		AssistantMessage: toChatMessageResponse(assistantMessage),
		CoinsCharged:     s.messageCost,
		NewBalance:       newBalance,
	}, nil
}

// checkChatFunds gates a reply on the caller's balance
func checkChatFunds(balance, cost int64) error {
	if balance < cost {
		return apperrors.ErrInsufficientCoins
	}
	return nil
}

// completionMessages builds the provider payload: the policy prompt first,
// then the session's full prior history in order.
func completionMessages(systemPrompt string, history []*models.ChatMessage) []openai.Message {
	messages := make([]openai.Message, 0, len(history)+1)
	messages = append(messages, openai.Message{Role: "system", Content: systemPrompt})
	for _, turn := range history {
		messages = append(messages, openai.Message{Role: turn.Role, Content: turn.Content})
	}
	return messages
}

// truncateTitle shortens s to at most max runes so multibyte characters are
// never split.
func truncateTitle(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

func toChatSessionResponse(session *models.ChatSession) *dto.ChatSessionResponse {
	return &dto.ChatSessionResponse{
		ID:            session.ID,
		Title:         session.Title,
		PolicyVersion: session.PolicyVersion,
		CoinsSpent:    session.CoinsSpent,
		CreatedAt:     session.CreatedAt,
	}
}

func toChatMessageResponse(message *models.ChatMessage) dto.ChatMessageResponse {
	return dto.ChatMessageResponse{
		ID:         message.ID,
		Role:       message.Role,
		Content:    message.Content,
		CoinsDelta: message.CoinsDelta,
		CreatedAt:  message.CreatedAt,
	}
}
