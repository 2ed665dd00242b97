package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/uisgo/uisgo-backend/internal/app/models"
	"github.com/uisgo/uisgo-backend/internal/pkg/logger"
)

// ErrChatSessionNotFound is returned when a chat session is not found.
var ErrChatSessionNotFound = ErrNotFound

// ChatRepository handles chat session and message database operations
type ChatRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewChatRepository creates a new ChatRepository
func NewChatRepository(db *pgxpool.Pool) *ChatRepository {
	return &ChatRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

const sessionColumns = "id, user_id, title, policy_version, coins_spent, created_at"

func scanSession(row pgx.Row) (*models.ChatSession, error) {
	s := &models.ChatSession{}
	err := row.Scan(&s.ID, &s.UserID, &s.Title, &s.PolicyVersion, &s.CoinsSpent, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// CreateSession inserts a new chat session
func (r *ChatRepository) CreateSession(ctx context.Context, session *models.ChatSession) (uuid.UUID, error) {
	sql, args, err := r.sb.Insert("chat_sessions").
		Columns("user_id", "title", "policy_version").
		Values(session.UserID, session.Title, session.PolicyVersion).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to build create session query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&session.ID, &session.CreatedAt)
	if err != nil {
		logger.Error().Err(err).Str("userID", session.UserID.String()).Msg("Error executing create chat session query")
		return uuid.Nil, fmt.Errorf("error creating chat session: %w", err)
	}

	return session.ID, nil
}

// GetSessionByID retrieves a chat session by ID
func (r *ChatRepository) GetSessionByID(ctx context.Context, id uuid.UUID) (*models.ChatSession, error) {
	sql, args, err := r.sb.Select(sessionColumns).
		From("chat_sessions").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get session query: %w", err)
	}

	session, err := scanSession(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrChatSessionNotFound
		}
		logger.Error().Err(err).Str("sessionID", id.String()).Msg("Error scanning chat session row")
		return nil, fmt.Errorf("error getting chat session by ID: %w", err)
	}

	return session, nil
}

// ListSessions retrieves a user's chat sessions, newest first
func (r *ChatRepository) ListSessions(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*models.ChatSession, int64, error) {
	var total int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM chat_sessions WHERE user_id = $1`, userID).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("error counting chat sessions: %w", err)
	}

	sql, args, err := r.sb.Select(sessionColumns).
		From("chat_sessions").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list sessions query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("userID", userID.String()).Msg("Error executing list chat sessions query")
		return nil, 0, fmt.Errorf("error querying chat sessions: %w", err)
	}
	defer rows.Close()

	sessions := []*models.ChatSession{}
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning chat session row: %w", err)
		}
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating chat session rows: %w", err)
	}

	return sessions, total, nil
}

// UpdateSessionTitle renames a session
func (r *ChatRepository) UpdateSessionTitle(ctx context.Context, id uuid.UUID, title *string) error {
	cmdTag, err := r.db.Exec(ctx, `UPDATE chat_sessions SET title = $1 WHERE id = $2`, title, id)
	if err != nil {
		return fmt.Errorf("error updating chat session title: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrChatSessionNotFound
	}

	return nil
}

const messageColumns = "id, session_id, role, content, attachments, coins_delta, created_at"

func scanMessage(row pgx.Row) (*models.ChatMessage, error) {
	m := &models.ChatMessage{}
	err := row.Scan(&m.ID, &m.SessionID, &m.Role, &m.Content, &m.Attachments, &m.CoinsDelta, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// InsertMessage appends a message to a session
func (r *ChatRepository) InsertMessage(ctx context.Context, message *models.ChatMessage) error {
	sql, args, err := r.sb.Insert("chat_messages").
		Columns("session_id", "role", "content", "attachments", "coins_delta").
		Values(message.SessionID, message.Role, message.Content, message.Attachments, message.CoinsDelta).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert message query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&message.ID, &message.CreatedAt)
	if err != nil {
		logger.Error().Err(err).Str("sessionID", message.SessionID.String()).Msg("Error inserting chat message")
		return fmt.Errorf("error inserting chat message: %w", err)
	}

	return nil
}

// InsertMessageTx appends a message within a transaction
func (r *ChatRepository) InsertMessageTx(ctx context.Context, tx pgx.Tx, message *models.ChatMessage) error {
	query := `
		INSERT INTO chat_messages (session_id, role, content, attachments, coins_delta)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	err := tx.QueryRow(ctx, query,
		message.SessionID, message.Role, message.Content, message.Attachments, message.CoinsDelta,
	).Scan(&message.ID, &message.CreatedAt)
	if err != nil {
		return fmt.Errorf("error inserting chat message: %w", err)
	}

	return nil
}

// IncrementCoinsSpentTx adds to a session's spent counter within a transaction
func (r *ChatRepository) IncrementCoinsSpentTx(ctx context.Context, tx pgx.Tx, sessionID uuid.UUID, amount int64) error {
	cmdTag, err := tx.Exec(ctx,
		`UPDATE chat_sessions SET coins_spent = coins_spent + $1 WHERE id = $2`, amount, sessionID)
	if err != nil {
		return fmt.Errorf("error incrementing session coins spent: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrChatSessionNotFound
	}

	return nil
}

// ListMessages retrieves a session's messages in chronological order
func (r *ChatRepository) ListMessages(ctx context.Context, sessionID uuid.UUID, limit, offset int) ([]*models.ChatMessage, int64, error) {
	var total int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM chat_messages WHERE session_id = $1`, sessionID).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("error counting chat messages: %w", err)
	}

	sql, args, err := r.sb.Select(messageColumns).
		From("chat_messages").
		Where(squirrel.Eq{"session_id": sessionID}).
		OrderBy("created_at ASC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list messages query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("sessionID", sessionID.String()).Msg("Error executing list chat messages query")
		return nil, 0, fmt.Errorf("error querying chat messages: %w", err)
	}
	defer rows.Close()

	messages := []*models.ChatMessage{}
	for rows.Next() {
		message, err := scanMessage(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning chat message row: %w", err)
		}
		messages = append(messages, message)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating chat message rows: %w", err)
	}

	return messages, total, nil
}

// ListHistory returns every message of a session in chronological order,
// for building completion context
func (r *ChatRepository) ListHistory(ctx context.Context, sessionID uuid.UUID) ([]*models.ChatMessage, error) {
	query := `
		SELECT ` + messageColumns + `
		FROM chat_messages
		WHERE session_id = $1
		ORDER BY created_at ASC`

	rows, err := r.db.Query(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("error querying chat history: %w", err)
	}
	defer rows.Close()

	messages := []*models.ChatMessage{}
	for rows.Next() {
		message, err := scanMessage(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning chat message row: %w", err)
		}
		messages = append(messages, message)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating chat message rows: %w", err)
	}

	return messages, nil
}
