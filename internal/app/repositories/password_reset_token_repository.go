package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/uisgo/uisgo-backend/internal/app/models"
)

// ErrResetTokenNotFound is returned when a password reset token is not found.
var ErrResetTokenNotFound = ErrNotFound

// PasswordResetTokenRepository manages password reset tokens in the database
type PasswordResetTokenRepository struct {
	db *pgxpool.Pool
}

// NewPasswordResetTokenRepository creates a new PasswordResetTokenRepository
func NewPasswordResetTokenRepository(db *pgxpool.Pool) *PasswordResetTokenRepository {
	return &PasswordResetTokenRepository{
		db: db,
	}
}

// CreateToken stores a new password reset token
func (r *PasswordResetTokenRepository) CreateToken(ctx context.Context, token *models.PasswordResetToken) error {
	query := `
		INSERT INTO password_reset_tokens (user_id, token, expires_at)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	err := r.db.QueryRow(ctx, query, token.UserID, token.Token, token.ExpiresAt).
		Scan(&token.ID, &token.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating password reset token: %w", err)
	}

	return nil
}

// GetByToken retrieves a reset token by its value
func (r *PasswordResetTokenRepository) GetByToken(ctx context.Context, token string) (*models.PasswordResetToken, error) {
	query := `
		SELECT id, user_id, token, expires_at, used, created_at
		FROM password_reset_tokens
		WHERE token = $1`

	t := &models.PasswordResetToken{}
	err := r.db.QueryRow(ctx, query, token).Scan(&t.ID, &t.UserID, &t.Token, &t.ExpiresAt, &t.Used, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrResetTokenNotFound
		}
		return nil, fmt.Errorf("error retrieving password reset token: %w", err)
	}

	return t, nil
}

// MarkUsed marks a token as used to prevent reuse
func (r *PasswordResetTokenRepository) MarkUsed(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `UPDATE password_reset_tokens SET used = true WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error marking token as used: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrResetTokenNotFound
	}

	return nil
}

// InvalidateActiveTokens marks all of the user's unexpired unused tokens used.
// Issuing a new token always supersedes older ones.
func (r *PasswordResetTokenRepository) InvalidateActiveTokens(ctx context.Context, userID uuid.UUID) error {
	query := `
		UPDATE password_reset_tokens
		SET used = true
		WHERE user_id = $1 AND used = false AND expires_at > now()`

	_, err := r.db.Exec(ctx, query, userID)
	if err != nil {
		return fmt.Errorf("error invalidating password reset tokens: %w", err)
	}

	return nil
}
