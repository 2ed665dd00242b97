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

// Invite error types
var (
	// ErrInviteNotFound is returned when an invite code is not found.
	ErrInviteNotFound = ErrNotFound
	// ErrInviteCodeConflict is returned when a generated code collides with an existing one.
	ErrInviteCodeConflict = errors.New("invite code already exists")
)

// InviteRepository handles invite code database operations
type InviteRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewInviteRepository creates a new InviteRepository
func NewInviteRepository(db *pgxpool.Pool) *InviteRepository {
	return &InviteRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

const inviteColumns = "id, group_id, code, expires_at, max_uses, uses, is_active, created_by, created_at"

func scanInvite(row pgx.Row) (*models.InviteCode, error) {
	inv := &models.InviteCode{}
	err := row.Scan(&inv.ID, &inv.GroupID, &inv.Code, &inv.ExpiresAt, &inv.MaxUses, &inv.Uses, &inv.IsActive, &inv.CreatedBy, &inv.CreatedAt)
	if err != nil {
		return nil, err
	}
	return inv, nil
}

// CreateInvite inserts a new invite code
func (r *InviteRepository) CreateInvite(ctx context.Context, invite *models.InviteCode) (uuid.UUID, error) {
	sql, args, err := r.sb.Insert("invite_codes").
		Columns("group_id", "code", "expires_at", "max_uses", "is_active", "created_by").
		Values(invite.GroupID, invite.Code, invite.ExpiresAt, invite.MaxUses, invite.IsActive, invite.CreatedBy).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to build create invite query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&invite.ID, &invite.CreatedAt)
	if err != nil {
		if isDuplicateKeyError(err) {
			return uuid.Nil, ErrInviteCodeConflict
		}
		logger.Error().Err(err).Str("groupID", invite.GroupID.String()).Msg("Error executing create invite query")
		return uuid.Nil, fmt.Errorf("error creating invite code: %w", err)
	}

	return invite.ID, nil
}

// GetInviteByCode retrieves an invite by its code
func (r *InviteRepository) GetInviteByCode(ctx context.Context, code string) (*models.InviteCode, error) {
	sql, args, err := r.sb.Select(inviteColumns).
		From("invite_codes").
		Where(squirrel.Eq{"code": code}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get invite query: %w", err)
	}

	invite, err := scanInvite(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInviteNotFound
		}
		logger.Error().Err(err).Str("code", code).Msg("Error scanning invite row")
		return nil, fmt.Errorf("error getting invite by code: %w", err)
	}

	return invite, nil
}

// GetInviteByCodeForUpdate locks and retrieves an invite row within a transaction.
// The lock serializes concurrent joins against the same code.
func (r *InviteRepository) GetInviteByCodeForUpdate(ctx context.Context, tx pgx.Tx, code string) (*models.InviteCode, error) {
	query := `
		SELECT ` + inviteColumns + `
		FROM invite_codes
		WHERE code = $1
		FOR UPDATE`

	invite, err := scanInvite(tx.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInviteNotFound
		}
		return nil, fmt.Errorf("error locking invite row: %w", err)
	}

	return invite, nil
}

// IncrementUsesTx bumps the use counter of an invite within a transaction
func (r *InviteRepository) IncrementUsesTx(ctx context.Context, tx pgx.Tx, inviteID uuid.UUID) error {
	query := `UPDATE invite_codes SET uses = uses + 1 WHERE id = $1`

	cmdTag, err := tx.Exec(ctx, query, inviteID)
	if err != nil {
		return fmt.Errorf("error incrementing invite uses: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrInviteNotFound
	}

	return nil
}

// GetActiveInviteForGroup retrieves the most recent active invite of a group
func (r *InviteRepository) GetActiveInviteForGroup(ctx context.Context, groupID uuid.UUID) (*models.InviteCode, error) {
	sql, args, err := r.sb.Select(inviteColumns).
		From("invite_codes").
		Where(squirrel.Eq{"group_id": groupID, "is_active": true}).
		OrderBy("created_at DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get active invite query: %w", err)
	}

	invite, err := scanInvite(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInviteNotFound
		}
		logger.Error().Err(err).Str("groupID", groupID.String()).Msg("Error scanning active invite row")
		return nil, fmt.Errorf("error getting active invite: %w", err)
	}

	return invite, nil
}

// Deactivate marks an invite inactive so the code can no longer be redeemed
func (r *InviteRepository) Deactivate(ctx context.Context, inviteID uuid.UUID) error {
	sql, args, err := r.sb.Update("invite_codes").
		Set("is_active", false).
		Where(squirrel.Eq{"id": inviteID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build deactivate invite query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("inviteID", inviteID.String()).Msg("Error executing deactivate invite query")
		return fmt.Errorf("error deactivating invite: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrInviteNotFound
	}

	return nil
}
