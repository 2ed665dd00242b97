package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/uisgo/uisgo-backend/internal/app/models"
	"github.com/uisgo/uisgo-backend/internal/pkg/logger"
)

// CoinsRepository handles the append-only coins ledger.
// A user's balance is always the sum of their ledger deltas.
type CoinsRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewCoinsRepository creates a new CoinsRepository
func NewCoinsRepository(db *pgxpool.Pool) *CoinsRepository {
	return &CoinsRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

const balanceQuery = `SELECT COALESCE(SUM(delta), 0) FROM coins_ledger WHERE user_id = $1`

// GetBalance returns the user's current coin balance
func (r *CoinsRepository) GetBalance(ctx context.Context, userID uuid.UUID) (int64, error) {
	var balance int64
	if err := r.db.QueryRow(ctx, balanceQuery, userID).Scan(&balance); err != nil {
		logger.Error().Err(err).Str("userID", userID.String()).Msg("Error querying coin balance")
		return 0, fmt.Errorf("error getting coin balance: %w", err)
	}

	return balance, nil
}

// GetBalanceTx returns the balance inside a transaction so debit decisions
// see any uncommitted entries of the same transaction
func (r *CoinsRepository) GetBalanceTx(ctx context.Context, tx pgx.Tx, userID uuid.UUID) (int64, error) {
	var balance int64
	if err := tx.QueryRow(ctx, balanceQuery, userID).Scan(&balance); err != nil {
		return 0, fmt.Errorf("error getting coin balance: %w", err)
	}

	return balance, nil
}

// InsertEntry appends a ledger entry
func (r *CoinsRepository) InsertEntry(ctx context.Context, entry *models.CoinsLedgerEntry) error {
	sql, args, err := r.sb.Insert("coins_ledger").
		Columns("user_id", "activity_id", "delta", "reason").
		Values(entry.UserID, entry.ActivityID, entry.Delta, entry.Reason).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert ledger entry query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		logger.Error().Err(err).Str("userID", entry.UserID.String()).Msg("Error inserting ledger entry")
		return fmt.Errorf("error inserting ledger entry: %w", err)
	}

	return nil
}

// InsertEntryTx appends a ledger entry within a transaction
func (r *CoinsRepository) InsertEntryTx(ctx context.Context, tx pgx.Tx, entry *models.CoinsLedgerEntry) error {
	query := `
		INSERT INTO coins_ledger (user_id, activity_id, delta, reason)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	err := tx.QueryRow(ctx, query, entry.UserID, entry.ActivityID, entry.Delta, entry.Reason).
		Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("error inserting ledger entry: %w", err)
	}

	return nil
}

// ListEntries retrieves a user's ledger entries, newest first
func (r *CoinsRepository) ListEntries(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*models.CoinsLedgerEntry, int64, error) {
	var total int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM coins_ledger WHERE user_id = $1`, userID).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("error counting ledger entries: %w", err)
	}

	sql, args, err := r.sb.Select("id", "user_id", "activity_id", "delta", "reason", "created_at").
		From("coins_ledger").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list ledger entries query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("userID", userID.String()).Msg("Error executing list ledger entries query")
		return nil, 0, fmt.Errorf("error querying ledger entries: %w", err)
	}
	defer rows.Close()

	entries := []*models.CoinsLedgerEntry{}
	for rows.Next() {
		entry := &models.CoinsLedgerEntry{}
		err := rows.Scan(&entry.ID, &entry.UserID, &entry.ActivityID, &entry.Delta, &entry.Reason, &entry.CreatedAt)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning ledger entry row: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating ledger entry rows: %w", err)
	}

	return entries, total, nil
}
