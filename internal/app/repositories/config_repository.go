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

// Config error types
var (
	// ErrQuickActionNotFound is returned when a quick action is not found.
	ErrQuickActionNotFound = ErrNotFound
	// ErrFeatureFlagNotFound is returned when a feature flag is not found.
	ErrFeatureFlagNotFound = ErrNotFound
)

// ConfigRepository handles quick action and feature flag database operations
type ConfigRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewConfigRepository creates a new ConfigRepository
func NewConfigRepository(db *pgxpool.Pool) *ConfigRepository {
	return &ConfigRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

const quickActionColumns = "id, title, subtitle, icon, target_route, allowed_roles, order_index, active, created_at, updated_at"

func scanQuickAction(row pgx.Row) (*models.QuickAction, error) {
	q := &models.QuickAction{}
	err := row.Scan(&q.ID, &q.Title, &q.Subtitle, &q.Icon, &q.TargetRoute, &q.AllowedRoles,
		&q.OrderIndex, &q.Active, &q.CreatedAt, &q.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return q, nil
}

// ListQuickActions retrieves quick actions in display order.
// When activeOnly is set, inactive actions are skipped.
func (r *ConfigRepository) ListQuickActions(ctx context.Context, activeOnly bool) ([]*models.QuickAction, error) {
	builder := r.sb.Select(quickActionColumns).From("quick_actions")
	if activeOnly {
		builder = builder.Where(squirrel.Eq{"active": true})
	}

	sql, args, err := builder.OrderBy("order_index ASC", "created_at ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list quick actions query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list quick actions query")
		return nil, fmt.Errorf("error querying quick actions: %w", err)
	}
	defer rows.Close()

	actions := []*models.QuickAction{}
	for rows.Next() {
		action, err := scanQuickAction(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning quick action row: %w", err)
		}
		actions = append(actions, action)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating quick action rows: %w", err)
	}

	return actions, nil
}

// GetQuickActionByID retrieves a quick action by ID
func (r *ConfigRepository) GetQuickActionByID(ctx context.Context, id uuid.UUID) (*models.QuickAction, error) {
	sql, args, err := r.sb.Select(quickActionColumns).
		From("quick_actions").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get quick action query: %w", err)
	}

	action, err := scanQuickAction(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrQuickActionNotFound
		}
		return nil, fmt.Errorf("error getting quick action by ID: %w", err)
	}

	return action, nil
}

// CreateQuickAction inserts a quick action
func (r *ConfigRepository) CreateQuickAction(ctx context.Context, action *models.QuickAction) (uuid.UUID, error) {
	sql, args, err := r.sb.Insert("quick_actions").
		Columns("title", "subtitle", "icon", "target_route", "allowed_roles", "order_index", "active").
		Values(action.Title, action.Subtitle, action.Icon, action.TargetRoute, action.AllowedRoles, action.OrderIndex, action.Active).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to build create quick action query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&action.ID, &action.CreatedAt, &action.UpdatedAt)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing create quick action query")
		return uuid.Nil, fmt.Errorf("error creating quick action: %w", err)
	}

	return action.ID, nil
}

// UpdateQuickAction persists mutable quick action fields
func (r *ConfigRepository) UpdateQuickAction(ctx context.Context, action *models.QuickAction) error {
	sql, args, err := r.sb.Update("quick_actions").
		SetMap(map[string]interface{}{
			"title":         action.Title,
			"subtitle":      action.Subtitle,
			"icon":          action.Icon,
			"target_route":  action.TargetRoute,
			"allowed_roles": action.AllowedRoles,
			"order_index":   action.OrderIndex,
			"active":        action.Active,
			"updated_at":    squirrel.Expr("now()"),
		}).
		Where(squirrel.Eq{"id": action.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update quick action query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("actionID", action.ID.String()).Msg("Error executing update quick action query")
		return fmt.Errorf("error updating quick action: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrQuickActionNotFound
	}

	return nil
}

// DeleteQuickAction removes a quick action
func (r *ConfigRepository) DeleteQuickAction(ctx context.Context, id uuid.UUID) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM quick_actions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting quick action: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrQuickActionNotFound
	}

	return nil
}

// CountQuickActions returns how many quick actions exist
func (r *ConfigRepository) CountQuickActions(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM quick_actions`).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting quick actions: %w", err)
	}
	return count, nil
}

// GetFeatureFlag retrieves a feature flag by key
func (r *ConfigRepository) GetFeatureFlag(ctx context.Context, key string) (*models.FeatureFlag, error) {
	query := `SELECT key, description, value, updated_at FROM feature_flags WHERE key = $1`

	flag := &models.FeatureFlag{}
	err := r.db.QueryRow(ctx, query, key).Scan(&flag.Key, &flag.Description, &flag.Value, &flag.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrFeatureFlagNotFound
		}
		return nil, fmt.Errorf("error getting feature flag: %w", err)
	}

	return flag, nil
}

// ListFeatureFlags retrieves all feature flags ordered by key
func (r *ConfigRepository) ListFeatureFlags(ctx context.Context) ([]*models.FeatureFlag, error) {
	rows, err := r.db.Query(ctx, `SELECT key, description, value, updated_at FROM feature_flags ORDER BY key ASC`)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list feature flags query")
		return nil, fmt.Errorf("error querying feature flags: %w", err)
	}
	defer rows.Close()

	flags := []*models.FeatureFlag{}
	for rows.Next() {
		flag := &models.FeatureFlag{}
		if err := rows.Scan(&flag.Key, &flag.Description, &flag.Value, &flag.UpdatedAt); err != nil {
			return nil, fmt.Errorf("error scanning feature flag row: %w", err)
		}
		flags = append(flags, flag)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating feature flag rows: %w", err)
	}

	return flags, nil
}

// UpsertFeatureFlag sets a feature flag, creating it if missing
func (r *ConfigRepository) UpsertFeatureFlag(ctx context.Context, flag *models.FeatureFlag) error {
	query := `
		INSERT INTO feature_flags (key, description, value, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (key) DO UPDATE
		SET description = EXCLUDED.description, value = EXCLUDED.value, updated_at = now()
		RETURNING updated_at`

	err := r.db.QueryRow(ctx, query, flag.Key, flag.Description, flag.Value).Scan(&flag.UpdatedAt)
	if err != nil {
		logger.Error().Err(err).Str("key", flag.Key).Msg("Error upserting feature flag")
		return fmt.Errorf("error upserting feature flag: %w", err)
	}

	return nil
}
