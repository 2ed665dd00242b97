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

// Wellness error types
var (
	// ErrWellnessCenterNotFound is returned when a wellness center is not found.
	ErrWellnessCenterNotFound = ErrNotFound
	// ErrWellnessTurnNotFound is returned when a turn is not found.
	ErrWellnessTurnNotFound = ErrNotFound
)

// TurnRow pairs a turn with its center's name
type TurnRow struct {
	Turn       models.WellnessTurn
	CenterName string
}

// WellnessRepository handles wellness prompt, mood, center and turn operations
type WellnessRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewWellnessRepository creates a new WellnessRepository
func NewWellnessRepository(db *pgxpool.Pool) *WellnessRepository {
	return &WellnessRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// ListActivePrompts retrieves active prompts, optionally for one screen
func (r *WellnessRepository) ListActivePrompts(ctx context.Context, screen *string) ([]*models.WellnessPrompt, error) {
	builder := r.sb.Select("id", "text", "options", "screen", "frequency", "active", "created_at").
		From("wellness_prompts").
		Where(squirrel.Eq{"active": true})
	if screen != nil {
		builder = builder.Where(squirrel.Eq{"screen": *screen})
	}

	sql, args, err := builder.OrderBy("created_at ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list prompts query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list wellness prompts query")
		return nil, fmt.Errorf("error querying wellness prompts: %w", err)
	}
	defer rows.Close()

	prompts := []*models.WellnessPrompt{}
	for rows.Next() {
		p := &models.WellnessPrompt{}
		err := rows.Scan(&p.ID, &p.Text, &p.Options, &p.Screen, &p.Frequency, &p.Active, &p.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("error scanning wellness prompt row: %w", err)
		}
		prompts = append(prompts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating wellness prompt rows: %w", err)
	}

	return prompts, nil
}

// InsertMood stores a mood entry
func (r *WellnessRepository) InsertMood(ctx context.Context, mood *models.UserMood) error {
	sql, args, err := r.sb.Insert("user_moods").
		Columns("user_id", "prompt_id", "mood", "extra_data").
		Values(mood.UserID, mood.PromptID, mood.Mood, mood.ExtraData).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert mood query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&mood.ID, &mood.CreatedAt)
	if err != nil {
		logger.Error().Err(err).Str("userID", mood.UserID.String()).Msg("Error inserting mood entry")
		return fmt.Errorf("error inserting mood entry: %w", err)
	}

	return nil
}

// ListMoodsForUser retrieves a user's mood history, newest first
func (r *WellnessRepository) ListMoodsForUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*models.UserMood, int64, error) {
	var total int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM user_moods WHERE user_id = $1`, userID).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("error counting mood entries: %w", err)
	}

	sql, args, err := r.sb.Select("id", "user_id", "prompt_id", "mood", "extra_data", "created_at").
		From("user_moods").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list moods query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error querying mood entries: %w", err)
	}
	defer rows.Close()

	moods := []*models.UserMood{}
	for rows.Next() {
		m := &models.UserMood{}
		err := rows.Scan(&m.ID, &m.UserID, &m.PromptID, &m.Mood, &m.ExtraData, &m.CreatedAt)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning mood row: %w", err)
		}
		moods = append(moods, m)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating mood rows: %w", err)
	}

	return moods, total, nil
}

// ListActiveCenters retrieves all active wellness centers
func (r *WellnessRepository) ListActiveCenters(ctx context.Context) ([]*models.WellnessCenter, error) {
	sql, args, err := r.sb.Select("id", "name", "description", "location", "contact", "active", "created_at").
		From("wellness_centers").
		Where(squirrel.Eq{"active": true}).
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list centers query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list wellness centers query")
		return nil, fmt.Errorf("error querying wellness centers: %w", err)
	}
	defer rows.Close()

	centers := []*models.WellnessCenter{}
	for rows.Next() {
		c := &models.WellnessCenter{}
		err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.Location, &c.Contact, &c.Active, &c.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("error scanning wellness center row: %w", err)
		}
		centers = append(centers, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating wellness center rows: %w", err)
	}

	return centers, nil
}

// GetCenterByID retrieves a wellness center by ID
func (r *WellnessRepository) GetCenterByID(ctx context.Context, id uuid.UUID) (*models.WellnessCenter, error) {
	sql, args, err := r.sb.Select("id", "name", "description", "location", "contact", "active", "created_at").
		From("wellness_centers").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get center query: %w", err)
	}

	c := &models.WellnessCenter{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(&c.ID, &c.Name, &c.Description, &c.Location, &c.Contact, &c.Active, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrWellnessCenterNotFound
		}
		logger.Error().Err(err).Str("centerID", id.String()).Msg("Error scanning wellness center row")
		return nil, fmt.Errorf("error getting wellness center by ID: %w", err)
	}

	return c, nil
}

// CreateTurn inserts a wellness turn
func (r *WellnessRepository) CreateTurn(ctx context.Context, turn *models.WellnessTurn) (uuid.UUID, error) {
	sql, args, err := r.sb.Insert("wellness_turns").
		Columns("center_id", "user_id", "scheduled_at", "status", "qr_token").
		Values(turn.CenterID, turn.UserID, turn.ScheduledAt, turn.Status, turn.QRToken).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to build create turn query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&turn.ID, &turn.CreatedAt)
	if err != nil {
		logger.Error().Err(err).Str("userID", turn.UserID.String()).Msg("Error executing create turn query")
		return uuid.Nil, fmt.Errorf("error creating wellness turn: %w", err)
	}

	return turn.ID, nil
}

// GetTurnByID retrieves a turn by ID with its center name
func (r *WellnessRepository) GetTurnByID(ctx context.Context, id uuid.UUID) (*TurnRow, error) {
	query := `
		SELECT t.id, t.center_id, t.user_id, t.scheduled_at, t.status, t.qr_token, t.created_at, c.name
		FROM wellness_turns t
		JOIN wellness_centers c ON c.id = t.center_id
		WHERE t.id = $1`

	row := &TurnRow{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&row.Turn.ID, &row.Turn.CenterID, &row.Turn.UserID, &row.Turn.ScheduledAt,
		&row.Turn.Status, &row.Turn.QRToken, &row.Turn.CreatedAt, &row.CenterName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrWellnessTurnNotFound
		}
		return nil, fmt.Errorf("error getting wellness turn by ID: %w", err)
	}

	return row, nil
}

// ListTurnsForUser retrieves a user's turns, newest first
func (r *WellnessRepository) ListTurnsForUser(ctx context.Context, userID uuid.UUID) ([]TurnRow, error) {
	query := `
		SELECT t.id, t.center_id, t.user_id, t.scheduled_at, t.status, t.qr_token, t.created_at, c.name
		FROM wellness_turns t
		JOIN wellness_centers c ON c.id = t.center_id
		WHERE t.user_id = $1
		ORDER BY t.created_at DESC`

	return r.queryTurnRows(ctx, query, userID)
}

// ListTurnsForCenter retrieves a center's turns, optionally by status, oldest first
func (r *WellnessRepository) ListTurnsForCenter(ctx context.Context, centerID uuid.UUID, status *string) ([]TurnRow, error) {
	query := `
		SELECT t.id, t.center_id, t.user_id, t.scheduled_at, t.status, t.qr_token, t.created_at, c.name
		FROM wellness_turns t
		JOIN wellness_centers c ON c.id = t.center_id
		WHERE t.center_id = $1`
	args := []any{centerID}
	if status != nil {
		query += ` AND t.status = $2`
		args = append(args, *status)
	}
	query += ` ORDER BY t.created_at ASC`

	return r.queryTurnRows(ctx, query, args...)
}

func (r *WellnessRepository) queryTurnRows(ctx context.Context, query string, args ...any) ([]TurnRow, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing wellness turn list query")
		return nil, fmt.Errorf("error querying wellness turns: %w", err)
	}
	defer rows.Close()

	result := []TurnRow{}
	for rows.Next() {
		var row TurnRow
		err := rows.Scan(
			&row.Turn.ID, &row.Turn.CenterID, &row.Turn.UserID, &row.Turn.ScheduledAt,
			&row.Turn.Status, &row.Turn.QRToken, &row.Turn.CreatedAt, &row.CenterName,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning wellness turn row: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating wellness turn rows: %w", err)
	}

	return result, nil
}

// UpdateTurnStatus moves a turn to a new status
func (r *WellnessRepository) UpdateTurnStatus(ctx context.Context, id uuid.UUID, status string) error {
	cmdTag, err := r.db.Exec(ctx, `UPDATE wellness_turns SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		logger.Error().Err(err).Str("turnID", id.String()).Msg("Error executing update turn status query")
		return fmt.Errorf("error updating wellness turn status: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrWellnessTurnNotFound
	}

	return nil
}

// GetPromptByID retrieves a prompt by ID
func (r *WellnessRepository) GetPromptByID(ctx context.Context, id uuid.UUID) (*models.WellnessPrompt, error) {
	sql, args, err := r.sb.Select("id", "text", "options", "screen", "frequency", "active", "created_at").
		From("wellness_prompts").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get prompt query: %w", err)
	}

	p := &models.WellnessPrompt{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(&p.ID, &p.Text, &p.Options, &p.Screen, &p.Frequency, &p.Active, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		logger.Error().Err(err).Str("promptID", id.String()).Msg("Error scanning wellness prompt row")
		return nil, fmt.Errorf("error getting wellness prompt by ID: %w", err)
	}

	return p, nil
}

// CreatePrompt inserts a wellness prompt
func (r *WellnessRepository) CreatePrompt(ctx context.Context, prompt *models.WellnessPrompt) (uuid.UUID, error) {
	sql, args, err := r.sb.Insert("wellness_prompts").
		Columns("text", "options", "screen", "frequency", "active").
		Values(prompt.Text, prompt.Options, prompt.Screen, prompt.Frequency, prompt.Active).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to build create prompt query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&prompt.ID, &prompt.CreatedAt)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing create wellness prompt query")
		return uuid.Nil, fmt.Errorf("error creating wellness prompt: %w", err)
	}

	return prompt.ID, nil
}

// CreateCenter inserts a wellness center
func (r *WellnessRepository) CreateCenter(ctx context.Context, center *models.WellnessCenter) (uuid.UUID, error) {
	sql, args, err := r.sb.Insert("wellness_centers").
		Columns("name", "description", "location", "contact", "active").
		Values(center.Name, center.Description, center.Location, center.Contact, center.Active).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to build create center query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&center.ID, &center.CreatedAt)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing create wellness center query")
		return uuid.Nil, fmt.Errorf("error creating wellness center: %w", err)
	}

	return center.ID, nil
}
