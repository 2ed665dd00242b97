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

// Activity error types
var (
	// ErrActivityNotFound is returned when an activity is not found.
	ErrActivityNotFound = ErrNotFound
	// ErrSubmissionNotFound is returned when a submission is not found.
	ErrSubmissionNotFound = ErrNotFound
	// ErrAlreadySubmitted is returned when a user submits the same activity twice.
	ErrAlreadySubmitted = errors.New("activity already submitted by this user")
)

// ActivityRepository handles activity and submission database operations
type ActivityRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewActivityRepository creates a new ActivityRepository
func NewActivityRepository(db *pgxpool.Pool) *ActivityRepository {
	return &ActivityRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

const activityColumns = `id, title, description, q_text, q_type, q_options, q_correct,
	coins_on_complete, start_at, end_at, status, created_by, created_at`

func scanActivity(row pgx.Row) (*models.Activity, error) {
	a := &models.Activity{}
	err := row.Scan(
		&a.ID, &a.Title, &a.Description, &a.QText, &a.QType, &a.QOptions, &a.QCorrect,
		&a.CoinsOnComplete, &a.StartAt, &a.EndAt, &a.Status, &a.CreatedBy, &a.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// CreateActivityTx inserts an activity and its group targets in one transaction
func (r *ActivityRepository) CreateActivityTx(ctx context.Context, tx pgx.Tx, activity *models.Activity, targetGroupIDs []uuid.UUID) (uuid.UUID, error) {
	query := `
		INSERT INTO activities (title, description, q_text, q_type, q_options, q_correct,
			coins_on_complete, start_at, end_at, status, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at`

	err := tx.QueryRow(ctx, query,
		activity.Title, activity.Description, activity.QText, activity.QType,
		activity.QOptions, activity.QCorrect, activity.CoinsOnComplete,
		activity.StartAt, activity.EndAt, activity.Status, activity.CreatedBy,
	).Scan(&activity.ID, &activity.CreatedAt)
	if err != nil {
		return uuid.Nil, fmt.Errorf("error creating activity: %w", err)
	}

	for _, groupID := range targetGroupIDs {
		_, err := tx.Exec(ctx,
			`INSERT INTO activity_targets (activity_id, group_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			activity.ID, groupID)
		if err != nil {
			return uuid.Nil, fmt.Errorf("error creating activity target: %w", err)
		}
	}

	return activity.ID, nil
}

// GetActivityByID retrieves an activity by ID
func (r *ActivityRepository) GetActivityByID(ctx context.Context, id uuid.UUID) (*models.Activity, error) {
	sql, args, err := r.sb.Select(activityColumns).
		From("activities").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get activity query: %w", err)
	}

	activity, err := scanActivity(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrActivityNotFound
		}
		logger.Error().Err(err).Str("activityID", id.String()).Msg("Error scanning activity row")
		return nil, fmt.Errorf("error getting activity by ID: %w", err)
	}

	return activity, nil
}

// GetTargetGroupIDs retrieves the group targets of an activity
func (r *ActivityRepository) GetTargetGroupIDs(ctx context.Context, activityID uuid.UUID) ([]uuid.UUID, error) {
	query := `SELECT group_id FROM activity_targets WHERE activity_id = $1 ORDER BY group_id`

	rows, err := r.db.Query(ctx, query, activityID)
	if err != nil {
		return nil, fmt.Errorf("error querying activity targets: %w", err)
	}
	defer rows.Close()

	ids := []uuid.UUID{}
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning activity target row: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating activity target rows: %w", err)
	}

	return ids, nil
}

// ListForOwner retrieves activities created by a user
func (r *ActivityRepository) ListForOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]*models.Activity, int64, error) {
	var total int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM activities WHERE created_by = $1`, ownerID).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("error counting activities: %w", err)
	}

	sql, args, err := r.sb.Select(activityColumns).
		From("activities").
		Where(squirrel.Eq{"created_by": ownerID}).
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list activities query: %w", err)
	}

	activities, err := r.queryActivities(ctx, sql, args...)
	if err != nil {
		return nil, 0, err
	}

	return activities, total, nil
}

// ListForStudent retrieves published activities targeted at the user's groups
func (r *ActivityRepository) ListForStudent(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*models.Activity, int64, error) {
	where := `
		a.status = 'published'
		AND a.id IN (
			SELECT t.activity_id FROM activity_targets t
			JOIN group_memberships m ON m.group_id = t.group_id
			WHERE m.user_id = $1
		)`

	var total int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM activities a WHERE `+where, userID).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("error counting student activities: %w", err)
	}

	query := `SELECT ` + activityColumns + ` FROM activities a WHERE ` + where + `
		ORDER BY a.created_at DESC LIMIT $2 OFFSET $3`

	activities, err := r.queryActivities(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	return activities, total, nil
}

func (r *ActivityRepository) queryActivities(ctx context.Context, query string, args ...any) ([]*models.Activity, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing activity list query")
		return nil, fmt.Errorf("error querying activities: %w", err)
	}
	defer rows.Close()

	activities := []*models.Activity{}
	for rows.Next() {
		activity, err := scanActivity(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning activity row: %w", err)
		}
		activities = append(activities, activity)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating activity rows: %w", err)
	}

	return activities, nil
}

// UpdateActivity persists mutable activity fields
func (r *ActivityRepository) UpdateActivity(ctx context.Context, activity *models.Activity) error {
	sql, args, err := r.sb.Update("activities").
		SetMap(map[string]interface{}{
			"title":             activity.Title,
			"description":       activity.Description,
			"q_text":            activity.QText,
			"q_options":         activity.QOptions,
			"q_correct":         activity.QCorrect,
			"coins_on_complete": activity.CoinsOnComplete,
			"start_at":          activity.StartAt,
			"end_at":            activity.EndAt,
			"status":            activity.Status,
		}).
		Where(squirrel.Eq{"id": activity.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update activity query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("activityID", activity.ID.String()).Msg("Error executing update activity query")
		return fmt.Errorf("error updating activity: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrActivityNotFound
	}

	return nil
}

// DeleteActivity removes an activity; targets and submissions cascade
func (r *ActivityRepository) DeleteActivity(ctx context.Context, id uuid.UUID) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM activities WHERE id = $1`, id)
	if err != nil {
		logger.Error().Err(err).Str("activityID", id.String()).Msg("Error executing delete activity query")
		return fmt.Errorf("error deleting activity: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrActivityNotFound
	}

	return nil
}

// HasSubmitted reports whether the user already has a submission for the activity
func (r *ActivityRepository) HasSubmitted(ctx context.Context, activityID, userID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM submissions WHERE activity_id = $1 AND user_id = $2)`

	var exists bool
	if err := r.db.QueryRow(ctx, query, activityID, userID).Scan(&exists); err != nil {
		return false, fmt.Errorf("error checking submission existence: %w", err)
	}

	return exists, nil
}

// CreateSubmissionTx inserts a submission within a transaction
func (r *ActivityRepository) CreateSubmissionTx(ctx context.Context, tx pgx.Tx, sub *models.Submission) (uuid.UUID, error) {
	query := `
		INSERT INTO submissions (activity_id, user_id, answer, is_correct, score, status, awarded_coins, graded_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at`

	err := tx.QueryRow(ctx, query,
		sub.ActivityID, sub.UserID, sub.Answer, sub.IsCorrect, sub.Score,
		sub.Status, sub.AwardedCoins, sub.GradedBy,
	).Scan(&sub.ID, &sub.CreatedAt, &sub.UpdatedAt)
	if err != nil {
		if isDuplicateKeyError(err) {
			return uuid.Nil, ErrAlreadySubmitted
		}
		return uuid.Nil, fmt.Errorf("error creating submission: %w", err)
	}

	return sub.ID, nil
}

// GetSubmission retrieves a user's submission for an activity
func (r *ActivityRepository) GetSubmission(ctx context.Context, activityID, userID uuid.UUID) (*models.Submission, error) {
	query := `
		SELECT id, activity_id, user_id, answer, is_correct, score, status, awarded_coins, graded_by, created_at, updated_at
		FROM submissions
		WHERE activity_id = $1 AND user_id = $2`

	sub := &models.Submission{}
	err := r.db.QueryRow(ctx, query, activityID, userID).Scan(
		&sub.ID, &sub.ActivityID, &sub.UserID, &sub.Answer, &sub.IsCorrect, &sub.Score,
		&sub.Status, &sub.AwardedCoins, &sub.GradedBy, &sub.CreatedAt, &sub.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSubmissionNotFound
		}
		return nil, fmt.Errorf("error getting submission: %w", err)
	}

	return sub, nil
}

// GetSubmissionByID retrieves a submission by its primary key
func (r *ActivityRepository) GetSubmissionByID(ctx context.Context, id uuid.UUID) (*models.Submission, error) {
	query := `
		SELECT id, activity_id, user_id, answer, is_correct, score, status, awarded_coins, graded_by, created_at, updated_at
		FROM submissions
		WHERE id = $1`

	sub := &models.Submission{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&sub.ID, &sub.ActivityID, &sub.UserID, &sub.Answer, &sub.IsCorrect, &sub.Score,
		&sub.Status, &sub.AwardedCoins, &sub.GradedBy, &sub.CreatedAt, &sub.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSubmissionNotFound
		}
		return nil, fmt.Errorf("error getting submission by ID: %w", err)
	}

	return sub, nil
}

// SubmissionRow pairs a submission with the submitting user's info
type SubmissionRow struct {
	Submission models.Submission
	UserEmail  string
	UserName   *string
}

// ListSubmissions retrieves all submissions of an activity with user info
func (r *ActivityRepository) ListSubmissions(ctx context.Context, activityID uuid.UUID) ([]SubmissionRow, error) {
	query := `
		SELECT s.id, s.activity_id, s.user_id, s.answer, s.is_correct, s.score, s.status,
		       s.awarded_coins, s.graded_by, s.created_at, s.updated_at, u.email, u.full_name
		FROM submissions s
		JOIN users u ON u.id = s.user_id
		WHERE s.activity_id = $1
		ORDER BY s.created_at ASC`

	rows, err := r.db.Query(ctx, query, activityID)
	if err != nil {
		logger.Error().Err(err).Str("activityID", activityID.String()).Msg("Error executing list submissions query")
		return nil, fmt.Errorf("error querying submissions: %w", err)
	}
	defer rows.Close()

	result := []SubmissionRow{}
	for rows.Next() {
		var row SubmissionRow
		err := rows.Scan(
			&row.Submission.ID, &row.Submission.ActivityID, &row.Submission.UserID,
			&row.Submission.Answer, &row.Submission.IsCorrect, &row.Submission.Score,
			&row.Submission.Status, &row.Submission.AwardedCoins, &row.Submission.GradedBy,
			&row.Submission.CreatedAt, &row.Submission.UpdatedAt, &row.UserEmail, &row.UserName,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning submission row: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating submission rows: %w", err)
	}

	return result, nil
}

// UpdateSubmissionGradeTx records a manual grade within a transaction
func (r *ActivityRepository) UpdateSubmissionGradeTx(ctx context.Context, tx pgx.Tx, sub *models.Submission) error {
	query := `
		UPDATE submissions
		SET status = $1, score = $2, is_correct = $3, awarded_coins = $4, graded_by = $5, updated_at = now()
		WHERE id = $6`

	cmdTag, err := tx.Exec(ctx, query, sub.Status, sub.Score, sub.IsCorrect, sub.AwardedCoins, sub.GradedBy, sub.ID)
	if err != nil {
		return fmt.Errorf("error updating submission grade: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrSubmissionNotFound
	}

	return nil
}

// SubmittedActivityIDs returns which of the given activities the user has submitted
func (r *ActivityRepository) SubmittedActivityIDs(ctx context.Context, userID uuid.UUID, activityIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	if len(activityIDs) == 0 {
		return map[uuid.UUID]bool{}, nil
	}

	sql, args, err := r.sb.Select("activity_id").
		From("submissions").
		Where(squirrel.Eq{"user_id": userID, "activity_id": activityIDs}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build submitted activities query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying submitted activities: %w", err)
	}
	defer rows.Close()

	submitted := map[uuid.UUID]bool{}
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning submitted activity row: %w", err)
		}
		submitted[id] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating submitted activity rows: %w", err)
	}

	return submitted, nil
}

// CountActivitiesForGroup counts distinct activities targeted at a group
func (r *ActivityRepository) CountActivitiesForGroup(ctx context.Context, groupID uuid.UUID) (int, error) {
	query := `SELECT COUNT(DISTINCT activity_id) FROM activity_targets WHERE group_id = $1`

	var count int
	if err := r.db.QueryRow(ctx, query, groupID).Scan(&count); err != nil {
		logger.Error().Err(err).Str("groupID", groupID.String()).Msg("Error counting group activities")
		return 0, fmt.Errorf("error counting group activities: %w", err)
	}
	return count, nil
}

// GroupSubmissionStats aggregates submissions to activities targeted at a group
type GroupSubmissionStats struct {
	Total             int
	Correct           int
	RespondedStudents int
}

// GetGroupSubmissionStats returns submission totals for a group in one query
func (r *ActivityRepository) GetGroupSubmissionStats(ctx context.Context, groupID uuid.UUID) (GroupSubmissionStats, error) {
	query := `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE s.is_correct IS TRUE),
		       COUNT(DISTINCT s.user_id)
		FROM submissions s
		JOIN activity_targets t ON t.activity_id = s.activity_id
		WHERE t.group_id = $1`

	var stats GroupSubmissionStats
	err := r.db.QueryRow(ctx, query, groupID).Scan(&stats.Total, &stats.Correct, &stats.RespondedStudents)
	if err != nil {
		logger.Error().Err(err).Str("groupID", groupID.String()).Msg("Error querying group submission stats")
		return GroupSubmissionStats{}, fmt.Errorf("error querying group submission stats: %w", err)
	}
	return stats, nil
}
