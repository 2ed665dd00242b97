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

// Question error types
var (
	// ErrQuestionNotFound is returned when a question is not found.
	ErrQuestionNotFound = ErrNotFound
	// ErrAlreadyAnswered is returned when a user answers the same question twice.
	ErrAlreadyAnswered = errors.New("question already answered by this user")
)

// QuestionTargetRef is a question target joined with its group name
type QuestionTargetRef struct {
	GroupID   uuid.UUID
	GroupName string
}

// QuestionRepository handles question, response and credit database operations
type QuestionRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewQuestionRepository creates a new QuestionRepository
func NewQuestionRepository(db *pgxpool.Pool) *QuestionRepository {
	return &QuestionRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

const questionColumns = `id, title, body, category, q_type, options, reward_credits, reward_coins, active, created_by, created_at`

func scanQuestion(row pgx.Row) (*models.Question, error) {
	q := &models.Question{}
	err := row.Scan(
		&q.ID, &q.Title, &q.Body, &q.Category, &q.Type, &q.Options,
		&q.RewardCredits, &q.RewardCoins, &q.Active, &q.CreatedBy, &q.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return q, nil
}

// CreateQuestionTx inserts a question and its group targets in one transaction
func (r *QuestionRepository) CreateQuestionTx(ctx context.Context, tx pgx.Tx, question *models.Question, groupIDs []uuid.UUID) (uuid.UUID, error) {
	query := `
		INSERT INTO questions (title, body, category, q_type, options, reward_credits, reward_coins, active, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at`

	err := tx.QueryRow(ctx, query,
		question.Title, question.Body, question.Category, question.Type, question.Options,
		question.RewardCredits, question.RewardCoins, question.Active, question.CreatedBy,
	).Scan(&question.ID, &question.CreatedAt)
	if err != nil {
		return uuid.Nil, fmt.Errorf("error creating question: %w", err)
	}

	if err := insertQuestionTargets(ctx, tx, question.ID, groupIDs); err != nil {
		return uuid.Nil, err
	}

	return question.ID, nil
}

func insertQuestionTargets(ctx context.Context, tx pgx.Tx, questionID uuid.UUID, groupIDs []uuid.UUID) error {
	for _, groupID := range groupIDs {
		_, err := tx.Exec(ctx,
			`INSERT INTO question_targets (question_id, group_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			questionID, groupID)
		if err != nil {
			return fmt.Errorf("error creating question target: %w", err)
		}
	}
	return nil
}

// ReplaceTargetsTx swaps a question's group targets within a transaction
func (r *QuestionRepository) ReplaceTargetsTx(ctx context.Context, tx pgx.Tx, questionID uuid.UUID, groupIDs []uuid.UUID) error {
	_, err := tx.Exec(ctx, `DELETE FROM question_targets WHERE question_id = $1`, questionID)
	if err != nil {
		return fmt.Errorf("error clearing question targets: %w", err)
	}

	return insertQuestionTargets(ctx, tx, questionID, groupIDs)
}

// GetQuestionByID retrieves a question by ID
func (r *QuestionRepository) GetQuestionByID(ctx context.Context, id uuid.UUID) (*models.Question, error) {
	sql, args, err := r.sb.Select(questionColumns).
		From("questions").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get question query: %w", err)
	}

	question, err := scanQuestion(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrQuestionNotFound
		}
		logger.Error().Err(err).Str("questionID", id.String()).Msg("Error scanning question row")
		return nil, fmt.Errorf("error getting question by ID: %w", err)
	}

	return question, nil
}

// GetTargets retrieves a question's targets with their group names
func (r *QuestionRepository) GetTargets(ctx context.Context, questionID uuid.UUID) ([]QuestionTargetRef, error) {
	query := `
		SELECT t.group_id, g.name
		FROM question_targets t
		JOIN groups g ON g.id = t.group_id
		WHERE t.question_id = $1
		ORDER BY g.name ASC`

	rows, err := r.db.Query(ctx, query, questionID)
	if err != nil {
		return nil, fmt.Errorf("error querying question targets: %w", err)
	}
	defer rows.Close()

	targets := []QuestionTargetRef{}
	for rows.Next() {
		var t QuestionTargetRef
		if err := rows.Scan(&t.GroupID, &t.GroupName); err != nil {
			return nil, fmt.Errorf("error scanning question target row: %w", err)
		}
		targets = append(targets, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating question target rows: %w", err)
	}

	return targets, nil
}

// QuestionFilter narrows question listings. OnlyGlobal keeps questions with
// zero group targets; GroupID keeps questions targeting that group.
type QuestionFilter struct {
	OnlyGlobal bool
	GroupID    *uuid.UUID
}

func (f QuestionFilter) conditions() []squirrel.Sqlizer {
	var conds []squirrel.Sqlizer
	if f.OnlyGlobal {
		conds = append(conds, squirrel.Expr(
			`NOT EXISTS (SELECT 1 FROM question_targets t WHERE t.question_id = questions.id)`))
	}
	if f.GroupID != nil {
		conds = append(conds, squirrel.Expr(
			`EXISTS (SELECT 1 FROM question_targets t WHERE t.question_id = questions.id AND t.group_id = ?)`,
			*f.GroupID))
	}
	return conds
}

// ListForOwner retrieves questions created by a user, newest first
func (r *QuestionRepository) ListForOwner(ctx context.Context, ownerID uuid.UUID, filter QuestionFilter, limit, offset int) ([]*models.Question, int64, error) {
	countBuilder := r.sb.Select("COUNT(*)").
		From("questions").
		Where(squirrel.Eq{"created_by": ownerID})
	listBuilder := r.sb.Select(questionColumns).
		From("questions").
		Where(squirrel.Eq{"created_by": ownerID})
	for _, cond := range filter.conditions() {
		countBuilder = countBuilder.Where(cond)
		listBuilder = listBuilder.Where(cond)
	}

	countSQL, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count questions query: %w", err)
	}
	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting questions: %w", err)
	}

	sql, args, err := listBuilder.
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list questions query: %w", err)
	}

	questions, err := r.queryQuestions(ctx, sql, args...)
	if err != nil {
		return nil, 0, err
	}

	return questions, total, nil
}

// ListForStudent retrieves active questions visible to the user.
// A question with no targets is global and visible to everyone; otherwise
// it must target one of the user's groups.
func (r *QuestionRepository) ListForStudent(ctx context.Context, userID uuid.UUID, filter QuestionFilter, limit, offset int) ([]*models.Question, int64, error) {
	where := `
		q.active = true
		AND (
			NOT EXISTS (SELECT 1 FROM question_targets t WHERE t.question_id = q.id)
			OR EXISTS (
				SELECT 1 FROM question_targets t
				JOIN group_memberships m ON m.group_id = t.group_id
				WHERE t.question_id = q.id AND m.user_id = $1
			)
		)`
	args := []any{userID}

	if filter.OnlyGlobal {
		where += ` AND NOT EXISTS (SELECT 1 FROM question_targets t WHERE t.question_id = q.id)`
	}
	if filter.GroupID != nil {
		args = append(args, *filter.GroupID)
		where += fmt.Sprintf(` AND EXISTS (SELECT 1 FROM question_targets t WHERE t.question_id = q.id AND t.group_id = $%d)`, len(args))
	}

	var total int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM questions q WHERE `+where, args...).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("error counting student questions: %w", err)
	}

	query := fmt.Sprintf(`SELECT `+questionColumns+` FROM questions q WHERE `+where+`
		ORDER BY q.created_at DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	questions, err := r.queryQuestions(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}

	return questions, total, nil
}

func (r *QuestionRepository) queryQuestions(ctx context.Context, query string, args ...any) ([]*models.Question, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing question list query")
		return nil, fmt.Errorf("error querying questions: %w", err)
	}
	defer rows.Close()

	questions := []*models.Question{}
	for rows.Next() {
		question, err := scanQuestion(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning question row: %w", err)
		}
		questions = append(questions, question)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating question rows: %w", err)
	}

	return questions, nil
}

// ListByGroup retrieves active questions targeted at a group
func (r *QuestionRepository) ListByGroup(ctx context.Context, groupID uuid.UUID) ([]*models.Question, error) {
	query := `SELECT ` + questionColumns + ` FROM questions q
		WHERE q.active = true
		  AND EXISTS (SELECT 1 FROM question_targets t WHERE t.question_id = q.id AND t.group_id = $1)
		ORDER BY q.created_at DESC`

	return r.queryQuestions(ctx, query, groupID)
}

// UpdateQuestion persists mutable question fields
func (r *QuestionRepository) UpdateQuestion(ctx context.Context, question *models.Question) error {
	sql, args, err := r.sb.Update("questions").
		SetMap(map[string]interface{}{
			"title":          question.Title,
			"body":           question.Body,
			"category":       question.Category,
			"options":        question.Options,
			"reward_credits": question.RewardCredits,
			"reward_coins":   question.RewardCoins,
			"active":         question.Active,
		}).
		Where(squirrel.Eq{"id": question.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update question query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("questionID", question.ID.String()).Msg("Error executing update question query")
		return fmt.Errorf("error updating question: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrQuestionNotFound
	}

	return nil
}

// DeleteQuestion removes a question; targets and responses cascade
func (r *QuestionRepository) DeleteQuestion(ctx context.Context, id uuid.UUID) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM questions WHERE id = $1`, id)
	if err != nil {
		logger.Error().Err(err).Str("questionID", id.String()).Msg("Error executing delete question query")
		return fmt.Errorf("error deleting question: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrQuestionNotFound
	}

	return nil
}

// HasAnswered reports whether the user already answered the question
func (r *QuestionRepository) HasAnswered(ctx context.Context, questionID, userID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM question_responses WHERE question_id = $1 AND user_id = $2)`

	var exists bool
	if err := r.db.QueryRow(ctx, query, questionID, userID).Scan(&exists); err != nil {
		return false, fmt.Errorf("error checking question response existence: %w", err)
	}

	return exists, nil
}

// AnsweredQuestionIDs returns which of the given questions the user has answered
func (r *QuestionRepository) AnsweredQuestionIDs(ctx context.Context, userID uuid.UUID, questionIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	if len(questionIDs) == 0 {
		return map[uuid.UUID]bool{}, nil
	}

	sql, args, err := r.sb.Select("question_id").
		From("question_responses").
		Where(squirrel.Eq{"user_id": userID, "question_id": questionIDs}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build answered questions query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying answered questions: %w", err)
	}
	defer rows.Close()

	answered := map[uuid.UUID]bool{}
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning answered question row: %w", err)
		}
		answered[id] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating answered question rows: %w", err)
	}

	return answered, nil
}

// CreateResponseTx inserts a question response within a transaction.
// The unique (question_id, user_id) constraint backs the answer-once rule.
func (r *QuestionRepository) CreateResponseTx(ctx context.Context, tx pgx.Tx, resp *models.QuestionResponse) (uuid.UUID, error) {
	query := `
		INSERT INTO question_responses (question_id, user_id, answer, credits_awarded, coins_awarded)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	err := tx.QueryRow(ctx, query,
		resp.QuestionID, resp.UserID, resp.Answer, resp.CreditsAwarded, resp.CoinsAwarded,
	).Scan(&resp.ID, &resp.CreatedAt)
	if err != nil {
		if isDuplicateKeyError(err) {
			return uuid.Nil, ErrAlreadyAnswered
		}
		return uuid.Nil, fmt.Errorf("error creating question response: %w", err)
	}

	return resp.ID, nil
}

// QuestionResponseRow pairs a response with the answering user's info
type QuestionResponseRow struct {
	Response  models.QuestionResponse
	UserEmail string
	UserName  *string
}

// ListResponses retrieves all responses to a question with user info
func (r *QuestionRepository) ListResponses(ctx context.Context, questionID uuid.UUID) ([]QuestionResponseRow, error) {
	query := `
		SELECT r.id, r.question_id, r.user_id, r.answer, r.credits_awarded, r.coins_awarded, r.created_at,
		       u.email, u.full_name
		FROM question_responses r
		JOIN users u ON u.id = r.user_id
		WHERE r.question_id = $1
		ORDER BY r.created_at ASC`

	rows, err := r.db.Query(ctx, query, questionID)
	if err != nil {
		logger.Error().Err(err).Str("questionID", questionID.String()).Msg("Error executing list responses query")
		return nil, fmt.Errorf("error querying question responses: %w", err)
	}
	defer rows.Close()

	result := []QuestionResponseRow{}
	for rows.Next() {
		var row QuestionResponseRow
		err := rows.Scan(
			&row.Response.ID, &row.Response.QuestionID, &row.Response.UserID, &row.Response.Answer,
			&row.Response.CreditsAwarded, &row.Response.CoinsAwarded, &row.Response.CreatedAt,
			&row.UserEmail, &row.UserName,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning question response row: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating question response rows: %w", err)
	}

	return result, nil
}

// GetCreditBalance returns the user's question credit balance, zero if no row exists
func (r *QuestionRepository) GetCreditBalance(ctx context.Context, userID uuid.UUID) (int64, error) {
	query := `SELECT COALESCE((SELECT balance FROM question_credits WHERE user_id = $1), 0)`

	var balance int64
	if err := r.db.QueryRow(ctx, query, userID).Scan(&balance); err != nil {
		return 0, fmt.Errorf("error getting credit balance: %w", err)
	}

	return balance, nil
}

// AddCreditsTx creates the credit row if missing and adds to the balance,
// returning the new balance. Runs within a transaction.
func (r *QuestionRepository) AddCreditsTx(ctx context.Context, tx pgx.Tx, userID uuid.UUID, delta int64) (int64, error) {
	query := `
		INSERT INTO question_credits (user_id, balance, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (user_id) DO UPDATE
		SET balance = question_credits.balance + EXCLUDED.balance, updated_at = now()
		RETURNING balance`

	var balance int64
	if err := tx.QueryRow(ctx, query, userID, delta).Scan(&balance); err != nil {
		return 0, fmt.Errorf("error adding question credits: %w", err)
	}

	return balance, nil
}
