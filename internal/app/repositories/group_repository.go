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

// Group error types
var (
	// ErrGroupNotFound is returned when a group is not found.
	ErrGroupNotFound = ErrNotFound
	// ErrAlreadyMember is returned when adding a user who is already in the group.
	ErrAlreadyMember = errors.New("user is already a member of this group")
)

// GroupRow pairs a group with the aggregates list views need
type GroupRow struct {
	Group       models.Group
	MemberCount int
	OwnerEmail  string
	OwnerName   *string
}

// GroupRepository handles group and membership database operations
type GroupRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewGroupRepository creates a new GroupRepository
func NewGroupRepository(db *pgxpool.Pool) *GroupRepository {
	return &GroupRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateGroup inserts a group and returns its generated ID
func (r *GroupRepository) CreateGroup(ctx context.Context, group *models.Group) (uuid.UUID, error) {
	sql, args, err := r.sb.Insert("groups").
		Columns("name", "subject", "created_by").
		Values(group.Name, group.Subject, group.CreatedBy).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to build create group query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&group.ID, &group.CreatedAt)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing create group query")
		return uuid.Nil, fmt.Errorf("error creating group: %w", err)
	}

	return group.ID, nil
}

// GetGroupByID retrieves a group by ID
func (r *GroupRepository) GetGroupByID(ctx context.Context, id uuid.UUID) (*models.Group, error) {
	sql, args, err := r.sb.Select("id", "name", "subject", "created_by", "created_at").
		From("groups").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get group query: %w", err)
	}

	group := &models.Group{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(&group.ID, &group.Name, &group.Subject, &group.CreatedBy, &group.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrGroupNotFound
		}
		logger.Error().Err(err).Str("groupID", id.String()).Msg("Error scanning group row")
		return nil, fmt.Errorf("error getting group by ID: %w", err)
	}

	return group, nil
}

const groupRowQuery = `
	SELECT g.id, g.name, g.subject, g.created_by, g.created_at,
	       (SELECT COUNT(*) FROM group_memberships m WHERE m.group_id = g.id) AS member_count,
	       u.email, u.full_name
	FROM groups g
	JOIN users u ON u.id = g.created_by
`

func (r *GroupRepository) queryGroupRows(ctx context.Context, query string, args ...any) ([]GroupRow, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing group list query")
		return nil, fmt.Errorf("error querying groups: %w", err)
	}
	defer rows.Close()

	result := []GroupRow{}
	for rows.Next() {
		var row GroupRow
		err := rows.Scan(
			&row.Group.ID, &row.Group.Name, &row.Group.Subject, &row.Group.CreatedBy, &row.Group.CreatedAt,
			&row.MemberCount, &row.OwnerEmail, &row.OwnerName,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning group row: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating group rows: %w", err)
	}

	return result, nil
}

// ListGroupsForOwner retrieves the groups created by a user
func (r *GroupRepository) ListGroupsForOwner(ctx context.Context, ownerID uuid.UUID) ([]GroupRow, error) {
	query := groupRowQuery + ` WHERE g.created_by = $1 ORDER BY g.created_at ASC`
	return r.queryGroupRows(ctx, query, ownerID)
}

// ListGroupsForMember retrieves the groups a user belongs to
func (r *GroupRepository) ListGroupsForMember(ctx context.Context, userID uuid.UUID) ([]GroupRow, error) {
	query := groupRowQuery + `
	WHERE g.id IN (SELECT group_id FROM group_memberships WHERE user_id = $1)
	ORDER BY g.created_at ASC`
	return r.queryGroupRows(ctx, query, userID)
}

// GetGroupRow retrieves one group together with its list aggregates
func (r *GroupRepository) GetGroupRow(ctx context.Context, id uuid.UUID) (*GroupRow, error) {
	query := groupRowQuery + ` WHERE g.id = $1`
	rows, err := r.queryGroupRows(ctx, query, id)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrGroupNotFound
	}
	return &rows[0], nil
}

// UpdateGroup updates a group's name and subject
func (r *GroupRepository) UpdateGroup(ctx context.Context, group *models.Group) error {
	sql, args, err := r.sb.Update("groups").
		SetMap(map[string]interface{}{
			"name":    group.Name,
			"subject": group.Subject,
		}).
		Where(squirrel.Eq{"id": group.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update group query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("groupID", group.ID.String()).Msg("Error executing update group query")
		return fmt.Errorf("error updating group: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrGroupNotFound
	}

	return nil
}

// DeleteGroup deletes a group; memberships and invites cascade
func (r *GroupRepository) DeleteGroup(ctx context.Context, id uuid.UUID) error {
	sql, args, err := r.sb.Delete("groups").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete group query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("groupID", id.String()).Msg("Error executing delete group query")
		return fmt.Errorf("error deleting group: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrGroupNotFound
	}

	return nil
}

// AddMember inserts a membership row
func (r *GroupRepository) AddMember(ctx context.Context, groupID, userID uuid.UUID, roleInGroup string) error {
	sql, args, err := r.sb.Insert("group_memberships").
		Columns("group_id", "user_id", "role_in_group").
		Values(groupID, userID, roleInGroup).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build add member query: %w", err)
	}

	_, err = r.db.Exec(ctx, sql, args...)
	if err != nil {
		if isDuplicateKeyError(err) {
			return ErrAlreadyMember
		}
		logger.Error().Err(err).Str("groupID", groupID.String()).Str("userID", userID.String()).Msg("Error executing add member query")
		return fmt.Errorf("error adding group member: %w", err)
	}

	return nil
}

// AddMemberTx inserts a membership row within a transaction
func (r *GroupRepository) AddMemberTx(ctx context.Context, tx pgx.Tx, groupID, userID uuid.UUID, roleInGroup string) error {
	query := `INSERT INTO group_memberships (group_id, user_id, role_in_group) VALUES ($1, $2, $3)`

	_, err := tx.Exec(ctx, query, groupID, userID, roleInGroup)
	if err != nil {
		if isDuplicateKeyError(err) {
			return ErrAlreadyMember
		}
		return fmt.Errorf("error adding group member: %w", err)
	}

	return nil
}

// IsMember reports whether the user belongs to the group
func (r *GroupRepository) IsMember(ctx context.Context, groupID, userID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM group_memberships WHERE group_id = $1 AND user_id = $2)`

	var exists bool
	if err := r.db.QueryRow(ctx, query, groupID, userID).Scan(&exists); err != nil {
		return false, fmt.Errorf("error checking group membership: %w", err)
	}

	return exists, nil
}

// CountMembers returns the number of membership rows for a group
func (r *GroupRepository) CountMembers(ctx context.Context, groupID uuid.UUID) (int, error) {
	query := `SELECT COUNT(*) FROM group_memberships WHERE group_id = $1`

	var count int
	if err := r.db.QueryRow(ctx, query, groupID).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting group members: %w", err)
	}

	return count, nil
}

// ListMembers retrieves the members of a group with their user info
func (r *GroupRepository) ListMembers(ctx context.Context, groupID uuid.UUID) ([]*models.GroupMember, error) {
	query := `
		SELECT m.id, m.group_id, m.user_id, m.role_in_group, m.created_at, u.email, u.full_name
		FROM group_memberships m
		JOIN users u ON u.id = m.user_id
		WHERE m.group_id = $1
		ORDER BY m.created_at ASC`

	rows, err := r.db.Query(ctx, query, groupID)
	if err != nil {
		logger.Error().Err(err).Str("groupID", groupID.String()).Msg("Error executing list members query")
		return nil, fmt.Errorf("error querying group members: %w", err)
	}
	defer rows.Close()

	members := []*models.GroupMember{}
	for rows.Next() {
		m := &models.GroupMember{}
		err := rows.Scan(&m.ID, &m.GroupID, &m.UserID, &m.RoleInGroup, &m.CreatedAt, &m.Email, &m.FullName)
		if err != nil {
			return nil, fmt.Errorf("error scanning group member row: %w", err)
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating group member rows: %w", err)
	}

	return members, nil
}
