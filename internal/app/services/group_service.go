package services

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	qrcode "github.com/skip2/go-qrcode"
	"github.com/uisgo/uisgo-backend/internal/app/auth"
	"github.com/uisgo/uisgo-backend/internal/app/models"
	"github.com/uisgo/uisgo-backend/internal/app/models/dto"
	"github.com/uisgo/uisgo-backend/internal/app/repositories"
	"github.com/uisgo/uisgo-backend/internal/db"
	"github.com/uisgo/uisgo-backend/internal/pkg/apperrors"
	"github.com/uisgo/uisgo-backend/internal/pkg/validation"
)

const (
	inviteCodeLength  = 8
	inviteCodeCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	// How many times we retry generation on a unique collision.
	inviteCodeAttempts = 5
)

// GroupService defines the interface for group and invite operations
type GroupService interface {
	CreateGroup(ctx context.Context, ownerID uuid.UUID, req *dto.CreateGroupRequest) (*dto.GroupDetailResponse, error)
	ListGroups(ctx context.Context, userID uuid.UUID, role models.Role) ([]dto.GroupResponse, error)
	GetGroup(ctx context.Context, groupID, userID uuid.UUID, role models.Role) (*dto.GroupDetailResponse, error)
	UpdateGroup(ctx context.Context, groupID, userID uuid.UUID, role models.Role, req *dto.UpdateGroupRequest) (*dto.GroupResponse, error)
	DeleteGroup(ctx context.Context, groupID, userID uuid.UUID, role models.Role) error
	ListMembers(ctx context.Context, groupID, userID uuid.UUID, role models.Role) ([]*models.GroupMember, error)
	CreateInvite(ctx context.Context, groupID, userID uuid.UUID, role models.Role, req *dto.CreateInviteRequest) (*dto.InviteCodeResponse, error)
	Join(ctx context.Context, userID uuid.UUID, code string) (*dto.JoinGroupResponse, error)
	ResolveInvite(ctx context.Context, code string) (*models.InviteCode, *models.Group, error)
	InviteQRPNG(code string) ([]byte, error)
}

// groupServiceImpl implements GroupService
type groupServiceImpl struct {
	database       *db.PostgresDB
	groupRepo      *repositories.GroupRepository
	inviteRepo     *repositories.InviteRepository
	questionRepo   *repositories.QuestionRepository
	webBaseURL     string
	deepLinkScheme string
	logger         zerolog.Logger
}

// NewGroupService creates a new GroupService
func NewGroupService(
	database *db.PostgresDB,
	groupRepo *repositories.GroupRepository,
	inviteRepo *repositories.InviteRepository,
	questionRepo *repositories.QuestionRepository,
	webBaseURL string,
	deepLinkScheme string,
	logger zerolog.Logger,
) GroupService {
	return &groupServiceImpl{
		database:       database,
		groupRepo:      groupRepo,
		inviteRepo:     inviteRepo,
		questionRepo:   questionRepo,
		webBaseURL:     webBaseURL,
		deepLinkScheme: deepLinkScheme,
		logger:         logger,
	}
}

// GenerateInviteCode returns an 8 character uppercase alphanumeric code
func GenerateInviteCode() (string, error) {
	buf := make([]byte, inviteCodeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("error generating invite code: %w", err)
	}
	for i, b := range buf {
		buf[i] = inviteCodeCharset[int(b)%len(inviteCodeCharset)]
	}
	return string(buf), nil
}

// CreateGroup creates a group, enrolls the owner and issues the default invite
func (s *groupServiceImpl) CreateGroup(ctx context.Context, ownerID uuid.UUID, req *dto.CreateGroupRequest) (*dto.GroupDetailResponse, error) {
	group := &models.Group{
		Name:      req.Name,
		Subject:   req.Subject,
		CreatedBy: ownerID,
	}
	if _, err := s.groupRepo.CreateGroup(ctx, group); err != nil {
		return nil, err
	}

	if err := s.groupRepo.AddMember(ctx, group.ID, ownerID, models.GroupRoleOwner); err != nil {
		return nil, err
	}

	invite, err := s.createInviteWithRetry(ctx, group.ID, ownerID, nil)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("groupID", group.ID.String()).Str("ownerID", ownerID.String()).Msg("Group created")

	return s.buildDetail(ctx, group, invite)
}

func (s *groupServiceImpl) createInviteWithRetry(ctx context.Context, groupID, createdBy uuid.UUID, req *dto.CreateInviteRequest) (*models.InviteCode, error) {
	invite := &models.InviteCode{
		GroupID:   groupID,
		IsActive:  true,
		CreatedBy: createdBy,
	}
	if req != nil {
		invite.ExpiresAt = req.ExpiresAt
		invite.MaxUses = req.MaxUses
	}

	for attempt := 0; attempt < inviteCodeAttempts; attempt++ {
		code, err := GenerateInviteCode()
		if err != nil {
			return nil, err
		}
		invite.Code = code

		_, err = s.inviteRepo.CreateInvite(ctx, invite)
		if err == nil {
			return invite, nil
		}
		if !errors.Is(err, repositories.ErrInviteCodeConflict) {
			return nil, err
		}
	}

	return nil, apperrors.ErrInviteCodeConflict
}

// ListGroups shows owned groups to creators and joined groups to students
func (s *groupServiceImpl) ListGroups(ctx context.Context, userID uuid.UUID, role models.Role) ([]dto.GroupResponse, error) {
	var rows []repositories.GroupRow
	var err error
	if auth.RoleAllowed(role, auth.Creators) {
		rows, err = s.groupRepo.ListGroupsForOwner(ctx, userID)
	} else {
		rows, err = s.groupRepo.ListGroupsForMember(ctx, userID)
	}
	if err != nil {
		return nil, err
	}

	result := make([]dto.GroupResponse, 0, len(rows))
	for _, row := range rows {
		result = append(result, toGroupResponse(row))
	}

	return result, nil
}

func toGroupResponse(row repositories.GroupRow) dto.GroupResponse {
	// The owner's own membership does not count as a student.
	studentCount := row.MemberCount - 1
	if studentCount < 0 {
		studentCount = 0
	}

	return dto.GroupResponse{
		ID:           row.Group.ID,
		Name:         row.Group.Name,
		Subject:      row.Group.Subject,
		CreatedAt:    row.Group.CreatedAt,
		StudentCount: studentCount,
		OwnerEmail:   row.OwnerEmail,
		OwnerName:    row.OwnerName,
	}
}

// GetGroup returns the group detail; invite and share links only for the owner
func (s *groupServiceImpl) GetGroup(ctx context.Context, groupID, userID uuid.UUID, role models.Role) (*dto.GroupDetailResponse, error) {
	group, err := s.getGroupChecked(ctx, groupID)
	if err != nil {
		return nil, err
	}

	isOwner := group.CreatedBy == userID || role == models.RoleSuperuser
	if !isOwner {
		member, err := s.groupRepo.IsMember(ctx, groupID, userID)
		if err != nil {
			return nil, err
		}
		if !member {
			return nil, apperrors.ErrPermissionDenied
		}
	}

	var invite *models.InviteCode
	if isOwner {
		invite, err = s.inviteRepo.GetActiveInviteForGroup(ctx, groupID)
		if err != nil && !errors.Is(err, repositories.ErrInviteNotFound) {
			return nil, err
		}
	}

	return s.buildDetail(ctx, group, invite)
}

func (s *groupServiceImpl) buildDetail(ctx context.Context, group *models.Group, invite *models.InviteCode) (*dto.GroupDetailResponse, error) {
	row, err := s.groupRepo.GetGroupRow(ctx, group.ID)
	if err != nil {
		return nil, err
	}

	questions, err := s.questionRepo.ListByGroup(ctx, group.ID)
	if err != nil {
		return nil, err
	}
	summaries := make([]dto.GroupQuestionSummary, 0, len(questions))
	for _, q := range questions {
		summaries = append(summaries, dto.GroupQuestionSummary{
			ID:            q.ID,
			Title:         q.Title,
			Category:      q.Category,
			RewardCredits: q.RewardCredits,
		})
	}

	detail := &dto.GroupDetailResponse{
		GroupResponse: toGroupResponse(*row),
		Questions:     summaries,
	}

	if invite != nil {
		webJoin := fmt.Sprintf("%s/join?code=%s", s.webBaseURL, invite.Code)
		deepLink := fmt.Sprintf("%s://join?code=%s", s.deepLinkScheme, invite.Code)
		detail.InviteCode = &invite.Code
		detail.WebJoin = &webJoin
		detail.DeepLink = &deepLink

		png, err := s.InviteQRPNG(invite.Code)
		if err != nil {
			s.logger.Warn().Err(err).Str("groupID", group.ID.String()).Msg("Could not render invite QR")
		} else {
			encoded := "data:image/png;base64," + base64.StdEncoding.EncodeToString(png)
			detail.QRPNG = &encoded
		}
	}

	return detail, nil
}

// InviteQRPNG renders the web join URL of an invite code as a QR PNG
func (s *groupServiceImpl) InviteQRPNG(code string) ([]byte, error) {
	url := fmt.Sprintf("%s/join?code=%s", s.webBaseURL, code)
	return qrcode.Encode(url, qrcode.Medium, 256)
}

func (s *groupServiceImpl) getGroupChecked(ctx context.Context, groupID uuid.UUID) (*models.Group, error) {
	group, err := s.groupRepo.GetGroupByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, repositories.ErrGroupNotFound) {
			return nil, apperrors.ErrGroupNotFound
		}
		return nil, err
	}
	return group, nil
}

func (s *groupServiceImpl) requireOwner(group *models.Group, userID uuid.UUID, role models.Role) error {
	if group.CreatedBy != userID && role != models.RoleSuperuser {
		return apperrors.ErrPermissionDenied
	}
	return nil
}

// UpdateGroup changes name or subject; only the owner or a superuser may
func (s *groupServiceImpl) UpdateGroup(ctx context.Context, groupID, userID uuid.UUID, role models.Role, req *dto.UpdateGroupRequest) (*dto.GroupResponse, error) {
	group, err := s.getGroupChecked(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if err := s.requireOwner(group, userID, role); err != nil {
		return nil, err
	}

	if req.Name != nil {
		group.Name = *req.Name
	}
	if req.Subject != nil {
		group.Subject = req.Subject
	}
	if err := s.groupRepo.UpdateGroup(ctx, group); err != nil {
		return nil, err
	}

	row, err := s.groupRepo.GetGroupRow(ctx, groupID)
	if err != nil {
		return nil, err
	}
	resp := toGroupResponse(*row)
	return &resp, nil
}

// DeleteGroup removes a group and everything hanging off it
func (s *groupServiceImpl) DeleteGroup(ctx context.Context, groupID, userID uuid.UUID, role models.Role) error {
	group, err := s.getGroupChecked(ctx, groupID)
	if err != nil {
		return err
	}
	if err := s.requireOwner(group, userID, role); err != nil {
		return err
	}

	return s.groupRepo.DeleteGroup(ctx, groupID)
}

// ListMembers returns the group roster to the owner or any member
func (s *groupServiceImpl) ListMembers(ctx context.Context, groupID, userID uuid.UUID, role models.Role) ([]*models.GroupMember, error) {
	group, err := s.getGroupChecked(ctx, groupID)
	if err != nil {
		return nil, err
	}

	if err := s.requireOwner(group, userID, role); err != nil {
		member, merr := s.groupRepo.IsMember(ctx, groupID, userID)
		if merr != nil {
			return nil, merr
		}
		if !member {
			return nil, apperrors.ErrPermissionDenied
		}
	}

	return s.groupRepo.ListMembers(ctx, groupID)
}

// CreateInvite issues an additional invite code for a group
func (s *groupServiceImpl) CreateInvite(ctx context.Context, groupID, userID uuid.UUID, role models.Role, req *dto.CreateInviteRequest) (*dto.InviteCodeResponse, error) {
	group, err := s.getGroupChecked(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if err := s.requireOwner(group, userID, role); err != nil {
		return nil, err
	}

	if req.ExpiresAt != nil && req.ExpiresAt.Before(time.Now()) {
		return nil, fmt.Errorf("%w: expiry must be in the future", apperrors.ErrValidationFailed)
	}

	invite, err := s.createInviteWithRetry(ctx, groupID, userID, req)
	if err != nil {
		return nil, err
	}

	return &dto.InviteCodeResponse{Code: invite.Code}, nil
}

// Join redeems an invite code. The invite row is locked for the duration of
// the transaction so concurrent joins cannot oversubscribe max_uses.
// Joining a group the user already belongs to succeeds without changes.
func (s *groupServiceImpl) Join(ctx context.Context, userID uuid.UUID, code string) (*dto.JoinGroupResponse, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if !validation.CompiledPatterns.InviteCode.MatchString(code) {
		return nil, apperrors.ErrInviteNotFound
	}

	resp := &dto.JoinGroupResponse{}

	err := s.database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		invite, err := s.inviteRepo.GetInviteByCodeForUpdate(ctx, tx, code)
		if err != nil {
			if errors.Is(err, repositories.ErrInviteNotFound) {
				return apperrors.ErrInviteNotFound
			}
			return err
		}

		if err := validateInvite(invite, time.Now()); err != nil {
			return err
		}

		err = s.groupRepo.AddMemberTx(ctx, tx, invite.GroupID, userID, models.GroupRoleStudent)
		if err != nil {
			if errors.Is(err, repositories.ErrAlreadyMember) {
				// Idempotent: already in the group, burn no use.
				resp.Joined = true
				return nil
			}
			return err
		}

		if err := s.inviteRepo.IncrementUsesTx(ctx, tx, invite.ID); err != nil {
			return err
		}

		resp.Joined = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	return resp, nil
}

// validateInvite checks an invite can still be redeemed. The inactive check
// runs first so a deactivated invite never reports expiry or exhaustion.
func validateInvite(invite *models.InviteCode, now time.Time) error {
	if !invite.IsActive {
		return apperrors.ErrInviteInactive
	}
	if invite.IsExpired(now) {
		return apperrors.ErrInviteExpired
	}
	if invite.IsExhausted() {
		return apperrors.ErrInviteExhausted
	}
	return nil
}

// ResolveInvite looks up an invite and its group for the public landing page
func (s *groupServiceImpl) ResolveInvite(ctx context.Context, code string) (*models.InviteCode, *models.Group, error) {
	invite, err := s.inviteRepo.GetInviteByCode(ctx, code)
	if err != nil {
		if errors.Is(err, repositories.ErrInviteNotFound) {
			return nil, nil, apperrors.ErrInviteNotFound
		}
		return nil, nil, err
	}

	group, err := s.groupRepo.GetGroupByID(ctx, invite.GroupID)
	if err != nil {
		return nil, nil, err
	}

	return invite, group, nil
}
