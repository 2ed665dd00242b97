package repositories

import (
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/uisgo/uisgo-backend/internal/pkg/dberrors"
)

// ErrNotFound is the shared sentinel for missing rows. Repositories alias
// it into resource-specific names so callers can match either.
var ErrNotFound = errors.New("resource not found")

// isDuplicateKeyError checks if the error is a PostgreSQL unique violation error.
func isDuplicateKeyError(err error) bool {
	return dberrors.IsDuplicateKeyError(err)
}

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository               *UserRepository
	GroupRepository              *GroupRepository
	InviteRepository             *InviteRepository
	ActivityRepository           *ActivityRepository
	CoinsRepository              *CoinsRepository
	QuestionRepository           *QuestionRepository
	ChatRepository               *ChatRepository
	NewsRepository               *NewsRepository
	WellnessRepository           *WellnessRepository
	PlaceRepository              *PlaceRepository
	ConfigRepository             *ConfigRepository
	PasswordResetTokenRepository *PasswordResetTokenRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:               NewUserRepository(db),
		GroupRepository:              NewGroupRepository(db),
		InviteRepository:             NewInviteRepository(db),
		ActivityRepository:           NewActivityRepository(db),
		CoinsRepository:              NewCoinsRepository(db),
		QuestionRepository:           NewQuestionRepository(db),
		ChatRepository:               NewChatRepository(db),
		NewsRepository:               NewNewsRepository(db),
		WellnessRepository:           NewWellnessRepository(db),
		PlaceRepository:              NewPlaceRepository(db),
		ConfigRepository:             NewConfigRepository(db),
		PasswordResetTokenRepository: NewPasswordResetTokenRepository(db),
	}
}
