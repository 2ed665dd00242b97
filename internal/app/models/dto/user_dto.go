package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreateUserRequest creates a user with an explicit role (superuser only)
type CreateUserRequest struct {
	Email    string  `json:"email" binding:"required,email"`
	Password string  `json:"password" binding:"required,min=8"`
	FullName *string `json:"fullName"`
	Role     string  `json:"role" binding:"required"`
}

// UpdateProfileRequest updates the caller's own profile
type UpdateProfileRequest struct {
	FullName string `json:"fullName" binding:"required"`
}

// UserProfileResponse is the /users/me payload including derived progression
type UserProfileResponse struct {
	ID                uuid.UUID `json:"id"`
	Email             string    `json:"email"`
	Role              string    `json:"role"`
	FullName          *string   `json:"fullName"`
	Active            bool      `json:"active"`
	CreatedAt         time.Time `json:"createdAt"`
	CoinsBalance      int64     `json:"coinsBalance"`
	QuestionCredits   int64     `json:"questionCredits"`
	QuestionsAnswered int       `json:"questionsAnswered"`
	TotalXP           int64     `json:"totalXp"`
	Level             int64     `json:"level"`
	XPInLevel         int64     `json:"xpInLevel"`
	XPProgress        float64   `json:"xpProgress"`
	XPToNext          int64     `json:"xpToNext"`
}

// UserResponse is a plain user payload without progression fields
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	FullName  *string   `json:"fullName"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
}
