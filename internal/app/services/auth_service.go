package services

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/uisgo/uisgo-backend/internal/app/models"
	"github.com/uisgo/uisgo-backend/internal/app/models/dto"
	"github.com/uisgo/uisgo-backend/internal/app/repositories"
	"github.com/uisgo/uisgo-backend/internal/pkg/apperrors"
	"github.com/uisgo/uisgo-backend/internal/pkg/auth"
	"github.com/uisgo/uisgo-backend/internal/pkg/validation"
)

// AuthService defines the interface for authentication operations
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.TokenResponse, error)
	RegisterStudent(ctx context.Context, req *dto.RegisterRequest) (*dto.TokenResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	ForgotPassword(ctx context.Context, email string) (*dto.ForgotPasswordResponse, error)
	ResetPassword(ctx context.Context, token, newPassword string) error
}

// authServiceImpl implements AuthService
type authServiceImpl struct {
	userRepo       *repositories.UserRepository
	resetTokenRepo *repositories.PasswordResetTokenRepository
	jwtService     *auth.JWTService
	resetTokenTTL  time.Duration
	logger         zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo *repositories.UserRepository,
	resetTokenRepo *repositories.PasswordResetTokenRepository,
	jwtService *auth.JWTService,
	resetTokenTTL time.Duration,
	logger zerolog.Logger,
) AuthService {
	return &authServiceImpl{
		userRepo:       userRepo,
		resetTokenRepo: resetTokenRepo,
		jwtService:     jwtService,
		resetTokenTTL:  resetTokenTTL,
		logger:         logger,
	}
}

func (s *authServiceImpl) validateEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return fmt.Errorf("%w: email cannot be empty", apperrors.ErrValidationFailed)
	}
	if !validation.CompiledPatterns.Email.MatchString(strings.ToLower(email)) {
		return apperrors.ErrInvalidEmail
	}
	return nil
}

func (s *authServiceImpl) validatePassword(password string) error {
	if password == "" {
		return fmt.Errorf("%w: password cannot be empty", apperrors.ErrValidationFailed)
	}
	if len(password) < validation.PasswordMinLength {
		return fmt.Errorf("%w: password must be at least %d characters long",
			apperrors.ErrInvalidPassword, validation.PasswordMinLength)
	}
	return nil
}

// Register creates a new account. Unless a role is supplied the account
// defaults to professor; the student registration endpoint forces student.
func (s *authServiceImpl) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.TokenResponse, error) {
	role := models.RoleProfessor
	if req.Role != nil {
		role = models.Role(*req.Role)
		if !role.IsValid() {
			return nil, fmt.Errorf("%w: unknown role %q", apperrors.ErrValidationFailed, *req.Role)
		}
	}
	return s.register(ctx, req, role)
}

// RegisterStudent creates a new student account regardless of any requested role
func (s *authServiceImpl) RegisterStudent(ctx context.Context, req *dto.RegisterRequest) (*dto.TokenResponse, error) {
	return s.register(ctx, req, models.RoleStudent)
}

func (s *authServiceImpl) register(ctx context.Context, req *dto.RegisterRequest, role models.Role) (*dto.TokenResponse, error) {
	if err := s.validateEmail(req.Email); err != nil {
		return nil, err
	}
	if err := s.validatePassword(req.Password); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("password hashing error: %w", err)
	}

	user := &models.User{
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: hash,
		Role:         role,
		FullName:     req.FullName,
		Active:       true,
	}

	if _, err := s.userRepo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrEmailAlreadyExists) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, fmt.Errorf("user creation error: %w", err)
	}

	s.logger.Info().Str("userID", user.ID.String()).Str("role", string(role)).Msg("User registered")

	return s.generateTokenResponse(user)
}

// Login authenticates a user
func (s *authServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	if err := s.validateEmail(req.Email); err != nil {
		return nil, err
	}
	if req.Password == "" {
		return nil, fmt.Errorf("%w: password cannot be empty", apperrors.ErrValidationFailed)
	}

	user, err := s.userRepo.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	if !user.Active {
		return nil, apperrors.ErrAccountDisabled
	}

	return s.generateTokenResponse(user)
}

// forgotPasswordMessage never varies so the endpoint does not leak which
// emails exist.
const forgotPasswordMessage = "If the email is registered, a password reset link has been sent."

// ForgotPassword issues a reset token for the account if it exists.
// The response is identical either way.
func (s *authServiceImpl) ForgotPassword(ctx context.Context, email string) (*dto.ForgotPasswordResponse, error) {
	resp := &dto.ForgotPasswordResponse{Message: forgotPasswordMessage}

	if err := s.validateEmail(email); err != nil {
		return resp, nil
	}

	user, err := s.userRepo.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return resp, nil
		}
		return nil, fmt.Errorf("error looking up user for password reset: %w", err)
	}

	if err := s.resetTokenRepo.InvalidateActiveTokens(ctx, user.ID); err != nil {
		return nil, err
	}

	tokenValue, err := generateResetToken()
	if err != nil {
		return nil, fmt.Errorf("error generating reset token: %w", err)
	}

	token := &models.PasswordResetToken{
		UserID:    user.ID,
		Token:     tokenValue,
		ExpiresAt: time.Now().Add(s.resetTokenTTL),
	}
	if err := s.resetTokenRepo.CreateToken(ctx, token); err != nil {
		return nil, err
	}

	s.logger.Info().Str("userID", user.ID.String()).Msg("Password reset token issued")

	// There is no mailer yet, so the token travels in the response for
	// the client to hand off. TODO: deliver by email once SMTP config lands.
	resp.ResetToken = tokenValue
	return resp, nil
}

// ResetPassword redeems a reset token and replaces the user's password
func (s *authServiceImpl) ResetPassword(ctx context.Context, tokenValue, newPassword string) error {
	if err := s.validatePassword(newPassword); err != nil {
		return err
	}

	token, err := s.resetTokenRepo.GetByToken(ctx, tokenValue)
	if err != nil {
		if errors.Is(err, repositories.ErrResetTokenNotFound) {
			return apperrors.ErrInvalidPasswordResetToken
		}
		return err
	}

	if token.Used {
		return apperrors.ErrPasswordResetTokenUsed
	}
	if time.Now().After(token.ExpiresAt) {
		return apperrors.ErrInvalidPasswordResetToken
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("password hashing error: %w", err)
	}

	if err := s.userRepo.UpdatePassword(ctx, token.UserID, hash); err != nil {
		return err
	}
	if err := s.resetTokenRepo.MarkUsed(ctx, token.ID); err != nil {
		return err
	}

	s.logger.Info().Str("userID", token.UserID.String()).Msg("Password reset completed")

	return nil
}

func (s *authServiceImpl) generateTokenResponse(user *models.User) (*dto.TokenResponse, error) {
	accessToken, expiresIn, err := s.jwtService.GenerateAccessToken(user.ID, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("token generation error: %w", err)
	}

	return &dto.TokenResponse{
		AccessToken: accessToken,
		TokenType:   "Bearer",
		ExpiresIn:   expiresIn,
		Role:        string(user.Role),
		Email:       user.Email,
		FullName:    user.FullName,
	}, nil
}

func generateResetToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
