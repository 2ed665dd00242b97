package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/uisgo/uisgo-backend/internal/app/models"
	"github.com/uisgo/uisgo-backend/internal/app/repositories"
	"github.com/uisgo/uisgo-backend/internal/config"
	"github.com/uisgo/uisgo-backend/internal/pkg/auth"
)

const (
	defaultSuperuserEmail    = "admin@uis.edu"
	defaultSuperuserPassword = "admin123"
	defaultSuperuserName     = "Admin José Valera"
)

func strPtr(s string) *string { return &s }

// defaultQuickActions are the home shortcuts installed on first boot.
// Admins can reorder or disable them afterwards.
var defaultQuickActions = []models.QuickAction{
	{Title: "Grupos", Subtitle: strPtr("Tus grupos de clase"), Icon: strPtr("groups"), TargetRoute: "/groups", AllowedRoles: "student,professor,superuser", OrderIndex: 0, Active: true},
	{Title: "Actividades", Subtitle: strPtr("Responde y gana monedas"), Icon: strPtr("task"), TargetRoute: "/activities", AllowedRoles: "student,professor,superuser", OrderIndex: 1, Active: true},
	{Title: "Chat Go", Subtitle: strPtr("Asistente de la UIS"), Icon: strPtr("chat"), TargetRoute: "/chat", AllowedRoles: "student,professor,superuser,communications", OrderIndex: 2, Active: true},
	{Title: "Noticias", Subtitle: strPtr("Lo último del campus"), Icon: strPtr("news"), TargetRoute: "/news", AllowedRoles: "student,professor,superuser,communications", OrderIndex: 3, Active: true},
	{Title: "Mapa", Subtitle: strPtr("Lugares y eventos"), Icon: strPtr("map"), TargetRoute: "/map", AllowedRoles: "student,professor,superuser,communications,market_manager", OrderIndex: 4, Active: true},
	{Title: "Bienestar", Subtitle: strPtr("Tu estado de ánimo"), Icon: strPtr("wellness"), TargetRoute: "/wellness", AllowedRoles: "student,professor,superuser", OrderIndex: 5, Active: true},
}

// CreateDefaultData ensures the superuser account and the default quick
// actions exist. Safe to run on every boot.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, cfg *config.Config, lgr zerolog.Logger) error {
	userRepo := repositories.NewUserRepository(dbPool)
	configRepo := repositories.NewConfigRepository(dbPool)

	var finalErr error

	if err := ensureSuperuser(ctx, userRepo, cfg, lgr); err != nil {
		finalErr = errors.Join(finalErr, err)
	}
	if err := ensureQuickActions(ctx, configRepo, lgr); err != nil {
		finalErr = errors.Join(finalErr, err)
	}

	return finalErr
}

func ensureSuperuser(ctx context.Context, userRepo *repositories.UserRepository, cfg *config.Config, lgr zerolog.Logger) error {
	email := cfg.Auth.SuperuserEmail
	if email == "" {
		email = defaultSuperuserEmail
	}
	password := cfg.Auth.SuperuserPassword
	if password == "" {
		password = defaultSuperuserPassword
	}

	_, err := userRepo.GetUserByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repositories.ErrUserNotFound) {
		lgr.Error().Err(err).Msg("Error checking for existing superuser")
		return err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	admin := &models.User{
		Email:        email,
		PasswordHash: hash,
		Role:         models.RoleSuperuser,
		FullName:     strPtr(defaultSuperuserName),
		Active:       true,
	}
	adminID, err := userRepo.CreateUser(ctx, admin)
	if err != nil {
		lgr.Error().Err(err).Msg("Error creating superuser")
		return err
	}

	lgr.Info().Str("adminID", adminID.String()).Str("email", email).Msg("Superuser created")
	return nil
}

func ensureQuickActions(ctx context.Context, configRepo *repositories.ConfigRepository, lgr zerolog.Logger) error {
	existing, err := configRepo.ListQuickActions(ctx, false)
	if err != nil {
		lgr.Error().Err(err).Msg("Error listing quick actions during seed")
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	var finalErr error
	for i := range defaultQuickActions {
		action := defaultQuickActions[i]
		if _, err := configRepo.CreateQuickAction(ctx, &action); err != nil {
			lgr.Error().Err(err).Str("title", action.Title).Msg("Error seeding quick action")
			finalErr = errors.Join(finalErr, err)
		}
	}
	if finalErr == nil {
		lgr.Info().Int("count", len(defaultQuickActions)).Msg("Default quick actions seeded")
	}

	return finalErr
}
