package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/uisgo/uisgo-backend/internal/app/controllers"
	appMigrations "github.com/uisgo/uisgo-backend/internal/app/migrations"
	appRepos "github.com/uisgo/uisgo-backend/internal/app/repositories"
	appRoutes "github.com/uisgo/uisgo-backend/internal/app/routes"
	appServices "github.com/uisgo/uisgo-backend/internal/app/services"
	"github.com/uisgo/uisgo-backend/internal/config"
	"github.com/uisgo/uisgo-backend/internal/db"
	appMiddleware "github.com/uisgo/uisgo-backend/internal/middleware"
	pkgAuth "github.com/uisgo/uisgo-backend/internal/pkg/auth"
	"github.com/uisgo/uisgo-backend/internal/pkg/helpers"
	"github.com/uisgo/uisgo-backend/internal/pkg/logger"
	"github.com/uisgo/uisgo-backend/internal/pkg/openai"
	"github.com/uisgo/uisgo-backend/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService      appServices.AuthService
	UserService      appServices.UserService
	GroupService     appServices.GroupService
	ActivityService  appServices.ActivityService
	CoinsService     appServices.CoinsService
	QuestionService  appServices.QuestionService
	ChatService      appServices.ChatService
	AnalyticsService appServices.AnalyticsService
	NewsService      appServices.NewsService
	WellnessService  appServices.WellnessService
	PlaceService     appServices.PlaceService
	ConfigService    appServices.ConfigService

	AuthController      *appControllers.AuthController
	UserController      *appControllers.UserController
	GroupController     *appControllers.GroupController
	JoinController      *appControllers.JoinController
	ActivityController  *appControllers.ActivityController
	CoinsController     *appControllers.CoinsController
	QuestionController  *appControllers.QuestionController
	ChatController      *appControllers.ChatController
	AnalyticsController *appControllers.AnalyticsController
	NewsController      *appControllers.NewsController
	WellnessController  *appControllers.WellnessController
	PlaceController     *appControllers.PlaceController
	ConfigController    *appControllers.ConfigController

	AuthMiddleware *appMiddleware.AuthMiddleware
	Repos          *appRepos.Repositories
	JWTService     *pkgAuth.JWTService
	Logger         zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection, runs migrations and
// seeds the default data.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	if err := seed.CreateDefaultData(context.Background(), dbPool, cfg, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return database, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(database.Pool)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 24*time.Hour),
		TokenIssuer:    cfg.JWT.Issuer,
		TokenAudience:  cfg.JWT.Audience,
	})

	chatClient, err := openai.NewClient(openai.Config{
		APIKey:     cfg.OpenAI.APIKey,
		BaseURL:    cfg.OpenAI.BaseURL,
		Model:      cfg.OpenAI.Model,
		Timeout:    time.Duration(cfg.OpenAI.TimeoutSeconds) * time.Second,
		MaxRetries: cfg.OpenAI.MaxRetries,
	})
	if err != nil {
		lgr.Warn().Err(err).Msg("Assistant client unavailable, chat replies will fail")
		chatClient = openai.NewDisabledClient()
	}

	resetTokenTTL := helpers.ParseDuration(cfg.Auth.PasswordResetTokenExpiration, 30*time.Minute)

	deps.AuthService = appServices.NewAuthService(
		deps.Repos.UserRepository,
		deps.Repos.PasswordResetTokenRepository,
		deps.JWTService,
		resetTokenTTL,
		lgr,
	)
	deps.UserService = appServices.NewUserService(
		deps.Repos.UserRepository,
		deps.Repos.CoinsRepository,
		deps.Repos.QuestionRepository,
		lgr,
	)
	deps.GroupService = appServices.NewGroupService(
		database,
		deps.Repos.GroupRepository,
		deps.Repos.InviteRepository,
		deps.Repos.QuestionRepository,
		cfg.Server.WebBaseURL,
		cfg.Server.DeepLinkScheme,
		lgr,
	)
	deps.ActivityService = appServices.NewActivityService(
		database,
		deps.Repos.ActivityRepository,
		deps.Repos.GroupRepository,
		deps.Repos.CoinsRepository,
		lgr,
	)
	deps.CoinsService = appServices.NewCoinsService(
		deps.Repos.CoinsRepository,
		deps.Repos.UserRepository,
		lgr,
	)
	deps.QuestionService = appServices.NewQuestionService(
		database,
		deps.Repos.QuestionRepository,
		deps.Repos.GroupRepository,
		deps.Repos.CoinsRepository,
		lgr,
	)
	deps.ChatService = appServices.NewChatService(
		database,
		deps.Repos.ChatRepository,
		deps.Repos.CoinsRepository,
		chatClient,
		cfg.Chat.MessageCost,
		cfg.Chat.SystemPrompt,
		lgr,
	)
	deps.AnalyticsService = appServices.NewAnalyticsService(
		deps.Repos.GroupRepository,
		deps.Repos.ActivityRepository,
		lgr,
	)
	deps.NewsService = appServices.NewNewsService(deps.Repos.NewsRepository, lgr)
	deps.WellnessService = appServices.NewWellnessService(deps.Repos.WellnessRepository, lgr)
	deps.PlaceService = appServices.NewPlaceService(deps.Repos.PlaceRepository, lgr)
	deps.ConfigService = appServices.NewConfigService(deps.Repos.ConfigRepository, lgr)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService)
	deps.UserController = appControllers.NewUserController(deps.UserService)
	deps.GroupController = appControllers.NewGroupController(deps.GroupService)
	deps.JoinController = appControllers.NewJoinController(deps.GroupService, cfg.Server.DeepLinkScheme)
	deps.ActivityController = appControllers.NewActivityController(deps.ActivityService)
	deps.CoinsController = appControllers.NewCoinsController(deps.CoinsService)
	deps.QuestionController = appControllers.NewQuestionController(deps.QuestionService)
	deps.ChatController = appControllers.NewChatController(deps.ChatService)
	deps.AnalyticsController = appControllers.NewAnalyticsController(deps.AnalyticsService)
	deps.NewsController = appControllers.NewNewsController(deps.NewsService)
	deps.WellnessController = appControllers.NewWellnessController(deps.WellnessService)
	deps.PlaceController = appControllers.NewPlaceController(deps.PlaceService)
	deps.ConfigController = appControllers.NewConfigController(deps.ConfigService)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.Default()

	corsConfig := cors.DefaultConfig()
	if len(cfg.Server.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.Server.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.UserController,
		deps.GroupController,
		deps.JoinController,
		deps.ActivityController,
		deps.CoinsController,
		deps.QuestionController,
		deps.ChatController,
		deps.AnalyticsController,
		deps.NewsController,
		deps.WellnessController,
		deps.PlaceController,
		deps.ConfigController,
		deps.AuthMiddleware,
	)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return router
}
