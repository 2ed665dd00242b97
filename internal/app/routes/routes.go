package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/uisgo/uisgo-backend/internal/app/auth"
	"github.com/uisgo/uisgo-backend/internal/app/controllers"
	"github.com/uisgo/uisgo-backend/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	userController *controllers.UserController,
	groupController *controllers.GroupController,
	joinController *controllers.JoinController,
	activityController *controllers.ActivityController,
	coinsController *controllers.CoinsController,
	questionController *controllers.QuestionController,
	chatController *controllers.ChatController,
	analyticsController *controllers.AnalyticsController,
	newsController *controllers.NewsController,
	wellnessController *controllers.WellnessController,
	placeController *controllers.PlaceController,
	configController *controllers.ConfigController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// Public invite landing page, served outside the API prefix so the
	// link in the QR code stays short.
	router.GET("/join", joinController.Landing)

	v1 := router.Group("/api/v1")

	// --- Public auth routes ---
	authRoutes := v1.Group("/auth")
	{
		authRoutes.POST("/register", authController.Register)
		authRoutes.POST("/register/student", authController.RegisterStudent)
		authRoutes.POST("/login", authController.Login)
		authRoutes.POST("/forgot-password", authController.ForgotPassword)
		authRoutes.POST("/reset-password", authController.ResetPassword)
	}

	// Public QR image for invite codes
	v1.GET("/join/:code/qr", groupController.InviteQR)

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())

	users := authenticated.Group("/users")
	{
		usersAny := users.Group("")
		usersAny.Use(authMiddleware.RoleRequired(auth.AnyUserWithMarket...))
		{
			usersAny.GET("/me", userController.GetProfile)
			usersAny.PATCH("/me", userController.UpdateProfile)
		}

		usersAdmin := users.Group("")
		usersAdmin.Use(authMiddleware.RoleRequired(auth.SuperOnly...))
		{
			usersAdmin.GET("", userController.ListUsers)
			usersAdmin.POST("", userController.CreateUser)
			usersAdmin.PATCH("/:id/active", userController.SetActive)
		}
	}

	groups := authenticated.Group("/groups")
	{
		groupsAny := groups.Group("")
		groupsAny.Use(authMiddleware.RoleRequired(auth.AnyUser...))
		{
			groupsAny.GET("", groupController.ListGroups)
			groupsAny.GET("/:id", groupController.GetGroup)
			groupsAny.GET("/:id/members", groupController.ListMembers)
		}

		groupsStudent := groups.Group("")
		groupsStudent.Use(authMiddleware.RoleRequired(auth.StudentsOnly...))
		{
			groupsStudent.POST("/join", groupController.Join)
		}

		groupsCreator := groups.Group("")
		groupsCreator.Use(authMiddleware.RoleRequired(auth.Creators...))
		{
			groupsCreator.POST("", groupController.CreateGroup)
			groupsCreator.PATCH("/:id", groupController.UpdateGroup)
			groupsCreator.DELETE("/:id", groupController.DeleteGroup)
			groupsCreator.POST("/:id/invites", groupController.CreateInvite)
		}
	}

	activities := authenticated.Group("/activities")
	{
		activitiesAny := activities.Group("")
		activitiesAny.Use(authMiddleware.RoleRequired(auth.AnyUser...))
		{
			activitiesAny.GET("", activityController.ListActivities)
			activitiesAny.GET("/:id", activityController.GetActivity)
			activitiesAny.POST("/:id/submit", activityController.Submit)
		}

		activitiesCreator := activities.Group("")
		activitiesCreator.Use(authMiddleware.RoleRequired(auth.Creators...))
		{
			activitiesCreator.POST("", activityController.CreateActivity)
			activitiesCreator.PATCH("/:id", activityController.UpdateActivity)
			activitiesCreator.POST("/:id/publish", activityController.Publish)
			activitiesCreator.DELETE("/:id", activityController.DeleteActivity)
			activitiesCreator.POST("/submissions/:submissionId/grade", activityController.GradeSubmission)
		}
	}

	coins := authenticated.Group("/coins")
	{
		coinsAny := coins.Group("")
		coinsAny.Use(authMiddleware.RoleRequired(auth.AnyUser...))
		{
			coinsAny.GET("/me", coinsController.GetBalance)
			coinsAny.GET("/me/ledger", coinsController.ListLedger)
		}

		coinsAdmin := coins.Group("")
		coinsAdmin.Use(authMiddleware.RoleRequired(auth.SuperOnly...))
		{
			coinsAdmin.POST("/adjust", coinsController.Adjust)
		}
	}

	questions := authenticated.Group("/questions")
	{
		questionsAny := questions.Group("")
		questionsAny.Use(authMiddleware.RoleRequired(auth.AnyUser...))
		{
			questionsAny.GET("", questionController.ListQuestions)
			questionsAny.GET("/:id", questionController.GetQuestion)
			questionsAny.POST("/:id/answer", questionController.Answer)
		}

		questionsCreator := questions.Group("")
		questionsCreator.Use(authMiddleware.RoleRequired(auth.Creators...))
		{
			questionsCreator.POST("", questionController.CreateQuestion)
			questionsCreator.PATCH("/:id", questionController.UpdateQuestion)
			questionsCreator.PUT("/:id/targets", questionController.ReplaceTargets)
			questionsCreator.DELETE("/:id", questionController.DeleteQuestion)
			questionsCreator.GET("/:id/responses", questionController.ListResponses)
		}
	}

	credits := authenticated.Group("/credits")
	credits.Use(authMiddleware.RoleRequired(auth.AnyUser...))
	{
		credits.GET("/me", questionController.GetCredits)
	}

	chat := authenticated.Group("/chat")
	chat.Use(authMiddleware.RoleRequired(auth.AnyUser...))
	{
		chat.POST("/sessions", chatController.CreateSession)
		chat.GET("/sessions", chatController.ListSessions)
		chat.GET("/sessions/:id/messages", chatController.ListMessages)
		chat.POST("/sessions/:id/messages", chatController.SendMessage)
	}

	analytics := authenticated.Group("/analytics")
	analytics.Use(authMiddleware.RoleRequired(auth.Creators...))
	{
		analytics.GET("/my", analyticsController.MyStats)
	}

	news := authenticated.Group("/news")
	{
		newsAny := news.Group("")
		newsAny.Use(authMiddleware.RoleRequired(auth.AnyUser...))
		{
			newsAny.GET("", newsController.List)
			newsAny.GET("/:id", newsController.Get)
		}

		newsEditor := news.Group("")
		newsEditor.Use(authMiddleware.RoleRequired(auth.NewsEditors...))
		{
			newsEditor.POST("", newsController.Create)
			newsEditor.PATCH("/:id", newsController.Update)
			newsEditor.POST("/:id/publish", newsController.Publish)
			newsEditor.DELETE("/:id", newsController.Delete)
		}
	}

	wellness := authenticated.Group("/wellness")
	{
		wellnessAny := wellness.Group("")
		wellnessAny.Use(authMiddleware.RoleRequired(auth.AnyUser...))
		{
			wellnessAny.GET("/prompts", wellnessController.ListPrompts)
			wellnessAny.POST("/moods", wellnessController.RecordMood)
			wellnessAny.GET("/moods/me", wellnessController.ListMyMoods)
			wellnessAny.GET("/centers", wellnessController.ListCenters)
			wellnessAny.POST("/turns", wellnessController.RequestTurn)
			wellnessAny.GET("/turns/me", wellnessController.ListMyTurns)
		}

		wellnessAdmin := wellness.Group("")
		wellnessAdmin.Use(authMiddleware.RoleRequired(auth.SuperOnly...))
		{
			wellnessAdmin.POST("/prompts", wellnessController.CreatePrompt)
			wellnessAdmin.POST("/centers", wellnessController.CreateCenter)
			wellnessAdmin.GET("/centers/:id/turns", wellnessController.ListCenterTurns)
			wellnessAdmin.PATCH("/turns/:id/status", wellnessController.UpdateTurnStatus)
		}
	}

	places := authenticated.Group("/places")
	{
		placesAny := places.Group("")
		placesAny.Use(authMiddleware.RoleRequired(auth.AnyUserWithMarket...))
		{
			placesAny.GET("/catalog", placeController.Catalog)
			placesAny.GET("", placeController.ListPlaces)
			placesAny.GET("/:id", placeController.GetPlace)
			placesAny.GET("/:id/products", placeController.ListProducts)
		}

		placesManager := places.Group("")
		placesManager.Use(authMiddleware.RoleRequired(auth.MarketManagers...))
		{
			placesManager.POST("", placeController.CreatePlace)
			placesManager.PATCH("/:id", placeController.UpdatePlace)
			placesManager.DELETE("/:id", placeController.DeletePlace)
			placesManager.POST("/:id/products", placeController.CreateProduct)
			placesManager.PATCH("/products/:productId", placeController.UpdateProduct)
			placesManager.DELETE("/products/:productId", placeController.DeleteProduct)
		}
	}

	events := authenticated.Group("/events")
	{
		eventsAny := events.Group("")
		eventsAny.Use(authMiddleware.RoleRequired(auth.AnyUserWithMarket...))
		{
			eventsAny.GET("", placeController.ListEvents)
			eventsAny.GET("/:id", placeController.GetEvent)
		}

		eventsManager := events.Group("")
		eventsManager.Use(authMiddleware.RoleRequired(auth.MarketManagers...))
		{
			eventsManager.POST("", placeController.CreateEvent)
			eventsManager.PATCH("/:id", placeController.UpdateEvent)
			eventsManager.DELETE("/:id", placeController.DeleteEvent)
		}
	}

	cfg := authenticated.Group("/config")
	{
		cfgAny := cfg.Group("")
		cfgAny.Use(authMiddleware.RoleRequired(auth.AnyUserWithMarket...))
		{
			cfgAny.GET("/quick-actions", configController.ListQuickActions)
			cfgAny.GET("/flags", configController.ListFeatureFlags)
			cfgAny.GET("/flags/:key", configController.GetFeatureFlag)
		}

		cfgAdmin := cfg.Group("")
		cfgAdmin.Use(authMiddleware.RoleRequired(auth.SuperOnly...))
		{
			cfgAdmin.GET("/quick-actions/all", configController.ListAllQuickActions)
			cfgAdmin.POST("/quick-actions", configController.CreateQuickAction)
			cfgAdmin.PUT("/quick-actions/:id", configController.UpdateQuickAction)
			cfgAdmin.DELETE("/quick-actions/:id", configController.DeleteQuickAction)
			cfgAdmin.PUT("/flags/:key", configController.UpsertFeatureFlag)
		}
	}
}
