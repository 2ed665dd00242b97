package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uisgo/uisgo-backend/internal/app/controllers"
	"github.com/uisgo/uisgo-backend/internal/app/models"
	"github.com/uisgo/uisgo-backend/internal/middleware"
	pkgAuth "github.com/uisgo/uisgo-backend/internal/pkg/auth"
)

func testJWT() *pkgAuth.JWTService {
	return pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "uisgo.app",
		TokenAudience:  "uisgo-api",
	})
}

func buildTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	jwtService := testJWT()

	SetupRouter(router,
		controllers.NewAuthController(nil),
		controllers.NewUserController(nil),
		controllers.NewGroupController(nil),
		controllers.NewJoinController(nil, "uisgo"),
		controllers.NewActivityController(nil),
		controllers.NewCoinsController(nil),
		controllers.NewQuestionController(nil),
		controllers.NewChatController(nil),
		controllers.NewAnalyticsController(nil),
		controllers.NewNewsController(nil),
		controllers.NewWellnessController(nil),
		controllers.NewPlaceController(nil),
		controllers.NewConfigController(nil),
		middleware.NewAuthMiddleware(jwtService),
	)
	return router
}

func TestSetupRouterRegistersRoutes(t *testing.T) {
	router := buildTestRouter()

	registered := make(map[string]bool)
	for _, route := range router.Routes() {
		registered[route.Method+" "+route.Path] = true
	}

	expected := []string{
		"POST /api/v1/auth/register",
		"POST /api/v1/auth/register/student",
		"POST /api/v1/auth/login",
		"POST /api/v1/auth/forgot-password",
		"POST /api/v1/auth/reset-password",
		"GET /join",
		"GET /api/v1/join/:code/qr",
		"GET /api/v1/users/me",
		"GET /api/v1/groups",
		"POST /api/v1/groups/join",
		"POST /api/v1/groups",
		"POST /api/v1/groups/:id/invites",
		"GET /api/v1/activities",
		"POST /api/v1/activities/:id/submit",
		"POST /api/v1/activities/:id/publish",
		"POST /api/v1/activities/submissions/:submissionId/grade",
		"GET /api/v1/coins/me",
		"GET /api/v1/coins/me/ledger",
		"POST /api/v1/coins/adjust",
		"GET /api/v1/questions",
		"POST /api/v1/questions/:id/answer",
		"GET /api/v1/credits/me",
		"POST /api/v1/chat/sessions",
		"POST /api/v1/chat/sessions/:id/messages",
		"GET /api/v1/analytics/my",
		"GET /api/v1/news",
		"POST /api/v1/news/:id/publish",
		"GET /api/v1/wellness/prompts",
		"POST /api/v1/wellness/moods",
		"GET /api/v1/wellness/centers",
		"POST /api/v1/wellness/turns",
		"PATCH /api/v1/wellness/turns/:id/status",
		"GET /api/v1/places/catalog",
		"GET /api/v1/places",
		"GET /api/v1/events",
		"GET /api/v1/config/quick-actions",
		"PUT /api/v1/config/flags/:key",
	}

	for _, route := range expected {
		assert.True(t, registered[route], "missing route %s", route)
	}
}

// Reward endpoints are open to every authenticated role, not just students.
// An empty body stops the handler at binding, so only the role gate is
// exercised.
func TestRewardRoutesAllowAnyRole(t *testing.T) {
	router := buildTestRouter()
	jwtService := testJWT()

	paths := []string{
		"/api/v1/activities/" + uuid.NewString() + "/submit",
		"/api/v1/questions/" + uuid.NewString() + "/answer",
	}
	for _, role := range []models.Role{models.RoleStudent, models.RoleProfessor, models.RoleCommunications} {
		token, _, err := jwtService.GenerateAccessToken(uuid.New(), string(role))
		require.NoError(t, err)

		for _, path := range paths {
			req := httptest.NewRequest(http.MethodPost, path, nil)
			req.Header.Set("Authorization", "Bearer "+token)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.NotEqual(t, http.StatusForbidden, rec.Code, "%s as %s", path, role)
		}
	}

	// Market managers are outside the reward surface
	token, _, err := jwtService.GenerateAccessToken(uuid.New(), string(models.RoleMarketManager))
	require.NoError(t, err)
	for _, path := range paths {
		req := httptest.NewRequest(http.MethodPost, path, nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code, path)
	}
}
