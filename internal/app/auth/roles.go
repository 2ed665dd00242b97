package auth

import "github.com/uisgo/uisgo-backend/internal/app/models"

// Role allow-lists shared by route wiring and services. The role set is
// closed; every guarded endpoint names one of these lists instead of
// building its own ad hoc slice.
var (
	// AnyUser covers the app roles without marketplace access.
	AnyUser = []models.Role{
		models.RoleStudent,
		models.RoleProfessor,
		models.RoleSuperuser,
		models.RoleCommunications,
	}

	// AnyUserWithMarket additionally admits market managers, for the
	// profile and places surfaces they need.
	AnyUserWithMarket = []models.Role{
		models.RoleStudent,
		models.RoleProfessor,
		models.RoleSuperuser,
		models.RoleCommunications,
		models.RoleMarketManager,
	}

	// Creators can own groups, activities, questions and see analytics.
	Creators = []models.Role{
		models.RoleProfessor,
		models.RoleSuperuser,
	}

	// NewsEditors can author and publish news articles.
	NewsEditors = []models.Role{
		models.RoleProfessor,
		models.RoleSuperuser,
		models.RoleCommunications,
	}

	// MarketManagers maintain the map surface.
	MarketManagers = []models.Role{
		models.RoleMarketManager,
		models.RoleSuperuser,
	}

	// SuperOnly is reserved for administrative operations.
	SuperOnly = []models.Role{
		models.RoleSuperuser,
	}

	// StudentsOnly guards membership endpoints only students use.
	StudentsOnly = []models.Role{
		models.RoleStudent,
	}
)

// RoleAllowed reports whether role appears in the allow-list
func RoleAllowed(role models.Role, allowed []models.Role) bool {
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}

// IsPrivileged reports whether the role bypasses ownership checks.
// Superusers manage everything; market managers manage the map surface.
func IsPrivileged(role models.Role) bool {
	return role == models.RoleSuperuser || role == models.RoleMarketManager
}
