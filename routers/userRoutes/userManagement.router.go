package userRoutes

import (
	userManagementController "foerderpilot/controllers/userManagement"
	"foerderpilot/middleware"
	"foerderpilot/models"
	userManagementValidator "foerderpilot/validators/userManagement"

	"github.com/gofiber/fiber/v2"
)

func SetupUserManagementRoutes(app *fiber.App) {
	users := app.Group("/api/users",
		middleware.JWTMiddleware,
		middleware.TenantScoped,
		middleware.RequireRoles(models.RoleAdmin, models.RoleSuperAdmin),
	)

	users.Get("/", userManagementController.ListUsers)
	users.Post("/invite", userManagementValidator.Invite(), userManagementController.InviteUser)
	users.Put("/:id", userManagementController.UpdateUser)
	users.Patch("/:id/active", userManagementController.SetActive)
	users.Post("/:id/reset-password", userManagementController.ResetUserPassword)
}
