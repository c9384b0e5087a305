package superAdminRoutes

import (
	superAdminController "foerderpilot/controllers/superAdmin"
	"foerderpilot/middleware"
	"foerderpilot/models"
	superAdminValidator "foerderpilot/validators/superAdmin"

	"github.com/gofiber/fiber/v2"
)

// SetupSuperAdminRoutes mounts the cross-tenant administration API. The
// group path matches middleware.SuperAdminPrefix so requests here never
// go through host based tenant resolution.
func SetupSuperAdminRoutes(app *fiber.App) {
	admin := app.Group(middleware.SuperAdminPrefix,
		middleware.JWTMiddleware,
		middleware.RequireRoles(models.RoleSuperAdmin),
	)

	admin.Get("/tenants", superAdminController.ListTenants)
	admin.Post("/tenants", superAdminValidator.CreateTenant(), superAdminController.CreateTenant)
	admin.Get("/tenants/:id", superAdminController.GetTenant)
	admin.Put("/tenants/:id", superAdminValidator.UpdateTenant(), superAdminController.UpdateTenant)
	admin.Patch("/tenants/:id/active", superAdminController.SetTenantActive)

	admin.Get("/users", superAdminController.ListAllUsers)
}
