package tenantRoutes

import (
	tenantSettingsController "foerderpilot/controllers/tenantSettings"
	"foerderpilot/middleware"
	"foerderpilot/models"

	"github.com/gofiber/fiber/v2"
)

func SetupTenantSettingsRoutes(app *fiber.App) {
	settings := app.Group("/api/tenant-settings",
		middleware.JWTMiddleware,
		middleware.TenantScoped,
		middleware.RequireRoles(models.RoleAdmin, models.RoleSuperAdmin),
	)

	settings.Get("/", tenantSettingsController.GetSettings)
	settings.Put("/", tenantSettingsController.UpdateSettings)

	settings.Get("/email-templates", tenantSettingsController.ListEmailTemplates)
	settings.Put("/email-templates", tenantSettingsController.UpsertEmailTemplate)
	settings.Delete("/email-templates/:id", tenantSettingsController.DeleteEmailTemplate)
}
