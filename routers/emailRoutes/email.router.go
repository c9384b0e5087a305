package emailRoutes

import (
	emailController "foerderpilot/controllers/email"
	"foerderpilot/middleware"
	"foerderpilot/models"

	"github.com/gofiber/fiber/v2"
)

func SetupEmailRoutes(app *fiber.App) {
	email := app.Group("/api/email",
		middleware.JWTMiddleware,
		middleware.TenantScoped,
		middleware.RequireRoles(models.RoleAdmin, models.RoleSuperAdmin),
	)

	email.Get("/template-keys", emailController.ListTemplateKeys)
	email.Post("/test", emailController.SendTest)
	email.Post("/resend-status/:participantId", emailController.ResendStatusNotification)
}
