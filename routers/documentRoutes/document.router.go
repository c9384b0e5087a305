package documentRoutes

import (
	documentController "foerderpilot/controllers/document"
	"foerderpilot/middleware"
	"foerderpilot/models"
	documentValidator "foerderpilot/validators/document"

	"github.com/gofiber/fiber/v2"
)

func SetupDocumentRoutes(app *fiber.App) {
	documents := app.Group("/api/documents",
		middleware.JWTMiddleware,
		middleware.TenantScoped,
		middleware.RequireRoles(models.RoleAdmin, models.RoleSuperAdmin, models.RoleKompassReviewer),
	)

	documents.Get("/participant/:participantId", documentController.List)
	documents.Post("/participant/:participantId", documentValidator.Upload(), documentController.Upload)
	documents.Get("/:id", documentController.Get)
	documents.Post("/:id/validate", documentController.Validate)
	documents.Patch("/:id/status", documentController.SetStatus)
	documents.Delete("/:id", documentController.Delete)
}
