package participantRoutes

import (
	participantController "foerderpilot/controllers/participant"
	"foerderpilot/middleware"
	"foerderpilot/models"
	participantValidator "foerderpilot/validators/participant"

	"github.com/gofiber/fiber/v2"
)

func SetupParticipantRoutes(app *fiber.App) {
	read := app.Group("/api/participants",
		middleware.JWTMiddleware,
		middleware.TenantScoped,
		middleware.RequireRoles(models.RoleAdmin, models.RoleSuperAdmin, models.RoleKompassReviewer),
	)

	read.Get("/", participantController.ListParticipants)
	read.Get("/:id", participantController.GetParticipant)

	admin := app.Group("/api/participants",
		middleware.JWTMiddleware,
		middleware.TenantScoped,
		middleware.RequireRoles(models.RoleAdmin, models.RoleSuperAdmin),
	)

	admin.Post("/", participantValidator.Save(), participantController.CreateParticipant)
	admin.Put("/:id", participantValidator.Save(), participantController.UpdateParticipant)
	admin.Patch("/:id/status", participantController.UpdateStatus)
	admin.Patch("/:id/schedule", participantController.AssignSchedule)
	admin.Delete("/:id", participantController.DeleteParticipant)
}
