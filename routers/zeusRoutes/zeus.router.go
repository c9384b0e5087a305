package zeusRoutes

import (
	zeusController "foerderpilot/controllers/zeus"
	"foerderpilot/middleware"
	"foerderpilot/models"

	"github.com/gofiber/fiber/v2"
)

func SetupZeusRoutes(app *fiber.App) {
	zeus := app.Group("/api/zeus",
		middleware.JWTMiddleware,
		middleware.TenantScoped,
		middleware.RequireRoles(models.RoleAdmin, models.RoleSuperAdmin, models.RoleKompassReviewer),
	)

	zeus.Get("/participant/:participantId", zeusController.ExportParticipant)
	zeus.Get("/course/:courseId", zeusController.ExportCourse)
	zeus.Get("/course/:courseId/export.xlsx", zeusController.ExportCourseXLSX)
}
