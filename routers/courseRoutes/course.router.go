package courseRoutes

import (
	courseController "foerderpilot/controllers/course"
	"foerderpilot/middleware"
	"foerderpilot/models"
	courseValidator "foerderpilot/validators/course"

	"github.com/gofiber/fiber/v2"
)

func SetupCourseRoutes(app *fiber.App) {
	courses := app.Group("/api/courses",
		middleware.JWTMiddleware,
		middleware.TenantScoped,
		middleware.RequireRoles(models.RoleAdmin, models.RoleSuperAdmin, models.RoleKompassReviewer),
	)

	courses.Get("/", courseController.ListCourses)
	courses.Get("/:id", courseController.GetCourse)

	admin := app.Group("/api/courses",
		middleware.JWTMiddleware,
		middleware.TenantScoped,
		middleware.RequireRoles(models.RoleAdmin, models.RoleSuperAdmin),
	)

	admin.Post("/", courseValidator.Save(), courseController.CreateCourse)
	admin.Put("/:id", courseValidator.Save(), courseController.UpdateCourse)
	admin.Patch("/:id/publish", courseController.SetPublished)
	admin.Delete("/:id", courseController.DeleteCourse)

	// Schedules live under their course
	courses.Get("/:id/schedules", courseController.ListSchedules)
	admin.Post("/:id/schedules", courseValidator.SaveSchedule(), courseController.CreateSchedule)
	admin.Put("/:id/schedules/:scheduleId", courseValidator.SaveSchedule(), courseController.UpdateSchedule)
	admin.Patch("/:id/schedules/:scheduleId/status", courseController.SetScheduleStatus)
	admin.Delete("/:id/schedules/:scheduleId", courseController.DeleteSchedule)
}
