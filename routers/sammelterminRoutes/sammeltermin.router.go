package sammelterminRoutes

import (
	sammelterminController "foerderpilot/controllers/sammeltermin"
	"foerderpilot/middleware"
	"foerderpilot/models"
	sammelterminValidator "foerderpilot/validators/sammeltermin"

	"github.com/gofiber/fiber/v2"
)

func SetupSammelterminRoutes(app *fiber.App) {
	read := app.Group("/api/sammeltermine",
		middleware.JWTMiddleware,
		middleware.TenantScoped,
		middleware.RequireRoles(models.RoleAdmin, models.RoleSuperAdmin, models.RoleKompassReviewer),
	)

	read.Get("/", sammelterminController.ListSammeltermine)
	read.Get("/:id", sammelterminController.GetSammeltermin)

	admin := app.Group("/api/sammeltermine",
		middleware.JWTMiddleware,
		middleware.TenantScoped,
		middleware.RequireRoles(models.RoleAdmin, models.RoleSuperAdmin),
	)

	admin.Post("/", sammelterminValidator.Save(), sammelterminController.CreateSammeltermin)
	admin.Put("/:id", sammelterminValidator.Save(), sammelterminController.UpdateSammeltermin)
	admin.Delete("/:id", sammelterminController.DeleteSammeltermin)
}
