package workflowRoutes

import (
	workflowController "foerderpilot/controllers/workflow"
	"foerderpilot/middleware"
	"foerderpilot/models"

	"github.com/gofiber/fiber/v2"
)

func SetupWorkflowRoutes(app *fiber.App) {
	workflows := app.Group("/api/workflows",
		middleware.JWTMiddleware,
		middleware.TenantScoped,
		middleware.RequireRoles(models.RoleAdmin, models.RoleSuperAdmin, models.RoleKompassReviewer),
	)

	workflows.Get("/templates", workflowController.ListTemplates)
	workflows.Post("/templates", workflowController.CreateTemplate)
	workflows.Post("/templates/:id/questions", workflowController.AddQuestion)
	workflows.Delete("/templates/:id/questions/:questionId", workflowController.DeleteQuestion)
	workflows.Get("/course/:courseId", workflowController.GetForCourse)
	workflows.Put("/participant/:participantId/answers", workflowController.SaveAnswers)
	workflows.Post("/participant/:participantId/narrative", workflowController.GenerateNarrative)
}
