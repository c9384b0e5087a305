package registerRoutes

import (
	registerController "foerderpilot/controllers/register"
	funnelValidator "foerderpilot/validators/funnel"

	"github.com/gofiber/fiber/v2"
)

// SetupRegisterRoutes mounts the public registration funnel. No session is
// required here, the tenant comes from host resolution alone.
func SetupRegisterRoutes(app *fiber.App) {
	register := app.Group("/api/register")

	register.Get("/courses", registerController.ListPublicCourses)
	register.Post("/foerdercheck", funnelValidator.Foerdercheck(), registerController.Foerdercheck)
	register.Post("/submit", funnelValidator.Submit(), registerController.Submit)
	register.Post("/vorvertrag/:participantId", registerController.SignVorvertrag)
}
