package authRoutes

import (
	authController "foerderpilot/controllers/auth"
	"foerderpilot/middleware"
	authValidator "foerderpilot/validators/auth"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App) {
	auth := app.Group("/api/auth")

	auth.Post("/register", authValidator.Register(), authController.Register)
	auth.Post("/login", authValidator.Login(), authController.Login)
	auth.Post("/logout", authController.Logout)
	auth.Post("/request-reset", authValidator.RequestReset(), authController.RequestReset)
	auth.Post("/reset-password", authValidator.ResetPassword(), authController.ResetPassword)
	auth.Get("/me", middleware.JWTMiddleware, authController.Me)
}
