package main

import (
	"foerderpilot/config"
	"foerderpilot/database"
	"foerderpilot/middleware"
	authRoutes "foerderpilot/routers/authRoutes"
	courseRoutes "foerderpilot/routers/courseRoutes"
	documentRoutes "foerderpilot/routers/documentRoutes"
	emailRoutes "foerderpilot/routers/emailRoutes"
	participantRoutes "foerderpilot/routers/participantRoutes"
	registerRoutes "foerderpilot/routers/registerRoutes"
	sammelterminRoutes "foerderpilot/routers/sammelterminRoutes"
	superAdminRoutes "foerderpilot/routers/superAdminRoutes"
	tenantRoutes "foerderpilot/routers/tenantRoutes"
	userRoutes "foerderpilot/routers/userRoutes"
	workflowRoutes "foerderpilot/routers/workflowRoutes"
	zeusRoutes "foerderpilot/routers/zeusRoutes"
	"foerderpilot/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"log"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins:     "*",
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE",
		AllowHeaders:     "Content-Type,Authorization",
		AllowCredentials: false,
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	// Tenant resolution runs on every request except the super admin API
	app.Use(middleware.ResolveTenant)

	// Serve uploaded documents
	app.Static("/uploads", config.AppConfig.UploadDir)

	authRoutes.SetupAuthRoutes(app)
	registerRoutes.SetupRegisterRoutes(app)
	courseRoutes.SetupCourseRoutes(app)
	participantRoutes.SetupParticipantRoutes(app)
	documentRoutes.SetupDocumentRoutes(app)
	sammelterminRoutes.SetupSammelterminRoutes(app)
	tenantRoutes.SetupTenantSettingsRoutes(app)
	userRoutes.SetupUserManagementRoutes(app)
	workflowRoutes.SetupWorkflowRoutes(app)
	zeusRoutes.SetupZeusRoutes(app)
	emailRoutes.SetupEmailRoutes(app)
	superAdminRoutes.SetupSuperAdminRoutes(app)

	scheduler := utils.StartSchedulers()
	defer scheduler.Stop()

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
