package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"fieldtrack-backend/internal/handler"
	"fieldtrack-backend/internal/middleware"
	"fieldtrack-backend/internal/model"
	"fieldtrack-backend/internal/repository"
)

func SetupOfficeRoutes(app *fiber.App, db *gorm.DB) {
	offices := repository.NewOfficeRepository(db)
	hdl := handler.NewOfficeHandler(offices)

	// Geofence configuration is superadmin territory.
	api := app.Group("/api/offices", middleware.Auth, middleware.Role(model.RoleSuperAdmin))
	api.Get("/", hdl.GetAll)
	api.Post("/", hdl.Create)
	api.Put("/:office_id", hdl.Update)
}
