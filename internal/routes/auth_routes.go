package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"fieldtrack-backend/internal/handler"
	"fieldtrack-backend/internal/middleware"
	"fieldtrack-backend/internal/repository"
)

func SetupAuthRoutes(app *fiber.App, db *gorm.DB) {
	users := repository.NewUserRepository(db)
	devices := repository.NewDeviceRepository(db)
	hdl := handler.NewAuthHandler(users, devices)

	api := app.Group("/api/auth")
	api.Post("/login", hdl.Login)
	api.Post("/device", middleware.Auth, hdl.RegisterDevice)
}
