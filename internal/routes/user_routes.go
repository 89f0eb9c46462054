package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"fieldtrack-backend/internal/handler"
	"fieldtrack-backend/internal/mailer"
	"fieldtrack-backend/internal/middleware"
	"fieldtrack-backend/internal/model"
	"fieldtrack-backend/internal/repository"
)

func SetupUserRoutes(app *fiber.App, db *gorm.DB, mail *mailer.Mailer) {
	users := repository.NewUserRepository(db)
	hdl := handler.NewUserHandler(users, mail)

	// User management is superadmin territory.
	api := app.Group("/api/users", middleware.Auth, middleware.Role(model.RoleSuperAdmin))
	api.Post("/", hdl.Create)
	api.Get("/", hdl.GetAll)
	api.Get("/:user_id", hdl.GetByID)
	api.Put("/:user_id", hdl.Update)
	api.Delete("/:user_id", hdl.Delete)

	divisions := app.Group("/api/divisions", middleware.Auth, middleware.Role(model.RoleAdmin, model.RoleSuperAdmin))
	divisions.Get("/", hdl.GetDivisions)
	divisions.Get("/:division_id/employees", hdl.GetDivisionEmployees)
}
