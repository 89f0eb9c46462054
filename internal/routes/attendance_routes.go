package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"fieldtrack-backend/internal/handler"
	"fieldtrack-backend/internal/middleware"
	"fieldtrack-backend/internal/model"
	"fieldtrack-backend/internal/repository"
)

func SetupAttendanceRoutes(app *fiber.App, db *gorm.DB) {
	attendances := repository.NewAttendanceRepository(db)
	offices := repository.NewOfficeRepository(db)
	users := repository.NewUserRepository(db)
	hdl := handler.NewAttendanceHandler(attendances, offices, users)

	api := app.Group("/api/attendance", middleware.Auth)

	api.Get("/me", hdl.MyAttendance)
	api.Get("/me/monthly", hdl.MyMonthly)

	admin := middleware.Role(model.RoleAdmin, model.RoleSuperAdmin)
	api.Get("/user/:user_id/monthly", admin, hdl.UserMonthly)
	api.Get("/summary", admin, hdl.Summary)
}
