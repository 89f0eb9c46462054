package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"fieldtrack-backend/internal/handler"
	"fieldtrack-backend/internal/middleware"
	"fieldtrack-backend/internal/model"
	"fieldtrack-backend/internal/repository"
	"fieldtrack-backend/internal/usecase"
	"fieldtrack-backend/internal/ws"
)

func SetupLocationRoutes(app *fiber.App, db *gorm.DB, hub *ws.Hub) {
	locations := repository.NewLocationRepository(db)
	attendances := repository.NewAttendanceRepository(db)
	offices := repository.NewOfficeRepository(db)
	users := repository.NewUserRepository(db)

	ingest := usecase.NewLocationUsecase(locations, attendances, offices, users, hub)
	hdl := handler.NewLocationHandler(ingest, locations, users)

	api := app.Group("/api/locations", middleware.Auth)

	api.Post("/send", middleware.Role(model.RoleEmployee), hdl.Send)
	api.Get("/me", hdl.MyHistory)

	admin := middleware.Role(model.RoleAdmin, model.RoleSuperAdmin)
	api.Get("/user/:user_id", admin, hdl.UserHistory)
	api.Get("/user/:user_id/latest", admin, hdl.Latest)
	api.Get("/user/:user_id/route", admin, hdl.Route)
	api.Get("/division/:division_id/live", admin, hdl.DivisionLive)
}
