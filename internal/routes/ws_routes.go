package routes

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"fieldtrack-backend/internal/handler"
	"fieldtrack-backend/internal/middleware"
	"fieldtrack-backend/internal/repository"
	"fieldtrack-backend/internal/ws"
)

func SetupWSRoutes(app *fiber.App, db *gorm.DB, hub *ws.Hub) {
	users := repository.NewUserRepository(db)
	messages := repository.NewMessageRepository(db)
	hdl := handler.NewWSHandler(hub, users, messages)

	// Reject plain HTTP before upgrading; auth runs on the upgrade request
	// (token via Authorization header or ?token=).
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	}, middleware.Auth)

	app.Get("/ws/location/:user_id", websocket.New(hdl.LocationStream))
	app.Get("/ws/division/:division_id", websocket.New(hdl.DivisionStream))
	app.Get("/ws/chat/:user_id", websocket.New(hdl.Chat))
}
