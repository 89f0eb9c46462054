package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"fieldtrack-backend/internal/handler"
	"fieldtrack-backend/internal/middleware"
	"fieldtrack-backend/internal/model"
	"fieldtrack-backend/internal/repository"
	"fieldtrack-backend/internal/usecase"
)

func SetupMessageRoutes(app *fiber.App, db *gorm.DB, hub usecase.Broadcaster, push handler.PushSender) {
	messages := repository.NewMessageRepository(db)
	users := repository.NewUserRepository(db)
	hdl := handler.NewMessageHandler(messages, users, hub, push)

	api := app.Group("/api/messages", middleware.Auth)

	api.Post("/send", hdl.Send)
	api.Get("/inbox", hdl.Inbox)
	api.Get("/unread-count", hdl.UnreadCount)
	api.Get("/conversation/:user_id", hdl.Conversation)
	api.Post("/conversation/:user_id/read", hdl.MarkConversationRead)
	api.Post("/read/:message_id", hdl.MarkRead)
	api.Post("/broadcast/division", middleware.Role(model.RoleAdmin, model.RoleSuperAdmin), hdl.DivisionBroadcast)
}
