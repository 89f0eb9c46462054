package handler

import (
	"context"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"fieldtrack-backend/internal/middleware"
	"fieldtrack-backend/internal/model"
	"fieldtrack-backend/internal/repository"
	"fieldtrack-backend/internal/usecase"
	"fieldtrack-backend/internal/ws"
)

// PushSender is the slice of the push notifier the handlers need.
type PushSender interface {
	Send(ctx context.Context, userIDs []string, title, body string, data map[string]string)
}

type MessageHandler struct {
	messages repository.MessageRepository
	users    repository.UserRepository
	hub      usecase.Broadcaster
	push     PushSender
}

func NewMessageHandler(messages repository.MessageRepository, users repository.UserRepository, hub usecase.Broadcaster, push PushSender) *MessageHandler {
	return &MessageHandler{messages: messages, users: users, hub: hub, push: push}
}

type SendMessageRequest struct {
	Receiver string `json:"receiver" validate:"required"`
	Text     string `json:"text" validate:"required"`
}

// Send delivers a direct message: persisted, pushed to the receiver's
// devices and published to the chat room. Employees may only message the
// superadmin.
func (h *MessageHandler) Send(c *fiber.Ctx) error {
	senderID := middleware.UserID(c)

	var req SendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	receiver, err := h.users.FindByID(req.Receiver)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Receiver not found"})
	}

	if middleware.RoleOf(c) == model.RoleEmployee && receiver.Role != model.RoleSuperAdmin {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Employees can only message the superadmin"})
	}

	message := model.Message{
		SenderID:   senderID,
		ReceiverID: receiver.ID,
		Text:       req.Text,
	}
	if err := h.messages.Create(&message); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not send message"})
	}

	senderName, _ := c.Locals("name").(string)
	h.hub.Publish(ws.ChatTopic(senderID, receiver.ID), fiber.Map{
		"id":         message.ID,
		"sender":     senderID,
		"receiver":   receiver.ID,
		"text":       message.Text,
		"created_at": message.CreatedAt,
	})
	go h.push.Send(context.Background(), []string{receiver.ID}, senderName, message.Text, map[string]string{
		"type":      "message",
		"sender_id": senderID,
	})

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Message sent", "data": message})
}

func (h *MessageHandler) Inbox(c *fiber.Ctx) error {
	messages, err := h.messages.Inbox(middleware.UserID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not load inbox"})
	}
	return c.JSON(fiber.Map{"message": "Inbox loaded", "data": messages})
}

func (h *MessageHandler) Conversation(c *fiber.Ctx) error {
	messages, err := h.messages.Conversation(middleware.UserID(c), c.Params("user_id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not load conversation"})
	}
	return c.JSON(fiber.Map{"message": "Conversation loaded", "data": messages})
}

func (h *MessageHandler) UnreadCount(c *fiber.Ctx) error {
	count, err := h.messages.UnreadCount(middleware.UserID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not count messages"})
	}
	return c.JSON(fiber.Map{"unread_count": count})
}

// MarkRead marks one message as read. Only its receiver may do that.
func (h *MessageHandler) MarkRead(c *fiber.Ctx) error {
	messageID, err := strconv.Atoi(c.Params("message_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid message id"})
	}

	message, err := h.messages.FindByID(uint(messageID))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Message not found"})
	}
	if message.ReceiverID != middleware.UserID(c) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Not allowed"})
	}

	if err := h.messages.MarkRead(message); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not update message"})
	}
	return c.JSON(fiber.Map{"status": "read"})
}

func (h *MessageHandler) MarkConversationRead(c *fiber.Ctx) error {
	if err := h.messages.MarkConversationRead(c.Params("user_id"), middleware.UserID(c)); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not update conversation"})
	}
	return c.JSON(fiber.Map{"status": "conversation_read"})
}

type BroadcastRequest struct {
	DivisionID uint   `json:"division_id" validate:"required"`
	Text       string `json:"text" validate:"required"`
}

// DivisionBroadcast stores one message per division member and pushes a
// notification to all of them. Admins can only reach their own employees.
func (h *MessageHandler) DivisionBroadcast(c *fiber.Ctx) error {
	senderID := middleware.UserID(c)

	var req BroadcastRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	division, err := h.users.FindDivision(req.DivisionID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Division not found"})
	}

	adminScope := ""
	if middleware.RoleOf(c) == model.RoleAdmin {
		adminScope = senderID
	}
	employees, err := h.users.GetDivisionEmployees(division.ID, adminScope)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not load employees"})
	}

	messages := make([]model.Message, 0, len(employees))
	recipients := make([]string, 0, len(employees))
	for _, emp := range employees {
		messages = append(messages, model.Message{
			SenderID:   senderID,
			ReceiverID: emp.ID,
			Text:       req.Text,
		})
		recipients = append(recipients, emp.ID)
	}

	if err := h.messages.CreateMany(messages); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not store broadcast"})
	}

	go h.push.Send(context.Background(), recipients, division.Name, req.Text, map[string]string{
		"type":        "broadcast",
		"division_id": strconv.FormatUint(uint64(division.ID), 10),
	})

	return c.JSON(fiber.Map{
		"sent_to":  len(messages),
		"division": division.Name,
	})
}
