package handler

import (
	"encoding/json"

	"github.com/gofiber/contrib/websocket"
	"github.com/rs/zerolog/log"

	"fieldtrack-backend/internal/model"
	"fieldtrack-backend/internal/repository"
	"fieldtrack-backend/internal/ws"
)

// WSHandler bridges WebSocket connections to the broadcast hub.
type WSHandler struct {
	hub      *ws.Hub
	users    repository.UserRepository
	messages repository.MessageRepository
}

func NewWSHandler(hub *ws.Hub, users repository.UserRepository, messages repository.MessageRepository) *WSHandler {
	return &WSHandler{hub: hub, users: users, messages: messages}
}

// pump forwards hub messages to the connection until either side goes away.
func pump(conn *websocket.Conn, client *ws.Client, hub *ws.Hub) {
	defer conn.Close()
	defer hub.Unsubscribe(client)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case msg, ok := <-client.C:
			if !ok {
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}

func closeDenied(conn *websocket.Conn) {
	_ = conn.WriteJSON(map[string]string{"error": "not allowed"})
	_ = conn.Close()
}

// LocationStream streams one employee's raw pings. The superadmin may watch
// anyone, admins only their assigned employees, employees nobody.
func (h *WSHandler) LocationStream(conn *websocket.Conn) {
	viewerID, _ := conn.Locals("user_id").(string)
	viewerRole, _ := conn.Locals("role").(string)
	employeeID := conn.Params("user_id")

	allowed := false
	switch viewerRole {
	case model.RoleSuperAdmin:
		allowed = true
	case model.RoleAdmin:
		if ok, err := h.users.IsAssignedTo(employeeID, viewerID); err == nil {
			allowed = ok
		}
	}
	if !allowed {
		closeDenied(conn)
		return
	}

	client := h.hub.Subscribe("location:" + employeeID)
	pump(conn, client, h.hub)
}

// DivisionStream streams the live-map updates of a division.
func (h *WSHandler) DivisionStream(conn *websocket.Conn) {
	viewerRole, _ := conn.Locals("role").(string)
	if viewerRole != model.RoleSuperAdmin && viewerRole != model.RoleAdmin {
		closeDenied(conn)
		return
	}

	client := h.hub.Subscribe("division:" + conn.Params("division_id"))
	pump(conn, client, h.hub)
}

type chatFrame struct {
	Text string `json:"text"`
}

// Chat joins the two-party room with the peer from the URL. Inbound frames
// are persisted as messages, then fanned out to both ends of the room.
func (h *WSHandler) Chat(conn *websocket.Conn) {
	meID, _ := conn.Locals("user_id").(string)
	meRole, _ := conn.Locals("role").(string)
	otherID := conn.Params("user_id")

	other, err := h.users.FindByID(otherID)
	if err != nil {
		closeDenied(conn)
		return
	}
	if meRole == model.RoleEmployee && other.Role != model.RoleSuperAdmin {
		closeDenied(conn)
		return
	}

	topic := ws.ChatTopic(meID, otherID)
	client := h.hub.Subscribe(topic)
	defer conn.Close()
	defer h.hub.Unsubscribe(client)

	// Writer: room traffic out to this connection. Ends when Unsubscribe
	// closes the channel.
	go func() {
		for msg := range client.C {
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		}
	}()

	// Reader: inbound frames become persisted messages.
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}

		var frame chatFrame
		if err := json.Unmarshal(data, &frame); err != nil || frame.Text == "" {
			continue
		}

		message := model.Message{
			SenderID:   meID,
			ReceiverID: otherID,
			Text:       frame.Text,
		}
		if err := h.messages.Create(&message); err != nil {
			log.Error().Err(err).Msg("chat message persist failed")
			continue
		}

		h.hub.Publish(topic, map[string]interface{}{
			"id":         message.ID,
			"sender":     meID,
			"receiver":   otherID,
			"text":       message.Text,
			"created_at": message.CreatedAt,
		})
	}
}
