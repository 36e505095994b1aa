package handlers

import (
	"context"

	websocket "github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"

	"github.com/ankit-bind/shared-space-seekers/internal/models"
	"github.com/ankit-bind/shared-space-seekers/internal/services"
	chatws "github.com/ankit-bind/shared-space-seekers/internal/websocket"
)

type chatApplicationService interface {
	ListConversations(ctx context.Context, query string) ([]models.ConversationSummary, int, error)
	SelectConversation(ctx context.Context, conversationID string) (*models.Conversation, error)
	SendMessage(ctx context.Context, viewerID, conversationID, content string) (*services.ChatDelivery, error)
}

type ChatHandler struct {
	service chatApplicationService
	hub     *chatws.Hub
}

type sendMessageRequest struct {
	Content string `json:"content"`
}

func NewChatHandler(service chatApplicationService, hub *chatws.Hub) *ChatHandler {
	return &ChatHandler{
		service: service,
		hub:     hub,
	}
}

func (h *ChatHandler) ListConversations(c *fiber.Ctx) error {
	conversations, unread, err := h.service.ListConversations(c.Context(), c.Query("q"))
	if err != nil {
		return mapServiceError(c, err, "Conversation")
	}

	return c.JSON(fiber.Map{
		"conversations": conversations,
		"unread":        unread,
	})
}

// GetConversation opens a conversation. Opening marks it read.
func (h *ChatHandler) GetConversation(c *fiber.Ctx) error {
	conversation, err := h.service.SelectConversation(c.Context(), c.Params("id"))
	if err != nil {
		return mapServiceError(c, err, "Conversation")
	}

	return c.JSON(fiber.Map{"conversation": conversation})
}

func (h *ChatHandler) SendMessage(c *fiber.Ctx) error {
	viewer, err := viewerID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing viewer"})
	}

	var req sendMessageRequest
	if err := decodeStrict(c, &req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	delivery, err := h.service.SendMessage(c.Context(), viewer, c.Params("id"), req.Content)
	if err != nil {
		return mapServiceError(c, err, "Conversation")
	}
	if h.hub != nil {
		h.hub.BroadcastMessage(viewer, delivery)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":      delivery.Message,
		"conversation": delivery.Conversation.Summary(),
	})
}

func (h *ChatHandler) WebSocketUpgrade(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return c.Status(fiber.StatusUpgradeRequired).JSON(fiber.Map{"error": "WebSocket upgrade required"})
	}
	if _, err := viewerID(c); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing viewer"})
	}
	return c.Next()
}

func (h *ChatHandler) HandleWebSocket(conn *websocket.Conn) {
	viewer, _ := conn.Locals("user_id").(string)
	client := chatws.NewClient(h.hub, conn, viewer)

	h.hub.Register(client)
	go client.WritePump()
	client.ReadPump(context.Background(), h.service)
}
