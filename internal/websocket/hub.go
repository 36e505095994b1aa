package chatws

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	websocket "github.com/gofiber/contrib/websocket"
	"github.com/rs/zerolog"

	"github.com/ankit-bind/shared-space-seekers/internal/models"
	"github.com/ankit-bind/shared-space-seekers/internal/services"
	"github.com/ankit-bind/shared-space-seekers/pkg/utils"
)

const (
	EventMessage       = "message"
	EventConversation  = "conversation"
	EventConversations = "conversations"
	EventNotification  = "notification"
	EventError         = "error"
)

type Hub struct {
	clients    map[string]map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	broadcast  chan *Event
	done       chan struct{}
	log        zerolog.Logger
}

type Client struct {
	hub      *Hub
	conn     *websocket.Conn
	viewerID string
	send     chan []byte
}

type chatService interface {
	ListConversations(ctx context.Context, query string) ([]models.ConversationSummary, int, error)
	SelectConversation(ctx context.Context, conversationID string) (*models.Conversation, error)
	SendMessage(ctx context.Context, viewerID, conversationID, content string) (*services.ChatDelivery, error)
}

// Event is the frame pushed to connected clients.
type Event struct {
	Type           string                       `json:"type"`
	ViewerID       string                       `json:"-"`
	ConversationID string                       `json:"conversation_id,omitempty"`
	Message        *models.Message              `json:"message,omitempty"`
	Conversation   *models.Conversation         `json:"conversation,omitempty"`
	Conversations  []models.ConversationSummary `json:"conversations,omitempty"`
	Unread         *int                         `json:"unread,omitempty"`
	Notification   *models.Notification         `json:"notification,omitempty"`
	Error          string                       `json:"error,omitempty"`
	Timestamp      string                       `json:"timestamp"`

	target *Client
}

type incomingFrame struct {
	Type           string `json:"type"`
	ConversationID string `json:"conversation_id"`
	Content        string `json:"content"`
	Query          string `json:"query"`
}

func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *Event, 64),
		done:       make(chan struct{}),
		log:        log.With().Str("component", "chat_hub").Logger(),
	}
}

func NewClient(hub *Hub, conn *websocket.Conn, viewerID string) *Client {
	return &Client{
		hub:      hub,
		conn:     conn,
		viewerID: viewerID,
		send:     make(chan []byte, 32),
	}
}

// Run owns the client registry until ctx is canceled.
func (h *Hub) Run(ctx context.Context) {
	defer func() {
		for viewerID, set := range h.clients {
			for client := range set {
				close(client.send)
			}
			delete(h.clients, viewerID)
		}
		close(h.done)
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case client := <-h.register:
			set, ok := h.clients[client.viewerID]
			if !ok {
				set = make(map[*Client]struct{})
				h.clients[client.viewerID] = set
			}
			set[client] = struct{}{}
		case client := <-h.unregister:
			set, ok := h.clients[client.viewerID]
			if !ok {
				continue
			}
			if _, exists := set[client]; exists {
				delete(set, client)
				close(client.send)
			}
			if len(set) == 0 {
				delete(h.clients, client.viewerID)
			}
		case event := <-h.broadcast:
			h.deliver(event)
		}
	}
}

func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.done:
	}
}

func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Notify pushes a toast to every connection of viewerID.
func (h *Hub) Notify(_ context.Context, viewerID string, notification models.Notification) {
	h.publish(&Event{
		Type:         EventNotification,
		ViewerID:     viewerID,
		Notification: &notification,
	})
}

// BroadcastMessage echoes a sent message to every connection of viewerID.
func (h *Hub) BroadcastMessage(viewerID string, delivery *services.ChatDelivery) {
	message := delivery.Message
	h.publish(&Event{
		Type:           EventMessage,
		ViewerID:       viewerID,
		ConversationID: delivery.Conversation.ID,
		Message:        &message,
	})
}

func (h *Hub) publish(event *Event) {
	if event.Timestamp == "" {
		event.Timestamp = utils.FormatTimestamp(time.Now())
	}
	select {
	case h.broadcast <- event:
	case <-h.done:
	default:
		h.log.Warn().Str("type", event.Type).Str("viewer_id", event.ViewerID).Msg("hub backlog full, dropping event")
	}
}

func (h *Hub) deliver(event *Event) {
	encoded, err := json.Marshal(event)
	if err != nil {
		h.log.Error().Err(err).Str("type", event.Type).Msg("encode hub event")
		return
	}

	set, ok := h.clients[event.ViewerID]
	if !ok {
		return
	}

	for client := range set {
		if event.target != nil && event.target != client {
			continue
		}
		select {
		case client.send <- encoded:
		default:
			delete(set, client)
			close(client.send)
		}
	}
	if len(set) == 0 {
		delete(h.clients, event.ViewerID)
	}
}

func (c *Client) ReadPump(ctx context.Context, service chatService) {
	defer func() {
		c.hub.Unregister(c)
		_ = c.conn.Close()
	}()

	for {
		_, payload, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		c.handle(ctx, service, payload)
	}
}

func (c *Client) handle(ctx context.Context, service chatService, payload []byte) {
	var incoming incomingFrame
	if err := json.Unmarshal(payload, &incoming); err != nil {
		c.writeError("invalid message payload")
		return
	}

	switch incoming.Type {
	case "message":
		delivery, err := service.SendMessage(ctx, c.viewerID, incoming.ConversationID, incoming.Content)
		if err != nil {
			c.writeError(describeError(err, "failed to send message"))
			return
		}
		c.hub.BroadcastMessage(c.viewerID, delivery)
	case "select":
		conversation, err := service.SelectConversation(ctx, incoming.ConversationID)
		if err != nil {
			c.writeError(describeError(err, "failed to open conversation"))
			return
		}
		c.enqueue(&Event{
			Type:           EventConversation,
			ConversationID: conversation.ID,
			Conversation:   conversation,
		})
	case "list":
		summaries, unread, err := service.ListConversations(ctx, incoming.Query)
		if err != nil {
			c.writeError("failed to list conversations")
			return
		}
		c.enqueue(&Event{
			Type:          EventConversations,
			Conversations: summaries,
			Unread:        &unread,
		})
	default:
		c.writeError("unsupported message type")
	}
}

func (c *Client) WritePump() {
	defer func() {
		_ = c.conn.Close()
	}()

	for payload := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			return
		}
	}
}

// enqueue replies to this connection only. Only Run writes to or closes
// c.send.
func (c *Client) enqueue(event *Event) {
	event.ViewerID = c.viewerID
	event.target = c
	c.hub.publish(event)
}

func (c *Client) writeError(message string) {
	c.enqueue(&Event{Type: EventError, Error: message})
}

func describeError(err error, fallback string) string {
	var validationErr *services.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return validationErr.Error()
	case errors.Is(err, services.ErrNotFound):
		return "conversation not found"
	default:
		return fallback
	}
}
