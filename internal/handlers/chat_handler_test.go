package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/ankit-bind/shared-space-seekers/internal/models"
	"github.com/ankit-bind/shared-space-seekers/internal/services"
	chatws "github.com/ankit-bind/shared-space-seekers/internal/websocket"
)

type stubChatService struct {
	conversationsResult []models.ConversationSummary
	unread              int
	listErr             error
	selectResult        *models.Conversation
	selectErr           error
	sendErr             error
	lastQuery           string
	lastViewerID        string
	lastConversationID  string
	lastContent         string
}

func (s *stubChatService) ListConversations(_ context.Context, query string) ([]models.ConversationSummary, int, error) {
	s.lastQuery = query
	return s.conversationsResult, s.unread, s.listErr
}

func (s *stubChatService) SelectConversation(_ context.Context, conversationID string) (*models.Conversation, error) {
	s.lastConversationID = conversationID
	return s.selectResult, s.selectErr
}

func (s *stubChatService) SendMessage(_ context.Context, viewerID, conversationID, content string) (*services.ChatDelivery, error) {
	s.lastViewerID = viewerID
	s.lastConversationID = conversationID
	s.lastContent = content
	if s.sendErr != nil {
		return nil, s.sendErr
	}
	return &services.ChatDelivery{
		Conversation: models.Conversation{ID: conversationID, Name: "Sarah Johnson", LastMessage: content},
		Message: models.Message{
			ID:        "msg_01",
			SenderID:  viewerID,
			Content:   content,
			Timestamp: time.Date(2025, 4, 23, 11, 0, 0, 0, time.UTC),
		},
	}, nil
}

func newChatTestApp(service *stubChatService) *fiber.App {
	handler := NewChatHandler(service, chatws.NewHub(zerolog.Nop()))

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user_id", "current-user")
		return c.Next()
	})
	app.Get("/api/v1/conversations", handler.ListConversations)
	app.Get("/api/v1/conversations/:id", handler.GetConversation)
	app.Post("/api/v1/conversations/:id/messages", handler.SendMessage)
	app.Get("/api/v1/ws", handler.WebSocketUpgrade)
	return app
}

func TestListConversationsReturnsSummariesAndUnread(t *testing.T) {
	service := &stubChatService{
		conversationsResult: []models.ConversationSummary{
			{ID: "1", Name: "Sarah Johnson", Unread: true},
			{ID: "2", Name: "Michael Chen"},
		},
		unread: 1,
	}
	app := newChatTestApp(service)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/conversations?q=sarah", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if service.lastQuery != "sarah" {
		t.Fatalf("expected query to be forwarded, got %q", service.lastQuery)
	}

	var body struct {
		Conversations []models.ConversationSummary `json:"conversations"`
		Unread        int                          `json:"unread"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(body.Conversations) != 2 || body.Unread != 1 {
		t.Fatalf("unexpected response: %+v", body)
	}
}

func TestGetConversationSelectsConversation(t *testing.T) {
	service := &stubChatService{
		selectResult: &models.Conversation{ID: "1", Name: "Sarah Johnson"},
	}
	app := newChatTestApp(service)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/conversations/1", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if service.lastConversationID != "1" {
		t.Fatalf("expected conversation 1 to be selected, got %q", service.lastConversationID)
	}
}

func TestGetConversationReturnsNotFound(t *testing.T) {
	service := &stubChatService{selectErr: services.ErrNotFound}
	app := newChatTestApp(service)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/conversations/99", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestSendMessageReturnsCreatedMessage(t *testing.T) {
	service := &stubChatService{}
	app := newChatTestApp(service)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/conversations/2/messages", strings.NewReader(`{"content":"hello"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	if service.lastViewerID != "current-user" || service.lastConversationID != "2" || service.lastContent != "hello" {
		t.Fatalf("unexpected forwarded message: %+v", service)
	}

	var body struct {
		Message      models.Message             `json:"message"`
		Conversation models.ConversationSummary `json:"conversation"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if body.Message.Content != "hello" || body.Conversation.LastMessage != "hello" {
		t.Fatalf("unexpected response body: %+v", body)
	}
}

func TestSendMessageRejectsBlankContent(t *testing.T) {
	service := &stubChatService{sendErr: &services.ValidationError{Field: "content", Message: "must not be empty"}}
	app := newChatTestApp(service)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/conversations/2/messages", strings.NewReader(`{"content":"   "}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}

	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if body["error"] != "content: must not be empty" {
		t.Fatalf("unexpected error message %q", body["error"])
	}
}

func TestSendMessageRejectsUnknownFields(t *testing.T) {
	service := &stubChatService{}
	app := newChatTestApp(service)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/conversations/2/messages", strings.NewReader(`{"content":"hi","priority":"high"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	if service.lastContent != "" {
		t.Fatal("service should not be called for an invalid body")
	}
}

func TestWebSocketUpgradeRequiresUpgradeHeaders(t *testing.T) {
	app := newChatTestApp(&stubChatService{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/ws", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUpgradeRequired {
		t.Fatalf("expected 426, got %d", resp.StatusCode)
	}
}
