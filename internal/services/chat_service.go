package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/ankit-bind/shared-space-seekers/internal/metrics"
	"github.com/ankit-bind/shared-space-seekers/internal/models"
)

type ChatService struct {
	store    *ConversationStore
	notifier Notifier
	log      zerolog.Logger
}

type ChatDelivery struct {
	Conversation models.Conversation
	Message      models.Message
}

func NewChatService(store *ConversationStore, notifier Notifier, log zerolog.Logger) *ChatService {
	return &ChatService{
		store:    store,
		notifier: notifierOrNop(notifier),
		log:      log.With().Str("component", "chat").Logger(),
	}
}

// ListConversations returns summaries, most recent first, and the number of
// unread conversations.
func (s *ChatService) ListConversations(_ context.Context, query string) ([]models.ConversationSummary, int, error) {
	conversations := s.store.Search(query)

	summaries := make([]models.ConversationSummary, 0, len(conversations))
	for _, conversation := range conversations {
		summaries = append(summaries, conversation.Summary())
	}
	return summaries, s.store.UnreadCount(), nil
}

func (s *ChatService) SelectConversation(_ context.Context, conversationID string) (*models.Conversation, error) {
	conversation, err := s.store.Select(conversationID)
	if err != nil {
		return nil, err
	}
	return &conversation, nil
}

// SendMessage appends content as the viewer's own message. viewerID only
// routes the notification; the stored sender is always models.CurrentUserID.
func (s *ChatService) SendMessage(
	ctx context.Context,
	viewerID string,
	conversationID string,
	content string,
) (*ChatDelivery, error) {
	message, conversation, err := s.store.PostMessage(conversationID, models.CurrentUserID, content)
	if err != nil {
		return nil, err
	}

	metrics.MessagesSentTotal.Inc()
	s.log.Info().
		Str("viewer_id", viewerID).
		Str("conversation_id", conversationID).
		Str("message_id", message.ID).
		Msg("message sent")
	s.notifier.Notify(ctx, viewerID, successNotification("Message Sent", "Your message to "+conversation.Name+" was delivered."))

	return &ChatDelivery{
		Conversation: conversation,
		Message:      message,
	}, nil
}
