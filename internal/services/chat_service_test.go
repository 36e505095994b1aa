package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ankit-bind/shared-space-seekers/internal/models"
)

func newTestChatService(t *testing.T, notifier Notifier) *ChatService {
	t.Helper()
	store, err := NewConversationStore(loadSeed(t).Conversations, WithClock(fixedClock(t3)))
	require.NoError(t, err)
	return NewChatService(store, notifier, testLogger)
}

func TestChatServiceListConversations(t *testing.T) {
	service := newTestChatService(t, nil)

	summaries, unread, err := service.ListConversations(context.Background(), "")
	require.NoError(t, err)

	require.Len(t, summaries, 2)
	assert.Equal(t, "Sarah Johnson", summaries[0].Name)
	assert.Equal(t, "Michael Chen", summaries[1].Name)
	assert.Equal(t, 1, unread)

	filtered, _, err := service.ListConversations(context.Background(), "michael")
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "2", filtered[0].ID)
}

func TestChatServiceSelectThenSendMovesConversationToTop(t *testing.T) {
	notifier := &recordingNotifier{}
	service := newTestChatService(t, notifier)
	ctx := context.Background()

	conversation, err := service.SelectConversation(ctx, "2")
	require.NoError(t, err)
	assert.Len(t, conversation.Messages, 2)

	delivery, err := service.SendMessage(ctx, models.CurrentUserID, "2", " Does Saturday work? ")
	require.NoError(t, err)

	assert.Equal(t, "Does Saturday work?", delivery.Message.Content)
	assert.Equal(t, models.CurrentUserID, delivery.Message.SenderID)
	assert.Equal(t, "Does Saturday work?", delivery.Conversation.LastMessage)
	assert.Len(t, delivery.Conversation.Messages, 3)
	assert.Equal(t, "Message Sent", notifier.Last().Title)

	summaries, unread, err := service.ListConversations(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, "2", summaries[0].ID)
	assert.Equal(t, 1, unread)
}

func TestChatServiceSendMessageErrors(t *testing.T) {
	notifier := &recordingNotifier{}
	service := newTestChatService(t, notifier)

	_, err := service.SendMessage(context.Background(), models.CurrentUserID, "1", "   ")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = service.SendMessage(context.Background(), models.CurrentUserID, "99", "hello")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.Empty(t, notifier.All())
}

func TestChatServiceSendMessageStoresViewerAsCurrentUser(t *testing.T) {
	notifier := &recordingNotifier{}
	service := newTestChatService(t, notifier)
	ctx := context.Background()

	delivery, err := service.SendMessage(ctx, "guest-7", "1", "hello")
	require.NoError(t, err)
	assert.Equal(t, models.CurrentUserID, delivery.Message.SenderID)
	assert.Equal(t, delivery.Message, delivery.Conversation.Messages[len(delivery.Conversation.Messages)-1])

	conversation, err := service.SelectConversation(ctx, "1")
	require.NoError(t, err)
	last := conversation.Messages[len(conversation.Messages)-1]
	assert.Equal(t, models.CurrentUserID, last.SenderID)
	assert.Equal(t, "Message Sent", notifier.Last().Title)
}
