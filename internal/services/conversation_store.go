package services

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/ankit-bind/shared-space-seekers/internal/models"
)

type conversationRecord struct {
	conversation models.Conversation
	seedIndex    int
	touched      uint64
}

// ConversationStore holds the viewer's conversations. All reads return
// copies; state changes only through Select and AppendMessage.
type ConversationStore struct {
	mu      sync.RWMutex
	records map[string]*conversationRecord
	seq     uint64
	latest  time.Time
	now     func() time.Time
	newID   func(ts time.Time) string
}

type StoreOption func(*ConversationStore)

// WithClock replaces time.Now for message timestamps.
func WithClock(now func() time.Time) StoreOption {
	return func(s *ConversationStore) {
		s.now = now
	}
}

// WithMessageIDs replaces the ULID message id generator.
func WithMessageIDs(newID func(ts time.Time) string) StoreOption {
	return func(s *ConversationStore) {
		s.newID = newID
	}
}

func NewConversationStore(seed []models.Conversation, opts ...StoreOption) (*ConversationStore, error) {
	store := &ConversationStore{
		records: make(map[string]*conversationRecord, len(seed)),
		now:     time.Now,
		newID:   ulidMessageID(),
	}
	for _, opt := range opts {
		opt(store)
	}

	for i, conversation := range seed {
		if strings.TrimSpace(conversation.ID) == "" {
			return nil, newValidationError("id", "conversation %d has an empty id", i)
		}
		if _, exists := store.records[conversation.ID]; exists {
			return nil, newValidationError("id", "duplicate conversation id %q", conversation.ID)
		}
		seen := make(map[string]struct{}, len(conversation.Messages))
		for _, message := range conversation.Messages {
			if _, dup := seen[message.ID]; dup {
				return nil, newValidationError("messages", "duplicate message id %q in conversation %q", message.ID, conversation.ID)
			}
			seen[message.ID] = struct{}{}
			if message.Timestamp.After(store.latest) {
				store.latest = message.Timestamp
			}
		}
		if conversation.LastMessageTime.After(store.latest) {
			store.latest = conversation.LastMessageTime
		}
		store.records[conversation.ID] = &conversationRecord{
			conversation: conversation.Clone(),
			seedIndex:    i,
		}
	}

	return store, nil
}

func ulidMessageID() func(ts time.Time) string {
	var mu sync.Mutex
	entropy := ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0)
	return func(ts time.Time) string {
		mu.Lock()
		defer mu.Unlock()
		id := ulid.MustNew(ulid.Timestamp(ts), entropy)
		return "msg_" + strings.ToLower(id.String())
	}
}

// Select returns the conversation and marks it read.
func (s *ConversationStore) Select(id string) (models.Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.records[id]
	if !ok {
		return models.Conversation{}, fmt.Errorf("conversation %q: %w", id, ErrNotFound)
	}
	if record.conversation.Unread {
		record.conversation.Unread = false
	}
	return record.conversation.Clone(), nil
}

func (s *ConversationStore) Get(id string) (models.Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.records[id]
	if !ok {
		return models.Conversation{}, fmt.Errorf("conversation %q: %w", id, ErrNotFound)
	}
	return record.conversation.Clone(), nil
}

// AppendMessage adds a message and moves the conversation preview to it.
// Message timestamps never go backwards across the store, so the appended
// conversation always sorts first.
func (s *ConversationStore) AppendMessage(id, senderID, content string) (models.Message, error) {
	message, _, err := s.PostMessage(id, senderID, content)
	return message, err
}

// PostMessage appends like AppendMessage and also returns the conversation
// as it stood right after the append.
func (s *ConversationStore) PostMessage(id, senderID, content string) (models.Message, models.Conversation, error) {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return models.Message{}, models.Conversation{}, newValidationError("content", "must not be empty")
	}
	if strings.TrimSpace(senderID) == "" {
		return models.Message{}, models.Conversation{}, newValidationError("sender_id", "must not be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.records[id]
	if !ok {
		return models.Message{}, models.Conversation{}, fmt.Errorf("conversation %q: %w", id, ErrNotFound)
	}
	// A message is sent either by the viewer or by the counterpart.
	if senderID != models.CurrentUserID && senderID != record.conversation.UserID {
		return models.Message{}, models.Conversation{}, newValidationError("sender_id", "%q is not a participant of conversation %q", senderID, id)
	}

	ts := s.now().UTC()
	if ts.Before(s.latest) {
		ts = s.latest
	}

	message := models.Message{
		ID:        s.newID(ts),
		SenderID:  senderID,
		Content:   trimmed,
		Timestamp: ts,
	}

	messages := make([]models.Message, len(record.conversation.Messages), len(record.conversation.Messages)+1)
	copy(messages, record.conversation.Messages)
	record.conversation.Messages = append(messages, message)
	record.conversation.LastMessage = message.Content
	record.conversation.LastMessageTime = message.Timestamp

	s.seq++
	record.touched = s.seq
	s.latest = ts

	return message, record.conversation.Clone(), nil
}

// List returns every conversation, most recent first.
func (s *ConversationStore) List() []models.Conversation {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.sortedLocked(func(models.Conversation) bool { return true })
}

// Search matches query against the display name, case-insensitively.
func (s *ConversationStore) Search(query string) []models.Conversation {
	needle := strings.ToLower(strings.TrimSpace(query))

	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.sortedLocked(func(c models.Conversation) bool {
		return needle == "" || strings.Contains(strings.ToLower(c.Name), needle)
	})
}

func (s *ConversationStore) UnreadCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, record := range s.records {
		if record.conversation.Unread {
			count++
		}
	}
	return count
}

func (s *ConversationStore) sortedLocked(keep func(models.Conversation) bool) []models.Conversation {
	records := make([]*conversationRecord, 0, len(s.records))
	for _, record := range s.records {
		if keep(record.conversation) {
			records = append(records, record)
		}
	}

	sort.Slice(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if !a.conversation.LastMessageTime.Equal(b.conversation.LastMessageTime) {
			return a.conversation.LastMessageTime.After(b.conversation.LastMessageTime)
		}
		if a.touched != b.touched {
			return a.touched > b.touched
		}
		return a.seedIndex < b.seedIndex
	})

	out := make([]models.Conversation, 0, len(records))
	for _, record := range records {
		out = append(out, record.conversation.Clone())
	}
	return out
}
