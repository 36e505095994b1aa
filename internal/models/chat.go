package models

import "time"

// CurrentUserID is the sender id the UI uses for the viewer's own messages.
const CurrentUserID = "current-user"

type Conversation struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	Name            string    `json:"name"`
	Avatar          string    `json:"avatar,omitempty"`
	LastMessage     string    `json:"last_message"`
	LastMessageTime time.Time `json:"last_message_time"`
	Unread          bool      `json:"unread"`
	Messages        []Message `json:"messages"`
}

type Message struct {
	ID        string    `json:"id"`
	SenderID  string    `json:"sender_id"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Clone returns a copy whose message slice is not shared with c.
func (c Conversation) Clone() Conversation {
	out := c
	out.Messages = append([]Message(nil), c.Messages...)
	return out
}

type ConversationSummary struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	Name            string    `json:"name"`
	Avatar          string    `json:"avatar,omitempty"`
	LastMessage     string    `json:"last_message"`
	LastMessageTime time.Time `json:"last_message_time"`
	Unread          bool      `json:"unread"`
}

func (c Conversation) Summary() ConversationSummary {
	return ConversationSummary{
		ID:              c.ID,
		UserID:          c.UserID,
		Name:            c.Name,
		Avatar:          c.Avatar,
		LastMessage:     c.LastMessage,
		LastMessageTime: c.LastMessageTime,
		Unread:          c.Unread,
	}
}
