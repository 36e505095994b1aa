package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/ankit-bind/shared-space-seekers/internal/models"
)

// Notifier reports operation outcomes to a viewer, e.g. as a toast.
type Notifier interface {
	Notify(ctx context.Context, viewerID string, notification models.Notification)
}

type NotifierFunc func(ctx context.Context, viewerID string, notification models.Notification)

func (f NotifierFunc) Notify(ctx context.Context, viewerID string, notification models.Notification) {
	f(ctx, viewerID, notification)
}

type nopNotifier struct{}

func (nopNotifier) Notify(context.Context, string, models.Notification) {}

func notifierOrNop(n Notifier) Notifier {
	if n == nil {
		return nopNotifier{}
	}
	return n
}

// LogNotifier writes notifications to the service log.
type LogNotifier struct {
	log zerolog.Logger
}

func NewLogNotifier(log zerolog.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Notify(_ context.Context, viewerID string, notification models.Notification) {
	n.log.Info().
		Str("viewer_id", viewerID).
		Str("title", notification.Title).
		Str("variant", notification.Variant).
		Msg(notification.Description)
}

// MultiNotifier fans a notification out to every target.
type MultiNotifier []Notifier

func (m MultiNotifier) Notify(ctx context.Context, viewerID string, notification models.Notification) {
	for _, target := range m {
		if target != nil {
			target.Notify(ctx, viewerID, notification)
		}
	}
}

func successNotification(title, description string) models.Notification {
	return models.Notification{
		Title:       title,
		Description: description,
		Variant:     models.VariantDefault,
		Timestamp:   time.Now().UTC(),
	}
}

func errorNotification(description string) models.Notification {
	return models.Notification{
		Title:       "Error",
		Description: description,
		Variant:     models.VariantDestructive,
		Timestamp:   time.Now().UTC(),
	}
}
