package repository

import (
	"context"

	"github.com/freshfold/freshfold/internal/domain/model"
)

// NotificationRepository describes the persisted notification queue.
type NotificationRepository interface {
	Enqueue(ctx context.Context, userIDs []int64, title, body string, data map[string]any) (int, error)
	// EnqueueBroadcast targets every user with notifications enabled and a
	// registered push token.
	EnqueueBroadcast(ctx context.Context, title, body string, data map[string]any) (int, error)
	// SelectBatchForDispatch picks unsent rows and locks them for the caller.
	SelectBatchForDispatch(ctx context.Context, limit int) ([]model.Notification, error)
	MarkSent(ctx context.Context, notificationID int64) error
}
