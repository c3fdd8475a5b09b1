package usecase

import (
	"context"
	"fmt"

	domainErrors "github.com/freshfold/freshfold/internal/domain/errors"
	"github.com/freshfold/freshfold/internal/domain/model"
	"github.com/freshfold/freshfold/internal/domain/repository"
)

// NotificationUseCase queues notifications for asynchronous dispatch.
type NotificationUseCase struct {
	notifications repository.NotificationRepository
}

// NewNotificationUseCase constructs NotificationUseCase.
func NewNotificationUseCase(notifications repository.NotificationRepository) *NotificationUseCase {
	return &NotificationUseCase{notifications: notifications}
}

// Send queues a notification either for an explicit recipient list or as a
// broadcast to every opted-in user. Returns the number of queued rows.
func (u *NotificationUseCase) Send(ctx context.Context, userIDs []int64, broadcast bool, title, body string, data map[string]any) (int, error) {
	if title == "" || body == "" {
		return 0, fmt.Errorf("%w: title and body are required", domainErrors.ErrValidation)
	}
	if broadcast {
		return u.notifications.EnqueueBroadcast(ctx, title, body, data)
	}
	if len(userIDs) == 0 {
		return 0, fmt.Errorf("%w: either broadcast or a recipient list is required", domainErrors.ErrValidation)
	}
	return u.notifications.Enqueue(ctx, userIDs, title, body, data)
}

// QueueStatusChange enqueues the owner-facing message for an order status
// change. Delivery is fire-and-forget; the order transition has already been
// committed when this runs.
func (u *NotificationUseCase) QueueStatusChange(ctx context.Context, order *model.Order) (int, error) {
	title := "Order update"
	body := fmt.Sprintf("Your order #%d is now %s", order.ID, order.Status)
	data := map[string]any{
		"orderId": order.ID,
		"status":  string(order.Status),
	}
	return u.notifications.Enqueue(ctx, []int64{order.UserID}, title, body, data)
}

// SelectBatchForDispatch hands pending rows to the dispatcher.
func (u *NotificationUseCase) SelectBatchForDispatch(ctx context.Context, limit int) ([]model.Notification, error) {
	return u.notifications.SelectBatchForDispatch(ctx, limit)
}

// MarkSent records successful delivery.
func (u *NotificationUseCase) MarkSent(ctx context.Context, notificationID int64) error {
	return u.notifications.MarkSent(ctx, notificationID)
}
