package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/freshfold/freshfold/internal/domain/model"
	"github.com/freshfold/freshfold/internal/server/ws"
	"github.com/freshfold/freshfold/internal/usecase"
)

// LaundryFacade aggregates the application use cases behind the surface the
// HTTP handlers and the dispatcher consume.
type LaundryFacade struct {
	auth          *usecase.AuthUseCase
	account       *usecase.AccountUseCase
	addresses     *usecase.AddressUseCase
	orders        *usecase.OrderUseCase
	notifications *usecase.NotificationUseCase
	hub           *ws.Hub
	logger        *slog.Logger
}

// NewLaundryFacade constructs the facade.
func NewLaundryFacade(
	auth *usecase.AuthUseCase,
	account *usecase.AccountUseCase,
	addresses *usecase.AddressUseCase,
	orders *usecase.OrderUseCase,
	notifications *usecase.NotificationUseCase,
	hub *ws.Hub,
	logger *slog.Logger,
) *LaundryFacade {
	return &LaundryFacade{
		auth:          auth,
		account:       account,
		addresses:     addresses,
		orders:        orders,
		notifications: notifications,
		hub:           hub,
		logger:        logger,
	}
}

// --- auth ---

func (f *LaundryFacade) Register(ctx context.Context, name, email, phone, password, confirmPassword string) (*model.User, string, error) {
	return f.auth.Register(ctx, name, email, phone, password, confirmPassword)
}

func (f *LaundryFacade) Authenticate(ctx context.Context, phone, password string) (*model.User, string, error) {
	return f.auth.Authenticate(ctx, phone, password)
}

func (f *LaundryFacade) ParseToken(token string) (int64, error) {
	return f.auth.ParseToken(token)
}

func (f *LaundryFacade) ForgotPassword(ctx context.Context, email string) (string, error) {
	return f.auth.ForgotPassword(ctx, email)
}

func (f *LaundryFacade) ResetPassword(ctx context.Context, resetToken, newPassword, confirmPassword string) error {
	return f.auth.ResetPassword(ctx, resetToken, newPassword, confirmPassword)
}

// --- account ---

func (f *LaundryFacade) Profile(ctx context.Context, userID int64) (*model.User, error) {
	return f.account.Profile(ctx, userID)
}

func (f *LaundryFacade) UpdateProfile(ctx context.Context, userID int64, update model.ProfileUpdate) error {
	return f.account.UpdateProfile(ctx, userID, update)
}

func (f *LaundryFacade) ChangePassword(ctx context.Context, userID int64, oldPassword, newPassword, confirmPassword string) error {
	return f.account.ChangePassword(ctx, userID, oldPassword, newPassword, confirmPassword)
}

func (f *LaundryFacade) UpdateSettings(ctx context.Context, userID int64, update model.SettingsUpdate) error {
	return f.account.UpdateSettings(ctx, userID, update)
}

func (f *LaundryFacade) RegisterPushToken(ctx context.Context, userID int64, pushToken string) error {
	return f.account.RegisterPushToken(ctx, userID, pushToken)
}

// --- addresses ---

func (f *LaundryFacade) Addresses(ctx context.Context, userID int64) ([]model.DeliveryAddress, error) {
	return f.addresses.List(ctx, userID)
}

func (f *LaundryFacade) AddAddress(ctx context.Context, userID int64, address string, isDefault bool) (*model.DeliveryAddress, error) {
	return f.addresses.Add(ctx, userID, address, isDefault)
}

func (f *LaundryFacade) UpdateAddress(ctx context.Context, userID, addressID int64, address string, isDefault bool) error {
	return f.addresses.Update(ctx, userID, addressID, address, isDefault)
}

func (f *LaundryFacade) DeleteAddress(ctx context.Context, userID, addressID int64) error {
	return f.addresses.Remove(ctx, userID, addressID)
}

// --- orders ---

func (f *LaundryFacade) PlaceOrder(ctx context.Context, input usecase.PlaceOrderInput) (*model.Order, error) {
	return f.orders.Place(ctx, input)
}

func (f *LaundryFacade) Orders(ctx context.Context, userID int64) ([]model.Order, error) {
	return f.orders.ListByUser(ctx, userID)
}

func (f *LaundryFacade) Order(ctx context.Context, orderID int64) (*model.Order, []model.StatusHistoryEntry, error) {
	return f.orders.Get(ctx, orderID)
}

// UpdateOrderStatus applies the transition and notifies the owner. The order
// change is committed before notification; delivery problems never fail the
// request.
func (f *LaundryFacade) UpdateOrderStatus(ctx context.Context, orderID int64, status model.OrderStatus, notes *string) (*model.Order, error) {
	order, err := f.orders.Transition(ctx, orderID, status, notes)
	if err != nil {
		return nil, err
	}
	f.notifyStatusChange(ctx, order)
	return order, nil
}

// CancelOrder cancels the order and notifies the owner.
func (f *LaundryFacade) CancelOrder(ctx context.Context, orderID int64, reason *string) (*model.Order, error) {
	order, err := f.orders.Cancel(ctx, orderID, reason)
	if err != nil {
		return nil, err
	}
	f.notifyStatusChange(ctx, order)
	return order, nil
}

func (f *LaundryFacade) notifyStatusChange(ctx context.Context, order *model.Order) {
	if _, err := f.notifications.QueueStatusChange(ctx, order); err != nil {
		f.logger.Error("queue status notification failed",
			slog.Int64("order_id", order.ID),
			slog.String("error", err.Error()),
		)
	}

	f.hub.NotifyUser(order.UserID, ws.Event{
		Title:     "Order update",
		Body:      fmt.Sprintf("Your order #%d is now %s", order.ID, order.Status),
		Data:      map[string]any{"orderId": order.ID, "status": string(order.Status)},
		Timestamp: time.Now(),
	})
}

// --- notifications ---

func (f *LaundryFacade) SendNotification(ctx context.Context, userIDs []int64, broadcast bool, title, body string, data map[string]any) (int, error) {
	queued, err := f.notifications.Send(ctx, userIDs, broadcast, title, body, data)
	if err != nil {
		return 0, err
	}

	event := ws.Event{Title: title, Body: body, Data: data, Timestamp: time.Now()}
	if broadcast {
		f.hub.Broadcast(event)
	} else {
		for _, userID := range userIDs {
			f.hub.NotifyUser(userID, event)
		}
	}
	return queued, nil
}

func (f *LaundryFacade) NotificationsForDispatch(ctx context.Context, limit int) ([]model.Notification, error) {
	return f.notifications.SelectBatchForDispatch(ctx, limit)
}

func (f *LaundryFacade) MarkNotificationSent(ctx context.Context, notificationID int64) error {
	return f.notifications.MarkSent(ctx, notificationID)
}
