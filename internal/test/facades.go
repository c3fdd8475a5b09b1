package test

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/freshfold/freshfold/internal/adapter/push"
	"github.com/freshfold/freshfold/internal/domain/model"
	"github.com/freshfold/freshfold/internal/usecase"
)

// AuthFacadeStub simulates authentication facade interactions.
type AuthFacadeStub struct {
	RegisterFn       func(context.Context, string, string, string, string, string) (*model.User, string, error)
	AuthenticateFn   func(context.Context, string, string) (*model.User, string, error)
	ParseFn          func(string) (int64, error)
	ForgotPasswordFn func(context.Context, string) (string, error)
	ResetPasswordFn  func(context.Context, string, string, string) error
}

// Register returns a default user and token unless overridden.
func (s AuthFacadeStub) Register(ctx context.Context, name, email, phone, password, confirmPassword string) (*model.User, string, error) {
	if s.RegisterFn != nil {
		return s.RegisterFn(ctx, name, email, phone, password, confirmPassword)
	}
	return &model.User{ID: 1, Name: name, Email: email, Phone: phone}, "token", nil
}

// Authenticate returns a default user and token unless overridden.
func (s AuthFacadeStub) Authenticate(ctx context.Context, phone, password string) (*model.User, string, error) {
	if s.AuthenticateFn != nil {
		return s.AuthenticateFn(ctx, phone, password)
	}
	return &model.User{ID: 1, Phone: phone}, "token", nil
}

// ParseToken returns the stored identifier for the authenticated user.
func (s AuthFacadeStub) ParseToken(token string) (int64, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	return 1, nil
}

// ForgotPassword issues a stub reset token.
func (s AuthFacadeStub) ForgotPassword(ctx context.Context, email string) (string, error) {
	if s.ForgotPasswordFn != nil {
		return s.ForgotPasswordFn(ctx, email)
	}
	return "reset-token", nil
}

// ResetPassword executes the override or succeeds.
func (s AuthFacadeStub) ResetPassword(ctx context.Context, resetToken, newPassword, confirmPassword string) error {
	if s.ResetPasswordFn != nil {
		return s.ResetPasswordFn(ctx, resetToken, newPassword, confirmPassword)
	}
	return nil
}

// AccountFacadeStub simulates profile and settings operations.
type AccountFacadeStub struct {
	ProfileFn           func(context.Context, int64) (*model.User, error)
	UpdateProfileFn     func(context.Context, int64, model.ProfileUpdate) error
	ChangePasswordFn    func(context.Context, int64, string, string, string) error
	UpdateSettingsFn    func(context.Context, int64, model.SettingsUpdate) error
	RegisterPushTokenFn func(context.Context, int64, string) error
}

// Profile returns a default user unless overridden.
func (s AccountFacadeStub) Profile(ctx context.Context, userID int64) (*model.User, error) {
	if s.ProfileFn != nil {
		return s.ProfileFn(ctx, userID)
	}
	return &model.User{ID: userID, Name: "Test User"}, nil
}

// UpdateProfile executes the override or succeeds.
func (s AccountFacadeStub) UpdateProfile(ctx context.Context, userID int64, update model.ProfileUpdate) error {
	if s.UpdateProfileFn != nil {
		return s.UpdateProfileFn(ctx, userID, update)
	}
	return nil
}

// ChangePassword executes the override or succeeds.
func (s AccountFacadeStub) ChangePassword(ctx context.Context, userID int64, oldPassword, newPassword, confirmPassword string) error {
	if s.ChangePasswordFn != nil {
		return s.ChangePasswordFn(ctx, userID, oldPassword, newPassword, confirmPassword)
	}
	return nil
}

// UpdateSettings executes the override or succeeds.
func (s AccountFacadeStub) UpdateSettings(ctx context.Context, userID int64, update model.SettingsUpdate) error {
	if s.UpdateSettingsFn != nil {
		return s.UpdateSettingsFn(ctx, userID, update)
	}
	return nil
}

// RegisterPushToken executes the override or succeeds.
func (s AccountFacadeStub) RegisterPushToken(ctx context.Context, userID int64, pushToken string) error {
	if s.RegisterPushTokenFn != nil {
		return s.RegisterPushTokenFn(ctx, userID, pushToken)
	}
	return nil
}

// AddressFacadeStub simulates delivery address operations.
type AddressFacadeStub struct {
	AddressesFn     func(context.Context, int64) ([]model.DeliveryAddress, error)
	AddAddressFn    func(context.Context, int64, string, bool) (*model.DeliveryAddress, error)
	UpdateAddressFn func(context.Context, int64, int64, string, bool) error
	DeleteAddressFn func(context.Context, int64, int64) error
}

// Addresses returns a default list unless overridden.
func (s AddressFacadeStub) Addresses(ctx context.Context, userID int64) ([]model.DeliveryAddress, error) {
	if s.AddressesFn != nil {
		return s.AddressesFn(ctx, userID)
	}
	return []model.DeliveryAddress{{ID: 1, UserID: userID, Address: "1 Main St", IsDefault: true}}, nil
}

// AddAddress returns a default record unless overridden.
func (s AddressFacadeStub) AddAddress(ctx context.Context, userID int64, address string, isDefault bool) (*model.DeliveryAddress, error) {
	if s.AddAddressFn != nil {
		return s.AddAddressFn(ctx, userID, address, isDefault)
	}
	return &model.DeliveryAddress{ID: 1, UserID: userID, Address: address, IsDefault: isDefault}, nil
}

// UpdateAddress executes the override or succeeds.
func (s AddressFacadeStub) UpdateAddress(ctx context.Context, userID, addressID int64, address string, isDefault bool) error {
	if s.UpdateAddressFn != nil {
		return s.UpdateAddressFn(ctx, userID, addressID, address, isDefault)
	}
	return nil
}

// DeleteAddress executes the override or succeeds.
func (s AddressFacadeStub) DeleteAddress(ctx context.Context, userID, addressID int64) error {
	if s.DeleteAddressFn != nil {
		return s.DeleteAddressFn(ctx, userID, addressID)
	}
	return nil
}

// OrderFacadeStub provides controllable behaviour for order endpoints.
type OrderFacadeStub struct {
	PlaceFn        func(context.Context, usecase.PlaceOrderInput) (*model.Order, error)
	OrdersFn       func(context.Context, int64) ([]model.Order, error)
	OrderFn        func(context.Context, int64) (*model.Order, []model.StatusHistoryEntry, error)
	UpdateStatusFn func(context.Context, int64, model.OrderStatus, *string) (*model.Order, error)
	CancelFn       func(context.Context, int64, *string) (*model.Order, error)
}

// PlaceOrder delegates to provided function or returns default order.
func (s OrderFacadeStub) PlaceOrder(ctx context.Context, input usecase.PlaceOrderInput) (*model.Order, error) {
	if s.PlaceFn != nil {
		return s.PlaceFn(ctx, input)
	}
	return &model.Order{
		ID:             1,
		UserID:         input.UserID,
		ServiceKey:     input.ServiceKey,
		ServiceTitle:   input.ServiceTitle,
		DeliveryOption: input.DeliveryOption,
		Status:         model.OrderStatusPending,
	}, nil
}

// Orders returns predefined orders for given user.
func (s OrderFacadeStub) Orders(ctx context.Context, userID int64) ([]model.Order, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx, userID)
	}
	return []model.Order{{ID: 1, UserID: userID, Status: model.OrderStatusPending}}, nil
}

// Order returns an order with its history.
func (s OrderFacadeStub) Order(ctx context.Context, orderID int64) (*model.Order, []model.StatusHistoryEntry, error) {
	if s.OrderFn != nil {
		return s.OrderFn(ctx, orderID)
	}
	order := &model.Order{ID: orderID, Status: model.OrderStatusPending}
	history := []model.StatusHistoryEntry{{ID: 1, OrderID: orderID, Status: model.OrderStatusPending, ChangedAt: time.Unix(0, 0)}}
	return order, history, nil
}

// UpdateOrderStatus returns the order at the requested status.
func (s OrderFacadeStub) UpdateOrderStatus(ctx context.Context, orderID int64, status model.OrderStatus, notes *string) (*model.Order, error) {
	if s.UpdateStatusFn != nil {
		return s.UpdateStatusFn(ctx, orderID, status, notes)
	}
	return &model.Order{ID: orderID, Status: status}, nil
}

// CancelOrder returns the order at cancelled status.
func (s OrderFacadeStub) CancelOrder(ctx context.Context, orderID int64, reason *string) (*model.Order, error) {
	if s.CancelFn != nil {
		return s.CancelFn(ctx, orderID, reason)
	}
	return &model.Order{ID: orderID, Status: model.OrderStatusCancelled}, nil
}

// NotificationFacadeStub simulates notification queueing.
type NotificationFacadeStub struct {
	SendFn func(context.Context, []int64, bool, string, string, map[string]any) (int, error)
}

// SendNotification delegates to the override or reports one queued row.
func (s NotificationFacadeStub) SendNotification(ctx context.Context, userIDs []int64, broadcast bool, title, body string, data map[string]any) (int, error) {
	if s.SendFn != nil {
		return s.SendFn(ctx, userIDs, broadcast, title, body, data)
	}
	return 1, nil
}

// LaundryFacadeStub aggregates facade dependencies for HTTP layer tests.
type LaundryFacadeStub struct {
	AuthFacadeStub
	AccountFacadeStub
	AddressFacadeStub
	OrderFacadeStub
	NotificationFacadeStub
}

// DispatcherFacadeStub mimics worker interactions with the laundry facade.
type DispatcherFacadeStub struct {
	Batches   [][]model.Notification
	BatchFn   func(context.Context, int) ([]model.Notification, error)
	MarkFn    func(context.Context, int64) error
	Marked    []int64
	mu        sync.Mutex
	batchCall int32
}

// Lock exposes internal mutex for external synchronization.
func (s *DispatcherFacadeStub) Lock() { s.mu.Lock() }

// Unlock releases previously acquired lock.
func (s *DispatcherFacadeStub) Unlock() { s.mu.Unlock() }

// NotificationsForDispatch returns batches from configured queue.
func (s *DispatcherFacadeStub) NotificationsForDispatch(ctx context.Context, limit int) ([]model.Notification, error) {
	if s.BatchFn != nil {
		return s.BatchFn(ctx, limit)
	}
	call := atomic.AddInt32(&s.batchCall, 1)
	if int(call) <= len(s.Batches) {
		return s.Batches[call-1], nil
	}
	time.Sleep(10 * time.Millisecond)
	return nil, nil
}

// MarkNotificationSent records marked identifiers.
func (s *DispatcherFacadeStub) MarkNotificationSent(ctx context.Context, notificationID int64) error {
	if s.MarkFn != nil {
		return s.MarkFn(ctx, notificationID)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Marked = append(s.Marked, notificationID)
	return nil
}

// PushClientStub captures outgoing push messages.
type PushClientStub struct {
	SendFn func(context.Context, []push.Message) error
	mu     sync.Mutex
	Sent   []push.Message
}

// Send records messages or delegates to the override.
func (s *PushClientStub) Send(ctx context.Context, messages []push.Message) error {
	if s.SendFn != nil {
		return s.SendFn(ctx, messages)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Sent = append(s.Sent, messages...)
	return nil
}

// Messages returns a copy of the captured push messages.
func (s *PushClientStub) Messages() []push.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]push.Message, len(s.Sent))
	copy(out, s.Sent)
	return out
}
