package handlers

import (
	"context"

	"github.com/freshfold/freshfold/internal/domain/model"
	"github.com/freshfold/freshfold/internal/usecase"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, name, email, phone, password, confirmPassword string) (*model.User, string, error)
	Authenticate(ctx context.Context, phone, password string) (*model.User, string, error)
	ParseToken(token string) (int64, error)
	ForgotPassword(ctx context.Context, email string) (string, error)
	ResetPassword(ctx context.Context, resetToken, newPassword, confirmPassword string) error
}

// AccountFacade covers profile, settings and push token management.
type AccountFacade interface {
	Profile(ctx context.Context, userID int64) (*model.User, error)
	UpdateProfile(ctx context.Context, userID int64, update model.ProfileUpdate) error
	ChangePassword(ctx context.Context, userID int64, oldPassword, newPassword, confirmPassword string) error
	UpdateSettings(ctx context.Context, userID int64, update model.SettingsUpdate) error
	RegisterPushToken(ctx context.Context, userID int64, pushToken string) error
}

// AddressFacade provides delivery address operations.
type AddressFacade interface {
	Addresses(ctx context.Context, userID int64) ([]model.DeliveryAddress, error)
	AddAddress(ctx context.Context, userID int64, address string, isDefault bool) (*model.DeliveryAddress, error)
	UpdateAddress(ctx context.Context, userID, addressID int64, address string, isDefault bool) error
	DeleteAddress(ctx context.Context, userID, addressID int64) error
}

// OrderFacade encapsulates order operations exposed via HTTP.
type OrderFacade interface {
	PlaceOrder(ctx context.Context, input usecase.PlaceOrderInput) (*model.Order, error)
	Orders(ctx context.Context, userID int64) ([]model.Order, error)
	Order(ctx context.Context, orderID int64) (*model.Order, []model.StatusHistoryEntry, error)
	UpdateOrderStatus(ctx context.Context, orderID int64, status model.OrderStatus, notes *string) (*model.Order, error)
	CancelOrder(ctx context.Context, orderID int64, reason *string) (*model.Order, error)
}

// NotificationFacade queues notifications for dispatch.
type NotificationFacade interface {
	SendNotification(ctx context.Context, userIDs []int64, broadcast bool, title, body string, data map[string]any) (int, error)
}

// LaundryFacade aggregates the full set of operations used across handlers.
type LaundryFacade interface {
	AuthFacade
	AccountFacade
	AddressFacade
	OrderFacade
	NotificationFacade
}

// HealthChecker reports backing store connectivity.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}
