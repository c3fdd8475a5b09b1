package usecase

import (
	"context"
	"fmt"

	domainErrors "github.com/freshfold/freshfold/internal/domain/errors"
	"github.com/freshfold/freshfold/internal/domain/model"
	"github.com/freshfold/freshfold/internal/domain/repository"
)

const (
	// standardDeliveryFee is charged for any delivery option except "none".
	// The mobile client hints at proximity-based pricing, but the contract
	// today is a flat fee.
	standardDeliveryFee = 10

	initialHistoryNote = "Order placed successfully, awaiting confirmation"
	defaultCancelNote  = "Order cancelled by user"
)

// PlaceOrderInput carries raw order creation fields before validation.
type PlaceOrderInput struct {
	UserID         int64
	ServiceKey     string
	ServiceTitle   string
	DeliveryOption model.DeliveryOption
	Address        *string
}

// OrderUseCase encapsulates the order lifecycle: creation, status
// transitions, cancellation eligibility and the audit trail.
type OrderUseCase struct {
	orders repository.OrderRepository
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(orders repository.OrderRepository) *OrderUseCase {
	return &OrderUseCase{orders: orders}
}

// Place validates creation input, computes the delivery fee and persists the
// order at status "pending" together with its first history entry.
func (u *OrderUseCase) Place(ctx context.Context, input PlaceOrderInput) (*model.Order, error) {
	if input.UserID == 0 || input.ServiceKey == "" || input.ServiceTitle == "" || input.DeliveryOption == "" {
		return nil, fmt.Errorf("%w: missing required fields", domainErrors.ErrValidation)
	}
	if !input.DeliveryOption.Valid() {
		return nil, fmt.Errorf("%w: unknown delivery option %q", domainErrors.ErrValidation, input.DeliveryOption)
	}

	address := input.Address
	fee := 0
	if input.DeliveryOption.RequiresAddress() {
		if address == nil || *address == "" {
			return nil, fmt.Errorf("%w: address is required for delivery option %q", domainErrors.ErrValidation, input.DeliveryOption)
		}
		fee = standardDeliveryFee
	} else {
		address = nil
	}

	draft := model.OrderDraft{
		UserID:         input.UserID,
		ServiceKey:     input.ServiceKey,
		ServiceTitle:   input.ServiceTitle,
		DeliveryOption: input.DeliveryOption,
		DeliveryFee:    fee,
		TotalAmount:    fee,
		Address:        address,
	}

	return u.orders.Create(ctx, draft, initialHistoryNote)
}

// ListByUser returns the user's orders, newest first.
func (u *OrderUseCase) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	return u.orders.ListByUser(ctx, userID)
}

// Get fetches an order together with its full status history, newest first.
func (u *OrderUseCase) Get(ctx context.Context, orderID int64) (*model.Order, []model.StatusHistoryEntry, error) {
	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, nil, err
	}

	history, err := u.orders.ListHistory(ctx, orderID)
	if err != nil {
		return nil, nil, err
	}
	return order, history, nil
}

// Transition moves the order to the target status and records an audit
// entry. Any recognized non-pending status is a legal target; intermediate
// steps are not sequence-checked.
func (u *OrderUseCase) Transition(ctx context.Context, orderID int64, target model.OrderStatus, notes *string) (*model.Order, error) {
	if !target.ValidTransitionTarget() {
		return nil, fmt.Errorf("%w: %q", domainErrors.ErrInvalidStatus, target)
	}
	return u.orders.UpdateStatus(ctx, orderID, target, notes)
}

// Cancel transitions the order to "cancelled" unless it already reached a
// terminal status. The history note defaults when no reason is supplied.
func (u *OrderUseCase) Cancel(ctx context.Context, orderID int64, reason *string) (*model.Order, error) {
	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if order.Status.Terminal() {
		return nil, domainErrors.InvalidOperationError{Status: string(order.Status)}
	}

	note := defaultCancelNote
	if reason != nil && *reason != "" {
		note = *reason
	}
	return u.orders.UpdateStatus(ctx, orderID, model.OrderStatusCancelled, &note)
}
