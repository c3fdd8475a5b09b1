package repository

import (
	"context"

	"github.com/freshfold/freshfold/internal/domain/model"
)

// OrderRepository describes persistence operations with orders and their
// status history. It carries no business rules: legality of a status change
// is decided by the caller.
type OrderRepository interface {
	// Create inserts the order at status "pending" and appends the initial
	// history entry within one transaction.
	Create(ctx context.Context, draft model.OrderDraft, initialNote string) (*model.Order, error)
	GetByID(ctx context.Context, orderID int64) (*model.Order, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Order, error)
	// UpdateStatus sets the new status, refreshes updated_at and appends a
	// history entry within one transaction, then returns the refreshed order.
	UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus, notes *string) (*model.Order, error)
	ListHistory(ctx context.Context, orderID int64) ([]model.StatusHistoryEntry, error)
}
