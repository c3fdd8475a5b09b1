package repository

import (
	"context"

	"github.com/freshfold/freshfold/internal/domain/model"
)

// AddressRepository describes persistence operations with delivery addresses.
type AddressRepository interface {
	// Create clears the previous default when isDefault is set.
	Create(ctx context.Context, userID int64, address string, isDefault bool) (*model.DeliveryAddress, error)
	ListByUser(ctx context.Context, userID int64) ([]model.DeliveryAddress, error)
	Update(ctx context.Context, userID, addressID int64, address string, isDefault bool) error
	Delete(ctx context.Context, userID, addressID int64) error
}
