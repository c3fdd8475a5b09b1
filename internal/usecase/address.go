package usecase

import (
	"context"
	"fmt"
	"strings"

	domainErrors "github.com/freshfold/freshfold/internal/domain/errors"
	"github.com/freshfold/freshfold/internal/domain/model"
	"github.com/freshfold/freshfold/internal/domain/repository"
)

// AddressUseCase manages a user's saved delivery addresses.
type AddressUseCase struct {
	addresses repository.AddressRepository
}

// NewAddressUseCase constructs AddressUseCase.
func NewAddressUseCase(addresses repository.AddressRepository) *AddressUseCase {
	return &AddressUseCase{addresses: addresses}
}

// Add saves a new address; marking it default clears the previous default.
func (u *AddressUseCase) Add(ctx context.Context, userID int64, address string, isDefault bool) (*model.DeliveryAddress, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return nil, fmt.Errorf("%w: address is required", domainErrors.ErrValidation)
	}
	return u.addresses.Create(ctx, userID, address, isDefault)
}

// List returns addresses with the default entry first.
func (u *AddressUseCase) List(ctx context.Context, userID int64) ([]model.DeliveryAddress, error) {
	return u.addresses.ListByUser(ctx, userID)
}

// Update rewrites an existing address owned by the user.
func (u *AddressUseCase) Update(ctx context.Context, userID, addressID int64, address string, isDefault bool) error {
	address = strings.TrimSpace(address)
	if address == "" {
		return fmt.Errorf("%w: address is required", domainErrors.ErrValidation)
	}
	return u.addresses.Update(ctx, userID, addressID, address, isDefault)
}

// Remove deletes an address owned by the user.
func (u *AddressUseCase) Remove(ctx context.Context, userID, addressID int64) error {
	return u.addresses.Delete(ctx, userID, addressID)
}
