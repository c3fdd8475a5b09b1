package usecase

import (
	"context"
	"fmt"

	domainErrors "github.com/freshfold/freshfold/internal/domain/errors"
	"github.com/freshfold/freshfold/internal/domain/model"
	"github.com/freshfold/freshfold/internal/domain/repository"
	pkgAuth "github.com/freshfold/freshfold/internal/pkg/auth"
)

// AccountUseCase covers profile, settings and push token management.
type AccountUseCase struct {
	users  repository.UserRepository
	hasher pkgAuth.PasswordHasher
}

// NewAccountUseCase constructs AccountUseCase.
func NewAccountUseCase(users repository.UserRepository, hasher pkgAuth.PasswordHasher) *AccountUseCase {
	return &AccountUseCase{users: users, hasher: hasher}
}

// Profile fetches the user account by identifier.
func (u *AccountUseCase) Profile(ctx context.Context, userID int64) (*model.User, error) {
	return u.users.GetByID(ctx, userID)
}

// UpdateProfile applies the non-nil profile fields.
func (u *AccountUseCase) UpdateProfile(ctx context.Context, userID int64, update model.ProfileUpdate) error {
	return u.users.UpdateProfile(ctx, userID, update)
}

// ChangePassword verifies the old password before storing the new hash.
func (u *AccountUseCase) ChangePassword(ctx context.Context, userID int64, oldPassword, newPassword, confirmPassword string) error {
	if oldPassword == "" || newPassword == "" || confirmPassword == "" {
		return fmt.Errorf("%w: all fields are required", domainErrors.ErrValidation)
	}
	if newPassword != confirmPassword {
		return fmt.Errorf("%w: new passwords do not match", domainErrors.ErrValidation)
	}
	if len(newPassword) < minPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", domainErrors.ErrValidation, minPasswordLength)
	}

	usr, err := u.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := u.hasher.Compare(usr.PasswordHash, oldPassword); err != nil {
		return domainErrors.ErrInvalidCredentials
	}

	hash, err := u.hasher.Hash(newPassword)
	if err != nil {
		return err
	}
	return u.users.UpdatePassword(ctx, userID, hash)
}

// UpdateSettings applies the non-nil settings fields.
func (u *AccountUseCase) UpdateSettings(ctx context.Context, userID int64, update model.SettingsUpdate) error {
	return u.users.UpdateSettings(ctx, userID, update)
}

// RegisterPushToken stores the latest device push token for the user.
func (u *AccountUseCase) RegisterPushToken(ctx context.Context, userID int64, pushToken string) error {
	if pushToken == "" {
		return fmt.Errorf("%w: push token is required", domainErrors.ErrValidation)
	}
	return u.users.SetPushToken(ctx, userID, pushToken)
}
