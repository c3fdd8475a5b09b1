package repository

import (
	"context"
	"time"

	"github.com/freshfold/freshfold/internal/domain/model"
)

// UserRepository describes persistence operations with user accounts.
type UserRepository interface {
	Create(ctx context.Context, name, email, phone, passwordHash string) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByPhone(ctx context.Context, phone string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	UpdateProfile(ctx context.Context, id int64, update model.ProfileUpdate) error
	UpdateSettings(ctx context.Context, id int64, update model.SettingsUpdate) error
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	SetResetToken(ctx context.Context, email, token string, expiresAt time.Time) error
	// GetByResetToken only matches tokens that have not expired.
	GetByResetToken(ctx context.Context, token string) (*model.User, error)
	// ResetPassword sets the new hash and clears the reset token.
	ResetPassword(ctx context.Context, id int64, passwordHash string) error
	SetPushToken(ctx context.Context, id int64, pushToken string) error
}
