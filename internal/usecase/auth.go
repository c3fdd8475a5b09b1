package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	domainErrors "github.com/freshfold/freshfold/internal/domain/errors"
	"github.com/freshfold/freshfold/internal/domain/model"
	"github.com/freshfold/freshfold/internal/domain/repository"
	pkgAuth "github.com/freshfold/freshfold/internal/pkg/auth"
)

const (
	minPasswordLength = 6
	resetTokenTTL     = time.Hour
)

// AuthUseCase handles account registration, login and password recovery.
type AuthUseCase struct {
	users  repository.UserRepository
	hasher pkgAuth.PasswordHasher
	tokens pkgAuth.Strategy
}

// NewAuthUseCase constructs AuthUseCase.
func NewAuthUseCase(users repository.UserRepository, hasher pkgAuth.PasswordHasher, strategy pkgAuth.Strategy) *AuthUseCase {
	return &AuthUseCase{users: users, hasher: hasher, tokens: strategy}
}

// Register creates a new user account and returns it with an auth token.
func (u *AuthUseCase) Register(ctx context.Context, name, email, phone, password, confirmPassword string) (*model.User, string, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	phone = strings.TrimSpace(phone)
	if name == "" || email == "" || phone == "" || password == "" || confirmPassword == "" {
		return nil, "", fmt.Errorf("%w: all fields are required", domainErrors.ErrValidation)
	}
	if password != confirmPassword {
		return nil, "", fmt.Errorf("%w: passwords do not match", domainErrors.ErrValidation)
	}
	if len(password) < minPasswordLength {
		return nil, "", fmt.Errorf("%w: password must be at least %d characters", domainErrors.ErrValidation, minPasswordLength)
	}

	hash, err := u.hasher.Hash(password)
	if err != nil {
		return nil, "", err
	}

	usr, err := u.users.Create(ctx, name, email, phone, hash)
	if err != nil {
		return nil, "", err
	}

	token, err := u.tokens.IssueToken(usr.ID)
	if err != nil {
		return nil, "", err
	}

	return usr, token, nil
}

// Authenticate validates phone/password credentials and returns auth token.
func (u *AuthUseCase) Authenticate(ctx context.Context, phone, password string) (*model.User, string, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" || password == "" {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	usr, err := u.users.GetByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, "", domainErrors.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := u.hasher.Compare(usr.PasswordHash, password); err != nil {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	token, err := u.tokens.IssueToken(usr.ID)
	if err != nil {
		return nil, "", err
	}

	return usr, token, nil
}

// ParseToken extracts user ID from provided token.
func (u *AuthUseCase) ParseToken(token string) (int64, error) {
	if token == "" {
		return 0, pkgAuth.ErrInvalidToken
	}
	return u.tokens.ParseToken(token)
}

// ForgotPassword stores a one-hour reset token for the account. The token is
// returned to the caller for delivery through the mail channel.
func (u *AuthUseCase) ForgotPassword(ctx context.Context, email string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return "", fmt.Errorf("%w: email is required", domainErrors.ErrValidation)
	}

	if _, err := u.users.GetByEmail(ctx, email); err != nil {
		return "", err
	}

	token, err := pkgAuth.NewResetToken()
	if err != nil {
		return "", err
	}

	if err := u.users.SetResetToken(ctx, email, token, time.Now().Add(resetTokenTTL)); err != nil {
		return "", err
	}
	return token, nil
}

// ResetPassword replaces the password for the account matching a live reset
// token and invalidates the token.
func (u *AuthUseCase) ResetPassword(ctx context.Context, resetToken, newPassword, confirmPassword string) error {
	if resetToken == "" || newPassword == "" || confirmPassword == "" {
		return fmt.Errorf("%w: all fields are required", domainErrors.ErrValidation)
	}
	if newPassword != confirmPassword {
		return fmt.Errorf("%w: passwords do not match", domainErrors.ErrValidation)
	}
	if len(newPassword) < minPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", domainErrors.ErrValidation, minPasswordLength)
	}

	usr, err := u.users.GetByResetToken(ctx, resetToken)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return domainErrors.ErrInvalidResetToken
		}
		return err
	}

	hash, err := u.hasher.Hash(newPassword)
	if err != nil {
		return err
	}
	return u.users.ResetPassword(ctx, usr.ID, hash)
}
