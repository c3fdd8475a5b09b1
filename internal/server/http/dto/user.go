package dto

// RegisterRequest describes account creation payload.
type RegisterRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// LoginRequest describes phone/password credentials.
type LoginRequest struct {
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// ForgotPasswordRequest starts password recovery.
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// ResetPasswordRequest completes password recovery.
type ResetPasswordRequest struct {
	ResetToken      string `json:"resetToken"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

// UpdateProfileRequest carries optional profile fields.
type UpdateProfileRequest struct {
	Name              *string `json:"name"`
	Email             *string `json:"email"`
	Phone             *string `json:"phone"`
	ProfilePictureURL *string `json:"profile_picture_url"`
}

// ChangePasswordRequest describes password change payload.
type ChangePasswordRequest struct {
	OldPassword     string `json:"oldPassword"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

// SettingsRequest carries optional account settings.
type SettingsRequest struct {
	DarkMode             *bool `json:"dark_mode"`
	NotificationsEnabled *bool `json:"notifications_enabled"`
}

// PushTokenRequest registers a device push token.
type PushTokenRequest struct {
	PushToken string `json:"push_token"`
}

// AddressRequest describes delivery address payload.
type AddressRequest struct {
	Address   string `json:"address"`
	IsDefault bool   `json:"is_default"`
}

// UserResponse is the public shape of an account.
type UserResponse struct {
	ID                   int64   `json:"id"`
	Name                 string  `json:"name"`
	Email                string  `json:"email"`
	Phone                string  `json:"phone"`
	ProfilePictureURL    *string `json:"profile_picture_url,omitempty"`
	DarkMode             bool    `json:"dark_mode"`
	NotificationsEnabled bool    `json:"notifications_enabled"`
}

// AddressResponse is the public shape of a saved address.
type AddressResponse struct {
	ID        int64  `json:"id"`
	Address   string `json:"address"`
	IsDefault bool   `json:"is_default"`
}

// StatusEnvelope is the response envelope of the user endpoints.
type StatusEnvelope struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}
