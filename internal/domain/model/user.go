package model

import "time"

// User describes a registered customer account.
type User struct {
	ID                   int64
	Name                 string
	Email                string
	Phone                string
	PasswordHash         string
	ProfilePictureURL    *string
	PushToken            *string
	DarkMode             bool
	NotificationsEnabled bool
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// ProfileUpdate carries optional profile fields; nil means keep current value.
type ProfileUpdate struct {
	Name              *string
	Email             *string
	Phone             *string
	ProfilePictureURL *string
}

// SettingsUpdate carries optional account settings; nil means keep current value.
type SettingsUpdate struct {
	DarkMode             *bool
	NotificationsEnabled *bool
}

// DeliveryAddress is a saved address a user may attach to orders.
type DeliveryAddress struct {
	ID        int64
	UserID    int64
	Address   string
	IsDefault bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
