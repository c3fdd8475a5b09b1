package model

import "time"

// Notification is a queued message for a single recipient. Rows with nil
// SentAt are pending dispatch.
type Notification struct {
	ID           int64
	Title        string
	Body         string
	Data         map[string]any
	TargetUserID int64
	SentAt       *time.Time
	CreatedAt    time.Time

	// PushToken is the recipient's device token at dispatch time; nil when
	// the user never registered one.
	PushToken *string
}
