package dto

// SendNotificationRequest queues a notification for a recipient list or as a
// broadcast.
type SendNotificationRequest struct {
	UserIDs   []int64        `json:"userIds"`
	Broadcast bool           `json:"broadcast"`
	Title     string         `json:"title"`
	Body      string         `json:"body"`
	Data      map[string]any `json:"data"`
}
