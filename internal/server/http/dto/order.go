package dto

import "time"

// PlaceOrderRequest describes order creation payload.
type PlaceOrderRequest struct {
	UserID            int64   `json:"userId"`
	ServicePackageKey string  `json:"servicePackageKey"`
	ServiceTitle      string  `json:"serviceTitle"`
	DeliveryOption    string  `json:"deliveryOption"`
	DeliveryFee       int     `json:"deliveryFee"`
	Address           *string `json:"address"`
}

// UpdateStatusRequest describes status transition payload.
type UpdateStatusRequest struct {
	Status string  `json:"status"`
	Notes  *string `json:"notes"`
}

// CancelOrderRequest carries the optional cancellation reason.
type CancelOrderRequest struct {
	Reason *string `json:"reason"`
}

// OrderResponse mirrors the persisted order row.
type OrderResponse struct {
	ID             int64     `json:"id"`
	UserID         int64     `json:"user_id"`
	ServiceKey     string    `json:"service_key"`
	ServiceTitle   string    `json:"service_title"`
	DeliveryOption string    `json:"delivery_option"`
	DeliveryFee    int       `json:"delivery_fee"`
	TotalAmount    int       `json:"total_amount"`
	Address        *string   `json:"address"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// HistoryEntryResponse is one audit entry of the order status trail.
type HistoryEntryResponse struct {
	Status    string    `json:"status"`
	ChangedAt time.Time `json:"changed_at"`
	Notes     *string   `json:"notes"`
}

// OrderEnvelope wraps a single order response.
type OrderEnvelope struct {
	Success bool          `json:"success"`
	Message string        `json:"message,omitempty"`
	Order   OrderResponse `json:"order"`
}

// OrdersEnvelope wraps an order listing.
type OrdersEnvelope struct {
	Success bool            `json:"success"`
	Orders  []OrderResponse `json:"orders"`
	Total   int             `json:"total"`
}

// OrderWithHistoryEnvelope wraps an order together with its status history.
type OrderWithHistoryEnvelope struct {
	Success       bool                   `json:"success"`
	Order         OrderResponse          `json:"order"`
	StatusHistory []HistoryEntryResponse `json:"statusHistory"`
}

// ErrorResponse is the error envelope of the order endpoints.
type ErrorResponse struct {
	Error string `json:"error"`
}
