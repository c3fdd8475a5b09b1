package model

import "time"

// OrderStatus describes the laundry processing lifecycle.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusAccepted   OrderStatus = "accepted"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusWashing    OrderStatus = "washing"
	OrderStatusDrying     OrderStatus = "drying"
	OrderStatusFolding    OrderStatus = "folding"
	OrderStatusIroning    OrderStatus = "ironing"
	OrderStatusPackaging  OrderStatus = "packaging"
	OrderStatusReady      OrderStatus = "ready"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// transitionTargets is the closed set of statuses an existing order may be
// moved to. "pending" is only ever assigned at creation. Intermediate steps
// are deliberately not adjacency-checked: staff may jump an order to any
// recognized status.
var transitionTargets = map[OrderStatus]struct{}{
	OrderStatusAccepted:   {},
	OrderStatusProcessing: {},
	OrderStatusWashing:    {},
	OrderStatusDrying:     {},
	OrderStatusFolding:    {},
	OrderStatusIroning:    {},
	OrderStatusPackaging:  {},
	OrderStatusReady:      {},
	OrderStatusCompleted:  {},
	OrderStatusCancelled:  {},
}

// ValidTransitionTarget reports whether the status may be set via a status
// update on an existing order.
func (s OrderStatus) ValidTransitionTarget() bool {
	_, ok := transitionTargets[s]
	return ok
}

// Terminal reports whether no further transitions are allowed from the status.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}

// DeliveryOption describes how the customer exchanges laundry with the service.
type DeliveryOption string

const (
	DeliveryOptionPickup  DeliveryOption = "pickup"
	DeliveryOptionExpress DeliveryOption = "express"
	DeliveryOptionNone    DeliveryOption = "none"
)

// Valid reports whether the option is one of the recognized choices.
func (d DeliveryOption) Valid() bool {
	switch d {
	case DeliveryOptionPickup, DeliveryOptionExpress, DeliveryOptionNone:
		return true
	}
	return false
}

// RequiresAddress reports whether an order with this option must carry a
// delivery address.
func (d DeliveryOption) RequiresAddress() bool {
	return d == DeliveryOptionPickup || d == DeliveryOptionExpress
}

// Order describes a single purchase of a service package.
type Order struct {
	ID             int64
	UserID         int64
	ServiceKey     string
	ServiceTitle   string
	DeliveryOption DeliveryOption
	DeliveryFee    int
	TotalAmount    int
	Address        *string
	Status         OrderStatus
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// OrderDraft carries validated input for order creation.
type OrderDraft struct {
	UserID         int64
	ServiceKey     string
	ServiceTitle   string
	DeliveryOption DeliveryOption
	DeliveryFee    int
	TotalAmount    int
	Address        *string
}

// StatusHistoryEntry is one append-only audit record of a status an order
// has entered.
type StatusHistoryEntry struct {
	ID        int64
	OrderID   int64
	Status    OrderStatus
	Notes     *string
	ChangedAt time.Time
}
