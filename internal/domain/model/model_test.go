package model

import "testing"

func TestOrderStatusValues(t *testing.T) {
	cases := []struct {
		name  string
		got   OrderStatus
		value string
	}{
		{"pending", OrderStatusPending, "pending"},
		{"accepted", OrderStatusAccepted, "accepted"},
		{"processing", OrderStatusProcessing, "processing"},
		{"washing", OrderStatusWashing, "washing"},
		{"drying", OrderStatusDrying, "drying"},
		{"folding", OrderStatusFolding, "folding"},
		{"ironing", OrderStatusIroning, "ironing"},
		{"packaging", OrderStatusPackaging, "packaging"},
		{"ready", OrderStatusReady, "ready"},
		{"completed", OrderStatusCompleted, "completed"},
		{"cancelled", OrderStatusCancelled, "cancelled"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if string(tc.got) != tc.value {
				t.Fatalf("expected %s, got %s", tc.value, tc.got)
			}
		})
	}
}

func TestValidTransitionTarget(t *testing.T) {
	valid := []OrderStatus{
		OrderStatusAccepted, OrderStatusProcessing, OrderStatusWashing,
		OrderStatusDrying, OrderStatusFolding, OrderStatusIroning,
		OrderStatusPackaging, OrderStatusReady, OrderStatusCompleted,
		OrderStatusCancelled,
	}
	for _, status := range valid {
		if !status.ValidTransitionTarget() {
			t.Fatalf("expected %s to be a valid transition target", status)
		}
	}

	invalid := []OrderStatus{OrderStatusPending, "", "shipped", "PENDING"}
	for _, status := range invalid {
		if status.ValidTransitionTarget() {
			t.Fatalf("expected %q to be rejected as transition target", status)
		}
	}
}

func TestTerminalStatuses(t *testing.T) {
	if !OrderStatusCompleted.Terminal() || !OrderStatusCancelled.Terminal() {
		t.Fatalf("expected completed and cancelled to be terminal")
	}

	for _, status := range []OrderStatus{OrderStatusPending, OrderStatusAccepted, OrderStatusReady} {
		if status.Terminal() {
			t.Fatalf("expected %s to be non-terminal", status)
		}
	}
}

func TestDeliveryOption(t *testing.T) {
	cases := []struct {
		option          DeliveryOption
		valid           bool
		requiresAddress bool
	}{
		{DeliveryOptionPickup, true, true},
		{DeliveryOptionExpress, true, true},
		{DeliveryOptionNone, true, false},
		{"teleport", false, false},
		{"", false, false},
	}

	for _, tc := range cases {
		if tc.option.Valid() != tc.valid {
			t.Fatalf("option %q: expected valid=%v", tc.option, tc.valid)
		}
		if tc.option.RequiresAddress() != tc.requiresAddress {
			t.Fatalf("option %q: expected requiresAddress=%v", tc.option, tc.requiresAddress)
		}
	}
}
