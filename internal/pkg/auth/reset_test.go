package auth

import "testing"

func TestNewResetToken(t *testing.T) {
	first, err := NewResetToken()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(first) != 32 {
		t.Fatalf("unexpected token length: %d", len(first))
	}

	second, err := NewResetToken()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first == second {
		t.Fatal("expected distinct tokens")
	}
}
