package model

import "testing"

func TestClaimDecided(t *testing.T) {
	tests := []struct {
		status   string
		expected bool
	}{
		{ClaimStatusPending, false},
		{ClaimStatusApproved, true},
		{ClaimStatusRejected, true},
		{"", false},
	}

	for _, tt := range tests {
		c := Claim{Status: tt.status}
		if got := c.Decided(); got != tt.expected {
			t.Errorf("Decided() with status %q = %v, want %v", tt.status, got, tt.expected)
		}
	}
}

func TestIdentityClaimant(t *testing.T) {
	id := Identity{UserID: 7, Name: "Ana", Email: "ana@example.com", Phone: "0123"}
	c := id.Claimant()

	if c.UserID == nil || *c.UserID != 7 {
		t.Errorf("expected user id 7, got %v", c.UserID)
	}
	if c.Name != "Ana" || c.Email != "ana@example.com" || c.Phone != "0123" {
		t.Errorf("unexpected claimant snapshot: %+v", c)
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		password string
		wantErr  bool
	}{
		{"", true},
		{"short", true},
		{"1234567", true},
		{"12345678", false},
		{"a-valid-password", false},
	}

	for _, tt := range tests {
		err := ValidatePassword(tt.password)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidatePassword(%q) error = %v, wantErr %v", tt.password, err, tt.wantErr)
		}
	}
}
