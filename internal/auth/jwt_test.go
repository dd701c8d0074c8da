package auth

import (
	"errors"
	"testing"
	"time"
)

func TestTokenManager(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour)

	token, err := m.Generate("session-1")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	claims, err := m.Validate(token)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if claims.SessionID != "session-1" {
		t.Errorf("SessionID = %q, want session-1", claims.SessionID)
	}
}

func TestTokenManagerRejects(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour)
	other := NewTokenManager("other-secret", time.Hour)
	expired := NewTokenManager("test-secret", -time.Minute)

	foreign, _ := other.Generate("session-1")
	stale, _ := expired.Generate("session-1")

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-token"},
		{"wrong secret", foreign},
		{"expired", stale},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := m.Validate(tt.token); !errors.Is(err, ErrInvalidToken) {
				t.Errorf("Validate() error = %v, want ErrInvalidToken", err)
			}
		})
	}
}

func TestRandomSecret(t *testing.T) {
	a, err := RandomSecret()
	if err != nil {
		t.Fatalf("RandomSecret failed: %v", err)
	}
	b, _ := RandomSecret()
	if len(a) != 64 {
		t.Errorf("len = %d, want 64", len(a))
	}
	if a == b {
		t.Error("expected distinct secrets")
	}
}
