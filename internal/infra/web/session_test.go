//go:build !integration

package web

import (
	"strings"
	"testing"
	"time"
)

func TestSessionManager_RoundTrip(t *testing.T) {
	t.Parallel()

	m := NewSessionManager("test-secret", 24*time.Hour, false)
	token, err := m.Issue("admin")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	username, ok := m.Verify(token)
	if !ok {
		t.Fatalf("expected freshly issued token to verify")
	}
	if username != "admin" {
		t.Fatalf("username = %q, want %q", username, "admin")
	}
}

func TestSessionManager_ExpiresAfterTTL(t *testing.T) {
	t.Parallel()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	m := NewSessionManager("test-secret", 24*time.Hour, false)
	m.now = func() time.Time { return base }

	token, err := m.Issue("admin")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	// Still valid just inside the window.
	m.now = func() time.Time { return base.Add(23 * time.Hour) }
	if _, ok := m.Verify(token); !ok {
		t.Fatalf("token must verify inside the TTL")
	}

	// Clock skips past 24h: verification fails.
	m.now = func() time.Time { return base.Add(25 * time.Hour) }
	if _, ok := m.Verify(token); ok {
		t.Fatalf("token must not verify after the TTL")
	}
}

func TestSessionManager_RejectsTamperedSignature(t *testing.T) {
	t.Parallel()

	m := NewSessionManager("test-secret", 24*time.Hour, false)
	token, err := m.Issue("admin")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	// Flip one byte of the signature segment.
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape: %q", token)
	}
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	if _, ok := m.Verify(tampered); ok {
		t.Fatalf("tampered signature must not verify")
	}
}

func TestSessionManager_RejectsTamperedPayload(t *testing.T) {
	t.Parallel()

	m := NewSessionManager("test-secret", 24*time.Hour, false)
	token, err := m.Issue("admin")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	parts := strings.Split(token, ".")
	payload := []byte(parts[1])
	if payload[0] == 'A' {
		payload[0] = 'B'
	} else {
		payload[0] = 'A'
	}
	tampered := parts[0] + "." + string(payload) + "." + parts[2]

	if _, ok := m.Verify(tampered); ok {
		t.Fatalf("tampered payload must not verify")
	}
}

func TestSessionManager_RejectsForeignSecret(t *testing.T) {
	t.Parallel()

	issuer := NewSessionManager("secret-a", 24*time.Hour, false)
	verifier := NewSessionManager("secret-b", 24*time.Hour, false)

	token, err := issuer.Issue("admin")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, ok := verifier.Verify(token); ok {
		t.Fatalf("token signed with a different secret must not verify")
	}
}
