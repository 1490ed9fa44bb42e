package store

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
)

func TestRedisSessionStoreRoundTrip(t *testing.T) {
	redis := miniredis.RunT(t)
	s := NewRedisSessionStore(redis.Addr(), "", time.Minute)

	token, err := s.NewSession(7)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	userID, ok, err := s.GetUserIDByToken(token)
	if err != nil {
		t.Fatalf("get user by token: %v", err)
	}
	if !ok || userID != 7 {
		t.Fatalf("expected user 7, got %d ok=%v", userID, ok)
	}

	if err := s.DeleteSession(token); err != nil {
		t.Fatalf("delete session: %v", err)
	}
	if _, ok, err := s.GetUserIDByToken(token); err != nil || ok {
		t.Fatalf("expected session gone after delete, ok=%v err=%v", ok, err)
	}

	// Deleting again must stay idempotent.
	if err := s.DeleteSession(token); err != nil {
		t.Fatalf("second delete: %v", err)
	}
}

func TestRedisSessionStoreExpires(t *testing.T) {
	redis := miniredis.RunT(t)
	s := NewRedisSessionStore(redis.Addr(), "", time.Minute)

	token, err := s.NewSession(3)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}

	redis.FastForward(2 * time.Minute)

	if _, ok, err := s.GetUserIDByToken(token); err != nil || ok {
		t.Fatalf("expected session expired, ok=%v err=%v", ok, err)
	}
}

func TestMemorySessionStoreExpires(t *testing.T) {
	s := NewMemorySessionStore(time.Minute)
	current := time.Unix(1_700_000_000, 0)
	s.now = func() time.Time { return current }

	token, err := s.NewSession(5)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	if _, ok, _ := s.GetUserIDByToken(token); !ok {
		t.Fatal("expected live session")
	}

	current = current.Add(2 * time.Minute)
	if _, ok, _ := s.GetUserIDByToken(token); ok {
		t.Fatal("expected session expired after TTL")
	}
}

func TestJWTSessionStoreRoundTrip(t *testing.T) {
	s := NewJWTSessionStore("test-secret", time.Minute)

	token, err := s.NewSession(11)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	userID, ok, err := s.GetUserIDByToken(token)
	if err != nil {
		t.Fatalf("get user by token: %v", err)
	}
	if !ok || userID != 11 {
		t.Fatalf("expected user 11, got %d ok=%v", userID, ok)
	}

	// Token signed with a different secret must be rejected.
	other := NewJWTSessionStore("other-secret", time.Minute)
	if _, ok, _ := other.GetUserIDByToken(token); ok {
		t.Fatal("expected token signed with different secret to fail")
	}

	if _, ok, _ := s.GetUserIDByToken("not-a-token"); ok {
		t.Fatal("expected malformed token to fail")
	}
}
