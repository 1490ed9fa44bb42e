package auth

import "testing"

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("glass-rate-42")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if hash == "glass-rate-42" {
		t.Fatalf("hash must not equal the plaintext password")
	}
	if !CheckPassword("glass-rate-42", hash) {
		t.Fatalf("expected password check to pass")
	}
	if CheckPassword("wrong", hash) {
		t.Fatalf("expected password check to fail")
	}
}

func TestCheckPasswordRejectsMalformedHash(t *testing.T) {
	if CheckPassword("anything", "not-a-bcrypt-hash") {
		t.Fatalf("expected malformed hash to fail the check")
	}
}
