package utils

import (
	"strings"
	"testing"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("hunter2secret")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if !strings.Contains(hash, ".") {
		t.Fatalf("hash missing salt separator: %q", hash)
	}

	if err := VerifyPassword("hunter2secret", hash); err != nil {
		t.Errorf("correct password rejected: %v", err)
	}
	if err := VerifyPassword("wrongpassword", hash); err == nil {
		t.Error("wrong password accepted")
	}
}

func TestHashPasswordEmpty(t *testing.T) {
	if _, err := HashPassword(""); err == nil {
		t.Error("expected error for empty password")
	}
}

func TestHashPasswordUniqueSalt(t *testing.T) {
	h1, err := HashPassword("same-password")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	h2, err := HashPassword("same-password")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if h1 == h2 {
		t.Error("two hashes of the same password should differ by salt")
	}
}

func TestVerifyPasswordMalformed(t *testing.T) {
	for _, encoded := range []string{"", "noseparator", "bad!base64.AAAA", "AAAA.bad!base64"} {
		if err := VerifyPassword("whatever", encoded); err == nil {
			t.Errorf("malformed hash %q accepted", encoded)
		}
	}
}
