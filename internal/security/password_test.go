package security

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPasswordCost("teach@2026", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	if hash == "teach@2026" {
		t.Fatalf("hash must not equal the plain text")
	}

	if err := CheckPassword(hash, "teach@2026"); err != nil {
		t.Fatalf("expected match, got %v", err)
	}

	if err := CheckPassword(hash, "wrong"); err == nil {
		t.Fatalf("expected mismatch error")
	}
}

func TestHashesAreSalted(t *testing.T) {
	a, _ := HashPasswordCost("same", bcrypt.MinCost)
	b, _ := HashPasswordCost("same", bcrypt.MinCost)

	if a == b {
		t.Fatalf("two hashes of the same password should differ")
	}
}
