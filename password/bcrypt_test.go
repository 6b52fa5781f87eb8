package password

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestNewHasherCostBounds(t *testing.T) {
	if _, err := NewHasher(bcrypt.MinCost - 1); err == nil {
		t.Fatal("cost below minimum accepted")
	}
	if _, err := NewHasher(bcrypt.MaxCost + 1); err == nil {
		t.Fatal("cost above maximum accepted")
	}

	h, err := NewHasher(bcrypt.MinCost)
	if err != nil {
		t.Fatalf("NewHasher: %v", err)
	}
	if h.Cost() != bcrypt.MinCost {
		t.Fatalf("Cost() = %d", h.Cost())
	}
}

func TestHashVerifyRoundTrip(t *testing.T) {
	h, err := NewHasher(bcrypt.MinCost)
	if err != nil {
		t.Fatalf("NewHasher: %v", err)
	}

	hash, err := h.Hash("Passw0rd!")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if strings.Contains(hash, "Passw0rd!") {
		t.Fatal("hash contains the plaintext")
	}

	if !h.Verify("Passw0rd!", hash) {
		t.Fatal("correct password rejected")
	}
	if h.Verify("Wr0ngPass", hash) {
		t.Fatal("wrong password accepted")
	}
}

func TestHashRejectsEmptyAndOversized(t *testing.T) {
	h, err := NewHasher(bcrypt.MinCost)
	if err != nil {
		t.Fatalf("NewHasher: %v", err)
	}

	if _, err := h.Hash(""); err == nil {
		t.Fatal("empty password hashed")
	}
	// bcrypt truncates beyond 72 bytes; longer inputs must be rejected
	// instead of silently truncated.
	if _, err := h.Hash(strings.Repeat("a", 73)); err == nil {
		t.Fatal("oversized password hashed")
	}
	if _, err := h.Hash(strings.Repeat("a", 72)); err != nil {
		t.Fatalf("72-byte password rejected: %v", err)
	}
}

func TestVerifyGarbageHash(t *testing.T) {
	h, err := NewHasher(bcrypt.MinCost)
	if err != nil {
		t.Fatalf("NewHasher: %v", err)
	}
	if h.Verify("Passw0rd!", "not-a-bcrypt-hash") {
		t.Fatal("garbage hash verified")
	}
}

func TestCompareDummyDoesNotPanic(t *testing.T) {
	h, err := NewHasher(DefaultCost)
	if err != nil {
		t.Fatalf("NewHasher: %v", err)
	}
	h.CompareDummy("Passw0rd!")
	h.CompareDummy("")
}
