package crypto

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHasher_HashAndVerify(t *testing.T) {
	t.Parallel()

	h := NewHasher(bcrypt.MinCost)

	digest, err := h.Hash("Secret123")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if digest == "" || digest == "Secret123" {
		t.Fatalf("digest looks wrong: %q", digest)
	}
	if !h.Verify("Secret123", digest) {
		t.Fatalf("Verify: expected true for correct secret")
	}
	if h.Verify("Secret124", digest) {
		t.Fatalf("Verify: expected false for wrong secret")
	}
	if h.Verify("", digest) {
		t.Fatalf("Verify: expected false for empty secret")
	}
}

func TestHasher_SaltedPerCall(t *testing.T) {
	t.Parallel()

	h := NewHasher(bcrypt.MinCost)

	d1, err := h.Hash("same-secret")
	if err != nil {
		t.Fatalf("Hash(1): %v", err)
	}
	d2, err := h.Hash("same-secret")
	if err != nil {
		t.Fatalf("Hash(2): %v", err)
	}
	if d1 == d2 {
		t.Fatalf("two digests of the same secret are equal — salt missing")
	}
}

func TestHasher_CostChangeKeepsOldDigestsValid(t *testing.T) {
	t.Parallel()

	old := NewHasher(bcrypt.MinCost)
	digest, err := old.Hash("long-lived")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}

	// A hasher configured with a higher cost must still verify digests
	// produced under the old cost: the factor is encoded in the digest.
	upgraded := NewHasher(bcrypt.MinCost + 2)
	if !upgraded.Verify("long-lived", digest) {
		t.Fatalf("digest hashed at old cost no longer verifies")
	}
}

func TestNewHasher_ClampsInvalidCost(t *testing.T) {
	t.Parallel()

	h := NewHasher(-1)
	digest, err := h.Hash("x")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	cost, err := bcrypt.Cost([]byte(digest))
	if err != nil {
		t.Fatalf("Cost: %v", err)
	}
	if cost != bcrypt.DefaultCost {
		t.Fatalf("cost = %d, want default %d", cost, bcrypt.DefaultCost)
	}
	if !strings.HasPrefix(digest, "$2a$") {
		t.Fatalf("unexpected digest format: %q", digest)
	}
}
