package password

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost is the bcrypt work factor used when none is configured.
const DefaultCost = 10

// bcrypt silently truncates beyond 72 bytes; reject instead.
const maxPasswordBytes = 72

// dummyHash is a fixed, precomputed bcrypt hash at DefaultCost. The login
// flow compares the supplied password against it when the username does not
// exist, so the missing-user path performs the same bcrypt work as the
// wrong-password path. The preimage is irrelevant; only the cost matters.
var dummyHash = []byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy")

// Hasher hashes and verifies passwords with bcrypt at a fixed cost.
// Instances are intended to be configured during initialization and then
// treated as immutable.
type Hasher struct {
	cost int
}

// NewHasher validates the cost and returns a [Hasher].
func NewHasher(cost int) (*Hasher, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, errors.New("bcrypt cost out of range")
	}
	return &Hasher{cost: cost}, nil
}

// Cost returns the configured work factor.
func (h *Hasher) Cost() int {
	return h.cost
}

// Hash returns the salted bcrypt hash of password. bcrypt generates the salt
// internally; the encoded result embeds salt and cost.
func (h *Hasher) Hash(password string) (string, error) {
	if password == "" {
		return "", errors.New("empty password")
	}
	if len(password) > maxPasswordBytes {
		return "", errors.New("password exceeds 72 bytes")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Verify reports whether password matches the stored hash. Any comparison
// failure, including a corrupt hash, reads as a mismatch.
func (h *Hasher) Verify(password, encodedHash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(encodedHash), []byte(password)) == nil
}

// CompareDummy burns the same bcrypt work as a real verification without
// authenticating anything. The result is discarded on purpose: this path can
// never succeed, it only equalizes latency.
func (h *Hasher) CompareDummy(password string) {
	_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
}
