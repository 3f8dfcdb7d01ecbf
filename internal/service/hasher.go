package service

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher turns passwords into salted one-way digests and checks
// candidates against them. Implementations must be safe for concurrent use.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(digest, candidate string) bool
}

// maxPasswordBytes is the longest input bcrypt accepts. Longer passwords are
// cut to this length before hashing and before comparing.
const maxPasswordBytes = 72

// BcryptHasher implements PasswordHasher with bcrypt at a fixed cost.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher clamps cost into bcrypt's accepted range; zero means bcrypt.DefaultCost.
func NewBcryptHasher(cost int) *BcryptHasher {
	switch {
	case cost == 0:
		cost = bcrypt.DefaultCost
	case cost < bcrypt.MinCost:
		cost = bcrypt.MinCost
	case cost > bcrypt.MaxCost:
		cost = bcrypt.MaxCost
	}
	return &BcryptHasher{cost: cost}
}

// Hash returns a bcrypt digest with a fresh random salt. Only the first
// maxPasswordBytes bytes of password take part.
func (h *BcryptHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword(truncate(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrHashingFailed, err)
	}
	return string(hash), nil
}

// Verify reports whether candidate matches digest. A corrupt or foreign
// digest is a mismatch, not an error.
func (h *BcryptHasher) Verify(digest, candidate string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), truncate(candidate)) == nil
}

func truncate(password string) []byte {
	b := []byte(password)
	if len(b) > maxPasswordBytes {
		b = b[:maxPasswordBytes]
	}
	return b
}
