package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// DefaultPasswordCost is the bcrypt work factor used for account passwords.
const DefaultPasswordCost = 10

// PasswordHasher turns plaintext passwords into digests and checks
// candidates against stored digests.
type PasswordHasher interface {
	HashPassword(plaintext string) (string, error)
	CheckPassword(plaintext, digest string) bool
}

// BcryptHasher is a PasswordHasher backed by bcrypt. Each digest embeds its
// own random salt, so hashing the same plaintext twice gives different
// results.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher returns a hasher with the given cost. Costs outside
// bcrypt's accepted range fall back to DefaultPasswordCost.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultPasswordCost
	}
	return &BcryptHasher{cost: cost}
}

// Cost returns the work factor in use.
func (h *BcryptHasher) Cost() int {
	return h.cost
}

func (h *BcryptHasher) HashPassword(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// CheckPassword compares in constant time. A malformed digest is a mismatch.
func (h *BcryptHasher) CheckPassword(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
