// Package hasher provides the one-way password hashing collaborator used by
// the user service.
package hasher

import (
	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/Chenxicheng/mcloud-oauth2-server/pkg/errors"
	"github.com/Chenxicheng/mcloud-oauth2-server/pkg/interfaces"
)

// BcryptHasher hashes passwords with bcrypt. The zero value is not usable;
// construct it with NewBcryptHasher.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher creates a bcrypt hasher with the given cost. Costs outside
// the bcrypt range fall back to the library default.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

// Hash transforms a plaintext password into a salted bcrypt hash
func (h *BcryptHasher) Hash(plaintext string) (string, error) {
	if plaintext == "" {
		return "", apperrors.NewMissingFieldError("password")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", apperrors.NewInternalErrorWithCause("failed to hash password", err)
	}
	return string(hash), nil
}

// Verify reports whether plaintext matches the given hash
func (h *BcryptHasher) Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}

var _ interfaces.PasswordHasher = (*BcryptHasher)(nil)
