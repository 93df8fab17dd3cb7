// Package auth defines the boundary with the external identity service.
// Only secret hashing crosses it; sessions and tokens stay on the other side.
package auth

import "golang.org/x/crypto/bcrypt"

// Hasher turns a plaintext secret into an opaque stored form and checks
// candidates against it.
type Hasher interface {
	Hash(secret string) (string, error)
	Verify(secret, hash string) bool
}

// BcryptHasher is the default Hasher implementation.
type BcryptHasher struct {
	// Cost of 0 falls back to bcrypt.DefaultCost.
	Cost int
}

func (h BcryptHasher) Hash(secret string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(secret), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (h BcryptHasher) Verify(secret, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret)) == nil
}
