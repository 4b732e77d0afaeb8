package services

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// bcryptCost balances brute-force resistance against login latency.
const bcryptCost = 10

// bcryptSaltPrefixLen covers the "$2a$10$" header plus the 22-char salt segment.
const bcryptSaltPrefixLen = 29

// HashPassword derives a salted one-way hash of the plaintext. bcrypt generates
// a fresh random salt per call and embeds it in the digest; the salt segment is
// returned separately so the credential record carries it as its own field.
func HashPassword(plain string) (hash, salt string, err error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcryptCost)
	if err != nil {
		return "", "", fmt.Errorf("failed to hash password: %w", err)
	}
	hash = string(b)
	if len(hash) < bcryptSaltPrefixLen {
		return "", "", fmt.Errorf("unexpected bcrypt digest length %d", len(hash))
	}
	return hash, hash[:bcryptSaltPrefixLen], nil
}

// CheckPassword reports whether plain matches the stored hash. The comparison
// is constant time.
func CheckPassword(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
