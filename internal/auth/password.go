// Package auth hashes passwords and issues the tokens handed out on login.
//
// Stored hashes are the full bcrypt output:
//
//	$2a$12$<22-char salt><31-char hash>
//
// The salt and the cost travel inside the string, so the users table needs
// a single column for them.
package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// defaultCost is the bcrypt work factor for stored passwords.
const defaultCost = 12

// maxPasswordBytes is the most bcrypt reads; longer input would be silently
// truncated.
const maxPasswordBytes = 72

// ErrMismatch is returned by Verify when the password does not match.
var ErrMismatch = errors.New("auth: invalid password")

// PasswordHasher hashes and verifies passwords with bcrypt.
type PasswordHasher struct {
	cost int
}

func NewPasswordHasher() *PasswordHasher {
	return &PasswordHasher{cost: defaultCost}
}

// NewPasswordHasherWithCost is for tests in other packages: cost 4 hashes
// in a few milliseconds. Never use it to store real passwords.
func NewPasswordHasherWithCost(cost int) *PasswordHasher {
	return &PasswordHasher{cost: cost}
}

// Hash returns the bcrypt hash of plaintext.
func (p *PasswordHasher) Hash(plaintext string) (string, error) {
	if len(plaintext) > maxPasswordBytes {
		return "", fmt.Errorf("auth: password must be %d bytes or fewer", maxPasswordBytes)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), p.cost)
	if err != nil {
		return "", fmt.Errorf("auth: hashing password: %w", err)
	}
	return string(hashed), nil
}

// Verify returns nil when plaintext matches hash and ErrMismatch when it
// does not. A malformed hash is reported as a different error.
func (p *PasswordHasher) Verify(hash, plaintext string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext))
	switch {
	case err == nil:
		return nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return ErrMismatch
	default:
		return fmt.Errorf("auth: comparing password hash: %w", err)
	}
}
