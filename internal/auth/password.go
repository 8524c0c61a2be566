package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned when a login or password does not match.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Passwords hashes and verifies passwords with bcrypt.
type Passwords struct {
	Cost int
}

// DefaultPasswords uses bcrypt.DefaultCost.
var DefaultPasswords = Passwords{Cost: bcrypt.DefaultCost}

// Hash returns the bcrypt hash of plain.
func (p Passwords) Hash(plain string) (string, error) {
	cost := p.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// Verify checks plain against hash. A mismatch or a malformed hash yields
// ErrInvalidCredentials.
func (p Passwords) Verify(hash, plain string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}
