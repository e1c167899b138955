// Package secret hashes and verifies shared secrets such as internal API keys.
package secret

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const (
	// DefaultCost is the default cost for bcrypt hashing
	DefaultCost = bcrypt.DefaultCost
)

var (
	ErrEmptySecret    = errors.New("secret cannot be empty")
	ErrSecretMismatch = errors.New("secret does not match")
)

// Hash generates a bcrypt hash to be stored in APP_API_KEY_HASH.
func Hash(plain string) (string, error) {
	if plain == "" {
		return "", ErrEmptySecret
	}

	bytes, err := bcrypt.GenerateFromPassword([]byte(plain), DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash secret: %w", err)
	}

	return string(bytes), nil
}

// Verify checks a presented secret against its stored hash.
func Verify(plain, hash string) error {
	if plain == "" || hash == "" {
		return ErrSecretMismatch
	}

	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrSecretMismatch
	}

	if err != nil {
		return fmt.Errorf("failed to verify secret: %w", err)
	}

	return nil
}
