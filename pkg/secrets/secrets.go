// Package secrets issues upstream API keys and checks them against stored
// bcrypt hashes.
package secrets

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"sync"

	"golang.org/x/crypto/bcrypt"

	dErrors "motorhub/pkg/domain-errors"
)

const keyBytes = 32

// APIKey is a freshly generated key. Plain is shown once; only Hash is stored.
type APIKey struct {
	Plain string `json:"api_key"`
	Hash  string `json:"api_key_hash"`
}

// NewAPIKey generates a random URL-safe key together with its bcrypt hash.
func NewAPIKey() (APIKey, error) {
	buf := make([]byte, keyBytes)
	if _, err := rand.Read(buf); err != nil {
		return APIKey{}, dErrors.Wrap(err, dErrors.CodeInternal, "could not generate api key")
	}
	plain := base64.RawURLEncoding.EncodeToString(buf)
	hash, err := Hash(plain)
	if err != nil {
		return APIKey{}, err
	}
	return APIKey{Plain: plain, Hash: hash}, nil
}

// Hash creates a bcrypt hash of secret.
func Hash(secret string) (string, error) {
	if secret == "" {
		return "", dErrors.New(dErrors.CodeValidation, "secret cannot be empty")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", dErrors.New(dErrors.CodeValidation, "secret is too long")
		}
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "could not hash secret")
	}
	return string(hashed), nil
}

// Verify checks a plaintext secret against a bcrypt hash.
func Verify(secret, hash string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return dErrors.New(dErrors.CodeUnauthorized, "invalid secret")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "could not verify secret")
	}
	return nil
}

// KeyChecker verifies presented keys against a single stored hash. The last
// accepted key is remembered so repeat callers skip the bcrypt cost.
type KeyChecker struct {
	hash string

	mu       sync.Mutex
	accepted []byte
}

func NewKeyChecker(hash string) *KeyChecker {
	return &KeyChecker{hash: hash}
}

// Check returns nil when key matches the stored hash.
func (c *KeyChecker) Check(key string) error {
	if key == "" {
		return dErrors.New(dErrors.CodeUnauthorized, "missing api key")
	}
	c.mu.Lock()
	accepted := c.accepted
	c.mu.Unlock()
	if accepted != nil && subtle.ConstantTimeCompare(accepted, []byte(key)) == 1 {
		return nil
	}

	if err := Verify(key, c.hash); err != nil {
		return err
	}
	c.mu.Lock()
	c.accepted = []byte(key)
	c.mu.Unlock()
	return nil
}
