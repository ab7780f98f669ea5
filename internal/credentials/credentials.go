// Package credentials holds the stateless helpers for password hashing,
// input validation and opaque identifier generation.
package credentials

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword hashes a plaintext password with bcrypt at the default cost.
// It fails only when the underlying primitive fails, never on the content
// of the password itself.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(bytes), nil
}

// VerifyPassword reports whether the plaintext matches the bcrypt hash.
// A mismatch is not an error; only a malformed hash is.
func VerifyPassword(password, hash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err == nil {
		return true, nil
	}
	if err == bcrypt.ErrMismatchedHashAndPassword {
		return false, nil
	}
	return false, fmt.Errorf("verify password: %w", err)
}

const passwordSymbols = `!@#$%^&*()_+-=[]{};':"\|,.<>/?`

// IsStrongPassword reports whether the password is at least 8 characters
// and contains an uppercase letter, a lowercase letter, a digit and a
// symbol from the accepted punctuation set.
func IsStrongPassword(s string) bool {
	if len(s) < 8 {
		return false
	}
	var upper, lower, digit, symbol bool
	for _, r := range s {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(passwordSymbols, r):
			symbol = true
		}
	}
	return upper && lower && digit && symbol
}

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// IsValidEmail performs a syntactic local@domain.tld check.
// It says nothing about deliverability.
func IsValidEmail(s string) bool {
	return emailRe.MatchString(s)
}

// SecureID returns a cryptographically random 24-character hex token.
// Tokens are collision-resistant and non-sequential, suitable for use as
// public tracking numbers.
func SecureID() string {
	b := make([]byte, 12)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand never fails on supported platforms
		panic(fmt.Sprintf("read random bytes: %v", err))
	}
	return hex.EncodeToString(b)
}
