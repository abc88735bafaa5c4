package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"

	"golang.org/x/crypto/pbkdf2"

	"gestorpro/internal/models"
)

// ErrInvalidCredentials is the only failure a login ever reports. It does not
// say whether the identifier exists.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Digest parameters. The salt and iteration count are fixed for the lifetime
// of an installation: stored digests must keep matching across runs, and the
// legacy-migration check relies on recomputing the exact same value.
const (
	digestSalt       = "gestorpro-credential-salt-v1"
	digestIterations = 10_000
	digestBytes      = 32
)

// HashPassword derives the stored credential digest: PBKDF2-SHA256 rendered
// as a fixed-length hex string. Deterministic and one-way.
func HashPassword(plaintext string) string {
	key := pbkdf2.Key([]byte(plaintext), []byte(digestSalt), digestIterations, digestBytes, sha256.New)
	return hex.EncodeToString(key)
}

// passwordSymbols is the accepted special-character set for new passwords.
const passwordSymbols = "*/+-#@"

// ValidatePassword enforces the acceptance policy for new or changed
// passwords: at least 7 characters with at least one letter, one digit and
// one of * / + - # @. Login never calls this; existing credentials keep
// working regardless.
func ValidatePassword(plaintext string) error {
	var hasLetter, hasDigit, hasSymbol bool
	length := 0
	for _, r := range plaintext {
		length++
		switch {
		case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
			hasLetter = true
		case r >= '0' && r <= '9':
			hasDigit = true
		case strings.ContainsRune(passwordSymbols, r):
			hasSymbol = true
		}
	}

	if length < 7 || !hasLetter || !hasDigit || !hasSymbol {
		return &models.ValidationError{
			Field:  "password",
			Reason: "must be at least 7 characters and include a letter, a number and one of * / + - # @",
		}
	}
	return nil
}

// Authenticate matches identifier (case-insensitive email) and plaintext
// against the employee collection.
//
// Legacy records store the raw plaintext instead of a digest. When the stored
// value equals the plaintext, the login still succeeds and the record is
// upgraded in the returned collection; migrated is true so the caller knows
// it must persist the collection before reporting success. The upgrade is
// one-way: a digest is never turned back into plaintext.
func Authenticate(employees []models.Employee, identifier, plaintext string) (emp models.Employee, updated []models.Employee, migrated bool, err error) {
	digest := HashPassword(plaintext)
	want := strings.ToLower(strings.TrimSpace(identifier))

	for i, e := range employees {
		if strings.ToLower(e.Email) != want {
			continue
		}
		switch e.Password {
		case digest:
			return e, employees, false, nil
		case plaintext:
			// Legacy unhashed credential: upgrade in place.
			employees[i].Password = digest
			return employees[i], employees, true, nil
		}
		// Wrong password for a real account looks the same as no account.
		return models.Employee{}, employees, false, ErrInvalidCredentials
	}

	return models.Employee{}, employees, false, ErrInvalidCredentials
}
