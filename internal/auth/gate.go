// Package auth decides who may sign in and who may see the restricted
// pricing views.
package auth

import (
	"errors"
	"slices"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrBadCredentials = errors.New("invalid email or passcode")
	ErrForbidden      = errors.New("this account may not access restricted views")
)

// Gate holds the signing key, the shared passcode hash and the email allowlist.
type Gate struct {
	secret        []byte
	passcodeHash  []byte
	allowedEmails []string
}

// NewGate builds a gate. allowedEmails is trimmed and lowercased; an empty
// list lets any signed-in user through.
func NewGate(secret, passcodeHash string, allowedEmails []string) *Gate {
	emails := make([]string, 0, len(allowedEmails))
	for _, email := range allowedEmails {
		if e := NormaliseEmail(email); e != "" {
			emails = append(emails, e)
		}
	}
	return &Gate{
		secret:        []byte(secret),
		passcodeHash:  []byte(passcodeHash),
		allowedEmails: emails,
	}
}

// ParseAllowedEmails splits a comma separated ALLOWED_EMAILS value.
func ParseAllowedEmails(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	return strings.Split(raw, ",")
}

// HashPasscode returns a bcrypt hash suitable for ACCESS_PASSCODE_HASH.
func HashPasscode(passcode string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(passcode), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// SignIn checks the passcode and issues a token for the email.
func (g *Gate) SignIn(email, passcode string) (string, error) {
	email = NormaliseEmail(email)
	if email == "" || len(g.passcodeHash) == 0 {
		return "", ErrBadCredentials
	}

	err := bcrypt.CompareHashAndPassword(g.passcodeHash, []byte(passcode))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return "", ErrBadCredentials
		}
		return "", err
	}

	return g.GenerateToken(email)
}

// CanAccessRestricted reports whether a signed-in email may see restricted views.
func (g *Gate) CanAccessRestricted(email string) bool {
	email = NormaliseEmail(email)
	if email == "" {
		return false
	}
	return len(g.allowedEmails) == 0 || slices.Contains(g.allowedEmails, email)
}

// NormaliseEmail trims and lowercases an address.
func NormaliseEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
