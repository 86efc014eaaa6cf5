package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func newTestGate(t *testing.T, allowed ...string) *Gate {
	t.Helper()
	hash, err := HashPasscode("tulips-in-spring")
	if err != nil {
		t.Fatalf("HashPasscode: %v", err)
	}
	return NewGate("test-secret", hash, allowed)
}

func TestSignInAndValidate(t *testing.T) {
	g := newTestGate(t)

	token, err := g.SignIn("  Florist@Example.com ", "tulips-in-spring")
	if err != nil {
		t.Fatalf("SignIn: %v", err)
	}

	email, err := g.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if email != "florist@example.com" {
		t.Errorf("email = %q, want normalised address", email)
	}
}

func TestSignInRejectsWrongPasscode(t *testing.T) {
	g := newTestGate(t)
	if _, err := g.SignIn("florist@example.com", "wrong"); !errors.Is(err, ErrBadCredentials) {
		t.Fatalf("err = %v, want ErrBadCredentials", err)
	}
	if _, err := g.SignIn("", "tulips-in-spring"); !errors.Is(err, ErrBadCredentials) {
		t.Fatalf("err = %v, want ErrBadCredentials for empty email", err)
	}
}

func TestValidateTokenRejectsForeignAndExpiredTokens(t *testing.T) {
	g := newTestGate(t)

	other := NewGate("another-secret", "", nil)
	foreign, err := other.GenerateToken("florist@example.com")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if _, err := g.ValidateToken(foreign); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("foreign token: err = %v, want ErrInvalidToken", err)
	}

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "florist@example.com",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
	})
	signed, err := expired.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("SignedString: %v", err)
	}
	if _, err := g.ValidateToken(signed); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expired token: err = %v, want ErrInvalidToken", err)
	}
}

func TestCanAccessRestricted(t *testing.T) {
	open := newTestGate(t)
	if !open.CanAccessRestricted("anyone@example.com") {
		t.Error("empty allowlist should let any signed-in user in")
	}
	if open.CanAccessRestricted("") {
		t.Error("anonymous users must never pass")
	}

	gated := newTestGate(t, ParseAllowedEmails(" Owner@Example.com , buyer@example.com")...)
	if !gated.CanAccessRestricted("owner@example.com") {
		t.Error("allowlisted email should pass")
	}
	if gated.CanAccessRestricted("stranger@example.com") {
		t.Error("email outside the allowlist should not pass")
	}
}
