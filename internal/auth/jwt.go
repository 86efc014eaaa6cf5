package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// tokenTTL is how long a sign-in token stays valid.
const tokenTTL = 72 * time.Hour

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrMissingKey   = errors.New("JWT secret key is not configured")
)

// GenerateToken creates a signed token (the "passport") for an email address.
func (g *Gate) GenerateToken(email string) (string, error) {
	if len(g.secret) == 0 {
		return "", ErrMissingKey
	}

	// 1. Create the claims: the subject is the normalised email.
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   NormaliseEmail(email),
		ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	// 2. Sign it with HS256 and our secret key.
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(g.secret)
}

// ValidateToken parses and validates a token string and returns the email it was issued to.
func (g *Gate) ValidateToken(tokenString string) (string, error) {
	if len(g.secret) == 0 {
		return "", ErrMissingKey
	}

	// 1. Parse the token, insisting on the HMAC signing method.
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return g.secret, nil
	})
	if err != nil {
		return "", errors.Join(ErrInvalidToken, err) // expired, malformed, bad signature
	}

	// 2. Check the token is valid and carries a subject.
	if !token.Valid || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}
