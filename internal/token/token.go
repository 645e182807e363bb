// Package token inspects bearer tokens locally, without server contact and
// without verifying signatures. Signature verification is the backend's job;
// the client only needs to know whether a stored token is worth presenting.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrNoExpiry is returned when the token carries no exp claim.
	ErrNoExpiry = errors.New("token has no expiry claim")
	// ErrMalformed is returned when the token cannot be decoded at all.
	ErrMalformed = errors.New("token is malformed")
)

// parser never validates claims or signatures; it only decodes.
var parser = jwt.NewParser()

// ExpiresAt decodes the token payload and returns its expiry timestamp.
func ExpiresAt(tokenStr string) (time.Time, error) {
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(tokenStr, claims); err != nil {
		return time.Time{}, ErrMalformed
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, ErrNoExpiry
	}
	return exp.Time, nil
}

// IsExpired reports whether the token is expired relative to now.
// Undecodable tokens and tokens without an expiry are treated as expired,
// matching the startup rule that a bad token is the same as no token.
func IsExpired(tokenStr string, now time.Time) bool {
	exp, err := ExpiresAt(tokenStr)
	if err != nil {
		return true
	}
	return !exp.After(now)
}
