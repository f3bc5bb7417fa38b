// Package token inspects bearer tokens issued by the backend. The client
// never validates signatures, the server is authoritative; claims are only
// read to show the user when their session runs out.
package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Expiry returns the expiration time embedded in a JWT access token. The
// second return is false for opaque or malformed tokens and for tokens
// without an exp claim.
func Expiry(token string) (time.Time, bool) {
	parser := jwt.NewParser()

	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

// Expired reports whether the token carries an exp claim in the past. An
// opaque token is never considered expired locally.
func Expired(token string, now time.Time) bool {
	exp, ok := Expiry(token)
	if !ok {
		return false
	}
	return exp.Before(now)
}
