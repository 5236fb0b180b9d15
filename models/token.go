package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token wraps a session token issued at sign-in.
//
// For the local identity backend it is a JWT whose "sub" claim is the user
// id and whose "jti" claim is the server-side session id. For the hosted
// identity backend it is the opaque access token the provider returned, and
// only SignedString and ExpiresAt are populated.
type Token struct {
	// Token is the underlying JWT token used for signing and claim inspection.
	*jwt.Token `json:"-"`

	// RegisteredClaims provides access to the standard JWT claim set.
	jwt.RegisteredClaims

	// Login is carried alongside the subject so pages can greet the user
	// without another lookup.
	Login string `json:"login,omitempty"`

	// SignedString is the compact representation sent to the browser.
	SignedString string `json:"-"`
}

// String returns the compact token representation.
// It implements the [fmt.Stringer] interface.
func (t Token) String() string {
	return t.SignedString
}

// Expiry returns the token expiry, or the zero time when it carries none.
func (t Token) Expiry() time.Time {
	if t.ExpiresAt == nil {
		return time.Time{}
	}
	return t.ExpiresAt.Time
}
