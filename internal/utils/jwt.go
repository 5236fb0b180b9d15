package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-collab-forms/models"
	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims identifies the holder of a session token.
type SessionClaims struct {
	UserID    string
	Login     string
	SessionID string
}

// GenerateJWTToken creates a signed HMAC-SHA256 session token.
//
// The token carries:
//   - Issuer    (iss): identifies the service that issued the token
//   - Subject   (sub): the user id
//   - ID        (jti): the server-side session id
//   - IssuedAt  (iat) and ExpiresAt (exp)
//   - login: the user's login, for display
//
// issuer, subject, session id, duration and key are required.
func GenerateJWTToken(issuer string, claims SessionClaims, tokenDuration time.Duration, signKey string) (models.Token, error) {
	if issuer == "" || claims.UserID == "" || claims.SessionID == "" || tokenDuration <= 0 || signKey == "" {
		return models.Token{}, errors.New("invalid params for generating JWT Token")
	}

	now := time.Now()
	payload := &models.Token{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   claims.UserID,
			ID:        claims.SessionID,
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Login: claims.Login,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, payload)
	tokenString, err := token.SignedString([]byte(signKey))
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during singing JWT token: %w", err)
	}

	payload.Token = token
	payload.SignedString = tokenString
	return *payload, nil
}

// ValidateAndParseJWTToken verifies the signature, issuer and expiry of
// tokenString and returns its session claims. Only HS256 is accepted.
func ValidateAndParseJWTToken(tokenString, tokenSignKey, tokenIssuer string) (SessionClaims, models.Token, error) {
	parsed := &models.Token{}
	token, err := jwt.ParseWithClaims(tokenString, parsed, func(token *jwt.Token) (any, error) {
		return []byte(tokenSignKey), nil
	}, jwt.WithIssuer(tokenIssuer), jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return SessionClaims{}, models.Token{}, fmt.Errorf("error occurred validating and parsing token: %w", err)
	}

	if parsed.Subject == "" {
		return SessionClaims{}, models.Token{}, errors.New("empty subject error")
	}
	if parsed.ID == "" {
		return SessionClaims{}, models.Token{}, errors.New("empty session id error")
	}

	parsed.Token = token
	parsed.SignedString = tokenString

	return SessionClaims{UserID: parsed.Subject, Login: parsed.Login, SessionID: parsed.ID}, *parsed, nil
}
